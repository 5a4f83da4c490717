package joindin

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
)

// Result is what an action returns; it is applied once the filter chain has
// finished.
type Result interface {
	Apply(req *http.Request, resp *Response)
}

// ErrorResult renders errors/<status>.html.
type ErrorResult struct {
	ViewArgs  map[string]interface{}
	Templates *TemplateLoader
	error
}

func (r ErrorResult) Apply(req *http.Request, resp *Response) {
	status := resp.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}

	// This func shows a plaintext error message, in case the template rendering
	// doesn't work.
	showPlaintext := func(err error) {
		PlaintextErrorResult{fmt.Errorf("Server Error:\n%s\n\n"+
			"Additionally, an error occurred when rendering the error page:\n%s",
			r.error, err)}.Apply(req, resp)
	}

	if r.Templates == nil {
		showPlaintext(ErrTemplateNotFound)
		return
	}
	templatePath := fmt.Sprintf("errors/%d.html", status)
	tmpl, err := r.Templates.Template(templatePath)
	if err != nil {
		showPlaintext(err)
		return
	}

	var appError *Error
	switch e := r.error.(type) {
	case *Error:
		appError = e
	case error:
		appError = &Error{
			Title:       "Server Error",
			Description: e.Error(),
		}
	default:
		appError = &Error{Title: "Server Error", Description: "Unspecified error"}
	}

	args := make(map[string]interface{}, len(r.ViewArgs)+1)
	for k, v := range r.ViewArgs {
		args[k] = v
	}
	args["Error"] = appError

	var b bytes.Buffer
	if err = tmpl.Execute(&b, args); err != nil {
		showPlaintext(err)
		return
	}

	resp.Status = status
	resp.WriteHeader(status, "text/html; charset=utf-8")
	_, _ = b.WriteTo(resp.Out)
}

// PlaintextErrorResult writes the error as text/plain with status 500.
type PlaintextErrorResult struct {
	Error error
}

func (r PlaintextErrorResult) Apply(req *http.Request, resp *Response) {
	resp.ContentType = ""
	resp.WriteHeader(http.StatusInternalServerError, "text/plain; charset=utf-8")
	_, _ = resp.Out.Write([]byte(r.Error.Error()))
}

// RenderTemplateResult executes into a buffer first, so a template failure
// still yields a clean error page.
type RenderTemplateResult struct {
	Template *template.Template
	ViewArgs map[string]interface{}
	Errors   *TemplateLoader
}

func (r *RenderTemplateResult) Apply(req *http.Request, resp *Response) {
	var b bytes.Buffer
	if err := r.Template.Execute(&b, r.ViewArgs); err != nil {
		resp.Status = http.StatusInternalServerError
		ErrorResult{ViewArgs: r.ViewArgs, Templates: r.Errors, error: &Error{
			Title:       "Template Execution Error",
			Path:        r.Template.Name(),
			Description: err.Error(),
		}}.Apply(req, resp)
		return
	}

	resp.WriteHeader(http.StatusOK, "text/html; charset=utf-8")
	_, _ = b.WriteTo(resp.Out)
}

type RenderTextResult struct {
	text string
}

func (r RenderTextResult) Apply(req *http.Request, resp *Response) {
	resp.WriteHeader(http.StatusOK, "text/plain; charset=utf-8")
	_, _ = resp.Out.Write([]byte(r.text))
}

// RedirectToURLResult issues a 302 to url.
type RedirectToURLResult struct {
	url string
}

// URL is the redirect target.
func (r *RedirectToURLResult) URL() string {
	return r.url
}

func (r *RedirectToURLResult) Apply(req *http.Request, resp *Response) {
	resp.Out.Header().Set("Location", r.url)
	resp.WriteHeader(http.StatusFound, "")
}
