package joindin

import (
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/xeonx/timeago"
)

// TemplateLoader parses every .html file below the views root into one set.
// Templates are named by their slash separated path, e.g. "user/login.html".
type TemplateLoader struct {
	set   *template.Template
	names []string
}

// TemplateFuncs returns the functions available to every template.
func TemplateFuncs(router *Router) template.FuncMap {
	return template.FuncMap{
		"raw": func(text string) template.HTML {
			return template.HTML(text)
		},
		"timeago": func(t time.Time) string {
			if t.IsZero() {
				return "never"
			}
			return timeago.English.Format(t)
		},
		"date": func(t time.Time) string {
			return t.Format("2 January 2006")
		},
		// url reverses an action, taking key value pairs for its params.
		"url": func(action string, kv ...string) (template.URL, error) {
			if len(kv)%2 != 0 {
				return "", fmt.Errorf("url %s: odd number of arguments", action)
			}
			args := make(map[string]string, len(kv)/2)
			for i := 0; i < len(kv); i += 2 {
				args[kv[i]] = kv[i+1]
			}
			p, err := router.Reverse(action, args)
			return template.URL(p), err
		},
	}
}

// NewTemplateLoader parses the views in fsys. A nil fsys yields an empty set.
func NewTemplateLoader(fsys fs.FS, router *Router) (*TemplateLoader, error) {
	loader := &TemplateLoader{set: template.New("").Funcs(TemplateFuncs(router))}
	if fsys == nil {
		return loader, nil
	}

	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(name) != ".html" {
			return nil
		}
		src, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		if _, err = loader.set.New(name).Parse(string(src)); err != nil {
			return &Error{Title: "Template Compilation Error", Path: name, Description: err.Error()}
		}
		loader.names = append(loader.names, name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loader, nil
}

// Template returns the template named name.
func (loader *TemplateLoader) Template(name string) (*template.Template, error) {
	tmpl := loader.set.Lookup(strings.TrimPrefix(name, "/"))
	if tmpl == nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return tmpl, nil
}

// Names lists the loaded templates in load order.
func (loader *TemplateLoader) Names() []string {
	return loader.names
}
