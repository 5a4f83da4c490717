package joindin

import (
	"compress/gzip"
	"compress/zlib"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// Encodings in order of preference.
var compressionTypes = [...]string{
	"gzip",
	"deflate",
}

var compressableMimes = [...]string{
	"text/plain",
	"text/html",
	"text/xml",
	"text/css",
	"application/xml",
	"application/xhtml+xml",
	"application/javascript",
	"application/json",
}

// CompressResponseWriter encodes the body when the client accepts it and the
// content type is textual. Close must be called once the body is written.
type CompressResponseWriter struct {
	http.ResponseWriter
	compressWriter  io.WriteCloser
	compressionType string
	headersWritten  bool
}

// CompressFilter compresses responses when results.compressed is on.
func CompressFilter(c *Controller, fc []Filter) {
	if c.Server.Config.BoolDefault("results.compressed", false) {
		if encoding := negotiateEncoding(c.Request.Header.Get("Accept-Encoding")); encoding != "" {
			c.Response.Out = &CompressResponseWriter{ResponseWriter: c.Response.Out, compressionType: encoding}
		}
	}
	fc[0](c, fc[1:])
}

func (c *CompressResponseWriter) prepareHeaders() {
	c.headersWritten = true
	c.Header().Add("Vary", "Accept-Encoding")
	mime := strings.TrimSpace(strings.SplitN(c.Header().Get("Content-Type"), ";", 2)[0])
	for _, compressable := range compressableMimes {
		if mime != compressable {
			continue
		}
		c.Header().Set("Content-Encoding", c.compressionType)
		c.Header().Del("Content-Length")
		switch c.compressionType {
		case "gzip":
			c.compressWriter = gzip.NewWriter(c.ResponseWriter)
		case "deflate":
			c.compressWriter = zlib.NewWriter(c.ResponseWriter)
		}
		return
	}
	c.compressionType = ""
}

func (c *CompressResponseWriter) WriteHeader(status int) {
	if !c.headersWritten {
		c.prepareHeaders()
	}
	c.ResponseWriter.WriteHeader(status)
}

func (c *CompressResponseWriter) Write(b []byte) (int, error) {
	if !c.headersWritten {
		c.prepareHeaders()
	}
	if c.compressWriter != nil {
		return c.compressWriter.Write(b)
	}
	return c.ResponseWriter.Write(b)
}

// Close flushes the encoder.
func (c *CompressResponseWriter) Close() error {
	if c.compressWriter == nil {
		return nil
	}
	return c.compressWriter.Close()
}

// negotiateEncoding picks the preferred encoding with the highest q value
// from an Accept-Encoding header, or "" for none.
func negotiateEncoding(header string) string {
	largestQ := 0.0
	chosen := len(compressionTypes)
	for _, encoding := range strings.Split(header, ",") {
		parts := strings.SplitN(strings.TrimSpace(encoding), ";", 2)
		q := 1.0
		if len(parts) > 1 {
			// "gzip;q=0.8"
			param := strings.TrimSpace(parts[1])
			if !strings.HasPrefix(param, "q=") {
				continue
			}
			var err error
			if q, err = strconv.ParseFloat(param[2:], 64); err != nil {
				continue
			}
		}
		if q <= 0 || q < largestQ {
			continue
		}
		if parts[0] == "*" {
			chosen, largestQ = 0, q
			continue
		}
		for i, name := range compressionTypes {
			if name == parts[0] {
				if q > largestQ || i < chosen {
					chosen, largestQ = i, q
				}
				break
			}
		}
	}
	if chosen == len(compressionTypes) {
		return ""
	}
	return compressionTypes[chosen]
}
