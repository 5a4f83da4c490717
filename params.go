// Copyright (c) 2012-2017 The Revel Framework Authors, All rights reserved.
// Revel Framework source code and usage is governed by a MIT style
// license that can be found in the LICENSE file.

package joindin

import (
	"net/url"
)

// Params provides a unified view of the request params.
// Includes:
//   - URL query string
//   - Form values
//   - Route path values
//
// Values lists route values first, then form values, then the query string,
// so Get prefers the route.
type Params struct {
	url.Values // A unified view of all the individual param maps below.

	Route url.Values // Parameters extracted from the route,  e.g. /customers/:id
	Query url.Values // Parameters from the query string, e.g. /index?limit=10
	Form  url.Values // Parameters from the request body.
}

// ParseParams fills the source maps from the request and merges them.
func ParseParams(params *Params, c *Controller) {
	params.Query = c.Request.URL.Query()

	switch c.Request.Method {
	case "POST", "PUT", "PATCH":
		if err := c.Request.ParseForm(); err != nil {
			c.Log.Warn("ParseParams: Error parsing request body", "error", err)
		} else {
			params.Form = c.Request.PostForm
		}
	}

	params.Values = params.calcValues()
}

func (p *Params) calcValues() url.Values {
	values := make(url.Values, len(p.Query)+len(p.Form)+len(p.Route))
	for _, source := range []url.Values{p.Route, p.Form, p.Query} {
		for k, v := range source {
			values[k] = append(values[k], v...)
		}
	}
	return values
}

// ParamsFilter parses the request parameters into c.Params.
func ParamsFilter(c *Controller, fc []Filter) {
	ParseParams(c.Params, c)
	fc[0](c, fc[1:])
}
