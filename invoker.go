package joindin

// ActionInvoker runs the routed action and stores its result.
func ActionInvoker(c *Controller, _ []Filter) {
	if c.route == nil || c.route.Handler == nil {
		c.Result = c.NotFound("No action for %s", c.Request.URL.Path)
		return
	}
	if result := c.route.Handler(c); result != nil {
		c.Result = result
	}
}
