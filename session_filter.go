package joindin

// SessionFilter decodes the session before the action and encodes it after.
// The name of the session cookie is CookiePrefix + "_SESSION".
func SessionFilter(c *Controller, fc []Filter) {
	c.Server.Sessions.Decode(c)
	sessionWasEmpty := c.Session.Empty()

	// Make session vars available in templates as {{.session.xyz}}
	c.ViewArgs["session"] = c.Session

	fc[0](c, fc[1:])

	// If session is not empty or if session was not empty then
	// pass it back to the session engine to be encoded
	if !c.Session.Empty() || !sessionWasEmpty {
		c.Server.Sessions.Encode(c)
	}
}
