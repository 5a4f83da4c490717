package joindin

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/revel/pathtree"
)

// ActionFunc handles a routed request.
type ActionFunc func(c *Controller) Result

// Route binds a method and path pattern to a named action. Path segments
// starting with ':' capture one segment into a route param.
type Route struct {
	Method  string // e.g. GET
	Path    string // e.g. /twitter/access_token
	Action  string // e.g. Twitter.AccessToken
	Handler ActionFunc
}

// RouteMatch is a successful lookup.
type RouteMatch struct {
	*Route
	Params url.Values // e.g. {id: 123}
}

// Router looks routes up in a path tree keyed by /METHOD/path.
type Router struct {
	Routes []*Route
	Tree   *pathtree.Node

	actions map[string]*Route
}

func NewRouter() *Router {
	return &Router{
		Tree:    pathtree.New(),
		actions: make(map[string]*Route),
	}
}

// Handle registers handler for method and path under the action name.
func (router *Router) Handle(method, path, action string, handler ActionFunc) error {
	route := &Route{
		Method:  strings.ToUpper(method),
		Path:    normalizePath(path),
		Action:  action,
		Handler: handler,
	}
	if !strings.HasPrefix(route.Path, "/") {
		return fmt.Errorf("route %s %s: absolute path required", method, path)
	}
	if err := router.Tree.Add(treePath(route.Method, route.Path), route); err != nil {
		return fmt.Errorf("%w: %s %s: %s", ErrDuplicateRoute, route.Method, route.Path, err)
	}
	router.Routes = append(router.Routes, route)
	if _, found := router.actions[action]; !found {
		router.actions[action] = route
	}
	return nil
}

// Get registers a GET route.
func (router *Router) Get(path, action string, handler ActionFunc) error {
	return router.Handle(http.MethodGet, path, action, handler)
}

// Post registers a POST route.
func (router *Router) Post(path, action string, handler ActionFunc) error {
	return router.Handle(http.MethodPost, path, action, handler)
}

// Route finds the route for req, or nil. HEAD falls back to GET.
func (router *Router) Route(req *http.Request) *RouteMatch {
	path := normalizePath(req.URL.Path)
	leaf, expansions := router.Tree.Find(treePath(req.Method, path))
	if leaf == nil && req.Method == http.MethodHead {
		leaf, expansions = router.Tree.Find(treePath(http.MethodGet, path))
	}
	if leaf == nil {
		return nil
	}

	route := leaf.Value.(*Route)
	var params url.Values
	if len(leaf.Wildcards) > 0 {
		params = make(url.Values)
		for i, v := range leaf.Wildcards {
			params[v] = append(params[v], expansions[i])
		}
	}
	return &RouteMatch{Route: route, Params: params}
}

// Reverse builds the path of action, filling :params from args.
func (router *Router) Reverse(action string, args map[string]string) (string, error) {
	route, found := router.actions[action]
	if !found {
		return "", fmt.Errorf("%w: %s", ErrNoRoute, action)
	}

	segments := strings.Split(route.Path, "/")
	for i, segment := range segments {
		if !strings.HasPrefix(segment, ":") && !strings.HasPrefix(segment, "*") {
			continue
		}
		value, ok := args[segment[1:]]
		if !ok {
			return "", fmt.Errorf("%w: %s for %s", ErrMissingRoute, segment[1:], action)
		}
		segments[i] = url.PathEscape(value)
	}
	return strings.Join(segments, "/"), nil
}

// RouterFilter resolves the action for the request, 404 when there is none.
func RouterFilter(c *Controller, fc []Filter) {
	match := c.Server.Router.Route(c.Request)
	if match == nil {
		c.Result = c.NotFound("No matching route found: %s", c.Request.URL.Path)
		return
	}

	c.route = match.Route
	c.Action = match.Action
	c.Params.Route = match.Params
	c.Log = c.Log.New("action", c.Action)

	fc[0](c, fc[1:])
}

func treePath(method, path string) string {
	return "/" + method + path
}

func normalizePath(path string) string {
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	if path == "" {
		path = "/"
	}
	return path
}
