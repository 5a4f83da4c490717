package joindin

// Filter is one stage of request processing; it calls fc[0](c, fc[1:]) to
// pass control on.
type Filter func(c *Controller, filterChain []Filter)

// DefaultFilters is the filter chain every server starts with.
func DefaultFilters() []Filter {
	return []Filter{
		PanicFilter,
		RouterFilter,
		CompressFilter,
		ParamsFilter,
		SessionFilter,
		FlashFilter,
		ActionInvoker,
	}
}

// NilFilter and NilChain are helpful in writing filter tests.
var (
	NilFilter = func(_ *Controller, _ []Filter) {}
	NilChain  = []Filter{NilFilter}
)
