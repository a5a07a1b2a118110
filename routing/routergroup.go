package routing

import (
	"net/http"
	"slices"
	"strings"

	"go.uber.org/zap"
)

type RouteGroup struct {
	Router          // [Embedded Interface]
	Prefix          string
	HandlerWrappers []HandlerWrapper // Group Handler Wrappers
}

// Ensure RouteGroup implements Router
var _ Router = (*RouteGroup)(nil)

// Handle registers "<method> <subpath>" or "<subpath>" under the group prefix.
//
// Group wrappers run first, in order, then the route's own wrappers:
//
//	grpWrapper1 -> ... -> grpWrapperN -> wrapper1 -> ... -> wrapperN -> handler
func (g *RouteGroup) Handle(subpattern string, handler http.Handler, handlerWrappers ...HandlerWrapper) {
	fullPattern := g.Prefix + subpattern
	if method, subpath, ok := strings.Cut(subpattern, " "); ok {
		fullPattern = method + " " + g.Prefix + subpath
	}
	if strings.Contains(fullPattern, "//") {
		zap.L().Fatal("can't register router pattern", zap.String("pattern", fullPattern))
	}

	wrapped := wrap(handler, handlerWrappers)
	wrapped = wrap(wrapped, g.HandlerWrappers)
	g.Router.Handle(fullPattern, wrapped)
}

func (g *RouteGroup) HandleFunc(subpattern string, handleFunc func(http.ResponseWriter, *http.Request), handlerWrappers ...HandlerWrapper) {
	g.Handle(subpattern, http.HandlerFunc(handleFunc), handlerWrappers...)
}

// Group on *RouteGroup makes a Subgroup
//
//	api.Group("/quotation", func(q *RouteGroup) {  // "/api/quotation..."
//	  q.HandleFunc("GET /{id}", detail)              // "GET /api/quotation/{id}"
//	})
func (g *RouteGroup) Group(subPrefix string, batch func(*RouteGroup), handlerWrappers ...HandlerWrapper) *RouteGroup {
	subg := &RouteGroup{
		Router:          g.Router,
		Prefix:          g.Prefix + subPrefix,
		HandlerWrappers: slices.Concat(g.HandlerWrappers, handlerWrappers),
	}
	batch(subg)
	return subg
}

// wrap nests handler so that wrappers[0] runs outermost
func wrap(handler http.Handler, wrappers []HandlerWrapper) http.Handler {
	for i := len(wrappers) - 1; i >= 0; i-- {
		handler = wrappers[i].Wrap(handler)
	}
	return handler
}
