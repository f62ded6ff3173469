package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type IncrementalCounter interface {
	Increment(val ...string)
}

type Counter struct {
	Name string
	Help string

	vec *prometheus.CounterVec
}

func (c *Counter) Increment(val ...string) {
	c.vec.WithLabelValues(val...).Inc()
}

func NewCounterWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) IncrementalCounter {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: name,
		Help: help,
	}, labels)

	reg.MustRegister(counter)

	return &Counter{
		Name: name,
		Help: help,
		vec:  counter,
	}
}

// Renderer groups the counters recorded while rendering theme regions.
type Renderer struct {
	MenuBuilds   IncrementalCounter
	CorruptTrees IncrementalCounter
	Renders      IncrementalCounter
}

// NewRenderer registers the renderer counters on reg.
func NewRenderer(reg prometheus.Registerer) *Renderer {
	return &Renderer{
		MenuBuilds:   NewCounterWithRegistry(reg, "theme_menu_builds_total", "Header category menus built, by visibility policy.", "policy"),
		CorruptTrees: NewCounterWithRegistry(reg, "theme_corrupt_trees_total", "Category trees rejected because a category was reached twice."),
		Renders:      NewCounterWithRegistry(reg, "theme_render_total", "Rendered page regions.", "region"),
	}
}

// Noop returns renderer counters bound to a private registry.
func Noop() *Renderer {
	return NewRenderer(prometheus.NewRegistry())
}

// GetHandlerForRegistry returns an HTTP handler for serving Prometheus metrics from a custom registry.
func GetHandlerForRegistry(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
