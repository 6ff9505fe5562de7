package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"buttonled-go/types"
)

type metrics struct {
	reg       prometheus.Registerer
	presses   *prometheus.CounterVec
	requested *prometheus.GaugeVec
	rendered  *prometheus.GaugeVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		reg: reg,
		presses: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "buttonled",
			Subsystem: "button",
			Name:      "presses_total",
			Help:      "Classified button presses",
		}, []string{"kind"}),
		requested: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "buttonled",
			Subsystem: "led",
			Name:      "requested_mode",
			Help:      "1 for the mode last requested by the controller",
		}, []string{"mode"}),
		rendered: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "buttonled",
			Subsystem: "led",
			Name:      "rendered_mode",
			Help:      "1 for the mode the driver currently renders",
		}, []string{"mode"}),
	}
}

// watchDrops exports the edge queue overflow count of the button input.
func (m *metrics) watchDrops(drops func() uint32) {
	promauto.With(m.reg).NewCounterFunc(prometheus.CounterOpts{
		Namespace: "buttonled",
		Subsystem: "button",
		Name:      "edge_drops_total",
		Help:      "Edge events discarded because the queue was full",
	}, func() float64 { return float64(drops()) })
}

func (m *metrics) onPress(kind types.PressKind, _, to types.LedMode) {
	m.presses.WithLabelValues(kind.String()).Inc()
	m.observeRequested(to)
}

func (m *metrics) observeRequested(mode types.LedMode) { setOneHot(m.requested, mode) }
func (m *metrics) observeRendered(mode types.LedMode)  { setOneHot(m.rendered, mode) }

func setOneHot(g *prometheus.GaugeVec, mode types.LedMode) {
	for _, x := range types.LedModes() {
		v := 0.0
		if x == mode {
			v = 1
		}
		g.WithLabelValues(x.String()).Set(v)
	}
}
