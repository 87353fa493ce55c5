package livereload

import "github.com/prometheus/client_golang/prometheus"

type hubMetrics struct {
	clients    prometheus.Gauge
	broadcasts *prometheus.CounterVec
	dropped    prometheus.Counter
}

func newHubMetrics(reg prometheus.Registerer) *hubMetrics {
	m := &hubMetrics{
		clients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sitepipe",
			Subsystem: "livereload",
			Name:      "clients",
			Help:      "Number of connected live-reload browsers.",
		}),
		broadcasts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sitepipe",
			Subsystem: "livereload",
			Name:      "broadcasts_total",
			Help:      "Live-reload messages broadcast, by kind.",
		}, []string{"kind"}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sitepipe",
			Subsystem: "livereload",
			Name:      "dropped_clients_total",
			Help:      "Browsers disconnected because they fell behind.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.clients, m.broadcasts, m.dropped)
	}
	return m
}
