package trace

import "github.com/prometheus/client_golang/prometheus"

// Collector exposes a tracer's counts as the Prometheus counter family
// <namespace>_calls_total{trial, event}.
//
// The collector reads the tracer at scrape time, so it must only be gathered
// once the runs feeding the tracer have returned.
type Collector struct {
	tracer *Tracer
	desc   *prometheus.Desc
}

// NewCollector returns a collector over t.
func NewCollector(t *Tracer, namespace string) *Collector {
	return &Collector{
		tracer: t,
		desc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "calls_total"),
			"Number of traced calls per trial and event.",
			[]string{"trial", "event"},
			nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, label := range c.tracer.Labels() {
		trial, event := SplitLabel(label)
		ch <- prometheus.MustNewConstMetric(
			c.desc, prometheus.CounterValue, float64(c.tracer.Count(label)), trial, event,
		)
	}
}
