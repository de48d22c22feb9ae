package ground

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus instrumentation for a grounding run, wired
// the way the teacher's server package registers its request counters: a
// struct of pre-bound collectors built once per Registerer and passed down
// to whatever needs to record against them, rather than a package-global.
type Metrics struct {
	RulesEmitted       prometheus.Counter
	SubstitutionsTried prometheus.Counter
	Discards           prometheus.Counter
	FixpointPasses     prometheus.Histogram
	ComponentSeconds   prometheus.Histogram
}

// NewMetrics constructs and registers a Metrics set against reg. Passing a
// fresh prometheus.NewRegistry() in tests keeps them isolated from the
// default global registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RulesEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "grounder",
			Subsystem: "ground",
			Name:      "rules_emitted_total",
			Help:      "Number of ground rules emitted across the whole run.",
		}),
		SubstitutionsTried: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "grounder",
			Subsystem: "ground",
			Name:      "substitutions_tried_total",
			Help:      "Number of body substitutions attempted by the instantiator.",
		}),
		Discards: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "grounder",
			Subsystem: "ground",
			Name:      "substitutions_discarded_total",
			Help:      "Number of substitutions discarded by arithmetic or comparison failure.",
		}),
		FixpointPasses: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "grounder",
			Subsystem: "ground",
			Name:      "fixpoint_passes",
			Help:      "Number of grounding passes taken per component (1 for a non-recursive component).",
			Buckets:   prometheus.LinearBuckets(1, 1, 10),
		}),
		ComponentSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "grounder",
			Subsystem: "ground",
			Name:      "component_duration_seconds",
			Help:      "Wall-clock time spent grounding a single dependency-graph component.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.RulesEmitted, m.SubstitutionsTried, m.Discards, m.FixpointPasses, m.ComponentSeconds)
	return m
}
