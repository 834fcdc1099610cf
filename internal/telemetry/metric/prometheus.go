package metric

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"
)

// Namespace prefixes every QuestKeep metric.
const Namespace = "questkeep"

// Registry holds all application metrics.
//
// A nil *Registry is valid and records nothing, so components can take
// one unconditionally.
type Registry struct {
	registry *prometheus.Registry

	// Snapshot store metrics
	SnapshotLoads          *prometheus.CounterVec
	SnapshotDecodeFailures *prometheus.CounterVec
	SnapshotCorruptCleared prometheus.Counter
	SnapshotSaves          prometheus.Counter
	SnapshotResets         *prometheus.CounterVec
	SnapshotWriteFailures  *prometheus.CounterVec
}

// NewRegistry creates a registry with the snapshot metrics and the Go
// runtime and process collectors registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{
		registry: reg,
		SnapshotLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "snapshot",
			Name:      "loads_total",
			Help:      "Snapshot loads by the generation that produced the result.",
		}, []string{"source"}),
		SnapshotDecodeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "snapshot",
			Name:      "decode_failures_total",
			Help:      "Stored values present but not decodable, by generation.",
		}, []string{"source"}),
		SnapshotCorruptCleared: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "snapshot",
			Name:      "corrupt_cleared_total",
			Help:      "Undecodable canonical values removed during load.",
		}),
		SnapshotSaves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "snapshot",
			Name:      "saves_total",
			Help:      "Canonical snapshot writes, including migration writes.",
		}),
		SnapshotResets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "snapshot",
			Name:      "resets_total",
			Help:      "Reset operations by scope (canonical or purge).",
		}, []string{"scope"}),
		SnapshotWriteFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "snapshot",
			Name:      "write_failures_total",
			Help:      "Failed store writes by operation.",
		}, []string{"op"}),
	}

	reg.MustRegister(
		r.SnapshotLoads,
		r.SnapshotDecodeFailures,
		r.SnapshotCorruptCleared,
		r.SnapshotSaves,
		r.SnapshotResets,
		r.SnapshotWriteFailures,
	)
	return r
}

// Registerer exposes the underlying registry for components that bring
// their own collectors, such as the badger engine.
func (r *Registry) Registerer() prometheus.Registerer {
	if r == nil {
		return nil
	}
	return r.registry
}

// Gatherer exposes the underlying registry for reading.
func (r *Registry) Gatherer() prometheus.Gatherer {
	if r == nil {
		return prometheus.NewRegistry()
	}
	return r.registry
}

// RecordLoad counts one load that returned a snapshot from source.
func (r *Registry) RecordLoad(source string) {
	if r == nil {
		return
	}
	r.SnapshotLoads.WithLabelValues(source).Inc()
}

// RecordDecodeFailure counts a present but undecodable value.
func (r *Registry) RecordDecodeFailure(source string) {
	if r == nil {
		return
	}
	r.SnapshotDecodeFailures.WithLabelValues(source).Inc()
}

// RecordCorruptCleared counts a removed canonical value.
func (r *Registry) RecordCorruptCleared() {
	if r == nil {
		return
	}
	r.SnapshotCorruptCleared.Inc()
}

// RecordSave counts a canonical write.
func (r *Registry) RecordSave() {
	if r == nil {
		return
	}
	r.SnapshotSaves.Inc()
}

// RecordReset counts a reset with the given scope.
func (r *Registry) RecordReset(scope string) {
	if r == nil {
		return
	}
	r.SnapshotResets.WithLabelValues(scope).Inc()
}

// RecordWriteFailure counts a failed write for op.
func (r *Registry) RecordWriteFailure(op string) {
	if r == nil {
		return
	}
	r.SnapshotWriteFailures.WithLabelValues(op).Inc()
}

// WriteText writes every gathered metric family to w in the Prometheus
// text exposition format.
func (r *Registry) WriteText(w io.Writer) error {
	families, err := r.Gatherer().Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
