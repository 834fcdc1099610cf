package metric

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/questkeep-go/internal/core/domain"
)

// SnapshotFunc returns the snapshot to report on, or nil when none is
// loaded yet.
type SnapshotFunc func() *domain.Snapshot

// ProgressCollector exports gauges computed from the current snapshot
// each time the registry is gathered.
type ProgressCollector struct {
	current SnapshotFunc

	completed     *prometheus.Desc
	currentStreak *prometheus.Desc
	bestStreak    *prometheus.Desc
	activeArcs    *prometheus.Desc
	schemaVersion *prometheus.Desc
}

// NewProgressCollector creates a collector reading from current.
func NewProgressCollector(current SnapshotFunc) *ProgressCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(Namespace, "progress", name), help, nil, nil)
	}
	return &ProgressCollector{
		current:       current,
		completed:     desc("completed_items", "Completed checklist items."),
		currentStreak: desc("current_streak", "Current streak in days."),
		bestStreak:    desc("best_streak", "Best streak in days."),
		activeArcs:    desc("arcs_started", "Arcs with a recorded start date."),
		schemaVersion: prometheus.NewDesc(
			prometheus.BuildFQName(Namespace, "snapshot", "schema_version"),
			"Schema version of the loaded snapshot.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *ProgressCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.completed
	ch <- c.currentStreak
	ch <- c.bestStreak
	ch <- c.activeArcs
	ch <- c.schemaVersion
}

// Collect implements prometheus.Collector.
func (c *ProgressCollector) Collect(ch chan<- prometheus.Metric) {
	snap := c.current()
	if snap == nil {
		return
	}
	p := snap.Progress
	ch <- prometheus.MustNewConstMetric(c.completed, prometheus.GaugeValue, float64(p.CompletedItemIDs.Len()))
	ch <- prometheus.MustNewConstMetric(c.currentStreak, prometheus.GaugeValue, float64(p.CurrentStreak))
	ch <- prometheus.MustNewConstMetric(c.bestStreak, prometheus.GaugeValue, float64(p.BestStreak))
	ch <- prometheus.MustNewConstMetric(c.activeArcs, prometheus.GaugeValue, float64(len(p.ArcStartDates)))
	ch <- prometheus.MustNewConstMetric(c.schemaVersion, prometheus.GaugeValue, float64(snap.SchemaVersion))
}
