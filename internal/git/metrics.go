package git

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	opStatus   = "status"
	opStage    = "stage"
	opUnstage  = "unstage"
	opCommit   = "commit"
	opCheckout = "checkout"
	opPush     = "push"
	opFetch    = "fetch"
	opMerge    = "merge"
	opClone    = "clone"
)

//nolint:gochecknoglobals //collectors
var (
	operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gitgate",
		Subsystem: "git",
		Name:      "operation_duration_seconds",
		Help:      "Duration of repository operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	refUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gitgate",
		Subsystem: "git",
		Name:      "push_ref_updates_total",
		Help:      "Remote ref updates by outcome.",
	}, []string{"status"})

	mergesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gitgate",
		Subsystem: "git",
		Name:      "merges_total",
		Help:      "Merges by outcome.",
	}, []string{"status"})
)

// observe starts timing an operation; call the returned func when it ends.
func observe(op string) func() {
	started := time.Now()

	return func() {
		operationDuration.WithLabelValues(op).Observe(time.Since(started).Seconds())
	}
}
