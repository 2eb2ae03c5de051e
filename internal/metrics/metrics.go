package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"nft_tracker/internal/domain/entity"
)

const namespace = "nft_tracker"

const (
	ResultOK    = "ok"
	ResultError = "error"
)

type Tracker struct {
	cycles        *prometheus.CounterVec
	assets        *prometheus.GaugeVec
	notifications *prometheus.CounterVec
	cycleDuration prometheus.Histogram
	lastSuccess   prometheus.Gauge
}

func NewTracker(reg prometheus.Registerer) *Tracker {
	factory := promauto.With(reg)

	return &Tracker{
		cycles: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_total",
			Help:      "Poll cycles by result.",
		}, []string{"result"}),
		// Tracks the latest snapshot split by availability tier.
		assets: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "assets",
			Help:      "Assets in the latest snapshot by tier.",
		}, []string{"tier"}),
		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notification deliveries by channel and result.",
		}, []string{"channel", "result"}),
		cycleDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cycle_duration_seconds",
			Help:      "Duration of a poll cycle in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms → ~25s
		}),
		lastSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp",
			Help:      "Unix time of the last successful cycle.",
		}),
	}
}

func (m *Tracker) ObserveCycle(err error, duration time.Duration, finishedAt time.Time) {
	m.cycleDuration.Observe(duration.Seconds())

	if err != nil {
		m.cycles.WithLabelValues(ResultError).Inc()
		return
	}

	m.cycles.WithLabelValues(ResultOK).Inc()
	m.lastSuccess.Set(float64(finishedAt.Unix()))
}

func (m *Tracker) SetAssets(snapshot entity.Snapshot) {
	counts := snapshot.CountByTier()
	for _, tier := range entity.Tiers() {
		m.assets.WithLabelValues(tier.String()).Set(float64(counts[tier]))
	}
}

func (m *Tracker) ObserveNotification(channel string, err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.notifications.WithLabelValues(channel, result).Inc()
}
