// metrics — Prometheus-метрики движка вовлечённости.
// Все методы безопасны для nil-получателя: сервис без метрик просто их не пишет.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "engagement"

// Metrics — набор коллекторов движка.
type Metrics struct {
	progress      *prometheus.CounterVec
	levelUps      *prometheus.CounterVec
	casConflicts  *prometheus.CounterVec
	fanoutItems   *prometheus.CounterVec
	fanoutChunks  *prometheus.CounterVec
	chunkDuration prometheus.Histogram
	deadLetters   prometheus.Counter
	membership    *prometheus.CounterVec
	memberDrift   prometheus.Counter
	toggles       *prometheus.CounterVec
}

// New создаёт и регистрирует коллекторы в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		progress: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "progress_events_total",
			Help: "Recorded progression events by metric.",
		}, []string{"metric"}),
		levelUps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "level_ups_total",
			Help: "Level transitions by metric.",
		}, []string{"metric"}),
		casConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "cas_conflicts_total",
			Help: "Compare-and-swap conflicts by resource.",
		}, []string{"resource"}),
		fanoutItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "fanout_items_total",
			Help: "Notification items by outcome (committed, failed, enqueued, retried, delivered).",
		}, []string{"outcome"}),
		fanoutChunks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "fanout_chunks_total",
			Help: "Notification batches by result.",
		}, []string{"result"}),
		chunkDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "fanout_chunk_duration_seconds",
			Help:    "Time to write one notification batch.",
			Buckets: prometheus.DefBuckets,
		}),
		deadLetters: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "fanout_dead_letters_total",
			Help: "Items moved to the dead-letter store.",
		}),
		membership: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "membership_changes_total",
			Help: "Membership transitions by action and whether the set changed.",
		}, []string{"action", "changed"}),
		memberDrift: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "membership_drift_repairs_total",
			Help: "Member counters corrected by reconciliation.",
		}),
		toggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "toggles_total",
			Help: "Ledger toggles by kind and resulting state.",
		}, []string{"kind", "state"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.progress, m.levelUps, m.casConflicts, m.fanoutItems, m.fanoutChunks,
			m.chunkDuration, m.deadLetters, m.membership, m.memberDrift, m.toggles,
		)
	}

	return m
}

// Progress фиксирует событие прогресса и, если был переход, повышение уровня.
func (m *Metrics) Progress(metric string, leveledUp bool) {
	if m == nil {
		return
	}

	m.progress.WithLabelValues(metric).Inc()
	if leveledUp {
		m.levelUps.WithLabelValues(metric).Inc()
	}
}

// CASConflict — проигранная гонка compare-and-swap.
func (m *Metrics) CASConflict(resource string) {
	if m == nil {
		return
	}

	m.casConflicts.WithLabelValues(resource).Inc()
}

// FanoutItems добавляет n элементов с исходом outcome.
func (m *Metrics) FanoutItems(outcome string, n int) {
	if m == nil || n <= 0 {
		return
	}

	m.fanoutItems.WithLabelValues(outcome).Add(float64(n))
}

// FanoutChunk фиксирует запись одной пачки.
func (m *Metrics) FanoutChunk(ok bool, seconds float64) {
	if m == nil {
		return
	}

	result := "ok"
	if !ok {
		result = "failed"
	}

	m.fanoutChunks.WithLabelValues(result).Inc()
	m.chunkDuration.Observe(seconds)
}

// DeadLetters добавляет n элементов, ушедших в dead-letter.
func (m *Metrics) DeadLetters(n int) {
	if m == nil || n <= 0 {
		return
	}

	m.deadLetters.Add(float64(n))
}

// Membership фиксирует join/leave.
func (m *Metrics) Membership(action string, changed bool) {
	if m == nil {
		return
	}

	c := "false"
	if changed {
		c = "true"
	}

	m.membership.WithLabelValues(action, c).Inc()
}

// DriftRepaired — сверка исправила счётчик участников.
func (m *Metrics) DriftRepaired() {
	if m == nil {
		return
	}

	m.memberDrift.Inc()
}

// Toggle фиксирует переключение в реестре.
func (m *Metrics) Toggle(kind string, state bool) {
	if m == nil {
		return
	}

	s := "off"
	if state {
		s = "on"
	}

	m.toggles.WithLabelValues(kind, s).Inc()
}
