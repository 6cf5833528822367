package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/PabloGalante/farum-sentinel/internal/domain"
)

// Metrics exposes the severity distribution of assessments. Labels carry only
// enum values and lengths, never message text.
type Metrics struct {
	assessments   *prometheus.CounterVec
	crisisReplies *prometheus.CounterVec
	messageLength prometheus.Histogram
}

// NewMetrics registers the collectors on reg. A nil *Metrics is usable: all
// record methods become no-ops, which keeps tests free of registry setup.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sentinel",
			Name:      "assessments_total",
			Help:      "Risk assessments by resulting level.",
		}, []string{"risk_level"}),
		crisisReplies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sentinel",
			Name:      "crisis_replies_total",
			Help:      "Crisis template replies by protocol.",
		}, []string{"protocol"}),
		messageLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sentinel",
			Name:      "message_length_bytes",
			Help:      "Length of assessed user messages.",
			Buckets:   prometheus.ExponentialBuckets(8, 2, 8),
		}),
	}

	reg.MustRegister(m.assessments, m.crisisReplies, m.messageLength)
	return m
}

func (m *Metrics) RecordAssessment(level domain.RiskLevel, msgLen int) {
	if m == nil {
		return
	}
	m.assessments.WithLabelValues(level.String()).Inc()
	m.messageLength.Observe(float64(msgLen))
}

func (m *Metrics) RecordCrisisReply(protocol domain.ProtocolType) {
	if m == nil {
		return
	}
	m.crisisReplies.WithLabelValues(string(protocol)).Inc()
}
