package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TokensIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "attendance_tokens_issued_total",
			Help: "Total number of QR check-in tokens issued",
		},
	)

	Checkins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "attendance_checkins_total",
			Help: "Total number of check-in attempts by outcome",
		},
		[]string{"result"}, // "success", "missing_field", "token_invalid", "token_expired", "already_checked_in", "error"
	)
)
