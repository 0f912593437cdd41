package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Total registration upserts by outcome",
		},
		[]string{"outcome"},
	)

	checkinScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkin_scans_total",
			Help: "Total check-in scans by outcome",
		},
		[]string{"outcome"},
	)

	qrTokensIssuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "qr_tokens_issued_total",
			Help: "Total QR credential tokens minted",
		},
	)
)

func RegistrationUpserted(outcome string) {
	registrationsTotal.WithLabelValues(outcome).Inc()
}

func CheckinScanned(outcome string) {
	checkinScansTotal.WithLabelValues(outcome).Inc()
}

func QRTokenIssued() {
	qrTokensIssuedTotal.Inc()
}

// Handler exposes the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
