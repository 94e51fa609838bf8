package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	CustomersCreatedTotal prometheus.Counter
	CustomersDeletedTotal prometheus.Counter
	DuplicateUseridTotal  prometheus.Counter
	CustomersCurrent      prometheus.Gauge
	AddressesCurrent      prometheus.Gauge
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "customer_service_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Business = BusinessMetrics{
		CustomersCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "customer_service_customers_created_total",
				Help: "Total number of customers successfully created.",
			},
		),
		CustomersDeletedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "customer_service_customers_deleted_total",
				Help: "Total number of customers deleted.",
			},
		),
		DuplicateUseridTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "customer_service_duplicate_userid_total",
				Help: "Total number of writes rejected because the userid was already taken.",
			},
		),
		CustomersCurrent: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "customer_service_customers",
				Help: "Number of customers currently stored.",
			},
		),
		AddressesCurrent: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "customer_service_addresses",
				Help: "Number of addresses currently stored.",
			},
		),
	}
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordCustomerCreated() {
	Business.CustomersCreatedTotal.Inc()
}

func RecordCustomerDeleted() {
	Business.CustomersDeletedTotal.Inc()
}

func RecordDuplicateUserid() {
	Business.DuplicateUseridTotal.Inc()
}

func SetStoredCounts(customers, addresses int64) {
	Business.CustomersCurrent.Set(float64(customers))
	Business.AddressesCurrent.Set(float64(addresses))
}
