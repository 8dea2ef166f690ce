package services

import "github.com/prometheus/client_golang/prometheus"

var (
	ProductsSaved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "buysell",
			Subsystem: "products",
			Name:      "saved_total",
			Help:      "Products created through the marketplace",
		},
	)

	UsersRegistered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "buysell",
			Subsystem: "users",
			Name:      "registered_total",
			Help:      "Successful user registrations",
		},
	)
)
