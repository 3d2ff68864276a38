package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	savesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "astra_client",
			Name:      "saves_total",
			Help:      "Save operations by outcome.",
		},
		[]string{"outcome"}, // created | already_saved | error
	)

	unsavesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "astra_client",
			Name:      "unsaves_total",
			Help:      "Unsave operations by outcome.",
		},
		[]string{"outcome"}, // deleted | not_found | error
	)
)
