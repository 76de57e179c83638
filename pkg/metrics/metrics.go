// Package metrics holds the Prometheus collectors of the bot.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	Commands = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lilbot",
		Name:      "commands_total",
		Help:      "Number of dispatched commands by name and outcome.",
	}, []string{"command", "outcome"})

	ModerationActions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lilbot",
		Name:      "moderation_actions_total",
		Help:      "Number of moderation deletions and greeting replies.",
	}, []string{"action"})

	LiveEdits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lilbot",
		Name:      "live_edits_total",
		Help:      "Number of live scoreboard card edits by result.",
	}, []string{"result"})

	LiveBindings = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "lilbot",
		Name:      "live_bindings",
		Help:      "Number of channels with a bound live scoreboard card.",
	})

	UpstreamRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lilbot",
		Name:      "upstream_requests_total",
		Help:      "Number of outbound API requests by upstream and result.",
	}, []string{"upstream", "result"})
)

// Register adds every collector to reg.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{Commands, ModerationActions, LiveEdits, LiveBindings, UpstreamRequests} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
