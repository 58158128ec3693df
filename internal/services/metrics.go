package services

import "github.com/prometheus/client_golang/prometheus"

const (
	opAdd    = "add"
	opUpdate = "update"
	opDelete = "delete"

	resultOK    = "ok"
	resultError = "error"
)

var (
	// questionsStored tracks the current number of questions in the store.
	questionsStored = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "questions_stored",
			Help: "Current number of questions held in memory.",
		},
	)

	// questionMutations counts store mutations by operation and outcome.
	questionMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "question_mutations_total",
			Help: "Total number of question mutations by operation and result.",
		},
		[]string{"op", "result"},
	)
)

func init() {
	prometheus.MustRegister(questionsStored, questionMutations)
}

func observeMutation(op, result string) {
	questionMutations.WithLabelValues(op, result).Inc()
}
