package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	talentflow = "talentflow"

	transitionsTotal = "stage_transitions_total"
	applicationCount = "applications_per_stage"

	fromStageLabel = "from_stage"
	toStageLabel   = "to_stage"
	stageLabel     = "stage"
)

var transitionsTotalLabels = []string{
	fromStageLabel,
	toStageLabel,
}

var applicationCountLabels = []string{
	stageLabel,
}

/**
* Metrics definition
**/
var transitionsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: talentflow,
		Name:      transitionsTotal,
		Help:      "number of committed stage transitions partitioned by from and to stage",
	},
	transitionsTotalLabels,
)

var applicationCountMetric = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Subsystem: talentflow,
		Name:      applicationCount,
		Help:      "number of applications currently in each stage",
	},
	applicationCountLabels,
)

func IncreaseTransitionsTotalMetric(fromStage, toStage string) {
	labels := prometheus.Labels{
		fromStageLabel: fromStage,
		toStageLabel:   toStage,
	}
	transitionsTotalMetric.With(labels).Inc()
}

func UpdateApplicationStageCountMetric(stage string, count int) {
	labels := prometheus.Labels{
		stageLabel: stage,
	}
	applicationCountMetric.With(labels).Set(float64(count))
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(transitionsTotalMetric)
	prometheus.MustRegister(applicationCountMetric)
}
