package cartridge

import (
	"runtime"
	"time"

	"github.com/go-kit/kit/metrics"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/prometheus/client_golang/prometheus"

	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/model"
)

// Названия полей
const (
	fieldPhase  = "phase"
	fieldStatus = "status"
	fieldKind   = "kind"

	phaseBuild   = "build"
	phaseWrite   = "write"
	phaseArchive = "archive"
	phaseTotal   = "total"

	statusOK    = "ok"
	statusError = "error"

	kindContent    = "content"
	kindAssessment = "assessment"
)

// Метрики
var (
	generationTiming metrics.Histogram = kitprometheus.NewSummaryFrom(prometheus.SummaryOpts{
		Name:       "cartridge_generation_timing",
		Help:       "timing of cartridge generation phases",
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
	}, []string{fieldPhase})

	generationTotal metrics.Counter = kitprometheus.NewCounterFrom(prometheus.CounterOpts{
		Name: "cartridge_generation_total",
		Help: "generated cartridges by status",
	}, []string{fieldStatus})

	resourcesTotal metrics.Counter = kitprometheus.NewCounterFrom(prometheus.CounterOpts{
		Name: "cartridge_resources_total",
		Help: "generated resources by kind",
	}, []string{fieldKind})

	buildInfo *prometheus.GaugeVec
)

func monitoringPhase(phase string, start time.Time) {
	generationTiming.With(fieldPhase, phase).Observe(time.Since(start).Seconds())
}

func monitoringGeneration(start time.Time, err error) {
	status := statusOK
	if err != nil {
		status = statusError
	}
	generationTotal.With(fieldStatus, status).Add(1)
	monitoringPhase(phaseTotal, start)
}

func monitoringResources(resources []model.ResourceRecord) {
	var content, assessment float64
	for _, r := range resources {
		if r.IsAssessment {
			assessment++
			continue
		}
		content++
	}
	resourcesTotal.With(fieldKind, kindContent).Add(content)
	resourcesTotal.With(fieldKind, kindAssessment).Add(assessment)
}

// NewBuildInfo метрика с версией сборки сервиса (регистрирует вызывающий)
func NewBuildInfo(namespace string) *prometheus.GaugeVec {
	buildInfo = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: namespace + "_build_info",
		Help: "A metric with a constant '1' value labeled by version, revision and goversion from which " + namespace + " was built.",
	}, []string{"version", "revision", "goversion"})

	return buildInfo
}

func SetBuildInfo(version, revision string) {
	if buildInfo == nil {
		return
	}
	buildInfo.WithLabelValues(version, revision, runtime.Version()).Set(1)
}
