// Package metrics exposes the domain-level prometheus instrumentation.
// HTTP-level metrics come from the echoprometheus middleware; the counters
// here track codec behavior per modality.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Service bundles the codec metric vectors. Each instance carries its own
// registry so multiple servers can coexist in one process (tests).
type Service struct {
	Registry *prometheus.Registry

	EmbedsTotal     *prometheus.CounterVec
	VerifiesTotal   *prometheus.CounterVec
	CodecDuration   *prometheus.HistogramVec
	DetectionsTotal *prometheus.CounterVec
}

// New builds a registry with the codec metrics and the standard process and
// go runtime collectors.
func New() *Service {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)

	return &Service{
		Registry: registry,
		EmbedsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "watermark_embeds_total",
			Help: "Embed calls by data type and outcome.",
		}, []string{"data_type", "outcome"}),
		VerifiesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "watermark_verifies_total",
			Help: "Verify calls by data type and outcome.",
		}, []string{"data_type", "outcome"}),
		CodecDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "watermark_codec_duration_seconds",
			Help:    "Codec transform duration by operation and data type.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation", "data_type"}),
		DetectionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "watermark_detections_total",
			Help: "Verification verdicts by data type and verdict.",
		}, []string{"data_type", "verdict"}),
	}
}

// ObserveEmbed records one embed call.
func (s *Service) ObserveEmbed(dataType string, start time.Time, err error) {
	s.EmbedsTotal.WithLabelValues(dataType, outcome(err)).Inc()
	s.CodecDuration.WithLabelValues("embed", dataType).Observe(time.Since(start).Seconds())
}

// ObserveVerify records one verify call and its verdict.
func (s *Service) ObserveVerify(dataType string, start time.Time, detected, tampered bool, err error) {
	s.VerifiesTotal.WithLabelValues(dataType, outcome(err)).Inc()
	s.CodecDuration.WithLabelValues("verify", dataType).Observe(time.Since(start).Seconds())

	if err != nil {
		return
	}

	verdict := "clean"
	switch {
	case tampered:
		verdict = "tampered"
	case detected:
		verdict = "detected"
	}
	s.DetectionsTotal.WithLabelValues(dataType, verdict).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
