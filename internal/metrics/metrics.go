// Package metrics records decode outcomes as Prometheus metrics.
package metrics

import (
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/KilimcininKorOglu/berx/internal/codec"
)

// Decode statuses.
const (
	StatusOK        = "ok"
	StatusAnomalous = "anomalous"
	StatusMalformed = "malformed"
)

// Recorder owns a private registry so several dissectors can coexist in
// one process. A nil *Recorder records nothing.
type Recorder struct {
	registry     *prometheus.Registry
	decodes      *prometheus.CounterVec
	anomalies    *prometheus.CounterVec
	decodedBytes *prometheus.HistogramVec
}

// NewRecorder creates a Recorder whose metric names start with namespace.
func NewRecorder(namespace string) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		decodes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "decodes_total",
				Help:      "Messages decoded, by protocol and outcome.",
			},
			[]string{"protocol", "status"},
		),
		anomalies: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "anomalies_total",
				Help:      "Anomalies recorded while decoding, by protocol and kind.",
			},
			[]string{"protocol", "kind"},
		),
		decodedBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "decoded_bytes",
				Help:      "Bytes consumed per decoded message.",
				Buckets:   prometheus.ExponentialBuckets(16, 4, 8), // 16B ~ 256KiB
			},
			[]string{"protocol"},
		),
	}
	r.registry.MustRegister(r.decodes, r.anomalies, r.decodedBytes)
	return r
}

// Observe records the outcome of one decode.
func (r *Recorder) Observe(protocol string, res *codec.Result) {
	if r == nil || res == nil {
		return
	}

	r.decodes.WithLabelValues(protocol, Status(res)).Inc()
	for _, a := range res.Anomalies {
		r.anomalies.WithLabelValues(protocol, a.Kind.String()).Inc()
	}
	r.decodedBytes.WithLabelValues(protocol).Observe(float64(res.Consumed))
}

// Status classifies a decode result.
func Status(res *codec.Result) string {
	switch {
	case res.Malformed():
		return StatusMalformed
	case len(res.Anomalies) > 0:
		return StatusAnomalous
	default:
		return StatusOK
	}
}

// Registry exposes the underlying registry, e.g. for promhttp.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Gather returns the current metric families.
func (r *Recorder) Gather() ([]*dto.MetricFamily, error) {
	if r == nil {
		return nil, nil
	}
	return r.registry.Gather()
}

// Sample is one flattened counter or histogram sample.
type Sample struct {
	Name   string
	Labels map[string]string
	// Value is the counter value, or the observation count of a histogram.
	Value float64
	// Sum is the histogram sum.
	Sum float64
}

// Samples flattens the gathered families, sorted by name.
func (r *Recorder) Samples() ([]Sample, error) {
	families, err := r.Gather()
	if err != nil {
		return nil, err
	}

	var out []Sample
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			s := Sample{Name: mf.GetName(), Labels: make(map[string]string, len(m.GetLabel()))}
			for _, lp := range m.GetLabel() {
				s.Labels[lp.GetName()] = lp.GetValue()
			}
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				s.Value = m.GetCounter().GetValue()
			case dto.MetricType_HISTOGRAM:
				s.Value = float64(m.GetHistogram().GetSampleCount())
				s.Sum = m.GetHistogram().GetSampleSum()
			default:
				continue
			}
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
