package metrics

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KilimcininKorOglu/berx/internal/codec"
)

func result(consumed int, malformed bool, kinds ...codec.AnomalyKind) *codec.Result {
	res := &codec.Result{Root: &codec.Node{Malformed: malformed}, Consumed: consumed}
	for _, k := range kinds {
		res.Anomalies = append(res.Anomalies, codec.Anomaly{Kind: k})
	}
	return res
}

func family(t *testing.T, r *Recorder, name string) *dto.MetricFamily {
	t.Helper()
	families, err := r.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	t.Fatalf("metric family %s not gathered", name)
	return nil
}

func counter(t *testing.T, r *Recorder, name string, labels map[string]string) float64 {
	t.Helper()
	for _, m := range family(t, r, name).GetMetric() {
		got := make(map[string]string)
		for _, lp := range m.GetLabel() {
			got[lp.GetName()] = lp.GetValue()
		}
		if assert.ObjectsAreEqual(labels, got) {
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestStatus(t *testing.T) {
	assert.Equal(t, StatusOK, Status(result(10, false)))
	assert.Equal(t, StatusAnomalous, Status(result(10, false, codec.TrailingData)))
	assert.Equal(t, StatusMalformed, Status(result(10, true, codec.InsufficientData)))
	assert.Equal(t, StatusMalformed, Status(&codec.Result{}))
}

func TestRecorder_Observe(t *testing.T) {
	r := NewRecorder("berx")

	r.Observe("ldap", result(12, false))
	r.Observe("ldap", result(40, false, codec.UnknownExtensionOID, codec.TrailingData))
	r.Observe("ldap", result(3, true, codec.InsufficientData))
	r.Observe("dap", result(100, false))

	assert.Equal(t, 1.0, counter(t, r, "berx_decodes_total", map[string]string{"protocol": "ldap", "status": StatusOK}))
	assert.Equal(t, 1.0, counter(t, r, "berx_decodes_total", map[string]string{"protocol": "ldap", "status": StatusAnomalous}))
	assert.Equal(t, 1.0, counter(t, r, "berx_decodes_total", map[string]string{"protocol": "ldap", "status": StatusMalformed}))
	assert.Equal(t, 1.0, counter(t, r, "berx_decodes_total", map[string]string{"protocol": "dap", "status": StatusOK}))
	assert.Equal(t, 1.0, counter(t, r, "berx_anomalies_total", map[string]string{"protocol": "ldap", "kind": "UnknownExtensionOID"}))
	assert.Equal(t, 1.0, counter(t, r, "berx_anomalies_total", map[string]string{"protocol": "ldap", "kind": "InsufficientData"}))

	hist := family(t, r, "berx_decoded_bytes")
	assert.Equal(t, dto.MetricType_HISTOGRAM, hist.GetType())
	for _, m := range hist.GetMetric() {
		switch m.GetLabel()[0].GetValue() {
		case "ldap":
			assert.Equal(t, uint64(3), m.GetHistogram().GetSampleCount())
			assert.Equal(t, 55.0, m.GetHistogram().GetSampleSum())
		case "dap":
			assert.Equal(t, uint64(1), m.GetHistogram().GetSampleCount())
		}
	}
}

func TestRecorder_Namespace(t *testing.T) {
	r := NewRecorder("dissect")
	r.Observe("ldap", result(1, false))

	family(t, r, "dissect_decodes_total")
	family(t, r, "dissect_decoded_bytes")
}

func TestRecorder_Samples(t *testing.T) {
	r := NewRecorder("berx")
	r.Observe("ldap", result(20, false, codec.TrailingData))

	samples, err := r.Samples()
	require.NoError(t, err)
	require.Len(t, samples, 3)

	assert.Equal(t, "berx_anomalies_total", samples[0].Name)
	assert.Equal(t, map[string]string{"protocol": "ldap", "kind": "TrailingData"}, samples[0].Labels)
	assert.Equal(t, 1.0, samples[0].Value)

	assert.Equal(t, "berx_decoded_bytes", samples[1].Name)
	assert.Equal(t, 1.0, samples[1].Value)
	assert.Equal(t, 20.0, samples[1].Sum)

	assert.Equal(t, "berx_decodes_total", samples[2].Name)
	assert.Equal(t, StatusAnomalous, samples[2].Labels["status"])
}

func TestRecorder_Nil(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() { r.Observe("ldap", result(1, false)) })

	families, err := r.Gather()
	assert.NoError(t, err)
	assert.Empty(t, families)
}
