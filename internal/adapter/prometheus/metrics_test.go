package prometheus

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sm8ta/hospital_frontend/internal/core/domain"
)

func TestRecordRequest(t *testing.T) {
	p := NewPrometheusAdapter()

	p.RecordRequest("Login", 200, time.Now())
	p.RecordRequest("Login", 200, time.Now())
	p.RecordRequest("Login", 401, time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(p.requestsTotal.WithLabelValues("Login", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.requestsTotal.WithLabelValues("Login", "401")))
	assert.Equal(t, 1, testutil.CollectAndCount(p.requestDuration))
}

func TestRecordNavigation(t *testing.T) {
	p := NewPrometheusAdapter()

	p.RecordNavigation("/admin", domain.ReasonNoToken)
	p.RecordNavigation("/login", domain.ReasonAllowed)

	assert.Equal(t, 1.0, testutil.ToFloat64(p.navigations.WithLabelValues("/admin", "no_token")))
	assert.Equal(t, 2, testutil.CollectAndCount(p.navigations))
}

func TestWriteTextfile(t *testing.T) {
	p := NewPrometheusAdapter()
	p.RecordNavigation("/login", domain.ReasonAllowed)

	path := filepath.Join(t.TempDir(), "hospital.prom")
	require.NoError(t, p.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `hospital_client_navigations_total{reason="allowed",to="/login"} 1`)
}
