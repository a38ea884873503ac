package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxygene76/celestial-lookup/pkg/catalog"
	"github.com/oxygene76/celestial-lookup/pkg/client"
	"github.com/oxygene76/celestial-lookup/pkg/lookup"
	"github.com/oxygene76/celestial-lookup/pkg/sources"
	"github.com/oxygene76/celestial-lookup/pkg/utils"
)

const earthDoc = `{
  "englishName": "Earth",
  "semimajorAxis": 149598023,
  "eccentricity": 0.0167,
  "mass": {"massValue": 5.97237, "massExponent": 24},
  "meanRadius": 6371.0084,
  "sideralOrbit": 365.256,
  "sideralRotation": 23.9345
}`

// newTestServer serves the API against a fake upstream that only knows Earth.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/bodies/terre" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, earthDoc)
	}))
	t.Cleanup(upstream.Close)

	cfg := utils.DefaultConfig()
	cfg.Sources[sources.SolarSystemOpenData] = utils.SourceConfig{
		URL:    upstream.URL + "/rest/bodies/{id}",
		Schema: sources.SolarSystemOpenData,
	}

	metrics, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	pipeline, err := lookup.New(catalog.Default(), client.NewBodyClient(cfg, nil), sources.Builtin(),
		cfg.Display.Order, nil, lookup.WithObserver(metrics))
	require.NoError(t, err)

	srv := httptest.NewServer(New(pipeline, metrics, nil).Routes())
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	var body map[string]string
	resp := getJSON(t, srv.URL+"/healthz", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestBodies(t *testing.T) {
	srv := newTestServer(t)

	var body struct {
		Bodies []catalog.Entry `json:"bodies"`
	}
	resp := getJSON(t, srv.URL+"/api/bodies?kind=moon", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, body.Bodies)
	for _, e := range body.Bodies {
		assert.Equal(t, "moon", e.Kind)
		assert.NotEmpty(t, e.Orbits)
	}
}

func TestBodyLookup(t *testing.T) {
	srv := newTestServer(t)

	var report struct {
		Body    string `json:"body"`
		Display []struct {
			Key  string `json:"key"`
			Text string `json:"text"`
		} `json:"display"`
		Derived map[string]any `json:"derived"`
	}
	resp := getJSON(t, srv.URL+"/api/bodies/earth", &report)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "Earth", report.Body)
	require.Len(t, report.Display, 10)
	assert.Equal(t, "mass", report.Display[0].Key)
	assert.Equal(t, "Mass: 5.972 × 10^24 kg", report.Display[0].Text)
	assert.Equal(t, false, report.Derived["assumed_circular_orbit"])
}

func TestBodyLookupErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		path   string
		status int
	}{
		{"/api/bodies/Vulcan", http.StatusNotFound},
		{"/api/bodies/Venus", http.StatusBadGateway},
		{"/api/bodies/Earth/quantities/colour", http.StatusNotFound},
		{"/api/compare?quantity=mass", http.StatusBadRequest},
		{"/nowhere", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var body errorResponse
			resp := getJSON(t, srv.URL+tt.path, &body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.status, body.Code)
			assert.NotEmpty(t, body.Text)
		})
	}
}

func TestQuantity(t *testing.T) {
	srv := newTestServer(t)

	var value struct {
		Key      string   `json:"key"`
		Value    *float64 `json:"value"`
		Notation string   `json:"notation"`
		Text     string   `json:"text"`
	}
	resp := getJSON(t, srv.URL+"/api/bodies/Earth/quantities/surface_gravity", &value)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Surface Gravity: 9.820 m/s^2", value.Text)
	assert.Equal(t, "fixed", value.Notation)

	// eccentricity is not in the default display order
	resp = getJSON(t, srv.URL+"/api/bodies/Earth/quantities/eccentricity", &value)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Eccentricity: 0.017", value.Text)
	require.NotNil(t, value.Value)
	assert.Equal(t, 0.0167, *value.Value)
}

func TestCompare(t *testing.T) {
	srv := newTestServer(t)

	var summary struct {
		Count int      `json:"count"`
		Mean  *float64 `json:"mean"`
		Std   *float64 `json:"std_dev"`
	}
	resp := getJSON(t, srv.URL+"/api/compare?bodies=Earth,%20earth&quantity=mass", &summary)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, summary.Count)
	require.NotNil(t, summary.Mean)
	assert.InEpsilon(t, 5.97237e24, *summary.Mean, 1e-12)
	require.NotNil(t, summary.Std)
	assert.Zero(t, *summary.Std)
}

func TestMetrics(t *testing.T) {
	srv := newTestServer(t)

	getJSON(t, srv.URL+"/api/bodies/Earth", nil)
	getJSON(t, srv.URL+"/api/bodies/Vulcan", nil)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, `celestial_lookups_total{outcome="ok",source="solar-system-opendata"} 1`)
	assert.Contains(t, text, `celestial_lookups_total{outcome="unknown_body",source="none"} 1`)
	assert.Contains(t, text, `celestial_lookup_duration_seconds_count{source="solar-system-opendata"} 1`)
}

func TestNewMetricsReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewMetrics(reg)
	require.NoError(t, err)
	second, err := NewMetrics(reg)
	require.NoError(t, err)
	assert.Same(t, first.Lookups, second.Lookups)

	var nilMetrics *Metrics
	nilMetrics.ObserveLookup("x", "ok", 0)
	nilMetrics.ObserveUnknown("mass")
}
