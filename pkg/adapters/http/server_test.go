package http

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/strata/pkg/adapters/memory"
	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pointScene() domain.Scene {
	return domain.Scene{
		ID:    "point",
		Title: "Point load",
		Sources: []domain.SourceSpec{
			{Type: "point", Position: []float64{0, 0, 0}, Vector: []float64{1, 0, 0}},
		},
		Grid: domain.GridSpec{Min: -2, Max: 2, N: 8, Z: 0},
	}
}

func newTestHandler(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	loader, err := memory.NewLoader(pointScene())
	require.NoError(t, err)
	h, err := NewHandler(append([]Option{WithScenes(loader), WithVersion("test")}, opts...)...)
	require.NoError(t, err)
	return h
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestGetSwagger(t *testing.T) {
	doc, err := GetSwagger()
	require.NoError(t, err)
	assert.NotNil(t, doc.Paths.Find("/v1/stress"))
}

func TestHealthAndInfo(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, "GET", "/info", "")
	require.Equal(t, http.StatusOK, w.Code)
	var info map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "test", info["version"])
	assert.Equal(t, "1.0.0", info["api_version"])
}

func TestEvaluateStress(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := newTestHandler(t, WithMetrics(observability.NewMetrics(reg), reg))

	body := `{"sources":[{"type":"point","vector":[1,0,0]}],"points":[[1,0,0],[0,0,0]]}`
	w := do(t, h, "POST", "/v1/stress", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp StressResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Stresses, 2)
	assert.NotZero(t, resp.Stresses[0][domain.Sxx])
	assert.True(t, resp.Stresses[1].IsZero(), "source point is singular and reports zero")

	w = do(t, h, "GET", "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `adapter="http"`)
}

func TestEvaluateStress_Rejects(t *testing.T) {
	h := newTestHandler(t)

	cases := map[string]string{
		"short point":    `{"sources":[{"type":"point","vector":[1,0,0]}],"points":[[1,0]]}`,
		"unknown type":   `{"sources":[{"type":"ring"}],"points":[[1,0,0]]}`,
		"no sources":     `{"sources":[],"points":[[1,0,0]]}`,
		"bad json":       `{"sources":`,
		"bad material":   `{"sources":[{"type":"point","vector":[1,0,0],"shear":1,"poisson":0.7}],"points":[[1,0,0]]}`,
		"missing points": `{"sources":[{"type":"point","vector":[1,0,0]}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := do(t, h, "POST", "/v1/stress", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestSampleGrid(t *testing.T) {
	h := newTestHandler(t)

	body := `{"sources":[{"type":"point","vector":[1,0,0]}],"grid":{"min":-1,"max":1,"n":3,"z":1},"component":"Sxy"}`
	w := do(t, h, "POST", "/v1/grid", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp FieldResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Sxy", resp.Component)
	require.Len(t, resp.Values, 3)
	assert.Len(t, resp.Values[0], 3)
	assert.LessOrEqual(t, resp.Min, resp.Max)

	w = do(t, h, "POST", "/v1/grid", strings.Replace(body, `"n":3`, `"n":1`, 1))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "POST", "/v1/grid", strings.Replace(body, `"Sxy"`, `"Sqq"`, 1))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScenes(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, "GET", "/v1/scenes", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Scenes []SceneSummary `json:"scenes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, []SceneSummary{{ID: "point", Title: "Point load", Sources: 1}}, list.Scenes)

	w = do(t, h, "GET", "/v1/scenes/point", "")
	require.Equal(t, http.StatusOK, w.Code)
	var scene domain.Scene
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scene))
	assert.Equal(t, pointScene(), scene)

	w = do(t, h, "GET", "/v1/scenes/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlotScene(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, "GET", "/v1/scenes/point/plot/sxx?n=10", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 600, img.Bounds().Dx())

	// Syz vanishes on the plane of an x-directed point load.
	w = do(t, h, "GET", "/v1/scenes/point/plot/Syz", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())

	w = do(t, h, "GET", "/v1/scenes/point/plot/Sqq", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "GET", "/v1/scenes/point/plot/Sxx?n=1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "GET", "/v1/scenes/missing/plot/Sxx", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSAndSpec(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, "OPTIONS", "/v1/stress", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(t, h, "GET", "/openapi.yaml", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Strata API")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(domain.ErrSceneNotFound))
	assert.Equal(t, http.StatusBadRequest, statusFor(domain.ErrInvalidGrid))
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}
