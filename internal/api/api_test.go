package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apparel-insights/inventory-sim/internal/dataset"
	"github.com/apparel-insights/inventory-sim/internal/params"
	"github.com/apparel-insights/inventory-sim/internal/results"
	"github.com/apparel-insights/inventory-sim/internal/service"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := dataset.NewStore(dataset.SampleRecords(), true)
	svc := service.NewSimulationService(store, params.Estimate(store), nil)
	return NewRouter(Config{Service: svc, DataLoaded: true})
}

func doRequest(router *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestSeasonsFestivalsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/seasons-festivals", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Seasons   []json.RawMessage `json:"seasons"`
		Festivals []json.RawMessage `json:"festivals"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Seasons, 12)
	assert.Len(t, body.Festivals, 14)
}

func TestAvailableBrandsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/available-brands", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Brands []string `json:"brands"`
		Count  int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 4, body.Count)
	assert.Contains(t, body.Brands, "H&M")
}

func TestBrandParamsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/brand-params", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	for _, brand := range dataset.SupportedBrands {
		assert.Contains(t, body, brand)
	}
}

func TestSimulate_InvalidWindowReturns400(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodPost, "/simulate", []byte(`{"simulation_days": 0}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid simulation window")

	w = doRequest(router, http.MethodPost, "/simulate", []byte(`{"start_day": 50, "end_day": 10}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSimulate_MalformedBodyReturns400(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodPost, "/simulate", []byte(`{"simulation_days": "ten"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSimulate_RunsAndShapesResponse(t *testing.T) {
	router := newTestRouter(t)

	payload := []byte(`{
		"NIKE": {"initial_stock": 5000, "restock_days": 25, "restock_quantity": 500},
		"simulation_days": 31,
		"start_day": 0
	}`)
	w := doRequest(router, http.MethodPost, "/simulate", payload)
	require.Equal(t, http.StatusOK, w.Code)

	var resp results.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 31, resp.SimulationDays)
	assert.Len(t, resp.DailyData, 31*4)
	assert.Len(t, resp.Summary, 4)
	assert.NotEmpty(t, resp.MonthlyData)
	assert.NotEmpty(t, resp.TrendEvents)

	// Empty event lists must encode as arrays, never null.
	raw := w.Body.String()
	assert.NotContains(t, raw, `"festival_events":null`)
	assert.True(t, strings.Contains(raw, `"best_selling_products":[`))
}
