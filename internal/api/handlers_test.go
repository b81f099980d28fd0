package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propkpi/server/config"
	"propkpi/server/internal/kpi"
	"propkpi/server/internal/models"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	router := gin.New()
	SetupRoutes(router, logger)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetDefaults(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/defaults", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var in models.PropertyInputs
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &in))
	assert.Equal(t, kpi.DefaultInputs(), in)
}

func TestComputeKPIs(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/kpis", kpi.DefaultInputs())
	require.Equal(t, http.StatusOK, w.Code)

	var resp KpiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 784000, resp.KPIs.TotalAcquisitionCost, 1e-6)
	assert.InDelta(t, 47500, resp.KPIs.NetOperatingIncome, 1e-6)
	assert.Equal(t, kpi.DSCRSound, resp.DSCRStatus)
	assert.Equal(t, "Safely sustainable", resp.DSCRMessage)
	assert.InDelta(t, resp.KPIs.CapRate, resp.CapRateGauge, 1e-12)
	require.Len(t, resp.Table, 8)
	assert.Equal(t, "784,000 €", resp.Table[0].Value)
}

func TestComputeKPIs_PercentRates(t *testing.T) {
	router := setupRouter(t)

	in := kpi.DefaultInputs()
	in.ClosingCostRate = 12
	in.EquityRatio = 10
	in.DebtServiceRate = 5.5

	w := doRequest(t, router, http.MethodPost, "/api/kpis?rates=percent", in)
	require.Equal(t, http.StatusOK, w.Code)

	var resp KpiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 0.12, resp.Inputs.ClosingCostRate, 1e-12)
	assert.InDelta(t, 784000, resp.KPIs.TotalAcquisitionCost, 1e-6)
	assert.InDelta(t, 38808, resp.KPIs.DebtService, 1e-6)
}

func TestComputeKPIs_Rejected(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name   string
		path   string
		modify func(*models.PropertyInputs)
	}{
		{
			name:   "zero purchase price",
			path:   "/api/kpis",
			modify: func(in *models.PropertyInputs) { in.PurchasePrice = 0 },
		},
		{
			name:   "negative living area",
			path:   "/api/kpis",
			modify: func(in *models.PropertyInputs) { in.LivingArea = -5 },
		},
		{
			name:   "equity ratio above one",
			path:   "/api/kpis",
			modify: func(in *models.PropertyInputs) { in.EquityRatio = 1.5 },
		},
		{
			name:   "percent entry without percent mode",
			path:   "/api/kpis",
			modify: func(in *models.PropertyInputs) { in.ClosingCostRate = 12 },
		},
		{
			name:   "zero debt service rate",
			path:   "/api/kpis",
			modify: func(in *models.PropertyInputs) { in.DebtServiceRate = 0 },
		},
		{
			name:   "negative rent",
			path:   "/api/kpis?rates=percent",
			modify: func(in *models.PropertyInputs) { in.AnnualNetRent = -1 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := kpi.DefaultInputs()
			tt.modify(&in)

			w := doRequest(t, router, http.MethodPost, tt.path, in)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "error")
		})
	}
}

func TestComputeKPIs_InvalidBody(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/kpis", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/kpis", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompareProperties(t *testing.T) {
	router := setupRouter(t)

	a := kpi.DefaultInputs()
	a.Name = "Altbau"
	b := kpi.DefaultInputs()
	b.Name = "Neubau"
	b.PurchasePrice = 850000
	b.AnnualNetRent = 60000
	b.LivingArea = 400

	w := doRequest(t, router, http.MethodPost, "/api/compare", CompareRequest{A: a, B: b})
	require.Equal(t, http.StatusOK, w.Code)

	var resp CompareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Altbau", resp.Comparison.NameA)
	assert.Equal(t, "Neubau", resp.Comparison.NameB)
	assert.InDelta(t, 50000, resp.B.KPIs.NetOperatingIncome, 1e-6)

	noi, ok := resp.Comparison.Lookup(models.MetricNetOperatingIncome)
	require.True(t, ok)
	assert.InDelta(t, -2500, noi.Delta, 1e-6)
	assert.Equal(t, models.VerdictWorse, noi.Verdict)
}

func TestCompareProperties_InvalidSide(t *testing.T) {
	router := setupRouter(t)

	b := kpi.DefaultInputs()
	b.LivingArea = 0

	w := doRequest(t, router, http.MethodPost, "/api/compare", CompareRequest{A: kpi.DefaultInputs(), B: b})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetDSCRStatus(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		query    string
		expected kpi.DSCRStatus
	}{
		{"0.999999", kpi.DSCRInsufficient},
		{"1.0", kpi.DSCRMarginal},
		{"1.1999", kpi.DSCRMarginal},
		{"1.2", kpi.DSCRSound},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := doRequest(t, router, http.MethodGet, "/api/dscr/status?value="+tt.query, nil)
			require.Equal(t, http.StatusOK, w.Code)

			var resp DSCRStatusResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expected, resp.Status)
			assert.NotEmpty(t, resp.Message)
		})
	}

	w := doRequest(t, router, http.MethodGet, "/api/dscr/status?value=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.AllowedOrigins = []string{"http://localhost:3000"}

	router := gin.New()
	router.Use(CORSMiddleware(cfg))
	SetupRoutes(router, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/defaults", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestGetDSCRStatus_NonFinite(t *testing.T) {
	router := setupRouter(t)

	for _, value := range []string{"NaN", "Inf", "-Inf", "+Inf"} {
		t.Run(value, func(t *testing.T) {
			w := doRequest(t, router, http.MethodGet, "/api/dscr/status?value="+url.QueryEscape(value), nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "finite")
		})
	}
}

func TestComputeKPIs_Overflow(t *testing.T) {
	router := setupRouter(t)

	in := kpi.DefaultInputs()
	in.PurchasePrice = 1e308
	in.ClosingCostRate = 1

	w := doRequest(t, router, http.MethodPost, "/api/kpis", in)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, w.Body.String())
	assert.Contains(t, w.Body.String(), "error")
}

func TestCompareProperties_Overflow(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name string
		a    func(*models.PropertyInputs)
		b    func(*models.PropertyInputs)
	}{
		{
			name: "one side overflows",
			a:    func(in *models.PropertyInputs) {},
			b: func(in *models.PropertyInputs) {
				in.PurchasePrice = 1e308
				in.ClosingCostRate = 1
			},
		},
		{
			name: "delta overflows",
			a:    func(in *models.PropertyInputs) { in.AnnualNetRent = 1.7e308 },
			b: func(in *models.PropertyInputs) {
				in.AnnualNetRent = 0
				in.OpexPerArea = 5.7e305
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := kpi.DefaultInputs()
			b := kpi.DefaultInputs()
			tt.a(&a)
			tt.b(&b)

			w := doRequest(t, router, http.MethodPost, "/api/compare", CompareRequest{A: a, B: b})
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "error")
		})
	}
}

func TestComputeKPIs_PercentModeConvertsEveryRate(t *testing.T) {
	router := setupRouter(t)

	in := kpi.DefaultInputs()
	in.ClosingCostRate = 12

	w := doRequest(t, router, http.MethodPost, "/api/kpis?rates=percent", in)
	require.Equal(t, http.StatusOK, w.Code)

	var resp KpiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 0.001, resp.Inputs.EquityRatio, 1e-12)
	assert.InDelta(t, 0.00055, resp.Inputs.DebtServiceRate, 1e-12)
}
