package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/incentive/internal/commission/service"
	"github.com/smallbiznis/incentive/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(CORS([]string{"http://localhost:3000"}))
	engine.Use(ErrorHandlingMiddleware())

	holder, err := config.NewStaticRulesHolder(config.DefaultCommissionRules())
	require.NoError(t, err)

	svc := service.New(service.Params{
		Log:   zap.NewNop(),
		Rules: holder,
	})

	s := NewServer(ServerParams{
		Engine:        engine,
		Config:        config.Config{AppName: "incentive", AppVersion: "test"},
		Log:           zap.NewNop(),
		CommissionSvc: svc,
	})
	s.RegisterAPIRoutes()
	return s
}

func postCommission(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/commission", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

type commissionResponse struct {
	Commission         float64 `json:"commission"`
	Eligible           bool    `json:"eligible"`
	PercentageOfTarget float64 `json:"percentage_of_target"`
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details struct {
		Field      string `json:"field"`
		Constraint string `json:"constraint"`
	} `json:"details"`
}

func TestCalculateCommission_Eligible(t *testing.T) {
	s := newTestServer(t)

	w := postCommission(t, s, `{"sales_amount": 100000, "target_amount": 120000}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp commissionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 5000.0, resp.Commission)
	assert.True(t, resp.Eligible)
	assert.Equal(t, 83.33, resp.PercentageOfTarget)
}

func TestCalculateCommission_ThresholdBoundary(t *testing.T) {
	s := newTestServer(t)

	w := postCommission(t, s, `{"sales_amount": 96000, "target_amount": 120000}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp commissionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 4800.0, resp.Commission)
	assert.True(t, resp.Eligible)
	assert.Equal(t, 80.0, resp.PercentageOfTarget)
}

func TestCalculateCommission_NotEligible(t *testing.T) {
	s := newTestServer(t)

	w := postCommission(t, s, `{"sales_amount": 60000, "target_amount": 100000}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp commissionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0.0, resp.Commission)
	assert.False(t, resp.Eligible)
	assert.Equal(t, 60.0, resp.PercentageOfTarget)
}

func TestCalculateCommission_StringAmounts(t *testing.T) {
	// Amounts may arrive as strings; they parse the same way.
	s := newTestServer(t)

	w := postCommission(t, s, `{"sales_amount": "100000", "target_amount": "120000"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp commissionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 5000.0, resp.Commission)
}

func TestCalculateCommission_ValidationErrors(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		field      string
		constraint string
	}{
		{"negative sales", `{"sales_amount": -1, "target_amount": 1000}`, "sales_amount", "non_negative"},
		{"zero target", `{"sales_amount": 1000, "target_amount": 0}`, "target_amount", "greater_than_zero"},
		{"sales above max", `{"sales_amount": 1e13, "target_amount": 1000}`, "sales_amount", "max_amount_exceeded"},
		{"sales not a number", `{"sales_amount": "abc", "target_amount": 1000}`, "sales_amount", "must_be_number"},
		{"missing target", `{"sales_amount": 1000}`, "target_amount", "must_be_number"},
	}

	s := newTestServer(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postCommission(t, s, tc.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp apiError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "ValidationError", resp.Error)
			assert.NotEmpty(t, resp.Message)
			assert.Equal(t, tc.field, resp.Details.Field)
			assert.Equal(t, tc.constraint, resp.Details.Constraint)
		})
	}
}

func TestCalculateCommission_MaxAmountIsValid(t *testing.T) {
	s := newTestServer(t)

	w := postCommission(t, s, `{"sales_amount": 1000000000000, "target_amount": 1000000000000}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp commissionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Eligible)
	assert.Equal(t, 100.0, resp.PercentageOfTarget)
}

func TestCalculateCommission_MalformedBody(t *testing.T) {
	s := newTestServer(t)

	w := postCommission(t, s, `{"sales_amount": `)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp apiError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ValidationError", resp.Error)
	assert.Equal(t, "request", resp.Details.Field)
}

func TestCommissionHealth(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/commission/health", nil)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "incentive", resp["service"])
}

func TestServiceInfo(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "incentive", resp["service"])
	assert.Equal(t, "test", resp["version"])
}

func TestCORS_Preflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/commission", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
