package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldsim/gold-simulator/internal/marketdata"
)

func testServer() *Server {
	return New(zerolog.Nop(), marketdata.NewSpotClientWithURL("http://unused", ""))
}

func TestHealth(t *testing.T) {
	srv := testServer()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCurrentPriceFallsBack(t *testing.T) {
	srv := testServer()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/gold/current", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "fallback", body["source"])
	assert.Equal(t, "106.41", body["price_eur_per_gram"])
}

func TestHistoricalPricesValidation(t *testing.T) {
	srv := testServer()
	for _, q := range []string{"months=1", "months=9999", "months=abc"} {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/gold/historical?"+q, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/gold/historical?months=24", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var history marketdata.PriceHistory
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	assert.Len(t, history.Points, 24)
}

func TestSimulate(t *testing.T) {
	srv := testServer()
	payload := map[string]any{
		"buy_price":               124.24,
		"sell_price":              111.97,
		"monthly_quantity":        4,
		"bonus_quantity_per_year": 4,
		"mean_monthly_return":     0.005,
		"std_monthly_return":      0.04,
		"horizons":                []int{12, 36},
		"trial_count":             25,
		"seed":                    99,
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/simulate", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report struct {
		Horizons []struct {
			HorizonMonths int `json:"horizon_months"`
			TrialCount    int `json:"trial_count"`
		} `json:"horizons"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Len(t, report.Horizons, 2)
	assert.Equal(t, 12, report.Horizons[0].HorizonMonths)
	assert.Equal(t, 25, report.Horizons[0].TrialCount)

	// The cached fallback price backs the run when no initial price is sent.
	assert.Contains(t, rec.Body.String(), `"total_invested"`)
}

func TestSimulateRejectsBadInput(t *testing.T) {
	srv := testServer()

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/simulate", bytes.NewReader([]byte("{"))))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// buy <= sell fails engine validation.
	body, _ := json.Marshal(map[string]any{
		"buy_price":        100,
		"sell_price":       120,
		"monthly_quantity": 4,
		"trial_count":      5,
	})
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/simulate", bytes.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body, _ = json.Marshal(map[string]any{"trial_count": maxServerTrials + 1})
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/simulate", bytes.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
