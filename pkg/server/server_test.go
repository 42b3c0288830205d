package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/engine"
	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/refdata/refdatamock"
	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/types"
)

func testTariffRows() []types.TariffRow {
	rows := make([]types.TariffRow, 0, 20)
	for usage := 100.0; usage <= 2000; usage += 100 {
		rows = append(rows, types.TariffRow{
			UsageKWH:    usage,
			UsageCharge: usage * 0.5,
		})
	}
	return rows
}

func testPackages() []types.PackageOption {
	return []types.PackageOption{
		{
			ID:       "res-14-620",
			Name:     "14x 620W",
			PanelQty: 14,
			Price:    30000,
			WattageW: 620,
			Type:     types.PackageTypeResidential,
			Active:   true,
		},
	}
}

func testQuoteParams() types.QuoteParams {
	return types.QuoteParams{
		Amount:              450,
		SunPeakHour:         3.4,
		MorningUsagePercent: 50,
		PanelTypeW:          620,
		SMPPrice:            0.2,
		BatterySizeKWH:      5,
	}
}

func newTestServer(src *refdatamock.MockSource) *Server {
	return &Server{
		source:   src,
		engine:   engine.NewEngine(),
		sessions: newSessionStore(time.Hour),
	}
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestHandleQuote(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockS := &refdatamock.MockSource{}
		mockS.On("Tariffs", mock.Anything).Return(testTariffRows(), nil)
		mockS.On("Packages", mock.Anything).Return(testPackages(), nil)
		srv := newTestServer(mockS)

		w := postJSON(t, srv.setupHandler(), "/api/quote", quoteRequest{Params: testQuoteParams()})

		require.Equal(t, http.StatusOK, w.Code)
		var result types.QuoteResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, 14, result.RecommendedPanels)
		require.NotNil(t, result.SelectedPackage)
		assert.Equal(t, "res-14-620", result.SelectedPackage.ID)
		assert.Greater(t, result.MonthlySavings, 0.0)
		mockS.AssertExpectations(t)
	})

	t.Run("Invalid Body", func(t *testing.T) {
		srv := newTestServer(&refdatamock.MockSource{})

		req := httptest.NewRequest(http.MethodPost, "/api/quote", bytes.NewReader([]byte("{not json")))
		w := httptest.NewRecorder()
		srv.setupHandler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid request body")
	})

	t.Run("Validation Error", func(t *testing.T) {
		mockS := &refdatamock.MockSource{}
		mockS.On("Tariffs", mock.Anything).Return(testTariffRows(), nil)
		mockS.On("Packages", mock.Anything).Return(testPackages(), nil)
		srv := newTestServer(mockS)

		params := testQuoteParams()
		params.SunPeakHour = 7.5
		w := postJSON(t, srv.setupHandler(), "/api/quote", quoteRequest{Params: params})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body struct {
			Error string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Contains(t, body.Error, "sunPeakHour")
	})

	t.Run("Empty Tariff Table", func(t *testing.T) {
		mockS := &refdatamock.MockSource{}
		mockS.On("Tariffs", mock.Anything).Return([]types.TariffRow{}, nil)
		mockS.On("Packages", mock.Anything).Return(testPackages(), nil)
		srv := newTestServer(mockS)

		w := postJSON(t, srv.setupHandler(), "/api/quote", quoteRequest{Params: testQuoteParams()})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Source Error", func(t *testing.T) {
		mockS := &refdatamock.MockSource{}
		mockS.On("Tariffs", mock.Anything).Return(nil, errors.New("backend down"))
		srv := newTestServer(mockS)

		w := postJSON(t, srv.setupHandler(), "/api/quote", quoteRequest{Params: testQuoteParams()})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		// internal detail must not leak to the client
		assert.NotContains(t, w.Body.String(), "backend down")
	})

	t.Run("Wrong Method", func(t *testing.T) {
		srv := newTestServer(&refdatamock.MockSource{})

		req := httptest.NewRequest(http.MethodGet, "/api/quote", nil)
		w := httptest.NewRecorder()
		srv.setupHandler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestHandleQuotePreview(t *testing.T) {
	mockS := &refdatamock.MockSource{}
	mockS.On("Tariffs", mock.Anything).Return(testTariffRows(), nil)
	mockS.On("Packages", mock.Anything).Return(testPackages(), nil)
	srv := newTestServer(mockS)
	handler := srv.setupHandler()

	var sessionID string
	var baselineSavings float64

	t.Run("First Call Captures Baseline", func(t *testing.T) {
		w := postJSON(t, handler, "/api/quote/preview", previewRequest{Params: testQuoteParams()})

		require.Equal(t, http.StatusOK, w.Code)
		var resp previewResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.SessionID)
		require.NotNil(t, resp.Baseline)
		assert.Equal(t, resp.Result.MonthlySavings, resp.Baseline.MonthlySavings)
		assert.Zero(t, resp.SavingsDelta)

		sessionID = resp.SessionID
		baselineSavings = resp.Baseline.MonthlySavings
	})

	t.Run("Baseline Survives Later Calls", func(t *testing.T) {
		params := testQuoteParams()
		params.BatterySizeKWH = 10
		w := postJSON(t, handler, "/api/quote/preview", previewRequest{
			SessionID: sessionID,
			Params:    params,
		})

		require.Equal(t, http.StatusOK, w.Code)
		var resp previewResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, sessionID, resp.SessionID)
		require.NotNil(t, resp.Baseline)
		assert.Equal(t, baselineSavings, resp.Baseline.MonthlySavings)
		assert.InDelta(t, resp.Result.MonthlySavings-baselineSavings, resp.SavingsDelta, 1e-9)
	})

	t.Run("Unknown Session Gets A New One", func(t *testing.T) {
		w := postJSON(t, handler, "/api/quote/preview", previewRequest{
			SessionID: "does-not-exist",
			Params:    testQuoteParams(),
		})

		require.Equal(t, http.StatusOK, w.Code)
		var resp previewResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEqual(t, "does-not-exist", resp.SessionID)
		assert.NotEmpty(t, resp.SessionID)
	})
}

func TestReferenceDataEndpoints(t *testing.T) {
	mockS := &refdatamock.MockSource{}
	mockS.On("Tariffs", mock.Anything).Return(testTariffRows(), nil)
	mockS.On("Packages", mock.Anything).Return(testPackages(), nil)
	srv := newTestServer(mockS)
	handler := srv.setupHandler()

	t.Run("Tariffs", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/tariffs", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Cache-Control"), "max-age")
		var rows []types.TariffRow
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
		assert.Len(t, rows, 20)
	})

	t.Run("Packages", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/packages", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var catalog []types.PackageOption
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &catalog))
		require.Len(t, catalog, 1)
		assert.Equal(t, "res-14-620", catalog[0].ID)
	})
}

func TestMiddleware(t *testing.T) {
	srv := newTestServer(&refdatamock.MockSource{})
	srv.serverName = "rev-1"
	handler := srv.setupHandler()

	t.Run("Healthz", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", w.Body.String())
	})

	t.Run("Security Headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
		assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
		assert.Equal(t, "rev-1", w.Header().Get("Server"))
	})

	t.Run("CORS Preflight", func(t *testing.T) {
		corsSrv := newTestServer(&refdatamock.MockSource{})
		corsSrv.corsOrigins = []string{"https://quotes.example.com"}
		corsHandler := corsSrv.setupHandler()

		req := httptest.NewRequest(http.MethodOptions, "/api/quote", nil)
		req.Header.Set("Origin", "https://quotes.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		corsHandler.ServeHTTP(w, req)

		assert.Equal(t, "https://quotes.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})
}
