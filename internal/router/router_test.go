package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blocto/solana-go-sdk/types"
	"github.com/gin-gonic/gin"
	"github.com/piyushmali/solana-launchpad/internal/clock"
	"github.com/piyushmali/solana-launchpad/internal/config"
	"github.com/piyushmali/solana-launchpad/internal/custody"
	"github.com/piyushmali/solana-launchpad/internal/database"
	"github.com/piyushmali/solana-launchpad/internal/launchpad"
	"github.com/piyushmali/solana-launchpad/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type apiClient struct {
	t      *testing.T
	engine *gin.Engine
}

func (a apiClient) do(method, path, signer string, body interface{}) (int, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if signer != "" {
		req.Header.Set("X-Signer", signer)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func decode(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v))
}

func newAddress() string {
	return types.NewAccount().PublicKey.ToBase58()
}

func setup(t *testing.T) (apiClient, *clock.ManualClock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.OpenMemory("router_" + t.Name())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	engine, err := launchpad.NewEngine(launchpad.DefaultParams())
	require.NoError(t, err)

	cfg := &config.Config{Launchpad: config.LaunchpadConfig{
		ProgramId:     "AjUxmZYjhXbJq5yDDvxe8Hh2amWnAjLN2Wmf5oET8mZ1",
		QuoteDecimals: 9,
	}}
	clk := clock.NewManualClock(1_700_000_000)
	r := Setup(db, engine, custody.NewLedgerService(), clk, metrics.New(), cfg)
	return apiClient{t: t, engine: r}, clk
}

func TestHealth(t *testing.T) {
	api, _ := setup(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	api.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
	assert.NotEmpty(t, w.Header().Get(RequestIdHeader))
}

func TestRequestIdPassthrough(t *testing.T) {
	api, _ := setup(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIdHeader, "trace-123")
	w := httptest.NewRecorder()
	api.engine.ServeHTTP(w, req)
	assert.Equal(t, "trace-123", w.Header().Get(RequestIdHeader))
}

func TestMetricsEndpoint(t *testing.T) {
	api, _ := setup(t)
	api.do(http.MethodGet, "/api/v1/campaigns/7", "", nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	api.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `launchpad_http_requests_total{method="GET",route="/api/v1/campaigns/:id",status="404"} 1`)
}

func TestCorsPreflight(t *testing.T) {
	api, _ := setup(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/campaigns", nil)
	w := httptest.NewRecorder()
	api.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "X-Signer")
}

func TestLaunchpadFlow(t *testing.T) {
	api, clk := setup(t)
	admin, registrant, investor, mint := newAddress(), newAddress(), newAddress(), newAddress()

	// 发射台
	code, resp := api.do(http.MethodPost, "/api/v1/campaigns", admin, nil)
	require.Equal(t, http.StatusCreated, code, resp.Message)
	var campaign struct {
		Id            int64  `json:"id"`
		Admin         string `json:"admin"`
		TotalProjects uint64 `json:"total_projects"`
	}
	decode(t, resp, &campaign)
	assert.Equal(t, admin, campaign.Admin)

	// 发售
	code, resp = api.do(http.MethodPost, fmt.Sprintf("/api/v1/campaigns/%d/sales", campaign.Id), registrant, map[string]interface{}{
		"token_mint": mint,
		"soft_cap":   1_000_000,
		"hard_cap":   10_000_000,
	})
	require.Equal(t, http.StatusCreated, code, resp.Message)
	var sale struct {
		Id    int64  `json:"id"`
		Vault string `json:"vault"`
	}
	decode(t, resp, &sale)
	assert.True(t, launchpad.ValidIdentity(sale.Vault))

	// 轮次
	roundBody := map[string]interface{}{
		"price_per_token":  1_000_000,
		"tokens_available": 100_000_000_000,
		"min_contribution": 1_000,
		"max_contribution": 1_000_000,
		"start_time":       clk.Now(),
		"end_time":         clk.Now() + 86_400,
	}
	code, _ = api.do(http.MethodPost, fmt.Sprintf("/api/v1/sales/%d/rounds", sale.Id), investor, roundBody)
	assert.Equal(t, http.StatusForbidden, code)

	code, resp = api.do(http.MethodPost, fmt.Sprintf("/api/v1/sales/%d/rounds", sale.Id), registrant, roundBody)
	require.Equal(t, http.StatusCreated, code, resp.Message)
	var round struct {
		Id       int64 `json:"id"`
		IsActive bool  `json:"is_active"`
	}
	decode(t, resp, &round)
	assert.False(t, round.IsActive)

	purchasePath := fmt.Sprintf("/api/v1/rounds/%d/purchases", round.Id)
	code, _ = api.do(http.MethodPost, purchasePath, investor, map[string]interface{}{"amount": 1_000})
	assert.Equal(t, http.StatusConflict, code)

	code, resp = api.do(http.MethodPost, fmt.Sprintf("/api/v1/rounds/%d/activate", round.Id), registrant, nil)
	require.Equal(t, http.StatusOK, code, resp.Message)

	// 购买
	code, _ = api.do(http.MethodPost, purchasePath, investor, map[string]interface{}{"amount": 999})
	assert.Equal(t, http.StatusBadRequest, code)

	code, resp = api.do(http.MethodPost, purchasePath, investor, map[string]interface{}{"amount": 1_000})
	require.Equal(t, http.StatusCreated, code, resp.Message)
	var purchase struct {
		Grant struct {
			Id              int64  `json:"id"`
			TotalAllocation uint64 `json:"total_allocation"`
		} `json:"grant"`
	}
	decode(t, resp, &purchase)
	assert.Equal(t, uint64(1_000_000), purchase.Grant.TotalAllocation)

	// 领取
	claimPath := fmt.Sprintf("/api/v1/grants/%d/claim", purchase.Grant.Id)
	code, _ = api.do(http.MethodPost, claimPath, investor, nil)
	assert.Equal(t, http.StatusConflict, code)

	clk.Advance(-10)
	code, _ = api.do(http.MethodPost, claimPath, investor, nil)
	assert.Equal(t, http.StatusTooEarly, code)

	clk.Advance(10 + 1_296_000)
	code, _ = api.do(http.MethodPost, claimPath, admin, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, resp = api.do(http.MethodPost, claimPath, investor, nil)
	require.Equal(t, http.StatusOK, code, resp.Message)
	var claim struct {
		Amount uint64 `json:"amount"`
	}
	decode(t, resp, &claim)
	assert.Equal(t, uint64(500_000), claim.Amount)

	// 查询
	code, resp = api.do(http.MethodGet, fmt.Sprintf("/api/v1/grants/%d", purchase.Grant.Id), "", nil)
	require.Equal(t, http.StatusOK, code)
	var grant struct {
		Vested     uint64 `json:"vested"`
		Releasable uint64 `json:"releasable"`
	}
	decode(t, resp, &grant)
	assert.Equal(t, uint64(500_000), grant.Vested)
	assert.Zero(t, grant.Releasable)

	code, resp = api.do(http.MethodGet, "/api/v1/investors/"+investor+"/grants", "", nil)
	require.Equal(t, http.StatusOK, code)
	var grants struct {
		Grants     []json.RawMessage `json:"grants"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	decode(t, resp, &grants)
	assert.Len(t, grants.Grants, 1)
	assert.Equal(t, int64(1), grants.Pagination.Total)

	code, resp = api.do(http.MethodGet, fmt.Sprintf("/api/v1/sales/%d/stats", sale.Id), "", nil)
	require.Equal(t, http.StatusOK, code)
	var stats struct {
		TotalRaised   uint64 `json:"total_raised"`
		PurchaseCount int64  `json:"purchase_count"`
		VaultReleased uint64 `json:"vault_released"`
	}
	decode(t, resp, &stats)
	assert.Equal(t, uint64(1_000), stats.TotalRaised)
	assert.Equal(t, int64(1), stats.PurchaseCount)
	assert.Equal(t, uint64(500_000), stats.VaultReleased)

	code, resp = api.do(http.MethodGet, fmt.Sprintf("/api/v1/campaigns/%d", campaign.Id), "", nil)
	require.Equal(t, http.StatusOK, code)
	decode(t, resp, &campaign)
	assert.Equal(t, uint64(1), campaign.TotalProjects)
}

func TestRequestValidation(t *testing.T) {
	api, _ := setup(t)

	code, _ := api.do(http.MethodPost, "/api/v1/campaigns", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = api.do(http.MethodPost, "/api/v1/campaigns", "not-a-key", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = api.do(http.MethodGet, "/api/v1/campaigns/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = api.do(http.MethodGet, "/api/v1/campaigns/42", "", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = api.do(http.MethodGet, "/api/v1/investors/xyz/grants", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = api.do(http.MethodPost, "/api/v1/campaigns/1/sales", newAddress(), map[string]interface{}{"soft_cap": 1})
	assert.Equal(t, http.StatusBadRequest, code)
}
