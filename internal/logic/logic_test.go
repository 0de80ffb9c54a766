package logic

import (
	"context"
	"strings"
	"testing"

	"github.com/blocto/solana-go-sdk/types"
	"github.com/piyushmali/solana-launchpad/internal/clock"
	"github.com/piyushmali/solana-launchpad/internal/custody"
	"github.com/piyushmali/solana-launchpad/internal/database"
	"github.com/piyushmali/solana-launchpad/internal/launchpad"
	"github.com/piyushmali/solana-launchpad/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testProgramId = "AjUxmZYjhXbJq5yDDvxe8Hh2amWnAjLN2Wmf5oET8mZ1"

type testEnv struct {
	db       *gorm.DB
	clock    *clock.ManualClock
	engine   *launchpad.Engine
	campaign *CampaignLogic
	rounds   *RoundLogic
	purchase *PurchaseLogic
	claims   *ClaimLogic
	stats    *StatsLogic

	admin      string
	registrant string
	mint       string
}

func newAddress() string {
	return types.NewAccount().PublicKey.ToBase58()
}

func newTestEnv(t *testing.T, params launchpad.Params, custodySvc custody.Service) *testEnv {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.OpenMemory(name)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	engine, err := launchpad.NewEngine(params)
	require.NoError(t, err)

	if custodySvc == nil {
		custodySvc = custody.NewLedgerService()
	}
	clk := clock.NewManualClock(1_700_000_000)

	return &testEnv{
		db:         db,
		clock:      clk,
		engine:     engine,
		campaign:   NewCampaignLogic(db, engine, testProgramId),
		rounds:     NewRoundLogic(db, engine),
		purchase:   NewPurchaseLogic(db, engine, custodySvc, clk),
		claims:     NewClaimLogic(db, engine, custodySvc, clk),
		stats:      NewStatsLogic(db, 9),
		admin:      newAddress(),
		registrant: newAddress(),
		mint:       newAddress(),
	}
}

// openSale 创建发射台、发售(soft=1e6, hard=1e7) 和一个已激活轮次(price=1e6, min=1e3, max=1e6)
func (e *testEnv) openSale(t *testing.T, tokensAvailable uint64) (*model.SaleModel, *model.RoundModel) {
	t.Helper()
	ctx := context.Background()

	campaign, err := e.campaign.Initialize(ctx, e.admin)
	require.NoError(t, err)
	sale, err := e.campaign.RegisterSale(ctx, campaign.Id, e.registrant, e.mint, 1_000_000, 10_000_000)
	require.NoError(t, err)

	now := e.clock.Now()
	round, err := e.rounds.AddRound(ctx, sale.Id, e.registrant, launchpad.RoundSpec{
		PricePerToken:   1_000_000,
		TokensAvailable: tokensAvailable,
		MinContribution: 1_000,
		MaxContribution: 1_000_000,
		StartTime:       now,
		EndTime:         now + 7*86400,
	})
	require.NoError(t, err)
	round, err = e.rounds.ActivateRound(ctx, round.Id, e.registrant)
	require.NoError(t, err)

	sale, err = e.campaign.GetSale(ctx, sale.Id)
	require.NoError(t, err)
	return sale, round
}

func (e *testEnv) reload(t *testing.T, sale *model.SaleModel, round *model.RoundModel) (*model.SaleModel, *model.RoundModel) {
	t.Helper()
	ctx := context.Background()
	s, err := e.campaign.GetSale(ctx, sale.Id)
	require.NoError(t, err)
	r, err := e.rounds.GetRound(ctx, round.Id)
	require.NoError(t, err)
	return s, r
}

func (e *testEnv) count(t *testing.T, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(m).Count(&n).Error)
	return n
}
