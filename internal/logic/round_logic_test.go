package logic

import (
	"context"
	"testing"

	"github.com/piyushmali/solana-launchpad/internal/launchpad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndActivateRound(t *testing.T) {
	env := newTestEnv(t, launchpad.DefaultParams(), nil)
	ctx := context.Background()

	campaign, err := env.campaign.Initialize(ctx, env.admin)
	require.NoError(t, err)
	sale, err := env.campaign.RegisterSale(ctx, campaign.Id, env.registrant, env.mint, 10, 100)
	require.NoError(t, err)

	spec := launchpad.RoundSpec{PricePerToken: 5, TokensAvailable: 1_000, MinContribution: 1, MaxContribution: 50, StartTime: 100, EndTime: 200}

	_, err = env.rounds.AddRound(ctx, sale.Id, newAddress(), spec)
	assert.ErrorIs(t, err, ErrUnauthorizedSigner)

	_, err = env.rounds.AddRound(ctx, sale.Id+1, env.registrant, spec)
	assert.ErrorIs(t, err, ErrSaleNotFound)

	bad := spec
	bad.PricePerToken = 0
	_, err = env.rounds.AddRound(ctx, sale.Id, env.registrant, bad)
	assert.ErrorIs(t, err, launchpad.ErrZeroPrice)

	round, err := env.rounds.AddRound(ctx, sale.Id, env.registrant, spec)
	require.NoError(t, err)
	assert.False(t, round.IsActive)
	assert.Zero(t, round.TokensSold)

	_, err = env.rounds.ActivateRound(ctx, round.Id, env.admin)
	assert.ErrorIs(t, err, ErrUnauthorizedSigner)

	// 时间窗口早已过去，激活仍然成功
	activated, err := env.rounds.ActivateRound(ctx, round.Id, env.registrant)
	require.NoError(t, err)
	assert.True(t, activated.IsActive)

	stored, err := env.campaign.GetSale(ctx, sale.Id)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)

	second, err := env.rounds.AddRound(ctx, sale.Id, env.registrant, spec)
	require.NoError(t, err)

	rounds, err := env.rounds.ListRounds(ctx, sale.Id)
	require.NoError(t, err)
	require.Len(t, rounds, 2)
	assert.True(t, rounds[0].IsActive)
	assert.Equal(t, second.Id, rounds[1].Id)
	assert.False(t, rounds[1].IsActive)

	_, err = env.rounds.ActivateRound(ctx, 999, env.registrant)
	assert.ErrorIs(t, err, ErrRoundNotFound)
	assert.Zero(t, locks.size())
}

func TestLedgerAmountsBeyondStorableRange(t *testing.T) {
	env := newTestEnv(t, launchpad.DefaultParams(), nil)
	ctx := context.Background()

	campaign, err := env.campaign.Initialize(ctx, env.admin)
	require.NoError(t, err)

	_, err = env.campaign.RegisterSale(ctx, campaign.Id, env.registrant, env.mint, 1, 1<<63+5)
	assert.ErrorIs(t, err, launchpad.ErrAmountOutOfRange)

	sale, err := env.campaign.RegisterSale(ctx, campaign.Id, env.registrant, env.mint, 1, launchpad.MaxAmount)
	require.NoError(t, err)
	stored, err := env.campaign.GetSale(ctx, sale.Id)
	require.NoError(t, err)
	assert.Equal(t, launchpad.MaxAmount, stored.HardCap)

	spec := launchpad.RoundSpec{
		PricePerToken:   1_000_000,
		TokensAvailable: 10_000_000_000_000_000_000,
		MinContribution: 1,
		MaxContribution: 1_000_000,
		StartTime:       100,
		EndTime:         200,
	}
	_, err = env.rounds.AddRound(ctx, sale.Id, env.registrant, spec)
	assert.ErrorIs(t, err, launchpad.ErrAmountOutOfRange)

	spec.TokensAvailable = launchpad.MaxAmount
	round, err := env.rounds.AddRound(ctx, sale.Id, env.registrant, spec)
	require.NoError(t, err)
	storedRound, err := env.rounds.GetRound(ctx, round.Id)
	require.NoError(t, err)
	assert.Equal(t, launchpad.MaxAmount, storedRound.TokensAvailable)

	campaign, err = env.campaign.GetCampaign(ctx, campaign.Id)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), campaign.TotalProjects)
}
