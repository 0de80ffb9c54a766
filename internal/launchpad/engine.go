package launchpad

import (
	"math"
	"math/bits"

	"github.com/piyushmali/solana-launchpad/internal/model"
)

// MaxAmount 账本金额列可存储的最大值，数据库按有符号 64 位整数绑定参数
const MaxAmount uint64 = math.MaxInt64

// RoundSpec 新增轮次参数
type RoundSpec struct {
	PricePerToken   uint64
	TokensAvailable uint64
	MinContribution uint64
	MaxContribution uint64
	StartTime       int64
	EndTime         int64
}

// Engine 发售与归属记账引擎，只处理内存中的记录，持久化和加锁由调用方负责
type Engine struct {
	params Params
	scale  uint64
}

// NewEngine 创建记账引擎
func NewEngine(params Params) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Engine{params: params, scale: params.scale()}, nil
}

// Params 返回引擎参数
func (e *Engine) Params() Params {
	return e.params
}

// Initialize 创建发射台
func Initialize(admin string) (*model.CampaignModel, error) {
	if !ValidIdentity(admin) {
		return nil, ErrInvalidIdentity
	}
	return &model.CampaignModel{Admin: admin, TotalProjects: 0}, nil
}

// RegisterSale 注册新的代币发售，并增加发射台的项目计数
func (e *Engine) RegisterSale(campaign *model.CampaignModel, registrant, tokenMint string, softCap, hardCap uint64) (*model.SaleModel, error) {
	if !ValidIdentity(registrant) || !ValidIdentity(tokenMint) {
		return nil, ErrInvalidIdentity
	}
	if softCap > MaxAmount || hardCap > MaxAmount {
		return nil, ErrAmountOutOfRange
	}
	if e.params.EnforceCapOrder && hardCap < softCap {
		return nil, ErrInvalidCaps
	}

	campaign.TotalProjects++

	return &model.SaleModel{
		CampaignId:  campaign.Id,
		Registrant:  registrant,
		TokenMint:   tokenMint,
		SoftCap:     softCap,
		HardCap:     hardCap,
		TotalRaised: 0,
		IsActive:    false,
	}, nil
}

// AddRound 为发售新增轮次，新轮次默认未激活
func (e *Engine) AddRound(sale *model.SaleModel, spec RoundSpec) (*model.RoundModel, error) {
	if spec.PricePerToken == 0 {
		return nil, ErrZeroPrice
	}
	if spec.EndTime <= spec.StartTime {
		return nil, ErrInvalidRoundWindow
	}
	if spec.MinContribution > spec.MaxContribution {
		return nil, ErrInvalidContributionBounds
	}
	if spec.PricePerToken > MaxAmount || spec.TokensAvailable > MaxAmount || spec.MaxContribution > MaxAmount {
		return nil, ErrAmountOutOfRange
	}

	return &model.RoundModel{
		SaleId:          sale.Id,
		PricePerToken:   spec.PricePerToken,
		TokensAvailable: spec.TokensAvailable,
		TokensSold:      0,
		MinContribution: spec.MinContribution,
		MaxContribution: spec.MaxContribution,
		StartTime:       spec.StartTime,
		EndTime:         spec.EndTime,
		IsActive:        false,
	}, nil
}

// ActivateRound 激活轮次，不校验时间窗口；轮次激活后发售也随之进入活跃状态
func ActivateRound(round *model.RoundModel, sale *model.SaleModel) {
	round.IsActive = true
	if sale != nil {
		sale.IsActive = true
	}
}

// TokensFor 计算 amount * 10^decimals / price，小数部分截断
func (e *Engine) TokensFor(amount, pricePerToken uint64) (uint64, error) {
	if pricePerToken == 0 {
		return 0, ErrDivisionByZero
	}
	hi, lo := bits.Mul64(amount, e.scale)
	if hi != 0 {
		return 0, ErrArithmeticOverflow
	}
	return lo / pricePerToken, nil
}

// CheckPurchase 按顺序校验购买请求，返回可获得的代币数量，不修改任何记录
func (e *Engine) CheckPurchase(round *model.RoundModel, sale *model.SaleModel, amount uint64, now int64) (uint64, error) {
	if round.SaleId != sale.Id {
		return 0, ErrRoundSaleMismatch
	}
	if !round.IsActive {
		return 0, ErrRoundNotActive
	}
	if e.params.EnforceRoundWindow && (now < round.StartTime || now > round.EndTime) {
		return 0, ErrRoundWindowClosed
	}

	if amount == 0 {
		return 0, ErrZeroContribution
	}
	if amount < round.MinContribution {
		return 0, ErrContributionTooLow
	}
	if amount > round.MaxContribution {
		return 0, ErrContributionExceeded
	}
	// total_raised + amount <= hard_cap，写成减法避免溢出
	if sale.TotalRaised > sale.HardCap || amount > sale.HardCap-sale.TotalRaised {
		return 0, ErrHardCapReached
	}

	tokens, err := e.TokensFor(amount, round.PricePerToken)
	if err != nil {
		return 0, err
	}
	if tokens > round.TokensAvailable {
		return 0, ErrInsufficientTokens
	}
	return tokens, nil
}

// Purchase 校验通过后更新轮次和发售的记账，并生成归属计划
func (e *Engine) Purchase(round *model.RoundModel, sale *model.SaleModel, investor string, amount uint64, now int64) (*model.VestingGrantModel, error) {
	if !ValidIdentity(investor) {
		return nil, ErrInvalidIdentity
	}
	tokens, err := e.CheckPurchase(round, sale, amount, now)
	if err != nil {
		return nil, err
	}

	round.TokensAvailable -= tokens
	round.TokensSold += tokens
	sale.TotalRaised += amount

	return &model.VestingGrantModel{
		SaleId:          sale.Id,
		RoundId:         round.Id,
		Investor:        investor,
		TotalAllocation: tokens,
		Released:        0,
		StartTime:       now,
		Duration:        e.params.VestingDuration,
	}, nil
}

// VestedAt 截至 now 已归属的总量
func VestedAt(grant *model.VestingGrantModel, now int64) uint64 {
	elapsed := now - grant.StartTime
	if elapsed <= 0 {
		return 0
	}
	if uint64(elapsed) >= grant.Duration {
		return grant.TotalAllocation
	}
	// elapsed < duration，商一定小于 total_allocation，不会溢出
	hi, lo := bits.Mul64(grant.TotalAllocation, uint64(elapsed))
	quo, _ := bits.Div64(hi, lo, grant.Duration)
	return quo
}

// Releasable 计算本次可领取数量
func (e *Engine) Releasable(grant *model.VestingGrantModel, now int64) (uint64, error) {
	elapsed := now - grant.StartTime
	if elapsed < 0 {
		return 0, ErrVestingNotStarted
	}

	remaining := grant.TotalAllocation - grant.Released
	if uint64(elapsed) >= grant.Duration {
		return remaining, nil
	}

	vested := VestedAt(grant, now)
	switch e.params.ReleaseMode {
	case ReleaseLegacy:
		if vested > remaining {
			return remaining, nil
		}
		return vested, nil
	default:
		if vested <= grant.Released {
			return 0, nil
		}
		return vested - grant.Released, nil
	}
}

// Claim 领取当前可释放的代币，返回本次释放数量
func (e *Engine) Claim(grant *model.VestingGrantModel, now int64) (uint64, error) {
	releasable, err := e.Releasable(grant, now)
	if err != nil {
		return 0, err
	}
	if releasable == 0 {
		return 0, ErrNothingToClaim
	}
	grant.Released += releasable
	return releasable, nil
}
