package launchpad

import "errors"

// 购买校验错误
var (
	ErrZeroContribution     = errors.New("contribution must be positive")
	ErrContributionTooLow   = errors.New("contribution too low")
	ErrContributionExceeded = errors.New("contribution exceeded")
	ErrHardCapReached       = errors.New("hard cap reached")
	ErrInsufficientTokens   = errors.New("insufficient tokens")
	ErrRoundNotActive       = errors.New("sale round is not active")
	ErrRoundSaleMismatch    = errors.New("sale round does not belong to sale")
	ErrRoundWindowClosed    = errors.New("sale round is outside its time window")
)

// 归属领取错误
var (
	ErrVestingNotStarted = errors.New("vesting not started")
	ErrNothingToClaim    = errors.New("nothing to claim")
)

// 定价运算错误
var (
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
	ErrDivisionByZero     = errors.New("division by zero")
)

// 注册与参数校验错误
var (
	ErrInvalidIdentity           = errors.New("invalid identity")
	ErrInvalidCaps               = errors.New("hard cap is below soft cap")
	ErrZeroPrice                 = errors.New("price per token must be positive")
	ErrInvalidRoundWindow        = errors.New("round end time must be after start time")
	ErrInvalidContributionBounds = errors.New("min contribution exceeds max contribution")
	ErrInvalidParams             = errors.New("invalid launchpad params")
	ErrAmountOutOfRange          = errors.New("amount exceeds the storable ledger range")
)
