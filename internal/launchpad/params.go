package launchpad

import (
	"fmt"
	"math"
)

// ReleaseMode 归属释放公式
type ReleaseMode string

const (
	// ReleaseCumulative 本次可领取 = 截至当前已归属 - 已领取
	ReleaseCumulative ReleaseMode = "cumulative"
	// ReleaseLegacy 本次可领取 = 截至当前已归属，不扣除已领取部分（以剩余额度为上限）
	ReleaseLegacy ReleaseMode = "legacy"
)

const (
	// DefaultTokenDecimals 代币价格的定点精度
	DefaultTokenDecimals uint8 = 9
	// DefaultVestingDuration 30 天
	DefaultVestingDuration uint64 = 30 * 86400

	maxTokenDecimals uint8 = 19
)

// Params 发售规则参数
type Params struct {
	TokenDecimals      uint8
	VestingDuration    uint64
	ReleaseMode        ReleaseMode
	EnforceCapOrder    bool
	EnforceRoundWindow bool
}

// DefaultParams 默认参数
func DefaultParams() Params {
	return Params{
		TokenDecimals:   DefaultTokenDecimals,
		VestingDuration: DefaultVestingDuration,
		ReleaseMode:     ReleaseCumulative,
		EnforceCapOrder: true,
	}
}

// Validate 校验参数
func (p Params) Validate() error {
	if p.TokenDecimals > maxTokenDecimals {
		return fmt.Errorf("%w: token decimals %d exceeds %d", ErrInvalidParams, p.TokenDecimals, maxTokenDecimals)
	}
	if p.VestingDuration > uint64(math.MaxInt64) {
		return fmt.Errorf("%w: vesting duration %d out of range", ErrInvalidParams, p.VestingDuration)
	}
	switch p.ReleaseMode {
	case ReleaseCumulative, ReleaseLegacy:
	default:
		return fmt.Errorf("%w: unknown release mode %q", ErrInvalidParams, p.ReleaseMode)
	}
	return nil
}

// scale 10^TokenDecimals
func (p Params) scale() uint64 {
	s := uint64(1)
	for i := uint8(0); i < p.TokenDecimals; i++ {
		s *= 10
	}
	return s
}
