package custody

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/piyushmali/solana-launchpad/internal/logger"
	"github.com/piyushmali/solana-launchpad/internal/model"
	"gorm.io/gorm"
)

// NativeAsset 计价货币（SOL）
const NativeAsset = "native"

var (
	ErrInvalidTransfer = errors.New("custody: invalid transfer")
)

// TransferRequest 托管转账请求
type TransferRequest struct {
	Kind   model.TransferKind
	SaleId int64
	Asset  string
	From   string
	To     string
	Amount uint64
}

// Service 托管转账服务。tx 为调用方的数据库事务，转账失败时调用方回滚整个事务
type Service interface {
	Transfer(ctx context.Context, tx *gorm.DB, req TransferRequest) (string, error)
}

// LedgerService 以数据库账本记录托管资金流向
type LedgerService struct{}

// NewLedgerService 创建账本托管服务
func NewLedgerService() *LedgerService {
	return &LedgerService{}
}

// Transfer 在调用方事务中写入一条转账记录，返回转账引用号
func (s *LedgerService) Transfer(ctx context.Context, tx *gorm.DB, req TransferRequest) (string, error) {
	if err := validate(req); err != nil {
		return "", err
	}

	record := model.TransferRecordModel{
		Reference: uuid.NewString(),
		Kind:      req.Kind,
		SaleId:    req.SaleId,
		Asset:     req.Asset,
		From:      req.From,
		To:        req.To,
		Amount:    req.Amount,
	}
	if err := tx.WithContext(ctx).Create(&record).Error; err != nil {
		return "", fmt.Errorf("custody: record transfer: %w", err)
	}

	logger.Debug("Recorded %s transfer %s: %d %s from %s to %s",
		req.Kind, record.Reference, req.Amount, req.Asset, req.From, req.To)

	return record.Reference, nil
}

func validate(req TransferRequest) error {
	switch req.Kind {
	case model.TransferKindDeposit, model.TransferKindRelease:
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidTransfer, req.Kind)
	}
	if req.Amount == 0 {
		return fmt.Errorf("%w: zero amount", ErrInvalidTransfer)
	}
	if req.From == "" || req.To == "" || req.Asset == "" {
		return fmt.Errorf("%w: missing party or asset", ErrInvalidTransfer)
	}
	return nil
}

// VaultTotals 金库累计流水
type VaultTotals struct {
	Deposited uint64 `json:"deposited"`
	Released  uint64 `json:"released"`
}

// GetVaultTotals 统计发售金库的累计存入和释放
func GetVaultTotals(ctx context.Context, db *gorm.DB, saleId int64) (VaultTotals, error) {
	var rows []struct {
		Kind  model.TransferKind
		Total uint64
	}
	err := db.WithContext(ctx).Model(&model.TransferRecordModel{}).
		Select("kind, COALESCE(SUM(amount), 0) AS total").
		Where("sale_id = ?", saleId).
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return VaultTotals{}, fmt.Errorf("custody: vault totals: %w", err)
	}

	var totals VaultTotals
	for _, row := range rows {
		switch row.Kind {
		case model.TransferKindDeposit:
			totals.Deposited = row.Total
		case model.TransferKindRelease:
			totals.Released = row.Total
		}
	}
	return totals, nil
}
