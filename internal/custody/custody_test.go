package custody

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/piyushmali/solana-launchpad/internal/database"
	"github.com/piyushmali/solana-launchpad/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory("custody_" + t.Name())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestLedgerTransfer(t *testing.T) {
	db := openDB(t)
	svc := NewLedgerService()
	ctx := context.Background()

	ref, err := svc.Transfer(ctx, db, TransferRequest{
		Kind:   model.TransferKindDeposit,
		SaleId: 7,
		Asset:  NativeAsset,
		From:   "investor",
		To:     "vault",
		Amount: 1_000,
	})
	require.NoError(t, err)
	_, err = uuid.Parse(ref)
	require.NoError(t, err)

	var record model.TransferRecordModel
	require.NoError(t, db.Where("reference = ?", ref).First(&record).Error)
	assert.Equal(t, model.TransferKindDeposit, record.Kind)
	assert.Equal(t, int64(7), record.SaleId)
	assert.Equal(t, "investor", record.From)
	assert.Equal(t, "vault", record.To)
	assert.Equal(t, uint64(1_000), record.Amount)
}

func TestLedgerTransferValidation(t *testing.T) {
	db := openDB(t)
	svc := NewLedgerService()

	tests := []struct {
		name string
		req  TransferRequest
	}{
		{"unknown kind", TransferRequest{Kind: "refund", Asset: NativeAsset, From: "a", To: "b", Amount: 1}},
		{"zero amount", TransferRequest{Kind: model.TransferKindDeposit, Asset: NativeAsset, From: "a", To: "b"}},
		{"missing from", TransferRequest{Kind: model.TransferKindRelease, Asset: "mint", To: "b", Amount: 1}},
		{"missing asset", TransferRequest{Kind: model.TransferKindRelease, From: "a", To: "b", Amount: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Transfer(context.Background(), db, tt.req)
			assert.ErrorIs(t, err, ErrInvalidTransfer)
		})
	}

	var n int64
	require.NoError(t, db.Model(&model.TransferRecordModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestTransferRollsBackWithCaller(t *testing.T) {
	db := openDB(t)
	svc := NewLedgerService()
	ctx := context.Background()

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := svc.Transfer(ctx, tx, TransferRequest{
			Kind: model.TransferKindDeposit, SaleId: 1, Asset: NativeAsset, From: "a", To: "b", Amount: 5,
		}); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.Error(t, err)

	totals, err := GetVaultTotals(ctx, db, 1)
	require.NoError(t, err)
	assert.Equal(t, VaultTotals{}, totals)
}

func TestGetVaultTotals(t *testing.T) {
	db := openDB(t)
	svc := NewLedgerService()
	ctx := context.Background()

	transfers := []TransferRequest{
		{Kind: model.TransferKindDeposit, SaleId: 1, Asset: NativeAsset, From: "i1", To: "v", Amount: 100},
		{Kind: model.TransferKindDeposit, SaleId: 1, Asset: NativeAsset, From: "i2", To: "v", Amount: 250},
		{Kind: model.TransferKindRelease, SaleId: 1, Asset: "mint", From: "v", To: "i1", Amount: 40},
		{Kind: model.TransferKindDeposit, SaleId: 2, Asset: NativeAsset, From: "i3", To: "w", Amount: 999},
	}
	for _, req := range transfers {
		_, err := svc.Transfer(ctx, db, req)
		require.NoError(t, err)
	}

	totals, err := GetVaultTotals(ctx, db, 1)
	require.NoError(t, err)
	assert.Equal(t, VaultTotals{Deposited: 350, Released: 40}, totals)

	totals, err = GetVaultTotals(ctx, db, 3)
	require.NoError(t, err)
	assert.Equal(t, VaultTotals{}, totals)
}
