package launchpad

import (
	"fmt"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/mr-tron/base58"
)

// vaultSeed 金库地址派生种子
const vaultSeed = "vault"

// ParseIdentity 解析 base58 编码的 32 字节地址
func ParseIdentity(address string) (common.PublicKey, error) {
	raw, err := base58.Decode(address)
	if err != nil {
		return common.PublicKey{}, fmt.Errorf("%w: %q: %v", ErrInvalidIdentity, address, err)
	}
	if len(raw) != common.PublicKeyLength {
		return common.PublicKey{}, fmt.Errorf("%w: %q has %d bytes", ErrInvalidIdentity, address, len(raw))
	}
	return common.PublicKeyFromBytes(raw), nil
}

// ValidIdentity 判断地址是否合法
func ValidIdentity(address string) bool {
	_, err := ParseIdentity(address)
	return err == nil
}

// VaultAddress 派生发售金库地址，种子为 ["vault", token_mint]
func VaultAddress(programId, tokenMint string) (string, error) {
	program, err := ParseIdentity(programId)
	if err != nil {
		return "", err
	}
	mint, err := ParseIdentity(tokenMint)
	if err != nil {
		return "", err
	}
	vault, _, err := common.FindProgramAddress([][]byte{[]byte(vaultSeed), mint.Bytes()}, program)
	if err != nil {
		return "", fmt.Errorf("derive vault address: %w", err)
	}
	return vault.ToBase58(), nil
}
