package launchpad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProgramId = "AjUxmZYjhXbJq5yDDvxe8Hh2amWnAjLN2Wmf5oET8mZ1"

func TestParseIdentity(t *testing.T) {
	addr := newAddress()
	key, err := ParseIdentity(addr)
	require.NoError(t, err)
	assert.Equal(t, addr, key.ToBase58())

	for _, bad := range []string{"", "0OIl", "abc", addr + addr} {
		_, err := ParseIdentity(bad)
		assert.ErrorIs(t, err, ErrInvalidIdentity, bad)
	}
}

func TestVaultAddressDeterministic(t *testing.T) {
	mint := newAddress()

	first, err := VaultAddress(testProgramId, mint)
	require.NoError(t, err)
	second, err := VaultAddress(testProgramId, mint)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.True(t, ValidIdentity(first))

	other, err := VaultAddress(testProgramId, newAddress())
	require.NoError(t, err)
	assert.NotEqual(t, first, other)

	_, err = VaultAddress("bad", mint)
	assert.ErrorIs(t, err, ErrInvalidIdentity)
}
