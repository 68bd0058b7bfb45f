package cryptox

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHasher() *PasswordHasher {
	return NewPasswordHasher(Params{MemoryKiB: 1024, Iterations: 1, Parallelism: 1})
}

func TestNewPasswordHasher_FillsDefaults(t *testing.T) {
	h := NewPasswordHasher(Params{MemoryKiB: 2048})
	p := h.Params()

	assert.Equal(t, uint32(2048), p.MemoryKiB)
	assert.Equal(t, DefaultParams().Iterations, p.Iterations)
	assert.Equal(t, DefaultParams().Parallelism, p.Parallelism)
	assert.Equal(t, DefaultParams().SaltLength, p.SaltLength)
	assert.Equal(t, DefaultParams().KeyLength, p.KeyLength)
}

func TestHash_Format(t *testing.T) {
	enc, err := testHasher().Hash([]byte("admin123"))
	require.NoError(t, err)

	assert.True(t, IsHash(enc))
	assert.True(t, strings.HasPrefix(enc, "$argon2id$v=19$m=1024,t=1,p=1$"), enc)
	assert.Len(t, strings.Split(enc, "$"), 6)
}

func TestHash_SaltedDiffers(t *testing.T) {
	h := testHasher()
	a, err := h.Hash([]byte("same"))
	require.NoError(t, err)
	b, err := h.Hash([]byte("same"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestVerify(t *testing.T) {
	h := testHasher()
	enc, err := h.Hash([]byte("correct horse"))
	require.NoError(t, err)

	ok, err := h.Verify(enc, []byte("correct horse"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(enc, []byte("wrong horse"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_HashFromOtherParams(t *testing.T) {
	enc, err := NewPasswordHasher(Params{MemoryKiB: 512, Iterations: 2, Parallelism: 1}).Hash([]byte("pw"))
	require.NoError(t, err)

	ok, err := testHasher().Verify(enc, []byte("pw"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_HashFromCostlierConfig(t *testing.T) {
	enc, err := NewPasswordHasher(Params{MemoryKiB: 8192, Iterations: 8, Parallelism: 1}).Hash([]byte("pw"))
	require.NoError(t, err)

	ok, err := testHasher().Verify(enc, []byte("pw"))
	require.NoError(t, err)
	assert.True(t, ok, "lowering the configured cost must not reject older hashes")
}

func TestVerify_RefusesCostAboveCeiling(t *testing.T) {
	d := DefaultParams()
	enc := fmt.Sprintf("$argon2id$v=19$m=1024,t=%d,p=1$c2FsdHNhbHQ$a2V5a2V5a2V5a2V5a2V5a2V5", d.Iterations*costCeiling+1)

	ok, err := testHasher().Verify(enc, []byte("pw"))
	assert.ErrorIs(t, err, ErrInvalidHash)
	assert.False(t, ok)
}

func TestNeedsRehash(t *testing.T) {
	h := testHasher()
	same, err := h.Hash([]byte("pw"))
	require.NoError(t, err)
	other, err := NewPasswordHasher(Params{MemoryKiB: 2048, Iterations: 1, Parallelism: 1}).Hash([]byte("pw"))
	require.NoError(t, err)

	assert.False(t, h.NeedsRehash(same))
	assert.True(t, h.NeedsRehash(other))
	assert.True(t, h.NeedsRehash("admin123"))
	assert.True(t, h.NeedsRehash("$argon2id$garbage"))
}

func TestVerify_Malformed(t *testing.T) {
	h := testHasher()
	tests := []string{
		"",
		"admin123",
		"$argon2i$v=19$m=1024,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5a2V5a2V5a2V5a2V5",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5a2V5a2V5a2V5a2V5",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5a2V5a2V5a2V5a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5a2V5a2V5a2V5a2V5a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdHNhbHQ$a2V5",
		"$argon2id$v=19$m=999999999,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5a2V5a2V5a2V5a2V5",
	}

	for _, enc := range tests {
		ok, err := h.Verify(enc, []byte("pw"))
		assert.ErrorIs(t, err, ErrInvalidHash, enc)
		assert.False(t, ok)
	}
}

func TestIsHash(t *testing.T) {
	assert.False(t, IsHash("admin123"))
	assert.True(t, IsHash("$argon2id$v=19$..."))
}
