package srp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tomsons/srp6a"
)

func TestDigestSizes(t *testing.T) {
	cases := []struct {
		kind srp.DigestKind
		size int
	}{
		{srp.DigestSHA1, 20},
		{srp.DigestSHA224, 28},
		{srp.DigestSHA256, 32},
		{srp.DigestSHA384, 48},
		{srp.DigestSHA512, 64},
	}
	for _, c := range cases {
		assert.Equal(t, c.size, c.kind.Size(), "digest=%v", c.kind)
	}
}

func TestVerifierDeterministic(t *testing.T) {
	cfg := srp.SessionConfig{Bits: srp.Bits2048, Digest: srp.DigestSHA256}
	vg, err := srp.NewVerifierGenerator(cfg)
	assert.NoError(t, err)

	salt := []byte("same-salt-twice")
	v1, err := vg.Generate("user@mail.com", "password", salt)
	assert.NoError(t, err)
	v2, err := vg.Generate("user@mail.com", "password", salt)
	assert.NoError(t, err)
	assert.Equal(t, v1, v2, "verifier generation must be deterministic given identical inputs")
}

func TestVerifierSaltRandomness(t *testing.T) {
	cfg := srp.SessionConfig{Bits: srp.Bits2048, Digest: srp.DigestSHA256}
	vg, err := srp.NewVerifierGenerator(cfg)
	assert.NoError(t, err)

	salt1, v1, err := vg.GenerateWithRandomSalt("user@mail.com", "password", 20)
	assert.NoError(t, err)
	salt2, v2, err := vg.GenerateWithRandomSalt("user@mail.com", "password", 20)
	assert.NoError(t, err)

	assert.NotEqual(t, salt1, salt2, "two random salts should not collide")
	assert.NotEqual(t, v1, v2, "distinct salts must yield distinct verifiers")
}
