package srp

import "crypto/rand"

// VerifierGenerator computes the password verifier v = g^x mod N that a
// server stores in place of a plaintext or directly-hashed password. It
// holds no per-call state, so a single instance may be reused across
// many users.
type VerifierGenerator struct {
	Config   SessionConfig
	Routines *RoutineTable

	cfg *resolvedConfig
}

// NewVerifierGenerator resolves config's group up front so an unknown
// group size is reported immediately rather than on first use.
func NewVerifierGenerator(config SessionConfig) (*VerifierGenerator, error) {
	cfg, err := config.resolve()
	if err != nil {
		return nil, err
	}
	return &VerifierGenerator{
		Config:   config,
		Routines: defaultRoutines(),
		cfg:      cfg,
	}, nil
}

// Generate computes the verifier for (username, password) under the
// caller-supplied salt.
func (vg *VerifierGenerator) Generate(username, password string, salt []byte) ([]byte, error) {
	p := vg.cfg.params()
	x := vg.Routines.CalculateX(p, username, password, salt)
	return verifierFromX(p, x), nil
}

// GenerateWithRandomSalt draws a fresh saltSize-byte salt from
// crypto/rand and returns it alongside the verifier it produced.
func (vg *VerifierGenerator) GenerateWithRandomSalt(username, password string, saltSize int) (salt, verifier []byte, err error) {
	salt = make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, err
	}
	verifier, err = vg.Generate(username, password, salt)
	return salt, verifier, err
}
