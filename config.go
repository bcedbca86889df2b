package srp

// Flags is an open bitset of wire-compatibility deviations a deployment
// may need. The zero value is strict RFC 5054 behaviour.
type Flags uint8

const (
	// FlagNoUsernameInX drops the username from the x = H(salt, H(I:P))
	// computation, computing x = H(salt, H(:P)) instead.
	FlagNoUsernameInX Flags = 1 << iota
	// FlagSkipZeroesKUX renders N, g, A and B at their minimal byte width
	// (no left-padding to the group's byte length) when computing k and u.
	FlagSkipZeroesKUX
	// FlagSkipZeroesM1M2 does the same for the N, g, A and B inputs to M1
	// and M2.
	FlagSkipZeroesM1M2
)

func (f Flags) has(bit Flags) bool {
	return f&bit != 0
}

// DigestKind and Bits together select which of the five digests and seven
// groups a session runs over; SessionConfig is the full parameterisation
// shared by VerifierGenerator, ClientSession and ServerSession.
type SessionConfig struct {
	Bits   Bits
	Digest DigestKind
	Flags  Flags
}

// DefaultSessionConfig returns the RFC 5054 2048-bit group with SHA-256
// and no wire deviations, a reasonable default for new deployments.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{Bits: Bits2048, Digest: DigestSHA256}
}

// resolvedConfig is a SessionConfig with its group looked up; every
// protocol role resolves its config once at construction time so an
// unknown group size fails fast rather than mid-handshake.
type resolvedConfig struct {
	group  *group
	digest DigestKind
	flags  Flags
}

func (c SessionConfig) resolve() (*resolvedConfig, error) {
	g, err := lookupGroup(c.Bits)
	if err != nil {
		return nil, err
	}
	return &resolvedConfig{group: g, digest: c.Digest, flags: c.Flags}, nil
}

// params renders this resolved config as the public Params value the
// RoutineTable operates on.
func (c *resolvedConfig) params() Params {
	return Params{
		N:       c.group.n.toBytes(0),
		G:       c.group.g.toBytes(0),
		ByteLen: c.group.byteLen,
		Digest:  c.digest,
		Flags:   c.flags,
	}
}
