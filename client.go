package srp

import (
	"crypto/subtle"

	"github.com/pkg/errors"
)

type clientState int

const (
	clientFresh clientState = iota
	clientStarted
	clientChallenged
	clientVerifiedOK
	clientVerifiedFail
)

// ClientSession drives the client side of one SRP-6a handshake through
// its state machine: Fresh -> Started -> Challenged -> {VerifiedOk,
// VerifiedFail}. Each method that returns an error checks the current
// state and returns ErrProtocolMisuse if called out of sequence;
// VerifySession, which returns only a bool, reports false instead.
type ClientSession struct {
	Config   SessionConfig
	Routines *RoutineTable

	cfg   *resolvedConfig
	state clientState

	a  *bigInt
	A  *bigInt
	B  *bigInt
	K  []byte
	m1 []byte
}

// NewClientSession resolves config's group and returns a session in the
// Fresh state.
func NewClientSession(config SessionConfig) (*ClientSession, error) {
	cfg, err := config.resolve()
	if err != nil {
		return nil, err
	}
	return &ClientSession{
		Config:   config,
		Routines: defaultRoutines(),
		cfg:      cfg,
		state:    clientFresh,
	}, nil
}

// StartAuthentication draws a fresh ephemeral a and returns the public
// value A = g^a mod N.
func (c *ClientSession) StartAuthentication() ([]byte, error) {
	if c.state != clientFresh {
		return nil, errors.Wrap(ErrProtocolMisuse, "StartAuthentication called out of sequence")
	}
	p := c.cfg.params()
	aBytes, err := c.Routines.RandomBytes(p)
	if err != nil {
		return nil, err
	}
	return c.start(p, aBytes)
}

// InsecureStartAuthentication lets a caller (almost always a test) supply
// a fixed ephemeral a instead of drawing a random one. aBytes must be
// exactly byteLen(N) bytes long, left-padded with zeroes if the value
// itself is smaller than that width (as RFC 5054's own published test
// vectors are); anything else is treated as malformed and the
// implementation silently falls back to StartAuthentication rather than
// using it.
func (c *ClientSession) InsecureStartAuthentication(aBytes []byte) ([]byte, error) {
	if c.state != clientFresh {
		return nil, errors.Wrap(ErrProtocolMisuse, "InsecureStartAuthentication called out of sequence")
	}
	p := c.cfg.params()
	if len(aBytes) != p.ByteLen {
		return c.StartAuthentication()
	}
	return c.start(p, aBytes)
}

func (c *ClientSession) start(p Params, aBytes []byte) ([]byte, error) {
	Abytes := c.Routines.CalculateA(p, aBytes)
	c.a = bigIntFromBytes(aBytes)
	c.A = bigIntFromBytes(Abytes)
	c.state = clientStarted
	return Abytes, nil
}

// ProcessChallenge consumes the server's salt and B, and returns the
// client's proof M1. ok is false when the safety check on B and u fails;
// this is reported the same way an authentication failure would be, per
// this package's uniform boolean failure surface.
func (c *ClientSession) ProcessChallenge(username, password string, salt, Bbytes []byte) (m1 []byte, ok bool, err error) {
	if c.state != clientStarted {
		return nil, false, errors.Wrap(ErrProtocolMisuse, "ProcessChallenge called out of sequence")
	}
	p := c.cfg.params()

	k, err := c.Routines.CalculateK(p)
	if err != nil {
		return nil, false, err
	}
	u := c.Routines.CalculateU(p, c.A.toBytes(p.ByteLen), Bbytes)

	if !c.Routines.ClientSafetyCheck(p, Bbytes, u) {
		c.state = clientVerifiedFail
		return nil, false, nil
	}

	x := c.Routines.CalculateX(p, username, password, salt)
	S := c.Routines.CalculateClientS(p, u, x, k, c.a.toBytes(0), Bbytes)
	K := c.Routines.CalculateSessionKey(p, S)
	zeroBytes(x)
	zeroBytes(S)
	M1 := c.Routines.CalculateM1(p, username, salt, c.A.toBytes(p.ByteLen), Bbytes, K)

	c.B = bigIntFromBytes(Bbytes)
	c.K = K
	c.m1 = M1
	c.state = clientChallenged
	return M1, true, nil
}

// PrecomputeM2 returns the M2 the client expects from the server, for
// callers that want to compare it themselves instead of calling
// VerifySession.
func (c *ClientSession) PrecomputeM2() ([]byte, error) {
	if c.state != clientChallenged {
		return nil, errors.Wrap(ErrProtocolMisuse, "PrecomputeM2 called before ProcessChallenge succeeded")
	}
	p := c.cfg.params()
	return c.Routines.CalculateM2(p, c.A.toBytes(p.ByteLen), c.m1, c.K), nil
}

// VerifySession checks the server's M2 in constant time and advances the
// state machine to VerifiedOk or VerifiedFail accordingly.
func (c *ClientSession) VerifySession(m2 []byte) bool {
	if c.state != clientChallenged {
		return false
	}
	expected, err := c.PrecomputeM2()
	if err != nil {
		return false
	}
	ok := subtle.ConstantTimeCompare(expected, m2) == 1
	if ok {
		c.state = clientVerifiedOK
	} else {
		c.state = clientVerifiedFail
	}
	return ok
}

// SessionKey returns the negotiated session key K, or nil before
// ProcessChallenge has succeeded.
func (c *ClientSession) SessionKey() []byte {
	if c.state != clientChallenged && c.state != clientVerifiedOK {
		return nil
	}
	return append([]byte(nil), c.K...)
}

// Close zeroes the ephemeral secret a, best-effort, and detaches it from
// the session. The intermediate S and x computed inside ProcessChallenge
// are already zeroed as soon as K is derived from them, so Close has
// nothing further to clear there. The session key K is intentionally left
// intact: callers may still want SessionKey() after Close().
func (c *ClientSession) Close() {
	zeroBigInt(c.a)
	c.a = nil
	c.A = nil
	c.B = nil
}
