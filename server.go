package srp

import (
	"crypto/subtle"

	"github.com/pkg/errors"
)

type serverState int

const (
	serverFresh serverState = iota
	serverStarted
	serverVerifiedOK
	serverVerifiedFail
)

// ServerSession drives the server side of one SRP-6a handshake through
// its state machine: Fresh -> Started -> {VerifiedOk, VerifiedFail}.
type ServerSession struct {
	Config   SessionConfig
	Routines *RoutineTable

	cfg   *resolvedConfig
	state serverState

	username string
	salt     []byte
	v        *bigInt
	b        *bigInt
	B        *bigInt
	A        *bigInt
	K        []byte
}

// NewServerSession resolves config's group and returns a session in the
// Fresh state.
func NewServerSession(config SessionConfig) (*ServerSession, error) {
	cfg, err := config.resolve()
	if err != nil {
		return nil, err
	}
	return &ServerSession{
		Config:   config,
		Routines: defaultRoutines(),
		cfg:      cfg,
		state:    serverFresh,
	}, nil
}

// StartAuthentication records the stored verifier for username, draws a
// fresh ephemeral b, and returns the public value B.
func (s *ServerSession) StartAuthentication(username string, salt, verifier []byte) ([]byte, error) {
	if s.state != serverFresh {
		return nil, errors.Wrap(ErrProtocolMisuse, "StartAuthentication called out of sequence")
	}
	p := s.cfg.params()

	bBytes, err := s.Routines.RandomBytes(p)
	if err != nil {
		return nil, err
	}
	k, err := s.Routines.CalculateK(p)
	if err != nil {
		return nil, err
	}
	Bbytes := s.Routines.CalculateB(p, bBytes, verifier, k)

	s.username = username
	s.salt = append([]byte(nil), salt...)
	s.v = bigIntFromBytes(verifier)
	s.b = bigIntFromBytes(bBytes)
	s.B = bigIntFromBytes(Bbytes)
	s.state = serverStarted
	return Bbytes, nil
}

// VerifySession checks the client's public value A and proof M1, and on
// success returns the server's own proof M2. ok is false whenever either
// the safety check on A or the proof comparison fails; both are reported
// identically, per this package's uniform boolean failure surface.
func (s *ServerSession) VerifySession(Abytes, m1 []byte) (m2 []byte, ok bool, err error) {
	if s.state != serverStarted {
		return nil, false, errors.Wrap(ErrProtocolMisuse, "VerifySession called out of sequence")
	}
	p := s.cfg.params()

	if !s.Routines.ServerSafetyCheck(p, Abytes) {
		s.state = serverVerifiedFail
		return nil, false, nil
	}

	Bbytes := s.B.toBytes(p.ByteLen)
	u := s.Routines.CalculateU(p, Abytes, Bbytes)
	S := s.Routines.CalculateServerS(p, u, s.v.toBytes(0), s.b.toBytes(0), Abytes)
	K := s.Routines.CalculateSessionKey(p, S)
	zeroBytes(S)
	expectedM1 := s.Routines.CalculateM1(p, s.username, s.salt, Abytes, Bbytes, K)

	if subtle.ConstantTimeCompare(expectedM1, m1) != 1 {
		s.state = serverVerifiedFail
		return nil, false, nil
	}

	s.A = bigIntFromBytes(Abytes)
	s.K = K
	M2 := s.Routines.CalculateM2(p, Abytes, m1, K)
	s.state = serverVerifiedOK
	return M2, true, nil
}

// SessionKey returns the negotiated session key K, or nil before
// VerifySession has succeeded.
func (s *ServerSession) SessionKey() []byte {
	if s.state != serverVerifiedOK {
		return nil
	}
	return append([]byte(nil), s.K...)
}

// Close zeroes the ephemeral secret b and the stored verifier v,
// best-effort, and detaches them from the session. The intermediate S
// computed inside VerifySession is already zeroed as soon as K is derived
// from it, so Close has nothing further to clear there. K is left intact,
// for the same reason documented on ClientSession.Close.
func (s *ServerSession) Close() {
	zeroBigInt(s.b)
	s.b = nil
	zeroBigInt(s.v)
	s.v = nil
	s.A = nil
	s.B = nil
}
