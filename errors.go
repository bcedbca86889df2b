package srp

import "github.com/pkg/errors"

// ErrUnknownGroup is returned when a SessionConfig names a Bits value that
// has no entry in the GroupRegistry. Callers are expected to pick one of
// the seven RFC 5054 sizes; seeing this error is a programming error, not
// a protocol failure, and is safe to log or surface verbatim.
var ErrUnknownGroup = errors.New("srp: unknown group size")

// ErrProtocolMisuse is returned when a ClientSession, ServerSession or
// VerifierGenerator method is called out of the sequence its state
// machine allows (for example calling ProcessChallenge twice, or before
// StartAuthentication). Like ErrUnknownGroup this reflects a caller bug
// rather than anything an attacker can trigger, and is intentionally
// distinguishable from the authentication/safety-check failures below.
var ErrProtocolMisuse = errors.New("srp: method called out of sequence")
