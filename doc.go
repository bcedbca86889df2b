// Package srp implements the SRP-6a augmented password-authenticated key
// exchange as specified by RFC 5054, including the two Apple-style wire
// deviations some deployments rely on.
//
// The package is organised around three protocol roles —
// VerifierGenerator, ClientSession and ServerSession — layered on top of
// four leaf components: a GroupRegistry of the seven RFC 5054 safe-prime
// groups, a Digest facade over SHA-1/224/256/384/512, a constant-time
// big-integer facade backed by saferith, and a pluggable table of the
// eleven SRP routines plus the two mandatory safety checks.
//
// Transport, session-id management, and persistence of verifiers are not
// this package's concern: it computes values, callers move bytes.
package srp
