package srp

import (
	"crypto/rand"

	"github.com/cronokirby/saferith"
	"github.com/pkg/errors"
)

// bigInt is the package's big-integer facade: a saferith.Nat paired with
// the bit capacity it was built to, since saferith's unbounded operations
// (Add/Sub/Mul, as opposed to the Mod* family) require the caller to state
// a capacity up front rather than inferring one from the operands.
type bigInt struct {
	nat *saferith.Nat
	cap int
}

func bigIntFromBytes(b []byte) *bigInt {
	capBits := len(b) * 8
	if capBits == 0 {
		capBits = 8
	}
	return &bigInt{nat: new(saferith.Nat).SetBytes(b), cap: capBits}
}

func modulusFromBytes(b []byte) *saferith.Modulus {
	return saferith.ModulusFromBytes(b)
}

func bigIntFromUint64(v uint64, capBits int) *bigInt {
	if capBits < 64 {
		capBits = 64
	}
	return &bigInt{nat: new(saferith.Nat).SetUint64(v), cap: capBits}
}

// minimalEncoding strips leading zero bytes, matching the convention that
// the integer zero encodes as the empty slice.
func minimalEncoding(raw []byte) []byte {
	i := 0
	for i < len(raw) && raw[i] == 0 {
		i++
	}
	return raw[i:]
}

// paddedOrMinimalBytes renders raw as either its minimal encoding (when
// skip is set, the Apple-style deviation) or left-padded to byteLen.
func paddedOrMinimalBytes(raw []byte, byteLen int, skip bool) []byte {
	minimal := minimalEncoding(raw)
	if skip || len(minimal) >= byteLen {
		out := make([]byte, len(minimal))
		copy(out, minimal)
		return out
	}
	out := make([]byte, byteLen)
	copy(out[byteLen-len(minimal):], minimal)
	return out
}

// toBytes renders x as a big-endian byte string, left-padded to at least
// minWidth bytes (minWidth == 0 requests the minimal encoding).
func (x *bigInt) toBytes(minWidth int) []byte {
	return paddedOrMinimalBytes(x.nat.Bytes(), minWidth, minWidth == 0)
}

func (x *bigInt) isZero() bool {
	zero := new(saferith.Nat).SetUint64(0)
	_, eq, _ := x.nat.Cmp(zero)
	return eq == 1
}

func modExp(base, exp *bigInt, g *group) *bigInt {
	return &bigInt{nat: new(saferith.Nat).Exp(base.nat, exp.nat, g.nMod), cap: g.byteLen * 8}
}

func modMul(a, b *bigInt, g *group) *bigInt {
	return &bigInt{nat: new(saferith.Nat).ModMul(a.nat, b.nat, g.nMod), cap: g.byteLen * 8}
}

func modAdd(a, b *bigInt, g *group) *bigInt {
	return &bigInt{nat: new(saferith.Nat).ModAdd(a.nat, b.nat, g.nMod), cap: g.byteLen * 8}
}

func modSub(a, b *bigInt, g *group) *bigInt {
	return &bigInt{nat: new(saferith.Nat).ModSub(a.nat, b.nat, g.nMod), cap: g.byteLen * 8}
}

// modReduce computes a mod N, relying on the fact that adding zero under a
// Modulus still yields the reduced residue.
func modReduce(a *bigInt, g *group) *bigInt {
	zero := &bigInt{nat: new(saferith.Nat).SetUint64(0), cap: g.byteLen * 8}
	return modAdd(a, zero, g)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// mul and add are the two genuinely unbounded operations the routine
// table needs: building the client exponent a + u*x, which is never
// reduced modulo N or N-1 by this protocol.
func mul(a, b *bigInt) *bigInt {
	cap := a.cap + b.cap
	return &bigInt{nat: new(saferith.Nat).Mul(a.nat, b.nat, cap), cap: cap}
}

func add(a, b *bigInt) *bigInt {
	cap := maxInt(a.cap, b.cap) + 1
	return &bigInt{nat: new(saferith.Nat).Add(a.nat, b.nat, cap), cap: cap}
}

func xorBytes(a, b []byte) []byte {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = a[i] ^ b[i]
	}
	return out
}

func randomBytesSecure(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, errors.Wrap(err, "srp: failed to draw random bytes")
	}
	return buf, nil
}

// zeroBigInt overwrites the receiver's value in place, best-effort, by
// setting it to zero.
func zeroBigInt(x *bigInt) {
	if x != nil && x.nat != nil {
		x.nat.SetUint64(0)
	}
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
