package srp

// Params is the read-only view of a resolved SessionConfig that every
// RoutineTable function receives. It exposes only exported types so a
// caller outside this package can write a replacement routine without
// reaching into the package's internal big-integer representation.
type Params struct {
	N       []byte // the group modulus, big-endian
	G       []byte // the group generator, big-endian
	ByteLen int    // byte length of N
	Digest  DigestKind
	Flags   Flags
}

// RoutineTable is the full set of pluggable SRP-6a computations: the
// eleven routines plus the client and server safety checks. It is a
// struct of function fields rather than an interface, mirroring
// SRPRoutines's std::function members in the C++ implementation this
// library's behaviour is grounded on - each field can be substituted
// independently, including for deterministic testing (fixing
// RandomBytes) or for wire-format quirks a particular deployment needs.
type RoutineTable struct {
	RandomBytes func(p Params) ([]byte, error)

	CalculateA func(p Params, a []byte) []byte
	CalculateB func(p Params, b, v, k []byte) []byte
	CalculateK func(p Params) ([]byte, error)
	CalculateX func(p Params, username, password string, salt []byte) []byte
	CalculateU func(p Params, A, B []byte) []byte

	CalculateClientS func(p Params, u, x, k, a, B []byte) []byte
	CalculateServerS func(p Params, u, v, b, A []byte) []byte

	CalculateSessionKey func(p Params, S []byte) []byte
	CalculateM1         func(p Params, username string, salt, A, B, K []byte) []byte
	CalculateM2         func(p Params, A, M1, K []byte) []byte

	ClientSafetyCheck func(p Params, B, u []byte) bool
	ServerSafetyCheck func(p Params, A []byte) bool
}

func defaultRoutines() *RoutineTable {
	return &RoutineTable{
		RandomBytes:          defaultRandomBytes,
		CalculateA:           defaultCalculateA,
		CalculateB:           defaultCalculateB,
		CalculateK:           defaultCalculateK,
		CalculateX:           defaultCalculateX,
		CalculateU:           defaultCalculateU,
		CalculateClientS:     defaultCalculateClientS,
		CalculateServerS:     defaultCalculateServerS,
		CalculateSessionKey:  defaultCalculateSessionKey,
		CalculateM1:          defaultCalculateM1,
		CalculateM2:          defaultCalculateM2,
		ClientSafetyCheck:    defaultClientSafetyCheck,
		ServerSafetyCheck:    defaultServerSafetyCheck,
	}
}

// groupFromParams rebuilds the internal group representation (including
// the saferith Modulus the constant-time ops need) from a Params value.
func groupFromParams(p Params) *group {
	return &group{
		g:       bigIntFromBytes(p.G),
		n:       bigIntFromBytes(p.N),
		nMod:    modulusFromBytes(p.N),
		byteLen: p.ByteLen,
	}
}

func defaultRandomBytes(p Params) ([]byte, error) {
	return randomBytesSecure(p.ByteLen)
}

// defaultCalculateA computes A = g^a mod N; the same formula also backs
// verifier generation's v = g^x mod N (see verifierFromX).
func defaultCalculateA(p Params, aBytes []byte) []byte {
	g := groupFromParams(p)
	a := bigIntFromBytes(aBytes)
	A := modExp(g.g, a, g)
	return A.toBytes(g.byteLen)
}

// defaultCalculateB computes B = (k*v + g^b) mod N.
func defaultCalculateB(p Params, bBytes, vBytes, kBytes []byte) []byte {
	g := groupFromParams(p)
	b := bigIntFromBytes(bBytes)
	v := bigIntFromBytes(vBytes)
	k := bigIntFromBytes(kBytes)
	kv := modMul(k, v, g)
	gb := modExp(g.g, b, g)
	B := modAdd(kv, gb, g)
	return B.toBytes(g.byteLen)
}

// defaultCalculateK computes the multiplier k = H(pad(N), pad(g)).
func defaultCalculateK(p Params) ([]byte, error) {
	skip := p.Flags.has(FlagSkipZeroesKUX)
	nEnc := paddedOrMinimalBytes(p.N, p.ByteLen, skip)
	gEnc := paddedOrMinimalBytes(p.G, p.ByteLen, skip)
	return hashConcat(p.Digest, nEnc, gEnc), nil
}

// defaultCalculateX computes x = H(salt, H(I:P)), or H(salt, H(:P)) under
// FlagNoUsernameInX.
func defaultCalculateX(p Params, username, password string, salt []byte) []byte {
	var inner []byte
	if p.Flags.has(FlagNoUsernameInX) {
		inner = hashConcat(p.Digest, []byte(":"), []byte(password))
	} else {
		inner = hashConcat(p.Digest, []byte(username), []byte(":"), []byte(password))
	}
	return hashConcat(p.Digest, salt, inner)
}

// defaultCalculateU computes the scrambler u = H(pad(A), pad(B)).
func defaultCalculateU(p Params, Abytes, Bbytes []byte) []byte {
	skip := p.Flags.has(FlagSkipZeroesKUX)
	aEnc := paddedOrMinimalBytes(Abytes, p.ByteLen, skip)
	bEnc := paddedOrMinimalBytes(Bbytes, p.ByteLen, skip)
	return hashConcat(p.Digest, aEnc, bEnc)
}

// defaultCalculateClientS computes S = (B - k*g^x)^(a + u*x) mod N. The
// subtraction never needs a signed representation: ModSub yields the
// non-negative residue directly.
func defaultCalculateClientS(p Params, uBytes, xBytes, kBytes, aBytes, Bbytes []byte) []byte {
	g := groupFromParams(p)
	u := bigIntFromBytes(uBytes)
	x := bigIntFromBytes(xBytes)
	k := bigIntFromBytes(kBytes)
	a := bigIntFromBytes(aBytes)
	B := bigIntFromBytes(Bbytes)

	gx := modExp(g.g, x, g)
	kgx := modMul(k, gx, g)
	base := modSub(B, kgx, g)

	ux := mul(u, x)
	exponent := add(a, ux)

	S := modExp(base, exponent, g)
	return S.toBytes(0)
}

// defaultCalculateServerS computes S = (A * v^u)^b mod N.
func defaultCalculateServerS(p Params, uBytes, vBytes, bBytes, Abytes []byte) []byte {
	g := groupFromParams(p)
	u := bigIntFromBytes(uBytes)
	v := bigIntFromBytes(vBytes)
	b := bigIntFromBytes(bBytes)
	A := bigIntFromBytes(Abytes)

	vu := modExp(v, u, g)
	avu := modMul(A, vu, g)
	S := modExp(avu, b, g)
	return S.toBytes(0)
}

func defaultCalculateSessionKey(p Params, S []byte) []byte {
	return hashConcat(p.Digest, minimalEncoding(S))
}

// defaultCalculateM1 computes M1 = H(H(N) xor H(g), H(I), salt, A, B,
// toBytes(K, minimal)). K is always folded in at its minimal width,
// regardless of FlagSkipZeroesM1M2: that flag only controls whether N, g, A
// and B are left-padded to byteLen(N), since K is a hash output rather than
// a group element and has no padded wire width to begin with.
func defaultCalculateM1(p Params, username string, salt, Abytes, Bbytes, K []byte) []byte {
	skip := p.Flags.has(FlagSkipZeroesM1M2)
	nEnc := paddedOrMinimalBytes(p.N, p.ByteLen, skip)
	gEnc := paddedOrMinimalBytes(p.G, p.ByteLen, skip)
	hashN := hashConcat(p.Digest, nEnc)
	hashG := hashConcat(p.Digest, gEnc)
	xorNG := xorBytes(hashN, hashG)
	hashI := hashConcat(p.Digest, []byte(username))
	aEnc := paddedOrMinimalBytes(Abytes, p.ByteLen, skip)
	bEnc := paddedOrMinimalBytes(Bbytes, p.ByteLen, skip)
	return hashConcat(p.Digest, xorNG, hashI, salt, aEnc, bEnc, minimalEncoding(K))
}

// defaultCalculateM2 computes M2 = H(A, toBytes(M1, minimal),
// toBytes(K, minimal)). As with M1's K input, M1 and K are always folded in
// at minimal width: FlagSkipZeroesM1M2 governs A's padding only.
func defaultCalculateM2(p Params, Abytes, M1, K []byte) []byte {
	skip := p.Flags.has(FlagSkipZeroesM1M2)
	aEnc := paddedOrMinimalBytes(Abytes, p.ByteLen, skip)
	return hashConcat(p.Digest, aEnc, minimalEncoding(M1), minimalEncoding(K))
}

// defaultClientSafetyCheck enforces B mod N != 0 and u != 0.
func defaultClientSafetyCheck(p Params, Bbytes, uBytes []byte) bool {
	g := groupFromParams(p)
	B := bigIntFromBytes(Bbytes)
	u := bigIntFromBytes(uBytes)
	Bred := modReduce(B, g)
	return !Bred.isZero() && !u.isZero()
}

// defaultServerSafetyCheck enforces A mod N != 0.
func defaultServerSafetyCheck(p Params, Abytes []byte) bool {
	g := groupFromParams(p)
	A := bigIntFromBytes(Abytes)
	Ared := modReduce(A, g)
	return !Ared.isZero()
}

// verifierFromX computes v = g^x mod N for VerifierGenerator. There is no
// dedicated routine-table entry for this: the original routines table
// this is grounded on has no calculate_v member either, since verifier
// generation is a one-shot offline step rather than part of the live
// handshake the routine table customises.
func verifierFromX(p Params, xBytes []byte) []byte {
	g := groupFromParams(p)
	x := bigIntFromBytes(xBytes)
	v := modExp(g.g, x, g)
	return v.toBytes(0)
}
