package pointproofs

import (
	"github.com/Electron-Labs/pointproofs-gnark/ciphersuite"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ParamGen derives a parameter pair from seed. The trapdoor alpha is a hash of
// the seed, so anyone holding the seed can forge proofs: use it for tests and
// development only.
func ParamGen(seed []byte, id ciphersuite.ID, n int) (*ProverParams, *VerifierParams, error) {
	if len(seed) < MinSeedLen {
		return nil, nil, errors.Wrapf(ErrSeedTooShort, "got %d bytes, need %d", len(seed), MinSeedLen)
	}
	suite, err := ciphersuite.Lookup(id)
	if err != nil {
		return nil, nil, errors.Wrap(ErrInvalidCiphersuite, err.Error())
	}
	if n < 1 || n > MaxN {
		return nil, nil, errors.Wrapf(ErrInvalidCapacity, "n = %d, want 1..%d", n, MaxN)
	}

	log.Warn().
		Str("ciphersuite", suite.Name).
		Int("n", n).
		Msg("generating parameters from a seed; the trapdoor is recoverable from the seed, do not use in deployment")

	alpha := suite.HashToField(seed)
	return paramGenFromAlpha(&alpha, id, n)
}

func paramGenFromAlpha(alpha *fr.Element, id ciphersuite.ID, n int) (*ProverParams, *VerifierParams, error) {
	powers := make([]fr.Element, 2*n)
	powers[0] = *alpha
	for i := 1; i < len(powers); i++ {
		powers[i].Mul(&powers[i-1], alpha)
	}

	g1s := bls12381.BatchScalarMultiplicationG1(&g1Gen, powers)
	// alpha^{n+1} must stay unknown
	g1s[n] = bls12381.G1Affine{}
	g2s := bls12381.BatchScalarMultiplicationG2(&g2Gen, powers[:n])

	gt, err := bls12381.Pair([]bls12381.G1Affine{g1s[0]}, []bls12381.G2Affine{g2s[n-1]})
	if err != nil {
		return nil, nil, errors.Wrap(err, "pair")
	}

	pp := &ProverParams{
		Ciphersuite: id,
		N:           n,
		Generators:  g1s,
	}
	vp := &VerifierParams{
		Ciphersuite: id,
		N:           n,
		Generators:  g2s,
		GT:          gt,
	}
	return pp, vp, nil
}

// CheckParams verifies that pp and vp were generated together: same suite and
// capacity, gt consistent with the generators, and both generator vectors
// being successive powers of one alpha. The power checks are batched with
// random coefficients.
func CheckParams(pp *ProverParams, vp *VerifierParams) error {
	if pp == nil || vp == nil {
		return errors.New("nil parameters")
	}
	if pp.Ciphersuite != vp.Ciphersuite || !ciphersuite.IsValid(pp.Ciphersuite) {
		return errors.Wrapf(ErrInvalidCiphersuite, "prover %d, verifier %d", pp.Ciphersuite, vp.Ciphersuite)
	}
	n := pp.N
	if n < 1 || n > MaxN || vp.N != n || len(pp.Generators) != 2*n || len(vp.Generators) != n {
		return errors.Wrapf(ErrInvalidCapacity, "prover n = %d (%d generators), verifier n = %d (%d generators)",
			pp.N, len(pp.Generators), vp.N, len(vp.Generators))
	}
	if !pp.Generators[n].IsInfinity() {
		return errors.Wrap(ErrMalformedEncoding, "prover generator n+1 is not the identity")
	}

	gt, err := bls12381.Pair([]bls12381.G1Affine{pp.Generators[0]}, []bls12381.G2Affine{vp.Generators[n-1]})
	if err != nil {
		return errors.Wrap(err, "pair")
	}
	if !gt.Equal(&vp.GT) {
		return errors.Wrap(ErrMalformedEncoding, "gt does not match the generators")
	}

	// e(sum r_i g1^{alpha^i}, g2) == e(g1, sum r_i g2^{alpha^i}) for i = 1..n
	r, err := randomScalars(n)
	if err != nil {
		return err
	}
	if err := pairingCheck(
		pp.Generators[:n], g2Gen,
		[]bls12381.G1Affine{g1Gen}, vp.Generators, r,
	); err != nil {
		return errors.Wrap(err, "prover and verifier generators disagree")
	}

	// e(g1^{alpha^{i+1}}, g2) == e(g1^{alpha^i}, g2^alpha) across the prover
	// vector, stepping over the hole at slot n with g2^{alpha^2}
	var hi, lo []bls12381.G1Affine
	for i := 1; i < 2*n; i++ {
		if i == n || i == n+1 {
			continue
		}
		hi = append(hi, pp.Generators[i])
		lo = append(lo, pp.Generators[i-1])
	}
	if len(hi) > 0 {
		r, err := randomScalars(len(hi))
		if err != nil {
			return err
		}
		if err := pairingCheck(hi, g2Gen, lo, []bls12381.G2Affine{vp.Generators[0]}, r); err != nil {
			return errors.Wrap(err, "prover generators are not successive powers")
		}
	}
	if n >= 2 {
		one := []fr.Element{{}}
		one[0].SetOne()
		if err := pairingCheck(
			pp.Generators[n+1:n+2], g2Gen,
			pp.Generators[n-1:n], []bls12381.G2Affine{vp.Generators[1]}, one,
		); err != nil {
			return errors.Wrap(err, "prover generators n and n+2 are inconsistent")
		}
	}
	return nil
}

// pairingCheck asserts e(sum r_i a_i, ga) == e(sum r_i b_i, gb). When b or gb
// holds a single element, r is applied to the other side only.
func pairingCheck(
	a []bls12381.G1Affine, ga bls12381.G2Affine,
	b []bls12381.G1Affine, gb []bls12381.G2Affine,
	r []fr.Element,
) error {
	left, err := multiExpG1(a, r)
	if err != nil {
		return err
	}
	var right bls12381.G1Affine
	var rightG2 bls12381.G2Affine
	switch {
	case len(b) == len(r):
		right, err = multiExpG1(b, r)
		rightG2 = gb[0]
	default:
		right = b[0]
		rightG2, err = multiExpG2(gb, r)
	}
	if err != nil {
		return err
	}
	right.Neg(&right)
	ok, err := bls12381.PairingCheck(
		[]bls12381.G1Affine{left, right},
		[]bls12381.G2Affine{ga, rightG2},
	)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrap(ErrMalformedEncoding, "pairing check failed")
	}
	return nil
}

func randomScalars(n int) ([]fr.Element, error) {
	r := make([]fr.Element, n)
	for i := range r {
		if _, err := r[i].SetRandom(); err != nil {
			return nil, errors.Wrap(err, "random scalar")
		}
	}
	return r, nil
}
