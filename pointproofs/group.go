package pointproofs

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

var (
	g1Gen bls12381.G1Affine
	g2Gen bls12381.G2Affine
)

func init() {
	_, _, g1Gen, g2Gen = bls12381.Generators()
}

// multiExpG1 skips identity points and zero scalars, returning the identity
// when nothing is left.
func multiExpG1(points []bls12381.G1Affine, scalars []fr.Element) (bls12381.G1Affine, error) {
	ps := make([]bls12381.G1Affine, 0, len(points))
	ss := make([]fr.Element, 0, len(scalars))
	for i := range points {
		if points[i].IsInfinity() || scalars[i].IsZero() {
			continue
		}
		ps = append(ps, points[i])
		ss = append(ss, scalars[i])
	}
	var res bls12381.G1Affine
	if len(ps) == 0 {
		return res, nil
	}
	if _, err := res.MultiExp(ps, ss, ecc.MultiExpConfig{}); err != nil {
		return res, err
	}
	return res, nil
}

func multiExpG2(points []bls12381.G2Affine, scalars []fr.Element) (bls12381.G2Affine, error) {
	var res bls12381.G2Affine
	if len(points) == 0 {
		return res, nil
	}
	if _, err := res.MultiExp(points, scalars, ecc.MultiExpConfig{}); err != nil {
		return res, err
	}
	return res, nil
}

func scaleG1(p *bls12381.G1Affine, s *fr.Element) bls12381.G1Affine {
	var k big.Int
	s.BigInt(&k)
	var res bls12381.G1Affine
	res.ScalarMultiplication(p, &k)
	return res
}

func addG1(a, b *bls12381.G1Affine) bls12381.G1Affine {
	var acc bls12381.G1Jac
	acc.FromAffine(a)
	acc.AddMixed(b)
	var res bls12381.G1Affine
	res.FromJacobian(&acc)
	return res
}

// pairsToGT reports whether prod e(P[i], Q[i]) equals gt.
func pairsToGT(gt *bls12381.GT, P []bls12381.G1Affine, Q []bls12381.G2Affine) bool {
	res, err := bls12381.Pair(P, Q)
	if err != nil {
		return false
	}
	return res.Equal(gt)
}
