// Package pointproofs implements a pairing based vector commitment over
// BLS12-381 with O(1) size position proofs that can be updated in place and
// aggregated within one commitment or across many commitments.
package pointproofs

import (
	"github.com/Electron-Labs/pointproofs-gnark/ciphersuite"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/pkg/errors"
)

const (
	// MaxN is the largest supported vector capacity.
	MaxN = 65536
	// MinSeedLen is the shortest seed accepted by ParamGen.
	MinSeedLen = 32
)

// ProverParams holds g1^{alpha^i} for i = 1..2n at Generators[i-1]. The slot
// for alpha^{n+1} (Generators[n]) is the identity.
type ProverParams struct {
	Ciphersuite ciphersuite.ID
	N           int
	Generators  []bls12381.G1Affine
}

// VerifierParams holds g2^{alpha^i} for i = 1..n and gt = e(g1, g2)^{alpha^{n+1}}.
type VerifierParams struct {
	Ciphersuite ciphersuite.ID
	N           int
	Generators  []bls12381.G2Affine
	GT          bls12381.GT
}

type Commitment struct {
	Ciphersuite ciphersuite.ID
	Point       bls12381.G1Affine
}

// Proof is a single position proof or an aggregate of several; both share
// one representation.
type Proof struct {
	Ciphersuite ciphersuite.ID
	Point       bls12381.G1Affine
}

func (c *Commitment) Equal(o *Commitment) bool {
	return c.Ciphersuite == o.Ciphersuite && c.Point.Equal(&o.Point)
}

func (p *Proof) Equal(o *Proof) bool {
	return p.Ciphersuite == o.Ciphersuite && p.Point.Equal(&o.Point)
}

// crossTerm is the generator multiplying the value at changedIndex inside the
// proof for proofIndex. It is the identity when the two indices coincide.
func (pp *ProverParams) crossTerm(proofIndex, changedIndex int) *bls12381.G1Affine {
	return &pp.Generators[pp.N-proofIndex+changedIndex]
}

// verifierTerm is the G2 generator paired with a commitment when opening index.
func (vp *VerifierParams) verifierTerm(index int) *bls12381.G2Affine {
	return &vp.Generators[vp.N-index-1]
}

func (pp *ProverParams) suite() (ciphersuite.Suite, error) {
	s, err := ciphersuite.Lookup(pp.Ciphersuite)
	if err != nil {
		return s, errors.Wrapf(ErrInvalidCiphersuite, "prover params: %v", err)
	}
	return s, nil
}

func (pp *ProverParams) checkValues(values [][]byte) error {
	if len(values) != pp.N {
		return errors.Wrapf(ErrLengthMismatch, "got %d values, n = %d", len(values), pp.N)
	}
	return nil
}

func (pp *ProverParams) checkIndex(index int) error {
	if index < 0 || index >= pp.N {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d, n = %d", index, pp.N)
	}
	return nil
}

func (pp *ProverParams) checkSuite(id ciphersuite.ID) error {
	if id != pp.Ciphersuite {
		return errors.Wrapf(ErrInvalidCiphersuite, "got %d, params use %d", id, pp.Ciphersuite)
	}
	return nil
}
