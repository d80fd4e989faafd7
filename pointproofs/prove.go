package pointproofs

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/pkg/errors"
)

// Prove opens the commitment to values at index. The proof folds every other
// position through the cross-term generators, so it does not depend on the
// value at index itself.
func Prove(pp *ProverParams, values [][]byte, index int) (*Proof, error) {
	if err := pp.checkValues(values); err != nil {
		return nil, err
	}
	if err := pp.checkIndex(index); err != nil {
		return nil, err
	}
	suite, err := pp.suite()
	if err != nil {
		return nil, err
	}
	h := hashValues(suite, values)

	points := make([]bls12381.G1Affine, 0, pp.N-1)
	scalars := make([]fr.Element, 0, pp.N-1)
	for j := 0; j < pp.N; j++ {
		if j == index {
			continue
		}
		points = append(points, *pp.crossTerm(index, j))
		scalars = append(scalars, h[j])
	}
	point, err := multiExpG1(points, scalars)
	if err != nil {
		return nil, errors.Wrap(err, "multiexp")
	}
	return &Proof{Ciphersuite: pp.Ciphersuite, Point: point}, nil
}

// ProofUpdate moves the proof for proofIndex to the vector where changedIndex
// holds newValue instead of oldValue. A proof never depends on its own slot,
// so when the indices are equal the result is a copy of proof, identical to
// what Prove returns on the new vector.
func ProofUpdate(pp *ProverParams, proof *Proof, proofIndex, changedIndex int, oldValue, newValue []byte) (*Proof, error) {
	if err := pp.checkSuite(proof.Ciphersuite); err != nil {
		return nil, err
	}
	if err := pp.checkIndex(proofIndex); err != nil {
		return nil, err
	}
	if err := pp.checkIndex(changedIndex); err != nil {
		return nil, err
	}
	if proofIndex == changedIndex {
		updated := *proof
		return &updated, nil
	}
	delta, err := pp.delta(oldValue, newValue)
	if err != nil {
		return nil, err
	}
	step := scaleG1(pp.crossTerm(proofIndex, changedIndex), &delta)
	return &Proof{
		Ciphersuite: proof.Ciphersuite,
		Point:       addG1(&proof.Point, &step),
	}, nil
}

// delta is H(newValue) - H(oldValue).
func (pp *ProverParams) delta(oldValue, newValue []byte) (fr.Element, error) {
	var d fr.Element
	suite, err := pp.suite()
	if err != nil {
		return d, err
	}
	hOld := suite.HashToField(oldValue)
	hNew := suite.HashToField(newValue)
	d.Sub(&hNew, &hOld)
	return d, nil
}
