package verifiercircuit

import (
	"fmt"
	"math/big"

	"github.com/Electron-Labs/pointproofs-gnark/ciphersuite"
	"github.com/Electron-Labs/pointproofs-gnark/pointproofs"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark/std/algebra/emulated/sw_bls12381"
)

type NativePointproofVerifier struct {
	Commitment bls12381.G1Affine
	Proof      bls12381.G1Affine
	Generator  bls12381.G2Affine
	Target     bls12381.GT
}

// NewNativeVerifier builds the witness for opening com at index to value.
// Identity points are rejected since the emulated pairing does not handle
// them, which rules out the single slot case n = 1.
func NewNativeVerifier(
	vp *pointproofs.VerifierParams,
	com *pointproofs.Commitment,
	proof *pointproofs.Proof,
	value []byte,
	index int,
) (*NativePointproofVerifier, error) {
	if com.Ciphersuite != vp.Ciphersuite || proof.Ciphersuite != vp.Ciphersuite {
		return nil, fmt.Errorf("ciphersuite mismatch: params %d, commitment %d, proof %d", vp.Ciphersuite, com.Ciphersuite, proof.Ciphersuite)
	}
	if index < 0 || index >= vp.N {
		return nil, fmt.Errorf("invalid index %d, n = %d", index, vp.N)
	}
	if com.Point.IsInfinity() || proof.Point.IsInfinity() {
		return nil, fmt.Errorf("identity commitment or proof")
	}
	suite, err := ciphersuite.Lookup(vp.Ciphersuite)
	if err != nil {
		return nil, fmt.Errorf("ciphersuite.Lookup::%w", err)
	}

	h := suite.HashToField(value)
	var k big.Int
	h.BigInt(&k)
	var target bls12381.GT
	target.Exp(vp.GT, &k)

	return &NativePointproofVerifier{
		Commitment: com.Point,
		Proof:      proof.Point,
		Generator:  vp.Generators[vp.N-index-1],
		Target:     target,
	}, nil
}

// Check evaluates the circuit relation natively.
func (t NativePointproofVerifier) Check() error {
	var negProof bls12381.G1Affine
	negProof.Neg(&t.Proof)
	_, _, _, g2 := bls12381.Generators()
	res, err := bls12381.Pair(
		[]bls12381.G1Affine{t.Commitment, negProof},
		[]bls12381.G2Affine{t.Generator, g2},
	)
	if err != nil {
		return fmt.Errorf("bls12381.Pair::%w", err)
	}
	if !res.Equal(&t.Target) {
		return fmt.Errorf("pairing equation does not hold")
	}
	return nil
}

func (t NativePointproofVerifier) GetVariable() PointproofVerifier {
	return PointproofVerifier{
		Commitment: sw_bls12381.NewG1Affine(t.Commitment),
		Proof:      sw_bls12381.NewG1Affine(t.Proof),
		Generator:  sw_bls12381.NewG2Affine(t.Generator),
		Target:     sw_bls12381.NewGTEl(t.Target),
	}
}
