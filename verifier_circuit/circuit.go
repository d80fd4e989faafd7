// Package verifiercircuit proves in zero knowledge that a pointproofs opening
// verifies. The circuit runs over BN254 and emulates BLS12-381.
package verifiercircuit

import (
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/emulated/sw_bls12381"
	"github.com/consensys/gnark/std/algebra/emulated/sw_emulated"
	"github.com/consensys/gnark/std/math/emulated"
)

// PointproofVerifier asserts e(C, W) * e(-pi, g2) == Target where W is the
// verifier generator for the opened index and Target = gt^{H(value)}.
type PointproofVerifier struct {
	Commitment sw_bls12381.G1Affine `gnark:",public"`
	Proof      sw_bls12381.G1Affine
	Generator  sw_bls12381.G2Affine `gnark:",public"`
	Target     sw_bls12381.GTEl     `gnark:",public"`
}

func (circuit *PointproofVerifier) Define(api frontend.API) error {
	pairing, err := sw_bls12381.NewPairing(api)
	if err != nil {
		return fmt.Errorf("NewPairing: %w", err)
	}
	curve, err := sw_emulated.New[emulated.BLS12381Fp, emulated.BLS12381Fr](api, sw_emulated.GetBLS12381Params())
	if err != nil {
		return fmt.Errorf("sw_emulated.New: %w", err)
	}

	_, _, _, g2Gen := bls12381.Generators()
	g2 := sw_bls12381.NewG2Affine(g2Gen)
	negProof := curve.Neg(&circuit.Proof)

	res, err := pairing.Pair(
		[]*sw_bls12381.G1Affine{&circuit.Commitment, negProof},
		[]*sw_bls12381.G2Affine{&circuit.Generator, &g2},
	)
	if err != nil {
		return fmt.Errorf("Pair: %w", err)
	}
	pairing.AssertIsEqual(res, &circuit.Target)
	return nil
}
