package pointproofs

import (
	"github.com/Electron-Labs/pointproofs-gnark/ciphersuite"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Verify checks e(C^{1/h}, g2^{alpha^{n-index}}) * e(proof^{-1/h}, g2) == gt
// with h the hash of value. Malformed or mismatched inputs verify to false.
func Verify(vp *VerifierParams, com *Commitment, proof *Proof, value []byte, index int) bool {
	if vp == nil || com == nil || proof == nil {
		return false
	}
	if com.Ciphersuite != vp.Ciphersuite || proof.Ciphersuite != vp.Ciphersuite {
		return false
	}
	if index < 0 || index >= vp.N {
		return false
	}
	suite, err := ciphersuite.Lookup(vp.Ciphersuite)
	if err != nil {
		return false
	}

	h := suite.HashToField(value)
	var hInv, hInvNeg fr.Element
	hInv.Inverse(&h)
	hInvNeg.Neg(&hInv)

	return pairsToGT(&vp.GT,
		[]bls12381.G1Affine{scaleG1(&com.Point, &hInv), scaleG1(&proof.Point, &hInvNeg)},
		[]bls12381.G2Affine{*vp.verifierTerm(index), g2Gen},
	)
}
