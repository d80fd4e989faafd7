package circuitdata

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	groth16_bn254 "github.com/consensys/gnark/backend/groth16/bn254"
	"github.com/consensys/gnark/constraint"
)

// OuterCurve carries the groth16 proofs of in-circuit verification.
const OuterCurve = ecc.BN254

// get CS from bytes
func GetNewCSFromBytes(csBytes []byte) (constraint.ConstraintSystem, error) {
	cs := groth16.NewCS(OuterCurve)
	if _, err := cs.ReadFrom(bytes.NewReader(csBytes)); err != nil {
		return cs, fmt.Errorf("cs.ReadFrom::%w", err)
	}
	return cs, nil
}

// get PK from bytes
func GetNewPKFromBytes(pkBytes []byte) (groth16.ProvingKey, error) {
	pk := groth16.NewProvingKey(OuterCurve)
	if _, err := pk.ReadFrom(bytes.NewReader(pkBytes)); err != nil {
		return pk, fmt.Errorf("pk.ReadFrom::%w", err)
	}
	return pk, nil
}

// get VK from its json form, precomputed for verification
func GetNewVKFromJSON(vkBytes []byte) (*groth16_bn254.VerifyingKey, error) {
	vk := groth16_bn254.VerifyingKey{}
	if err := json.Unmarshal(vkBytes, &vk); err != nil {
		return nil, fmt.Errorf("json.Unmarshal::%w", err)
	}
	if err := vk.Precompute(); err != nil {
		return nil, fmt.Errorf("vk.Precompute::%w", err)
	}
	return &vk, nil
}

func VKToJSON(vkInterface groth16.VerifyingKey) ([]byte, error) {
	vk, ok := vkInterface.(*groth16_bn254.VerifyingKey)
	if !ok {
		return nil, fmt.Errorf("invalid vkey: %T", vkInterface)
	}
	return json.MarshalIndent(vk, "", " ")
}

func ProofToBytes(proof groth16.Proof) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("proof.WriteTo::%w", err)
	}
	return buf.Bytes(), nil
}
