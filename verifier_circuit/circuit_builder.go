package verifiercircuit

import (
	"bytes"
	"crypto/sha256"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/logger"
)

func BuildVerifierCircuit() (pass bool, msg string, csBytes []uint8, pkBytes []uint8, vk groth16.VerifyingKey) {
	log := logger.Logger()

	var circuit PointproofVerifier

	log.Info().Msg("compiling pointproof verifier circuit...")
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &circuit)
	if err != nil {
		return false, "compile failed::" + err.Error(), csBytes, pkBytes, vk
	}
	log.Info().Int("constraints", ccs.GetNbConstraints()).Msg("compiling done")
	var cs bytes.Buffer
	_, err = ccs.WriteTo(&cs)
	if err != nil {
		return false, "write cs failed::" + err.Error(), csBytes, pkBytes, vk
	}
	csBytes = cs.Bytes()

	// create Groth16 setup. NB! UNSAFE
	pk, vk, err := groth16.Setup(ccs) // UNSAFE! Use MPC
	if err != nil {
		return false, "groth16.Setup failed::" + err.Error(), csBytes, pkBytes, vk
	}
	var pkBuffer bytes.Buffer
	_, err = pk.WriteTo(&pkBuffer)
	if err != nil {
		return false, "write pk failed::" + err.Error(), csBytes, pkBytes, vk
	}
	pkBytes = pkBuffer.Bytes()

	return true, "success", csBytes, pkBytes, vk
}

func ProveVerifierCircuit(cs constraint.ConstraintSystem, pk groth16.ProvingKey, vk groth16.VerifyingKey, native NativePointproofVerifier) (pass bool, msg string, proof groth16.Proof, pubInputs []string) {
	if err := native.Check(); err != nil {
		return false, "native.Check failed::" + err.Error(), proof, pubInputs
	}
	assignment := native.GetVariable()

	secretWitness, err := frontend.NewWitness(&assignment, ecc.BN254.ScalarField())
	if err != nil {
		return false, "frontend.NewWitness failed::" + err.Error(), proof, pubInputs
	}
	publicWitness, err := secretWitness.Public()
	if err != nil {
		return false, "secretWitness.Public failed::" + err.Error(), proof, pubInputs
	}

	publicWitnessFrVector := publicWitness.Vector().(fr.Vector)
	pubInputs = make([]string, len(publicWitnessFrVector))
	for i := range publicWitnessFrVector {
		pubInputs[i] = publicWitnessFrVector[i].String()
	}

	proof, err = groth16.Prove(cs, pk, secretWitness, backend.WithProverHashToFieldFunction(sha256.New()))
	if err != nil {
		return false, "groth16.Prove failed::" + err.Error(), proof, pubInputs
	}
	err = groth16.Verify(proof, vk, publicWitness, backend.WithVerifierHashToFieldFunction(sha256.New()))
	if err != nil {
		return false, "groth16.Verify failed::" + err.Error(), proof, pubInputs
	}

	return true, "success", proof, pubInputs
}
