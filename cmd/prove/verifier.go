package prove

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	circuit_data "github.com/Electron-Labs/pointproofs-gnark/circuit_data"
	"github.com/Electron-Labs/pointproofs-gnark/cmd"
	"github.com/Electron-Labs/pointproofs-gnark/cmd/vc"
	verifiercircuit "github.com/Electron-Labs/pointproofs-gnark/verifier_circuit"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// verifierCmd represents the verifier command
var verifierCmd = &cobra.Command{
	Use:   "verifier",
	Short: "Prove in a groth16 circuit that a stored position proof verifies",
	Run: func(cmd *cobra.Command, args []string) {
		err := proveVerifier()
		if err != nil {
			panic(fmt.Errorf("error: %v", err))
		}
	},
}

var index int
var value string

func init() {
	proveCmd.AddCommand(verifierCmd)

	verifierCmd.Flags().IntVarP(&index, "index", "i", 0, "opened position")
	verifierCmd.Flags().StringVar(&value, "value", "", "value claimed at --index")
	if err := verifierCmd.MarkFlagRequired("index"); err != nil {
		panic(err)
	}
}

func proveVerifier() error {
	circuitDir := filepath.Join(cmd.OutputDir, "verifier")

	log.Info().Msg("setting up verifier artifacts...")
	pk, err := readPk(filepath.Join(circuitDir, "verifier_pk.bin"))
	if err != nil {
		return err
	}
	cs, err := readCs(filepath.Join(circuitDir, "verifier_cs.bin"))
	if err != nil {
		return err
	}
	vk, err := readVk(filepath.Join(circuitDir, "verifier_vk.json"))
	if err != nil {
		return err
	}

	vp, err := vc.ReadVerifierParams()
	if err != nil {
		return err
	}
	com, err := vc.ReadCommitment(cmd.CommitmentFile())
	if err != nil {
		return err
	}
	proof, err := vc.ReadProof(cmd.ProofFile(index))
	if err != nil {
		return err
	}
	native, err := verifiercircuit.NewNativeVerifier(vp, com, proof, []byte(value), index)
	if err != nil {
		return err
	}

	start := time.Now()
	pass, msg, groth16Proof, pis := verifiercircuit.ProveVerifierCircuit(cs, pk, vk, *native)
	if !pass {
		return fmt.Errorf("failed to prove verifier circuit %s", msg)
	}
	log.Info().Dur("took", time.Since(start)).Msg("verifier circuit proved")

	proofBytes, err := circuit_data.ProofToBytes(groth16Proof)
	if err != nil {
		return err
	}
	if err := writeFile(filepath.Join(circuitDir, fmt.Sprintf("verifier_proof_%d.bin", index)), proofBytes); err != nil {
		return err
	}
	pisBytes, err := json.MarshalIndent(pis, "", "    ")
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(circuitDir, fmt.Sprintf("verifier_pis_%d.json", index)), pisBytes)
}
