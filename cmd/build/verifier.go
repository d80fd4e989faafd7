package build

import (
	"fmt"
	"path/filepath"

	"github.com/Electron-Labs/pointproofs-gnark/cmd"
	verifiercircuit "github.com/Electron-Labs/pointproofs-gnark/verifier_circuit"
	"github.com/spf13/cobra"
)

// verifierCmd represents the verifier command
var verifierCmd = &cobra.Command{
	Use:   "verifier",
	Short: "Build cs, pk and vk for the pointproof verifier circuit",
	Run: func(cmd *cobra.Command, args []string) {
		err := buildVerifier()
		if err != nil {
			panic(fmt.Errorf("error: %v", err))
		}
	},
}

func init() {
	buildCmd.AddCommand(verifierCmd)
}

func buildVerifier() error {
	pass, msg, csBytes, pkBytes, vk := verifiercircuit.BuildVerifierCircuit()
	if !pass || len(csBytes) == 0 || len(pkBytes) == 0 {
		return fmt.Errorf("build verifier circuit failed: %s", msg)
	}

	return writePkVkCs(
		csBytes, pkBytes,
		vk,
		filepath.Join(cmd.OutputDir, "verifier"),
		"verifier",
	)
}
