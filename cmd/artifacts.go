package cmd

import (
	"fmt"
	"path/filepath"
)

// Artifact locations under OutputDir shared by the subcommands.

func ParamsDir() string          { return filepath.Join(OutputDir, "params") }
func ProverParamsFile() string   { return filepath.Join(ParamsDir(), "prover.bin") }
func VerifierParamsFile() string { return filepath.Join(ParamsDir(), "verifier.bin") }
func CommitmentFile() string     { return filepath.Join(OutputDir, "commitment.bin") }
func ProofsDir() string          { return filepath.Join(OutputDir, "proofs") }

func ProofFile(index int) string {
	return filepath.Join(ProofsDir(), fmt.Sprintf("proof_%d.bin", index))
}
