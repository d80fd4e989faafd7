package vc

import (
	"context"
	"fmt"

	"github.com/Electron-Labs/pointproofs-gnark/cmd"
	"github.com/Electron-Labs/pointproofs-gnark/parallel"
	"github.com/Electron-Labs/pointproofs-gnark/pointproofs"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// openCmd represents the open command
var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Create position proofs for the vector in --values",
	Run: func(cmd *cobra.Command, args []string) {
		err := openValues()
		if err != nil {
			panic(fmt.Errorf("error: %v", err))
		}
	},
}

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify stored position proofs against the stored commitment",
	Run: func(cmd *cobra.Command, args []string) {
		err := verifyValues()
		if err != nil {
			panic(fmt.Errorf("error: %v", err))
		}
	},
}

var indices []int

func init() {
	vcCmd.AddCommand(openCmd)
	vcCmd.AddCommand(verifyCmd)

	for _, c := range []*cobra.Command{openCmd, verifyCmd} {
		c.Flags().IntSliceVarP(&indices, "indices", "i", nil, "positions to use, all positions when empty")
	}
}

func allIndices(n int) []int {
	if len(indices) > 0 {
		return indices
	}
	all := make([]int, n)
	for i := range all {
		all[i] = i
	}
	return all
}

func openValues() error {
	pp, err := ReadProverParams()
	if err != nil {
		return err
	}
	values, err := ReadValues(valuesFile)
	if err != nil {
		return err
	}
	idx := allIndices(len(values))
	proofs, err := parallel.ProveAll(context.Background(), pp, values, idx, cmd.Conf.Workers)
	if err != nil {
		return err
	}
	for k, proof := range proofs {
		if err := writeFile(cmd.ProofFile(idx[k]), proof.Bytes()); err != nil {
			return err
		}
	}
	log.Info().Int("proofs", len(proofs)).Str("dir", cmd.ProofsDir()).Msg("proofs written")
	return nil
}

func verifyValues() error {
	vp, err := ReadVerifierParams()
	if err != nil {
		return err
	}
	com, err := ReadCommitment(cmd.CommitmentFile())
	if err != nil {
		return err
	}
	values, err := ReadValues(valuesFile)
	if err != nil {
		return err
	}
	idx := allIndices(len(values))
	proofs := make([]*pointproofs.Proof, len(idx))
	opened := make([][]byte, len(idx))
	for k, i := range idx {
		if i < 0 || i >= len(values) {
			return fmt.Errorf("index %d out of range for %d values", i, len(values))
		}
		if proofs[k], err = ReadProof(cmd.ProofFile(i)); err != nil {
			return fmt.Errorf("proof %d::%w", i, err)
		}
		opened[k] = values[i]
	}
	if err := parallel.VerifyAll(context.Background(), vp, com, proofs, opened, idx, cmd.Conf.Workers); err != nil {
		return err
	}
	log.Info().Int("proofs", len(proofs)).Msg("all proofs verified")
	return nil
}
