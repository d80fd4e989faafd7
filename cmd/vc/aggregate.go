package vc

import (
	"fmt"
	"path/filepath"

	"github.com/Electron-Labs/pointproofs-gnark/cmd"
	"github.com/Electron-Labs/pointproofs-gnark/pointproofs"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// aggregateCmd represents the aggregate command
var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Aggregate stored proofs of one commitment into a bundle",
	Run: func(cmd *cobra.Command, args []string) {
		err := aggregateProofs()
		if err != nil {
			panic(fmt.Errorf("error: %v", err))
		}
	},
}

// mergeCmd represents the merge command
var mergeCmd = &cobra.Command{
	Use:   "merge <bundle>...",
	Short: "Merge same commitment bundles into one cross commitment bundle",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := mergeBundles(args)
		if err != nil {
			panic(fmt.Errorf("error: %v", err))
		}
	},
}

// batchVerifyCmd represents the batch-verify command
var batchVerifyCmd = &cobra.Command{
	Use:   "batch-verify <bundle>",
	Short: "Verify an aggregate bundle",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := batchVerify(args[0])
		if err != nil {
			panic(fmt.Errorf("error: %v", err))
		}
	},
}

var bundleFile string

func init() {
	vcCmd.AddCommand(aggregateCmd)
	vcCmd.AddCommand(mergeCmd)
	vcCmd.AddCommand(batchVerifyCmd)

	aggregateCmd.Flags().IntSliceVarP(&indices, "indices", "i", nil, "positions to aggregate, all positions when empty")
	for _, c := range []*cobra.Command{aggregateCmd, mergeCmd} {
		c.Flags().StringVar(&bundleFile, "bundle", "", "output bundle, defaults to <out>/aggregate.cbor")
	}
}

func bundlePath() string {
	if bundleFile != "" {
		return bundleFile
	}
	return filepath.Join(cmd.OutputDir, "aggregate.cbor")
}

func aggregateProofs() error {
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
	agg, err := pointproofs.SameCommitAggregate(com, proofs, idx, opened, len(values))
	if err != nil {
		return err
	}
	err = WriteBundle(bundlePath(), &Bundle{
		Commitments: [][]byte{com.Bytes()},
		Proof:       agg.Bytes(),
		Indices:     [][]int{idx},
		Values:      [][][]byte{opened},
	})
	if err != nil {
		return err
	}
	log.Info().Int("proofs", len(proofs)).Str("file", bundlePath()).Msg("aggregate written")
	return nil
}

// mergeBundles combines bundles that each hold one commitment. The per
// commitment aggregates are reused as they are.
func mergeBundles(paths []string) error {
	vp, err := ReadVerifierParams()
	if err != nil {
		return err
	}
	merged := &Bundle{}
	coms := make([]*pointproofs.Commitment, 0, len(paths))
	aggs := make([]*pointproofs.Proof, 0, len(paths))
	for _, path := range paths {
		b, err := ReadBundle(path)
		if err != nil {
			return fmt.Errorf("%s::%w", path, err)
		}
		if len(b.Commitments) != 1 || len(b.Indices) != 1 || len(b.Values) != 1 {
			return fmt.Errorf("%s holds %d commitments, only single commitment bundles can be merged", path, len(b.Commitments))
		}
		c, err := b.commitments()
		if err != nil {
			return fmt.Errorf("%s::%w", path, err)
		}
		p, err := b.proof()
		if err != nil {
			return fmt.Errorf("%s::%w", path, err)
		}
		coms = append(coms, c[0])
		aggs = append(aggs, p)
		merged.Commitments = append(merged.Commitments, b.Commitments[0])
		merged.Indices = append(merged.Indices, b.Indices[0])
		merged.Values = append(merged.Values, b.Values[0])
	}
	proof, err := pointproofs.CrossCommitAggregatePartial(coms, aggs, merged.Indices, merged.Values, vp.N)
	if err != nil {
		return err
	}
	merged.Proof = proof.Bytes()
	if err := WriteBundle(bundlePath(), merged); err != nil {
		return err
	}
	log.Info().Int("commitments", len(coms)).Str("file", bundlePath()).Msg("bundles merged")
	return nil
}

func batchVerify(path string) error {
	vp, err := ReadVerifierParams()
	if err != nil {
		return err
	}
	b, err := ReadBundle(path)
	if err != nil {
		return err
	}
	ok, err := b.Verify(vp)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("aggregate in %s does not verify", path)
	}
	log.Info().Int("commitments", len(b.Commitments)).Msg("aggregate verified")
	return nil
}
