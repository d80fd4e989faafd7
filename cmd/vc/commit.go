package vc

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Electron-Labs/pointproofs-gnark/cmd"
	"github.com/Electron-Labs/pointproofs-gnark/pointproofs"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// commitCmd represents the commit command
var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Commit to the vector in --values",
	Run: func(cmd *cobra.Command, args []string) {
		err := commitValues()
		if err != nil {
			panic(fmt.Errorf("error: %v", err))
		}
	},
}

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Replace one value, updating the stored commitment and every stored proof",
	Run: func(cmd *cobra.Command, args []string) {
		err := updateValue()
		if err != nil {
			panic(fmt.Errorf("error: %v", err))
		}
	},
}

var updateIndex int
var newValue string

func init() {
	vcCmd.AddCommand(commitCmd)
	vcCmd.AddCommand(updateCmd)

	updateCmd.Flags().IntVarP(&updateIndex, "index", "i", 0, "position to change")
	updateCmd.Flags().StringVar(&newValue, "new-value", "", "value to store at --index")
	if err := updateCmd.MarkFlagRequired("index"); err != nil {
		panic(err)
	}
}

func commitValues() error {
	pp, err := ReadProverParams()
	if err != nil {
		return err
	}
	values, err := ReadValues(valuesFile)
	if err != nil {
		return err
	}
	com, err := pointproofs.Commit(pp, values)
	if err != nil {
		return err
	}
	if err := writeFile(cmd.CommitmentFile(), com.Bytes()); err != nil {
		return err
	}
	log.Info().Int("n", len(values)).Str("file", cmd.CommitmentFile()).Msg("commitment written")
	return nil
}

// updateValue computes the new vector file, commitment and proofs before
// writing any of them, so a rejected value leaves the artifacts untouched.
func updateValue() error {
	pp, err := ReadProverParams()
	if err != nil {
		return err
	}
	values, err := ReadValues(valuesFile)
	if err != nil {
		return err
	}
	if updateIndex < 0 || updateIndex >= len(values) {
		return fmt.Errorf("index %d out of range for %d values", updateIndex, len(values))
	}
	oldValue := values[updateIndex]
	updatedValues := make([][]byte, len(values))
	copy(updatedValues, values)
	updatedValues[updateIndex] = []byte(newValue)
	rawValues, err := EncodeValues(valuesFile, updatedValues)
	if err != nil {
		return err
	}

	com, err := ReadCommitment(cmd.CommitmentFile())
	if err != nil {
		return err
	}
	com, err = pointproofs.CommitUpdate(pp, com, updateIndex, oldValue, []byte(newValue))
	if err != nil {
		return err
	}

	proofs := make(map[int]*pointproofs.Proof)
	for i := range values {
		proof, err := ReadProof(cmd.ProofFile(i))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("proof %d::%w", i, err)
		}
		proofs[i], err = pointproofs.ProofUpdate(pp, proof, i, updateIndex, oldValue, []byte(newValue))
		if err != nil {
			return err
		}
	}

	if err := writeFile(valuesFile, rawValues); err != nil {
		return err
	}
	if err := writeFile(cmd.CommitmentFile(), com.Bytes()); err != nil {
		return err
	}
	for i, proof := range proofs {
		if err := os.WriteFile(cmd.ProofFile(i), proof.Bytes(), 0644); err != nil {
			return err
		}
	}
	log.Info().Int("index", updateIndex).Int("proofs", len(proofs)).Msg("vector updated")
	return nil
}
