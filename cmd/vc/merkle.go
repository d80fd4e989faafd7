package vc

import (
	"encoding/hex"
	"fmt"
	"path/filepath"

	"github.com/Electron-Labs/pointproofs-gnark/cmd"
	merklevc "github.com/Electron-Labs/pointproofs-gnark/merkle_vc"
	"github.com/fxamacker/cbor/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// merkleCmd represents the merkle command
var merkleCmd = &cobra.Command{
	Use:   "merkle",
	Short: "Commit and open the vector in --values with the hash tree baseline",
	Run: func(cmd *cobra.Command, args []string) {
		err := merkleOpen()
		if err != nil {
			panic(fmt.Errorf("error: %v", err))
		}
	},
}

func init() {
	vcCmd.AddCommand(merkleCmd)

	merkleCmd.Flags().IntSliceVarP(&indices, "indices", "i", nil, "positions to open, all positions when empty")
}

func merkleDir() string { return filepath.Join(cmd.OutputDir, "merkle") }

func merkleOpen() error {
	values, err := ReadValues(valuesFile)
	if err != nil {
		return err
	}
	params, err := merklevc.NewParams(len(values))
	if err != nil {
		return err
	}
	tree, err := merklevc.Commit(params, values)
	if err != nil {
		return err
	}
	root := tree.Root()
	if err := writeFile(filepath.Join(merkleDir(), "root.bin"), root); err != nil {
		return err
	}

	idx := allIndices(len(values))
	size := 0
	for _, i := range idx {
		proof, err := tree.Prove(i)
		if err != nil {
			return err
		}
		if !merklevc.Verify(params, root, proof, values[i], i) {
			return fmt.Errorf("merkle proof %d does not verify", i)
		}
		raw, err := cbor.Marshal(proof)
		if err != nil {
			return fmt.Errorf("cbor.Marshal::%w", err)
		}
		size = len(raw)
		if err := writeFile(filepath.Join(merkleDir(), fmt.Sprintf("proof_%d.cbor", i)), raw); err != nil {
			return err
		}
	}
	log.Info().Str("root", hex.EncodeToString(root)).Int("proofs", len(idx)).Int("proof_bytes", size).Msg("merkle proofs written")
	return nil
}
