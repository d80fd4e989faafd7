package build

import (
	"fmt"
	"os"
	"path/filepath"

	circuit_data "github.com/Electron-Labs/pointproofs-gnark/circuit_data"
	"github.com/Electron-Labs/pointproofs-gnark/cmd"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/spf13/cobra"
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build cs, pk, and vk files for specific circuits",
}

func init() {
	cmd.RootCmd.AddCommand(buildCmd)
}

func writePkVkCs(
	csBytes, pkBytes []byte,
	vk groth16.VerifyingKey,
	outputDir, name string,
) error {
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outputDir, name+"_cs.bin"), csBytes, 0644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outputDir, name+"_pk.bin"), pkBytes, 0644); err != nil {
		return err
	}
	bytesVK, err := circuit_data.VKToJSON(vk)
	if err != nil {
		return fmt.Errorf("circuit_data.VKToJSON::%w", err)
	}
	return os.WriteFile(filepath.Join(outputDir, name+"_vk.json"), bytesVK, 0644)
}
