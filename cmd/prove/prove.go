package prove

import (
	"fmt"
	"os"

	circuit_data "github.com/Electron-Labs/pointproofs-gnark/circuit_data"
	"github.com/Electron-Labs/pointproofs-gnark/cmd"
	"github.com/consensys/gnark/backend/groth16"
	groth16_bn254 "github.com/consensys/gnark/backend/groth16/bn254"
	"github.com/consensys/gnark/constraint"
	"github.com/spf13/cobra"
)

// proveCmd represents the prove command
var proveCmd = &cobra.Command{
	Use:   "prove",
	Short: "Generate proofs for specific circuits",
}

func init() {
	cmd.RootCmd.AddCommand(proveCmd)
}

func readPk(path string) (groth16.ProvingKey, error) {
	bytesPk, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return circuit_data.GetNewPKFromBytes(bytesPk)
}

func readCs(path string) (constraint.ConstraintSystem, error) {
	bytesCs, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return circuit_data.GetNewCSFromBytes(bytesCs)
}

func readVk(path string) (*groth16_bn254.VerifyingKey, error) {
	bytesVK, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return circuit_data.GetNewVKFromJSON(bytesVK)
}

func writeFile(path string, data []byte) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = file.Write(data)
	if err != nil {
		return fmt.Errorf("write %s::%w", path, err)
	}
	return nil
}
