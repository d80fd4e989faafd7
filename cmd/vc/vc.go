package vc

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Electron-Labs/pointproofs-gnark/cmd"
	"github.com/Electron-Labs/pointproofs-gnark/pointproofs"
	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/cobra"
)

// vcCmd represents the vc command
var vcCmd = &cobra.Command{
	Use:   "vc",
	Short: "Generate parameters, commit, open, update and aggregate vector commitments",
}

var valuesFile string

func init() {
	cmd.RootCmd.AddCommand(vcCmd)

	vcCmd.PersistentFlags().StringVar(&valuesFile, "values", "", "vector file: CBOR array of byte strings (.cbor) or one value per line")
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func ReadProverParams() (*pointproofs.ProverParams, error) {
	raw, err := os.ReadFile(cmd.ProverParamsFile())
	if err != nil {
		return nil, err
	}
	var pp pointproofs.ProverParams
	if err := pp.SetBytes(raw); err != nil {
		return nil, fmt.Errorf("prover params::%w", err)
	}
	return &pp, nil
}

func ReadVerifierParams() (*pointproofs.VerifierParams, error) {
	raw, err := os.ReadFile(cmd.VerifierParamsFile())
	if err != nil {
		return nil, err
	}
	var vp pointproofs.VerifierParams
	if err := vp.SetBytes(raw); err != nil {
		return nil, fmt.Errorf("verifier params::%w", err)
	}
	return &vp, nil
}

func ReadCommitment(path string) (*pointproofs.Commitment, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var com pointproofs.Commitment
	if err := com.SetBytes(raw); err != nil {
		return nil, err
	}
	return &com, nil
}

func ReadProof(path string) (*pointproofs.Proof, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var proof pointproofs.Proof
	if err := proof.SetBytes(raw); err != nil {
		return nil, err
	}
	return &proof, nil
}

// ReadValues loads a vector. Text files hold one value per line, the trailing
// newline of the last line being dropped.
func ReadValues(path string) ([][]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("missing --values")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".cbor") {
		var values [][]byte
		if err := cbor.Unmarshal(raw, &values); err != nil {
			return nil, fmt.Errorf("cbor.Unmarshal::%w", err)
		}
		return values, nil
	}
	raw = bytes.TrimSuffix(raw, []byte("\n"))
	return bytes.Split(raw, []byte("\n")), nil
}

// EncodeValues renders a vector in the format selected by the file name.
func EncodeValues(path string, values [][]byte) ([]byte, error) {
	if strings.HasSuffix(path, ".cbor") {
		raw, err := cbor.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("cbor.Marshal::%w", err)
		}
		return raw, nil
	}
	for i, v := range values {
		if bytes.IndexByte(v, '\n') >= 0 {
			return nil, fmt.Errorf("value %d contains a newline, use a .cbor vector file", i)
		}
	}
	return append(bytes.Join(values, []byte("\n")), '\n'), nil
}

func WriteValues(path string, values [][]byte) error {
	raw, err := EncodeValues(path, values)
	if err != nil {
		return err
	}
	return writeFile(path, raw)
}

// Bundle is an aggregate proof together with everything needed to verify it.
// A bundle with one commitment holds a same commitment aggregate.
type Bundle struct {
	Commitments [][]byte   `cbor:"1,keyasint"`
	Proof       []byte     `cbor:"2,keyasint"`
	Indices     [][]int    `cbor:"3,keyasint"`
	Values      [][][]byte `cbor:"4,keyasint"`
}

func (b *Bundle) commitments() ([]*pointproofs.Commitment, error) {
	coms := make([]*pointproofs.Commitment, len(b.Commitments))
	for j, raw := range b.Commitments {
		coms[j] = new(pointproofs.Commitment)
		if err := coms[j].SetBytes(raw); err != nil {
			return nil, fmt.Errorf("commitment %d::%w", j, err)
		}
	}
	return coms, nil
}

func (b *Bundle) proof() (*pointproofs.Proof, error) {
	var proof pointproofs.Proof
	if err := proof.SetBytes(b.Proof); err != nil {
		return nil, err
	}
	return &proof, nil
}

// Verify checks the bundle's aggregate against its claims.
func (b *Bundle) Verify(vp *pointproofs.VerifierParams) (bool, error) {
	coms, err := b.commitments()
	if err != nil {
		return false, err
	}
	proof, err := b.proof()
	if err != nil {
		return false, err
	}
	if len(coms) == 1 && len(b.Indices) == 1 && len(b.Values) == 1 {
		return pointproofs.SameCommitBatchVerify(vp, coms[0], proof, b.Indices[0], b.Values[0]), nil
	}
	return pointproofs.CrossCommitBatchVerify(vp, coms, proof, b.Indices, b.Values), nil
}

func ReadBundle(path string) (*Bundle, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var b Bundle
	if err := cbor.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("cbor.Unmarshal::%w", err)
	}
	return &b, nil
}

func WriteBundle(path string, b *Bundle) error {
	raw, err := cbor.Marshal(b)
	if err != nil {
		return fmt.Errorf("cbor.Marshal::%w", err)
	}
	return writeFile(path, raw)
}
