package merklevc

import (
	"fmt"

	circuitData "github.com/Electron-Labs/pointproofs-gnark/circuit_data"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/uints"
)

// OpeningCircuit checks a hash tree opening in a circuit. Leaf is the
// serialized leaf, so the public inputs bind n, the index and the value.
type OpeningCircuit struct {
	Root     circuitData.KeccakHash `gnark:",public"`
	Leaf     []uints.U8             `gnark:",public"`
	Siblings []circuitData.KeccakHash
	Path     []frontend.Variable
}

// Make sizes the circuit for a tree of the given depth and values of
// valueLen bytes.
func (circuit *OpeningCircuit) Make(depth, valueLen int) {
	circuit.Root.Make()
	circuit.Leaf = make([]uints.U8, leafHeaderLen+valueLen)
	circuit.Siblings = make([]circuitData.KeccakHash, depth)
	for i := range circuit.Siblings {
		circuit.Siblings[i].Make()
	}
	circuit.Path = make([]frontend.Variable, depth)
}

func (circuit *OpeningCircuit) Define(api frontend.API) error {
	leafHash, err := circuitData.GetKeccak256Hash(api, circuit.Leaf)
	if err != nil {
		return err
	}
	root, err := computeRoot(api, leafHash, circuit.Siblings, circuit.Path)
	if err != nil {
		return err
	}
	circuitData.AssertHashEqual(api, root, circuit.Root)
	return nil
}

// computeRoot hashes up from the leaf. Path[i] = 1 keeps the running hash on
// the left.
func computeRoot(api frontend.API, hash circuitData.KeccakHash, siblings []circuitData.KeccakHash, path []frontend.Variable) (circuitData.KeccakHash, error) {
	for i := range siblings {
		api.AssertIsBoolean(path[i])
		concat := make([]uints.U8, 2*HashLen)
		for j := 0; j < HashLen; j++ {
			concat[j].Val = api.Select(path[i], hash[j].Val, siblings[i][j].Val)
			concat[HashLen+j].Val = api.Select(path[i], siblings[i][j].Val, hash[j].Val)
		}
		var err error
		hash, err = circuitData.GetKeccak256Hash(api, concat)
		if err != nil {
			return nil, err
		}
	}
	return hash, nil
}

type NativeOpening struct {
	Root     circuitData.NativeKeccakHash
	Leaf     []byte
	Siblings []circuitData.NativeKeccakHash
	Path     []uint8
}

func NewNativeOpening(params *Params, root []byte, proof *Proof, value []byte, index int) (*NativeOpening, error) {
	if index < 0 || index >= params.N {
		return nil, fmt.Errorf("invalid index %d, n = %d", index, params.N)
	}
	if len(root) != HashLen || len(proof.Siblings) != len(proof.Path) {
		return nil, fmt.Errorf("malformed root or proof")
	}
	serialized, err := leaf{params: params, index: index, value: value}.Serialize()
	if err != nil {
		return nil, err
	}
	siblings := make([]circuitData.NativeKeccakHash, len(proof.Siblings))
	for i, s := range proof.Siblings {
		if len(s) != HashLen {
			return nil, fmt.Errorf("sibling %d has %d bytes", i, len(s))
		}
		siblings[i] = s
	}
	return &NativeOpening{
		Root:     root,
		Leaf:     serialized,
		Siblings: siblings,
		Path:     proof.Path,
	}, nil
}

func (t NativeOpening) GetVariable() OpeningCircuit {
	siblings := make([]circuitData.KeccakHash, len(t.Siblings))
	for i := range t.Siblings {
		siblings[i] = t.Siblings[i].GetVariable()
	}
	path := make([]frontend.Variable, len(t.Path))
	for i := range t.Path {
		path[i] = t.Path[i]
	}
	return OpeningCircuit{
		Root:     t.Root.GetVariable(),
		Leaf:     circuitData.BytesToU8(t.Leaf),
		Siblings: siblings,
		Path:     path,
	}
}
