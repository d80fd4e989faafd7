// Package merklevc is the hash tree vector commitment used as a baseline for
// pointproofs: O(log n) proofs, no aggregation.
package merklevc

import (
	"encoding/binary"
	"fmt"

	mt "github.com/txaty/go-merkletree"
	"golang.org/x/crypto/sha3"
)

const HashLen = 32

type Params struct {
	N      int
	nBytes [8]byte
}

func NewParams(n int) (*Params, error) {
	if n < 2 {
		return nil, fmt.Errorf("merkle commitment needs at least 2 values, got %d", n)
	}
	p := Params{N: n}
	binary.BigEndian.PutUint64(p.nBytes[:], uint64(n))
	return &p, nil
}

// leaf is serialized as 0x00 || be64(n) || be64(index) || value. The index
// keeps leaves with equal values distinct.
type leaf struct {
	params *Params
	index  int
	value  []byte
}

const leafHeaderLen = 1 + 8 + 8

func (l leaf) Serialize() ([]byte, error) {
	out := make([]byte, 0, leafHeaderLen+len(l.value))
	out = append(out, 0)
	out = append(out, l.params.nBytes[:]...)
	out = binary.BigEndian.AppendUint64(out, uint64(l.index))
	return append(out, l.value...), nil
}

type Tree struct {
	params *Params
	values [][]byte
	tree   *mt.MerkleTree
}

// Proof lists the sibling hashes from the leaf up, Path[i] being 1 when the
// sibling at level i sits on the right.
type Proof struct {
	Siblings [][]byte
	Path     []uint8
}

func Commit(params *Params, values [][]byte) (*Tree, error) {
	if len(values) != params.N {
		return nil, fmt.Errorf("got %d values, n = %d", len(values), params.N)
	}
	t := Tree{
		params: params,
		values: append([][]byte(nil), values...),
	}
	if err := t.rebuild(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *Tree) Root() []byte {
	return t.tree.Root
}

func (t *Tree) Prove(index int) (*Proof, error) {
	if index < 0 || index >= t.params.N {
		return nil, fmt.Errorf("invalid index %d, n = %d", index, t.params.N)
	}
	mtProof, err := t.tree.Proof(t.leaf(index))
	if err != nil {
		return nil, fmt.Errorf("tree.Proof::%w", err)
	}
	p := getNativeProof(mtProof)
	return &p, nil
}

// Update replaces the value at index and recomputes the root. Proofs taken
// before the update must be regenerated.
func (t *Tree) Update(index int, value []byte) error {
	if index < 0 || index >= t.params.N {
		return fmt.Errorf("invalid index %d, n = %d", index, t.params.N)
	}
	old := t.values[index]
	t.values[index] = value
	if err := t.rebuild(); err != nil {
		t.values[index] = old
		return err
	}
	return nil
}

func Verify(params *Params, root []byte, proof *Proof, value []byte, index int) bool {
	if proof == nil || index < 0 || index >= params.N || len(proof.Siblings) != len(proof.Path) {
		return false
	}
	ok, err := mt.Verify(leaf{params: params, index: index, value: value}, getMTProof(proof), root, treeConfig())
	return err == nil && ok
}

func (t *Tree) leaf(index int) leaf {
	return leaf{params: t.params, index: index, value: t.values[index]}
}

func (t *Tree) rebuild() error {
	blocks := make([]mt.DataBlock, len(t.values))
	for i := range blocks {
		blocks[i] = t.leaf(i)
	}
	tree, err := mt.New(treeConfig(), blocks)
	if err != nil {
		return fmt.Errorf("mt.New::%w", err)
	}
	t.tree = tree
	return nil
}

func treeConfig() *mt.Config {
	return &mt.Config{
		HashFunc: KeccakHashFunc,
		Mode:     mt.ModeTreeBuild,
	}
}

func KeccakHashFunc(data []byte) ([]byte, error) {
	keccakFunc := sha3.NewLegacyKeccak256()
	keccakFunc.Write(data)
	return keccakFunc.Sum(nil), nil
}

func getNativeProof(mtProof *mt.Proof) Proof {
	siblings := make([][]byte, len(mtProof.Siblings))
	path := make([]uint8, len(mtProof.Siblings))
	pathBin := mtProof.Path
	for i := range mtProof.Siblings {
		siblings[i] = mtProof.Siblings[i]
		path[i] = uint8(pathBin & 1)
		pathBin >>= 1
	}
	return Proof{Siblings: siblings, Path: path}
}

func getMTProof(p *Proof) *mt.Proof {
	var path uint32
	for i := len(p.Path) - 1; i >= 0; i-- {
		path = path<<1 | uint32(p.Path[i]&1)
	}
	return &mt.Proof{Siblings: p.Siblings, Path: path}
}
