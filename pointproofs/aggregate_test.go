package pointproofs

import (
	"fmt"
	"testing"

	"github.com/Electron-Labs/pointproofs-gnark/ciphersuite"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subset(proofs []*Proof, values [][]byte, indices []int) ([]*Proof, [][]byte) {
	ps := make([]*Proof, len(indices))
	vs := make([][]byte, len(indices))
	for i, idx := range indices {
		ps[i] = proofs[idx]
		vs[i] = values[idx]
	}
	return ps, vs
}

func TestSameCommitAggregate(t *testing.T) {
	n := 16
	pp, vp := setup(t, ciphersuite.SHA512, n)
	values := messages(n, "this is message number %d")
	com, err := Commit(pp, values)
	require.NoError(t, err)
	proofs := proveAll(t, pp, values)

	for size := 1; size <= n; size++ {
		// 3 is coprime with n so the indices stay distinct
		indices := make([]int, size)
		for i := range indices {
			indices[i] = (i * 3) % n
		}
		ps, vs := subset(proofs, values, indices)
		agg, err := SameCommitAggregate(com, ps, indices, vs, n)
		require.NoError(t, err)
		assert.True(t, SameCommitBatchVerify(vp, com, agg, indices, vs), "size %d", size)

		wrong := append([][]byte(nil), vs...)
		wrong[size/2] = []byte("wrong string")
		assert.False(t, SameCommitBatchVerify(vp, com, agg, indices, wrong), "size %d", size)
	}
}

func TestSameCommitAggregateSingleProofIsUnchanged(t *testing.T) {
	pp, _ := setup(t, ciphersuite.SHA512, 4)
	values := messages(4, "v%d")
	com, err := Commit(pp, values)
	require.NoError(t, err)
	proof, err := Prove(pp, values, 3)
	require.NoError(t, err)

	agg, err := SameCommitAggregate(com, []*Proof{proof}, []int{3}, values[3:], 4)
	require.NoError(t, err)
	assert.Equal(t, proof.Bytes(), agg.Bytes())
}

func TestSameCommitBatchVerifyRejects(t *testing.T) {
	n := 8
	pp, vp := setup(t, ciphersuite.SHA512, n)
	values := messages(n, "v%d")
	com, err := Commit(pp, values)
	require.NoError(t, err)
	proofs := proveAll(t, pp, values)
	indices := []int{1, 4, 6}
	ps, vs := subset(proofs, values, indices)
	agg, err := SameCommitAggregate(com, ps, indices, vs, n)
	require.NoError(t, err)

	assert.True(t, SameCommitBatchVerify(vp, com, agg, indices, vs))
	assert.False(t, SameCommitBatchVerify(vp, com, agg, []int{1, 4, 7}, vs))
	assert.False(t, SameCommitBatchVerify(vp, com, agg, []int{4, 1, 6}, vs))
	assert.False(t, SameCommitBatchVerify(vp, com, agg, indices[:2], vs[:2]))
	assert.False(t, SameCommitBatchVerify(vp, com, agg, indices, vs[:2]))
	assert.False(t, SameCommitBatchVerify(vp, com, agg, nil, nil))
	assert.False(t, SameCommitBatchVerify(vp, com, agg, []int{1, 4, 8}, vs))
	assert.False(t, SameCommitBatchVerify(vp, com, proofs[1], indices, vs))

	other, err := Commit(pp, messages(n, "w%d"))
	require.NoError(t, err)
	assert.False(t, SameCommitBatchVerify(vp, other, agg, indices, vs))
}

func TestSameCommitAggregateErrors(t *testing.T) {
	n := 4
	pp, _ := setup(t, ciphersuite.SHA512, n)
	values := messages(n, "v%d")
	com, err := Commit(pp, values)
	require.NoError(t, err)
	proofs := proveAll(t, pp, values)

	_, err = SameCommitAggregate(com, nil, nil, nil, n)
	assert.True(t, errors.Is(err, ErrLengthMismatch))
	_, err = SameCommitAggregate(com, proofs[:2], []int{0}, values[:1], n)
	assert.True(t, errors.Is(err, ErrLengthMismatch))
	_, err = SameCommitAggregate(com, proofs[:2], []int{0, 1}, values[:1], n)
	assert.True(t, errors.Is(err, ErrLengthMismatch))
	_, err = SameCommitAggregate(com, proofs[:2], []int{0, 4}, values[:2], n)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))

	foreign := *proofs[1]
	foreign.Ciphersuite = ciphersuite.SHA3_512
	_, err = SameCommitAggregate(com, []*Proof{proofs[0], &foreign}, []int{0, 1}, values[:2], n)
	assert.True(t, errors.Is(err, ErrInvalidCiphersuite))
}

type crossFixture struct {
	coms    []*Commitment
	proofs  [][]*Proof
	aggs    []*Proof
	indices [][]int
	values  [][][]byte
}

// newCrossFixture commits k vectors of size n and opens sizes[j] positions of
// vector j.
func newCrossFixture(t *testing.T, pp *ProverParams, sizes []int) crossFixture {
	t.Helper()
	n := pp.N
	var f crossFixture
	for j, size := range sizes {
		values := messages(n, fmt.Sprintf("commitment %d, message %%d", j))
		com, err := Commit(pp, values)
		require.NoError(t, err)

		indices := make([]int, size)
		for i := range indices {
			indices[i] = (i*7 + j) % n
		}
		ps := make([]*Proof, size)
		vs := make([][]byte, size)
		for i, idx := range indices {
			ps[i], err = Prove(pp, values, idx)
			require.NoError(t, err)
			vs[i] = values[idx]
		}
		agg, err := SameCommitAggregate(com, ps, indices, vs, n)
		require.NoError(t, err)

		f.coms = append(f.coms, com)
		f.proofs = append(f.proofs, ps)
		f.aggs = append(f.aggs, agg)
		f.indices = append(f.indices, indices)
		f.values = append(f.values, vs)
	}
	return f
}

func TestCrossCommitAggregate(t *testing.T) {
	n := 16
	pp, vp := setup(t, ciphersuite.SHA512, n)
	f := newCrossFixture(t, pp, []int{2, 3, 1, 5, 4})

	full, err := CrossCommitAggregateFull(f.coms, f.proofs, f.indices, f.values, n)
	require.NoError(t, err)
	partial, err := CrossCommitAggregatePartial(f.coms, f.aggs, f.indices, f.values, n)
	require.NoError(t, err)
	assert.Equal(t, full.Bytes(), partial.Bytes())

	assert.True(t, CrossCommitBatchVerify(vp, f.coms, full, f.indices, f.values))

	wrong := make([][][]byte, len(f.values))
	copy(wrong, f.values)
	wrong[3] = append([][]byte(nil), f.values[3]...)
	wrong[3][2] = []byte("wrong string")
	assert.False(t, CrossCommitBatchVerify(vp, f.coms, full, f.indices, wrong))

	swapped := []*Commitment{f.coms[1], f.coms[0], f.coms[2], f.coms[3], f.coms[4]}
	assert.False(t, CrossCommitBatchVerify(vp, swapped, full, f.indices, f.values))
	assert.False(t, CrossCommitBatchVerify(vp, f.coms[:4], full, f.indices[:4], f.values[:4]))
	assert.False(t, CrossCommitBatchVerify(vp, f.coms, f.aggs[0], f.indices, f.values))
}

func TestCrossCommitSingleCommitment(t *testing.T) {
	n := 8
	pp, vp := setup(t, ciphersuite.SHA512, n)
	f := newCrossFixture(t, pp, []int{3})

	full, err := CrossCommitAggregateFull(f.coms, f.proofs, f.indices, f.values, n)
	require.NoError(t, err)
	partial, err := CrossCommitAggregatePartial(f.coms, f.aggs, f.indices, f.values, n)
	require.NoError(t, err)
	assert.Equal(t, f.aggs[0].Bytes(), full.Bytes())
	assert.Equal(t, full.Bytes(), partial.Bytes())
	assert.True(t, CrossCommitBatchVerify(vp, f.coms, full, f.indices, f.values))
}

func TestCrossCommitErrors(t *testing.T) {
	n := 8
	pp, vp := setup(t, ciphersuite.SHA512, n)
	f := newCrossFixture(t, pp, []int{2, 2})

	_, err := CrossCommitAggregateFull(f.coms, f.proofs[:1], f.indices, f.values, n)
	assert.True(t, errors.Is(err, ErrLengthMismatch))
	_, err = CrossCommitAggregatePartial(f.coms, f.aggs, f.indices[:1], f.values, n)
	assert.True(t, errors.Is(err, ErrLengthMismatch))
	_, err = CrossCommitAggregateFull(nil, nil, nil, nil, n)
	assert.True(t, errors.Is(err, ErrLengthMismatch))

	empty := [][]int{f.indices[0], {}}
	_, err = CrossCommitAggregatePartial(f.coms, f.aggs, empty, [][][]byte{f.values[0], {}}, n)
	assert.True(t, errors.Is(err, ErrLengthMismatch))

	bad := [][]int{f.indices[0], {0, n}}
	_, err = CrossCommitAggregatePartial(f.coms, f.aggs, bad, f.values, n)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))

	assert.False(t, CrossCommitBatchVerify(vp, nil, f.aggs[0], nil, nil))
	assert.False(t, CrossCommitBatchVerify(vp, f.coms, f.aggs[0], empty, [][][]byte{f.values[0], {}}))
}

func TestCrossCommitManyCommitments(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping cross commitment aggregation of 32 commitments in short mode")
	}
	n := 1024
	pp, vp := setup(t, ciphersuite.SHA512, n)

	values := messages(n, "this is message number %d")
	com, err := Commit(pp, values)
	require.NoError(t, err)
	indices := make([]int, 32)
	for i := range indices {
		indices[i] = i * 31
	}
	ps := make([]*Proof, len(indices))
	vs := make([][]byte, len(indices))
	for i, idx := range indices {
		ps[i], err = Prove(pp, values, idx)
		require.NoError(t, err)
		vs[i] = values[idx]
	}
	agg, err := SameCommitAggregate(com, ps, indices, vs, n)
	require.NoError(t, err)
	assert.True(t, SameCommitBatchVerify(vp, com, agg, indices, vs))

	sizes := make([]int, 32)
	for j := range sizes {
		sizes[j] = j + 2
	}
	f := newCrossFixture(t, pp, sizes)
	full, err := CrossCommitAggregateFull(f.coms, f.proofs, f.indices, f.values, n)
	require.NoError(t, err)
	partial, err := CrossCommitAggregatePartial(f.coms, f.aggs, f.indices, f.values, n)
	require.NoError(t, err)
	assert.Equal(t, full.Bytes(), partial.Bytes())
	assert.True(t, CrossCommitBatchVerify(vp, f.coms, full, f.indices, f.values))
}

func TestSplitByCounts(t *testing.T) {
	flat := []int{1, 2, 3, 4, 5, 6}
	out, err := SplitByCounts(flat, []int{1, 0, 3, 2})
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1}, {}, {2, 3, 4}, {5, 6}}, out)

	_, err = SplitByCounts(flat, []int{1, 2})
	assert.True(t, errors.Is(err, ErrLengthMismatch))
	_, err = SplitByCounts(flat, []int{7, -1})
	assert.True(t, errors.Is(err, ErrLengthMismatch))
}

func TestChallengesDeterministic(t *testing.T) {
	pp, _ := setup(t, ciphersuite.SHA512, 8)
	values := messages(8, "v%d")
	com, err := Commit(pp, values)
	require.NoError(t, err)
	suite, err := ciphersuite.Lookup(ciphersuite.SHA512)
	require.NoError(t, err)

	indices := []int{2, 5}
	vs := [][]byte{values[2], values[5]}
	t1, err := commitChallenges(suite, com, indices, vs, 8)
	require.NoError(t, err)
	t2, err := commitChallenges(suite, com, indices, vs, 8)
	require.NoError(t, err)
	assert.Equal(t, t1, t2)
	assert.False(t, t1[0].Equal(&t1[1]))

	reordered, err := commitChallenges(suite, com, []int{5, 2}, [][]byte{values[5], values[2]}, 8)
	require.NoError(t, err)
	assert.False(t, reordered[1].Equal(&t1[0]))

	single, err := commitChallenges(suite, com, []int{2}, vs[:1], 8)
	require.NoError(t, err)
	assert.True(t, single[0].IsOne())
}
