package pointproofs

import (
	"fmt"
	"testing"

	"github.com/Electron-Labs/pointproofs-gnark/ciphersuite"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProveVerify(t *testing.T) {
	for _, suite := range ciphersuite.All() {
		t.Run(suite.Name, func(t *testing.T) {
			n := 8
			pp, vp := setup(t, suite.ID, n)
			values := messages(n, "this is message number %d")
			com, err := Commit(pp, values)
			require.NoError(t, err)

			for i := 0; i < n; i++ {
				proof, err := Prove(pp, values, i)
				require.NoError(t, err)
				assert.True(t, Verify(vp, com, proof, values[i], i), "index %d", i)
				for j := 0; j < n; j++ {
					if j != i {
						assert.False(t, Verify(vp, com, proof, values[j], i), "value %d at index %d", j, i)
						assert.False(t, Verify(vp, com, proof, values[i], j), "index %d for proof %d", j, i)
					}
				}
				assert.False(t, Verify(vp, com, proof, []byte("wrong string"), i))
			}
		})
	}
}

func TestProveSingleSlot(t *testing.T) {
	pp, vp := setup(t, ciphersuite.SHA512, 1)
	values := [][]byte{[]byte("only")}
	com, err := Commit(pp, values)
	require.NoError(t, err)
	proof, err := Prove(pp, values, 0)
	require.NoError(t, err)
	assert.True(t, proof.Point.IsInfinity())
	assert.True(t, Verify(vp, com, proof, values[0], 0))
	assert.False(t, Verify(vp, com, proof, []byte("other"), 0))
}

func TestProveArgumentErrors(t *testing.T) {
	pp, _ := setup(t, ciphersuite.SHA512, 4)
	values := messages(4, "v%d")

	_, err := Prove(pp, values[:3], 0)
	assert.True(t, errors.Is(err, ErrLengthMismatch))
	_, err = Prove(pp, values, 4)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	_, err = Prove(pp, values, -1)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	_, err = Commit(pp, append(values, []byte("extra")))
	assert.True(t, errors.Is(err, ErrLengthMismatch))
}

func TestVerifyRejectsMismatchedInputs(t *testing.T) {
	pp, vp := setup(t, ciphersuite.SHA512, 4)
	_, vpOther := setup(t, ciphersuite.SHA3_512, 4)
	values := messages(4, "v%d")
	com, err := Commit(pp, values)
	require.NoError(t, err)
	proof, err := Prove(pp, values, 2)
	require.NoError(t, err)

	assert.True(t, Verify(vp, com, proof, values[2], 2))
	assert.False(t, Verify(vpOther, com, proof, values[2], 2))
	assert.False(t, Verify(vp, com, proof, values[2], 4))
	assert.False(t, Verify(vp, com, proof, values[2], -1))
	assert.False(t, Verify(nil, com, proof, values[2], 2))
	assert.False(t, Verify(vp, nil, proof, values[2], 2))
	assert.False(t, Verify(vp, com, nil, values[2], 2))
}

func TestCommitAndProofUpdate(t *testing.T) {
	n := 8
	pp, vp := setup(t, ciphersuite.SHA512, n)
	values := messages(n, "this is old message number %d")
	newValues := messages(n, "this is new message number %d")

	com, err := Commit(pp, values)
	require.NoError(t, err)
	proofs := proveAll(t, pp, values)

	for u := 0; u < n; u++ {
		com, err = CommitUpdate(pp, com, u, values[u], newValues[u])
		require.NoError(t, err)
		for i := 0; i < n; i++ {
			proofs[i], err = ProofUpdate(pp, proofs[i], i, u, values[u], newValues[u])
			require.NoError(t, err)
		}
		values[u] = newValues[u]

		fresh, err := Commit(pp, values)
		require.NoError(t, err)
		assert.True(t, fresh.Equal(com), "commitment after update %d", u)

		for i := 0; i < n; i++ {
			assert.True(t, Verify(vp, com, proofs[i], values[i], i), "proof %d after update %d", i, u)
		}
		// the proof for the updated slot matches a fresh one
		again, err := Prove(pp, values, u)
		require.NoError(t, err)
		assert.Equal(t, again.Bytes(), proofs[u].Bytes())
	}
}

func TestUpdateArgumentErrors(t *testing.T) {
	pp, _ := setup(t, ciphersuite.SHA512, 4)
	values := messages(4, "v%d")
	com, err := Commit(pp, values)
	require.NoError(t, err)
	proof, err := Prove(pp, values, 0)
	require.NoError(t, err)

	_, err = CommitUpdate(pp, com, 4, values[0], values[1])
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	_, err = ProofUpdate(pp, proof, 0, 9, values[0], values[1])
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))

	foreign := *com
	foreign.Ciphersuite = ciphersuite.BLAKE2b512
	_, err = CommitUpdate(pp, &foreign, 1, values[1], values[0])
	assert.True(t, errors.Is(err, ErrInvalidCiphersuite))
}

func TestLargeVector(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large vector in short mode")
	}
	n := 1028
	k := n - 8
	pp, vp := setup(t, ciphersuite.SHA512, n)

	values := messages(k, "this is message number %d")
	for i := k; i < n; i++ {
		values = append(values, []byte{})
	}
	com, err := Commit(pp, values)
	require.NoError(t, err)
	for i := 0; i < k; i++ {
		proof, err := Prove(pp, values, i)
		require.NoError(t, err)
		require.True(t, Verify(vp, com, proof, values[i], i), "index %d", i)
	}

	updated := []byte("this is new message number 1021")
	com, err = CommitUpdate(pp, com, 1021, values[1021], updated)
	require.NoError(t, err)
	values[1021] = updated
	for i := 0; i < k; i++ {
		proof, err := Prove(pp, values, i)
		require.NoError(t, err)
		require.True(t, Verify(vp, com, proof, values[i], i), "index %d after update", i)
	}
}

func BenchmarkCommit(b *testing.B) {
	for _, n := range []int{256, 1024, 4096} {
		pp, _ := setup(b, ciphersuite.SHA512, n)
		values := messages(n, "this is message number %d")
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := Commit(pp, values); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkProve(b *testing.B) {
	for _, n := range []int{256, 1024, 4096} {
		pp, _ := setup(b, ciphersuite.SHA512, n)
		values := messages(n, "this is message number %d")
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := Prove(pp, values, i%n); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkProofUpdate(b *testing.B) {
	n := 1024
	pp, _ := setup(b, ciphersuite.SHA512, n)
	values := messages(n, "this is message number %d")
	proof, err := Prove(pp, values, 0)
	require.NoError(b, err)
	updated := []byte("this is a new message")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ProofUpdate(pp, proof, 0, 1+i%(n-1), values[1], updated); err != nil {
			b.Fatal(err)
		}
	}
}
