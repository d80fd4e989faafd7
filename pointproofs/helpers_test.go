package pointproofs

import (
	"fmt"
	"testing"

	"github.com/Electron-Labs/pointproofs-gnark/ciphersuite"
	"github.com/stretchr/testify/require"
)

var testSeed = []byte("this is a very long seed for pointproofs tests")

func setup(t testing.TB, id ciphersuite.ID, n int) (*ProverParams, *VerifierParams) {
	t.Helper()
	pp, vp, err := ParamGen(testSeed, id, n)
	require.NoError(t, err)
	return pp, vp
}

func messages(n int, format string) [][]byte {
	values := make([][]byte, n)
	for i := range values {
		values[i] = []byte(fmt.Sprintf(format, i))
	}
	return values
}

func proveAll(t testing.TB, pp *ProverParams, values [][]byte) []*Proof {
	t.Helper()
	proofs := make([]*Proof, len(values))
	for i := range values {
		p, err := Prove(pp, values, i)
		require.NoError(t, err)
		proofs[i] = p
	}
	return proofs
}
