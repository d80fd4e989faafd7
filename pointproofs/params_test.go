package pointproofs

import (
	"testing"

	"github.com/Electron-Labs/pointproofs-gnark/ciphersuite"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamGenRejectsBadInput(t *testing.T) {
	_, _, err := ParamGen([]byte("short"), ciphersuite.SHA512, 8)
	assert.True(t, errors.Is(err, ErrSeedTooShort))

	_, _, err = ParamGen(testSeed, 42, 8)
	assert.True(t, errors.Is(err, ErrInvalidCiphersuite))

	for _, n := range []int{0, -1, MaxN + 1} {
		_, _, err = ParamGen(testSeed, ciphersuite.SHA512, n)
		assert.True(t, errors.Is(err, ErrInvalidCapacity), "n = %d", n)
	}
}

func TestParamGenShape(t *testing.T) {
	n := 8
	pp, vp := setup(t, ciphersuite.SHA512, n)

	require.Len(t, pp.Generators, 2*n)
	require.Len(t, vp.Generators, n)
	assert.Equal(t, n, pp.N)
	assert.Equal(t, n, vp.N)
	assert.True(t, pp.Generators[n].IsInfinity())
	for i := range pp.Generators {
		if i != n {
			assert.False(t, pp.Generators[i].IsInfinity(), "generator %d", i)
		}
	}
	assert.NoError(t, CheckParams(pp, vp))
}

func TestParamGenDeterministic(t *testing.T) {
	pp1, vp1 := setup(t, ciphersuite.SHA512, 4)
	pp2, vp2 := setup(t, ciphersuite.SHA512, 4)
	assert.Equal(t, pp1.Bytes(), pp2.Bytes())
	assert.Equal(t, vp1.Bytes(), vp2.Bytes())

	pp3, _ := setup(t, ciphersuite.SHA3_512, 4)
	assert.NotEqual(t, pp1.Generators[0], pp3.Generators[0])
}

func TestCheckParamsDetectsMismatch(t *testing.T) {
	pp, vp := setup(t, ciphersuite.SHA512, 6)

	other := []byte("another seed that is long enough to pass the check")
	_, vpOther, err := ParamGen(other, ciphersuite.SHA512, 6)
	require.NoError(t, err)
	assert.Error(t, CheckParams(pp, vpOther))

	_, vpSmall := setup(t, ciphersuite.SHA512, 5)
	assert.True(t, errors.Is(CheckParams(pp, vpSmall), ErrInvalidCapacity))

	tampered := *pp
	tampered.Generators = append([]bls12381.G1Affine(nil), pp.Generators...)
	tampered.Generators[3], tampered.Generators[4] = tampered.Generators[4], tampered.Generators[3]
	assert.Error(t, CheckParams(&tampered, vp))

	assert.NoError(t, CheckParams(pp, vp))
}

func TestCheckParamsSingleSlot(t *testing.T) {
	pp, vp := setup(t, ciphersuite.BLAKE2b512, 1)
	assert.NoError(t, CheckParams(pp, vp))
}
