package circuitdata

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/sha3"
	"github.com/consensys/gnark/std/math/uints"
)

func GetKeccak256Hash(api frontend.API, serializedElems []uints.U8) (KeccakHash, error) {
	hasher, err := sha3.NewLegacyKeccak256(api)
	if err != nil {
		return nil, err
	}
	hasher.Write(serializedElems)
	return hasher.Sum(), nil
}

// AssertHashEqual constrains two digests byte by byte.
func AssertHashEqual(api frontend.API, a, b KeccakHash) {
	for i := 0; i < N_BYTES_HASH; i++ {
		api.AssertIsEqual(a[i].Val, b[i].Val)
	}
}
