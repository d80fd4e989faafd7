package circuitdata

import "github.com/consensys/gnark/std/math/uints"

const N_BYTES_HASH = 32

// NativeKeccakHash is a 32 byte Keccak-256 digest outside the circuit.
type NativeKeccakHash []byte

type KeccakHash []uints.U8

func (hash *KeccakHash) Make() {
	*hash = make([]uints.U8, N_BYTES_HASH)
}

func (keccakHashNative NativeKeccakHash) GetVariable() KeccakHash {
	return BytesToU8(keccakHashNative)
}

func BytesToU8(b []byte) []uints.U8 {
	out := make([]uints.U8, len(b))
	for i := range b {
		out[i] = uints.U8{Val: b[i]}
	}
	return out
}
