package pointproofs

import (
	"encoding/binary"

	"github.com/Electron-Labs/pointproofs-gnark/ciphersuite"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/pkg/errors"
)

// HashValues maps each value to a scalar with the suite's hash to field.
func HashValues(id ciphersuite.ID, values [][]byte) ([]fr.Element, error) {
	suite, err := ciphersuite.Lookup(id)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidCiphersuite, err.Error())
	}
	return hashValues(suite, values), nil
}

func hashValues(suite ciphersuite.Suite, values [][]byte) []fr.Element {
	h := make([]fr.Element, len(values))
	for i, v := range values {
		h[i] = suite.HashToField(v)
	}
	return h
}

func be64(v int) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	return b[:]
}

func checkSet(indices []int, values [][]byte, n int) error {
	if len(indices) != len(values) {
		return errors.Wrapf(ErrLengthMismatch, "%d indices, %d values", len(indices), len(values))
	}
	for _, idx := range indices {
		if idx < 0 || idx >= n {
			return errors.Wrapf(ErrIndexOutOfRange, "index %d, n = %d", idx, n)
		}
	}
	return nil
}

// appendTranscript appends ser(C) || be64(indices...) || values... to parts.
func appendTranscript(parts [][]byte, com *Commitment, indices []int, values [][]byte) [][]byte {
	parts = append(parts, com.Bytes())
	for _, idx := range indices {
		parts = append(parts, be64(idx))
	}
	return append(parts, values...)
}

// commitChallenges derives the per index scalars t_i binding an aggregate to
// (com, indices, values). A single element set uses t = 1.
func commitChallenges(suite ciphersuite.Suite, com *Commitment, indices []int, values [][]byte, n int) ([]fr.Element, error) {
	if err := checkSet(indices, values, n); err != nil {
		return nil, err
	}
	t := make([]fr.Element, len(indices))
	if len(indices) == 1 {
		t[0].SetOne()
		return t, nil
	}
	digest := suite.Digest(appendTranscript(nil, com, indices, values)...)
	for i, idx := range indices {
		t[i] = suite.HashToField(be64(idx), digest)
	}
	return t, nil
}

// crossCommitChallenges derives one scalar t_j per commitment from every
// commitment's transcript. A single commitment uses t = 1.
func crossCommitChallenges(suite ciphersuite.Suite, coms []*Commitment, indices [][]int, values [][][]byte, n int) ([]fr.Element, error) {
	if len(coms) != len(indices) || len(coms) != len(values) {
		return nil, errors.Wrapf(ErrLengthMismatch, "invalid sizes for cross commit: %d commitments, %d index sets, %d value sets",
			len(coms), len(indices), len(values))
	}
	var parts [][]byte
	for j := range coms {
		if err := checkSet(indices[j], values[j], n); err != nil {
			return nil, errors.Wrapf(err, "commitment %d", j)
		}
		parts = appendTranscript(parts, coms[j], indices[j], values[j])
	}
	t := make([]fr.Element, len(coms))
	if len(coms) == 1 {
		t[0].SetOne()
		return t, nil
	}
	digest := suite.Digest(parts...)
	for j := range coms {
		t[j] = suite.HashToField(be64(j), digest)
	}
	return t, nil
}
