// Package ciphersuite maps ciphersuite identifiers to the hash functions used
// by the vector commitment. Every registered suite works over BLS12-381 with
// commitments and proofs in G1.
package ciphersuite

import (
	"crypto/sha512"
	"fmt"
	"hash"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

type ID uint8

const (
	SHA512     ID = 0
	SHA3_512   ID = 1
	BLAKE2b512 ID = 2
)

var ErrUnknown = errors.New("invalid ciphersuite ID")

type Suite struct {
	ID   ID
	Name string
	// Tag is prepended to every hash input. Suite 0 carries none.
	Tag     []byte
	newHash func() hash.Hash
}

var registry = map[ID]Suite{
	SHA512: {
		ID:      SHA512,
		Name:    "BLS12381-SHA512",
		newHash: sha512.New,
	},
	SHA3_512: {
		ID:      SHA3_512,
		Name:    "BLS12381-SHA3-512",
		Tag:     []byte("POINTPROOFS-BLS12381-SHA3-512:"),
		newHash: sha3.New512,
	},
	BLAKE2b512: {
		ID:      BLAKE2b512,
		Name:    "BLS12381-BLAKE2B-512",
		Tag:     []byte("POINTPROOFS-BLS12381-BLAKE2B-512:"),
		newHash: newBlake2b512,
	},
}

func newBlake2b512() hash.Hash {
	// New512 only fails for keys longer than 64 bytes
	h, _ := blake2b.New512(nil)
	return h
}

func IsValid(id ID) bool {
	_, ok := registry[id]
	return ok
}

func Lookup(id ID) (Suite, error) {
	s, ok := registry[id]
	if !ok {
		return Suite{}, errors.Wrapf(ErrUnknown, "id %d", id)
	}
	return s, nil
}

// All returns the registered suites ordered by ID.
func All() []Suite {
	suites := make([]Suite, 0, len(registry))
	for id := ID(0); int(id) < 256 && len(suites) < len(registry); id++ {
		if s, ok := registry[id]; ok {
			suites = append(suites, s)
		}
	}
	return suites
}

func (s Suite) String() string {
	return fmt.Sprintf("%s(%d)", s.Name, s.ID)
}

// Digest returns H(tag || parts...). The output is 64 bytes for every suite.
func (s Suite) Digest(parts ...[]byte) []byte {
	h := s.newHash()
	h.Write(s.Tag)
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

// HashToField reduces Digest(parts...) modulo the group order. A zero result
// is replaced by one.
func (s Suite) HashToField(parts ...[]byte) fr.Element {
	var e fr.Element
	e.SetBytes(s.Digest(parts...))
	if e.IsZero() {
		e.SetOne()
	}
	return e
}
