package pointproofs

import (
	"github.com/Electron-Labs/pointproofs-gnark/ciphersuite"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// SameCommitAggregate folds proofs for distinct indices of one commitment
// into a single proof. Callers must not repeat an index.
func SameCommitAggregate(com *Commitment, proofs []*Proof, indices []int, values [][]byte, n int) (*Proof, error) {
	if len(proofs) == 0 {
		return nil, errors.Wrap(ErrLengthMismatch, "no proofs to aggregate")
	}
	if len(proofs) != len(indices) {
		return nil, errors.Wrapf(ErrLengthMismatch, "%d proofs, %d indices", len(proofs), len(indices))
	}
	suite, err := suiteOf(com.Ciphersuite, proofs)
	if err != nil {
		return nil, err
	}
	t, err := commitChallenges(suite, com, indices, values, n)
	if err != nil {
		return nil, err
	}
	point, err := multiExpG1(proofPoints(proofs), t)
	if err != nil {
		return nil, errors.Wrap(err, "multiexp")
	}
	log.Debug().Int("proofs", len(proofs)).Msg("aggregated same commitment proofs")
	return &Proof{Ciphersuite: com.Ciphersuite, Point: point}, nil
}

// SameCommitBatchVerify checks an aggregate of SameCommitAggregate against its
// claimed (index, value) set with a single two-pairing product.
func SameCommitBatchVerify(vp *VerifierParams, com *Commitment, proof *Proof, indices []int, values [][]byte) bool {
	if vp == nil || com == nil || proof == nil {
		return false
	}
	if com.Ciphersuite != vp.Ciphersuite || proof.Ciphersuite != vp.Ciphersuite {
		return false
	}
	if len(indices) == 0 || len(indices) != len(values) || len(indices) > vp.N {
		return false
	}
	if len(indices) == 1 {
		return Verify(vp, com, proof, values[0], indices[0])
	}
	suite, err := ciphersuite.Lookup(vp.Ciphersuite)
	if err != nil {
		return false
	}
	t, err := commitChallenges(suite, com, indices, values, vp.N)
	if err != nil {
		return false
	}

	// s = sum_i t_i h_i
	var s, tmp fr.Element
	for i, h := range hashValues(suite, values) {
		tmp.Mul(&t[i], &h)
		s.Add(&s, &tmp)
	}
	if s.IsZero() {
		return false
	}
	var sInv, sInvNeg fr.Element
	sInv.Inverse(&s)
	sInvNeg.Neg(&sInv)

	w, err := multiExpG2(vp.verifierTerms(indices), t)
	if err != nil {
		return false
	}
	return pairsToGT(&vp.GT,
		[]bls12381.G1Affine{scaleG1(&com.Point, &sInv), scaleG1(&proof.Point, &sInvNeg)},
		[]bls12381.G2Affine{w, g2Gen},
	)
}

// CrossCommitAggregateFull aggregates individual proofs across commitments.
// proofs[j], indices[j] and values[j] describe the opened positions of coms[j].
// The result equals CrossCommitAggregatePartial over the per commitment
// aggregates of the same proofs.
func CrossCommitAggregateFull(coms []*Commitment, proofs [][]*Proof, indices [][]int, values [][][]byte, n int) (*Proof, error) {
	if err := checkCrossSizes(coms, len(proofs), indices, values); err != nil {
		return nil, err
	}
	if len(coms) == 1 {
		return SameCommitAggregate(coms[0], proofs[0], indices[0], values[0], n)
	}
	var flat []*Proof
	for j := range proofs {
		if len(proofs[j]) != len(indices[j]) {
			return nil, errors.Wrapf(ErrLengthMismatch, "commitment %d: %d proofs, %d indices", j, len(proofs[j]), len(indices[j]))
		}
		flat = append(flat, proofs[j]...)
	}
	suite, err := suiteOfCommitments(coms, flat)
	if err != nil {
		return nil, err
	}
	tj, err := crossCommitChallenges(suite, coms, indices, values, n)
	if err != nil {
		return nil, err
	}

	scalars := make([]fr.Element, 0, len(flat))
	for j := range coms {
		ti, err := commitChallenges(suite, coms[j], indices[j], values[j], n)
		if err != nil {
			return nil, errors.Wrapf(err, "commitment %d", j)
		}
		for i := range ti {
			var s fr.Element
			s.Mul(&ti[i], &tj[j])
			scalars = append(scalars, s)
		}
	}
	point, err := multiExpG1(proofPoints(flat), scalars)
	if err != nil {
		return nil, errors.Wrap(err, "multiexp")
	}
	log.Debug().Int("commitments", len(coms)).Int("proofs", len(flat)).Msg("aggregated cross commitment proofs")
	return &Proof{Ciphersuite: coms[0].Ciphersuite, Point: point}, nil
}

// CrossCommitAggregatePartial combines per commitment aggregates, aggs[j]
// being SameCommitAggregate over (coms[j], indices[j], values[j]).
func CrossCommitAggregatePartial(coms []*Commitment, aggs []*Proof, indices [][]int, values [][][]byte, n int) (*Proof, error) {
	if err := checkCrossSizes(coms, len(aggs), indices, values); err != nil {
		return nil, err
	}
	suite, err := suiteOfCommitments(coms, aggs)
	if err != nil {
		return nil, err
	}
	tj, err := crossCommitChallenges(suite, coms, indices, values, n)
	if err != nil {
		return nil, err
	}
	if len(coms) == 1 {
		agg := *aggs[0]
		return &agg, nil
	}
	point, err := multiExpG1(proofPoints(aggs), tj)
	if err != nil {
		return nil, errors.Wrap(err, "multiexp")
	}
	log.Debug().Int("commitments", len(coms)).Msg("aggregated partial cross commitment proofs")
	return &Proof{Ciphersuite: coms[0].Ciphersuite, Point: point}, nil
}

// CrossCommitBatchVerify checks a cross commitment aggregate with a single
// product of k+1 pairings.
func CrossCommitBatchVerify(vp *VerifierParams, coms []*Commitment, proof *Proof, indices [][]int, values [][][]byte) bool {
	if vp == nil || proof == nil || proof.Ciphersuite != vp.Ciphersuite {
		return false
	}
	k := len(coms)
	if k == 0 || len(indices) != k || len(values) != k {
		return false
	}
	for j := range coms {
		if coms[j] == nil || coms[j].Ciphersuite != vp.Ciphersuite {
			return false
		}
		if len(indices[j]) == 0 || len(indices[j]) > vp.N || len(indices[j]) != len(values[j]) {
			return false
		}
	}
	if k == 1 {
		return SameCommitBatchVerify(vp, coms[0], proof, indices[0], values[0])
	}
	suite, err := ciphersuite.Lookup(vp.Ciphersuite)
	if err != nil {
		return false
	}
	tj, err := crossCommitChallenges(suite, coms, indices, values, vp.N)
	if err != nil {
		return false
	}

	// s = sum_j t_j sum_i t_ij h_ij
	tij := make([][]fr.Element, k)
	var s fr.Element
	for j := range coms {
		ti, err := commitChallenges(suite, coms[j], indices[j], values[j], vp.N)
		if err != nil {
			return false
		}
		var sj, tmp fr.Element
		for i, h := range hashValues(suite, values[j]) {
			tmp.Mul(&ti[i], &h)
			sj.Add(&sj, &tmp)
		}
		sj.Mul(&sj, &tj[j])
		s.Add(&s, &sj)
		tij[j] = ti
	}
	if s.IsZero() {
		return false
	}
	var sInv, sInvNeg fr.Element
	sInv.Inverse(&s)
	sInvNeg.Neg(&sInv)

	g1s := make([]bls12381.G1Affine, k+1)
	g2s := make([]bls12381.G2Affine, k+1)
	for j := range coms {
		scalars := make([]fr.Element, len(tij[j]))
		for i := range scalars {
			scalars[i].Mul(&tij[j][i], &tj[j]).Mul(&scalars[i], &sInv)
		}
		w, err := multiExpG2(vp.verifierTerms(indices[j]), scalars)
		if err != nil {
			return false
		}
		g1s[j] = coms[j].Point
		g2s[j] = w
	}
	g1s[k] = scaleG1(&proof.Point, &sInvNeg)
	g2s[k] = g2Gen
	return pairsToGT(&vp.GT, g1s, g2s)
}

// SplitByCounts regroups a flat list into consecutive chunks of counts[j]
// elements, the shape taken by the cross commitment functions.
func SplitByCounts[T any](flat []T, counts []int) ([][]T, error) {
	total := 0
	for _, c := range counts {
		if c < 0 {
			return nil, errors.Wrapf(ErrLengthMismatch, "negative count %d", c)
		}
		total += c
	}
	if total != len(flat) {
		return nil, errors.Wrapf(ErrLengthMismatch, "counts sum to %d, got %d elements", total, len(flat))
	}
	out := make([][]T, len(counts))
	off := 0
	for j, c := range counts {
		out[j] = flat[off : off+c : off+c]
		off += c
	}
	return out, nil
}

func checkCrossSizes(coms []*Commitment, nProofSets int, indices [][]int, values [][][]byte) error {
	k := len(coms)
	if k == 0 || nProofSets != k || len(indices) != k || len(values) != k {
		return errors.Wrapf(ErrLengthMismatch, "invalid sizes for cross commit: %d commitments, %d proof sets, %d index sets, %d value sets",
			k, nProofSets, len(indices), len(values))
	}
	for j := range indices {
		if len(indices[j]) == 0 {
			return errors.Wrapf(ErrLengthMismatch, "commitment %d has no opened indices", j)
		}
	}
	return nil
}

func suiteOf(id ciphersuite.ID, proofs []*Proof) (ciphersuite.Suite, error) {
	for i, p := range proofs {
		if p.Ciphersuite != id {
			return ciphersuite.Suite{}, errors.Wrapf(ErrInvalidCiphersuite, "proof %d uses %d, expected %d", i, p.Ciphersuite, id)
		}
	}
	suite, err := ciphersuite.Lookup(id)
	if err != nil {
		return suite, errors.Wrap(ErrInvalidCiphersuite, err.Error())
	}
	return suite, nil
}

func suiteOfCommitments(coms []*Commitment, proofs []*Proof) (ciphersuite.Suite, error) {
	id := coms[0].Ciphersuite
	for j, c := range coms {
		if c.Ciphersuite != id {
			return ciphersuite.Suite{}, errors.Wrapf(ErrInvalidCiphersuite, "commitment %d uses %d, expected %d", j, c.Ciphersuite, id)
		}
	}
	return suiteOf(id, proofs)
}

func proofPoints(proofs []*Proof) []bls12381.G1Affine {
	points := make([]bls12381.G1Affine, len(proofs))
	for i, p := range proofs {
		points[i] = p.Point
	}
	return points
}

func (vp *VerifierParams) verifierTerms(indices []int) []bls12381.G2Affine {
	w := make([]bls12381.G2Affine, len(indices))
	for i, idx := range indices {
		w[i] = *vp.verifierTerm(idx)
	}
	return w
}
