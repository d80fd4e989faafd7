package pointproofs

import (
	"github.com/pkg/errors"
)

// Commit folds all n values into one G1 element.
func Commit(pp *ProverParams, values [][]byte) (*Commitment, error) {
	if err := pp.checkValues(values); err != nil {
		return nil, err
	}
	suite, err := pp.suite()
	if err != nil {
		return nil, err
	}
	point, err := multiExpG1(pp.Generators[:pp.N], hashValues(suite, values))
	if err != nil {
		return nil, errors.Wrap(err, "multiexp")
	}
	return &Commitment{Ciphersuite: pp.Ciphersuite, Point: point}, nil
}

// CommitUpdate returns the commitment obtained by replacing oldValue with
// newValue at index. com is not modified.
func CommitUpdate(pp *ProverParams, com *Commitment, index int, oldValue, newValue []byte) (*Commitment, error) {
	if err := pp.checkSuite(com.Ciphersuite); err != nil {
		return nil, err
	}
	if err := pp.checkIndex(index); err != nil {
		return nil, err
	}
	delta, err := pp.delta(oldValue, newValue)
	if err != nil {
		return nil, err
	}
	step := scaleG1(&pp.Generators[index], &delta)
	return &Commitment{
		Ciphersuite: com.Ciphersuite,
		Point:       addG1(&com.Point, &step),
	}, nil
}
