package pointproofs

import "github.com/pkg/errors"

var (
	ErrSeedTooShort       = errors.New("the seed length is too short")
	ErrInvalidCiphersuite = errors.New("invalid ciphersuite ID")
	ErrInvalidCapacity    = errors.New("invalid number of values")
	ErrLengthMismatch     = errors.New("length of index, value and proof sets do not match")
	ErrIndexOutOfRange    = errors.New("invalid index")
	ErrMalformedEncoding  = errors.New("malformed encoding")
)
