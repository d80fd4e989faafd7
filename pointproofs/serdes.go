package pointproofs

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/Electron-Labs/pointproofs-gnark/ciphersuite"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/pkg/errors"
)

const (
	CommitmentSize = 1 + bls12381.SizeOfG1AffineCompressed
	ProofSize      = 1 + bls12381.SizeOfG1AffineCompressed
	paramsHeader   = 1 + 4
)

func ProverParamsSize(n int) int {
	return paramsHeader + 2*n*bls12381.SizeOfG1AffineCompressed
}

func VerifierParamsSize(n int) int {
	return paramsHeader + n*bls12381.SizeOfG2AffineCompressed + bls12381.SizeOfGT
}

// Bytes encodes csid || compressed point.
func (c *Commitment) Bytes() []byte {
	return encodeG1(c.Ciphersuite, &c.Point)
}

func (c *Commitment) SetBytes(b []byte) error {
	id, p, err := decodeG1(b)
	if err != nil {
		return errors.Wrap(err, "commitment")
	}
	c.Ciphersuite, c.Point = id, p
	return nil
}

func (p *Proof) Bytes() []byte {
	return encodeG1(p.Ciphersuite, &p.Point)
}

func (p *Proof) SetBytes(b []byte) error {
	id, pt, err := decodeG1(b)
	if err != nil {
		return errors.Wrap(err, "proof")
	}
	p.Ciphersuite, p.Point = id, pt
	return nil
}

func encodeG1(id ciphersuite.ID, p *bls12381.G1Affine) []byte {
	out := make([]byte, 0, CommitmentSize)
	out = append(out, byte(id))
	pb := p.Bytes()
	return append(out, pb[:]...)
}

func decodeG1(b []byte) (ciphersuite.ID, bls12381.G1Affine, error) {
	var p bls12381.G1Affine
	if len(b) != CommitmentSize {
		return 0, p, errors.Wrapf(ErrMalformedEncoding, "got %d bytes, want %d", len(b), CommitmentSize)
	}
	id := ciphersuite.ID(b[0])
	if !ciphersuite.IsValid(id) {
		return 0, p, errors.Wrapf(ErrMalformedEncoding, "unknown ciphersuite %d", id)
	}
	// SetBytes rejects points off the curve or outside the subgroup
	if _, err := p.SetBytes(b[1:]); err != nil {
		return 0, p, errors.Wrapf(ErrMalformedEncoding, "g1 point: %v", err)
	}
	return id, p, nil
}

func writeHeader(w io.Writer, id ciphersuite.ID, n int) (int64, error) {
	var hdr [paramsHeader]byte
	hdr[0] = byte(id)
	binary.LittleEndian.PutUint32(hdr[1:], uint32(n))
	m, err := w.Write(hdr[:])
	return int64(m), err
}

func readHeader(r io.Reader) (ciphersuite.ID, int, int64, error) {
	var hdr [paramsHeader]byte
	m, err := io.ReadFull(r, hdr[:])
	if err != nil {
		return 0, 0, int64(m), errors.Wrapf(ErrMalformedEncoding, "header: %v", err)
	}
	id := ciphersuite.ID(hdr[0])
	if !ciphersuite.IsValid(id) {
		return 0, 0, int64(m), errors.Wrapf(ErrMalformedEncoding, "unknown ciphersuite %d", id)
	}
	n := binary.LittleEndian.Uint32(hdr[1:])
	if n == 0 || n > MaxN {
		return 0, 0, int64(m), errors.Wrapf(ErrMalformedEncoding, "n = %d out of range", n)
	}
	return id, int(n), int64(m), nil
}

// WriteTo streams csid || n (u32 little endian) || 2n compressed G1 points.
func (pp *ProverParams) WriteTo(w io.Writer) (int64, error) {
	total, err := writeHeader(w, pp.Ciphersuite, pp.N)
	if err != nil {
		return total, err
	}
	for i := range pp.Generators {
		b := pp.Generators[i].Bytes()
		m, err := w.Write(b[:])
		total += int64(m)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (pp *ProverParams) ReadFrom(r io.Reader) (int64, error) {
	id, n, total, err := readHeader(r)
	if err != nil {
		return total, err
	}
	gens := make([]bls12381.G1Affine, 2*n)
	var buf [bls12381.SizeOfG1AffineCompressed]byte
	for i := range gens {
		m, err := io.ReadFull(r, buf[:])
		total += int64(m)
		if err != nil {
			return total, errors.Wrapf(ErrMalformedEncoding, "prover generator %d: %v", i, err)
		}
		if _, err := gens[i].SetBytes(buf[:]); err != nil {
			return total, errors.Wrapf(ErrMalformedEncoding, "prover generator %d: %v", i, err)
		}
		if gens[i].IsInfinity() != (i == n) {
			return total, errors.Wrapf(ErrMalformedEncoding, "prover generator %d: unexpected identity status", i)
		}
	}
	pp.Ciphersuite, pp.N, pp.Generators = id, n, gens
	return total, nil
}

func (pp *ProverParams) Bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(ProverParamsSize(pp.N))
	// writes to a bytes.Buffer do not fail
	_, _ = pp.WriteTo(&buf)
	return buf.Bytes()
}

func (pp *ProverParams) SetBytes(b []byte) error {
	if len(b) < paramsHeader {
		return errors.Wrapf(ErrMalformedEncoding, "got %d bytes", len(b))
	}
	if n := int(binary.LittleEndian.Uint32(b[1:])); n <= MaxN && len(b) != ProverParamsSize(n) {
		return errors.Wrapf(ErrMalformedEncoding, "got %d bytes, want %d", len(b), ProverParamsSize(n))
	}
	_, err := pp.ReadFrom(bytes.NewReader(b))
	return err
}

// WriteTo streams csid || n (u32 little endian) || n compressed G2 points || gt.
func (vp *VerifierParams) WriteTo(w io.Writer) (int64, error) {
	total, err := writeHeader(w, vp.Ciphersuite, vp.N)
	if err != nil {
		return total, err
	}
	for i := range vp.Generators {
		b := vp.Generators[i].Bytes()
		m, err := w.Write(b[:])
		total += int64(m)
		if err != nil {
			return total, err
		}
	}
	gt := vp.GT.Bytes()
	m, err := w.Write(gt[:])
	return total + int64(m), err
}

func (vp *VerifierParams) ReadFrom(r io.Reader) (int64, error) {
	id, n, total, err := readHeader(r)
	if err != nil {
		return total, err
	}
	gens := make([]bls12381.G2Affine, n)
	var buf [bls12381.SizeOfG2AffineCompressed]byte
	for i := range gens {
		m, err := io.ReadFull(r, buf[:])
		total += int64(m)
		if err != nil {
			return total, errors.Wrapf(ErrMalformedEncoding, "verifier generator %d: %v", i, err)
		}
		if _, err := gens[i].SetBytes(buf[:]); err != nil {
			return total, errors.Wrapf(ErrMalformedEncoding, "verifier generator %d: %v", i, err)
		}
		if gens[i].IsInfinity() {
			return total, errors.Wrapf(ErrMalformedEncoding, "verifier generator %d is the identity", i)
		}
	}
	var gtBuf [bls12381.SizeOfGT]byte
	m, err := io.ReadFull(r, gtBuf[:])
	total += int64(m)
	if err != nil {
		return total, errors.Wrapf(ErrMalformedEncoding, "gt: %v", err)
	}
	var gt bls12381.GT
	if err := gt.SetBytes(gtBuf[:]); err != nil {
		return total, errors.Wrapf(ErrMalformedEncoding, "gt: %v", err)
	}
	if !gt.IsInSubGroup() {
		return total, errors.Wrap(ErrMalformedEncoding, "gt is not in the target subgroup")
	}
	vp.Ciphersuite, vp.N, vp.Generators, vp.GT = id, n, gens, gt
	return total, nil
}

func (vp *VerifierParams) Bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(VerifierParamsSize(vp.N))
	_, _ = vp.WriteTo(&buf)
	return buf.Bytes()
}

func (vp *VerifierParams) SetBytes(b []byte) error {
	if len(b) < paramsHeader {
		return errors.Wrapf(ErrMalformedEncoding, "got %d bytes", len(b))
	}
	if n := int(binary.LittleEndian.Uint32(b[1:])); n <= MaxN && len(b) != VerifierParamsSize(n) {
		return errors.Wrapf(ErrMalformedEncoding, "got %d bytes, want %d", len(b), VerifierParamsSize(n))
	}
	_, err := vp.ReadFrom(bytes.NewReader(b))
	return err
}
