// Package wire implements the portable byte encoding shared with on-chain
// verifiers: big-endian 32-byte field elements, uncompressed affine points
// with the all-zero encoding for infinity, and G2 coordinates in c0-first
// order.
package wire

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/backend/groth16"
	groth16_bn254 "github.com/consensys/gnark/backend/groth16/bn254"

	"github.com/izilabs/noir-groth16/errs"
	"github.com/izilabs/noir-groth16/field"
)

const (
	// FieldSize is the byte length of one base or scalar field element.
	FieldSize = 32
	// G1Size is x||y, uncompressed.
	G1Size = 2 * FieldSize
	// G2Size is x.c0||x.c1||y.c0||y.c1, uncompressed.
	G2Size = 4 * FieldSize
	// ProofSize is A||B||C.
	ProofSize = G1Size + G2Size + G1Size
)

// VerifyingKeySize returns the encoded size of a verifying key for a circuit
// with nbPublic public inputs: alpha||beta||gamma||delta||k[0..nbPublic].
func VerifyingKeySize(nbPublic int) int {
	return G1Size + 3*G2Size + (nbPublic+1)*G1Size
}

// MarshalG1 encodes a G1 point. The point at infinity encodes as all zeros.
func MarshalG1(p *bn254.G1Affine) []byte {
	out := make([]byte, G1Size)
	if p.IsInfinity() {
		return out
	}
	x := p.X.Bytes()
	y := p.Y.Bytes()
	copy(out[:FieldSize], x[:])
	copy(out[FieldSize:], y[:])
	return out
}

// UnmarshalG1 decodes a G1 point, rejecting points off the curve. BN254's G1
// has cofactor one, so on-curve implies in-subgroup.
func UnmarshalG1(b []byte) (bn254.G1Affine, error) {
	var p bn254.G1Affine
	if len(b) != G1Size {
		return p, fmt.Errorf("%w: g1 point must be %d bytes, got %d", errs.ErrSerialization, G1Size, len(b))
	}
	if isZero(b) {
		return p, nil
	}
	var err error
	if p.X, err = field.BaseFromBytes(b[:FieldSize]); err != nil {
		return p, err
	}
	if p.Y, err = field.BaseFromBytes(b[FieldSize:]); err != nil {
		return p, err
	}
	if !p.IsOnCurve() {
		return p, fmt.Errorf("%w: g1 point not on curve", errs.ErrSerialization)
	}
	return p, nil
}

// MarshalG2 encodes a G2 point as x.c0||x.c1||y.c0||y.c1. The point at
// infinity encodes as all zeros.
func MarshalG2(p *bn254.G2Affine) []byte {
	out := make([]byte, G2Size)
	if p.IsInfinity() {
		return out
	}
	xa := p.X.A0.Bytes()
	xb := p.X.A1.Bytes()
	ya := p.Y.A0.Bytes()
	yb := p.Y.A1.Bytes()
	copy(out[0*FieldSize:], xa[:])
	copy(out[1*FieldSize:], xb[:])
	copy(out[2*FieldSize:], ya[:])
	copy(out[3*FieldSize:], yb[:])
	return out
}

// UnmarshalG2 decodes a G2 point, rejecting points off the curve or outside
// the prime-order subgroup.
func UnmarshalG2(b []byte) (bn254.G2Affine, error) {
	var p bn254.G2Affine
	if len(b) != G2Size {
		return p, fmt.Errorf("%w: g2 point must be %d bytes, got %d", errs.ErrSerialization, G2Size, len(b))
	}
	if isZero(b) {
		return p, nil
	}
	var err error
	if p.X.A0, err = field.BaseFromBytes(b[0*FieldSize : 1*FieldSize]); err != nil {
		return p, err
	}
	if p.X.A1, err = field.BaseFromBytes(b[1*FieldSize : 2*FieldSize]); err != nil {
		return p, err
	}
	if p.Y.A0, err = field.BaseFromBytes(b[2*FieldSize : 3*FieldSize]); err != nil {
		return p, err
	}
	if p.Y.A1, err = field.BaseFromBytes(b[3*FieldSize:]); err != nil {
		return p, err
	}
	if !p.IsOnCurve() {
		return p, fmt.Errorf("%w: g2 point not on curve", errs.ErrSerialization)
	}
	if !p.IsInSubGroup() {
		return p, fmt.Errorf("%w: g2 point not in subgroup", errs.ErrSerialization)
	}
	return p, nil
}

// MarshalProof encodes a Groth16 proof as A||B||C.
func MarshalProof(proof groth16.Proof) ([]byte, error) {
	p, ok := proof.(*groth16_bn254.Proof)
	if !ok {
		return nil, fmt.Errorf("%w: proof is not a bn254 groth16 proof", errs.ErrSerialization)
	}
	out := make([]byte, 0, ProofSize)
	out = append(out, MarshalG1(&p.Ar)...)
	out = append(out, MarshalG2(&p.Bs)...)
	out = append(out, MarshalG1(&p.Krs)...)
	return out, nil
}

// UnmarshalProof decodes a proof written by MarshalProof. Each point is
// curve-checked on the way in.
func UnmarshalProof(b []byte) (groth16.Proof, error) {
	if len(b) != ProofSize {
		return nil, fmt.Errorf("%w: proof must be %d bytes, got %d", errs.ErrSerialization, ProofSize, len(b))
	}
	var p groth16_bn254.Proof
	var err error
	if p.Ar, err = UnmarshalG1(b[:G1Size]); err != nil {
		return nil, fmt.Errorf("proof point A: %w", err)
	}
	if p.Bs, err = UnmarshalG2(b[G1Size : G1Size+G2Size]); err != nil {
		return nil, fmt.Errorf("proof point B: %w", err)
	}
	if p.Krs, err = UnmarshalG1(b[G1Size+G2Size:]); err != nil {
		return nil, fmt.Errorf("proof point C: %w", err)
	}
	return &p, nil
}

// MarshalVerifyingKey encodes a verifying key as
// alpha||beta||gamma||delta||k[0..n], where k has one entry per public input
// plus the leading constant-one entry.
func MarshalVerifyingKey(vk groth16.VerifyingKey) ([]byte, error) {
	v, ok := vk.(*groth16_bn254.VerifyingKey)
	if !ok {
		return nil, fmt.Errorf("%w: verifying key is not a bn254 groth16 key", errs.ErrSerialization)
	}
	out := make([]byte, 0, VerifyingKeySize(len(v.G1.K)-1))
	out = append(out, MarshalG1(&v.G1.Alpha)...)
	out = append(out, MarshalG2(&v.G2.Beta)...)
	out = append(out, MarshalG2(&v.G2.Gamma)...)
	out = append(out, MarshalG2(&v.G2.Delta)...)
	for i := range v.G1.K {
		out = append(out, MarshalG1(&v.G1.K[i])...)
	}
	return out, nil
}

// UnmarshalVerifyingKey decodes a verifying key for a circuit with nbPublic
// public inputs and restores its pairing precomputation.
func UnmarshalVerifyingKey(b []byte, nbPublic int) (groth16.VerifyingKey, error) {
	want := VerifyingKeySize(nbPublic)
	if len(b) != want {
		return nil, fmt.Errorf("%w: verifying key must be %d bytes for %d public inputs, got %d",
			errs.ErrSerialization, want, nbPublic, len(b))
	}

	var v groth16_bn254.VerifyingKey
	var err error
	off := 0
	if v.G1.Alpha, err = UnmarshalG1(b[off : off+G1Size]); err != nil {
		return nil, fmt.Errorf("vk alpha: %w", err)
	}
	off += G1Size
	if v.G2.Beta, err = UnmarshalG2(b[off : off+G2Size]); err != nil {
		return nil, fmt.Errorf("vk beta: %w", err)
	}
	off += G2Size
	if v.G2.Gamma, err = UnmarshalG2(b[off : off+G2Size]); err != nil {
		return nil, fmt.Errorf("vk gamma: %w", err)
	}
	off += G2Size
	if v.G2.Delta, err = UnmarshalG2(b[off : off+G2Size]); err != nil {
		return nil, fmt.Errorf("vk delta: %w", err)
	}
	off += G2Size

	v.G1.K = make([]bn254.G1Affine, nbPublic+1)
	for i := range v.G1.K {
		if v.G1.K[i], err = UnmarshalG1(b[off : off+G1Size]); err != nil {
			return nil, fmt.Errorf("vk k[%d]: %w", i, err)
		}
		off += G1Size
	}

	if err := v.Precompute(); err != nil {
		return nil, fmt.Errorf("%w: vk precompute: %v", errs.ErrSerialization, err)
	}
	return &v, nil
}

// MarshalPublicInputs concatenates scalars as 32-byte big-endian values.
func MarshalPublicInputs(inputs []fr.Element) []byte {
	out := make([]byte, 0, len(inputs)*FieldSize)
	for i := range inputs {
		b := field.ScalarToBytes(&inputs[i])
		out = append(out, b[:]...)
	}
	return out
}

// UnmarshalPublicInputs splits a concatenation of 32-byte scalars.
func UnmarshalPublicInputs(b []byte) ([]fr.Element, error) {
	if len(b)%FieldSize != 0 {
		return nil, fmt.Errorf("%w: public inputs length %d is not a multiple of %d",
			errs.ErrSerialization, len(b), FieldSize)
	}
	out := make([]fr.Element, len(b)/FieldSize)
	for i := range out {
		e, err := field.ScalarFromBytes(b[i*FieldSize : (i+1)*FieldSize])
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func isZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
