package onchain

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/izilabs/noir-groth16/wire"
)

// Host exposes the alt_bn128 primitives of the execution environment over
// raw big-endian bytes, in the shape of the Solana syscalls. The verifier
// talks only to this interface so the same logic runs against a chain's
// syscalls or a local implementation.
type Host interface {
	// G1ScalarMul takes point||scalar (96 bytes) and returns the 64-byte
	// product.
	G1ScalarMul(input []byte) ([]byte, error)
	// G1Add takes point||point (128 bytes) and returns the 64-byte sum.
	G1Add(input []byte) ([]byte, error)
	// PairingCheck takes k pairs of g1||g2 (k*192 bytes) and returns 32
	// bytes whose last byte is 1 iff the product of pairings is one.
	PairingCheck(input []byte) ([]byte, error)
}

// LocalHost implements Host on gnark-crypto, byte-compatible with the
// on-chain syscalls.
type LocalHost struct{}

func (LocalHost) G1ScalarMul(input []byte) ([]byte, error) {
	if len(input) != wire.G1Size+wire.FieldSize {
		return nil, fmt.Errorf("g1 scalar mul input must be %d bytes, got %d", wire.G1Size+wire.FieldSize, len(input))
	}
	p, err := wire.UnmarshalG1(input[:wire.G1Size])
	if err != nil {
		return nil, err
	}
	s := new(big.Int).SetBytes(input[wire.G1Size:])
	if s.Cmp(fr.Modulus()) >= 0 {
		return nil, fmt.Errorf("scalar out of range")
	}
	var r bn254.G1Affine
	r.ScalarMultiplication(&p, s)
	return wire.MarshalG1(&r), nil
}

func (LocalHost) G1Add(input []byte) ([]byte, error) {
	if len(input) != 2*wire.G1Size {
		return nil, fmt.Errorf("g1 add input must be %d bytes, got %d", 2*wire.G1Size, len(input))
	}
	p, err := wire.UnmarshalG1(input[:wire.G1Size])
	if err != nil {
		return nil, err
	}
	q, err := wire.UnmarshalG1(input[wire.G1Size:])
	if err != nil {
		return nil, err
	}
	var jac bn254.G1Jac
	jac.FromAffine(&p)
	jac.AddMixed(&q)
	var r bn254.G1Affine
	r.FromJacobian(&jac)
	return wire.MarshalG1(&r), nil
}

func (LocalHost) PairingCheck(input []byte) ([]byte, error) {
	const pairSize = wire.G1Size + wire.G2Size
	if len(input) == 0 || len(input)%pairSize != 0 {
		return nil, fmt.Errorf("pairing input must be a positive multiple of %d bytes, got %d", pairSize, len(input))
	}
	n := len(input) / pairSize
	g1s := make([]bn254.G1Affine, n)
	g2s := make([]bn254.G2Affine, n)
	for i := 0; i < n; i++ {
		off := i * pairSize
		var err error
		if g1s[i], err = wire.UnmarshalG1(input[off : off+wire.G1Size]); err != nil {
			return nil, err
		}
		if g2s[i], err = wire.UnmarshalG2(input[off+wire.G1Size : off+pairSize]); err != nil {
			return nil, err
		}
	}
	ok, err := bn254.PairingCheck(g1s, g2s)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 32)
	if ok {
		out[31] = 1
	}
	return out, nil
}
