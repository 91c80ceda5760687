// Package onchain verifies Groth16 proofs the way a constrained on-chain
// program does: over raw portable bytes, through a host interface exposing
// the alt_bn128 precompiles, with numeric error codes.
package onchain

import (
	"github.com/izilabs/noir-groth16/field"
)

// frNegOne is r-1 as 32 big-endian bytes, where r is the BN254 scalar field
// order. Scalar-multiplying a G1 point by it negates the point using only the
// host's mul primitive.
var frNegOne = [32]byte{
	0x30, 0x64, 0x4e, 0x72, 0xe1, 0x31, 0xa0, 0x29,
	0xb8, 0x50, 0x45, 0xb6, 0x81, 0x81, 0x58, 0x5d,
	0x28, 0x33, 0xe8, 0x48, 0x79, 0xb9, 0x70, 0x91,
	0x43, 0xe1, 0xf5, 0x93, 0xf0, 0x00, 0x00, 0x00,
}

// VerifyGroth16 checks a proof against a verifying key account and ordered
// public inputs. It returns nil on success and an error Code on any failure;
// a structurally valid proof that does not hold yields
// CodeProofVerificationFailed.
func VerifyGroth16(host Host, vk *VerifyingKeyAccount, proof *Proof, publicInputs [][32]byte) error {
	if len(publicInputs) != int(vk.NrPubInputs) {
		return CodeInvalidPublicInputsCount
	}
	if err := vk.Validate(); err != nil {
		return err
	}

	kx, err := prepareInputs(host, vk, publicInputs)
	if err != nil {
		return err
	}

	negAlpha, err := negateG1(host, vk.AlphaG1)
	if err != nil {
		return err
	}
	negGamma, err := negateG2(vk.GammaG2)
	if err != nil {
		return err
	}
	negDelta, err := negateG2(vk.DeltaG2)
	if err != nil {
		return err
	}

	// e(A,B) * e(-alpha,beta) * e(Kx,-gamma) * e(C,-delta) == 1
	pairing := make([]byte, 0, 4*(g1Size+g2Size))
	pairing = append(pairing, proof.A[:]...)
	pairing = append(pairing, proof.B[:]...)
	pairing = append(pairing, negAlpha[:]...)
	pairing = append(pairing, vk.BetaG2[:]...)
	pairing = append(pairing, kx[:]...)
	pairing = append(pairing, negGamma[:]...)
	pairing = append(pairing, proof.C[:]...)
	pairing = append(pairing, negDelta[:]...)

	out, err := host.PairingCheck(pairing)
	if err != nil || len(out) != 32 {
		return CodePairingFailed
	}
	if out[31] != 1 {
		return CodeProofVerificationFailed
	}
	return nil
}

// prepareInputs folds the public inputs into the verifying key's K points:
// Kx = K[0] + sum_i input_i * K[i+1].
func prepareInputs(host Host, vk *VerifyingKeyAccount, publicInputs [][32]byte) ([g1Size]byte, error) {
	acc := vk.K[0]

	for i, input := range publicInputs {
		mulInput := make([]byte, 0, g1Size+fieldSize)
		mulInput = append(mulInput, vk.K[i+1][:]...)
		mulInput = append(mulInput, input[:]...)
		mulRes, err := host.G1ScalarMul(mulInput)
		if err != nil || len(mulRes) != g1Size {
			return acc, CodeG1MulFailed
		}

		addInput := make([]byte, 0, 2*g1Size)
		addInput = append(addInput, mulRes...)
		addInput = append(addInput, acc[:]...)
		addRes, err := host.G1Add(addInput)
		if err != nil || len(addRes) != g1Size {
			return acc, CodeG1AddFailed
		}
		copy(acc[:], addRes)
	}
	return acc, nil
}

// negateG1 negates a G1 point through the host by multiplying with r-1.
func negateG1(host Host, p [g1Size]byte) ([g1Size]byte, error) {
	var out [g1Size]byte
	input := make([]byte, 0, g1Size+fieldSize)
	input = append(input, p[:]...)
	input = append(input, frNegOne[:]...)
	res, err := host.G1ScalarMul(input)
	if err != nil || len(res) != g1Size {
		return out, CodeG1MulFailed
	}
	copy(out[:], res)
	return out, nil
}

// negateG2 negates a G2 point locally by negating both components of its y
// coordinate in the base field. Negating zero is zero, so the all-zero
// infinity encoding passes through unchanged.
func negateG2(p [g2Size]byte) ([g2Size]byte, error) {
	var out [g2Size]byte
	copy(out[:2*fieldSize], p[:2*fieldSize])

	for _, off := range []int{2 * fieldSize, 3 * fieldSize} {
		e, err := field.BaseFromBytes(p[off : off+fieldSize])
		if err != nil {
			return out, CodeInvalidG2Point
		}
		e.Neg(&e)
		b := field.BaseToBytes(&e)
		copy(out[off:off+fieldSize], b[:])
	}
	return out, nil
}
