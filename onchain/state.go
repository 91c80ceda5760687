package onchain

import (
	"encoding/binary"
	"fmt"
)

// MaxPublicInputs bounds the K array so the account size stays within the
// compute and rent limits of the target chain.
const MaxPublicInputs = 16

const (
	fieldSize = 32
	g1Size    = 64
	g2Size    = 128
	// ProofSize is A||B||C in the portable encoding.
	ProofSize = g1Size + g2Size + g1Size
)

// VerifyingKeyAccount is the on-chain layout of a Groth16 verifying key:
// an authority pubkey, the public-input count, the four setup points and the
// K array (constant-one entry first, then one entry per public input).
type VerifyingKeyAccount struct {
	Authority   [32]byte
	NrPubInputs uint8
	AlphaG1     [g1Size]byte
	BetaG2      [g2Size]byte
	GammaG2     [g2Size]byte
	DeltaG2     [g2Size]byte
	K           [][g1Size]byte
}

// AccountSize returns the serialized size of a verifying key account holding
// n public inputs.
func AccountSize(n int) int {
	return 32 + 1 + g1Size + 3*g2Size + 4 + (n+1)*g1Size
}

// NewVerifyingKeyAccount splits the portable verifying-key bytes
// (alpha||beta||gamma||delta||k[0..n]) into an account for n public inputs.
func NewVerifyingKeyAccount(authority [32]byte, vkBytes []byte, n int) (*VerifyingKeyAccount, error) {
	if n < 0 || n > MaxPublicInputs {
		return nil, CodeTooManyPublicInputs
	}
	want := g1Size + 3*g2Size + (n+1)*g1Size
	if len(vkBytes) != want {
		return nil, CodeInvalidVerifyingKey
	}

	a := &VerifyingKeyAccount{
		Authority:   authority,
		NrPubInputs: uint8(n),
		K:           make([][g1Size]byte, n+1),
	}
	off := 0
	copy(a.AlphaG1[:], vkBytes[off:off+g1Size])
	off += g1Size
	copy(a.BetaG2[:], vkBytes[off:off+g2Size])
	off += g2Size
	copy(a.GammaG2[:], vkBytes[off:off+g2Size])
	off += g2Size
	copy(a.DeltaG2[:], vkBytes[off:off+g2Size])
	off += g2Size
	for i := range a.K {
		copy(a.K[i][:], vkBytes[off:off+g1Size])
		off += g1Size
	}
	return a, nil
}

// Validate checks the internal consistency of the account.
func (a *VerifyingKeyAccount) Validate() error {
	if int(a.NrPubInputs) > MaxPublicInputs {
		return CodeTooManyPublicInputs
	}
	if len(a.K) != int(a.NrPubInputs)+1 {
		return CodeInvalidVerifyingKey
	}
	return nil
}

// MarshalBinary serializes the account with a u32 little-endian length prefix
// on the K array, matching the on-chain account layout.
func (a *VerifyingKeyAccount) MarshalBinary() ([]byte, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	out := make([]byte, 0, AccountSize(int(a.NrPubInputs)))
	out = append(out, a.Authority[:]...)
	out = append(out, a.NrPubInputs)
	out = append(out, a.AlphaG1[:]...)
	out = append(out, a.BetaG2[:]...)
	out = append(out, a.GammaG2[:]...)
	out = append(out, a.DeltaG2[:]...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(a.K)))
	for i := range a.K {
		out = append(out, a.K[i][:]...)
	}
	return out, nil
}

// UnmarshalBinary deserializes an account written by MarshalBinary.
func (a *VerifyingKeyAccount) UnmarshalBinary(data []byte) error {
	fixed := 32 + 1 + g1Size + 3*g2Size + 4
	if len(data) < fixed {
		return fmt.Errorf("verifying key account truncated: %d bytes", len(data))
	}
	off := 0
	copy(a.Authority[:], data[off:off+32])
	off += 32
	a.NrPubInputs = data[off]
	off++
	copy(a.AlphaG1[:], data[off:off+g1Size])
	off += g1Size
	copy(a.BetaG2[:], data[off:off+g2Size])
	off += g2Size
	copy(a.GammaG2[:], data[off:off+g2Size])
	off += g2Size
	copy(a.DeltaG2[:], data[off:off+g2Size])
	off += g2Size

	kLen := binary.LittleEndian.Uint32(data[off : off+4])
	off += 4
	if kLen > MaxPublicInputs+1 {
		return CodeTooManyPublicInputs
	}
	if len(data) != off+int(kLen)*g1Size {
		return fmt.Errorf("verifying key account has %d bytes, expected %d", len(data), off+int(kLen)*g1Size)
	}
	a.K = make([][g1Size]byte, kLen)
	for i := range a.K {
		copy(a.K[i][:], data[off:off+g1Size])
		off += g1Size
	}
	return a.Validate()
}

// Proof is the fixed-size on-chain proof layout.
type Proof struct {
	A [g1Size]byte
	B [g2Size]byte
	C [g1Size]byte
}

// ProofFromBytes splits the 256-byte portable proof encoding.
func ProofFromBytes(b []byte) (*Proof, error) {
	if len(b) != ProofSize {
		return nil, CodeInvalidProofSize
	}
	var p Proof
	copy(p.A[:], b[:g1Size])
	copy(p.B[:], b[g1Size:g1Size+g2Size])
	copy(p.C[:], b[g1Size+g2Size:])
	return &p, nil
}
