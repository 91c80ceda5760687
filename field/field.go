// Package field converts between the textual/byte encodings used at the
// system boundaries and BN254 field elements. ACIR carries coefficients as
// hex strings; the portable wire format carries 32-byte big-endian values.
// gnark-crypto stores elements as little-endian limbs, so every external
// encode/decode goes through an explicit big-endian (de)serialization.
package field

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/izilabs/noir-groth16/errs"
)

// Bytes is the size of an encoded field element.
const Bytes = 32

// ParseScalar parses a hex field-element string into the BN254 scalar field.
// The "0x" prefix is optional, leading zeros and odd lengths are accepted,
// and "", "0", "0x0", "0x00" all parse to zero. Values wider than 32 bytes
// keep their low 32 bytes; values numerically >= the field order are reduced,
// not rejected. Callers that need strict canonicity must compare the
// round-tripped encoding themselves.
func ParseScalar(s string) (fr.Element, error) {
	var e fr.Element

	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return e, nil
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}

	raw, err := hex.DecodeString(s)
	if err != nil {
		return e, fmt.Errorf("%w: invalid hex %q: %v", errs.ErrParse, s, err)
	}
	if len(raw) > Bytes {
		raw = raw[len(raw)-Bytes:]
	}

	e.SetBytes(raw)
	return e, nil
}

// ScalarToBytes encodes a scalar-field element as 32 big-endian bytes.
func ScalarToBytes(e *fr.Element) [Bytes]byte {
	return e.Bytes()
}

// ScalarFromBytes decodes a 32-byte big-endian scalar-field element.
// The value is reduced modulo the field order.
func ScalarFromBytes(b []byte) (fr.Element, error) {
	var e fr.Element
	if len(b) != Bytes {
		return e, fmt.Errorf("%w: expected %d bytes, got %d", errs.ErrParse, Bytes, len(b))
	}
	e.SetBytes(b)
	return e, nil
}

// BaseToBytes encodes a base-field element as 32 big-endian bytes.
func BaseToBytes(e *fp.Element) [Bytes]byte {
	return e.Bytes()
}

// BaseFromBytes decodes a 32-byte big-endian base-field element. The base
// field has a different modulus than the scalar field; the two must not be
// mixed.
func BaseFromBytes(b []byte) (fp.Element, error) {
	var e fp.Element
	if len(b) != Bytes {
		return e, fmt.Errorf("%w: expected %d bytes, got %d", errs.ErrParse, Bytes, len(b))
	}
	e.SetBytes(b)
	return e, nil
}
