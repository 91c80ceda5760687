// Package errs defines the error kinds shared by the proving pipeline.
// Library packages wrap one of these sentinels with %w so callers can
// classify failures with errors.Is without parsing messages.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrParse covers malformed hex strings, ACIR JSON and byte layouts.
	ErrParse = errors.New("parse error")

	// ErrUnsupportedOpcode is returned when a circuit feature cannot be
	// reduced to the R1CS encoding used here.
	ErrUnsupportedOpcode = errors.New("unsupported opcode")

	// ErrSynthesis covers constraint-system construction failures.
	ErrSynthesis = errors.New("synthesis error")

	// ErrProof covers prove-time failures, including an unsatisfiable witness.
	ErrProof = errors.New("proof generation error")

	// ErrVerification means the verify request itself was malformed. It is
	// never used for a well-formed proof that simply does not hold.
	ErrVerification = errors.New("verification error")

	ErrSerialization = errors.New("serialization error")
	ErrInvalidInput  = errors.New("invalid input")
)

// MissingWitnessError reports a witness index required by the circuit that is
// absent from the witness map.
type MissingWitnessError struct {
	Index uint32
}

func (e *MissingWitnessError) Error() string {
	return fmt.Sprintf("missing witness value for index %d", e.Index)
}
