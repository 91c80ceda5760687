// Package prover runs the Groth16 pipeline (setup, prove, verify) over a
// constraint system produced by the converter, on the BN254 curve.
package prover

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/logger"

	"github.com/izilabs/noir-groth16/converter"
	"github.com/izilabs/noir-groth16/errs"
)

// System bundles the artifacts of a circuit-specific setup: the compiled
// constraint system and the key pair. One System per circuit, owned by its
// caller; there is no shared state between Systems, so independent setup,
// prove and verify calls are freely parallelizable across circuits.
type System struct {
	R1cs *converter.AcirR1cs
	Ccs  constraint.ConstraintSystem
	Pk   groth16.ProvingKey
	Vk   groth16.VerifyingKey
}

// ProofResult is a generated proof together with the ordered public-input
// vector it commits to.
type ProofResult struct {
	Proof        groth16.Proof
	PublicInputs []fr.Element
}

// Compile synthesizes the R1CS into a gnark constraint system.
func Compile(r *converter.AcirR1cs) (constraint.ConstraintSystem, error) {
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, NewCircuit(r))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrSynthesis, err)
	}
	return ccs, nil
}

// Setup compiles the circuit and runs the Groth16 circuit-specific setup.
//
// This is a single-party setup for development and testing only: the setup
// randomness (the "toxic waste") is not destroyed by any ceremony here, and
// whoever holds it can forge proofs. Production deployments need a
// multi-party ceremony.
func Setup(r *converter.AcirR1cs) (*System, error) {
	log := logger.Logger()

	ccs, err := Compile(r)
	if err != nil {
		return nil, err
	}
	log.Info().Int("constraints", ccs.GetNbConstraints()).Msg("compiled acir constraint system")

	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return nil, fmt.Errorf("%w: groth16 setup: %v", errs.ErrSynthesis, err)
	}

	return &System{R1cs: r, Ccs: ccs, Pk: pk, Vk: vk}, nil
}

// Prove generates a proof for the given witness assignment and returns it
// with the public inputs re-read from the map in declared order. Proof bytes
// are randomized per call; identical witnesses do not produce identical
// proofs.
func (s *System) Prove(w converter.WitnessMap) (*ProofResult, error) {
	assignment, err := s.assignment(w)
	if err != nil {
		return nil, err
	}

	witness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("%w: witness build: %v", errs.ErrProof, err)
	}

	proof, err := groth16.Prove(s.Ccs, s.Pk, witness)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrProof, err)
	}

	// Public inputs come straight from the witness map at the declared
	// indices, in order, without dedup. Presence was checked in assignment.
	publicInputs := make([]fr.Element, len(s.R1cs.PublicInputs))
	for i, idx := range s.R1cs.PublicInputs {
		publicInputs[i] = w[idx]
	}

	return &ProofResult{Proof: proof, PublicInputs: publicInputs}, nil
}

// Verify checks a proof against the public inputs. A well-formed proof that
// does not hold yields (false, nil); an error is returned only for malformed
// requests. The pairing precomputation on the verifying key is done once at
// setup (or load), not per call.
func (s *System) Verify(proof groth16.Proof, publicInputs []fr.Element) (bool, error) {
	return Verify(s.Vk, proof, publicInputs)
}

// Verify is the stateless form of System.Verify.
func Verify(vk groth16.VerifyingKey, proof groth16.Proof, publicInputs []fr.Element) (bool, error) {
	if len(publicInputs) != vk.NbPublicWitness() {
		return false, fmt.Errorf("%w: expected %d public inputs, got %d",
			errs.ErrVerification, vk.NbPublicWitness(), len(publicInputs))
	}

	assignment := &Circuit{Public: make([]frontend.Variable, len(publicInputs))}
	for i := range publicInputs {
		assignment.Public[i] = publicInputs[i]
	}

	publicWitness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return false, fmt.Errorf("%w: public witness build: %v", errs.ErrVerification, err)
	}

	if err := groth16.Verify(proof, vk, publicWitness); err != nil {
		// gnark reports a failed pairing check as an error; that is the
		// normal "proof does not hold" outcome, not a malformed request.
		return false, nil
	}
	return true, nil
}

// assignment builds the full witness assignment, requiring a value for every
// in-range index.
func (s *System) assignment(w converter.WitnessMap) (*Circuit, error) {
	if one, ok := w[0]; ok && !one.IsOne() {
		return nil, fmt.Errorf("%w: witness 0 must be the constant one", errs.ErrInvalidInput)
	}

	c := NewCircuit(s.R1cs)
	assigned := make(map[uint32]struct{}, len(s.R1cs.PublicInputs)+1)
	assigned[0] = struct{}{}

	for i, idx := range s.R1cs.PublicInputs {
		v, ok := w[idx]
		if !ok {
			return nil, &errs.MissingWitnessError{Index: idx}
		}
		c.Public[i] = v
		assigned[idx] = struct{}{}
	}

	j := 0
	for i := uint32(1); i < uint32(s.R1cs.NumWitnesses); i++ {
		if _, ok := assigned[i]; ok {
			continue
		}
		v, ok := w[i]
		if !ok {
			return nil, &errs.MissingWitnessError{Index: i}
		}
		c.Private[j] = v
		j++
	}

	return c, nil
}

// IsMissingWitness reports whether err is a missing-witness failure.
func IsMissingWitness(err error) bool {
	var m *errs.MissingWitnessError
	return errors.As(err, &m)
}
