package acir

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/izilabs/noir-groth16/errs"
)

// UnmarshalJSON decodes the internally tagged opcode union. The payload
// fields of a variant live alongside the "type" tag in the same object,
// except AssertZero whose expression sits under "value".
func (o *Opcode) UnmarshalJSON(data []byte) error {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return fmt.Errorf("%w: opcode envelope: %v", errs.ErrParse, err)
	}

	switch tag.Type {
	case "AssertZero":
		var payload struct {
			Value Expression `json:"value"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("%w: AssertZero payload: %v", errs.ErrParse, err)
		}
		o.Kind = OpcodeAssertZero
		o.AssertZero = &payload.Value
	case "BlackBoxFuncCall":
		var payload BlackBoxFuncCall
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("%w: BlackBoxFuncCall payload: %v", errs.ErrParse, err)
		}
		o.Kind = OpcodeBlackBoxFuncCall
		o.BlackBox = &payload
	case "MemoryOp":
		var payload MemoryOp
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("%w: MemoryOp payload: %v", errs.ErrParse, err)
		}
		o.Kind = OpcodeMemoryOp
		o.MemoryOp = &payload
	case "MemoryInit":
		var payload MemoryInit
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("%w: MemoryInit payload: %v", errs.ErrParse, err)
		}
		o.Kind = OpcodeMemoryInit
		o.MemoryInit = &payload
	case "BrilligCall":
		var payload BrilligCall
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("%w: BrilligCall payload: %v", errs.ErrParse, err)
		}
		o.Kind = OpcodeBrilligCall
		o.BrilligCall = &payload
	case "Call":
		var payload Call
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("%w: Call payload: %v", errs.ErrParse, err)
		}
		o.Kind = OpcodeCall
		o.Call = &payload
	default:
		return fmt.Errorf("%w: unknown opcode type %q", errs.ErrParse, tag.Type)
	}
	return nil
}

// Linear terms serialize as ["coeff", witness] tuples.
func (t *LinearTerm) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &[]interface{}{&t.Coefficient, &t.Witness})
}

// Mul terms serialize as ["coeff", witness_a, witness_b] tuples.
func (t *MulTerm) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &[]interface{}{&t.Coefficient, &t.WitnessA, &t.WitnessB})
}

// WitnessValues is the raw witness assignment consumed from JSON: witness
// index (as a decimal string key) to hex field-element value. The
// witness-generation engine that produces it lives outside this module.
type WitnessValues map[string]string

// ProgramFromJSON parses an ACIR program from its JSON encoding.
func ProgramFromJSON(data []byte) (*Program, error) {
	var p Program
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: acir program: %v", errs.ErrParse, err)
	}
	if len(p.Functions) == 0 {
		return nil, fmt.Errorf("%w: no functions in acir program", errs.ErrParse)
	}
	return &p, nil
}

// ReadProgram reads an ACIR program from a JSON file.
func ReadProgram(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read acir program: %w", err)
	}
	return ProgramFromJSON(data)
}

// WitnessFromJSON parses a witness assignment from its JSON encoding.
func WitnessFromJSON(data []byte) (WitnessValues, error) {
	var w WitnessValues
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: witness values: %v", errs.ErrParse, err)
	}
	return w, nil
}

// ReadWitness reads a witness assignment from a JSON file.
func ReadWitness(path string) (WitnessValues, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read witness file: %w", err)
	}
	return WitnessFromJSON(data)
}
