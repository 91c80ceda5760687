package prover

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/logger"

	"github.com/izilabs/noir-groth16/converter"
	"github.com/izilabs/noir-groth16/errs"
)

// Save writes the compiled constraint system and key pair under dir, plus a
// Solidity verifier contract for the verifying key.
func (s *System) Save(dir string) error {
	log := logger.Logger()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create build dir: %w", err)
	}

	log.Info().Msg("Saving circuit constraints to " + filepath.Join(dir, "r1cs.bin"))
	ccsFile, err := os.Create(filepath.Join(dir, "r1cs.bin"))
	if err != nil {
		return fmt.Errorf("failed to create r1cs file: %w", err)
	}
	start := time.Now()
	if _, err := s.Ccs.WriteTo(ccsFile); err != nil {
		ccsFile.Close()
		return fmt.Errorf("failed to write r1cs file: %w", err)
	}
	ccsFile.Close()
	log.Debug().Msg("Successfully saved circuit constraints, time: " + time.Since(start).String())

	log.Info().Msg("Saving proving key to " + filepath.Join(dir, "pk.bin"))
	pkFile, err := os.Create(filepath.Join(dir, "pk.bin"))
	if err != nil {
		return fmt.Errorf("failed to create pk file: %w", err)
	}
	start = time.Now()
	if _, err := s.Pk.WriteRawTo(pkFile); err != nil {
		pkFile.Close()
		return fmt.Errorf("failed to write pk file: %w", err)
	}
	pkFile.Close()
	log.Debug().Msg("Successfully saved proving key, time: " + time.Since(start).String())

	log.Info().Msg("Saving verifying key to " + filepath.Join(dir, "vk.bin"))
	vkFile, err := os.Create(filepath.Join(dir, "vk.bin"))
	if err != nil {
		return fmt.Errorf("failed to create vk file: %w", err)
	}
	if _, err := s.Vk.WriteRawTo(vkFile); err != nil {
		vkFile.Close()
		return fmt.Errorf("failed to write vk file: %w", err)
	}
	vkFile.Close()

	if err := ExportSolidity(dir, s.Vk); err != nil {
		return fmt.Errorf("failed to create solidity file: %w", err)
	}
	return nil
}

// Load restores a System for r from artifacts previously written by Save.
func Load(dir string, r *converter.AcirR1cs) (*System, error) {
	log := logger.Logger()

	ccsFile, err := os.Open(filepath.Join(dir, "r1cs.bin"))
	if err != nil {
		return nil, fmt.Errorf("failed to open r1cs file: %w", err)
	}
	ccs := groth16.NewCS(ecc.BN254)
	start := time.Now()
	if _, err := ccs.ReadFrom(bufio.NewReader(ccsFile)); err != nil {
		ccsFile.Close()
		return nil, fmt.Errorf("failed to read r1cs file: %w", err)
	}
	ccsFile.Close()
	log.Debug().Msg("Successfully loaded constraint system, time: " + time.Since(start).String())

	pkFile, err := os.Open(filepath.Join(dir, "pk.bin"))
	if err != nil {
		return nil, fmt.Errorf("failed to open pk file: %w", err)
	}
	pk := groth16.NewProvingKey(ecc.BN254)
	start = time.Now()
	if _, err := pk.UnsafeReadFrom(bufio.NewReader(pkFile)); err != nil {
		pkFile.Close()
		return nil, fmt.Errorf("failed to read pk file: %w", err)
	}
	pkFile.Close()
	log.Debug().Msg("Successfully loaded proving key, time: " + time.Since(start).String())

	vk, err := LoadVerifyingKey(dir)
	if err != nil {
		return nil, err
	}

	return &System{R1cs: r, Ccs: ccs, Pk: pk, Vk: vk}, nil
}

// LoadVerifyingKey reads only the verifying key, with its pairing
// precomputation restored.
func LoadVerifyingKey(dir string) (groth16.VerifyingKey, error) {
	log := logger.Logger()
	vkFile, err := os.Open(filepath.Join(dir, "vk.bin"))
	if err != nil {
		return nil, fmt.Errorf("failed to open vk file: %w", err)
	}
	vk := groth16.NewVerifyingKey(ecc.BN254)
	start := time.Now()
	if _, err := vk.ReadFrom(vkFile); err != nil {
		vkFile.Close()
		return nil, fmt.Errorf("failed to read vk file: %w", err)
	}
	vkFile.Close()
	log.Debug().Msg("Successfully loaded verifying key, time: " + time.Since(start).String())
	return vk, nil
}

// ExportSolidity writes a Groth16Verifier.sol contract for vk under dir.
func ExportSolidity(dir string, vk groth16.VerifyingKey) error {
	log := logger.Logger()
	buf := new(bytes.Buffer)
	if err := vk.ExportSolidity(buf); err != nil {
		log.Err(err).Msg("failed to export verifying key to solidity")
		return err
	}

	contractFile, err := os.Create(filepath.Join(dir, "Groth16Verifier.sol"))
	if err != nil {
		return err
	}
	w := bufio.NewWriter(contractFile)
	if _, err := w.Write(buf.Bytes()); err != nil {
		contractFile.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		contractFile.Close()
		return err
	}
	return contractFile.Close()
}

// ProofToBytes serializes a proof in gnark's native binary form (distinct
// from the portable wire format).
func ProofToBytes(proof groth16.Proof) ([]byte, error) {
	buf := new(bytes.Buffer)
	if _, err := proof.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrSerialization, err)
	}
	return buf.Bytes(), nil
}

// ProofFromBytes deserializes a proof written by ProofToBytes.
func ProofFromBytes(data []byte) (groth16.Proof, error) {
	proof := groth16.NewProof(ecc.BN254)
	if _, err := proof.ReadFrom(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrSerialization, err)
	}
	return proof, nil
}
