package cmd

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/izilabs/noir-groth16/acir"
	"github.com/izilabs/noir-groth16/converter"
	"github.com/izilabs/noir-groth16/prover"
	"github.com/izilabs/noir-groth16/wire"
)

var webApiCmd = &cobra.Command{
	Use:   "web-api",
	Short: "runs a web server that generates and verifies proofs for submitted witnesses",
	Run:   runApi,
}

func healthCheck(c *gin.Context) {
	response := gin.H{
		"status":  "ok",
		"message": "Health check passed",
	}

	c.JSON(http.StatusOK, response)
}

// ProofRequest carries a witness assignment: witness index (decimal string)
// to hex field element.
type ProofRequest struct {
	ID      string            `json:"id"`
	Witness map[string]string `json:"witness"`
}

func generateProof(sys *prover.System) gin.HandlerFunc {
	return func(c *gin.Context) {
		var proofReq ProofRequest

		if err := c.ShouldBindJSON(&proofReq); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		witness, err := converter.ParseWitnessMap(acir.WitnessValues(proofReq.Witness))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result, err := sys.Prove(witness)
		if err != nil {
			status := http.StatusInternalServerError
			if prover.IsMissingWitness(err) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		ok, err := sys.Verify(result.Proof, result.PublicInputs)
		if err != nil || !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "generated proof did not verify"})
			return
		}

		proofBytes, err := wire.MarshalProof(result.Proof)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"inputs": hexutil.Bytes(wire.MarshalPublicInputs(result.PublicInputs)),
			"proof":  hexutil.Bytes(proofBytes),
		})
	}
}

func runApi(cmd *cobra.Command, args []string) {
	sys := loadSystem()
	router := gin.Default()
	router.GET("/health", healthCheck)
	router.POST("/proof", generateProof(sys))
	router.Run("0.0.0.0:8010")
}

func init() {
	rootCmd.AddCommand(webApiCmd)
}
