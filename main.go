package main

import (
	"github.com/izilabs/noir-groth16/cmd"
)

func main() {
	cmd.Execute()
}
