package main

import (
	"os"

	"github.com/solatis/condformula/cmd/condformula/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
