package main

import (
	"os"

	"github.com/bnema/opbots/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
