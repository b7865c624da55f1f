package main

import (
	"os"

	"github.com/cwbudde/go-cel/cmd/cel/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
