package main

import (
	"os"

	"github.com/TFMV/globwalk/cmd"
)

func main() {
	// cobra has already printed the error and usage.
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
