package main

import (
	"os"

	"github.com/spotswitch/spotswitch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
