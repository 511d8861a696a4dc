package main

import (
	"os"

	"github.com/sit-kite/campus-agent/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
