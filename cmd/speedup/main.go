package main

import (
	"os"

	"github.com/EvanDorsky/3dprint-gcode-speedup/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
