package main

import (
	"os"

	"github.com/insightdelivered/upi-statement-parser/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
