package main

import (
	"os"

	"github.com/hireflow/resume-ranker/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
