// Package main is the entry point for the fmriprepgr CLI tool.
package main

import (
	"github.com/comppsych/fmriprepgr/internal/cmd"
)

func main() {
	cmd.Execute()
}
