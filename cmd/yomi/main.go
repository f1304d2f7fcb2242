// Package main is the entry point for the yomi CLI.
package main

import (
	"os"

	"github.com/f3rmion/yomi/cmd/yomi/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
