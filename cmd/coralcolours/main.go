// coralcolours - dominant colour datasets from labelled coral images
//
// coralcolours extracts the k most frequent colours of every image in a
// labelled folder tree and writes them to a CSV dataset.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/coralcolours/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
