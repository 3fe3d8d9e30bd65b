// Command pretok is a small CLI over package pretok and package bpe:
// split raw text into pre-tokens with a named or custom pattern, and
// encode/decode text against a loaded vocabulary.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pretok",
	Short: "Unicode-aware BPE pre-tokenization CLI",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
