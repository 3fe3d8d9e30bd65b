package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tokencore/pretok"
	"github.com/tokencore/pretok/splitter"
)

var splitCmd = &cobra.Command{
	Use:   "split TEXT",
	Short: "Split TEXT into pre-tokens and print them one per line",
	Args:  cobra.ExactArgs(1),
	RunE:  splitHandler,
}

func init() {
	splitCmd.Flags().String("scheme", "gpt2", `splitter scheme: "gpt2", "llama3", or a literal regex pattern`)
	rootCmd.AddCommand(splitCmd)
}

func splitHandler(cmd *cobra.Command, args []string) error {
	scheme, err := cmd.Flags().GetString("scheme")
	if err != nil {
		return err
	}

	pattern, err := resolvePattern(scheme)
	if err != nil {
		return err
	}

	preTokens, err := pretok.Split(args[0], []string{pattern})
	if err != nil {
		return err
	}
	for _, tok := range preTokens {
		fmt.Println(tok)
	}
	return nil
}

func resolvePattern(scheme string) (string, error) {
	switch scheme {
	case "gpt2":
		return splitter.GPT2Pattern, nil
	case "llama3":
		return splitter.Llama3PatternA, nil
	case "":
		return "", fmt.Errorf("pretok: --scheme must not be empty")
	default:
		return scheme, nil // treat anything else as a literal regex fallback pattern
	}
}
