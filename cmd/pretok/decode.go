package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode TOKEN_IDS",
	Short: `Decode a space-separated list of token ids back to text, e.g. "1 2 3"`,
	Args:  cobra.ExactArgs(1),
	RunE:  decodeHandler,
}

func init() {
	decodeCmd.Flags().String("vocab", "o200k_base", `vocabulary name ("o200k_base" or "cl100k_base")`)
	rootCmd.AddCommand(decodeCmd)
}

func decodeHandler(cmd *cobra.Command, args []string) error {
	vocabName, err := cmd.Flags().GetString("vocab")
	if err != nil {
		return err
	}

	core, err := loadCore(vocabName)
	if err != nil {
		return errors.Wrap(err, "pretok decode")
	}

	fields := strings.Fields(args[0])
	toks := make([]uint32, len(fields))
	for i, f := range fields {
		n, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return errors.Wrapf(err, "pretok decode: invalid token id %q", f)
		}
		toks[i] = uint32(n)
	}

	text, err := core.DecodeUTF8(toks)
	if err != nil {
		return errors.Wrap(err, "pretok decode")
	}
	fmt.Println(text)
	return nil
}
