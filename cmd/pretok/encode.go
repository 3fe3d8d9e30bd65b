package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tokencore/pretok/bpe"
)

var encodeCmd = &cobra.Command{
	Use:   "encode TEXT",
	Short: "Encode TEXT into token ids using a named vocabulary",
	Args:  cobra.ExactArgs(1),
	RunE:  encodeHandler,
}

func init() {
	encodeCmd.Flags().String("vocab", "o200k_base", `vocabulary name ("o200k_base" or "cl100k_base")`)
	rootCmd.AddCommand(encodeCmd)
}

func encodeHandler(cmd *cobra.Command, args []string) error {
	vocabName, err := cmd.Flags().GetString("vocab")
	if err != nil {
		return err
	}

	core, err := loadCore(vocabName)
	if err != nil {
		return errors.Wrap(err, "pretok encode")
	}

	toks := core.EncodeWithSpecialTokens(args[0])
	strs := make([]string, len(toks))
	for i, t := range toks {
		strs[i] = fmt.Sprint(t)
	}
	fmt.Println(strings.Join(strs, " "))
	return nil
}

func loadCore(vocabName string) (*bpe.Core, error) {
	vocab, err := bpe.LoadVocabulary(vocabName)
	if err != nil {
		return nil, err
	}
	return bpe.NewO200kHarmonyCore(vocab)
}
