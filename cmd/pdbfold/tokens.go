package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danmuck/pdbfold/internal/pdb/record"
	"github.com/danmuck/pdbfold/internal/pdb/token"
	"github.com/danmuck/pdbfold/internal/render"
)

func newTokensCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "tokens [BODY]",
		Short: "Tokenize a folded COMPND/SOURCE body",
		Long: `tokens parses a semicolon delimited body such as
"MOL_ID:  1; MOLECULE:  HEMOGLOBIN ALPHA CHAIN;" and prints the typed tokens.
Without BODY the input is read from stdin; raw COMPND or SOURCE lines are
folded first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = a.cfg.Format
			}
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}

			var input []byte
			if len(args) == 1 {
				input = []byte(args[0])
			} else {
				input, err = io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			}
			tokens, err := tokenize(input)
			if err != nil {
				return err
			}
			return render.Write(cmd.OutOrStdout(), f, tokens)
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format: json|yaml")
	return cmd
}

func tokenize(input []byte) ([]token.Token, error) {
	switch {
	case bytes.HasPrefix(input, []byte(record.TagCompnd)):
		rec, _, err := record.ParseCompnd(terminated(input))
		return rec.Tokens, err
	case bytes.HasPrefix(input, []byte(record.TagSource)):
		rec, _, err := record.ParseSource(terminated(input))
		return rec.Tokens, err
	default:
		return token.ParseBody(strings.TrimSpace(string(input)))
	}
}

func terminated(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] != '\n' {
		return append(bytes.Clone(b), '\n')
	}
	return b
}
