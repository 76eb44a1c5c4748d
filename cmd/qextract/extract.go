// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bancoquestoes/qextract/internal/extraction"
)

type extractOutput struct {
	Success   bool                           `json:"success"`
	Questions []extraction.ExtractedQuestion `json:"questions"`
	Stats     extraction.Stats               `json:"stats"`
}

func newExtractCmd(root *rootOptions) *cobra.Command {
	var (
		fileName string
		compact  bool
	)
	cmd := &cobra.Command{
		Use:   "extract <file.txt|->",
		Short: "Extract questions from a plain-text exam and print them as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, pipeline, err := root.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			var data []byte
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
				if fileName == "" {
					fileName = filepath.Base(args[0])
				}
			}
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			res, err := pipeline.Run(cmd.Context(), extraction.RawDocument{Text: string(data), FileName: fileName})
			if errors.Is(err, extraction.ErrNoValidQuestions) {
				return fmt.Errorf("%w (converta o arquivo para texto simples e tente novamente)", err)
			}
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if !compact {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(extractOutput{Success: true, Questions: res.Questions, Stats: res.Stats})
		},
	}
	cmd.Flags().StringVar(&fileName, "file-name", "", "file name hint for board, year and discipline detection")
	cmd.Flags().BoolVar(&compact, "compact", false, "print compact JSON")
	return cmd
}
