// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/bancoquestoes/qextract/internal/classify"
)

func newTaxonomyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taxonomy",
		Short: "Inspect and validate keyword taxonomies",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "validate <file.yaml>",
			Short: "Validate a taxonomy file against the schema",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				t, err := classify.LoadTaxonomy(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d disciplines, %d boards, %d themes)\n",
					args[0], len(t.Disciplines), len(t.Boards), len(t.Themes))
				return nil
			},
		},
		&cobra.Command{
			Use:   "dump",
			Short: "Print the embedded default taxonomy",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				out, err := yaml.Marshal(classify.DefaultTaxonomy())
				if err != nil {
					return fmt.Errorf("marshal taxonomy: %w", err)
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			},
		},
	)
	return cmd
}
