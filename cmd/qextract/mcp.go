// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/bancoquestoes/qextract/internal/tool"
)

func newMCPCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the extract_questions tool over MCP stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, logger, pipeline, err := root.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := mcp.NewServer(&mcp.Implementation{Name: "qextract", Version: version}, nil)
			tool.Register(srv, pipeline)

			logger.Info("mcp server running on stdio")
			return srv.Run(ctx, &mcp.StdioTransport{})
		},
	}
}
