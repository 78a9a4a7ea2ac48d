package cli

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/seam-mcp/internal/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

// runServe speaks MCP on the command's input and output streams until input
// is closed.
func runServe(cmd *cobra.Command) error {
	ctx := cmd.Context()
	srv := server.New(configFromContext(ctx), loggerFromContext(ctx))
	srv.SetVersion(version)
	return srv.Serve(cmd.InOrStdin(), cmd.OutOrStdout())
}
