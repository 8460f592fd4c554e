package cmd

import (
	"github.com/spf13/cobra"

	"scoresight/internal/recognizer"
	"scoresight/internal/server"
)

// serveCommand starts the MCP stdio server.
func serveCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the detection tools over MCP (JSON-RPC on stdio)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := &recognizer.Audiveris{
				Path:    st.settings.Recognizer.Path,
				Timeout: st.settings.Recognizer.Timeout,
			}
			srv := server.New(st.settings, engine, st.log)
			st.log.Info().Msg("MCP server listening on stdio")
			return srv.Run()
		},
	}
}
