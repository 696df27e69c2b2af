package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve grantcraft to MCP clients",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Serve grantcraft over the Model Context Protocol.

Without --listen the server speaks JSON-RPC on stdin/stdout, which is what
desktop assistants expect when they launch it as a subprocess. With --listen
it serves the streamable HTTP transport instead.

Tools: search_examples, voice_examples, discover_grants, generate_section,
generate_draft, normalize_text.
Resources: grantcraft://index, grantcraft://drafts, grantcraft://drafts/{draftId}.`,
	Example: `  grantcraft mcp serve
  grantcraft mcp serve --listen localhost:8080`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().String("listen", "", "serve HTTP on this address instead of stdio")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	listen, _ := cmd.Flags().GetString("listen")

	a, err := appFor(cmd)
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Retrieval:  a.Retrieval,
		Generation: a.Generation,
		Discovery:  a.Discovery,
		Drafts:     a.Drafts,
		Normaliser: a.Normaliser,
	})
	if err != nil {
		return err
	}
	return server.Serve(cmd.Context(), listen)
}
