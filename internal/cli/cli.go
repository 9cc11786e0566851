package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	pullweights "github.com/pullweights/mcp"
	"github.com/pullweights/mcp/internal/tools"
)

// New builds the pullweights-mcp command tree. The serve subcommand runs
// the MCP server on stdio; the remaining subcommands invoke the same tool
// handlers directly and print their rendered output, which is useful for
// scripting and for trying a tool without an MCP client attached.
func New(logger *slog.Logger) *cobra.Command {
	var (
		apiURL string
		apiKey string
	)

	root := &cobra.Command{
		Use:   "pullweights-mcp",
		Short: "PullWeights model registry tools, served over MCP",
		Long: `pullweights-mcp exposes the PullWeights model registry to LLM agents as
MCP tools: search, ls, inspect, tags, pull, push, and update.

Configuration comes from flags, the environment (` + pullweights.EnvAPIURL + `,
` + pullweights.EnvAPIKey + `), or a .env file in the working directory.
Anonymous use covers the read-only tools on public models; pushing,
updating, and listing your orgs require an API key.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&apiURL, "api-url", "",
		"registry API URL (default $"+pullweights.EnvAPIURL+" or "+pullweights.DefaultBaseURL+")")
	root.PersistentFlags().StringVar(&apiKey, "api-key", "",
		"registry API key (default $"+pullweights.EnvAPIKey+")")

	// Flags override the environment, which overrides the built-in default.
	newToolbox := func(progress func(pullweights.TransferEvent)) *tools.Toolbox {
		cfg := pullweights.ConfigFromEnv()
		if apiURL != "" {
			cfg.BaseURL = apiURL
		}
		if apiKey != "" {
			cfg.APIKey = apiKey
		}

		client := pullweights.NewClient(cfg, pullweights.WithLogger(logger))
		opts := []tools.Option{tools.WithLogger(logger)}
		if progress != nil {
			opts = append(opts, tools.WithTransfer(pullweights.NewTransfer(client,
				pullweights.WithTransferLogger(logger),
				pullweights.WithProgress(progress))))
		}

		return tools.New(client, opts...)
	}

	root.AddCommand(
		newServeCmd(newToolbox),
		newSearchCmd(newToolbox),
		newLsCmd(newToolbox),
		newInspectCmd(newToolbox),
		newTagsCmd(newToolbox),
		newPullCmd(newToolbox),
		newPushCmd(newToolbox),
		newUpdateCmd(newToolbox),
		newVersionCmd(),
	)

	return root
}

// toolboxFactory builds a Toolbox for one command invocation, optionally
// wired with a transfer progress callback.
type toolboxFactory func(progress func(pullweights.TransferEvent)) *tools.Toolbox
