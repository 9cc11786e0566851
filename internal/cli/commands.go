package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	pullweights "github.com/pullweights/mcp"
	"github.com/pullweights/mcp/internal/tools"
)

func newServeCmd(newToolbox toolboxFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the registry tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return tools.Serve(cmd.Context(), newToolbox(nil))
		},
	}
}

func newSearchCmd(newToolbox toolboxFactory) *cobra.Command {
	var query tools.SearchArgs

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the registry for models",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				query.Query = args[0]
			}
			out, err := newToolbox(nil).Search(cmd.Context(), query)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)

			return nil
		},
	}
	cmd.Flags().StringVar(&query.Type, "type", "", "filter by model type")
	cmd.Flags().StringVar(&query.Framework, "framework", "", "filter by framework (pytorch, gguf, safetensors, ...)")
	cmd.Flags().StringVar(&query.Sort, "sort", "", "sort order: downloads, created, name, or updated")
	cmd.Flags().IntVar(&query.PerPage, "per-page", 0, "results per page, 1 to 100 (default 20)")
	cmd.Flags().IntVar(&query.Page, "page", 0, "page number, starting at 1")

	return cmd
}

func newLsCmd(newToolbox toolboxFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [org]",
		Short: "List models in an org, or your orgs when none is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in tools.LsArgs
			if len(args) == 1 {
				in.Org = args[0]
			}
			out, err := newToolbox(nil).Ls(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)

			return nil
		},
	}
}

func newInspectCmd(newToolbox toolboxFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <org/model[:tag]>",
		Short: "Show the manifest for a model version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := newToolbox(nil).Inspect(cmd.Context(), tools.InspectArgs{Model: args[0]})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)

			return nil
		},
	}
}

func newTagsCmd(newToolbox toolboxFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "tags <org/model>",
		Short: "List the published tags of a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := newToolbox(nil).Tags(cmd.Context(), tools.TagsArgs{Model: args[0]})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)

			return nil
		},
	}
}

func newPullCmd(newToolbox toolboxFactory) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "pull <org/model[:tag]>",
		Short: "Download a model's files with SHA-256 verification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tb := newToolbox(func(ev pullweights.TransferEvent) {
				fmt.Fprintf(cmd.ErrOrStderr(), "  ✓ %s\n", ev.Filename)
			})
			out, err := tb.Pull(cmd.Context(), tools.PullArgs{Model: args[0], OutputDir: outputDir})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)

			return nil
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (default ./"+pullweights.DefaultPullRoot+"/org/model/tag)")

	return cmd
}

func newPushCmd(newToolbox toolboxFactory) *cobra.Command {
	var meta struct {
		description string
		visibility  string
	}

	cmd := &cobra.Command{
		Use:   "push <org/model:tag> <file>...",
		Short: "Upload model files as a new tagged version",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tb := newToolbox(func(ev pullweights.TransferEvent) {
				fmt.Fprintf(cmd.ErrOrStderr(), "  ✓ %s\n", ev.Filename)
			})
			out, err := tb.Push(cmd.Context(), tools.PushArgs{
				Model:       args[0],
				Files:       args[1:],
				Description: meta.description,
				Visibility:  meta.visibility,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)

			return nil
		},
	}
	cmd.Flags().StringVar(&meta.description, "description", "", "model description")
	cmd.Flags().StringVar(&meta.visibility, "visibility", "", "model visibility: public or private")

	return cmd
}

func newUpdateCmd(newToolbox toolboxFactory) *cobra.Command {
	var (
		description string
		visibility  string
	)

	cmd := &cobra.Command{
		Use:   "update <org/model>",
		Short: "Update a model's description or visibility",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := tools.UpdateArgs{Model: args[0]}
			// Only flags the caller actually set become part of the patch;
			// an explicitly empty --description clears the field.
			if cmd.Flags().Changed("description") {
				in.Description = &description
			}
			if cmd.Flags().Changed("visibility") {
				in.Visibility = &visibility
			}

			out, err := newToolbox(nil).Update(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)

			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "new model description")
	cmd.Flags().StringVar(&visibility, "visibility", "", "new model visibility: public or private")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the adapter version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "pullweights-mcp "+pullweights.Version)
		},
	}
}
