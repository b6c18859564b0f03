package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/texcomplete/latex"
)

type tableOptions struct {
	plain bool
	width int
}

func newTableCmd(a *app) *cobra.Command {
	var opts tableOptions
	cmd := &cobra.Command{
		Use:   "table [prefix]",
		Short: "List the commands and environments the engine completes",
		Long: `Prints the effective completion table (built-in entries merged with --table).
With PREFIX, only entries that typing PREFIX would complete are listed; a
prefix without a leading backslash is matched against both commands and
environment names.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			md := tableMarkdown(a.engine.Table(), prefix)
			return writeMarkdown(cmd.OutOrStdout(), md, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print raw markdown without styling")
	cmd.Flags().IntVar(&opts.width, "width", 80, "word wrap width for styled output")
	return cmd
}

func tableMarkdown(t latex.Table, prefix string) string {
	cmdPrefix := prefix
	if !strings.HasPrefix(cmdPrefix, `\`) {
		cmdPrefix = `\` + cmdPrefix
	}
	envPrefix := strings.TrimPrefix(prefix, `\`)

	cmds := latex.MatchCommands(cmdPrefix, t)
	envs := latex.MatchEnvironments(envPrefix, t)

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Commands (%d)\n\n", len(cmds))
	if len(cmds) > 0 {
		sb.WriteString("| Command | Inserted after |\n|---|---|\n")
		for _, c := range cmds {
			after := ""
			if c.After != "" {
				after = "`" + c.After + "`"
			}
			fmt.Fprintf(&sb, "| `%s` | %s |\n", c.Command, after)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "## Environments (%d)\n\n", len(envs))
	for _, name := range envs {
		fmt.Fprintf(&sb, "- `%s`\n", name)
	}
	return sb.String()
}

func writeMarkdown(w io.Writer, md string, opts tableOptions) error {
	if opts.plain {
		_, err := io.WriteString(w, md)
		return err
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(opts.width),
	)
	if err != nil {
		return fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
