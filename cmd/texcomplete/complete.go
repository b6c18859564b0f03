package main

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/texcomplete/internal/log"
	"github.com/iw2rmb/texcomplete/latex"
)

type completeOptions struct {
	cursor   int
	deleting bool
	diff     bool
}

func newCompleteCmd(a *app) *cobra.Command {
	var opts completeOptions
	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Run one completion pass over text read from stdin",
		Long: `Reads equation text from stdin and runs the completion engine once, as if
the last keystroke left the cursor at --cursor (a character offset; negative
counts from the end, default end of input).

The resulting text goes to stdout and the new cursor offset to stderr.
With --diff, stdout shows the change inline as [-removed-]{+added+}.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runComplete(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.cursor, "cursor", -1, "cursor offset in characters (negative counts from the end)")
	f.BoolVar(&opts.deleting, "deleting", false, "treat the event as a deletion keystroke (no completion, sync only)")
	f.BoolVar(&opts.diff, "diff", false, "print an inline diff instead of the result text")
	return cmd
}

func (a *app) runComplete(in io.Reader, out, errOut io.Writer, opts completeOptions) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	text := string(data)

	n := utf8.RuneCountInString(text)
	cursor := opts.cursor
	if cursor < 0 {
		cursor = n + cursor + 1
	}
	cursor = min(max(cursor, 0), n)

	res, ok := a.engine.Process(latex.Input{Text: text, Cursor: cursor, Deleting: opts.deleting})
	if !ok {
		res = latex.Result{Text: text, Cursor: cursor}
	}
	log.Debug(log.CatCLI, "complete", "changed", ok, "actions", res.Actions)

	if opts.diff {
		_, err = io.WriteString(out, inlineDiff(text, res.Text))
	} else {
		_, err = io.WriteString(out, res.Text)
	}
	if err != nil {
		return err
	}

	actions := "none"
	if len(res.Actions) > 0 {
		names := make([]string, len(res.Actions))
		for i, act := range res.Actions {
			names[i] = act.String()
		}
		actions = strings.Join(names, ",")
	}
	_, err = fmt.Fprintf(errOut, "cursor %d actions %s\n", res.Cursor, actions)
	return err
}

// inlineDiff renders the change from before to after with [-...-] and
// {+...+} markers around deleted and inserted runs.
func inlineDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			sb.WriteString(d.Text)
		case diffmatchpatch.DiffDelete:
			sb.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffInsert:
			sb.WriteString("{+" + d.Text + "+}")
		}
	}
	return sb.String()
}
