package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/texcomplete/editor"
	"github.com/iw2rmb/texcomplete/internal/log"
	"github.com/iw2rmb/texcomplete/internal/watcher"
	"github.com/iw2rmb/texcomplete/latex"
)

func newEditCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Open the interactive equation editor",
		Long: `Opens FILE (or an unnamed scratch buffer) in a terminal editor that
completes LaTeX commands and keeps \begin/\end names in sync as you type.

With --watch, edits to the --table file are picked up without restarting.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runEdit,
	}
	cmd.Flags().BoolVarP(&a.watchTable, "watch", "w", false, "reload the --table file when it changes")
	return cmd
}

func (a *app) runEdit(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	text, err := readDocument(path)
	if err != nil {
		return err
	}

	m := newEditModel(a, path, text, systemClipboard{})
	if a.watchTable {
		w, err := a.startTableWatch()
		if err != nil {
			return err
		}
		defer func() { _ = w.Stop() }()
		m.watch = w
	}
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	_, err = p.Run()
	return err
}

// readDocument returns the file contents, or "" for a missing file so a
// new document can be created on save.
func readDocument(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// systemClipboard adapts the OS clipboard to editor.Clipboard.
type systemClipboard struct{}

func (systemClipboard) ReadText() (string, error) { return clipboard.ReadAll() }
func (systemClipboard) WriteText(s string) error  { return clipboard.WriteAll(s) }

type appKeys struct {
	Save key.Binding
	Quit key.Binding
	editor.KeyMap
}

func (k appKeys) ShortHelp() []key.Binding {
	return append([]key.Binding{k.Save, k.Quit}, k.KeyMap.ShortHelp()...)
}

func (k appKeys) FullHelp() [][]key.Binding {
	return append([][]key.Binding{{k.Save, k.Quit}}, k.KeyMap.FullHelp()...)
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

type editModel struct {
	editor editor.Model
	help   help.Model
	keys   appKeys

	engine *swapEngine
	watch  *watcher.Watcher
	reload func() (*latex.Engine, error)

	path         string
	savedVersion uint64
	status       string
}

func newEditModel(a *app, path, text string, cb editor.Clipboard) editModel {
	km := editor.DefaultKeyMap()
	engine := newSwapEngine(a.engine)
	ed := editor.New(editor.Config{
		Text:         text,
		ShowLineNums: a.cfg.ShowLineNums,
		Style:        editor.DefaultStyle(),
		TabWidth:     a.cfg.TabWidth,
		KeyMap:       km,
		HistoryLimit: a.cfg.HistoryLimit,
		Clipboard:    cb,
		Highlighter:  editor.NewLatexHighlighter(editor.DefaultStyle()),
		Completer:    engine,
		OnChange: func(ev editor.ChangeEvent) {
			if len(ev.Actions) > 0 {
				log.Debug(log.CatEditor, "completed", "actions", ev.Actions, "cursor", ev.Cursor)
			}
		},
	})
	return editModel{
		editor: ed,
		help:   help.New(),
		keys: appKeys{
			Save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
			Quit:   key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
			KeyMap: km,
		},
		engine:       engine,
		reload:       a.reloadEngine,
		path:         path,
		savedVersion: ed.Buffer().TextVersion(),
	}
}

func (m editModel) Init() tea.Cmd { return waitForTable(m.watch) }

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.editor = m.editor.SetSize(msg.Width, max(msg.Height-2, 1))
		return m, nil
	case tableChangedMsg:
		m.reloadTable()
		return m, waitForTable(m.watch)
	case tableWatchErrMsg:
		log.ErrorErr(log.CatConfig, "table watch", msg.err)
		m.status = "table watch: " + msg.err.Error()
		return m, waitForTable(m.watch)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Save):
			m.save()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *editModel) save() {
	if m.path == "" {
		m.status = "no file name; start with: texcomplete edit FILE"
		return
	}
	if err := os.WriteFile(m.path, []byte(m.editor.Buffer().Text()), 0o644); err != nil {
		log.ErrorErr(log.CatCLI, "save failed", err, "path", m.path)
		m.status = "save failed: " + err.Error()
		return
	}
	m.savedVersion = m.editor.Buffer().TextVersion()
	m.status = "saved " + m.path
}

func (m *editModel) reloadTable() {
	e, err := m.reload()
	if err != nil {
		log.ErrorErr(log.CatConfig, "table reload", err)
		m.status = "table not reloaded: " + err.Error()
		return
	}
	m.engine.Store(e)
	m.status = "table reloaded"
}

func (m editModel) dirty() bool {
	return m.editor.Buffer().TextVersion() != m.savedVersion
}

func (m editModel) View() string {
	name := m.path
	if name == "" {
		name = "[scratch]"
	}
	if m.dirty() {
		name += " *"
	}
	status := name
	if m.status != "" {
		status += "  " + m.status
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.editor.View(),
		statusStyle.Render(status),
		m.help.View(m.keys),
	)
}
