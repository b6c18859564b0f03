package latex

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// BeginCommand and EndCommand are the environment delimiters. Completing
// BeginCommand also inserts a matching EndCommand tag.
const (
	BeginCommand = `\begin`
	EndCommand   = `\end`
)

// ErrInvalidTable is returned (wrapped) when a completion table fails
// validation.
var ErrInvalidTable = errors.New("invalid completion table")

// CommandEntry is one completable LaTeX command.
//
// After is inserted right after Command on a unique completion. If After
// contains '{', the cursor lands just past the first one.
type CommandEntry struct {
	Command string `yaml:"command"`
	After   string `yaml:"after,omitempty"`
}

// EnvironmentEntry is one known environment name for \begin{...}.
type EnvironmentEntry struct {
	Name string `yaml:"name"`
}

// Table is an ordered set of commands and environment names.
type Table struct {
	Commands     []CommandEntry     `yaml:"commands"`
	Environments []EnvironmentEntry `yaml:"environments"`
}

//go:embed tables/default.yaml
var defaultTableYAML []byte

var (
	defaultOnce  sync.Once
	defaultTable Table
)

// DefaultTable returns the built-in table. The embedded document is decoded
// once; callers get their own copy.
func DefaultTable() Table {
	defaultOnce.Do(func() {
		t, err := LoadTable(bytes.NewReader(defaultTableYAML))
		if err != nil {
			panic(fmt.Sprintf("latex: embedded table: %v", err))
		}
		defaultTable = t
	})
	return defaultTable.Clone()
}

// LoadTable decodes and validates a YAML table.
func LoadTable(r io.Reader) (Table, error) {
	var t Table
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		if errors.Is(err, io.EOF) {
			return Table{}, nil
		}
		return Table{}, fmt.Errorf("decode table: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}

// LoadTableFile reads a YAML table from path.
func LoadTableFile(path string) (Table, error) {
	f, err := os.Open(path) //nolint:gosec // G304: table path is user supplied
	if err != nil {
		return Table{}, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	t, err := LoadTable(f)
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Validate checks command and environment entries.
func (t Table) Validate() error {
	seen := make(map[string]struct{}, len(t.Commands))
	for i, c := range t.Commands {
		if !validCommand(c.Command) {
			return fmt.Errorf("%w: command %d: %q must be a backslash followed by letters", ErrInvalidTable, i, c.Command)
		}
		if _, dup := seen[c.Command]; dup {
			return fmt.Errorf("%w: duplicate command %q", ErrInvalidTable, c.Command)
		}
		seen[c.Command] = struct{}{}
	}

	seenEnv := make(map[string]struct{}, len(t.Environments))
	for i, e := range t.Environments {
		if e.Name == "" || strings.ContainsAny(e.Name, "{}\\ \t\n") {
			return fmt.Errorf("%w: environment %d: invalid name %q", ErrInvalidTable, i, e.Name)
		}
		if _, dup := seenEnv[e.Name]; dup {
			return fmt.Errorf("%w: duplicate environment %q", ErrInvalidTable, e.Name)
		}
		seenEnv[e.Name] = struct{}{}
	}
	return nil
}

// Clone returns a deep copy of t.
func (t Table) Clone() Table {
	return Table{
		Commands:     append([]CommandEntry(nil), t.Commands...),
		Environments: append([]EnvironmentEntry(nil), t.Environments...),
	}
}

// Merge returns t extended with the entries of other that t does not have
// yet. Entries already present in t win.
func (t Table) Merge(other Table) Table {
	out := t.Clone()

	have := make(map[string]struct{}, len(out.Commands))
	for _, c := range out.Commands {
		have[c.Command] = struct{}{}
	}
	for _, c := range other.Commands {
		if _, ok := have[c.Command]; ok {
			continue
		}
		have[c.Command] = struct{}{}
		out.Commands = append(out.Commands, c)
	}

	haveEnv := make(map[string]struct{}, len(out.Environments))
	for _, e := range out.Environments {
		haveEnv[e.Name] = struct{}{}
	}
	for _, e := range other.Environments {
		if _, ok := haveEnv[e.Name]; ok {
			continue
		}
		haveEnv[e.Name] = struct{}{}
		out.Environments = append(out.Environments, e)
	}
	return out
}

func (t Table) environmentNames() []string {
	out := make([]string, 0, len(t.Environments))
	for _, e := range t.Environments {
		out = append(out, e.Name)
	}
	return out
}

func validCommand(s string) bool {
	if len(s) < 2 || s[0] != '\\' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}
