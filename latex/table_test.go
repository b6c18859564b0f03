package latex

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable_LoadsEmbeddedEntries(t *testing.T) {
	tbl := DefaultTable()
	require.NoError(t, tbl.Validate())
	require.NotEmpty(t, tbl.Commands)
	require.NotEmpty(t, tbl.Environments)

	byName := make(map[string]CommandEntry, len(tbl.Commands))
	for _, c := range tbl.Commands {
		byName[c.Command] = c
	}
	assert.Equal(t, CommandEntry{Command: `\alpha`}, byName[`\alpha`])
	assert.Equal(t, "{}", byName[BeginCommand].After)
	assert.Equal(t, "{}{}", byName[`\frac`].After)
	assert.Contains(t, tbl.environmentNames(), "align*")
}

func TestDefaultTable_ReturnsIndependentCopies(t *testing.T) {
	a := DefaultTable()
	a.Commands[0].Command = `\mutated`

	b := DefaultTable()
	assert.NotEqual(t, `\mutated`, b.Commands[0].Command)
}

func TestLoadTable(t *testing.T) {
	cases := []struct {
		name    string
		doc     string
		want    Table
		wantErr bool
	}{
		{
			name: "commands-and-environments",
			doc: `
commands:
  - {command: '\foo', after: '{}'}
  - {command: '\bar'}
environments:
  - {name: foo}
`,
			want: Table{
				Commands:     []CommandEntry{{Command: `\foo`, After: "{}"}, {Command: `\bar`}},
				Environments: []EnvironmentEntry{{Name: "foo"}},
			},
		},
		{name: "empty-document", doc: "", want: Table{}},
		{name: "missing-backslash", doc: "commands:\n  - {command: foo}\n", wantErr: true},
		{name: "non-letter-command", doc: "commands:\n  - {command: '\\fo1'}\n", wantErr: true},
		{name: "duplicate-command", doc: "commands:\n  - {command: '\\a'}\n  - {command: '\\a'}\n", wantErr: true},
		{name: "brace-in-environment", doc: "environments:\n  - {name: 'a}'}\n", wantErr: true},
		{name: "empty-environment", doc: "environments:\n  - {name: ''}\n", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := LoadTable(strings.NewReader(tc.doc))
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLoadTable_RejectsUnknownFields(t *testing.T) {
	_, err := LoadTable(strings.NewReader("commands:\n  - {cmd: '\\a'}\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidTable)
}

func TestLoadTableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.yaml")
	require.NoError(t, os.WriteFile(path, []byte("commands:\n  - {command: '\\qux'}\n"), 0o600))

	tbl, err := LoadTableFile(path)
	require.NoError(t, err)
	assert.Equal(t, []CommandEntry{{Command: `\qux`}}, tbl.Commands)

	_, err = LoadTableFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestTable_MergeKeepsExistingEntries(t *testing.T) {
	base := Table{
		Commands:     []CommandEntry{{Command: `\a`, After: "{}"}},
		Environments: []EnvironmentEntry{{Name: "x"}},
	}
	extra := Table{
		Commands:     []CommandEntry{{Command: `\a`}, {Command: `\b`}},
		Environments: []EnvironmentEntry{{Name: "x"}, {Name: "y"}},
	}

	got := base.Merge(extra)
	assert.Equal(t, []CommandEntry{{Command: `\a`, After: "{}"}, {Command: `\b`}}, got.Commands)
	assert.Equal(t, []EnvironmentEntry{{Name: "x"}, {Name: "y"}}, got.Environments)
	assert.Len(t, base.Commands, 1, "merge must not mutate the receiver")
}
