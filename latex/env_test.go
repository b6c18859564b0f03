package latex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envs(names ...string) Table {
	t := Table{}
	for _, n := range names {
		t.Environments = append(t.Environments, EnvironmentEntry{Name: n})
	}
	return t
}

func TestBeginArgAt(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		cursor int
		want   Arg
		ok     bool
	}{
		{
			name: "inside-name", text: `\begin{al}`, cursor: 8,
			want: Arg{Start: 0, NameStart: 7, NameEnd: 9, Closed: true, Name: "al"}, ok: true,
		},
		{
			name: "at-name-start", text: `\begin{}`, cursor: 7,
			want: Arg{Start: 0, NameStart: 7, NameEnd: 7, Closed: true, Name: ""}, ok: true,
		},
		{
			name: "right-after-closing-brace", text: `\begin{al} x`, cursor: 10,
			want: Arg{Start: 0, NameStart: 7, NameEnd: 9, Closed: true, Name: "al"}, ok: true,
		},
		{
			name: "unclosed", text: `\begin{ma`, cursor: 9,
			want: Arg{Start: 0, NameStart: 7, NameEnd: 9, Closed: false, Name: "ma"}, ok: true,
		},
		{
			name: "second-tag", text: `\begin{a}\begin{bc}`, cursor: 17,
			want: Arg{Start: 9, NameStart: 16, NameEnd: 18, Closed: true, Name: "bc"}, ok: true,
		},
		{name: "before-brace", text: `\begin{al}`, cursor: 6},
		{name: "past-closing-brace", text: `\begin{al} x`, cursor: 11},
		{name: "inside-end-tag", text: `\end{al}`, cursor: 6},
		{name: "no-tag", text: "x", cursor: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := BeginArgAt(tc.text, tc.cursor)
			require.Equal(t, tc.ok, ok)
			if ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestCompleteEnvironment(t *testing.T) {
	tbl := envs("align", "align*", "array", "matrix")

	cases := []struct {
		name       string
		text       string
		cursor     int
		wantText   string
		wantCursor int
		ok         bool
	}{
		{name: "unique", text: `\begin{m}`, cursor: 8, wantText: `\begin{matrix}`, wantCursor: 13, ok: true},
		{name: "unique-unclosed", text: `\begin{ma`, cursor: 9, wantText: `\begin{matrix`, wantCursor: 13, ok: true},
		{name: "common-prefix", text: `\begin{al}`, cursor: 9, wantText: `\begin{align}`, wantCursor: 12, ok: true},
		{name: "exact-name-extends-to-star", text: `\begin{align}`, cursor: 12, wantText: `\begin{align*}`, wantCursor: 13, ok: true},
		{name: "ambiguous", text: `\begin{a}`, cursor: 8},
		{name: "empty-partial", text: `\begin{}`, cursor: 7},
		{name: "after-closing-brace", text: `\begin{m}`, cursor: 9},
		{name: "unknown", text: `\begin{z}`, cursor: 8},
		{name: "outside-argument", text: `m \begin{x}`, cursor: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := CompleteEnvironment(tc.text, tc.cursor, tbl)
			require.Equal(t, tc.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tc.wantText, got.Text)
			assert.Equal(t, tc.wantCursor, got.Cursor)
			assert.Equal(t, []Action{ActionEnvironment}, got.Actions)
		})
	}
}

func TestCompleteEnvironment_MatchesWholeClosedName(t *testing.T) {
	tbl := envs("align", "align*", "aligned", "matrix")

	// Cursor in the middle of a full name: nothing extends "align" by a
	// common prefix, so the name is left alone.
	_, ok := CompleteEnvironment(`\begin{align}`, 9, tbl)
	assert.False(t, ok)

	// Text after the cursor is part of the partial, not a tail to keep.
	_, ok = CompleteEnvironment(`\begin{mx}`, 8, tbl)
	assert.False(t, ok)

	got, ok := CompleteEnvironment(`\begin{matr}`, 9, tbl)
	require.True(t, ok)
	assert.Equal(t, `\begin{matrix}`, got.Text)
	assert.Equal(t, 13, got.Cursor)
}

func TestCompleteEnvironment_UnclosedUsesTextBeforeCursor(t *testing.T) {
	got, ok := CompleteEnvironment("\\begin{ma x", 9, envs("matrix"))
	require.True(t, ok)
	assert.Equal(t, "\\begin{matrix x", got.Text)
	assert.Equal(t, 13, got.Cursor)
}
