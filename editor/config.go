package editor

// Config configures the editor Model.
type Config struct {
	// Initial text for the internal buffer.
	Text string

	// Rendering options.
	ShowLineNums bool
	Style        Style
	// TabWidth defaults to 4.
	TabWidth int

	KeyMap KeyMap

	// Forwarded to buffer.Options.
	HistoryLimit int

	// ReadOnly blocks every mutation; movement and copy still work.
	ReadOnly bool

	// Clipboard backs copy, cut and paste. Nil disables them.
	Clipboard Clipboard

	// OnChange is called once per Update that changed the buffer version.
	OnChange func(ChangeEvent)

	// Highlighter styles visible lines. Nil renders plain text.
	Highlighter Highlighter

	// Completer runs on every text-changing keystroke. Nil disables
	// completion.
	Completer Completer
}
