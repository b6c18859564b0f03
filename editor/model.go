package editor

import (
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/texcomplete/buffer"
	"github.com/iw2rmb/texcomplete/latex"
)

var lastID atomic.Int64

func nextID() int64 { return lastID.Add(1) }

// Model is a Bubble Tea component that renders and edits a buffer.
type Model struct {
	id  int64
	cfg Config
	buf *buffer.Buffer

	focused bool

	viewport viewport.Model

	completer      Completer
	guard          *latex.Guard
	pendingActions []latex.Action

	mouseAnchor   buffer.Pos
	mouseDragging bool
	lastClickAt   time.Time
	lastClickPos  buffer.Pos

	lastBufVersion uint64
	lastCursor     buffer.Pos
}

func New(cfg Config) Model {
	if len(cfg.KeyMap.Left.Keys()) == 0 && len(cfg.KeyMap.Backspace.Keys()) == 0 {
		cfg.KeyMap = DefaultKeyMap()
	}
	m := Model{
		id:       nextID(),
		cfg:      cfg,
		buf:      buffer.New(cfg.Text, buffer.Options{HistoryLimit: cfg.HistoryLimit}),
		focused:  true,
		viewport: viewport.New(0, 0),
		guard:    &latex.Guard{},
	}
	m = Attach(m, cfg.Completer)
	m.lastBufVersion = m.buf.Version()
	m.lastCursor = m.buf.Cursor()
	m.rebuildContent()
	return m
}

func (m Model) Buffer() *buffer.Buffer { return m.buf }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	m.viewport.Width = max(width, 0)
	m.viewport.Height = max(height, 0)

	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursor()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		m, cmd = m.updateKey(msg)
	case tea.MouseMsg:
		m, cmd = m.updateMouse(msg)
		m.sync(false)
		return m, cmd
	case cursorSettleMsg:
		if msg.id != m.id {
			return m, nil
		}
		m.settleCursor(msg)
	}
	m.sync(true)
	return m, cmd
}

func (m Model) View() string { return m.viewport.View() }

// sync re-renders after a buffer change, notifies OnChange and optionally
// scrolls the cursor into view.
func (m *Model) sync(follow bool) {
	if m.buf == nil {
		return
	}
	ver := m.buf.Version()
	cur := m.buf.Cursor()
	if ver == m.lastBufVersion && cur == m.lastCursor {
		return
	}
	cursorMoved := cur != m.lastCursor
	changed := ver != m.lastBufVersion
	m.lastBufVersion = ver
	m.lastCursor = cur
	m.rebuildContent()
	if follow && cursorMoved {
		m.followCursor()
	}

	actions := m.pendingActions
	m.pendingActions = nil
	if changed && m.cfg.OnChange != nil {
		m.cfg.OnChange(buildChangeEvent(m.buf, actions))
	}
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) followCursor() {
	if m.buf == nil {
		return
	}
	row := m.buf.Cursor().Row
	h := m.visibleRowCount()
	if h <= 0 {
		return
	}

	y := m.viewport.YOffset
	switch {
	case row < y:
		m.viewport.SetYOffset(row)
	case row >= y+h:
		m.viewport.SetYOffset(row - h + 1)
	}
	// Scrolling changes which lines get highlighted.
	m.rebuildContent()
}

func (m *Model) visibleRowCount() int {
	return max(m.viewport.Height-m.viewport.Style.GetVerticalFrameSize(), 0)
}
