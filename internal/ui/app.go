// Package ui is the terminal explorer: a scatter canvas beside a point grid,
// both driven by one session.
package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/EmbedScope/internal/dataset"
	"github.com/yildizm/EmbedScope/internal/emoji"
	"github.com/yildizm/EmbedScope/internal/logger"
	"github.com/yildizm/EmbedScope/internal/session"
	"github.com/yildizm/EmbedScope/internal/ui/components"
	"github.com/yildizm/EmbedScope/internal/zoom"
)

const (
	// canvasTop is the terminal row the canvas starts on, below the title bar
	canvasTop = 1
	// tableGap separates the canvas from the grid
	tableGap = 2

	helpText = "x/X y/Y: axes • +/-: hotspot size • ↑/↓: grid • click: zoom • esc: zoom out • q: quit"
)

// Options configure the explorer
type Options struct {
	// Source names the data file in the title bar
	Source string
	// CellWidth and CellHeight are the screen units one terminal cell covers
	CellWidth  float64
	CellHeight float64
	// TextLines is how many lines of point text the grid shows
	TextLines int
	Color     bool
}

// DefaultOptions returns explorer defaults
func DefaultOptions() Options {
	return Options{CellWidth: 8, CellHeight: 16, TextLines: 4, Color: !IsColorDisabled()}
}

// Model is the explorer's bubbletea model
type Model struct {
	session *session.Session
	table   *components.Table
	canvas  *components.Canvas
	cells   cellGrid
	opts    Options
	styles  *Styles
	log     *logger.Logger

	width    int
	height   int
	status   string
	errored  bool
	quitting bool
}

// NewModel creates the explorer over data
func NewModel(data *dataset.Dataset, sessionOpts session.Options, opts Options, log *logger.Logger) (*Model, error) {
	if !(opts.CellWidth > 0) || !(opts.CellHeight > 0) {
		return nil, fmt.Errorf("invalid cell size %vx%v", opts.CellWidth, opts.CellHeight)
	}
	if data == nil {
		return nil, session.ErrNoData
	}

	m := &Model{
		cells:  cellGrid{width: opts.CellWidth, height: opts.CellHeight},
		opts:   opts,
		styles: GetStyles(),
		log:    log.WithComponent("ui"),
	}

	// a pointer only lands on cell centers
	if r := m.cells.hitRadius(); sessionOpts.HitRadius < r {
		sessionOpts.HitRadius = r
	}

	cols, rows := m.cells.canvasSize(sessionOpts.Screen)
	m.canvas = components.NewCanvas(cols, rows)
	m.table = components.NewTable("Points", gridColumns(data), 80, rows)
	m.setTableRows(data)

	s, err := session.New(data, m.table, sessionOpts, log.WithComponent("session"))
	if err != nil {
		return nil, err
	}
	m.session = s
	return m, nil
}

// Session exposes the underlying session
func (m *Model) Session() *session.Session {
	return m.session
}

// Table exposes the point grid
func (m *Model) Table() *components.Table {
	return m.table
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case DataReloadedMsg:
		return m.handleReload(msg)
	}
	return m, nil
}

// handleWindowResize gives the grid whatever the canvas leaves
func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.table.Width = max(m.width-m.canvas.Cols-tableGap, 20)
	m.table.Height = max(m.height-canvasTop-1, 5)
	return m, nil
}

// handleKeyPress handles keyboard input
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var err error
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "x":
		err = m.session.CycleDimension(0, 1)
	case "X":
		err = m.session.CycleDimension(0, -1)
	case "y":
		err = m.session.CycleDimension(1, 1)
	case "Y":
		err = m.session.CycleDimension(1, -1)
	case "+", "=":
		err = m.session.StepThreshold(1)
	case "-":
		err = m.session.StepThreshold(-1)
	case "up", "k":
		m.table.MoveUp()
	case "down", "j":
		m.table.MoveDown()
	case "esc":
		if err := m.session.ExitZoom(); err != nil && !errors.Is(err, zoom.ErrNotZoomed) {
			m.setError(err)
		}
		return m, nil
	default:
		return m, nil
	}

	if err != nil {
		m.setError(err)
	} else {
		m.status = ""
		m.errored = false
	}
	return m, nil
}

// handleMouse routes the pointer to the canvas or the grid
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	col, row := msg.X, msg.Y-canvasTop

	leftPress := msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft

	if m.canvas.Contains(col, row) {
		m.table.LeaveRow()
		p := m.cells.screen(col, row)
		if leftPress {
			switch m.session.Press(p.X, p.Y) {
			case zoom.ActionActivated:
				m.setStatus(emoji.GetEmoji("zoom_in") + " zoomed into hotspot")
			case zoom.ActionExited:
				m.setStatus(emoji.GetEmoji("zoom_out") + " zoomed out")
			}
			return m, nil
		}
		m.session.PointerMove(p.X, p.Y)
		return m, nil
	}

	m.session.PointerLeave()
	// any press off the plot zooms out
	if leftPress && m.session.ExitZoom() == nil {
		m.setStatus(emoji.GetEmoji("zoom_out") + " zoomed out")
	}
	if r, ok := m.tableRowAt(msg.X, msg.Y); ok {
		m.table.HoverRow(r)
	} else {
		m.table.LeaveRow()
	}
	return m, nil
}

// tableRowAt maps a terminal position to a grid row
func (m *Model) tableRowAt(x, y int) (int, bool) {
	left := m.canvas.Cols + tableGap
	if x < left || x >= left+m.table.Width {
		return -1, false
	}
	return m.table.RowAt(y - canvasTop)
}

// handleReload swaps the data. Grid rows go first so the session's next
// push finds them.
func (m *Model) handleReload(msg DataReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Data == nil {
		return m, nil
	}
	m.table.Columns = gridColumns(msg.Data)
	m.setTableRows(msg.Data)
	if err := m.session.SetData(msg.Data); err != nil {
		m.setError(err)
		return m, nil
	}
	m.setStatus(fmt.Sprintf("%s reloaded %d points", emoji.GetEmoji("reload"), msg.Data.Len()))
	m.log.Info("reloaded %d points", msg.Data.Len())
	return m, nil
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.errored = false
}

func (m *Model) setError(err error) {
	m.status = emoji.GetEmoji("warning") + " " + err.Error()
	m.errored = true
	m.log.Warn("%v", err)
}

// View renders the explorer
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	frame := m.session.Frame()
	tooltip := ""
	if p, ok := m.session.HoveredPoint(); ok {
		tooltip = p.Title
		if tooltip == "" {
			tooltip = p.ID
		}
	}
	drawFrame(m.canvas, m.cells, frame, tooltip)

	var plot, grid string
	if m.opts.Color {
		plot = m.canvas.Render(m.styles.Canvas)
		grid = m.table.Render(m.styles.Table)
	} else {
		plot = m.canvas.String()
		grid = m.table.Render(components.TableStyles{})
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, plot, strings.Repeat(" ", tableGap), grid)
	return lipgloss.JoinVertical(lipgloss.Left, m.renderTitleBar(frame), body, m.renderStatusLine())
}

func (m *Model) renderTitleBar(f session.Frame) string {
	title := fmt.Sprintf("%s EmbedScope", emoji.GetEmoji("statistics"))
	info := fmt.Sprintf("%d points • %d hotspots • %s", m.session.Data().Len(), len(f.Hotspots), f.State)
	if m.opts.Source != "" {
		info = m.opts.Source + " • " + info
	}
	if !m.opts.Color {
		return title + "  " + info
	}
	return m.styles.Title.Render(title) + " " + m.styles.Muted.Render(info)
}

func (m *Model) renderStatusLine() string {
	text := helpText
	if m.status != "" {
		text = m.status
	}
	if !m.opts.Color {
		return text
	}
	if m.errored {
		return m.styles.Error.Render(text)
	}
	return m.styles.Status.Render(text)
}

// setTableRows fills the grid from data
func (m *Model) setTableRows(data *dataset.Dataset) {
	ids := make([]string, data.Len())
	cells := make([][]string, data.Len())
	for i, p := range data.Points {
		ids[i] = p.ID
		row := []string{p.ID, p.Title, p.URL, components.Excerpt(p.Text, m.opts.TextLines)}
		for _, v := range p.Dims {
			row = append(row, strconv.FormatFloat(v, 'f', 2, 64))
		}
		cells[i] = row
	}
	m.table.SetRows(ids, cells)
}

// gridColumns lays out id, title, url, text, then one column per dimension
func gridColumns(data *dataset.Dataset) []components.Column {
	columns := []components.Column{
		{Title: "id", Width: 8},
		{Title: "title", Width: 24},
		{Title: "url", Width: 20},
		{Title: "text", Width: 32},
	}
	for _, d := range data.Dimensions {
		columns = append(columns, components.Column{Title: d, Width: max(len(d), 6)})
	}
	return columns
}

// Run runs the explorer until the user quits. setup receives the program
// before it starts so callers can feed it messages from other goroutines.
func Run(model *Model, setup func(p *tea.Program)) error {
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if setup != nil {
		setup(p)
	}
	_, err := p.Run()
	return err
}
