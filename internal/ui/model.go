package ui

import (
	"image"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/weatherpi/internal/icon"
)

// WindowTitle is set on the terminal when the program starts.
const WindowTitle = "WeatherPi v0.1"

// DisplayState is the text and icon currently shown on the canvas.
type DisplayState struct {
	Time        string
	Date        string
	Temperature string
	IconPath    string
	IconArt     string
	LastUpdate  string
}

func (d *DisplayState) SetTime(text string)        { d.Time = text }
func (d *DisplayState) SetDate(text string)        { d.Date = text }
func (d *DisplayState) SetTemperature(text string) { d.Temperature = text }
func (d *DisplayState) SetLastUpdate(text string)  { d.LastUpdate = text }

// SetIcon stores the asset name and its pre-rendered cell art.
func (d *DisplayState) SetIcon(path, art string) {
	d.IconPath = path
	d.IconArt = art
}

// Options configure the display model.
type Options struct {
	Theme string
	// OnClose runs on its own goroutine when the close binding is pressed.
	// It is expected to end the program. Nil quits directly.
	OnClose func()
}

// Model is the Bubble Tea model for the kiosk canvas.
type Model struct {
	theme   Theme
	styles  Styles
	keys    keyMap
	onClose func()

	// Terminal size; the canvas is centered inside it.
	width  int
	height int

	state DisplayState
}

// New builds the model with every region laid out and placeholder content.
func New(opts Options) Model {
	theme := GetTheme(opts.Theme)
	m := Model{
		theme:   theme,
		styles:  theme.Styles(),
		keys:    DefaultKeyMap(),
		onClose: opts.OnClose,
	}
	m.state.SetTemperature(placeholderTemperature())
	m.state.SetIcon("", icon.Render(nil, IconCols, IconRows, theme.Background))
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.HideCursor, tea.SetWindowTitle(WindowTitle))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Close) {
			return m, m.closeCmd()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	default:
		m.Apply(msg)
	}
	return m, nil
}

// Apply performs a display mutation outside the event loop. It is used for
// the initial render before the program starts; afterwards mutations go
// through Update. It reports whether msg was a display mutation.
func (m *Model) Apply(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case SetTimeMsg:
		m.state.SetTime(msg.Text)
	case SetDateMsg:
		m.state.SetDate(msg.Text)
	case SetTemperatureMsg:
		m.state.SetTemperature(msg.Text)
	case SetIconMsg:
		m.state.SetIcon(msg.Path, m.renderIcon(msg.Image))
	case SetLastUpdateMsg:
		m.state.SetLastUpdate(msg.Text)
	default:
		return false
	}
	return true
}

func (m Model) closeCmd() tea.Cmd {
	if m.onClose == nil {
		return tea.Quit
	}
	onClose := m.onClose
	return func() tea.Msg {
		onClose()
		return nil
	}
}

// State returns the current display contents.
func (m Model) State() DisplayState {
	return m.state
}

// View implements tea.Model.
func (m Model) View() string {
	canvas := m.canvas()
	if m.width <= CanvasCols && m.height <= CanvasRows {
		return canvas
	}
	return lipgloss.Place(
		max(m.width, CanvasCols), max(m.height, CanvasRows),
		lipgloss.Center, lipgloss.Center,
		canvas,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)),
	)
}

// canvas renders the fixed CanvasCols×CanvasRows grid.
func (m Model) canvas() string {
	s := m.styles
	middle := lipgloss.JoinHorizontal(lipgloss.Top,
		s.Temperature.Render(fit(m.state.Temperature, TemperatureCols-temperatureIndent)),
		s.Icon.Render(m.state.IconArt),
	)
	body := lipgloss.JoinVertical(lipgloss.Left,
		s.Time.Render(fit(m.state.Time, CanvasCols)),
		s.Date.Render(fit(m.state.Date, CanvasCols)),
		middle,
		s.LastUpdate.Render(fit(m.state.LastUpdate, CanvasCols)),
	)
	return s.Canvas.Render(body)
}

func (m Model) renderIcon(img image.Image) string {
	return icon.Render(img, IconCols, IconRows, m.theme.Background)
}
