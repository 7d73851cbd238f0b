// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] type manages a status bar (picks, request state, theme) and
// an input prompt at the bottom of the terminal. All application output
// is printed above the rendered area via Program.Println / Printf,
// ensuring concurrent writes never garble the display.
package display

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/chucklechow/internal/domain"
)

// Title is the window title.
const Title = "Chuckle & Chow"

const prompt = "chow> "

// ── Status ───────────────────────────────────────────────────────

// Status is what the status bar shows. The UI polls it on every tick.
type Status struct {
	Selected  []string
	State     string // idle, loading, loaded, failed
	Theme     domain.Theme
	Language  string
	Favorites int
	Confirm   bool // a yes/no question is pending
}

// StatusFunc reports the current status.
type StatusFunc func() Status

// ── UI ───────────────────────────────────────────────────────────

// UI manages the terminal through Bubble Tea.
//
// Call [NewUI] then [UI.Run] (blocking). Other goroutines may
// safely call [UI.Println], [UI.Printf], and read from
// [UI.InputChan] at any time after [UI.WaitReady] returns.
type UI struct {
	program *tea.Program
	inputCh chan string
	readyCh chan struct{}
	quitCh  chan struct{}
	status  StatusFunc
	theme   atomic.Value // domain.Theme
	width   atomic.Int64
	done    atomic.Bool
}

// NewUI creates the display. Call Run() to start. status may be nil.
func NewUI(status StatusFunc, theme domain.Theme) *UI {
	if status == nil {
		status = func() Status { return Status{State: "idle", Theme: theme} }
	}
	u := &UI{
		status:  status,
		inputCh: make(chan string, 16),
		readyCh: make(chan struct{}),
		quitCh:  make(chan struct{}),
	}
	u.theme.Store(theme)
	u.width.Store(80)
	return u
}

// SetTheme switches the palette used for new output.
func (u *UI) SetTheme(t domain.Theme) { u.theme.Store(t) }

// Theme returns the active theme.
func (u *UI) Theme() domain.Theme {
	t, _ := u.theme.Load().(domain.Theme)
	if !t.Valid() {
		return domain.ThemeLight
	}
	return t
}

func (u *UI) palette() palette { return paletteFor(u.Theme()) }

// Println prints a line above the prompt. Thread-safe.
// If the program hasn't started yet, falls back to fmt.Println.
func (u *UI) Println(a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Println(a...)
	} else {
		fmt.Println(a...)
	}
}

// Printf prints formatted text above the prompt. Thread-safe.
func (u *UI) Printf(format string, a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Printf(format, a...)
	} else {
		fmt.Printf(format+"\n", a...)
	}
}

// InputChan returns completed user-input lines.
func (u *UI) InputChan() <-chan string { return u.inputCh }

// ── Styled print helpers ─────────────────────────────────────────

// PrintChat prints a line in the app's voice.
func (u *UI) PrintChat(text string) {
	u.Println(u.palette().chat.Render("  " + text))
}

// PrintHint prints a secondary/dimmed line.
func (u *UI) PrintHint(text string) {
	u.Println(u.palette().secondary.Render("  " + text))
}

// PrintUrgent prints an error line.
func (u *UI) PrintUrgent(text string) {
	u.Println(u.palette().urgent.Render("  " + text))
}

// PrintUserInput echoes the user's typed command into the scrollback.
func (u *UI) PrintUserInput(text string) {
	p := u.palette()
	u.Println(p.prompt.Render("chow") + p.secondary.Render("> ") + p.echo.Render(text))
}

// WaitReady blocks until the Bubble Tea event loop is running.
func (u *UI) WaitReady() { <-u.readyCh }

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// QuitChan is closed when Run returns.
func (u *UI) QuitChan() <-chan struct{} { return u.quitCh }

// Run starts the Bubble Tea event loop. Blocks until quit.
func (u *UI) Run() error {
	p := u.palette()

	ti := textinput.New()
	// A plain-text prompt keeps the textinput width math correct.
	ti.Prompt = prompt
	ti.PromptStyle = p.prompt
	ti.TextStyle = p.echo
	ti.Cursor.Style = p.prompt
	ti.Placeholder = "pick meat chicken, generate, help..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60 // updated on first WindowSizeMsg

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := model{
		status:  u.status,
		input:   ti,
		spinner: sp,
		inputCh: u.inputCh,
		readyCh: u.readyCh,
		width:   80,
		echoFn:  u.PrintUserInput,
		widthFn: func(w int) { u.width.Store(int64(w)) },
	}
	m.current = m.status()

	u.program = tea.NewProgram(m)
	_, err := u.program.Run()
	u.done.Store(true)
	close(u.quitCh)
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	status  StatusFunc
	current Status
	input   textinput.Model
	spinner spinner.Model
	inputCh chan<- string
	readyCh chan struct{}
	echoFn  func(string) // prints user input into scrollback
	widthFn func(int)
	width   int
}

type tickMsg time.Time

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		tickCmd(),
		signalReady(m.readyCh),
		tea.SetWindowTitle(Title),
	)
}

func signalReady(ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		close(ch)
		return nil
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			v := m.input.Value()
			m.input.Reset()
			if strings.TrimSpace(v) != "" {
				m.inputCh <- v
				// Echo from a Cmd so Update never blocks on Println.
				echoFn := m.echoFn
				return m, func() tea.Msg {
					echoFn(v)
					return nil
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.widthFn != nil {
			m.widthFn(msg.Width)
		}
		if msg.Width > len(prompt) {
			m.input.Width = msg.Width - len(prompt)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		prev := m.current.State
		m.current = m.status()
		cmds := []tea.Cmd{tickCmd()}
		if prev != m.current.State {
			cmds = append(cmds, tea.SetWindowTitle(m.titleStr()))
		}
		return m, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) titleStr() string {
	switch m.current.State {
	case "loading":
		return Title + " - cooking..."
	case "failed":
		return Title + " - kitchen fire"
	}
	return Title
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(SafeRender(m.renderBar))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	return b.String()
}

func (m model) renderBar() string {
	s := m.current
	p := paletteFor(s.Theme)
	sep := p.sep.Render("  │  ")

	picks := p.secondary.Render("nothing picked")
	if len(s.Selected) > 0 {
		picks = p.accent.Render(strings.Join(s.Selected, " · "))
	}

	state := p.label.Render(s.State)
	switch s.State {
	case "loading":
		state = p.accent.Render(m.spinner.View() + " cooking")
	case "failed":
		state = p.urgent.Render("failed (retry?)")
	}
	if s.Confirm {
		state = p.urgent.Render("yes / no?")
	}

	parts := []string{
		picks,
		state,
		p.label.Render(fmt.Sprintf("favs %d", s.Favorites)),
		p.label.Render(string(s.Theme)),
		p.label.Render(s.Language),
	}
	content := " " + strings.Join(parts, sep) + " "

	w := m.width
	if w <= 0 {
		w = 80
	}
	return p.bar.Width(w).Render(content)
}

// ── Styles ───────────────────────────────────────────────────────

type palette struct {
	bar       lipgloss.Style
	label     lipgloss.Style
	accent    lipgloss.Style
	sep       lipgloss.Style
	prompt    lipgloss.Style
	banner    lipgloss.Style
	chat      lipgloss.Style
	secondary lipgloss.Style
	urgent    lipgloss.Style
	echo      lipgloss.Style
}

var (
	darkPalette = palette{
		bar:       lipgloss.NewStyle().Background(lipgloss.Color("#27272a")).Foreground(lipgloss.Color("#a1a1aa")),
		label:     lipgloss.NewStyle().Foreground(lipgloss.Color("#a1a1aa")),
		accent:    lipgloss.NewStyle().Foreground(lipgloss.Color("#fde68a")),
		sep:       lipgloss.NewStyle().Foreground(lipgloss.Color("#52525b")),
		prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color("#fdba74")),
		banner:    lipgloss.NewStyle().Foreground(lipgloss.Color("#fdba74")),
		chat:      lipgloss.NewStyle().Foreground(lipgloss.Color("#bae6fd")),
		secondary: lipgloss.NewStyle().Foreground(lipgloss.Color("#71717a")),
		urgent:    lipgloss.NewStyle().Foreground(lipgloss.Color("#fca5a5")),
		echo:      lipgloss.NewStyle().Foreground(lipgloss.Color("#a1a1aa")),
	}

	lightPalette = palette{
		bar:       lipgloss.NewStyle().Background(lipgloss.Color("#fef3c7")).Foreground(lipgloss.Color("#44403c")),
		label:     lipgloss.NewStyle().Foreground(lipgloss.Color("#57534e")),
		accent:    lipgloss.NewStyle().Foreground(lipgloss.Color("#b45309")),
		sep:       lipgloss.NewStyle().Foreground(lipgloss.Color("#d6d3d1")),
		prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color("#c2410c")),
		banner:    lipgloss.NewStyle().Foreground(lipgloss.Color("#c2410c")),
		chat:      lipgloss.NewStyle().Foreground(lipgloss.Color("#0369a1")),
		secondary: lipgloss.NewStyle().Foreground(lipgloss.Color("#78716c")),
		urgent:    lipgloss.NewStyle().Foreground(lipgloss.Color("#b91c1c")),
		echo:      lipgloss.NewStyle().Foreground(lipgloss.Color("#57534e")),
	}
)

func paletteFor(t domain.Theme) palette {
	if t == domain.ThemeDark {
		return darkPalette
	}
	return lightPalette
}
