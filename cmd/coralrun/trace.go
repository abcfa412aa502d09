package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/coral-lang/runtime/abi"
	"github.com/coral-lang/runtime/config"
	"github.com/coral-lang/runtime/handle"
	"github.com/coral-lang/runtime/linker"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	createdStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	droppedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	outputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// chanObserver forwards handle lifecycle events into the TUI.
// Events are dropped rather than blocking the runtime when the view lags.
type chanObserver struct {
	ch chan handle.Event
}

func (o *chanObserver) OnHandleEvent(e handle.Event) {
	select {
	case o.ch <- e:
	default:
	}
}

// syncBuffer collects guest output across goroutines.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type traceModel struct {
	err      error
	obs      *chanObserver
	output   *syncBuffer
	filename string
	lines    []string
	cfg      config.Config
	vp       viewport.Model
	done     bool
	ready    bool
}

type handleEventMsg handle.Event

type guestDoneMsg struct {
	err error
}

func newTraceModel(filename string, cfg config.Config) *traceModel {
	return &traceModel{
		filename: filename,
		cfg:      cfg,
		obs:      &chanObserver{ch: make(chan handle.Event, 1024)},
		output:   &syncBuffer{},
	}
}

func (m *traceModel) Init() tea.Cmd {
	return tea.Batch(m.runGuest, m.waitForEvent)
}

// runGuest executes the whole guest lifecycle and closes the event channel
// when the environment has been torn down, so the view also sees the final
// drop events.
func (m *traceModel) runGuest() tea.Msg {
	ctx := context.Background()

	data, err := os.ReadFile(m.filename)
	if err != nil {
		close(m.obs.ch)
		return guestDoneMsg{err: fmt.Errorf("read file: %w", err)}
	}

	lk := linker.New(ctx)
	defer lk.Close(ctx)

	env := abi.NewEnv(
		abi.WithStore(newStore(m.cfg.Store)),
		abi.WithOutput(m.output),
	)
	env.Table().Subscribe(m.obs)

	if _, err := lk.InstantiateRuntime(ctx, env); err != nil {
		env.Close()
		close(m.obs.ch)
		return guestDoneMsg{err: err}
	}

	runErr := lk.RunModule(ctx, data, m.cfg.Entry)
	env.Close()
	close(m.obs.ch)
	return guestDoneMsg{err: runErr}
}

func (m *traceModel) waitForEvent() tea.Msg {
	e, ok := <-m.obs.ch
	if !ok {
		return nil
	}
	return handleEventMsg(e)
}

func (m *traceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		headerHeight := 2
		footerHeight := 6
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - headerHeight - footerHeight
		}
		m.refresh()
		return m, nil

	case handleEventMsg:
		m.lines = append(m.lines, renderEvent(handle.Event(msg)))
		m.refresh()
		return m, m.waitForEvent

	case guestDoneMsg:
		m.done = true
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

func (m *traceModel) refresh() {
	if !m.ready {
		return
	}
	content := ""
	for _, l := range m.lines {
		content += l + "\n"
	}
	m.vp.SetContent(content)
	m.vp.GotoBottom()
}

func (m *traceModel) View() string {
	title := titleStyle.Render("coralrun " + m.filename)

	var body string
	if m.ready {
		body = m.vp.View()
	}

	status := helpStyle.Render("running...")
	if m.done {
		if m.err != nil {
			status = errorStyle.Render(m.err.Error())
		} else {
			status = createdStyle.Render("guest finished")
		}
	}

	out := m.output.String()
	if out == "" {
		out = helpStyle.Render("(no output)")
	} else {
		out = outputStyle.Render(out)
	}

	return title + "\n\n" +
		body + "\n" +
		status + "\n\n" +
		"output:\n" + out + "\n" +
		helpStyle.Render("q: quit")
}

func renderEvent(e handle.Event) string {
	kind := typeName(e.TypeID)
	switch e.Type {
	case handle.EventCreated:
		return createdStyle.Render(fmt.Sprintf("+ %-8s #%08x", kind, uint32(e.Handle)))
	case handle.EventDropped:
		return droppedStyle.Render(fmt.Sprintf("- %-8s #%08x", kind, uint32(e.Handle)))
	}
	return fmt.Sprintf("? %-8s #%08x", kind, uint32(e.Handle))
}

func typeName(typeID uint32) string {
	switch typeID {
	case abi.TypeList:
		return "list"
	case abi.TypeString:
		return "string"
	case abi.TypeIterator:
		return "iterator"
	}
	return "object"
}

func runTrace(filename string, cfg config.Config) error {
	p := tea.NewProgram(newTraceModel(filename, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
