package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"keyout/internal/converter"
)

const maxShownFailures = 5

type Model struct {
	events     <-chan converter.Event
	cancel     func()
	bar        progress.Model
	source     string
	started    time.Time
	total      int
	processed  int
	failures   []converter.FileOutcome
	report     *converter.Report
	cancelling bool
	quitting   bool
}

type doneMsg struct{}

type eventMsg converter.Event

// NewModel follows events until the channel closes. cancel is called once
// when the user asks to stop; the current file still finishes.
func NewModel(source string, events <-chan converter.Event, cancel func()) Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40
	return Model{
		events:  events,
		cancel:  cancel,
		bar:     bar,
		source:  source,
		started: time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return listenForEvents(m.events)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		m = m.apply(converter.Event(msg))
		return m, listenForEvents(m.events)
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			if !m.cancelling && m.cancel != nil {
				m.cancel()
			}
			m.cancelling = true
		}
		return m, nil
	case tea.WindowSizeMsg:
		width := msg.Width - 10
		if width > 60 {
			width = 60
		}
		if width < 20 {
			width = 20
		}
		m.bar.Width = width
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) apply(ev converter.Event) Model {
	switch ev.Kind {
	case converter.EventProgress:
		m.processed = ev.Processed
		m.total = ev.Total
	case converter.EventFileFailed:
		m.failures = append(m.failures, ev.Outcome)
	case converter.EventCompleted:
		report := ev.Report
		m.report = &report
		m.processed = ev.Processed
		m.total = ev.Total
	}
	return m
}

func (m Model) ratio() float64 {
	if m.total == 0 {
		return 0
	}
	r := float64(m.processed) / float64(m.total)
	if r > 1 {
		r = 1
	}
	return r
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	elapsed := time.Since(m.started).Round(time.Millisecond)
	lines := []string{
		titleStyle.Render("keyout"),
		dimStyle.Render(m.source),
		labelStyle.Render(fmt.Sprintf("Files: %d/%d", m.processed, m.total)) +
			dimStyle.Render(fmt.Sprintf("  failed:%d", len(m.failures))),
		dimStyle.Render(fmt.Sprintf("Elapsed: %s", elapsed)),
		m.bar.ViewAs(m.ratio()),
	}

	shown := m.failures
	if len(shown) > maxShownFailures {
		shown = shown[len(shown)-maxShownFailures:]
	}
	for _, o := range shown {
		lines = append(lines, warnStyle.Render(fmt.Sprintf("  %s: %s", o.Name, o.Status)))
	}

	switch {
	case m.report != nil:
		lines = append(lines, successStyle.Render("Done."))
	case m.cancelling:
		lines = append(lines, dimStyle.Render("Stopping after the current file..."))
	default:
		lines = append(lines, dimStyle.Render("q to stop"))
	}

	return strings.Join(lines, "\n")
}

func listenForEvents(events <-chan converter.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}
