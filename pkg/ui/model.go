package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/bdunphy/dictl/pkg/dict"
	"github.com/bdunphy/dictl/pkg/querier"
)

const (
	maxHistory      = 50
	maxRelatedShown = 5

	// Pane width used before the first WindowSizeMsg arrives.
	defaultPaneWidth = 80

	// Lines of the view that are not the results pane: title, input,
	// the blank lines around them and the help line.
	chromeHeight = 6
)

const (
	msgIntro        = "Type a word and press enter to look it up."
	msgEmptySearch  = "Please enter a word to search."
	msgHistoryEmpty = "No search history available."
	msgUnavailable  = "Lookup service unavailable. Check your connection and try again."
)

type viewState int

const (
	stateResults viewState = iota
	stateHistory
)

// resultMsg delivers a finished lookup back to Update. seq ties it to the
// submission that started it so a superseded lookup can be dropped.
type resultMsg struct {
	seq     int
	word    string
	entries []*dict.Entry
	err     error
}

// Model is the whole text interface: a search field on top, a scrollable
// results pane below it, a help line at the bottom.
type Model struct {
	input    textinput.Model
	spin     spinner.Model
	viewport viewport.Model
	querier  querier.Querier
	logger   *zap.Logger

	state   viewState
	seq     int
	cancel  context.CancelFunc
	loading bool
	word    string
	content string
	history []string

	width  int
	height int
	ready  bool
}

func New(q querier.Querier, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	input := textinput.New()
	input.Placeholder = "Enter a word..."
	input.Prompt = "> "
	input.PromptStyle = posStyle
	input.Focus()

	spin := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(spinnerStyle),
	)

	return Model{
		input:   input,
		spin:    spin,
		querier: q,
		logger:  logger.Named("ui"),
		content: subtitleStyle.Render(msgIntro),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		paneHeight := msg.Height - chromeHeight
		if paneHeight < 1 {
			paneHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, paneHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = paneHeight
		}
		m.refreshPane()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+q":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		case "f1":
			if m.state == stateHistory {
				m.state = stateResults
			} else {
				m.state = stateHistory
			}
			m.refreshPane()
			return m, nil
		case "f2":
			// Clearing lives in the history pane, as the button did.
			if m.state == stateHistory {
				m.history = nil
				m.refreshPane()
			}
			return m, nil
		case "esc":
			if m.state == stateHistory {
				m.state = stateResults
				m.refreshPane()
			}
			return m, nil
		case "enter":
			return m.submit()
		}

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case resultMsg:
		if msg.seq != m.seq {
			// A newer search superseded this one, its result stays stale.
			m.logger.Debug("stale result dropped",
				zap.String("word", msg.word),
				zap.Int("seq", msg.seq),
			)
			return m, nil
		}
		m.loading = false
		m.cancel = nil
		if msg.err != nil {
			m.content = renderError(msg.word, msg.err, m.paneWidth())
		} else {
			m.content = renderEntries(msg.entries, m.paneWidth())
		}
		m.state = stateResults
		m.refreshPane()
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// submit validates the current input and starts a lookup for it. Empty
// input is rejected locally, the querier never sees it. A submission
// while a lookup is in flight cancels the old one, latest search wins.
func (m Model) submit() (tea.Model, tea.Cmd) {
	word := dict.NormalizeTerm(m.input.Value())
	if word == "" {
		m.state = stateResults
		m.content = errorStyle.Render(msgEmptySearch)
		m.refreshPane()
		return m, nil
	}
	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.seq++
	m.loading = true
	m.word = word
	m.state = stateResults
	m.remember(word)
	m.logger.Info("lookup submitted",
		zap.String("word", word),
		zap.Int("seq", m.seq),
	)
	return m, tea.Batch(m.spin.Tick, lookup(ctx, m.querier, m.seq, word))
}

func lookup(ctx context.Context, q querier.Querier, seq int, word string) tea.Cmd {
	return func() tea.Msg {
		entries, err := q.Lookup(ctx, word)
		return resultMsg{seq: seq, word: word, entries: entries, err: err}
	}
}

// remember records the term in the session history: newest first, deduped
// by move-to-front, capped at maxHistory.
func (m *Model) remember(word string) {
	for i, h := range m.history {
		if h == word {
			m.history = append(m.history[:i], m.history[i+1:]...)
			break
		}
	}
	m.history = append([]string{word}, m.history...)
	if len(m.history) > maxHistory {
		m.history = m.history[:maxHistory]
	}
}

func (m *Model) refreshPane() {
	if !m.ready {
		return
	}
	switch m.state {
	case stateHistory:
		m.viewport.SetContent(renderHistory(m.history, m.paneWidth()))
	default:
		m.viewport.SetContent(m.content)
	}
	m.viewport.GotoTop()
}

func (m *Model) paneWidth() int {
	if !m.ready {
		return defaultPaneWidth
	}
	return m.viewport.Width
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("dictl"))
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("look up word definitions with ease"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	switch {
	// The history pane stays visible while a lookup is in flight.
	case m.state == stateHistory && m.ready:
		b.WriteString(m.viewport.View())
	case m.loading:
		b.WriteString(statusStyle.Render(
			m.spin.View() + fmt.Sprintf(" Searching for '%s'...", m.word)))
	case m.ready:
		b.WriteString(m.viewport.View())
	default:
		b.WriteString(m.content)
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter search • f1 history • f2 clear history • esc back • ctrl+q quit"))
	return b.String()
}
