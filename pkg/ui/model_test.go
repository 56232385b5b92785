package ui

import (
	"context"
	"fmt"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdunphy/dictl/pkg/dict"
)

type fakeQuerier struct {
	mu     sync.Mutex
	calls  int
	lookup func(ctx context.Context, word string) ([]*dict.Entry, error)
}

func (f *fakeQuerier) Lookup(ctx context.Context, word string) ([]*dict.Entry, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.lookup(ctx, word)
}

func (f *fakeQuerier) Close(ctx context.Context) error { return nil }

func (f *fakeQuerier) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func entriesFor(word, definition string) []*dict.Entry {
	return []*dict.Entry{
		{
			Word: word,
			Senses: []dict.Sense{
				{PartOfSpeech: "noun", Definition: definition},
			},
		},
	}
}

func newTestModel(t *testing.T, q *fakeQuerier) Model {
	t.Helper()
	updated, _ := New(q, nil).Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func submit(t *testing.T, m Model, word string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(word)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

func deliver(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

// findResult executes the commands a submission produced and digs the
// lookup result out of them.
func findResult(t *testing.T, cmd tea.Cmd) resultMsg {
	t.Helper()
	for _, msg := range collectMsgs(cmd) {
		if result, ok := msg.(resultMsg); ok {
			return result
		}
	}
	t.Fatal("no result message produced")
	return resultMsg{}
}

func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var msgs []tea.Msg
	for _, sub := range batch {
		msgs = append(msgs, collectMsgs(sub)...)
	}
	return msgs
}

func TestSubmitEmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t \n"} {
		q := &fakeQuerier{}
		m := newTestModel(t, q)

		m, cmd := submit(t, m, raw)

		assert.Nil(t, cmd)
		assert.Zero(t, q.callCount())
		assert.Contains(t, m.View(), msgEmptySearch)
	}
}

func TestSubmitLooksUpOnce(t *testing.T) {
	q := &fakeQuerier{
		lookup: func(ctx context.Context, word string) ([]*dict.Entry, error) {
			return entriesFor(word, "a procedure for checking something"), nil
		},
	}
	m := newTestModel(t, q)

	m, cmd := submit(t, m, "  Test ")
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Searching for 'test'")

	result := findResult(t, cmd)
	assert.Equal(t, 1, q.callCount())
	assert.Equal(t, "test", result.word)

	m = deliver(t, m, result)
	view := m.View()
	assert.Contains(t, view, "TEST")
	assert.Contains(t, view, "a procedure for checking something")
	assert.NotContains(t, view, "Searching for")
}

func TestStaleResultDiscarded(t *testing.T) {
	q := &fakeQuerier{
		lookup: func(ctx context.Context, word string) ([]*dict.Entry, error) {
			return entriesFor(word, "definition of "+word), nil
		},
	}
	m := newTestModel(t, q)

	m, firstCmd := submit(t, m, "first")
	m, secondCmd := submit(t, m, "second")

	firstResult := findResult(t, firstCmd)
	secondResult := findResult(t, secondCmd)

	// The superseded result arrives late and must not render.
	m = deliver(t, m, firstResult)
	assert.Contains(t, m.View(), "Searching for 'second'")

	m = deliver(t, m, secondResult)
	view := m.View()
	assert.Contains(t, view, "definition of second")
	assert.NotContains(t, view, "definition of first")
}

func TestNotFoundRendering(t *testing.T) {
	q := &fakeQuerier{
		lookup: func(ctx context.Context, word string) ([]*dict.Entry, error) {
			return nil, &dict.NotFoundError{Word: word, Suggestions: []string{"plonk"}}
		},
	}
	m := newTestModel(t, q)

	m, cmd := submit(t, m, "zzxqqplonk")
	m = deliver(t, m, findResult(t, cmd))

	view := m.View()
	assert.Contains(t, view, "'zzxqqplonk' not found in the dictionary.")
	assert.Contains(t, view, "Did you mean: plonk?")
	assert.NotContains(t, view, msgUnavailable)
}

func TestUnavailableRendering(t *testing.T) {
	q := &fakeQuerier{
		lookup: func(ctx context.Context, word string) ([]*dict.Entry, error) {
			return nil, dict.ErrUnavailable
		},
	}
	m := newTestModel(t, q)

	m, cmd := submit(t, m, "test")
	m = deliver(t, m, findResult(t, cmd))
	assert.Contains(t, m.View(), msgUnavailable)
	assert.NotContains(t, m.View(), "not found in the dictionary")

	// The app stays interactive after a failure.
	q.lookup = func(ctx context.Context, word string) ([]*dict.Entry, error) {
		return entriesFor(word, "still alive"), nil
	}
	m, cmd = submit(t, m, "again")
	m = deliver(t, m, findResult(t, cmd))
	assert.Contains(t, m.View(), "still alive")
	assert.Equal(t, 2, q.callCount())
}

func TestHistoryView(t *testing.T) {
	q := &fakeQuerier{
		lookup: func(ctx context.Context, word string) ([]*dict.Entry, error) {
			return entriesFor(word, "definition"), nil
		},
	}
	m := newTestModel(t, q)

	for _, word := range []string{"alpha", "beta", "alpha"} {
		var cmd tea.Cmd
		m, cmd = submit(t, m, word)
		m = deliver(t, m, findResult(t, cmd))
	}

	// Deduped by move-to-front: alpha is most recent, single entry.
	assert.Equal(t, []string{"alpha", "beta"}, m.history)

	m = deliver(t, m, tea.KeyMsg{Type: tea.KeyF1})
	view := m.View()
	assert.Contains(t, view, "Search History")
	assert.Contains(t, view, "1. alpha")
	assert.Contains(t, view, "2. beta")

	m = deliver(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Contains(t, m.View(), "definition")
}

func TestEmptyHistoryView(t *testing.T) {
	m := newTestModel(t, &fakeQuerier{})
	m = deliver(t, m, tea.KeyMsg{Type: tea.KeyF1})
	assert.Contains(t, m.View(), msgHistoryEmpty)
}

func TestClearHistory(t *testing.T) {
	q := &fakeQuerier{
		lookup: func(ctx context.Context, word string) ([]*dict.Entry, error) {
			return entriesFor(word, "definition"), nil
		},
	}
	m := newTestModel(t, q)
	for _, word := range []string{"alpha", "beta"} {
		var cmd tea.Cmd
		m, cmd = submit(t, m, word)
		m = deliver(t, m, findResult(t, cmd))
	}

	// Outside the history pane the key does nothing.
	m = deliver(t, m, tea.KeyMsg{Type: tea.KeyF2})
	assert.Equal(t, []string{"beta", "alpha"}, m.history)

	m = deliver(t, m, tea.KeyMsg{Type: tea.KeyF1})
	m = deliver(t, m, tea.KeyMsg{Type: tea.KeyF2})
	assert.Empty(t, m.history)
	assert.Contains(t, m.View(), msgHistoryEmpty)
}

func TestHistoryVisibleWhileLoading(t *testing.T) {
	q := &fakeQuerier{
		lookup: func(ctx context.Context, word string) ([]*dict.Entry, error) {
			return entriesFor(word, "definition"), nil
		},
	}
	m := newTestModel(t, q)

	m, _ = submit(t, m, "test")
	assert.Contains(t, m.View(), "Searching for 'test'")

	m = deliver(t, m, tea.KeyMsg{Type: tea.KeyF1})
	view := m.View()
	assert.Contains(t, view, "Search History")
	assert.NotContains(t, view, "Searching for 'test'")
}

func TestHistoryCap(t *testing.T) {
	m := newTestModel(t, &fakeQuerier{
		lookup: func(ctx context.Context, word string) ([]*dict.Entry, error) {
			return entriesFor(word, "definition"), nil
		},
	})

	// Lookups need not complete for a term to be recorded.
	for i := 0; i < maxHistory+10; i++ {
		m, _ = submit(t, m, fmt.Sprintf("word%03d", i))
	}

	require.Len(t, m.history, maxHistory)
	assert.Equal(t, fmt.Sprintf("word%03d", maxHistory+9), m.history[0])
	assert.Equal(t, "word010", m.history[maxHistory-1])
	assert.NotContains(t, m.history, "word009")
}
