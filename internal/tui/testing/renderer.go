// Package testing drives Bubble Tea models without a terminal.
package testing

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// maxSettleRounds bounds Settle so a model that keeps emitting commands
// cannot hang a test.
const maxSettleRounds = 50

// Driver feeds messages to a model and holds the commands it returns until
// the test decides when, and in what order, their results are delivered.
type Driver struct {
	Model tea.Model
	queue []tea.Cmd

	// UpdateCount tracks how many times Update was called.
	UpdateCount int
}

// NewDriver wraps a model. The model's Init command is queued.
func NewDriver(m tea.Model) *Driver {
	d := &Driver{Model: m}
	d.enqueue(m.Init())
	return d
}

// Send delivers one message and queues the resulting command.
func (d *Driver) Send(msg tea.Msg) {
	d.UpdateCount++
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.enqueue(cmd)
}

func (d *Driver) enqueue(cmd tea.Cmd) {
	if cmd != nil {
		d.queue = append(d.queue, cmd)
	}
}

// Collect runs every queued command and returns the messages produced,
// without delivering them. Batches are flattened; spinner ticks are dropped.
func (d *Driver) Collect() []tea.Msg {
	queue := d.queue
	d.queue = nil

	var msgs []tea.Msg
	for _, cmd := range queue {
		msgs = append(msgs, expand(cmd)...)
	}
	return msgs
}

// Settle delivers queued results until the model stops emitting commands.
func (d *Driver) Settle() {
	for range maxSettleRounds {
		msgs := d.Collect()
		if len(msgs) == 0 {
			return
		}
		for _, msg := range msgs {
			d.Send(msg)
		}
	}
}

// View renders the model with ANSI codes removed.
func (d *Driver) View() string {
	return StripANSI(d.Model.View())
}

// Lines returns the rendered view split by newlines.
func (d *Driver) Lines() []string {
	return strings.Split(d.View(), "\n")
}

func expand(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, expand(c)...)
		}
		return out
	case spinner.TickMsg:
		return nil
	default:
		return []tea.Msg{msg}
	}
}

// Find returns the first message of type T.
func Find[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Without returns msgs with every message of type T removed.
func Without[T tea.Msg](msgs []tea.Msg) []tea.Msg {
	out := msgs[:0:0]
	for _, m := range msgs {
		if _, ok := m.(T); !ok {
			out = append(out, m)
		}
	}
	return out
}
