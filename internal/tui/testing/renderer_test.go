package testing

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingMsg struct{ n int }

// counter answers every ping below three with the next ping.
type counter struct {
	seen []int
}

func (c counter) Init() tea.Cmd {
	return func() tea.Msg { return pingMsg{n: 1} }
}

func (c counter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	p, ok := msg.(pingMsg)
	if !ok {
		return c, nil
	}
	c.seen = append(c.seen, p.n)
	if p.n >= 3 {
		return c, nil
	}
	next := p.n + 1
	return c, tea.Batch(
		func() tea.Msg { return pingMsg{n: next} },
		nil,
	)
}

func (c counter) View() string {
	return "\x1b[1mcounter\x1b[0m"
}

func TestDriver_CollectDoesNotDeliver(t *testing.T) {
	d := NewDriver(counter{})

	msgs := d.Collect()
	require.Len(t, msgs, 1)
	assert.Equal(t, pingMsg{n: 1}, msgs[0])
	assert.Empty(t, d.Model.(counter).seen)
	assert.Empty(t, d.Collect())
}

func TestDriver_Settle(t *testing.T) {
	d := NewDriver(counter{})
	d.Settle()

	assert.Equal(t, []int{1, 2, 3}, d.Model.(counter).seen)
	assert.Equal(t, 3, d.UpdateCount)
	assert.Equal(t, "counter", d.View())
}

func TestFindAndWithout(t *testing.T) {
	msgs := []tea.Msg{pingMsg{n: 1}, tea.QuitMsg{}, pingMsg{n: 2}}

	p, ok := Find[pingMsg](msgs)
	require.True(t, ok)
	assert.Equal(t, 1, p.n)

	_, ok = Find[tea.WindowSizeMsg](msgs)
	assert.False(t, ok)

	assert.Equal(t, []tea.Msg{tea.QuitMsg{}}, Without[pingMsg](msgs))
	assert.Len(t, msgs, 3)
}

func TestKeyPress(t *testing.T) {
	assert.Equal(t, "enter", KeyPress("enter").String())
	assert.Equal(t, "ctrl+r", KeyPress("ctrl+r").String())
	assert.Equal(t, "x", KeyPress("x").String())
}

func TestContainsInOrder(t *testing.T) {
	assert.True(t, ContainsInOrder("a b c", "a", "c"))
	assert.False(t, ContainsInOrder("a b c", "c", "a"))
}
