package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmsearch/internal/ui/input/types"
)

type fakeContext struct {
	index int
	total int
}

func (c fakeContext) CurrentIndex() int { return c.index }
func (c fakeContext) TotalItems() int   { return c.total }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTypingEmitsUpdateText(t *testing.T) {
	h := New(types.DefaultKeyMap(), "Search")
	ctx := fakeContext{index: -1}

	actions, _ := h.HandleKey(runes("d"), ctx)
	require.Len(t, actions, 1)
	assert.Equal(t, types.UpdateTextAction{Text: "d"}, actions[0])

	actions, _ = h.HandleKey(runes("a"), ctx)
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "da"}}, actions)

	// moving the caret does not change the text
	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyLeft}, ctx)
	assert.Empty(t, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyBackspace}, ctx)
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "a"}}, actions)
}

func TestOverlayNavigationKeys(t *testing.T) {
	h := New(types.DefaultKeyMap(), "")

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyDown}, fakeContext{index: -1, total: 3})
	assert.Equal(t, []types.Action{types.NavigateAction{Direction: "down"}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyDown}, fakeContext{index: -1, total: 0})
	assert.Empty(t, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyUp}, fakeContext{index: 0, total: 3})
	assert.Equal(t, []types.Action{types.NavigateAction{Direction: "up"}}, actions)
}

func TestEnterOnlyWithHighlight(t *testing.T) {
	h := New(types.DefaultKeyMap(), "")

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, fakeContext{index: -1, total: 2})
	assert.Empty(t, actions)
	assert.Empty(t, h.Value(), "enter never reaches the input")

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, fakeContext{index: 1, total: 2})
	assert.Equal(t, []types.Action{types.SubmitAction{Index: 1}}, actions)
}

func TestEscClosesAndCtrlKReopens(t *testing.T) {
	h := New(types.DefaultKeyMap(), "")
	ctx := fakeContext{index: -1}

	h.HandleKey(runes("acme"), ctx)
	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, ctx)
	assert.Equal(t, []types.Action{types.CloseAction{}}, actions)
	assert.Equal(t, types.ModeClosed, h.GetMode())

	// typing while closed does nothing
	actions, _ = h.HandleKey(runes("x"), ctx)
	assert.Empty(t, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlK}, ctx)
	assert.Equal(t, []types.Action{types.OpenAction{}}, actions)
	assert.Equal(t, types.ModeOverlay, h.GetMode())
	assert.Empty(t, h.Value(), "reopening starts with an empty query")
}

func TestClearAndQuit(t *testing.T) {
	h := New(types.DefaultKeyMap(), "")
	ctx := fakeContext{index: -1}

	h.HandleKey(runes("dav"), ctx)
	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlU}, ctx)
	assert.Equal(t, []types.Action{types.ClearQueryAction{}}, actions)
	assert.Empty(t, h.Value())

	// q is text while the overlay is open
	actions, _ = h.HandleKey(runes("q"), ctx)
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "q"}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlC}, ctx)
	assert.Equal(t, []types.Action{types.QuitAction{Force: true}}, actions)

	h.SwitchMode(types.ModeClosed, ctx)
	actions, _ = h.HandleKey(runes("q"), ctx)
	assert.Equal(t, []types.Action{types.QuitAction{}}, actions)
}

func TestHelpKey(t *testing.T) {
	h := New(types.DefaultKeyMap(), "")
	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyF1}, fakeContext{index: -1})
	assert.Equal(t, []types.Action{types.ToggleHelpAction{}}, actions)
}
