package modes

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"crmsearch/internal/ui/input/types"
)

// OverlayMode owns the query input while the overlay is open.
// Keys it does not claim go to the text input.
type OverlayMode struct {
	keys      types.KeyMap
	textInput *textinput.Model
}

func NewOverlayMode(keys types.KeyMap, ti *textinput.Model) *OverlayMode {
	return &OverlayMode{keys: keys, textInput: ti}
}

func (m *OverlayMode) Name() string {
	return "search"
}

func (m *OverlayMode) Enter(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Reset()
		m.textInput.Focus()
	}
	return []types.Action{types.OpenAction{}}
}

func (m *OverlayMode) Exit(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Blur()
	}
	return nil
}

func (m *OverlayMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.ForceQ):
		return []types.Action{types.QuitAction{Force: true}}, true

	case key.Matches(msg, m.keys.Close):
		return []types.Action{
			types.CloseAction{},
			types.ChangeModeAction{Mode: types.ModeClosed},
		}, true

	case key.Matches(msg, m.keys.Up):
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case key.Matches(msg, m.keys.Down):
		if ctx.TotalItems() == 0 {
			return nil, true
		}
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case key.Matches(msg, m.keys.PageUp):
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case key.Matches(msg, m.keys.PageDown):
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case key.Matches(msg, m.keys.Select):
		// Enter with nothing highlighted does nothing
		if ctx.CurrentIndex() < 0 {
			return nil, true
		}
		return []types.Action{types.SubmitAction{Index: ctx.CurrentIndex()}}, true

	case key.Matches(msg, m.keys.Clear):
		if m.textInput != nil {
			m.textInput.Reset()
		}
		return []types.Action{types.ClearQueryAction{}}, true

	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	}

	return nil, false
}
