package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"crmsearch/internal/ui/input/types"
)

// ClosedMode is the host screen shown after the overlay is dismissed
type ClosedMode struct {
	keys types.KeyMap
}

func NewClosedMode(keys types.KeyMap) *ClosedMode {
	return &ClosedMode{keys: keys}
}

func (m *ClosedMode) Name() string {
	return "closed"
}

func (m *ClosedMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *ClosedMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ClosedMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.ForceQ):
		return []types.Action{types.QuitAction{Force: true}}, true

	case key.Matches(msg, m.keys.Quit), msg.Type == tea.KeyEsc:
		return []types.Action{types.QuitAction{}}, true

	case key.Matches(msg, m.keys.Open):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeOverlay}}, true

	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	}
	return nil, false
}
