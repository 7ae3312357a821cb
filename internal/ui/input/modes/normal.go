package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"invtrack/internal/ui/input/types"
)

type NormalMode struct{}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyPgUp:
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyEnter:
		if ctx.CurrentProductID() != "" {
			return []types.Action{types.ToggleInfoAction{}}, true
		}
		return nil, false

	case tea.KeyEsc:
		if ctx.SearchTerm() != "" {
			return []types.Action{types.ClearFilterAction{}}, true
		}
		return nil, true

	case tea.KeyDelete:
		return m.deleteCurrent(ctx)
	}

	switch msg.String() {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "g":
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case "/", "ctrl+f", "F":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeFilter, Data: ctx.SearchTerm()}}, true

	case "a", "A":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeForm}}, true

	case "d", "x":
		return m.deleteCurrent(ctx)

	case "r", "R":
		return []types.Action{types.ReloadAction{}}, true

	case "i", "I":
		if ctx.CurrentProductID() != "" {
			return []types.Action{types.ToggleInfoAction{}}, true
		}
		return nil, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "H":
		return []types.Action{types.OpenHelpPagerAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true
	}

	return nil, false
}

// deleteCurrent asks for confirmation before deleting the product under the cursor
func (m *NormalMode) deleteCurrent(ctx types.Context) ([]types.Action, bool) {
	id := ctx.CurrentProductID()
	if id == "" {
		return nil, true
	}
	return []types.Action{types.ChangeModeAction{Mode: types.ModeDeleteConfirm, Data: id}}, true
}
