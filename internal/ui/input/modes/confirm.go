package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"invtrack/internal/domain"
	"invtrack/internal/ui/input/types"
)

// ConfirmMode asks y/n before a product is deleted
type ConfirmMode struct {
	target domain.ProductID
}

func NewConfirmMode() *ConfirmMode {
	return &ConfirmMode{}
}

func (m *ConfirmMode) Name() string {
	return "delete-confirm"
}

// Enter remembers the product under the cursor
func (m *ConfirmMode) Enter(ctx types.Context) []types.Action {
	m.target = ctx.CurrentProductID()
	return nil
}

func (m *ConfirmMode) Exit(ctx types.Context) []types.Action {
	return nil
}

// Target is the product awaiting confirmation
func (m *ConfirmMode) Target() domain.ProductID {
	return m.target
}

func (m *ConfirmMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "y", "Y":
		return []types.Action{
			types.DeleteProductAction{ID: m.target},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "n", "N", "esc":
		return []types.Action{
			types.DeclineDeleteAction{ID: m.target},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}

	// Any other key is swallowed; the prompt stays up
	return nil, true
}
