package types

import "invtrack/internal/domain"

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// UpdateTextAction carries the live value of the filter line
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type ClearFilterAction struct{}

func (a ClearFilterAction) Type() string { return "clear_filter" }

// Form actions
type UpdateDraftAction struct {
	Draft domain.ProductDraft
}

func (a UpdateDraftAction) Type() string { return "update_draft" }

type SubmitFormAction struct {
	Draft domain.ProductDraft
}

func (a SubmitFormAction) Type() string { return "submit_form" }

// CloseFormAction leaves the form; the draft stays pending
type CloseFormAction struct{}

func (a CloseFormAction) Type() string { return "close_form" }

// Delete actions
type DeleteProductAction struct {
	ID domain.ProductID
}

func (a DeleteProductAction) Type() string { return "delete_product" }

type DeclineDeleteAction struct {
	ID domain.ProductID
}

func (a DeclineDeleteAction) Type() string { return "decline_delete" }

// Command actions
type ReloadAction struct{}

func (a ReloadAction) Type() string { return "reload" }

type ToggleInfoAction struct{}

func (a ToggleInfoAction) Type() string { return "toggle_info" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type OpenHelpPagerAction struct{}

func (a OpenHelpPagerAction) Type() string { return "open_help_pager" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
