// Package render formats ledger data and dialogue prompts into user-facing
// Markdown text and keyboards. It holds no business logic: every function is
// a pure mapping from data to text, so the conversation engine can be tested
// without a transport.
package render

// Menu selects which keyboard accompanies a reply.
type Menu int

const (
	// MenuNone keeps whatever keyboard is currently shown.
	MenuNone Menu = iota
	// MenuMain shows the main action keyboard.
	MenuMain
	// MenuCancel shows a single cancel button.
	MenuCancel
	// MenuFields shows the editable field choices.
	MenuFields
	// MenuConfirm shows the delete confirmation choices.
	MenuConfirm
	// MenuBrowse attaches the inline pagination controls.
	MenuBrowse
)

// Reply is a transport-agnostic outbound message: text, the keyboard to show,
// and the pagination cursor when the browse controls are attached.
type Reply struct {
	Text  string
	Menu  Menu
	Page  int
	Pages int
}
