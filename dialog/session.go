// Package dialog is the conversation engine: one finite-state machine per
// user, fed raw inbound text, driving ledger mutations and producing
// transport-agnostic replies. Telegram types never appear here.
package dialog

import (
	"strings"

	"github.com/m3rciful/ledgerbot/ledger"
	"github.com/m3rciful/ledgerbot/render"

	"github.com/m3rciful/ledgerbot/core/telegram/state"
)

// Dialogue states. The add flow collects the draft field by field; edit and
// delete first resolve a target record; browse keeps a page cursor.
const (
	stateAddName       state.State = "add.name"
	stateAddCost       state.State = "add.cost"
	stateAddExpenses   state.State = "add.expenses"
	stateAddFinal      state.State = "add.final_price"
	stateEditSelect    state.State = "edit.select_record"
	stateEditField     state.State = "edit.select_field"
	stateEditValue     state.State = "edit.input_value"
	stateDeleteSelect  state.State = "delete.select_record"
	stateDeleteConfirm state.State = "delete.confirm"
	stateBrowse        state.State = "browse.page"
)

// Draft accumulates the add-flow fields already collected. Fields beyond the
// current state are zero and never read.
type Draft struct {
	Name     string
	Cost     float64
	Expenses float64
}

// Data is the typed session payload: the draft under construction, the record
// and field targeted by an edit or delete, and the browse cursor.
type Data struct {
	Draft     Draft
	TargetID  int
	EditField ledger.Field
	Page      int
	Pages     int
}

// cancelTokens end any session from any state, discarding the draft.
var cancelTokens = map[string]struct{}{
	"/cancel": {},
	"отмена":  {},
	"cancel":  {},
	"меню":    {},
}

func isCancel(text string) bool {
	switch text {
	case render.LabelCancel, render.LabelMenu, render.LabelBrowseMenu:
		return true
	}
	_, ok := cancelTokens[strings.ToLower(text)]
	return ok
}

// affirmTokens confirm a pending deletion; anything else declines.
var affirmTokens = map[string]struct{}{
	"да":      {},
	"yes":     {},
	"y":       {},
	"удалить": {},
}

func isAffirmative(text string) bool {
	_, ok := affirmTokens[strings.ToLower(text)]
	return ok
}

// parseField maps a keyboard label or a bare word to an editable field.
func parseField(text string) (ledger.Field, bool) {
	switch text {
	case render.LabelFieldName:
		return ledger.FieldName, true
	case render.LabelFieldCost:
		return ledger.FieldCost, true
	case render.LabelFieldExpenses:
		return ledger.FieldExpenses, true
	case render.LabelFieldFinal:
		return ledger.FieldFinalPrice, true
	}
	switch strings.ToLower(text) {
	case "название":
		return ledger.FieldName, true
	case "входная цена", "цена":
		return ledger.FieldCost, true
	case "расходы":
		return ledger.FieldExpenses, true
	case "итоговая цена", "итог":
		return ledger.FieldFinalPrice, true
	}
	return "", false
}

func isNext(text string) bool {
	if text == render.LabelNext {
		return true
	}
	switch strings.ToLower(text) {
	case "далее", "вперед", "вперёд":
		return true
	}
	return false
}

func isPrev(text string) bool {
	if text == render.LabelPrev {
		return true
	}
	return strings.ToLower(text) == "назад"
}
