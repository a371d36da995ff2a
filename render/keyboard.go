package render

import (
	"fmt"
	"strconv"

	"github.com/m3rciful/ledgerbot/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

// Callback keys of the browse controls.
const (
	CallbackPage = "lpage"
	CallbackMenu = "lmenu"
)

const pageButtonsPerRow = 5

// MainMenu builds the main action reply keyboard.
func MainMenu() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{LabelAdd, LabelStats},
		[]string{LabelList, LabelEdit},
		[]string{LabelDelete, LabelQuick},
		[]string{LabelExport},
	)
}

// CancelMenu builds a keyboard with a single cancel button.
func CancelMenu() *tele.ReplyMarkup {
	return keyboard.ReplyButtons([]string{LabelCancel})
}

// FieldMenu builds the editable field choice keyboard.
func FieldMenu() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{LabelFieldName, LabelFieldCost},
		[]string{LabelFieldExpenses, LabelFieldFinal},
		[]string{LabelCancel},
	)
}

// ConfirmMenu builds the delete confirmation keyboard.
func ConfirmMenu() *tele.ReplyMarkup {
	return keyboard.ReplyButtons([]string{"ДА", LabelCancel})
}

// BrowseMarkup builds the inline pagination controls: prev/next arrows, direct
// page buttons with the current page marked, and an exit-to-menu row.
func BrowseMarkup(page, pages int) *tele.ReplyMarkup {
	var rows [][]keyboard.InlineBtn

	if pages > 1 {
		rows = append(rows, []keyboard.InlineBtn{
			{Text: LabelPrev, Unique: CallbackPage, Data: strconv.Itoa(page - 1)},
			{Text: LabelNext, Unique: CallbackPage, Data: strconv.Itoa(page + 1)},
		})

		numbers := make([]keyboard.InlineBtn, 0, pages)
		for p := 1; p <= pages; p++ {
			text := strconv.Itoa(p)
			if p == page {
				text = fmt.Sprintf("· %d ·", p)
			}
			numbers = append(numbers, keyboard.InlineBtn{
				Text: text, Unique: CallbackPage, Data: strconv.Itoa(p),
			})
		}
		for i := 0; i < len(numbers); i += pageButtonsPerRow {
			end := i + pageButtonsPerRow
			if end > len(numbers) {
				end = len(numbers)
			}
			rows = append(rows, numbers[i:end])
		}
	}

	rows = append(rows, []keyboard.InlineBtn{
		{Text: LabelBrowseMenu, Unique: CallbackMenu, Data: "-"},
	})
	return keyboard.InlineButtonsRows(rows...)
}

// Markup resolves the keyboard for a reply, or nil when the current keyboard
// should be kept.
func Markup(r Reply) *tele.ReplyMarkup {
	switch r.Menu {
	case MenuMain:
		return MainMenu()
	case MenuCancel:
		return CancelMenu()
	case MenuFields:
		return FieldMenu()
	case MenuConfirm:
		return ConfirmMenu()
	case MenuBrowse:
		return BrowseMarkup(r.Page, r.Pages)
	}
	return nil
}
