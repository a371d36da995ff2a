package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m3rciful/ledgerbot/ledger"
)

func TestCreatedCard(t *testing.T) {
	rec := ledger.Record{
		ID: 1, Name: "Widget", Cost: 100, Expenses: 20, FinalPrice: 150,
		Profit: 30, Date: "2026-08-29",
	}
	card := Created(rec)
	require.Contains(t, card, "Запись добавлена")
	require.Contains(t, card, "Widget")
	require.Contains(t, card, "30.00 руб")
	require.Contains(t, card, "20.0%")
}

func TestCardsEscapeMarkdownInNames(t *testing.T) {
	rec := ledger.Record{ID: 1, Name: "a_b*c", FinalPrice: 1}
	for _, text := range []string{RecordCard(rec), Created(rec), ConfirmDelete(rec)} {
		require.NotContains(t, text, "a_b*c", "raw name must not leak into markdown")
	}
}

func TestListPageLayout(t *testing.T) {
	records := []ledger.Record{
		{ID: 6, Name: "x", FinalPrice: 3, Profit: 1},
		{ID: 7, Name: "y", FinalPrice: 4, Profit: 2},
	}
	page := ListPage(records, 2, 2, 7)
	require.Contains(t, page, "стр. 2 из 2")
	require.Contains(t, page, "#6")
	require.Contains(t, page, "#7")
	require.False(t, strings.HasSuffix(page, "\n"))
}

func TestExportReportShape(t *testing.T) {
	report := ExportReport([]ledger.Record{
		{ID: 1, Name: "Widget", Profit: 30, Date: "2026-08-29"},
	})
	require.True(t, strings.HasPrefix(report, "```\n"))
	require.True(t, strings.HasSuffix(report, "\n```"))
	require.Contains(t, report, "2026-08-29 | Widget | Прибыль: 30.00 руб")
}

func TestMarkupResolution(t *testing.T) {
	require.Nil(t, Markup(Reply{Menu: MenuNone}))
	require.NotNil(t, Markup(Reply{Menu: MenuMain}))

	browse := Markup(Reply{Menu: MenuBrowse, Page: 1, Pages: 3})
	require.NotNil(t, browse)
	// arrows + one page-number row + menu row
	require.Len(t, browse.InlineKeyboard, 3)

	single := Markup(Reply{Menu: MenuBrowse, Page: 1, Pages: 1})
	require.Len(t, single.InlineKeyboard, 1, "single page shows only the menu row")
}
