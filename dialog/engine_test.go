package dialog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/m3rciful/ledgerbot/ledger"
	"github.com/m3rciful/ledgerbot/ledger/snapshot"
	"github.com/m3rciful/ledgerbot/render"
)

const userID int64 = 42

func newTestEngine(t *testing.T, pageSize int) (*Engine, *ledger.Store, *snapshot.Memory) {
	t.Helper()
	snap := snapshot.NewMemory()
	store, err := ledger.Open(context.Background(), snap)
	require.NoError(t, err)
	return NewEngine(store, pageSize), store, snap
}

func seed(t *testing.T, store *ledger.Store, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := store.Create(context.Background(), "Товар", 100, 20, 150)
		require.NoError(t, err)
	}
}

func TestAddFlowCreatesRecord(t *testing.T) {
	e, store, _ := newTestEngine(t, 5)
	ctx := context.Background()

	rep := e.Add(ctx, userID)
	require.Equal(t, render.PromptName(), rep.Text)
	require.True(t, e.InProgress(userID))

	rep = e.HandleText(ctx, userID, "Widget")
	require.Equal(t, render.PromptCost(), rep.Text)
	rep = e.HandleText(ctx, userID, "100")
	require.Equal(t, render.PromptExpenses(), rep.Text)
	rep = e.HandleText(ctx, userID, "20")
	require.Equal(t, render.PromptFinalPrice(), rep.Text)
	rep = e.HandleText(ctx, userID, "150")

	require.Contains(t, rep.Text, "Запись добавлена")
	require.Contains(t, rep.Text, "30.00 руб")
	require.Contains(t, rep.Text, "20.0%")
	require.False(t, e.InProgress(userID))

	rec, err := store.Get(1)
	require.NoError(t, err)
	require.Equal(t, "Widget", rec.Name)
	require.InDelta(t, 30, rec.Profit, 1e-9)
}

func TestBadNumberKeepsStateAndDraft(t *testing.T) {
	e, store, _ := newTestEngine(t, 5)
	ctx := context.Background()

	e.Add(ctx, userID)
	e.HandleText(ctx, userID, "Widget")

	rep := e.HandleText(ctx, userID, "abc")
	require.Equal(t, render.BadNumber(), rep.Text)
	require.True(t, e.InProgress(userID))

	// Recovery continues the flow with the name retained.
	e.HandleText(ctx, userID, "100")
	e.HandleText(ctx, userID, "20")
	e.HandleText(ctx, userID, "150")

	rec, err := store.Get(1)
	require.NoError(t, err)
	require.Equal(t, "Widget", rec.Name)
}

func TestCancelMidDraftDiscardsEverything(t *testing.T) {
	e, store, _ := newTestEngine(t, 5)
	ctx := context.Background()

	e.Add(ctx, userID)
	e.HandleText(ctx, userID, "Widget")
	e.HandleText(ctx, userID, "100")

	for _, token := range []string{render.LabelCancel, render.LabelMenu, "отмена", "/cancel", "ОТМЕНА"} {
		e.Add(ctx, userID)
		e.HandleText(ctx, userID, "Widget")
		rep := e.HandleText(ctx, userID, token)
		require.Equal(t, render.Cancelled(), rep.Text, "token %q", token)
		require.False(t, e.InProgress(userID), "token %q", token)
	}
	require.Equal(t, 0, store.Count())
}

func TestEditFlow(t *testing.T) {
	e, store, _ := newTestEngine(t, 5)
	ctx := context.Background()
	seed(t, store, 2)

	rep := e.Edit(ctx, userID)
	require.Equal(t, render.PromptEditID(), rep.Text)

	rep = e.HandleText(ctx, userID, "2")
	require.Contains(t, rep.Text, "Выберите поле")
	require.Equal(t, render.MenuFields, rep.Menu)

	rep = e.HandleText(ctx, userID, render.LabelFieldCost)
	require.Contains(t, rep.Text, "новое значение")

	rep = e.HandleText(ctx, userID, "250")
	require.Contains(t, rep.Text, "Запись обновлена")
	require.False(t, e.InProgress(userID))

	rec, err := store.Get(2)
	require.NoError(t, err)
	require.Equal(t, 250.0, rec.Cost)
	require.InDelta(t, 150-250-20, rec.Profit, 1e-9)

	untouched, err := store.Get(1)
	require.NoError(t, err)
	require.Equal(t, 100.0, untouched.Cost)
}

func TestEditUnknownIDStaysInState(t *testing.T) {
	e, store, _ := newTestEngine(t, 5)
	ctx := context.Background()
	seed(t, store, 1)

	e.Edit(ctx, userID)

	rep := e.HandleText(ctx, userID, "99")
	require.Equal(t, render.NotFound(99), rep.Text)
	require.Equal(t, stateEditSelect, e.sessions.StateOf(userID))

	rep = e.HandleText(ctx, userID, "мусор")
	require.Equal(t, render.BadID(), rep.Text)
	require.Equal(t, stateEditSelect, e.sessions.StateOf(userID))
}

func TestEditNameField(t *testing.T) {
	e, store, _ := newTestEngine(t, 5)
	ctx := context.Background()
	seed(t, store, 1)

	e.Edit(ctx, userID)
	e.HandleText(ctx, userID, "1")
	e.HandleText(ctx, userID, "название")
	rep := e.HandleText(ctx, userID, "Новое имя")
	require.Contains(t, rep.Text, "Запись обновлена")

	rec, err := store.Get(1)
	require.NoError(t, err)
	require.Equal(t, "Новое имя", rec.Name)
}

func TestDeleteConfirmAndDecline(t *testing.T) {
	e, store, _ := newTestEngine(t, 5)
	ctx := context.Background()
	seed(t, store, 2)

	e.Delete(ctx, userID)
	rep := e.HandleText(ctx, userID, "1")
	require.Contains(t, rep.Text, "Удалить запись #1")
	require.Equal(t, render.MenuConfirm, rep.Menu)

	rep = e.HandleText(ctx, userID, "нет")
	require.Equal(t, render.DeleteDeclined(), rep.Text)
	require.False(t, e.InProgress(userID))
	require.Equal(t, 2, store.Count())

	seed(t, store, 2) // one record per affirmative token below
	for _, token := range []string{"да", "YES", "y", "Удалить"} {
		e.Delete(ctx, userID)
		e.HandleText(ctx, userID, "1")
		rep = e.HandleText(ctx, userID, token)
		require.Contains(t, rep.Text, "удалена", "token %q", token)
	}
	require.Equal(t, 0, store.Count())
}

func TestDeleteRenumbersVisibleIDs(t *testing.T) {
	e, store, _ := newTestEngine(t, 5)
	ctx := context.Background()
	seed(t, store, 3)

	e.Delete(ctx, userID)
	e.HandleText(ctx, userID, "2")
	e.HandleText(ctx, userID, "да")

	all := store.All()
	require.Len(t, all, 2)
	require.Equal(t, []int{1, 2}, []int{all[0].ID, all[1].ID})
}

func TestBrowsePaginationClampsAtBounds(t *testing.T) {
	e, store, _ := newTestEngine(t, 5)
	ctx := context.Background()
	seed(t, store, 7)

	rep := e.List(ctx, userID)
	require.Contains(t, rep.Text, "стр. 1 из 2")
	require.Equal(t, render.MenuBrowse, rep.Menu)
	require.Equal(t, 1, rep.Page)
	require.Equal(t, 2, rep.Pages)

	rep = e.HandleText(ctx, userID, render.LabelPrev)
	require.Equal(t, render.FirstPage(), rep.Text)

	rep = e.HandleText(ctx, userID, render.LabelNext)
	require.Contains(t, rep.Text, "стр. 2 из 2")

	rep = e.HandleText(ctx, userID, render.LabelNext)
	require.Equal(t, render.LastPage(), rep.Text)

	rep = e.HandleText(ctx, userID, "назад")
	require.Contains(t, rep.Text, "стр. 1 из 2")

	rep = e.HandleText(ctx, userID, render.LabelBrowseMenu)
	require.Equal(t, render.Cancelled(), rep.Text)
	require.False(t, e.InProgress(userID))
}

func TestPageJumpReportsNoChange(t *testing.T) {
	e, store, _ := newTestEngine(t, 5)
	ctx := context.Background()
	seed(t, store, 7)

	_, changed := e.Page(ctx, userID, 1)
	require.True(t, changed)
	_, changed = e.Page(ctx, userID, 1)
	require.False(t, changed)
	_, changed = e.Page(ctx, userID, 99)
	require.True(t, changed, "clamped jump to the last page")
	rep, _ := e.Page(ctx, userID, 2)
	require.Equal(t, 2, rep.Page)
}

func TestQuickCalcFallback(t *testing.T) {
	e, store, _ := newTestEngine(t, 5)
	ctx := context.Background()

	rep := e.Fallback(ctx, userID, "1000 200 1500")
	require.Contains(t, rep.Text, "Результат расчета")
	require.Contains(t, rep.Text, "300.00 руб")
	require.Contains(t, rep.Text, "20.0%")
	require.Equal(t, 0, store.Count(), "quick calculation never writes to the ledger")

	rep = e.Fallback(ctx, userID, "привет")
	require.Equal(t, render.UnknownHint(), rep.Text)
	require.Equal(t, render.MenuMain, rep.Menu)
}

func TestStatsEmptyAndSummary(t *testing.T) {
	e, store, _ := newTestEngine(t, 5)
	ctx := context.Background()

	rep := e.Stats(ctx, userID, "")
	require.Equal(t, render.EmptyLedger(), rep.Text)

	seed(t, store, 2)
	rep = e.Stats(ctx, userID, "")
	require.Contains(t, rep.Text, "Всего записей: 2")
	require.Contains(t, rep.Text, "Статистика по дням")
}

func TestStatsDateDrilldown(t *testing.T) {
	e, store, _ := newTestEngine(t, 5)
	ctx := context.Background()
	seed(t, store, 1)

	date := store.All()[0].Date
	day, err := time.Parse(ledger.DateLayout, date)
	require.NoError(t, err)

	rep := e.Stats(ctx, userID, day.Format("02.01.2006"))
	require.Contains(t, rep.Text, "Статистика за "+date)

	rep = e.Stats(ctx, userID, "2001-01-01")
	require.Equal(t, render.NoRecordsForDate("2001-01-01"), rep.Text)

	rep = e.Stats(ctx, userID, "не дата")
	require.Equal(t, render.BadDate(), rep.Text)
}

func TestStorageFailureSurfacesAndEndsSession(t *testing.T) {
	e, store, snap := newTestEngine(t, 5)
	ctx := context.Background()
	seed(t, store, 1)

	snap.FailSave = errors.New("disk full")

	e.Add(ctx, userID)
	e.HandleText(ctx, userID, "Widget")
	e.HandleText(ctx, userID, "100")
	e.HandleText(ctx, userID, "20")
	rep := e.HandleText(ctx, userID, "150")

	require.Equal(t, render.StorageFailed(), rep.Text)
	require.False(t, e.InProgress(userID))
	require.Equal(t, 1, store.Count(), "in-memory ledger keeps last-known-good state")
}

func TestExportReport(t *testing.T) {
	e, store, _ := newTestEngine(t, 5)
	ctx := context.Background()

	rep := e.Export(ctx, userID)
	require.Equal(t, render.NothingToExport(), rep.Text)

	seed(t, store, 1)
	rep = e.Export(ctx, userID)
	require.Contains(t, rep.Text, "ФИНАНСОВЫЙ ОТЧЕТ")
	require.Contains(t, rep.Text, "Товар")
}

func TestSessionSweepEvictsIdle(t *testing.T) {
	e, _, _ := newTestEngine(t, 5)
	ctx := context.Background()

	e.Add(ctx, userID)
	require.Equal(t, 1, e.Sessions())

	require.Equal(t, 0, e.SweepSessions(ctx, time.Hour))

	time.Sleep(5 * time.Millisecond)
	require.Equal(t, 1, e.SweepSessions(ctx, time.Millisecond))
	require.False(t, e.InProgress(userID))
}
