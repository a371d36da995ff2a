package dialog

import (
	"context"
	"strings"
	"time"

	"github.com/m3rciful/ledgerbot/ledger"
	"github.com/m3rciful/ledgerbot/render"

	"github.com/m3rciful/ledgerbot/core/logger"
	"github.com/m3rciful/ledgerbot/core/telegram/state"
	"log/slog"
)

// statsDateLayouts are the accepted /stats argument formats; the second is
// what Russian users actually type.
var statsDateLayouts = []string{ledger.DateLayout, "2006-1-2", "02.01.2006", "2.1.2006"}

// Engine drives one dialogue state machine per user and owns the session
// store. All methods are safe for concurrent use by different users.
type Engine struct {
	store    *ledger.Store
	sessions *state.Manager[Data]
	pageSize int
}

// NewEngine builds an engine over the given ledger. pageSize controls the
// browse view; non-positive values fall back to 5.
func NewEngine(store *ledger.Store, pageSize int) *Engine {
	if pageSize < 1 {
		pageSize = 5
	}
	return &Engine{
		store:    store,
		sessions: state.NewManager[Data](),
		pageSize: pageSize,
	}
}

// InProgress reports whether the user has an active dialogue session.
func (e *Engine) InProgress(userID int64) bool {
	return e.sessions.InProgress(userID)
}

// Sessions returns the number of live dialogue sessions.
func (e *Engine) Sessions() int { return e.sessions.Len() }

// SweepSessions evicts sessions idle longer than maxIdle.
func (e *Engine) SweepSessions(ctx context.Context, maxIdle time.Duration) int {
	evicted := e.sessions.Sweep(maxIdle)
	if evicted > 0 {
		logger.Info(ctx, "service.dialog", "session.sweep",
			slog.Int("evicted", evicted),
			slog.Int("sessions", e.sessions.Len()),
		)
	}
	return evicted
}

func reply(text string, menu render.Menu) render.Reply {
	return render.Reply{Text: text, Menu: menu}
}

// Start clears any session and shows the greeting with the main menu.
func (e *Engine) Start(ctx context.Context, userID int64) render.Reply {
	e.sessions.Clear(userID)
	return reply(render.Greeting(), render.MenuMain)
}

// Cancel ends any active session, discarding partially entered data.
func (e *Engine) Cancel(ctx context.Context, userID int64) render.Reply {
	e.sessions.Clear(userID)
	return reply(render.Cancelled(), render.MenuMain)
}

// Add opens the record creation flow.
func (e *Engine) Add(ctx context.Context, userID int64) render.Reply {
	e.transition(ctx, userID, stateAddName, Data{})
	return reply(render.PromptName(), render.MenuCancel)
}

// Edit opens the edit flow, or reports an empty ledger.
func (e *Engine) Edit(ctx context.Context, userID int64) render.Reply {
	if e.store.Count() == 0 {
		e.sessions.Clear(userID)
		return reply(render.EmptyLedger(), render.MenuMain)
	}
	e.transition(ctx, userID, stateEditSelect, Data{})
	return reply(render.PromptEditID(), render.MenuCancel)
}

// Delete opens the delete flow, or reports an empty ledger.
func (e *Engine) Delete(ctx context.Context, userID int64) render.Reply {
	if e.store.Count() == 0 {
		e.sessions.Clear(userID)
		return reply(render.EmptyLedger(), render.MenuMain)
	}
	e.transition(ctx, userID, stateDeleteSelect, Data{})
	return reply(render.PromptDeleteID(), render.MenuCancel)
}

// List opens the browse view at the first page.
func (e *Engine) List(ctx context.Context, userID int64) render.Reply {
	rep, _ := e.Page(ctx, userID, 1)
	return rep
}

// Page jumps the browse view to the requested page, clamped to bounds. The
// second result is false when the view is already showing that page, so the
// caller can skip a no-op message edit.
func (e *Engine) Page(ctx context.Context, userID int64, requested int) (render.Reply, bool) {
	total := e.store.Count()
	if total == 0 {
		e.sessions.Clear(userID)
		return reply(render.EmptyLedger(), render.MenuMain), true
	}

	pages := (total + e.pageSize - 1) / e.pageSize
	page := requested
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	prev := e.sessions.Get(userID)
	if prev.State == stateBrowse && prev.Data.Page == page && prev.Data.Pages == pages {
		return render.Reply{Menu: render.MenuBrowse, Page: page, Pages: pages}, false
	}

	records, _ := e.store.List(page, e.pageSize)
	e.transition(ctx, userID, stateBrowse, Data{Page: page, Pages: pages})
	return render.Reply{
		Text:  render.ListPage(records, page, pages, total),
		Menu:  render.MenuBrowse,
		Page:  page,
		Pages: pages,
	}, true
}

// Stats renders overall totals with the per-day summary, or a single-day
// drill-down when arg carries a date.
func (e *Engine) Stats(ctx context.Context, userID int64, arg string) render.Reply {
	records := e.store.All()
	if len(records) == 0 {
		return reply(render.EmptyLedger(), render.MenuMain)
	}

	arg = strings.TrimSpace(arg)
	if arg == "" {
		totals, _ := ledger.Sum(records)
		logger.Debug(ctx, "service.stats", "stats.view",
			slog.Int("records", totals.Count),
		)
		text := render.StatsCard(totals) + "\n\n" + render.DateSummary(ledger.ByDate(records, ""))
		return reply(text, render.MenuMain)
	}

	date, ok := parseStatsDate(arg)
	if !ok {
		return reply(render.BadDate(), render.MenuNone)
	}
	buckets := ledger.ByDate(records, date)
	logger.Debug(ctx, "service.stats", "stats.drilldown",
		slog.String("date", date),
		slog.Int("records", len(buckets)),
	)
	if len(buckets) == 0 {
		return reply(render.NoRecordsForDate(date), render.MenuNone)
	}
	return reply(render.DateDrilldown(buckets[0]), render.MenuNone)
}

// Export renders the full plain-text report of all records.
func (e *Engine) Export(ctx context.Context, userID int64) render.Reply {
	records := e.store.All()
	if len(records) == 0 {
		return reply(render.NothingToExport(), render.MenuNone)
	}
	return reply(render.ExportReport(records), render.MenuNone)
}

// QuickHint explains the three-number calculation format.
func (e *Engine) QuickHint() render.Reply {
	return reply(render.QuickCalcHint(), render.MenuNone)
}

// Fallback handles text from a user with no active session that matched no
// command: the quick calculation, or a hint with the main menu.
func (e *Engine) Fallback(ctx context.Context, userID int64, text string) render.Reply {
	if q, ok := ledger.ParseQuickCalc(text); ok {
		logger.Debug(ctx, "service.dialog", "quickcalc",
			slog.String("status", "ok"),
		)
		return reply(render.QuickCalcCard(q), render.MenuNone)
	}
	return reply(render.UnknownHint(), render.MenuMain)
}

// HandleText advances the user's state machine with the next inbound message.
// The global cancel rule applies before any per-state handling.
func (e *Engine) HandleText(ctx context.Context, userID int64, text string) render.Reply {
	text = strings.TrimSpace(text)
	if isCancel(text) {
		return e.Cancel(ctx, userID)
	}

	sess := e.sessions.Get(userID)
	switch sess.State {
	case stateAddName:
		return e.onAddName(ctx, userID, sess.Data, text)
	case stateAddCost:
		return e.onAddCost(ctx, userID, sess.Data, text)
	case stateAddExpenses:
		return e.onAddExpenses(ctx, userID, sess.Data, text)
	case stateAddFinal:
		return e.onAddFinal(ctx, userID, sess.Data, text)
	case stateEditSelect:
		return e.onEditSelect(ctx, userID, text)
	case stateEditField:
		return e.onEditField(ctx, userID, sess.Data, text)
	case stateEditValue:
		return e.onEditValue(ctx, userID, sess.Data, text)
	case stateDeleteSelect:
		return e.onDeleteSelect(ctx, userID, text)
	case stateDeleteConfirm:
		return e.onDeleteConfirm(ctx, userID, sess.Data, text)
	case stateBrowse:
		return e.onBrowse(ctx, userID, sess.Data, text)
	}
	return e.Fallback(ctx, userID, text)
}

func (e *Engine) transition(ctx context.Context, userID int64, st state.State, data Data) {
	e.sessions.Update(userID, func(s *state.Session[Data]) {
		s.State = st
		s.Data = data
	})
	logger.Debug(ctx, "service.dialog", "transition",
		slog.String("state", string(st)),
	)
}

// finish clears the session and returns to the main menu with the given card.
func (e *Engine) finish(userID int64, text string) render.Reply {
	e.sessions.Clear(userID)
	return reply(text, render.MenuMain)
}

func (e *Engine) storageFailure(ctx context.Context, userID int64, err error) render.Reply {
	logger.Error(ctx, "service.dialog", "storage",
		slog.String("status", "fail"),
		slog.String("err", err.Error()),
	)
	return e.finish(userID, render.StorageFailed())
}

func parseStatsDate(arg string) (string, bool) {
	for _, layout := range statsDateLayouts {
		if t, err := time.Parse(layout, arg); err == nil {
			return t.Format(ledger.DateLayout), true
		}
	}
	return "", false
}
