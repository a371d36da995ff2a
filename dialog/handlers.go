package dialog

import (
	"context"
	"errors"

	"github.com/m3rciful/ledgerbot/ledger"
	"github.com/m3rciful/ledgerbot/render"
)

func (e *Engine) onAddName(ctx context.Context, userID int64, data Data, text string) render.Reply {
	if text == "" {
		return reply(render.PromptName(), render.MenuNone)
	}
	data.Draft.Name = text
	e.transition(ctx, userID, stateAddCost, data)
	return reply(render.PromptCost(), render.MenuCancel)
}

func (e *Engine) onAddCost(ctx context.Context, userID int64, data Data, text string) render.Reply {
	v, err := ledger.ParseAmount(text)
	if err != nil {
		return reply(render.BadNumber(), render.MenuNone)
	}
	data.Draft.Cost = v
	e.transition(ctx, userID, stateAddExpenses, data)
	return reply(render.PromptExpenses(), render.MenuCancel)
}

func (e *Engine) onAddExpenses(ctx context.Context, userID int64, data Data, text string) render.Reply {
	v, err := ledger.ParseAmount(text)
	if err != nil {
		return reply(render.BadNumber(), render.MenuNone)
	}
	data.Draft.Expenses = v
	e.transition(ctx, userID, stateAddFinal, data)
	return reply(render.PromptFinalPrice(), render.MenuCancel)
}

func (e *Engine) onAddFinal(ctx context.Context, userID int64, data Data, text string) render.Reply {
	v, err := ledger.ParseAmount(text)
	if err != nil {
		return reply(render.BadNumber(), render.MenuNone)
	}
	rec, err := e.store.Create(ctx, data.Draft.Name, data.Draft.Cost, data.Draft.Expenses, v)
	if err != nil {
		return e.storageFailure(ctx, userID, err)
	}
	return e.finish(userID, render.Created(rec))
}

func (e *Engine) onEditSelect(ctx context.Context, userID int64, text string) render.Reply {
	id, err := ledger.ParseID(text)
	if err != nil {
		return reply(render.BadID(), render.MenuNone)
	}
	rec, err := e.store.Get(id)
	if err != nil {
		return reply(render.NotFound(id), render.MenuNone)
	}
	e.transition(ctx, userID, stateEditField, Data{TargetID: rec.ID})
	return reply(render.PromptEditField(rec), render.MenuFields)
}

func (e *Engine) onEditField(ctx context.Context, userID int64, data Data, text string) render.Reply {
	field, ok := parseField(text)
	if !ok {
		return reply(render.UnknownField(), render.MenuNone)
	}
	data.EditField = field
	e.transition(ctx, userID, stateEditValue, data)
	return reply(render.PromptEditValue(field), render.MenuCancel)
}

func (e *Engine) onEditValue(ctx context.Context, userID int64, data Data, text string) render.Reply {
	var value ledger.Value
	if data.EditField.Numeric() {
		v, err := ledger.ParseAmount(text)
		if err != nil {
			return reply(render.BadNumber(), render.MenuNone)
		}
		value = ledger.Number(v)
	} else {
		if text == "" {
			return reply(render.PromptEditValue(data.EditField), render.MenuNone)
		}
		value = ledger.Text(text)
	}

	rec, err := e.store.UpdateField(ctx, data.TargetID, data.EditField, value)
	switch {
	case err == nil:
		return e.finish(userID, render.Updated(rec, data.EditField))
	case errors.Is(err, ledger.ErrNotFound):
		// The record vanished between selection and commit.
		return e.finish(userID, render.NotFound(data.TargetID))
	default:
		return e.storageFailure(ctx, userID, err)
	}
}

func (e *Engine) onDeleteSelect(ctx context.Context, userID int64, text string) render.Reply {
	id, err := ledger.ParseID(text)
	if err != nil {
		return reply(render.BadID(), render.MenuNone)
	}
	rec, err := e.store.Get(id)
	if err != nil {
		return reply(render.NotFound(id), render.MenuNone)
	}
	e.transition(ctx, userID, stateDeleteConfirm, Data{TargetID: rec.ID, Draft: Draft{Name: rec.Name}})
	return reply(render.ConfirmDelete(rec), render.MenuConfirm)
}

func (e *Engine) onDeleteConfirm(ctx context.Context, userID int64, data Data, text string) render.Reply {
	if !isAffirmative(text) {
		// Anything but an explicit yes declines.
		return e.finish(userID, render.DeleteDeclined())
	}
	removed, err := e.store.Delete(ctx, data.TargetID)
	if err != nil {
		return e.storageFailure(ctx, userID, err)
	}
	if !removed {
		return e.finish(userID, render.NotFound(data.TargetID))
	}
	return e.finish(userID, render.Deleted(data.Draft.Name))
}

func (e *Engine) onBrowse(ctx context.Context, userID int64, data Data, text string) render.Reply {
	switch {
	case isNext(text):
		if data.Page >= data.Pages {
			return reply(render.LastPage(), render.MenuNone)
		}
		rep, _ := e.Page(ctx, userID, data.Page+1)
		return rep
	case isPrev(text):
		if data.Page <= 1 {
			return reply(render.FirstPage(), render.MenuNone)
		}
		rep, _ := e.Page(ctx, userID, data.Page-1)
		return rep
	}
	return reply(render.BrowseHint(), render.MenuNone)
}
