package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/m3rciful/ledgerbot/render"

	tg "github.com/m3rciful/ledgerbot/core/telegram"
	"github.com/m3rciful/ledgerbot/core/telegram/callbacks"
	"github.com/m3rciful/ledgerbot/core/telegram/commands"
	tghelpers "github.com/m3rciful/ledgerbot/core/telegram/helpers"
	"github.com/m3rciful/ledgerbot/core/telegram/router"
	"github.com/m3rciful/ledgerbot/core/telegram/ui"

	tele "gopkg.in/telebot.v4"
)

// send delivers an engine reply to the current chat, resolving its keyboard.
func send(c tele.Context, rep render.Reply) error {
	if markup := render.Markup(rep); markup != nil {
		return tghelpers.SendMD(c, rep.Text, markup)
	}
	return tghelpers.SendMD(c, rep.Text)
}

// fsmAdapter exposes the conversation engine to the message router.
type fsmAdapter struct{ app *App }

func (f fsmAdapter) InProgress(userID int64) bool {
	return f.app.engine.InProgress(userID)
}

func (f fsmAdapter) ManagerHandler(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	return send(c, f.app.engine.HandleText(ctx, c.Sender().ID, c.Text()))
}

// TelegramRunOptions assembles the registry, routes, middlewares, and
// lifecycle hooks for the shared Telegram runtime.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	reg := tg.NewRegistry()
	a.registerCommands(reg)
	a.registerCallbacks(reg)

	reg.SetTextFallback(func(c tele.Context) error {
		ctx := tghelpers.BuildContext(c)
		return send(c, a.engine.Fallback(ctx, c.Sender().ID, c.Text()))
	})
	reg.SetCallbackNotFound(a.UnknownCallback())

	fsm := fsmAdapter{app: a}

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: a.cfg.Core.Telegram.AdminID,
		OnAdminReject: func(c tele.Context) error {
			return tghelpers.SendText(c, "⛔ Команда доступна только администратору")
		},
	})
	routes = append(routes, router.TextRoutes(fsm, reg, router.TextOptions{
		UnknownText:     a.UnknownText(),
		UnknownDocument: a.UnknownDocument(),
	})...)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))

	onLimited := func(c tele.Context) error {
		return tghelpers.SendText(c, "⏳ Слишком много сообщений, подождите немного")
	}

	return tg.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Registry:    reg,
		Middlewares: tg.DefaultMiddlewares(a.cfg.CoreConfig(), onLimited),
		Routes:      routes,
		OnStart:     a.onStart,
		OnStop:      a.onStop,
	}, nil
}

func (a *App) registerCommands(reg *tg.Registry) {
	handle := func(fn func(ctx context.Context, c tele.Context) render.Reply) tele.HandlerFunc {
		return func(c tele.Context) error {
			ctx := tghelpers.BuildContext(c)
			return send(c, fn(ctx, c))
		}
	}

	reg.RegisterCommand("/start", commands.Command{
		Description: "Главное меню",
		Handler: handle(func(ctx context.Context, c tele.Context) render.Reply {
			return a.engine.Start(ctx, c.Sender().ID)
		}),
	})
	reg.RegisterCommand("/add", commands.Command{
		Description: "Добавить запись",
		Aliases:     []string{render.LabelAdd},
		Handler: handle(func(ctx context.Context, c tele.Context) render.Reply {
			return a.engine.Add(ctx, c.Sender().ID)
		}),
	})
	reg.RegisterCommand("/list", commands.Command{
		Description: "Показать записи",
		Aliases:     []string{render.LabelList},
		Handler: handle(func(ctx context.Context, c tele.Context) render.Reply {
			return a.engine.List(ctx, c.Sender().ID)
		}),
	})
	reg.RegisterCommand("/stats", commands.Command{
		Description: "Статистика",
		Aliases:     []string{render.LabelStats},
		Handler: handle(func(ctx context.Context, c tele.Context) render.Reply {
			return a.engine.Stats(ctx, c.Sender().ID, c.Message().Payload)
		}),
	})
	reg.RegisterCommand("/edit", commands.Command{
		Description: "Редактировать запись",
		Aliases:     []string{render.LabelEdit},
		Handler: handle(func(ctx context.Context, c tele.Context) render.Reply {
			return a.engine.Edit(ctx, c.Sender().ID)
		}),
	})
	reg.RegisterCommand("/delete", commands.Command{
		Description: "Удалить запись",
		Aliases:     []string{render.LabelDelete},
		Handler: handle(func(ctx context.Context, c tele.Context) render.Reply {
			return a.engine.Delete(ctx, c.Sender().ID)
		}),
	})
	reg.RegisterCommand("/export", commands.Command{
		Description: "Экспорт данных",
		Aliases:     []string{render.LabelExport},
		Handler: handle(func(ctx context.Context, c tele.Context) render.Reply {
			return a.engine.Export(ctx, c.Sender().ID)
		}),
	})
	reg.RegisterCommand("/quick", commands.Command{
		Description: "Быстрый расчет",
		Hidden:      true,
		Aliases:     []string{render.LabelQuick},
		Handler: handle(func(ctx context.Context, c tele.Context) render.Reply {
			return a.engine.QuickHint()
		}),
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Description: "Отменить операцию",
		Aliases:     []string{render.LabelMenu, render.LabelCancel},
		Handler: handle(func(ctx context.Context, c tele.Context) render.Reply {
			return a.engine.Cancel(ctx, c.Sender().ID)
		}),
	})
	reg.RegisterCommand("/backup", commands.Command{
		Description: "Дамп базы (JSON)",
		AdminOnly:   true,
		Hidden:      true,
		Handler:     a.backupHandler,
	})
}

func (a *App) registerCallbacks(reg *tg.Registry) {
	_ = reg.RegisterCallback(render.CallbackPage, func(c tele.Context) error {
		page, err := callbacks.PayloadInt(c)
		if err != nil {
			return nil
		}
		ctx := tghelpers.BuildContext(c)
		rep, changed := a.engine.Page(ctx, c.Sender().ID, page)
		if !changed {
			return nil
		}
		return tghelpers.EditOrSendMD(c, rep.Text, render.Markup(rep))
	})

	_ = reg.RegisterCallback(render.CallbackMenu, func(c tele.Context) error {
		ctx := tghelpers.BuildContext(c)
		rep := a.engine.Cancel(ctx, c.Sender().ID)
		if err := tghelpers.EditMD(c, render.MainMenuHint()); err != nil {
			return send(c, rep)
		}
		return tghelpers.SendMD(c, rep.Text, render.Markup(rep))
	})
}

// backupHandler dumps the whole ledger as indented JSON, the same shape the
// JSON snapshot backend persists.
func (a *App) backupHandler(c tele.Context) error {
	records := a.store.All()
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return tghelpers.SendText(c, "⚠️ Не удалось подготовить дамп")
	}
	return tghelpers.SendMD(c, fmt.Sprintf("```json\n%s\n```", data))
}

// UnknownText, UnknownDocument, and UnknownCallback implement
// ui.FallbackProvider for updates nothing else claimed.
func (a *App) UnknownText() tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx := tghelpers.BuildContext(c)
		return send(c, a.engine.Fallback(ctx, c.Sender().ID, c.Text()))
	}
}

func (a *App) UnknownDocument() tele.HandlerFunc {
	return func(c tele.Context) error {
		return tghelpers.SendText(c, "📎 Файлы не поддерживаются, отправьте текст")
	}
}

func (a *App) UnknownCallback() tele.HandlerFunc {
	return func(c tele.Context) error {
		return c.Respond(&tele.CallbackResponse{Text: "Кнопка устарела"})
	}
}

var _ ui.FallbackProvider = (*App)(nil)

func (a *App) onStart(ctx context.Context, rt tg.Runtime) error {
	ttl := time.Duration(a.cfg.Ledger.SessionTTLMinutes) * time.Minute
	if _, err := a.cron.AddFunc(a.cfg.Ledger.SweepSchedule, func() {
		a.engine.SweepSessions(context.Background(), ttl)
	}); err != nil {
		return fmt.Errorf("schedule session sweep: %w", err)
	}
	a.cron.Start()
	return nil
}

func (a *App) onStop(ctx context.Context, rt tg.Runtime) error {
	stopCtx := a.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
	}
	return a.store.Close()
}
