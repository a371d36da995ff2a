package render

import (
	"fmt"
	"strings"

	"github.com/m3rciful/ledgerbot/ledger"

	"github.com/m3rciful/ledgerbot/core/telegram/format"
)

// Menu button labels. They double as command aliases, so pressing a button is
// equivalent to the slash command it maps to.
const (
	LabelAdd    = "📊 Добавить запись"
	LabelList   = "📋 Записи"
	LabelStats  = "📈 Статистика"
	LabelEdit   = "✏️ Редактировать"
	LabelDelete = "🗑 Удалить запись"
	LabelExport = "💾 Экспорт данных"
	LabelQuick  = "💰 Быстрый расчет"
	LabelMenu   = "🏠 Главное меню"
	LabelCancel = "❌ Отмена"

	LabelPrev       = "⬅️ Назад"
	LabelNext       = "➡️ Далее"
	LabelBrowseMenu = "🏠 Меню"

	LabelFieldName     = "📦 Название"
	LabelFieldCost     = "💵 Входная цена"
	LabelFieldExpenses = "💸 Расходы"
	LabelFieldFinal    = "🏷️ Итоговая цена"
)

// FieldLabel returns the button label for an editable record field.
func FieldLabel(f ledger.Field) string {
	switch f {
	case ledger.FieldName:
		return LabelFieldName
	case ledger.FieldCost:
		return LabelFieldCost
	case ledger.FieldExpenses:
		return LabelFieldExpenses
	case ledger.FieldFinalPrice:
		return LabelFieldFinal
	}
	return string(f)
}

func escape(s string) string {
	out, err := format.EscapeMarkdown(s, format.MarkdownV1, "")
	if err != nil {
		return s
	}
	return out
}

func money(v float64) string { return fmt.Sprintf("%.2f руб", v) }

func percent(v float64) string { return fmt.Sprintf("%.1f%%", v) }

// Greeting is the /start card shown together with the main menu.
func Greeting() string {
	return "🤖 *Финансовый менеджер*\n\n" +
		"Учет доходов, расходов и прибыли\n\n" +
		"Выберите действие:"
}

// MainMenuHint is a short line used when only the keyboard needs refreshing.
func MainMenuHint() string { return "Выберите действие:" }

// Prompts of the add flow.
func PromptName() string       { return "📝 Введите название товара:" }
func PromptCost() string       { return "💵 Введите входную цену:" }
func PromptExpenses() string   { return "💸 Введите расходы:" }
func PromptFinalPrice() string { return "🏷️ Введите итоговую цену:" }

// BadNumber re-prompts after unparsable numeric input.
func BadNumber() string { return "❌ Введите число:" }

// BadID re-prompts after unparsable record id input.
func BadID() string { return "❌ Введите номер записи (например: 2):" }

// NotFound reports a missing record id and re-prompts.
func NotFound(id int) string {
	return fmt.Sprintf("❌ Запись #%d не найдена. Введите другой номер:", id)
}

// Cancelled confirms a session was discarded.
func Cancelled() string { return "❌ Операция отменена" }

// StorageFailed reports a failed durable write. The ledger keeps its prior
// state, so the wording promises nothing was changed.
func StorageFailed() string {
	return "⚠️ Не удалось сохранить данные, запись не изменена. Попробуйте позже."
}

// EmptyLedger is the defined empty result, rendered distinctly from an error.
func EmptyLedger() string { return "📊 Пока нет записей в базе" }

// NothingToExport is shown when /export finds an empty ledger.
func NothingToExport() string { return "Нет данных для экспорта" }

// UnknownHint is shown for unrecognized text outside any session.
func UnknownHint() string {
	return "🤔 Не понимаю. Выберите действие в меню\n" +
		"или отправьте 3 числа через пробел для быстрого расчета."
}

// QuickCalcHint explains the stateless three-number calculation.
func QuickCalcHint() string {
	return "🧮 Введите 3 числа через пробел:\n" +
		"Входная цена Расходы Итоговая цена\n\n" +
		"Пример: 1000 200 1500"
}

// QuickCalcCard renders the computed figures of a quick calculation.
func QuickCalcCard(q ledger.QuickCalc) string {
	var b strings.Builder
	b.WriteString("🧮 *Результат расчета:*\n\n")
	fmt.Fprintf(&b, "💵 Входная цена: %s\n", money(q.Cost))
	fmt.Fprintf(&b, "💸 Расходы: %s\n", money(q.Expenses))
	fmt.Fprintf(&b, "🏷️ Итоговая цена: %s\n", money(q.FinalPrice))
	fmt.Fprintf(&b, "🎯 *Прибыль: %s*\n", money(q.Profit))
	fmt.Fprintf(&b, "📈 Рентабельность: %s", percent(q.Profitability))
	return b.String()
}

// RecordCard renders one record in full.
func RecordCard(r ledger.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📦 Запись #%d: %s\n", r.ID, escape(r.Name))
	fmt.Fprintf(&b, "💵 Входная цена: %s\n", money(r.Cost))
	fmt.Fprintf(&b, "💸 Расходы: %s\n", money(r.Expenses))
	fmt.Fprintf(&b, "🏷️ Итоговая цена: %s\n", money(r.FinalPrice))
	fmt.Fprintf(&b, "🎯 Прибыль: %s\n", money(r.Profit))
	fmt.Fprintf(&b, "🗓 Дата: %s", r.Date)
	if r.UpdatedAt != nil {
		fmt.Fprintf(&b, "\n✏️ Изменена: %s", format.DerefTime(r.UpdatedAt, ledger.DateLayout, ""))
	}
	return b.String()
}

// Created renders the success card after the add flow commits.
func Created(r ledger.Record) string {
	var b strings.Builder
	b.WriteString("✅ *Запись добавлена!*\n\n")
	fmt.Fprintf(&b, "📦 Товар: %s\n", escape(r.Name))
	fmt.Fprintf(&b, "💵 Входная цена: %s\n", money(r.Cost))
	fmt.Fprintf(&b, "💸 Расходы: %s\n", money(r.Expenses))
	fmt.Fprintf(&b, "🏷️ Итоговая цена: %s\n", money(r.FinalPrice))
	fmt.Fprintf(&b, "🎯 *Прибыль: %s*\n", money(r.Profit))
	fmt.Fprintf(&b, "📈 Рентабельность: %s", percent(ledger.Profitability(r.Profit, r.FinalPrice)))
	return b.String()
}

// Updated renders the success card after an edit commits.
func Updated(r ledger.Record, f ledger.Field) string {
	return fmt.Sprintf("✅ *Запись обновлена* (%s)\n\n%s", FieldLabel(f), RecordCard(r))
}

// Deleted confirms a removal. Remaining ids are renumbered, so the card says
// so to avoid surprising the user on the next /list.
func Deleted(name string) string {
	return fmt.Sprintf("🗑 Запись «%s» удалена.\nНомера оставшихся записей обновлены.", escape(name))
}

// DeleteDeclined confirms that nothing was removed.
func DeleteDeclined() string { return "Удаление отменено" }

// ConfirmDelete asks for an explicit affirmative before removal.
func ConfirmDelete(r ledger.Record) string {
	return fmt.Sprintf("⚠️ Удалить запись #%d «%s»?\n\nОтправьте *ДА* для подтверждения.",
		r.ID, escape(r.Name))
}

// PromptEditID opens the edit flow.
func PromptEditID() string { return "✏️ Введите номер записи для редактирования:" }

// PromptEditField asks which field to overwrite for the chosen record.
func PromptEditField(r ledger.Record) string {
	return fmt.Sprintf("%s\n\nВыберите поле для редактирования:", RecordCard(r))
}

// PromptEditValue asks for the replacement value of the chosen field.
func PromptEditValue(f ledger.Field) string {
	if f == ledger.FieldName {
		return "📝 Введите новое название:"
	}
	return fmt.Sprintf("Введите новое значение (%s):", FieldLabel(f))
}

// UnknownField re-prompts when the field choice is not recognized.
func UnknownField() string { return "❌ Выберите поле кнопкой на клавиатуре:" }

// PromptDeleteID opens the delete flow.
func PromptDeleteID() string { return "🗑 Введите номер записи для удаления:" }

// ListPage renders one page of records.
func ListPage(records []ledger.Record, page, pages, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 *Записи* (стр. %d из %d, всего %d)\n\n", page, pages, total)
	for _, r := range records {
		fmt.Fprintf(&b, "#%d 📦 %s: %s (прибыль: %s)\n",
			r.ID, escape(r.Name), money(r.FinalPrice), money(r.Profit))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FirstPage and LastPage are the pagination boundary notices.
func FirstPage() string { return "⛔ Это первая страница" }
func LastPage() string  { return "⛔ Это последняя страница" }

// BrowseHint re-prompts on unrecognized input while browsing.
func BrowseHint() string {
	return "Используйте кнопки ⬅️ / ➡️ для навигации или 🏠 Меню для выхода."
}

// StatsCard renders the overall totals.
func StatsCard(t ledger.Totals) string {
	var b strings.Builder
	b.WriteString("📊 *Общая статистика:*\n\n")
	fmt.Fprintf(&b, "📋 Всего записей: %d\n", t.Count)
	fmt.Fprintf(&b, "💰 Общая выручка: %s\n", money(t.FinalPrice))
	fmt.Fprintf(&b, "💵 Закупочная стоимость: %s\n", money(t.Cost))
	fmt.Fprintf(&b, "💸 Общие расходы: %s\n", money(t.Expenses))
	fmt.Fprintf(&b, "🎯 Общая прибыль: %s\n\n", money(t.Profit))
	fmt.Fprintf(&b, "📈 Рентабельность: %s", percent(ledger.ProfitabilityOf(t)))
	return b.String()
}

// DateSummary renders the most recent date buckets, newest first.
func DateSummary(buckets []ledger.DateBucket) string {
	var b strings.Builder
	b.WriteString("🗓 *Статистика по дням:*\n\n")
	for _, bucket := range buckets {
		fmt.Fprintf(&b, "%s — %d зап., прибыль %s\n",
			bucket.Date, bucket.Totals.Count, money(bucket.Totals.Profit))
	}
	b.WriteString("\nДетали за день: /stats ДД.ММ.ГГГГ")
	return b.String()
}

// DateDrilldown renders the records and totals of a single calendar day.
func DateDrilldown(bucket ledger.DateBucket) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🗓 *Статистика за %s:*\n\n", bucket.Date)
	for _, r := range bucket.Records {
		fmt.Fprintf(&b, "#%d 📦 %s: прибыль %s\n", r.ID, escape(r.Name), money(r.Profit))
	}
	fmt.Fprintf(&b, "\n🎯 Прибыль за день: %s\n", money(bucket.Totals.Profit))
	fmt.Fprintf(&b, "📈 Рентабельность: %s", percent(ledger.ProfitabilityOf(bucket.Totals)))
	return b.String()
}

// BadDate reports an unparsable /stats date argument.
func BadDate() string {
	return "❌ Неверный формат даты. Пример: /stats 29.08.2026"
}

// NoRecordsForDate reports an empty drill-down bucket.
func NoRecordsForDate(date string) string {
	return fmt.Sprintf("📊 За %s записей нет", date)
}

// ExportReport renders the full plain-text report, one line per record.
func ExportReport(records []ledger.Record) string {
	var b strings.Builder
	b.WriteString("📊 ФИНАНСОВЫЙ ОТЧЕТ\n\n")
	for _, r := range records {
		fmt.Fprintf(&b, "%s | %s | Прибыль: %.2f руб\n", r.Date, r.Name, r.Profit)
	}
	return fmt.Sprintf("```\n%s\n```", strings.TrimRight(b.String(), "\n"))
}
