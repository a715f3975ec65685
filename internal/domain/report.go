package domain

import (
	"fmt"
	"strings"
	"time"
)

// TransitionOutcome — один успешно выполненный переход в отчёте прогона.
type TransitionOutcome struct {
	// ScheduleID — запись расписания, по которой шёл переход.
	ScheduleID int64 `json:"schedule_id"`

	// ProductID — товар.
	ProductID int64 `json:"product_id"`

	// Name — имя товара на момент перехода.
	Name string `json:"name"`
}

// TransitionFailure — неудавшийся переход в отчёте прогона.
//
// Причина неудачи сюда сознательно не попадает: сводка отчёта называет
// только товары, а диагностика остаётся в логе (slog).
type TransitionFailure struct {
	// ScheduleID — запись расписания.
	ScheduleID int64 `json:"schedule_id"`

	// ProductID — товар.
	ProductID int64 `json:"product_id"`

	// Name — имя товара, если его удалось загрузить.
	Name string `json:"name,omitempty"`
}

// RunReport — агрегированный отчёт одного прогона Runner'а.
//
// Один прогон — один отчёт: по-строчных уведомлений нет. Пустой прогон
// (ничего не было due) — это не ошибка, но он отличим от прогона,
// который что-то обработал.
type RunReport struct {
	// StartedAt — момент начала прогона (он же "now" due-запроса).
	StartedAt time.Time `json:"started_at"`

	// FinishedAt — момент завершения прогона.
	FinishedAt time.Time `json:"finished_at"`

	// Manual — прогон запущен вручную, а не по расписанию.
	Manual bool `json:"manual"`

	// Succeeded — переходы, прошедшие верификацию и помеченные completed.
	Succeeded []TransitionOutcome `json:"succeeded"`

	// Failed — переходы, оставленные pending для повтора на следующем
	// прогоне (это единственный механизм retry в системе).
	Failed []TransitionFailure `json:"failed"`
}

// Empty возвращает true, если прогон ничего не обрабатывал.
func (r *RunReport) Empty() bool {
	return len(r.Succeeded) == 0 && len(r.Failed) == 0
}

// Summary — человекочитаемая сводка для уведомлений и лога.
// Причины неудач не раскрывает.
func (r *RunReport) Summary() string {
	if r.Empty() {
		return "no scheduled changes were due"
	}

	var parts []string
	if len(r.Succeeded) > 0 {
		names := make([]string, len(r.Succeeded))
		for i, s := range r.Succeeded {
			names[i] = fmt.Sprintf("%s (ID: %d)", s.Name, s.ProductID)
		}
		parts = append(parts, "published: "+strings.Join(names, ", "))
	}
	if len(r.Failed) > 0 {
		names := make([]string, len(r.Failed))
		for i, f := range r.Failed {
			if f.Name != "" {
				names[i] = fmt.Sprintf("%s (ID: %d)", f.Name, f.ProductID)
			} else {
				names[i] = fmt.Sprintf("ID: %d", f.ProductID)
			}
		}
		parts = append(parts, "failed: "+strings.Join(names, ", "))
	}
	return strings.Join(parts, "; ")
}
