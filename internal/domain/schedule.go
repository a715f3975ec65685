package domain

import "time"

// ScheduleEntry — одна запланированная смена состояния товара.
//
// Инварианты хранилища:
//   - на товар в любой момент существует не больше одной незавершённой
//     записи (замена идёт по принципу "последняя запись побеждает");
//   - ScheduledAt всегда в UTC с точностью до минуты, независимо от
//     таймзоны, которую выбрал пользователь при создании;
//   - Completed монотонен: false → true, обратно никогда.
type ScheduleEntry struct {
	// ID — идентификатор записи, выдаётся хранилищем при вставке.
	ID int64 `json:"id"`

	// ProductID — товар, к которому относится переход.
	// Не уникален: история может содержать завершённые записи.
	ProductID int64 `json:"product_id"`

	// ScheduledAt — канонический момент срабатывания (UTC, минуты).
	ScheduledAt time.Time `json:"scheduled_at"`

	// Kind — вид перехода. Хранится аннотацией schedule_type рядом
	// с товаром (product_meta) и подтягивается due-запросом.
	Kind TransitionKind `json:"kind"`

	// Completed — запись выполнена и больше никогда не исполняется.
	// Выставляется только после верификации успешного перехода.
	Completed bool `json:"completed"`

	// CreatedAt — время создания записи.
	CreatedAt time.Time `json:"created_at"`
}

// IsDue проверяет, пора ли исполнять запись.
func (e *ScheduleEntry) IsDue(now time.Time) bool {
	if e.Completed {
		return false
	}
	return !e.ScheduledAt.After(now)
}

// PendingSchedule — строка админского списка ожидающих переходов:
// запись расписания, обогащённая состоянием товара и его таймзоной.
type PendingSchedule struct {
	ScheduleEntry

	// ProductName — текущее имя товара.
	ProductName string `json:"product_name"`

	// ProductStatus — текущий статус товара.
	ProductStatus ProductStatus `json:"product_status"`

	// TimezoneOverride — таймзона, закреплённая за товаром.
	// Пустая строка — override не задан, действует дефолт процесса.
	TimezoneOverride string `json:"timezone_override,omitempty"`
}
