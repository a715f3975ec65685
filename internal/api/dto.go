package api

import (
	"time"

	"github.com/shaiso/Vitrina/internal/domain"
)

// Product DTOs

// CreateProductRequest — запрос на создание товара.
type CreateProductRequest struct {
	Name              string `json:"name"`
	Status            string `json:"status,omitempty"`
	CatalogVisibility string `json:"catalog_visibility,omitempty"`
	Featured          bool   `json:"featured,omitempty"`
}

// ProductResponse — ответ с товаром.
type ProductResponse struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Status            string    `json:"status"`
	CatalogVisibility string    `json:"catalog_visibility"`
	Featured          bool      `json:"featured"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ProductFromDomain конвертирует domain.Product в ProductResponse.
func ProductFromDomain(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Status:            string(p.Status),
		CatalogVisibility: string(p.CatalogVisibility),
		Featured:          p.Featured,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// Schedule DTOs

// SetScheduleRequest — запрос на планирование перехода товара.
// Date и Time — локальные для таймзоны товара; Timezone, если задана,
// закрепляется за товаром как override.
type SetScheduleRequest struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Timezone string `json:"timezone,omitempty"`
	Kind     string `json:"kind"`
}

// ScheduleResponse — ответ с записью расписания.
type ScheduleResponse struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Kind        string    `json:"kind"`
	CreatedAt   time.Time `json:"created_at"`
}

// ScheduleFromDomain конвертирует domain.ScheduleEntry в ScheduleResponse.
func ScheduleFromDomain(e *domain.ScheduleEntry) ScheduleResponse {
	return ScheduleResponse{
		ID:          e.ID,
		ProductID:   e.ProductID,
		ScheduledAt: e.ScheduledAt,
		Kind:        e.Kind.String(),
		CreatedAt:   e.CreatedAt,
	}
}

// PendingScheduleResponse — строка админского списка: запись плюс
// состояние товара и локальное время срабатывания в его таймзоне.
type PendingScheduleResponse struct {
	ScheduleResponse

	ProductName   string `json:"product_name"`
	ProductStatus string `json:"product_status"`
	Timezone      string `json:"timezone"`
	LocalDate     string `json:"local_date"`
	LocalTime     string `json:"local_time"`
}

// Scheduler DTOs

// TriggerRunResponse — результат запроса немедленного прогона.
type TriggerRunResponse struct {
	// Triggered — команда прогона отправлена планировщику.
	Triggered bool `json:"triggered"`

	// Due — сколько записей назрело на момент запроса.
	Due int `json:"due"`

	// NextScheduledAt — ближайший срок, когда запускать нечего.
	NextScheduledAt *time.Time `json:"next_scheduled_at,omitempty"`
}

// SchedulerStatusResponse — текущее состояние очереди планировщика.
type SchedulerStatusResponse struct {
	Due             int        `json:"due"`
	Pending         int        `json:"pending"`
	NextScheduledAt *time.Time `json:"next_scheduled_at,omitempty"`
}

// Report DTOs

// ReportResponse — отчёт прогона.
type ReportResponse struct {
	StartedAt  time.Time                  `json:"started_at"`
	FinishedAt time.Time                  `json:"finished_at"`
	Manual     bool                       `json:"manual"`
	Summary    string                     `json:"summary"`
	Succeeded  []domain.TransitionOutcome `json:"succeeded,omitempty"`
	Failed     []domain.TransitionFailure `json:"failed,omitempty"`
}

// ReportFromDomain конвертирует domain.RunReport в ReportResponse.
func ReportFromDomain(r *domain.RunReport) ReportResponse {
	return ReportResponse{
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Manual:     r.Manual,
		Summary:    r.Summary(),
		Succeeded:  r.Succeeded,
		Failed:     r.Failed,
	}
}

// Settings DTOs

// UpdateSettingsRequest — запрос на изменение настроек. Поля nil
// остаются без изменений.
type UpdateSettingsRequest struct {
	DefaultTimezone       *string `json:"default_timezone,omitempty"`
	DeleteDataOnUninstall *string `json:"delete_data_on_uninstall,omitempty"`
}
