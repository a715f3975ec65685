package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shaiso/Vitrina/internal/domain"
	"github.com/shaiso/Vitrina/internal/localtime"
	"github.com/shaiso/Vitrina/internal/repo"
)

// ListSchedules возвращает все ожидающие записи расписания.
// GET /api/v1/schedules
func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	pending, err := h.scheduleRepo.ListPending(r.Context())
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	result := make([]PendingScheduleResponse, 0, len(pending))
	for i := range pending {
		row, err := h.pendingResponse(r, &pending[i])
		if err != nil {
			InternalError(w, h.logger, err)
			return
		}
		result = append(result, row)
	}

	List(w, result, len(result))
}

// pendingResponse собирает строку списка: разрешает таймзону товара
// и переводит канонический срок в локальное время для отображения.
func (h *Handler) pendingResponse(r *http.Request, p *domain.PendingSchedule) (PendingScheduleResponse, error) {
	zone, err := h.resolveZone(r.Context(), p.TimezoneOverride)
	if err != nil {
		return PendingScheduleResponse{}, err
	}

	date, clock, err := localtime.Denormalize(p.ScheduledAt, zone)
	if err != nil {
		// Невалидная зона в настройках не должна ломать список.
		zone = localtime.UTCZone
		date, clock, _ = localtime.Denormalize(p.ScheduledAt, zone)
	}

	return PendingScheduleResponse{
		ScheduleResponse: ScheduleFromDomain(&p.ScheduleEntry),
		ProductName:      p.ProductName,
		ProductStatus:    string(p.ProductStatus),
		Timezone:         zone,
		LocalDate:        date,
		LocalTime:        clock,
	}, nil
}

// SetSchedule планирует переход товара, заменяя прежнюю ожидающую
// запись, если она была.
// PUT /api/v1/products/{id}/schedule
func (h *Handler) SetSchedule(w http.ResponseWriter, r *http.Request) {
	productID, err := parseID(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid product id")
		return
	}

	var req SetScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	kind, err := domain.ParseTransitionKind(req.Kind)
	if err != nil {
		BadRequest(w, err.Error())
		return
	}

	product, err := h.productRepo.GetByID(r.Context(), productID)
	if HandleRepoError(w, h.logger, err, "product not found") {
		return
	}
	if !kind.EligibleFrom(product.Status) {
		InvalidState(w, "product status "+string(product.Status)+" does not allow "+kind.String()+" transition")
		return
	}

	// Таймзона из запроса перекрывает сохранённый override; без обеих
	// работает цепочка дефолтов.
	override := req.Timezone
	if override == "" {
		override, err = h.productRepo.TimezoneOverride(r.Context(), productID)
		if err != nil {
			InternalError(w, h.logger, err)
			return
		}
	}
	zone, err := h.resolveZone(r.Context(), override)
	if err != nil {
		InternalError(w, h.logger, err)
		return
	}

	at, err := localtime.Normalize(req.Date, req.Time, zone)
	if errors.Is(err, localtime.ErrInvalidTimezone) || errors.Is(err, localtime.ErrInvalidDateTime) {
		BadRequest(w, err.Error())
		return
	}
	if err != nil {
		InternalError(w, h.logger, err)
		return
	}

	if req.Timezone != "" {
		if err := h.productRepo.SetMeta(r.Context(), productID, repo.MetaTimezone, req.Timezone); err != nil {
			InternalError(w, h.logger, err)
			return
		}
	}

	entry, err := h.scheduleRepo.UpsertPending(r.Context(), productID, at, kind)
	if err != nil {
		InternalError(w, h.logger, err)
		return
	}

	Created(w, ScheduleFromDomain(entry))
}

// CancelSchedule снимает ожидающую запись товара.
// DELETE /api/v1/products/{id}/schedule
func (h *Handler) CancelSchedule(w http.ResponseWriter, r *http.Request) {
	productID, err := parseID(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid product id")
		return
	}

	if err := h.scheduleRepo.CancelPending(r.Context(), productID); err != nil {
		InternalError(w, h.logger, err)
		return
	}

	NoContent(w)
}

// DeleteSchedule удаляет ожидающую запись по её идентификатору.
// DELETE /api/v1/schedules/{id}
func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid schedule id")
		return
	}

	err = h.scheduleRepo.DeleteByID(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "schedule not found") {
		return
	}

	NoContent(w)
}
