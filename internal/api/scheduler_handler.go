package api

import (
	"net/http"
	"time"
)

// TriggerRun запускает прогон немедленно, если есть назревшие записи.
// Сам прогон выполняет процесс планировщика; API лишь отправляет ему
// команду через брокер.
// POST /api/v1/scheduler/run
func (h *Handler) TriggerRun(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()

	due, err := h.scheduleRepo.CountDue(r.Context(), now)
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	if due == 0 {
		next, err := h.scheduleRepo.NextScheduledAt(r.Context())
		if HandleRepoError(w, h.logger, err, "") {
			return
		}
		Success(w, TriggerRunResponse{Triggered: false, Due: 0, NextScheduledAt: next})
		return
	}

	if err := h.publisher.PublishRunTrigger(r.Context(), "api"); err != nil {
		InternalError(w, h.logger, err)
		return
	}

	JSON(w, http.StatusAccepted, DataResponse{Data: TriggerRunResponse{Triggered: true, Due: due}})
}

// SchedulerStatus возвращает состояние очереди планировщика.
// GET /api/v1/scheduler/status
func (h *Handler) SchedulerStatus(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()

	due, err := h.scheduleRepo.CountDue(r.Context(), now)
	if HandleRepoError(w, h.logger, err, "") {
		return
	}
	pending, err := h.scheduleRepo.ListPending(r.Context())
	if HandleRepoError(w, h.logger, err, "") {
		return
	}
	next, err := h.scheduleRepo.NextScheduledAt(r.Context())
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	Success(w, SchedulerStatusResponse{
		Due:             due,
		Pending:         len(pending),
		NextScheduledAt: next,
	})
}
