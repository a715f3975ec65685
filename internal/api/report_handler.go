package api

import "net/http"

// LatestReport возвращает отчёт последнего прогона.
// GET /api/v1/reports/latest
func (h *Handler) LatestReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportRepo.Latest(r.Context())
	if HandleRepoError(w, h.logger, err, "no runs recorded yet") {
		return
	}

	Success(w, ReportFromDomain(report))
}
