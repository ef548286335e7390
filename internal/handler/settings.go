package handler

import (
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/mmeshcher/gestor/internal/model"
)

const maxBackupSize = 32 << 20

// GetDashboard возвращает показатели главной панели.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.Dashboard(r.Context()))
}

// GetFinances возвращает финансовую сводку.
func (h *Handler) GetFinances(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.Finances(r.Context()))
}

// GetSettings возвращает реквизиты магазина.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.Settings(r.Context()))
}

// UpdateSettings заменяет реквизиты магазина.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req model.ShopConfig
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w)
		return
	}
	h.writeJSON(w, http.StatusOK, h.service.UpdateSettings(r.Context(), req))
}

// ExportBackup отдаёт резервную копию всех данных.
func (h *Handler) ExportBackup(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.ExportBackup(r.Context())
	if err != nil {
		h.writeError(w, err, "export backup")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="gestor-backup.json"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Warn("write backup error", zap.Error(err))
	}
}

// ImportBackup восстанавливает данные из резервной копии.
func (h *Handler) ImportBackup(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBackupSize))
	if err != nil {
		badRequest(w)
		return
	}

	if err := h.service.ImportBackup(r.Context(), data); err != nil {
		h.writeError(w, err, "import backup")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearData удаляет все данные.
func (h *Handler) ClearData(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearData(r.Context()); err != nil {
		h.writeError(w, err, "clear data")
		return
	}
	h.sessionMiddleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
