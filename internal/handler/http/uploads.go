package http

import (
	"net/http"

	"github.com/MKhiriev/go-identity-portal/internal/utils"
	"github.com/MKhiriev/go-identity-portal/models"
)

func (h *Handler) presignUpload(w http.ResponseWriter, r *http.Request) {
	var req models.PresignRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeMessage(w, MessageInvalidJSON, http.StatusBadRequest)
		return
	}

	resp, err := h.services.UploadService.Presign(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) testUpload(w http.ResponseWriter, r *http.Request) {
	err := h.services.UploadService.HealthCheck(r.Context())
	if err != nil {
		status := statusFromError(err)
		body := models.MessageResponse{Message: messageFromError(err)}
		if status == http.StatusInternalServerError {
			body.Error = err.Error()
		}
		utils.WriteJSON(w, body, status)
		return
	}

	writeMessage(w, MessageUploadOK, http.StatusOK)
}

func (h *Handler) envCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.UploadService.EnvCheck(r.Context()), http.StatusOK)
}
