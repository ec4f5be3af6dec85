package http

import (
	"net/http"

	"github.com/MKhiriev/go-identity-portal/internal/logger"
	"github.com/MKhiriev/go-identity-portal/internal/utils"
	"github.com/MKhiriev/go-identity-portal/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var payload models.RegistrationPayload
	if err := utils.ReadJSON(r, &payload); err != nil {
		log.Debug().Msg("registration body is not valid JSON")
		writeMessage(w, MessageInvalidJSON, http.StatusBadRequest)
		return
	}

	resp, err := h.services.IdentityService.Register(r.Context(), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	resp, err := h.services.IdentityService.Status(r.Context(), r.URL.Query().Get("requestId"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}
