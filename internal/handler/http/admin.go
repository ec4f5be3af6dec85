package http

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/MKhiriev/go-identity-portal/internal/service"
	"github.com/MKhiriev/go-identity-portal/internal/utils"
	"github.com/MKhiriev/go-identity-portal/models"
)

const adminCookieName = "admin_access"

func (h *Handler) adminList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	// Absent or unparseable numbers fall back to the defaults; an explicit
	// pageSize=0 is clamped by the service like any other value.
	page := queryInt(q, "page", service.DefaultPage)
	pageSize := queryInt(q, "pageSize", service.DefaultPageSize)

	resp, err := h.services.AdminService.List(r.Context(), models.AdminListQuery{
		Status:   models.IdentityStatus(q.Get("status")),
		Query:    q.Get("q"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) adminUpdate(w http.ResponseWriter, r *http.Request) {
	var payload models.AdminUpdatePayload
	if err := utils.ReadJSON(r, &payload); err != nil {
		writeMessage(w, MessageInvalidJSON, http.StatusBadRequest)
		return
	}

	resp, err := h.services.AdminService.Update(r.Context(), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) adminLogin(w http.ResponseWriter, r *http.Request) {
	var payload models.AdminLoginPayload
	if err := utils.ReadJSON(r, &payload); err != nil {
		writeMessage(w, MessageInvalidJSON, http.StatusBadRequest)
		return
	}

	token, err := h.services.AdminAuthService.Login(r.Context(), payload.Key)
	if err != nil {
		writeError(w, r, err)
		return
	}

	http.SetCookie(w, h.adminCookie(token.SignedString, int(h.services.AdminAuthService.SessionDuration().Seconds())))
	writeMessage(w, MessageAuthorized, http.StatusOK)
}

func (h *Handler) adminLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.adminCookie("", -1))
	writeMessage(w, MessageLoggedOut, http.StatusOK)
}

func (h *Handler) adminCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     adminCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	}
}

func queryInt(q url.Values, key string, fallback int) int {
	if !q.Has(key) {
		return fallback
	}
	v, err := strconv.Atoi(q.Get(key))
	if err != nil {
		return fallback
	}
	return v
}
