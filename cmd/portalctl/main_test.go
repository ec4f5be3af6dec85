package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-identity-portal/internal/adapter"
	"github.com/MKhiriev/go-identity-portal/internal/logger"
	"github.com/MKhiriev/go-identity-portal/models"
)

// fakePortal answers the routes portalctl uses and records what it saw.
type fakePortal struct {
	logins  int
	logouts int
	update  models.AdminUpdatePayload
}

func (f *fakePortal) server(t *testing.T) *httptest.Server {
	t.Helper()

	reply := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/admin/login", func(w http.ResponseWriter, r *http.Request) {
		var body models.AdminLoginPayload
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Key != "staff-key" {
			reply(w, http.StatusUnauthorized, models.MessageResponse{Message: "Unauthorized."})
			return
		}
		f.logins++
		reply(w, http.StatusOK, models.MessageResponse{Message: "Authorized."})
	})
	mux.HandleFunc("POST /api/admin/logout", func(w http.ResponseWriter, r *http.Request) {
		f.logouts++
		reply(w, http.StatusOK, models.MessageResponse{Message: "Logged out."})
	})
	mux.HandleFunc("GET /api/identity/status", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("requestId") != "SCF-1" {
			reply(w, http.StatusNotFound, models.MessageResponse{Message: "Request not found."})
			return
		}
		reply(w, http.StatusOK, models.StatusResponse{RequestID: "SCF-1", Status: models.StatusPending})
	})
	mux.HandleFunc("GET /api/identity/admin/list", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, models.AdminListResponse{
			Records:  []models.AdminRecord{{RequestID: "SCF-1", Status: models.StatusPending}},
			Total:    1,
			Page:     1,
			PageSize: 10,
		})
	})
	mux.HandleFunc("POST /api/identity/admin/update", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&f.update))
		info := f.update.InfoRequired != nil && *f.update.InfoRequired
		reply(w, http.StatusOK, models.AdminUpdateResponse{RequestID: f.update.RequestID, Status: f.update.Status, InfoRequired: info, Message: "Status updated."})
	})
	mux.HandleFunc("GET /api/version", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, adapter.ServerVersion{Version: "1.0.0", Date: "2026-01-01", Commit: "abc"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func runCommand(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), append([]string{"-server", srv.URL, "-admin-key", "staff-key"}, args...), &out, logger.Nop())
	return out.String(), err
}

// ─── commands ───

func TestRun_Status(t *testing.T) {
	f := &fakePortal{}
	srv := f.server(t)

	out, err := runCommand(t, srv, "status", "SCF-1")
	require.NoError(t, err)

	var got models.StatusResponse
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Zero(t, f.logins, "status is public")

	_, err = runCommand(t, srv, "status", "SCF-2")
	assert.ErrorIs(t, err, adapter.ErrNotFound)
}

func TestRun_ListLogsInAndOut(t *testing.T) {
	f := &fakePortal{}
	srv := f.server(t)

	out, err := runCommand(t, srv, "list", "-status", "PENDING", "-page-size", "5")
	require.NoError(t, err)

	var got models.AdminListResponse
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.Total)
	assert.Equal(t, 1, f.logins)
	assert.Equal(t, 1, f.logouts)
}

func TestRun_UpdateInfoRequired(t *testing.T) {
	infoTrue := true

	tests := []struct {
		name     string
		args     []string
		wantInfo *bool
	}{
		{name: "flag unset", args: []string{"update", "-id", "SCF-1", "-status", "APPROVED"}, wantInfo: nil},
		{name: "flag true", args: []string{"update", "-id", "SCF-1", "-status", "REJECTED", "-info-required", "true"}, wantInfo: &infoTrue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakePortal{}
			srv := f.server(t)

			_, err := runCommand(t, srv, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, "SCF-1", f.update.RequestID)
			assert.Equal(t, tt.wantInfo, f.update.InfoRequired)
		})
	}
}

func TestRun_Version(t *testing.T) {
	srv := (&fakePortal{}).server(t)

	out, err := runCommand(t, srv, "version")

	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"1.0.0","date":"2026-01-01","commit":"abc"}`, out)
}

// ─── errors ───

func TestRun_Errors(t *testing.T) {
	srv := (&fakePortal{}).server(t)

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "no command", args: nil, wantErr: errUsage},
		{name: "unknown command", args: []string{"purge"}, wantErr: errUsage},
		{name: "status without id", args: []string{"status"}, wantErr: errUsage},
		{name: "bad list flag", args: []string{"list", "-nope"}, wantErr: errUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCommand(t, srv, tt.args...)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("wrong admin key", func(t *testing.T) {
		var out bytes.Buffer
		err := run(context.Background(), []string{"-server", srv.URL, "-admin-key", "nope", "list"}, &out, logger.Nop())
		assert.ErrorIs(t, err, adapter.ErrUnauthorized)
		assert.Empty(t, out.String())
	})

	t.Run("invalid info-required", func(t *testing.T) {
		_, err := runCommand(t, srv, "update", "-id", "SCF-1", "-status", "APPROVED", "-info-required", "maybe")
		assert.ErrorContains(t, err, "invalid -info-required")
	})
}
