// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rodrigo Lozano

package http

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rlozanop/credvault/internal/logger"
	"github.com/rlozanop/credvault/internal/utils"
	"github.com/rlozanop/credvault/models"
)

// principalFromRequest pulls the authenticated user's id placed in the
// context by the auth middleware. A missing id means the route was wired
// without the middleware; that is a server bug, not a client error.
func principalFromRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		logger.FromRequest(r).Error().Msg("no principal in request context")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return 0, false
	}
	return userID, true
}

// credentialIDFromURL parses the {credentialID} route parameter. A
// non-numeric id can never address a record, so it gets the same response as
// an absent one.
func credentialIDFromURL(w http.ResponseWriter, r *http.Request) (int64, bool) {
	credentialID, err := strconv.ParseInt(chi.URLParam(r, "credentialID"), 10, 64)
	if err != nil {
		http.Error(w, messageForStatus(http.StatusNotFound), http.StatusNotFound)
		return 0, false
	}
	return credentialID, true
}

// clientIP reports the caller's address for audit metadata, honouring the
// usual reverse-proxy headers before falling back to the socket peer.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func (h *Handler) writeMappedError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	logger.FromRequest(r).Err(err).Msg(msg)
	status := statusFromError(err)
	http.Error(w, messageForStatus(status), status)
}

func (h *Handler) createCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, ok := principalFromRequest(w, r)
	if !ok {
		return
	}

	var create models.CredentialCreate
	if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.VaultService.Create(ctx, ownerID, create)
	if err != nil {
		h.writeMappedError(w, r, err, "credential creation failed")
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) listCredentials(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ownerID, ok := principalFromRequest(w, r)
	if !ok {
		return
	}

	filter := models.ListFilter{ServiceName: r.URL.Query().Get("service")}

	credentials, err := h.services.VaultService.List(ctx, ownerID, filter)
	if err != nil {
		h.writeMappedError(w, r, err, "credential listing failed")
		return
	}

	utils.WriteJSON(w, credentials, http.StatusOK)
}

func (h *Handler) getCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ownerID, ok := principalFromRequest(w, r)
	if !ok {
		return
	}
	credentialID, ok := credentialIDFromURL(w, r)
	if !ok {
		return
	}

	credential, err := h.services.VaultService.Get(ctx, ownerID, credentialID)
	if err != nil {
		h.writeMappedError(w, r, err, "credential lookup failed")
		return
	}

	utils.WriteJSON(w, credential, http.StatusOK)
}

func (h *Handler) updateCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, ok := principalFromRequest(w, r)
	if !ok {
		return
	}
	credentialID, ok := credentialIDFromURL(w, r)
	if !ok {
		return
	}

	var update models.CredentialUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	// Identity comes from the URL and the token, never from the body.
	update.CredentialID = credentialID
	update.UserID = ownerID

	updated, err := h.services.VaultService.Update(ctx, ownerID, update)
	if err != nil {
		h.writeMappedError(w, r, err, "credential update failed")
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ownerID, ok := principalFromRequest(w, r)
	if !ok {
		return
	}
	credentialID, ok := credentialIDFromURL(w, r)
	if !ok {
		return
	}

	if err := h.services.VaultService.Delete(ctx, ownerID, credentialID); err != nil {
		h.writeMappedError(w, r, err, "credential deletion failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) revealCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ownerID, ok := principalFromRequest(w, r)
	if !ok {
		return
	}
	credentialID, ok := credentialIDFromURL(w, r)
	if !ok {
		return
	}

	metadata := map[string]any{
		"ip": clientIP(r),
		"ua": r.UserAgent(),
	}

	password, err := h.services.VaultService.Reveal(ctx, ownerID, credentialID, metadata)
	if err != nil {
		h.writeMappedError(w, r, err, "credential reveal failed")
		return
	}

	utils.WriteJSON(w, models.RevealResponse{Password: password}, http.StatusOK)
}
