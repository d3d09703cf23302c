package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/cove/internal/cove/service"
	"github.com/aussiebroadwan/cove/pkg/covesdk"
	"github.com/aussiebroadwan/cove/pkg/httpx"
	"github.com/aussiebroadwan/cove/pkg/slogx"
)

type InvitesHandler struct {
	InviteService *service.InviteService
}

// HandleCreate mints a single-use invite code for a group the caller belongs
// to. Unknown groups report not_found; known groups the caller is not a
// member of report forbidden.
//
//	POST /v1/invites
func (h *InvitesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req covesdk.CreateInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, covesdk.ErrorResponse{
			Error:            covesdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Request body must be JSON",
		})
		return
	}
	if req.GroupID == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, covesdk.ErrorResponse{
			Error:            covesdk.ErrorCodeInvalidRequest,
			ErrorDescription: "group_id is required",
		})
		return
	}

	invite, err := h.InviteService.CreateInvite(ctx, userID, req.GroupID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGroupNotFound):
			writeGroupNotFound(w)
		case errors.Is(err, service.ErrNotGroupMember):
			writeForbidden(w)
		default:
			log.Error("failed to create invite", "err", err)
			writeServerError(w, "Failed to create invite")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, covesdk.InviteEnvelope{
		Data: toWireInvite(invite),
	})
}

// HandleList returns every invite for the group, used and unused, oldest
// first.
//
//	GET /v1/groups/{id}/invites
func (h *InvitesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		writeUnauthorized(w)
		return
	}

	invites, err := h.InviteService.ListInvites(ctx, userID, r.PathValue("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGroupNotFound):
			writeGroupNotFound(w)
		case errors.Is(err, service.ErrNotGroupMember):
			writeForbidden(w)
		default:
			log.Error("failed to list invites", "err", err)
			writeServerError(w, "Failed to list invites")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, covesdk.InviteListEnvelope{
		Data: toWireInvites(invites),
	})
}

// HandleGet previews an active invite without consuming it.
//
//	GET /v1/invites/{code}
func (h *InvitesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	invite, err := h.InviteService.GetInvite(ctx, r.PathValue("code"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInviteNotFound):
			writeInviteNotFound(w)
		case errors.Is(err, service.ErrInviteAlreadyUsed):
			writeInviteAlreadyUsed(w)
		default:
			log.Error("failed to get invite", "err", err)
			writeServerError(w, "Failed to get invite")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, covesdk.InviteEnvelope{
		Data: toWireInvite(invite),
	})
}

// HandleAccept redeems the invite and returns the joined group. Under
// concurrent acceptance of one code exactly one caller gets 200; the rest get
// 409.
//
//	POST /v1/invites/{code}/accept
func (h *InvitesHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		writeUnauthorized(w)
		return
	}

	group, err := h.InviteService.RedeemInvite(ctx, userID, r.PathValue("code"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInviteNotFound):
			writeInviteNotFound(w)
		case errors.Is(err, service.ErrInviteAlreadyUsed):
			writeInviteAlreadyUsed(w)
		default:
			log.Error("failed to redeem invite", "err", err)
			writeServerError(w, "Failed to redeem invite")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, covesdk.GroupEnvelope{
		Data: toWireGroup(group),
	})
}

func writeInviteNotFound(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusNotFound, covesdk.ErrorResponse{
		Error:            covesdk.ErrorCodeNotFound,
		ErrorDescription: "Invite not found",
	})
}

func writeInviteAlreadyUsed(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusConflict, covesdk.ErrorResponse{
		Error:            covesdk.ErrorCodeAlreadyUsed,
		ErrorDescription: "Invite has already been used",
	})
}

func writeForbidden(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusForbidden, covesdk.ErrorResponse{
		Error:            covesdk.ErrorCodeForbidden,
		ErrorDescription: "You are not a member of this group",
	})
}
