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

type GroupsHandler struct {
	GroupService *service.GroupService
}

// HandleCreate creates a group owned by the caller and returns it with the
// caller as its only member.
//
//	POST /v1/groups
func (h *GroupsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req covesdk.CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, covesdk.ErrorResponse{
			Error:            covesdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Request body must be JSON",
		})
		return
	}

	group, err := h.GroupService.CreateGroup(ctx, userID, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrInvalidGroupName) {
			httpx.WriteJSON(w, http.StatusBadRequest, covesdk.ErrorResponse{
				Error:            covesdk.ErrorCodeInvalidRequest,
				ErrorDescription: "Group name must be between 2 and 50 characters",
			})
			return
		}

		log.Error("failed to create group", "err", err)
		writeServerError(w, "Failed to create group")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, covesdk.GroupEnvelope{
		Data: toWireGroup(group),
	})
}

// HandleList returns the groups the caller belongs to, newest first.
//
//	GET /v1/groups
func (h *GroupsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		writeUnauthorized(w)
		return
	}

	groups, err := h.GroupService.ListGroups(ctx, userID)
	if err != nil {
		log.Error("failed to list groups", "err", err)
		writeServerError(w, "Failed to list groups")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, covesdk.GroupListEnvelope{
		Data: toWireGroups(groups),
	})
}

// HandleGet returns a single group with its member roster. Non-members and
// nonexistent ids both report not_found so group ids stay unprobeable.
//
//	GET /v1/groups/{id}
func (h *GroupsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		writeUnauthorized(w)
		return
	}

	group, err := h.GroupService.GetGroup(ctx, userID, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			writeGroupNotFound(w)
			return
		}

		log.Error("failed to get group", "err", err)
		writeServerError(w, "Failed to get group")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, covesdk.GroupEnvelope{
		Data: toWireGroup(group),
	})
}

// HandleListMembers returns the group's membership roster in join order,
// behind the same membership gate as HandleGet.
//
//	GET /v1/groups/{id}/members
func (h *GroupsHandler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		writeUnauthorized(w)
		return
	}

	members, err := h.GroupService.ListMembers(ctx, userID, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			writeGroupNotFound(w)
			return
		}

		log.Error("failed to list members", "err", err)
		writeServerError(w, "Failed to list members")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, covesdk.MemberListEnvelope{
		Data: toWireMembers(members),
	})
}

func writeGroupNotFound(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusNotFound, covesdk.ErrorResponse{
		Error:            covesdk.ErrorCodeNotFound,
		ErrorDescription: "Group not found",
	})
}

func writeUnauthorized(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusUnauthorized, covesdk.ErrorResponse{
		Error:            covesdk.ErrorCodeUnauthorized,
		ErrorDescription: "Authentication required",
	})
}

func writeServerError(w http.ResponseWriter, desc string) {
	httpx.WriteJSON(w, http.StatusInternalServerError, covesdk.ErrorResponse{
		Error:            covesdk.ErrorCodeServerError,
		ErrorDescription: desc,
	})
}
