package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/beantrail/pkg/errhttp"
	"github.com/ghuser/beantrail/pkg/httpx"
	appsvcs "github.com/ghuser/beantrail/services/supplychain/application/services"
)

// RoleMembershipResponse answers whether an identity holds a role.
type RoleMembershipResponse struct {
	Role     string    `json:"role"`
	MemberID uuid.UUID `json:"member_id"`
	Member   bool      `json:"member"`
} // @name RoleMembershipResponse

// GetRoleMemberHandler handles GET /roles/{role}/members/{id} requests.
type GetRoleMemberHandler struct {
	svc *appsvcs.Services
}

// NewGetRoleMemberHandler returns a GetRoleMemberHandler backed by the given services.
func NewGetRoleMemberHandler(svc *appsvcs.Services) *GetRoleMemberHandler {
	return &GetRoleMemberHandler{svc: svc}
}

// Execute reports role membership. Unregistered identities answer false, not 404.
//
//	@Summary	Check role membership
//	@Tags		roles
//	@Produce	json
//	@Param		role	path		string	true	"farmer|distributor|retailer|consumer"
//	@Param		id		path		string	true	"Identity to check"
//	@Success	200		{object}	RoleMembershipResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/roles/{role}/members/{id} [get]
func (h *GetRoleMemberHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	role := chi.URLParam(r, "role")
	member, err := h.svc.Registry.HasMember(r.Context(), role, id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, RoleMembershipResponse{
		Role:     role,
		MemberID: id,
		Member:   member,
	})
}
