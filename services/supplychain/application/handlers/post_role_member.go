package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/beantrail/pkg/errhttp"
	"github.com/ghuser/beantrail/pkg/httpx"
	pkgvalidator "github.com/ghuser/beantrail/pkg/validator"
	appsvcs "github.com/ghuser/beantrail/services/supplychain/application/services"
)

// AddRoleMemberRequest is the request body for POST /roles/{role}/members.
type AddRoleMemberRequest struct {
	MemberID uuid.UUID `json:"member_id" validate:"required"`
} // @name AddRoleMemberRequest

// AddRoleMemberResponse confirms an idempotent registration.
type AddRoleMemberResponse struct {
	Role     string    `json:"role"`
	MemberID uuid.UUID `json:"member_id"`
} // @name AddRoleMemberResponse

// AddRoleMemberHandler handles POST /roles/{role}/members requests.
type AddRoleMemberHandler struct {
	svc *appsvcs.Services
}

// NewAddRoleMemberHandler returns an AddRoleMemberHandler backed by the given services.
func NewAddRoleMemberHandler(svc *appsvcs.Services) *AddRoleMemberHandler {
	return &AddRoleMemberHandler{svc: svc}
}

// Execute registers an identity under a custody-chain role. Re-registration
// succeeds with the same response.
//
//	@Summary	Register role member
//	@Tags		roles
//	@Accept		json
//	@Produce	json
//	@Param		role	path		string					true	"farmer|distributor|retailer|consumer"
//	@Param		request	body		AddRoleMemberRequest	true	"Identity to register"
//	@Success	200		{object}	AddRoleMemberResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/roles/{role}/members [post]
func (h *AddRoleMemberHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[AddRoleMemberRequest](w, r)
	if !ok {
		return
	}

	role, err := h.svc.Registry.AddMember(r.Context(), chi.URLParam(r, "role"), req.MemberID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, AddRoleMemberResponse{
		Role:     role.String(),
		MemberID: req.MemberID,
	})
}
