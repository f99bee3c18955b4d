package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/ginagrosso/biblioteca/internal/core/ports/services"
	"github.com/ginagrosso/biblioteca/internal/dto"
	"github.com/ginagrosso/biblioteca/internal/middleware"
	"github.com/gin-gonic/gin"
)

// memberHandler handles HTTP requests related to members.
type memberHandler struct {
	memberService portssvc.MembershipSvcFacade
}

func newMemberHandler(ms portssvc.MembershipSvcFacade) *memberHandler {
	return &memberHandler{memberService: ms}
}

type memberHistoryParams struct {
	Limit int `form:"limit,default=50" binding:"min=0,max=500"`
}

// registerMemberRoutes registers routes related to members.
func registerMemberRoutes(rg *gin.RouterGroup, memberService portssvc.MembershipSvcFacade) {
	h := newMemberHandler(memberService)

	members := rg.Group("/members")
	{
		members.POST("", h.registerMember)
		members.GET("", h.listMembers)
		members.GET("/:memberID", h.getMember)
		members.GET("/:memberID/fines/outstanding", h.getOutstandingFines)
		members.GET("/:memberID/loans", h.listActiveLoans)
		members.GET("/:memberID/history", h.getHistory)
		members.POST("/:memberID/deactivate", h.deactivateMember)
		members.POST("/:memberID/reactivate", h.reactivateMember)
	}
}

// registerMember godoc
// @Summary Register a member
// @Description Registers a member and assigns the next member number of the current year (MEM-YYYY-NNNN).
// @Tags members
// @Accept json
// @Produce json
// @Param member body dto.RegisterMemberRequest true "Member details"
// @Success 201 {object} domain.Member
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "National ID already registered"
// @Security BearerAuth
// @Router /members [post]
func (h *memberHandler) registerMember(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var req dto.RegisterMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	member, err := h.memberService.RegisterMember(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "Failed to register member")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Member registered",
		slog.String("member_id", member.MemberID), slog.String("member_number", member.MemberNumber))
	c.JSON(http.StatusCreated, member)
}

// listMembers godoc
// @Summary List members
// @Tags members
// @Produce json
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListMembersResponse
// @Security BearerAuth
// @Router /members [get]
func (h *memberHandler) listMembers(c *gin.Context) {
	var params dto.ListMembersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	members, err := h.memberService.ListMembers(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list members")
		return
	}
	c.JSON(http.StatusOK, dto.ListMembersResponse{Members: members})
}

// getMember godoc
// @Summary Get a member by ID
// @Tags members
// @Produce json
// @Param memberID path string true "Member ID"
// @Success 200 {object} domain.Member
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /members/{memberID} [get]
func (h *memberHandler) getMember(c *gin.Context) {
	member, err := h.memberService.GetMember(c.Request.Context(), c.Param("memberID"))
	if err != nil {
		respondError(c, err, "Failed to get member")
		return
	}
	c.JSON(http.StatusOK, member)
}

// getOutstandingFines godoc
// @Summary Get what a member owes
// @Tags members
// @Produce json
// @Param memberID path string true "Member ID"
// @Success 200 {object} dto.OutstandingFinesResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /members/{memberID}/fines/outstanding [get]
func (h *memberHandler) getOutstandingFines(c *gin.Context) {
	balance, err := h.memberService.FineBalance(c.Request.Context(), c.Param("memberID"))
	if err != nil {
		respondError(c, err, "Failed to compute outstanding fines")
		return
	}
	c.JSON(http.StatusOK, dto.ToOutstandingFinesResponse(balance))
}

// listActiveLoans godoc
// @Summary List the open loans of a member
// @Tags members
// @Produce json
// @Param memberID path string true "Member ID"
// @Success 200 {array} domain.Loan
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /members/{memberID}/loans [get]
func (h *memberHandler) listActiveLoans(c *gin.Context) {
	loans, err := h.memberService.ActiveLoans(c.Request.Context(), c.Param("memberID"))
	if err != nil {
		respondError(c, err, "Failed to list active loans")
		return
	}
	c.JSON(http.StatusOK, loans)
}

// getHistory godoc
// @Summary Circulation history of a member
// @Tags members
// @Produce json
// @Param memberID path string true "Member ID"
// @Param limit query int false "Maximum number of events" default(50)
// @Success 200 {array} domain.CirculationEvent
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /members/{memberID}/history [get]
func (h *memberHandler) getHistory(c *gin.Context) {
	var params memberHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	events, err := h.memberService.MemberHistory(c.Request.Context(), c.Param("memberID"), params.Limit)
	if err != nil {
		respondError(c, err, "Failed to load member history")
		return
	}
	c.JSON(http.StatusOK, events)
}

// deactivateMember godoc
// @Summary Deactivate a member
// @Tags members
// @Param memberID path string true "Member ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /members/{memberID}/deactivate [post]
func (h *memberHandler) deactivateMember(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	if err := h.memberService.DeactivateMember(c.Request.Context(), c.Param("memberID"), actor); err != nil {
		respondError(c, err, "Failed to deactivate member")
		return
	}
	c.Status(http.StatusNoContent)
}

// reactivateMember godoc
// @Summary Reactivate a member
// @Tags members
// @Param memberID path string true "Member ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /members/{memberID}/reactivate [post]
func (h *memberHandler) reactivateMember(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	if err := h.memberService.ReactivateMember(c.Request.Context(), c.Param("memberID"), actor); err != nil {
		respondError(c, err, "Failed to reactivate member")
		return
	}
	c.Status(http.StatusNoContent)
}
