package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snishiyama/networking-crm/internal/dto"
	apierrors "github.com/snishiyama/networking-crm/internal/errors"
	"github.com/snishiyama/networking-crm/internal/middleware"
	"github.com/snishiyama/networking-crm/internal/services"
)

// GroupHandler coordinates group and group-membership HTTP handlers.
type GroupHandler struct {
	groupService *services.GroupService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groupService *services.GroupService) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
	}
}

// ListGroups returns all groups. Every authenticated user sees every group.
func (h *GroupHandler) ListGroups(c *gin.Context) {
	groups, err := h.groupService.ListGroups()
	if err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupDetailDTOs(groups))
}

// CreateGroup creates a new group.
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateGroupRequest struct {
		Name             string `json:"name" binding:"required"`
		Description      string `json:"description"`
		MeetingFrequency string `json:"meeting_frequency"`
		Location         string `json:"location"`
		LeaderID         uint64 `json:"leader_id"`
	}

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Group name is required")
		return
	}

	group, err := h.groupService.CreateGroup(services.CreateGroupInput{
		Name:             req.Name,
		Description:      req.Description,
		MeetingFrequency: req.MeetingFrequency,
		Location:         req.Location,
		LeaderID:         req.LeaderID,
	}, actor)
	if err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToGroupDTO(*group))
}

// GetGroup returns a single group with its memberships.
func (h *GroupHandler) GetGroup(c *gin.Context) {
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid group ID")
		return
	}

	group, memberships, err := h.groupService.GetGroup(groupID)
	if err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupDetailDTO(*group, memberships))
}

// UpdateGroup patches a group's fields.
func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	groupID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid group ID")
		return
	}

	type UpdateGroupRequest struct {
		Name             *string `json:"name"`
		Description      *string `json:"description"`
		MeetingFrequency *string `json:"meeting_frequency"`
		Location         *string `json:"location"`
		LeaderID         *uint64 `json:"leader_id"`
	}

	var req UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	group, err := h.groupService.UpdateGroup(groupID, services.UpdateGroupInput{
		Name:             req.Name,
		Description:      req.Description,
		MeetingFrequency: req.MeetingFrequency,
		Location:         req.Location,
		LeaderID:         req.LeaderID,
	}, actor)
	if err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupDTO(*group))
}

// DeleteGroup removes a group and everything under it.
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	groupID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid group ID")
		return
	}

	if err := h.groupService.DeleteGroup(groupID, actor); err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Group deleted successfully",
	})
}

// ListGroupMembers returns a group's memberships with member detail.
func (h *GroupHandler) ListGroupMembers(c *gin.Context) {
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid group ID")
		return
	}

	memberships, err := h.groupService.ListGroupMembers(groupID)
	if err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMembershipDTOs(memberships))
}

// AddGroupMember adds a member to a group, enforcing category exclusivity.
func (h *GroupHandler) AddGroupMember(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	groupID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid group ID")
		return
	}

	type AddMemberRequest struct {
		MemberID uint64 `json:"memberId" binding:"required"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Member ID is required")
		return
	}

	membership, err := h.groupService.AddMember(groupID, req.MemberID, actor)
	if err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMembershipDTO(*membership))
}

// RemoveGroupMember removes a member from a group.
func (h *GroupHandler) RemoveGroupMember(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	groupID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid group ID")
		return
	}

	memberID, ok := parseIDParam(c, "memberId")
	if !ok {
		apierrors.BadRequest(c, "Invalid member ID")
		return
	}

	if err := h.groupService.RemoveMember(groupID, memberID, actor); err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member removed successfully",
	})
}

func respondGroupError(c *gin.Context, err error) {
	var conflict *services.CategoryConflictError
	if errors.As(err, &conflict) {
		apierrors.CategoryConflict(c, conflict.Message(), apierrors.ConflictingMember{
			ID:       conflict.MemberID,
			Name:     conflict.Name,
			Category: conflict.Category,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrGroupNotFound),
		errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrNotAMember):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrAlreadyMember),
		errors.Is(err, services.ErrGroupNameEmpty),
		errors.Is(err, services.ErrInvalidLeader):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
