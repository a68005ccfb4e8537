package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snishiyama/networking-crm/internal/dto"
	apierrors "github.com/snishiyama/networking-crm/internal/errors"
	"github.com/snishiyama/networking-crm/internal/middleware"
	"github.com/snishiyama/networking-crm/internal/models"
	"github.com/snishiyama/networking-crm/internal/repository"
	"github.com/snishiyama/networking-crm/internal/services"
	"github.com/snishiyama/networking-crm/internal/utils"
)

// MemberHandler coordinates member and member-note HTTP handlers.
type MemberHandler struct {
	memberService *services.MemberService
	noteService   *services.NoteService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(memberService *services.MemberService, noteService *services.NoteService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
		noteService:   noteService,
	}
}

// ListMembers returns members, optionally filtered by search text or
// membership type, with pagination.
func (h *MemberHandler) ListMembers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filter := repository.MemberFilter{
		Search:   c.Query("search"),
		Page:     params.Page,
		PageSize: params.Limit,
	}
	if status := c.Query("status"); status != "" {
		membershipType := models.MembershipType(status)
		filter.MembershipType = &membershipType
	}

	members, total, err := h.memberService.ListMembers(filter)
	if err != nil {
		respondMemberError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"members": dto.ToMemberDTOs(members),
		"pagination": utils.NewPaginationResponse(params, total),
	})
}

// CreateMember creates a new member.
func (h *MemberHandler) CreateMember(c *gin.Context) {
	type CreateMemberRequest struct {
		FirstName      string                `json:"first_name" binding:"required"`
		LastName       string                `json:"last_name" binding:"required"`
		Email          string                `json:"email" binding:"required,email"`
		Phone          string                `json:"phone"`
		Company        string                `json:"company"`
		Category       string                `json:"category"`
		MembershipType models.MembershipType `json:"membership_type"`
		Notes          string                `json:"notes"`
	}

	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "First name, last name, and email are required")
		return
	}

	member, err := h.memberService.CreateMember(services.CreateMemberInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Company:        req.Company,
		Category:       req.Category,
		MembershipType: req.MembershipType,
		Notes:          req.Notes,
	})
	if err != nil {
		respondMemberError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMemberDTO(*member))
}

// GetMember returns a single member.
func (h *MemberHandler) GetMember(c *gin.Context) {
	memberID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid member ID")
		return
	}

	member, err := h.memberService.GetMember(memberID)
	if err != nil {
		respondMemberError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberDTO(*member))
}

// UpdateMember patches a member's fields.
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	memberID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid member ID")
		return
	}

	type UpdateMemberRequest struct {
		FirstName      *string                `json:"first_name"`
		LastName       *string                `json:"last_name"`
		Email          *string                `json:"email"`
		Phone          *string                `json:"phone"`
		Company        *string                `json:"company"`
		Category       *string                `json:"category"`
		MembershipType *models.MembershipType `json:"membership_type"`
		Notes          *string                `json:"notes"`
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.memberService.UpdateMember(memberID, services.UpdateMemberInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Company:        req.Company,
		Category:       req.Category,
		MembershipType: req.MembershipType,
		Notes:          req.Notes,
	})
	if err != nil {
		respondMemberError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberDTO(*member))
}

// DeleteMember removes a member and all dependent rows.
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	memberID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid member ID")
		return
	}

	if err := h.memberService.DeleteMember(memberID); err != nil {
		respondMemberError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member deleted successfully",
	})
}

// GetMemberHistory returns a member's attendance and group history.
func (h *MemberHandler) GetMemberHistory(c *gin.Context) {
	memberID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid member ID")
		return
	}

	attendance, groups, err := h.memberService.GetHistory(memberID)
	if err != nil {
		respondMemberError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberHistoryDTO(attendance, groups))
}

// ListMemberNotes returns a member's notes, newest first.
func (h *MemberHandler) ListMemberNotes(c *gin.Context) {
	memberID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid member ID")
		return
	}

	notes, err := h.noteService.ListNotes(memberID)
	if err != nil {
		respondMemberError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberNoteDTOs(notes))
}

// CreateMemberNote appends a note authored by the current user.
func (h *MemberHandler) CreateMemberNote(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	memberID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid member ID")
		return
	}

	type CreateNoteRequest struct {
		Note string `json:"note" binding:"required"`
	}

	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Note content is required")
		return
	}

	note, err := h.noteService.AddNote(memberID, userID, req.Note)
	if err != nil {
		respondMemberError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMemberNoteDTO(*note))
}

// DeleteMemberNote deletes a note if the caller authored it or is a
// super admin.
func (h *MemberHandler) DeleteMemberNote(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	noteID, ok := parseIDParam(c, "noteId")
	if !ok {
		apierrors.BadRequest(c, "Invalid note ID")
		return
	}

	if err := h.noteService.DeleteNote(noteID, actor); err != nil {
		respondMemberError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Note deleted successfully",
	})
}

func respondMemberError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrNoteNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrMemberFieldsMissing),
		errors.Is(err, services.ErrInvalidMembershipType),
		errors.Is(err, services.ErrNoteEmpty):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
