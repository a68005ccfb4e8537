package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snishiyama/networking-crm/internal/dto"
	apierrors "github.com/snishiyama/networking-crm/internal/errors"
	"github.com/snishiyama/networking-crm/internal/middleware"
	"github.com/snishiyama/networking-crm/internal/models"
	"github.com/snishiyama/networking-crm/internal/repository"
	"github.com/snishiyama/networking-crm/internal/services"
)

// MeetingHandler coordinates meeting and attendance HTTP handlers.
type MeetingHandler struct {
	meetingService *services.MeetingService
}

// NewMeetingHandler creates a new MeetingHandler.
func NewMeetingHandler(meetingService *services.MeetingService) *MeetingHandler {
	return &MeetingHandler{
		meetingService: meetingService,
	}
}

// ListMeetings returns meetings, optionally filtered by group or upcoming.
func (h *MeetingHandler) ListMeetings(c *gin.Context) {
	filter := repository.MeetingFilter{
		UpcomingOnly: c.Query("upcoming") == "true",
	}
	if groupParam := c.Query("groupId"); groupParam != "" {
		groupID, ok := parseQueryID(groupParam)
		if !ok {
			apierrors.BadRequest(c, "Invalid group ID")
			return
		}
		filter.GroupID = &groupID
	}

	meetings, err := h.meetingService.ListMeetings(filter)
	if err != nil {
		respondMeetingError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMeetingDTOs(meetings))
}

// CreateMeeting creates a meeting and seeds attendance for the group's
// current members.
func (h *MeetingHandler) CreateMeeting(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateMeetingRequest struct {
		GroupID  uint64    `json:"group_id" binding:"required"`
		Title    string    `json:"title" binding:"required"`
		Date     time.Time `json:"date" binding:"required"`
		Location string    `json:"location"`
		Notes    string    `json:"notes"`
	}

	var req CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Group, title, and date are required")
		return
	}

	meeting, err := h.meetingService.CreateMeeting(services.CreateMeetingInput{
		GroupID:  req.GroupID,
		Title:    req.Title,
		Date:     req.Date,
		Location: req.Location,
		Notes:    req.Notes,
	}, actor)
	if err != nil {
		respondMeetingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMeetingDTO(*meeting))
}

// GetMeeting returns a single meeting with attendance detail.
func (h *MeetingHandler) GetMeeting(c *gin.Context) {
	meetingID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid meeting ID")
		return
	}

	meeting, err := h.meetingService.GetMeeting(meetingID)
	if err != nil {
		respondMeetingError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMeetingDTO(*meeting))
}

// UpdateMeeting patches a meeting's fields.
func (h *MeetingHandler) UpdateMeeting(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	meetingID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid meeting ID")
		return
	}

	type UpdateMeetingRequest struct {
		Title    *string    `json:"title"`
		Date     *time.Time `json:"date"`
		Location *string    `json:"location"`
		Notes    *string    `json:"notes"`
	}

	var req UpdateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	meeting, err := h.meetingService.UpdateMeeting(meetingID, services.UpdateMeetingInput{
		Title:    req.Title,
		Date:     req.Date,
		Location: req.Location,
		Notes:    req.Notes,
	}, actor)
	if err != nil {
		respondMeetingError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMeetingDTO(*meeting))
}

// DeleteMeeting removes a meeting and its attendance rows.
func (h *MeetingHandler) DeleteMeeting(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	meetingID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid meeting ID")
		return
	}

	if err := h.meetingService.DeleteMeeting(meetingID, actor); err != nil {
		respondMeetingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Meeting deleted successfully",
	})
}

// UpdateAttendance sets one member's attendance status.
func (h *MeetingHandler) UpdateAttendance(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	meetingID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid meeting ID")
		return
	}

	type UpdateAttendanceRequest struct {
		MemberID uint64                  `json:"memberId" binding:"required"`
		Status   models.AttendanceStatus `json:"status" binding:"required"`
	}

	var req UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Member ID and status are required")
		return
	}

	attendance, err := h.meetingService.UpdateAttendance(meetingID, req.MemberID, req.Status, actor)
	if err != nil {
		respondMeetingError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAttendanceDTO(*attendance))
}

// BulkUpdateAttendance applies several attendance updates at once.
func (h *MeetingHandler) BulkUpdateAttendance(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	meetingID, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid meeting ID")
		return
	}

	type BulkAttendanceRequest struct {
		Updates []services.AttendanceUpdate `json:"updates" binding:"required"`
	}

	var req BulkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Updates array is required")
		return
	}

	records, err := h.meetingService.BulkUpdateAttendance(meetingID, req.Updates, actor)
	if err != nil {
		respondMeetingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"attendance": dto.ToAttendanceDTOs(records),
	})
}

func respondMeetingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMeetingNotFound),
		errors.Is(err, services.ErrGroupNotFound),
		errors.Is(err, services.ErrAttendanceNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrMeetingTitleEmpty),
		errors.Is(err, services.ErrInvalidAttendanceState):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
