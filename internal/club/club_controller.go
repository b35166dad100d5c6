package club

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sportlink/backend/config"
	"github.com/sportlink/backend/internal/middleware"
	"github.com/sportlink/backend/internal/notification"
	"github.com/sportlink/backend/internal/user"
	"github.com/sportlink/backend/pkg/logger"
	"github.com/sportlink/backend/pkg/responses"
	"github.com/sportlink/backend/pkg/utils"
	"github.com/sportlink/backend/pkg/validator"
)

// ClubController handles join requests and club events.
type ClubController struct {
	repo          ClubRepository
	users         user.UserRepository
	notifications notification.NotificationRepository
	config        *config.Config
}

// NewClubController creates a new ClubController.
func NewClubController(repo ClubRepository, users user.UserRepository, notifications notification.NotificationRepository, cfg *config.Config) *ClubController {
	return &ClubController{repo: repo, users: users, notifications: notifications, config: cfg}
}

// --- DTOs ---

type CreateJoinRequestRequest struct {
	Message string `json:"message" binding:"omitempty,max=500"`
}

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,min=2,max=200"`
	Date        time.Time `json:"date" binding:"required"`
	Type        string    `json:"type" binding:"required,oneof=match training meeting tournament trial"`
	Description string    `json:"description" binding:"omitempty,max=2000"`
	Location    string    `json:"location" binding:"omitempty,max=200"`
}

type UpdateEventStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=scheduled ongoing completed cancelled"`
}

// --- Join-request handlers ---

// CreateJoinRequest godoc
// @Summary      Request to join a club
// @Tags         Clubs
// @Accept       json
// @Produce      json
// @Param        clubId   path  string                    true   "Club user id"
// @Param        request  body  CreateJoinRequestRequest  false  "Optional message"
// @Success      201  {object}  responses.Envelope{data=JoinRequest}
// @Failure      404  {object}  responses.Envelope "Club not found"
// @Failure      409  {object}  responses.Envelope "Request already exists"
// @Router       /clubs/{clubId}/join-requests [post]
// @Security     BearerAuth
func (cc *ClubController) CreateJoinRequest(c *gin.Context) {
	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		responses.Unauthorized(c, "Access token required")
		return
	}
	clubID := c.Param("clubId")

	var req CreateJoinRequestRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.BadRequest(c, validator.Message(err))
			return
		}
	}

	if clubID == callerID {
		responses.BadRequest(c, "You cannot request to join your own club")
		return
	}
	isClub, err := cc.users.ExistsWithRole(clubID, user.RoleClub)
	if err != nil {
		logger.Error("club lookup failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	if !isClub {
		responses.NotFound(c, "Club")
		return
	}

	j := &JoinRequest{
		ClubID:  clubID,
		UserID:  callerID,
		Message: req.Message,
	}
	if err := cc.repo.CreateJoinRequest(j); err != nil {
		if errors.Is(err, ErrDuplicateRequest) {
			responses.Conflict(c, "You already have a request for this club")
			return
		}
		logger.Error("join request creation failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}

	cc.notifications.Push(clubID, notification.TypeClubInvitation, "New join request", "A user requested to join your club", j.ID)
	responses.Success(c, http.StatusCreated, "Join request submitted", j)
}

// ListJoinRequests godoc
// @Summary      List join requests for own club
// @Tags         Clubs
// @Produce      json
// @Param        clubId  path   string  true   "Club user id"
// @Param        status  query  string  false  "pending, approved or rejected"
// @Success      200  {object}  responses.Envelope{data=[]JoinRequest}
// @Failure      403  {object}  responses.Envelope
// @Router       /clubs/{clubId}/join-requests [get]
// @Security     BearerAuth
func (cc *ClubController) ListJoinRequests(c *gin.Context) {
	clubID, ok := cc.requireOwnClub(c)
	if !ok {
		return
	}

	status := c.Query("status")
	if status != "" && status != RequestPending && status != RequestApproved && status != RequestRejected {
		responses.BadRequest(c, "Invalid status filter")
		return
	}

	requests, err := cc.repo.ListJoinRequests(clubID, status)
	if err != nil {
		logger.Error("join request listing failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	responses.Success(c, http.StatusOK, "", requests)
}

// ApproveJoinRequest godoc
// @Summary      Approve a pending join request
// @Tags         Clubs
// @Produce      json
// @Param        clubId  path  string  true  "Club user id"
// @Param        id      path  string  true  "Join request id"
// @Success      200  {object}  responses.Envelope
// @Failure      409  {object}  responses.Envelope "Already processed"
// @Router       /clubs/{clubId}/join-requests/{id}/approve [patch]
// @Security     BearerAuth
func (cc *ClubController) ApproveJoinRequest(c *gin.Context) {
	cc.processJoinRequest(c, RequestApproved)
}

// RejectJoinRequest godoc
// @Summary      Reject a pending join request
// @Tags         Clubs
// @Produce      json
// @Param        clubId  path  string  true  "Club user id"
// @Param        id      path  string  true  "Join request id"
// @Success      200  {object}  responses.Envelope
// @Failure      409  {object}  responses.Envelope "Already processed"
// @Router       /clubs/{clubId}/join-requests/{id}/reject [patch]
// @Security     BearerAuth
func (cc *ClubController) RejectJoinRequest(c *gin.Context) {
	cc.processJoinRequest(c, RequestRejected)
}

func (cc *ClubController) processJoinRequest(c *gin.Context, newStatus string) {
	clubID, ok := cc.requireOwnClub(c)
	if !ok {
		return
	}
	id := c.Param("id")

	j, err := cc.repo.GetJoinRequest(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Join request")
			return
		}
		logger.Error("join request lookup failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	if j.ClubID != clubID {
		responses.NotFound(c, "Join request")
		return
	}

	if err := cc.repo.ProcessJoinRequest(id, newStatus, clubID); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			responses.NotFound(c, "Join request")
		case errors.Is(err, ErrAlreadyProcessed):
			responses.Conflict(c, "Join request has already been processed")
		default:
			logger.Error("join request processing failed", zap.Error(err))
			responses.InternalServerError(c, "")
		}
		return
	}

	if newStatus == RequestApproved {
		cc.notifications.Push(j.UserID, notification.TypeClubInvitation, "Join request approved", "Your club join request was approved", j.ID)
	} else {
		cc.notifications.Push(j.UserID, notification.TypeClubInvitation, "Join request rejected", "Your club join request was rejected", j.ID)
	}
	responses.Success(c, http.StatusOK, "Join request "+newStatus, nil)
}

// --- Event handlers ---

// CreateEvent godoc
// @Summary      Create an event for own club
// @Tags         Events
// @Accept       json
// @Produce      json
// @Param        clubId  path  string              true  "Club user id"
// @Param        event   body  CreateEventRequest  true  "Event details"
// @Success      201  {object}  responses.Envelope{data=Event}
// @Failure      403  {object}  responses.Envelope
// @Router       /clubs/{clubId}/events [post]
// @Security     BearerAuth
func (cc *ClubController) CreateEvent(c *gin.Context) {
	clubID, ok := cc.requireOwnClub(c)
	if !ok {
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, validator.Message(err))
		return
	}

	e := &Event{
		ClubID:      clubID,
		Title:       req.Title,
		Date:        req.Date,
		Type:        req.Type,
		Description: req.Description,
		Location:    req.Location,
		CreatedBy:   clubID,
	}
	if err := cc.repo.CreateEvent(e); err != nil {
		logger.Error("event creation failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	responses.Success(c, http.StatusCreated, "Event created successfully", e)
}

// ListClubEvents godoc
// @Summary      List a club's events
// @Tags         Events
// @Produce      json
// @Param        clubId  path   string  true   "Club user id"
// @Param        status  query  string  false  "Event status filter"
// @Param        page    query  int     false  "Page"  default(1)
// @Param        limit   query  int     false  "Page size"  default(10)
// @Success      200  {object}  responses.Envelope{data=[]Event}
// @Router       /clubs/{clubId}/events [get]
// @Security     BearerAuth
func (cc *ClubController) ListClubEvents(c *gin.Context) {
	cc.listEvents(c, c.Param("clubId"))
}

// ListEvents godoc
// @Summary      List events across all clubs
// @Tags         Events
// @Produce      json
// @Param        clubId  query  string  false  "Club filter"
// @Param        status  query  string  false  "Event status filter"
// @Param        page    query  int     false  "Page"  default(1)
// @Param        limit   query  int     false  "Page size"  default(10)
// @Success      200  {object}  responses.Envelope{data=[]Event}
// @Router       /events [get]
// @Security     BearerAuth
func (cc *ClubController) ListEvents(c *gin.Context) {
	cc.listEvents(c, c.Query("clubId"))
}

func (cc *ClubController) listEvents(c *gin.Context, clubID string) {
	status := c.Query("status")
	if status != "" && !ValidEventStatus(status) {
		responses.BadRequest(c, "Invalid status filter")
		return
	}
	page, limit := utils.ParsePagination(c)

	events, total, err := cc.repo.ListEvents(EventFilter{
		ClubID: clubID,
		Status: status,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		logger.Error("event listing failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	responses.Paginated(c, events, total, page, limit)
}

// JoinEvent godoc
// @Summary      Join an event as a participant
// @Tags         Events
// @Produce      json
// @Param        id  path  string  true  "Event id"
// @Success      200  {object}  responses.Envelope
// @Failure      409  {object}  responses.Envelope "Already participating"
// @Router       /events/{id}/join [post]
// @Security     BearerAuth
func (cc *ClubController) JoinEvent(c *gin.Context) {
	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		responses.Unauthorized(c, "Access token required")
		return
	}

	if err := cc.repo.JoinEvent(c.Param("id"), callerID); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			responses.NotFound(c, "Event")
		case errors.Is(err, ErrAlreadyParticipating):
			responses.Conflict(c, "You are already participating in this event")
		default:
			logger.Error("event join failed", zap.Error(err))
			responses.InternalServerError(c, "")
		}
		return
	}
	responses.Success(c, http.StatusOK, "Joined event successfully", nil)
}

// UpdateEventStatus godoc
// @Summary      Update the status of an event
// @Description  Only the organizing club may change the status.
// @Tags         Events
// @Accept       json
// @Produce      json
// @Param        id      path  string                    true  "Event id"
// @Param        status  body  UpdateEventStatusRequest  true  "New status"
// @Success      200  {object}  responses.Envelope
// @Failure      403  {object}  responses.Envelope
// @Router       /events/{id}/status [patch]
// @Security     BearerAuth
func (cc *ClubController) UpdateEventStatus(c *gin.Context) {
	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		responses.Unauthorized(c, "Access token required")
		return
	}

	var req UpdateEventStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, validator.Message(err))
		return
	}

	e, err := cc.repo.GetEvent(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Event")
			return
		}
		logger.Error("event lookup failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	if e.ClubID != callerID {
		responses.Forbidden(c, "You can only manage your own club's events")
		return
	}

	if err := cc.repo.UpdateEventStatus(e.ID, req.Status); err != nil {
		logger.Error("event update failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	responses.Success(c, http.StatusOK, "Event status updated", nil)
}

// requireOwnClub resolves the caller and enforces that the path club id
// is the caller's own. Role gating happens in the route setup.
func (cc *ClubController) requireOwnClub(c *gin.Context) (string, bool) {
	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		responses.Unauthorized(c, "Access token required")
		return "", false
	}
	clubID := c.Param("clubId")
	if callerID != clubID {
		responses.Forbidden(c, "You can only manage your own club")
		return "", false
	}
	return clubID, true
}
