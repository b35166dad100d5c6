package scout

import (
	"errors"
	"net/http"

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

// ScoutController handles shortlists and scout reports.
type ScoutController struct {
	repo          ScoutRepository
	users         user.UserRepository
	notifications notification.NotificationRepository
	config        *config.Config
}

// NewScoutController creates a new ScoutController.
func NewScoutController(repo ScoutRepository, users user.UserRepository, notifications notification.NotificationRepository, cfg *config.Config) *ScoutController {
	return &ScoutController{repo: repo, users: users, notifications: notifications, config: cfg}
}

// --- DTOs ---

type AddShortlistRequest struct {
	PlayerID string `json:"playerId" binding:"required"`
}

type CreateReportRequest struct {
	PlayerID       string   `json:"playerId" binding:"required"`
	Rating         int      `json:"rating" binding:"required,min=1,max=10"`
	Notes          string   `json:"notes" binding:"required,min=10,max=2000"`
	Recommendation string   `json:"recommendation" binding:"required,oneof=HighlyRecommend Recommend Consider Pass"`
	Strengths      []string `json:"strengths" binding:"omitempty,dive,max=200"`
	Weaknesses     []string `json:"weaknesses" binding:"omitempty,dive,max=200"`
	PotentialFee   *float64 `json:"potentialFee" binding:"omitempty,min=0"`
}

// --- Handlers ---

// GetShortlist godoc
// @Summary      Fetch a scout's shortlist
// @Tags         Scouts
// @Produce      json
// @Param        scoutId  path  string  true  "Scout user id"
// @Success      200  {object}  responses.Envelope{data=[]ShortlistEntry}
// @Failure      403  {object}  responses.Envelope
// @Router       /scouts/{scoutId}/shortlist [get]
// @Security     BearerAuth
func (sc *ScoutController) GetShortlist(c *gin.Context) {
	scoutID, ok := sc.requireOwnShortlist(c)
	if !ok {
		return
	}

	entries, err := sc.repo.Shortlist(scoutID)
	if err != nil {
		logger.Error("shortlist query failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.PlayerID)
	}
	names, err := sc.users.NamesByID(ids)
	if err == nil {
		for i := range entries {
			entries[i].PlayerName = names[entries[i].PlayerID]
		}
	}
	responses.Success(c, http.StatusOK, "", entries)
}

// AddToShortlist godoc
// @Summary      Add a player to own shortlist
// @Tags         Scouts
// @Accept       json
// @Produce      json
// @Param        scoutId  path  string               true  "Scout user id"
// @Param        player   body  AddShortlistRequest  true  "Player to add"
// @Success      201  {object}  responses.Envelope
// @Failure      400  {object}  responses.Envelope "Already shortlisted"
// @Failure      404  {object}  responses.Envelope "Not a player"
// @Router       /scouts/{scoutId}/shortlist [post]
// @Security     BearerAuth
func (sc *ScoutController) AddToShortlist(c *gin.Context) {
	scoutID, ok := sc.requireOwnShortlist(c)
	if !ok {
		return
	}

	var req AddShortlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, validator.Message(err))
		return
	}

	isPlayer, err := sc.users.ExistsWithRole(req.PlayerID, user.RolePlayer)
	if err != nil {
		logger.Error("player lookup failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	if !isPlayer {
		responses.NotFound(c, "Player")
		return
	}

	if err := sc.repo.AddToShortlist(scoutID, req.PlayerID); err != nil {
		if errors.Is(err, ErrAlreadyShortlisted) {
			responses.BadRequest(c, "Player is already on your shortlist")
			return
		}
		logger.Error("shortlist add failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	responses.Success(c, http.StatusCreated, "Player added to shortlist", nil)
}

// RemoveFromShortlist godoc
// @Summary      Remove a player from own shortlist
// @Tags         Scouts
// @Produce      json
// @Param        scoutId   path  string  true  "Scout user id"
// @Param        playerId  path  string  true  "Player user id"
// @Success      200  {object}  responses.Envelope
// @Failure      404  {object}  responses.Envelope "Not on the shortlist"
// @Router       /scouts/{scoutId}/shortlist/{playerId} [delete]
// @Security     BearerAuth
func (sc *ScoutController) RemoveFromShortlist(c *gin.Context) {
	scoutID, ok := sc.requireOwnShortlist(c)
	if !ok {
		return
	}

	if err := sc.repo.RemoveFromShortlist(scoutID, c.Param("playerId")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Shortlisted player")
			return
		}
		logger.Error("shortlist remove failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	responses.Success(c, http.StatusOK, "Player removed from shortlist", nil)
}

// CreateReport godoc
// @Summary      File a scout report
// @Description  Caller must be a scout; the subject must be a player.
// @Tags         Scouts
// @Accept       json
// @Produce      json
// @Param        report  body  CreateReportRequest  true  "Report"
// @Success      201  {object}  responses.Envelope{data=ScoutReport}
// @Failure      404  {object}  responses.Envelope "Subject is not a player"
// @Router       /scouts/reports [post]
// @Security     BearerAuth
func (sc *ScoutController) CreateReport(c *gin.Context) {
	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		responses.Unauthorized(c, "Access token required")
		return
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, validator.Message(err))
		return
	}

	isPlayer, err := sc.users.ExistsWithRole(req.PlayerID, user.RolePlayer)
	if err != nil {
		logger.Error("player lookup failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	if !isPlayer {
		responses.NotFound(c, "Player")
		return
	}

	report := &ScoutReport{
		ScoutID:        callerID,
		PlayerID:       req.PlayerID,
		Rating:         req.Rating,
		Notes:          req.Notes,
		Recommendation: req.Recommendation,
		Strengths:      req.Strengths,
		Weaknesses:     req.Weaknesses,
		PotentialFee:   req.PotentialFee,
	}
	if err := sc.repo.CreateReport(report); err != nil {
		logger.Error("report creation failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}

	sc.notifications.Push(req.PlayerID, notification.TypeScoutReport, "New scout report", "A scout filed a report about you", report.ID)
	responses.Success(c, http.StatusCreated, "Report created successfully", report)
}

// ListReports godoc
// @Summary      List scout reports
// @Description  Filter by scoutId or playerId; with neither, reports where the caller is the scout or the subject.
// @Tags         Scouts
// @Produce      json
// @Param        scoutId   query  string  false  "Scout filter"
// @Param        playerId  query  string  false  "Player filter"
// @Param        page      query  int     false  "Page"  default(1)
// @Param        limit     query  int     false  "Page size"  default(10)
// @Success      200  {object}  responses.Envelope{data=[]ScoutReport}
// @Router       /scouts/reports [get]
// @Security     BearerAuth
func (sc *ScoutController) ListReports(c *gin.Context) {
	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		responses.Unauthorized(c, "Access token required")
		return
	}
	page, limit := utils.ParsePagination(c)

	reports, total, err := sc.repo.ListReports(ReportFilter{
		ScoutID:  c.Query("scoutId"),
		PlayerID: c.Query("playerId"),
		CallerID: callerID,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		logger.Error("report listing failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	responses.Paginated(c, reports, total, page, limit)
}

// requireOwnShortlist resolves the caller and enforces that the path
// scout id is the caller's own. Role gating happens in the route setup.
func (sc *ScoutController) requireOwnShortlist(c *gin.Context) (string, bool) {
	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		responses.Unauthorized(c, "Access token required")
		return "", false
	}
	scoutID := c.Param("scoutId")
	if callerID != scoutID {
		responses.Forbidden(c, "You can only manage your own shortlist")
		return "", false
	}
	return scoutID, true
}
