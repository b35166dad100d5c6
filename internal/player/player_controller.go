package player

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sportlink/backend/config"
	"github.com/sportlink/backend/internal/middleware"
	"github.com/sportlink/backend/internal/user"
	"github.com/sportlink/backend/pkg/logger"
	"github.com/sportlink/backend/pkg/responses"
	"github.com/sportlink/backend/pkg/utils"
	"github.com/sportlink/backend/pkg/validator"
)

const defaultTrendingLimit = 10

// PlayerController handles player search, trending, stats and status.
type PlayerController struct {
	repo   PlayerRepository
	config *config.Config
}

// NewPlayerController creates a new PlayerController.
func NewPlayerController(repo PlayerRepository, cfg *config.Config) *PlayerController {
	return &PlayerController{repo: repo, config: cfg}
}

// --- DTOs ---

type UpdateStatsRequest struct {
	Matches *int `json:"matches" binding:"omitempty,min=0"`
	Goals   *int `json:"goals" binding:"omitempty,min=0"`
	Assists *int `json:"assists" binding:"omitempty,min=0"`
}

type UpdateStatusRequest struct {
	Status   string `json:"status" binding:"required,oneof=FreeAgent Signed LookingToBeScouted"`
	ClubID   string `json:"clubId" binding:"omitempty,max=100"`
	ClubName string `json:"clubName" binding:"omitempty,max=200"`
}

// --- Handlers ---

// Search godoc
// @Summary      Search players
// @Description  Case-insensitive substring match on sport/position, exact match on status.
// @Tags         Players
// @Produce      json
// @Param        sport     query  string  false  "Sport substring"
// @Param        position  query  string  false  "Position substring"
// @Param        status    query  string  false  "Exact status"
// @Param        page      query  int     false  "Page"  default(1)
// @Param        limit     query  int     false  "Page size"  default(10)
// @Success      200  {object}  responses.Envelope{data=[]Summary}
// @Router       /players/search [get]
// @Security     BearerAuth
func (pc *PlayerController) Search(c *gin.Context) {
	page, limit := utils.ParsePagination(c)

	status := c.Query("status")
	if status != "" && !user.ValidPlayerStatus(status) {
		responses.BadRequest(c, "Invalid status filter")
		return
	}

	players, total, err := pc.repo.Search(SearchQuery{
		Sport:    c.Query("sport"),
		Position: c.Query("position"),
		Status:   status,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		logger.Error("player search failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	responses.Paginated(c, players, total, page, limit)
}

// Trending godoc
// @Summary      Trending players
// @Description  Sorted by goals descending, then assists descending.
// @Tags         Players
// @Produce      json
// @Param        limit  query  int  false  "Max results"  default(10)
// @Success      200  {object}  responses.Envelope{data=[]Summary}
// @Router       /players/trending [get]
// @Security     BearerAuth
func (pc *PlayerController) Trending(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultTrendingLimit)))
	if limit < 1 || limit > 100 {
		limit = defaultTrendingLimit
	}

	players, err := pc.repo.Trending(limit)
	if err != nil {
		logger.Error("trending query failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	responses.Success(c, http.StatusOK, "", players)
}

// GetStats godoc
// @Summary      Fetch a player's stats
// @Tags         Players
// @Produce      json
// @Param        id  path  string  true  "Player user id"
// @Success      200  {object}  responses.Envelope{data=user.PlayerStats}
// @Failure      404  {object}  responses.Envelope
// @Router       /players/{id}/stats [get]
// @Security     BearerAuth
func (pc *PlayerController) GetStats(c *gin.Context) {
	profile, err := pc.repo.GetProfile(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Player")
			return
		}
		logger.Error("player lookup failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	responses.Success(c, http.StatusOK, "", profile.Stats)
}

// UpdateStats godoc
// @Summary      Update own stats
// @Description  matches, goals and assists are each independently settable.
// @Tags         Players
// @Accept       json
// @Produce      json
// @Param        id     path  string              true  "Player user id"
// @Param        stats  body  UpdateStatsRequest  true  "Stat fields to set"
// @Success      200  {object}  responses.Envelope{data=user.PlayerStats}
// @Failure      403  {object}  responses.Envelope
// @Router       /players/{id}/stats [patch]
// @Security     BearerAuth
func (pc *PlayerController) UpdateStats(c *gin.Context) {
	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		responses.Unauthorized(c, "Access token required")
		return
	}
	if callerID != c.Param("id") {
		responses.Forbidden(c, "You can only update your own stats")
		return
	}

	var req UpdateStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, validator.Message(err))
		return
	}

	err = pc.repo.UpdateStats(callerID, StatsUpdate{
		Matches: req.Matches,
		Goals:   req.Goals,
		Assists: req.Assists,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Player")
			return
		}
		logger.Error("stats update failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}

	profile, err := pc.repo.GetProfile(callerID)
	if err != nil {
		responses.Success(c, http.StatusOK, "Stats updated successfully", nil)
		return
	}
	responses.Success(c, http.StatusOK, "Stats updated successfully", profile.Stats)
}

// GetStatus godoc
// @Summary      Fetch a player's status
// @Tags         Players
// @Produce      json
// @Param        id  path  string  true  "Player user id"
// @Success      200  {object}  responses.Envelope
// @Failure      404  {object}  responses.Envelope
// @Router       /players/{id}/status [get]
// @Security     BearerAuth
func (pc *PlayerController) GetStatus(c *gin.Context) {
	profile, err := pc.repo.GetProfile(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Player")
			return
		}
		logger.Error("player lookup failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	responses.Success(c, http.StatusOK, "", gin.H{
		"status":   profile.Status,
		"clubId":   profile.ClubID,
		"clubName": profile.ClubName,
	})
}

// UpdateStatus godoc
// @Summary      Update own status
// @Description  Signed requires clubId and clubName; any other status clears both.
// @Tags         Players
// @Accept       json
// @Produce      json
// @Param        id      path  string               true  "Player user id"
// @Param        status  body  UpdateStatusRequest  true  "New status"
// @Success      200  {object}  responses.Envelope{data=user.PlayerProfile}
// @Failure      400  {object}  responses.Envelope "Signed without club details"
// @Failure      403  {object}  responses.Envelope
// @Router       /players/{id}/status [patch]
// @Security     BearerAuth
func (pc *PlayerController) UpdateStatus(c *gin.Context) {
	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		responses.Unauthorized(c, "Access token required")
		return
	}
	if callerID != c.Param("id") {
		responses.Forbidden(c, "You can only update your own status")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, validator.Message(err))
		return
	}

	if req.Status == user.StatusSigned && (req.ClubID == "" || req.ClubName == "") {
		responses.BadRequest(c, "Signing requires clubId and clubName")
		return
	}

	if err := pc.repo.UpdateStatus(callerID, req.Status, req.ClubID, req.ClubName); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Player")
			return
		}
		logger.Error("status update failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}

	profile, err := pc.repo.GetProfile(callerID)
	if err != nil {
		responses.Success(c, http.StatusOK, "Status updated successfully", nil)
		return
	}
	responses.Success(c, http.StatusOK, "Status updated successfully", profile)
}
