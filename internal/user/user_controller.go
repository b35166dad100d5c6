package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sportlink/backend/config"
	"github.com/sportlink/backend/internal/middleware"
	"github.com/sportlink/backend/pkg/logger"
	"github.com/sportlink/backend/pkg/responses"
	"github.com/sportlink/backend/pkg/utils"
	"github.com/sportlink/backend/pkg/validator"
)

// UserController handles profile reads, search, and self management.
type UserController struct {
	repo   UserRepository
	config *config.Config
}

// NewUserController creates a new UserController.
func NewUserController(repo UserRepository, cfg *config.Config) *UserController {
	return &UserController{repo: repo, config: cfg}
}

// --- DTOs ---

type UpdatePlayerProfileRequest struct {
	Sport    *string `json:"sport" binding:"omitempty,max=100"`
	Position *string `json:"position" binding:"omitempty,max=100"`
	Age      *int    `json:"age" binding:"omitempty,min=5,max=100"`
}

type UpdateScoutProfileRequest struct {
	ClubID   *string `json:"clubId"`
	ClubName *string `json:"clubName" binding:"omitempty,max=200"`
}

type UpdateCoachProfileRequest struct {
	Specialization  *string        `json:"specialization" binding:"omitempty,max=200"`
	ExperienceYears *int           `json:"experienceYears" binding:"omitempty,min=0,max=80"`
	Certifications  *[]string      `json:"certifications"`
	ClubID          *string        `json:"clubId"`
	ClubName        *string        `json:"clubName" binding:"omitempty,max=200"`
	PlayersCoached  *int           `json:"playersCoached" binding:"omitempty,min=0"`
	Achievements    *[]Achievement `json:"achievements"`
}

type UpdateClubProfileRequest struct {
	Name         *string   `json:"name" binding:"omitempty,max=200"`
	Logo         *string   `json:"logo"`
	Location     *string   `json:"location" binding:"omitempty,max=200"`
	FoundedYear  *int      `json:"foundedYear" binding:"omitempty,min=1800,max=2100"`
	Description  *string   `json:"description" binding:"omitempty,max=2000"`
	Website      *string   `json:"website"`
	Tier         *string   `json:"tier" binding:"omitempty,oneof=Professional SemiProfessional Amateur Youth"`
	League       *string   `json:"league" binding:"omitempty,max=200"`
	Achievements *[]string `json:"achievements"`
	Facilities   *[]string `json:"facilities"`
}

// UpdateUserRequest merges provided fields only. Role and email are not
// updatable through this path.
type UpdateUserRequest struct {
	Name         *string                     `json:"name" binding:"omitempty,min=2,max=100"`
	ProfileImage *string                     `json:"profileImage" binding:"omitempty,max=500"`
	Player       *UpdatePlayerProfileRequest `json:"playerProfile"`
	Scout        *UpdateScoutProfileRequest  `json:"scoutProfile"`
	Coach        *UpdateCoachProfileRequest  `json:"coachProfile"`
	Club         *UpdateClubProfileRequest   `json:"clubProfile"`
}

// --- Handlers ---

// GetMe godoc
// @Summary      Fetch the authenticated user
// @Tags         Users
// @Produce      json
// @Success      200  {object}  responses.Envelope{data=User}
// @Router       /users/me [get]
// @Security     BearerAuth
func (uc *UserController) GetMe(c *gin.Context) {
	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		responses.Unauthorized(c, "Access token required")
		return
	}
	u, err := uc.repo.GetByID(callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "User")
			return
		}
		logger.Error("user lookup failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	responses.Success(c, http.StatusOK, "", u)
}

// GetByID godoc
// @Summary      Fetch a user by id
// @Tags         Users
// @Produce      json
// @Param        id  path  string  true  "User id"
// @Success      200  {object}  responses.Envelope{data=User}
// @Failure      404  {object}  responses.Envelope
// @Router       /users/{id} [get]
// @Security     BearerAuth
func (uc *UserController) GetByID(c *gin.Context) {
	u, err := uc.repo.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "User")
			return
		}
		logger.Error("user lookup failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	responses.Success(c, http.StatusOK, "", u)
}

// Search godoc
// @Summary      Search users
// @Description  Free-text match on name/email, exact role filter, substring match on club location / player club name.
// @Tags         Users
// @Produce      json
// @Param        query     query  string  false  "Name or email substring"
// @Param        role      query  string  false  "Role filter"
// @Param        location  query  string  false  "Location substring"
// @Param        page      query  int     false  "Page"  default(1)
// @Param        limit     query  int     false  "Page size"  default(10)
// @Success      200  {object}  responses.Envelope{data=[]User}
// @Router       /users [get]
// @Security     BearerAuth
func (uc *UserController) Search(c *gin.Context) {
	page, limit := utils.ParsePagination(c)
	role := c.Query("role")
	if role != "" && !ValidRole(role) {
		responses.BadRequest(c, "Invalid role filter")
		return
	}

	users, total, err := uc.repo.Search(SearchQuery{
		Query:    c.Query("query"),
		Role:     role,
		Location: c.Query("location"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		logger.Error("user search failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	responses.Paginated(c, users, total, page, limit)
}

// Update godoc
// @Summary      Update own profile
// @Description  Merges provided fields. Role and email are immutable.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        id       path  string             true  "User id"
// @Param        profile  body  UpdateUserRequest  true  "Fields to merge"
// @Success      200  {object}  responses.Envelope{data=User}
// @Failure      403  {object}  responses.Envelope "Not the profile owner"
// @Router       /users/{id} [patch]
// @Security     BearerAuth
func (uc *UserController) Update(c *gin.Context) {
	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		responses.Unauthorized(c, "Access token required")
		return
	}

	targetID := c.Param("id")
	if callerID != targetID {
		responses.Forbidden(c, "You can only update your own profile")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, validator.Message(err))
		return
	}

	u, err := uc.repo.GetByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "User")
			return
		}
		logger.Error("user lookup failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}

	applyUserUpdate(u, &req)

	if err := uc.repo.Update(u); err != nil {
		logger.Error("user update failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}

	updated, err := uc.repo.GetByID(targetID)
	if err != nil {
		updated = u
	}
	responses.Success(c, http.StatusOK, "Profile updated successfully", updated)
}

// Delete godoc
// @Summary      Delete own account
// @Description  Hard delete. Authored posts, comments and messages are not cascaded.
// @Tags         Users
// @Produce      json
// @Param        id  path  string  true  "User id"
// @Success      200  {object}  responses.Envelope
// @Failure      403  {object}  responses.Envelope
// @Router       /users/{id} [delete]
// @Security     BearerAuth
func (uc *UserController) Delete(c *gin.Context) {
	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		responses.Unauthorized(c, "Access token required")
		return
	}
	targetID := c.Param("id")
	if callerID != targetID {
		responses.Forbidden(c, "You can only delete your own account")
		return
	}

	if err := uc.repo.Delete(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "User")
			return
		}
		logger.Error("user deletion failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	responses.Success(c, http.StatusOK, "Account deleted successfully", nil)
}

// applyUserUpdate merges the provided fields onto the loaded user. Only
// the sub-profile matching the user's role is touched.
func applyUserUpdate(u *User, req *UpdateUserRequest) {
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.ProfileImage != nil {
		u.ProfileImage = *req.ProfileImage
	}

	switch u.Role {
	case RolePlayer:
		if u.Player == nil || req.Player == nil {
			return
		}
		if req.Player.Sport != nil {
			u.Player.Sport = *req.Player.Sport
		}
		if req.Player.Position != nil {
			u.Player.Position = *req.Player.Position
		}
		if req.Player.Age != nil {
			u.Player.Age = *req.Player.Age
		}
	case RoleScout:
		if u.Scout == nil || req.Scout == nil {
			return
		}
		if req.Scout.ClubID != nil {
			u.Scout.ClubID = *req.Scout.ClubID
		}
		if req.Scout.ClubName != nil {
			u.Scout.ClubName = *req.Scout.ClubName
		}
	case RoleCoach:
		if u.Coach == nil || req.Coach == nil {
			return
		}
		if req.Coach.Specialization != nil {
			u.Coach.Specialization = *req.Coach.Specialization
		}
		if req.Coach.ExperienceYears != nil {
			u.Coach.ExperienceYears = *req.Coach.ExperienceYears
		}
		if req.Coach.Certifications != nil {
			u.Coach.Certifications = *req.Coach.Certifications
		}
		if req.Coach.ClubID != nil {
			u.Coach.ClubID = *req.Coach.ClubID
		}
		if req.Coach.ClubName != nil {
			u.Coach.ClubName = *req.Coach.ClubName
		}
		if req.Coach.PlayersCoached != nil {
			u.Coach.PlayersCoached = *req.Coach.PlayersCoached
		}
		if req.Coach.Achievements != nil {
			u.Coach.Achievements = *req.Coach.Achievements
		}
	case RoleClub:
		if u.Club == nil || req.Club == nil {
			return
		}
		if req.Club.Name != nil {
			u.Club.Name = *req.Club.Name
		}
		if req.Club.Logo != nil {
			u.Club.Logo = *req.Club.Logo
		}
		if req.Club.Location != nil {
			u.Club.Location = *req.Club.Location
		}
		if req.Club.FoundedYear != nil {
			u.Club.FoundedYear = *req.Club.FoundedYear
		}
		if req.Club.Description != nil {
			u.Club.Description = *req.Club.Description
		}
		if req.Club.Website != nil {
			u.Club.Website = *req.Club.Website
		}
		if req.Club.Tier != nil {
			u.Club.Tier = *req.Club.Tier
		}
		if req.Club.League != nil {
			u.Club.League = *req.Club.League
		}
		if req.Club.Achievements != nil {
			u.Club.Achievements = *req.Club.Achievements
		}
		if req.Club.Facilities != nil {
			u.Club.Facilities = *req.Club.Facilities
		}
	}
}
