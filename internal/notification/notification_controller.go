package notification

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sportlink/backend/internal/middleware"
	"github.com/sportlink/backend/pkg/logger"
	"github.com/sportlink/backend/pkg/responses"
	"github.com/sportlink/backend/pkg/utils"
)

// NotificationController serves a user's own notifications.
type NotificationController struct {
	repo NotificationRepository
}

// NewNotificationController creates a new NotificationController.
func NewNotificationController(repo NotificationRepository) *NotificationController {
	return &NotificationController{repo: repo}
}

// List godoc
// @Summary      List own notifications
// @Tags         Notifications
// @Produce      json
// @Param        page   query  int  false  "Page"  default(1)
// @Param        limit  query  int  false  "Page size"  default(10)
// @Success      200  {object}  responses.Envelope{data=[]Notification}
// @Router       /notifications [get]
// @Security     BearerAuth
func (nc *NotificationController) List(c *gin.Context) {
	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		responses.Unauthorized(c, "Access token required")
		return
	}
	page, limit := utils.ParsePagination(c)

	items, total, err := nc.repo.ListByUser(callerID, page, limit)
	if err != nil {
		logger.Error("notification listing failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	responses.Paginated(c, items, total, page, limit)
}

// MarkRead godoc
// @Summary      Mark a notification as read
// @Tags         Notifications
// @Produce      json
// @Param        id  path  string  true  "Notification id"
// @Success      200  {object}  responses.Envelope
// @Failure      404  {object}  responses.Envelope
// @Router       /notifications/{id}/read [patch]
// @Security     BearerAuth
func (nc *NotificationController) MarkRead(c *gin.Context) {
	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		responses.Unauthorized(c, "Access token required")
		return
	}

	if err := nc.repo.MarkRead(c.Param("id"), callerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Notification")
			return
		}
		logger.Error("notification update failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	responses.Success(c, http.StatusOK, "Notification marked as read", nil)
}
