package message

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

// MessageController handles direct messages and conversations.
type MessageController struct {
	repo          MessageRepository
	users         user.UserRepository
	notifications notification.NotificationRepository
	config        *config.Config
}

// NewMessageController creates a new MessageController.
func NewMessageController(repo MessageRepository, users user.UserRepository, notifications notification.NotificationRepository, cfg *config.Config) *MessageController {
	return &MessageController{repo: repo, users: users, notifications: notifications, config: cfg}
}

// --- DTOs ---

type SendMessageRequest struct {
	ReceiverID string `json:"receiverId" binding:"required"`
	Content    string `json:"content" binding:"required,min=1,max=1000"`
}

type EditMessageRequest struct {
	Content string `json:"content" binding:"required,min=1,max=1000"`
}

// --- Handlers ---

// Send godoc
// @Summary      Send a direct message
// @Tags         Messages
// @Accept       json
// @Produce      json
// @Param        message  body  SendMessageRequest  true  "Receiver and content"
// @Success      201  {object}  responses.Envelope{data=Message}
// @Failure      404  {object}  responses.Envelope "Receiver not found"
// @Router       /messages [post]
// @Security     BearerAuth
func (mc *MessageController) Send(c *gin.Context) {
	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		responses.Unauthorized(c, "Access token required")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, validator.Message(err))
		return
	}

	if req.ReceiverID == callerID {
		responses.BadRequest(c, "You cannot message yourself")
		return
	}
	exists, err := mc.users.Exists(req.ReceiverID)
	if err != nil {
		logger.Error("receiver lookup failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	if !exists {
		responses.NotFound(c, "Receiver")
		return
	}

	m := &Message{
		SenderID:   callerID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	}
	if err := mc.repo.Create(m); err != nil {
		logger.Error("message creation failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}

	mc.notifications.Push(req.ReceiverID, notification.TypeMessage, "New message", "You have a new message", m.ID)
	responses.Success(c, http.StatusCreated, "Message sent", m)
}

// Conversation godoc
// @Summary      Fetch the conversation with another user
// @Description  Both directions of the pair, ordered by creation time.
// @Tags         Messages
// @Produce      json
// @Param        userId  path   string  true   "Other participant"
// @Param        page    query  int     false  "Page"  default(1)
// @Param        limit   query  int     false  "Page size"  default(10)
// @Success      200  {object}  responses.Envelope{data=[]Message}
// @Router       /messages/conversations/{userId} [get]
// @Security     BearerAuth
func (mc *MessageController) Conversation(c *gin.Context) {
	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		responses.Unauthorized(c, "Access token required")
		return
	}
	page, limit := utils.ParsePagination(c)

	messages, total, err := mc.repo.Conversation(callerID, c.Param("userId"), page, limit)
	if err != nil {
		logger.Error("conversation query failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	responses.Paginated(c, messages, total, page, limit)
}

// MarkRead godoc
// @Summary      Mark a received message as read
// @Tags         Messages
// @Produce      json
// @Param        id  path  string  true  "Message id"
// @Success      200  {object}  responses.Envelope
// @Failure      403  {object}  responses.Envelope "Not the receiver"
// @Router       /messages/{id}/read [patch]
// @Security     BearerAuth
func (mc *MessageController) MarkRead(c *gin.Context) {
	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		responses.Unauthorized(c, "Access token required")
		return
	}

	m, err := mc.repo.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Message")
			return
		}
		logger.Error("message lookup failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	if m.ReceiverID != callerID {
		responses.Forbidden(c, "You can only mark your own received messages as read")
		return
	}

	if err := mc.repo.MarkRead(m.ID); err != nil {
		logger.Error("message update failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	responses.Success(c, http.StatusOK, "Message marked as read", nil)
}

// Edit godoc
// @Summary      Edit a sent message
// @Tags         Messages
// @Accept       json
// @Produce      json
// @Param        id       path  string              true  "Message id"
// @Param        message  body  EditMessageRequest  true  "New content"
// @Success      200  {object}  responses.Envelope{data=Message}
// @Failure      403  {object}  responses.Envelope "Not the sender"
// @Router       /messages/{id} [patch]
// @Security     BearerAuth
func (mc *MessageController) Edit(c *gin.Context) {
	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		responses.Unauthorized(c, "Access token required")
		return
	}

	var req EditMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, validator.Message(err))
		return
	}

	m, err := mc.repo.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Message")
			return
		}
		logger.Error("message lookup failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	if m.SenderID != callerID {
		responses.Forbidden(c, "You can only edit your own messages")
		return
	}

	if err := mc.repo.UpdateContent(m.ID, req.Content); err != nil {
		logger.Error("message update failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}

	updated, err := mc.repo.GetByID(m.ID)
	if err != nil {
		updated = m
	}
	responses.Success(c, http.StatusOK, "Message updated", updated)
}
