package post

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

// PostController handles the feed, single posts, likes, shares and
// comments.
type PostController struct {
	repo          PostRepository
	users         user.UserRepository
	notifications notification.NotificationRepository
	config        *config.Config
}

// NewPostController creates a new PostController.
func NewPostController(repo PostRepository, users user.UserRepository, notifications notification.NotificationRepository, cfg *config.Config) *PostController {
	return &PostController{repo: repo, users: users, notifications: notifications, config: cfg}
}

// --- DTOs ---

type CreateMediaRequest struct {
	Type      string `json:"type" binding:"required,oneof=image video"`
	URL       string `json:"url" binding:"required,max=500"`
	Thumbnail string `json:"thumbnail" binding:"omitempty,max=500"`
	Filename  string `json:"filename" binding:"required,max=255"`
	SizeBytes int64  `json:"sizeBytes" binding:"omitempty,min=0"`
}

type CreatePostRequest struct {
	Content string               `json:"content" binding:"required,min=1,max=2000"`
	Media   []CreateMediaRequest `json:"media" binding:"omitempty,dive"`
	Tags    []string             `json:"tags" binding:"omitempty,dive,max=50"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=500"`
}

// --- Handlers ---

// List godoc
// @Summary      List the feed
// @Description  Optionally filtered by author or by author role. The role filter resolves matching user ids first.
// @Tags         Posts
// @Produce      json
// @Param        authorId  query  string  false  "Author filter"
// @Param        role      query  string  false  "Author role filter"
// @Param        page      query  int     false  "Page"  default(1)
// @Param        limit     query  int     false  "Page size"  default(10)
// @Success      200  {object}  responses.Envelope{data=[]Post}
// @Router       /posts [get]
// @Security     BearerAuth
func (pc *PostController) List(c *gin.Context) {
	page, limit := utils.ParsePagination(c)

	filter := ListFilter{
		AuthorID: c.Query("authorId"),
		Page:     page,
		Limit:    limit,
	}

	if role := c.Query("role"); role != "" {
		if !user.ValidRole(role) {
			responses.BadRequest(c, "Invalid role filter")
			return
		}
		ids, err := pc.users.IDsByRole(role)
		if err != nil {
			logger.Error("role resolution failed", zap.Error(err))
			responses.InternalServerError(c, "")
			return
		}
		if ids == nil {
			ids = []string{}
		}
		filter.AuthorIDs = ids
	}

	posts, total, err := pc.repo.List(filter)
	if err != nil {
		logger.Error("post listing failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}

	pc.fillAuthorNames(posts)
	responses.Paginated(c, posts, total, page, limit)
}

// Create godoc
// @Summary      Create a post
// @Tags         Posts
// @Accept       json
// @Produce      json
// @Param        post  body  CreatePostRequest  true  "Post content"
// @Success      201  {object}  responses.Envelope{data=Post}
// @Router       /posts [post]
// @Security     BearerAuth
func (pc *PostController) Create(c *gin.Context) {
	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		responses.Unauthorized(c, "Access token required")
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, validator.Message(err))
		return
	}

	media := make(MediaList, 0, len(req.Media))
	for _, m := range req.Media {
		media = append(media, MediaItem{
			Type:      m.Type,
			URL:       m.URL,
			Thumbnail: m.Thumbnail,
			Filename:  m.Filename,
			SizeBytes: m.SizeBytes,
		})
	}

	p := &Post{
		AuthorID: callerID,
		Content:  req.Content,
		Media:    media,
		Tags:     req.Tags,
	}
	if err := pc.repo.Create(p); err != nil {
		logger.Error("post creation failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	p.Likes = []string{}

	responses.Success(c, http.StatusCreated, "Post created successfully", p)
}

// GetByID godoc
// @Summary      Fetch a post with its comments and likes
// @Tags         Posts
// @Produce      json
// @Param        id  path  string  true  "Post id"
// @Success      200  {object}  responses.Envelope{data=Post}
// @Failure      404  {object}  responses.Envelope
// @Router       /posts/{id} [get]
// @Security     BearerAuth
func (pc *PostController) GetByID(c *gin.Context) {
	p, err := pc.repo.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Post")
			return
		}
		logger.Error("post lookup failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}

	posts := []Post{*p}
	pc.fillAuthorNames(posts)
	responses.Success(c, http.StatusOK, "", posts[0])
}

// Delete godoc
// @Summary      Delete own post
// @Description  Comments are deleted first, then likes, then the post.
// @Tags         Posts
// @Produce      json
// @Param        id  path  string  true  "Post id"
// @Success      200  {object}  responses.Envelope
// @Failure      403  {object}  responses.Envelope
// @Router       /posts/{id} [delete]
// @Security     BearerAuth
func (pc *PostController) Delete(c *gin.Context) {
	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		responses.Unauthorized(c, "Access token required")
		return
	}

	p, err := pc.repo.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Post")
			return
		}
		logger.Error("post lookup failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	if p.AuthorID != callerID {
		responses.Forbidden(c, "You can only delete your own posts")
		return
	}

	if err := pc.repo.Delete(p.ID); err != nil {
		logger.Error("post deletion failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	responses.Success(c, http.StatusOK, "Post deleted successfully", nil)
}

// Like godoc
// @Summary      Toggle a like
// @Description  Adds the caller's like if absent, removes it if present.
// @Tags         Posts
// @Produce      json
// @Param        id  path  string  true  "Post id"
// @Success      200  {object}  responses.Envelope
// @Failure      404  {object}  responses.Envelope
// @Router       /posts/{id}/like [post]
// @Security     BearerAuth
func (pc *PostController) Like(c *gin.Context) {
	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		responses.Unauthorized(c, "Access token required")
		return
	}

	p, err := pc.repo.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Post")
			return
		}
		logger.Error("post lookup failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}

	liked, err := pc.repo.ToggleLike(p.ID, callerID)
	if err != nil {
		logger.Error("like toggle failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}

	message := "Post unliked"
	if liked {
		message = "Post liked"
		if p.AuthorID != callerID {
			pc.notifications.Push(p.AuthorID, notification.TypeLike, "New like", "Someone liked your post", p.ID)
		}
	}
	responses.Success(c, http.StatusOK, message, gin.H{"liked": liked})
}

// Share godoc
// @Summary      Share a post
// @Description  Increments the share counter unconditionally.
// @Tags         Posts
// @Produce      json
// @Param        id  path  string  true  "Post id"
// @Success      200  {object}  responses.Envelope
// @Failure      404  {object}  responses.Envelope
// @Router       /posts/{id}/share [post]
// @Security     BearerAuth
func (pc *PostController) Share(c *gin.Context) {
	if err := pc.repo.Share(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Post")
			return
		}
		logger.Error("share increment failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}
	responses.Success(c, http.StatusOK, "Post shared", nil)
}

// AddComment godoc
// @Summary      Comment on a post
// @Tags         Posts
// @Accept       json
// @Produce      json
// @Param        id       path  string                true  "Post id"
// @Param        comment  body  CreateCommentRequest  true  "Comment content"
// @Success      201  {object}  responses.Envelope{data=Comment}
// @Failure      404  {object}  responses.Envelope
// @Router       /posts/{id}/comments [post]
// @Security     BearerAuth
func (pc *PostController) AddComment(c *gin.Context) {
	callerID, err := middleware.CurrentUserID(c)
	if err != nil {
		responses.Unauthorized(c, "Access token required")
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, validator.Message(err))
		return
	}

	p, err := pc.repo.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Post")
			return
		}
		logger.Error("post lookup failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}

	cm := &Comment{
		PostID:   p.ID,
		AuthorID: callerID,
		Content:  req.Content,
	}
	if err := pc.repo.AddComment(cm); err != nil {
		logger.Error("comment creation failed", zap.Error(err))
		responses.InternalServerError(c, "")
		return
	}

	if p.AuthorID != callerID {
		pc.notifications.Push(p.AuthorID, notification.TypeComment, "New comment", "Someone commented on your post", p.ID)
	}
	responses.Success(c, http.StatusCreated, "Comment added successfully", cm)
}

// fillAuthorNames resolves author display names for posts and their
// comments; authors that no longer exist render as UnknownAuthor.
func (pc *PostController) fillAuthorNames(posts []Post) {
	idSet := make(map[string]struct{})
	for i := range posts {
		idSet[posts[i].AuthorID] = struct{}{}
		for j := range posts[i].Comments {
			idSet[posts[i].Comments[j].AuthorID] = struct{}{}
		}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	names, err := pc.users.NamesByID(ids)
	if err != nil {
		logger.Warn("author name resolution failed", zap.Error(err))
		return
	}

	resolve := func(id string) string {
		if name, ok := names[id]; ok {
			return name
		}
		return UnknownAuthor
	}
	for i := range posts {
		posts[i].AuthorName = resolve(posts[i].AuthorID)
		for j := range posts[i].Comments {
			posts[i].Comments[j].AuthorName = resolve(posts[i].Comments[j].AuthorID)
		}
	}
}
