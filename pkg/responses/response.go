package responses

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response wrapper every endpoint returns.
type Envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination holds page metadata for list responses.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// Success sends a success envelope with an optional message and payload.
func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Paginated sends a success envelope carrying list data plus page metadata.
func Paginated(c *gin.Context, data interface{}, total int64, page, limit int) {
	if limit <= 0 {
		limit = 10
	}
	pages := int(math.Ceil(float64(total) / float64(limit)))
	if pages == 0 && total > 0 {
		pages = 1
	}
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    data,
		Pagination: &Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	})
}

// Error sends an error envelope and aborts the handler chain.
func Error(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, Envelope{
		Success: false,
		Error:   message,
	})
}

// BadRequest sends a 400 error envelope.
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request payload or parameters"
	}
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 error envelope.
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Unauthorized access"
	}
	Error(c, http.StatusUnauthorized, message)
}

// Forbidden sends a 403 error envelope.
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access to this resource is forbidden"
	}
	Error(c, http.StatusForbidden, message)
}

// NotFound sends a 404 error envelope for the named resource.
func NotFound(c *gin.Context, resourceName string) {
	Error(c, http.StatusNotFound, resourceName+" not found")
}

// Conflict sends a 409 error envelope.
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

// InternalServerError sends a 500 error envelope. The underlying error is
// logged by the caller, never exposed to the client.
func InternalServerError(c *gin.Context, message string) {
	if message == "" {
		message = "An unexpected error occurred on the server"
	}
	Error(c, http.StatusInternalServerError, message)
}
