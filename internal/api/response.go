package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/i18n"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/services"
)

const (
	statusSuccess = "success"
	statusError   = "error"

	requestIDKey = "request_id"
	languageKey  = "lang"
	actorKey     = "actor"
)

// Response is the envelope shared by every endpoint
type Response struct {
	Status    string      `json:"status"`
	Code      int         `json:"code"`
	ErrorCode string      `json:"errorCode,omitempty"`
	Data      interface{} `json:"data"`
	Message   string      `json:"message"`
}

func language(c *gin.Context) string {
	return c.GetString(languageKey)
}

// actorFrom returns the caller resolved by the auth middleware
func actorFrom(c *gin.Context) services.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(services.Actor); ok {
			return actor
		}
	}
	return services.Actor{}
}

func (h *Handler) respond(c *gin.Context, status int, key string, data interface{}) {
	c.JSON(status, Response{
		Status:  statusSuccess,
		Code:    status,
		Data:    data,
		Message: h.tr.T(language(c), key),
	})
}

func (h *Handler) ok(c *gin.Context, data interface{}) {
	h.respond(c, http.StatusOK, i18n.MsgOK, data)
}

func (h *Handler) created(c *gin.Context, data interface{}) {
	h.respond(c, http.StatusCreated, i18n.MsgCreated, data)
}

func (h *Handler) updated(c *gin.Context, data interface{}) {
	h.respond(c, http.StatusOK, i18n.MsgUpdated, data)
}

func (h *Handler) deleted(c *gin.Context) {
	h.respond(c, http.StatusOK, i18n.MsgDeleted, nil)
}

func (h *Handler) fail(c *gin.Context, err error) {
	WriteError(c, h.tr, err)
}

// bindJSON decodes the body into dst, writing the failure envelope on error
func (h *Handler) bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.fail(c, invalidRequest(err))
		return false
	}
	return true
}

// bindQuery decodes query parameters into dst, writing the failure envelope on error
func (h *Handler) bindQuery(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		h.fail(c, invalidRequest(err))
		return false
	}
	return true
}
