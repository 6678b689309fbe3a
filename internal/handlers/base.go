package handlers

import (
	"errors"
	"io"
	"net/http"

	"socialfeed/internal/services"

	"github.com/gin-gonic/gin"
)

// respond writes the {success, message, ...} envelope.
func respond(c *gin.Context, code int, message string, payload gin.H) {
	body := gin.H{
		"success": code < http.StatusBadRequest,
		"message": message,
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(code, body)
}

// respondError maps service errors onto status codes. Unknown errors are
// recorded on the context for the request logger and never shown to clients.
func respondError(c *gin.Context, err error) {
	var (
		verr   *services.ValidationError
		cerr   *services.ConflictError
		nerr   *services.NotFoundError
		bigErr *UploadTooLargeError
	)
	switch {
	case errors.As(err, &verr):
		payload := gin.H{}
		if len(verr.Missing) > 0 && verr.Message == services.MsgMissingFields {
			payload["missingFields"] = verr.Missing
		}
		respond(c, http.StatusBadRequest, verr.Message, payload)
	case errors.As(err, &cerr):
		respond(c, http.StatusBadRequest, cerr.Error(), nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		respond(c, http.StatusForbidden, err.Error(), nil)
	case errors.As(err, &nerr):
		respond(c, http.StatusNotFound, nerr.Error(), nil)
	case errors.As(err, &bigErr):
		respond(c, http.StatusBadRequest, bigErr.Error(), nil)
	default:
		_ = c.Error(err)
		respond(c, http.StatusInternalServerError, services.MsgServerError, nil)
	}
}

// bind decodes a JSON, urlencoded or multipart body into obj. An empty body
// leaves obj zero so the services report the missing fields.
func bind(c *gin.Context, obj any) bool {
	if err := c.ShouldBind(obj); err != nil && !errors.Is(err, io.EOF) {
		respond(c, http.StatusBadRequest, msgBadRequest, nil)
		return false
	}
	return true
}

const msgBadRequest = "Solicitud inválida"
