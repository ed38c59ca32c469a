package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/eventboard/backend/internal/model"
	"github.com/eventboard/backend/internal/service"
	"github.com/gin-gonic/gin"
)

const msgServerError = "An error occurred on the server, please double-check your request!"

// writeError maps service sentinels onto status codes. kind and id name the
// resource for 404 messages.
func writeError(c *gin.Context, err error, kind, id string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Message: "Invalid credentials!"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{Message: fmt.Sprintf("%s with id %s was not found", kind, id)})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, model.ErrorResponse{Message: fmt.Sprintf("%s already exists", kind)})
	default:
		slog.ErrorContext(c.Request.Context(), "request failed",
			"request_id", c.GetString(requestIDKey),
			"route", c.FullPath(),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Message: msgServerError})
	}
}

func writeBadRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, model.ErrorResponse{Message: "invalid request body"})
}
