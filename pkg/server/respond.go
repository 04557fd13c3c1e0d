package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookvault/bookvault/pkg/logger"
	"github.com/bookvault/bookvault/pkg/query"
	"github.com/bookvault/bookvault/pkg/repository"
	"github.com/bookvault/bookvault/pkg/service"
)

// messageResponse is the error/confirmation payload shape.
type messageResponse struct {
	Message string `json:"message"`
}

// respondError maps application errors to HTTP status codes and logs the
// failing request context. Malformed query DSL surfaces as 400, missing
// entities as 404, everything else as 500.
func respondError(c *gin.Context, log logger.Logger, err error) {
	status := http.StatusInternalServerError
	switch {
	case service.IsNotFound(err):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrInvalidOrderField),
		errors.Is(err, repository.ErrInvalidFilterField),
		errors.Is(err, query.ErrUnknownOperator),
		errors.Is(err, query.ErrMalformedCondition):
		status = http.StatusBadRequest
	}

	log.Error("request failed",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", status,
		"error", err,
	)
	c.JSON(status, messageResponse{Message: err.Error()})
}

// respondValidationError surfaces joined field messages as a 400.
func respondValidationError(c *gin.Context, log logger.Logger, err error) {
	log.Error("request validation failed",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", err,
	)
	c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
}
