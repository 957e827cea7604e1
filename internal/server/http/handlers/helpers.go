package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/printshop/internal/domain/errors"
	"github.com/polkiloo/printshop/internal/domain/model"
	"github.com/polkiloo/printshop/internal/server/http/dto"
	"github.com/polkiloo/printshop/internal/server/http/middleware"
)

const internalErrorCode = "internal_error"

// CurrentAdminID extracts authenticated admin identifier from context.
func CurrentAdminID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.AdminIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// respondError maps domain errors to the JSON error envelope.
// Unexpected errors are attached to the gin context for the request logger
// and never reach the client.
func respondError(c *gin.Context, err error) {
	var rejected *domainErrors.UploadRejectedError
	switch {
	case errors.As(err, &rejected):
		c.JSON(http.StatusBadRequest, dto.Fail(rejected.Reason, rejected.Category))
	case errors.Is(err, domainErrors.ErrNoValidFields):
		c.JSON(http.StatusBadRequest, dto.Fail("No valid fields to update", ""))
	case errors.Is(err, domainErrors.ErrQuoteConverted):
		c.JSON(http.StatusBadRequest, dto.Fail("Cannot delete a converted quote", ""))
	case errors.Is(err, domainErrors.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid status", ""))
	case errors.Is(err, domainErrors.ErrAlreadyPaid):
		c.JSON(http.StatusBadRequest, dto.Fail("Order is already paid", ""))
	case errors.Is(err, domainErrors.ErrPaymentLocked):
		c.JSON(http.StatusBadRequest, dto.Fail("Order is finalized, payment cannot change", ""))
	case errors.Is(err, domainErrors.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, dto.Fail(clientMessage(err), ""))
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.Fail("Invalid login or password", ""))
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.Fail("Not found", ""))
	case errors.Is(err, domainErrors.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, dto.Fail("Too many upload attempts. Please try again later.", "rate_limited"))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.Fail("Internal server error", internalErrorCode))
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.Fail(message, ""))
}

func clientMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), domainErrors.ErrInvalidInput.Error()+": ")
	if msg == "" {
		return "Invalid request"
	}
	return msg
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func queryPage(c *gin.Context) (model.Page, bool) {
	var page model.Page
	for name, dst := range map[string]*int{"limit": &page.Limit, "offset": &page.Offset} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequest(c, "Invalid "+name)
			return page, false
		}
		*dst = n
	}
	return page, true
}
