package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/order_guard/internal/validation"
	"github.com/Gunvolt24/order_guard/pkg/validate"
)

// validateOrder: POST /orders/validate, тело = заказ в JSON, ответ = вердикт.
// 400 на неразборчивый заказ, 500 если валидатор сломался и решение не принято.
func (h *Handler) validateOrder(c *gin.Context) {
	raw, ok := readBody(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	verdict, err := h.orders.ValidateOrder(ctx, raw)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, verdict)
	case errors.Is(err, validate.ErrInvalidOrder):
		errorJSON(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		h.log.Warnf(ctx, "order validation timed out: %v", err)
		errorJSON(c, http.StatusGatewayTimeout, "validation timed out")
	case errors.Is(err, validation.ErrValidatorFailed):
		h.log.Errorf(ctx, "order not decided: %v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":      "validator execution failed",
			"validators": validation.FailedValidatorIDs(err),
		})
	default:
		h.log.Errorf(ctx, "ValidateOrder failed: %v", err)
		errorJSON(c, http.StatusInternalServerError, "internal server error")
	}
}
