package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/order_guard/pkg/httpx"
)

// listValidators: GET /validators, id зарегистрированных валидаторов по возрастанию.
func (h *Handler) listValidators(c *gin.Context) {
	ids := h.registry.IDs()
	if ids == nil {
		ids = []int{}
	}
	c.JSON(http.StatusOK, gin.H{"validators": ids})
}

// unregisterValidator: DELETE /validators/:id; 404 если такого id нет.
func (h *Handler) unregisterValidator(c *gin.Context) {
	id, ok := httpx.ParseID64(c, "id")
	if !ok {
		errorJSON(c, http.StatusBadRequest, "validator id must be a positive integer")
		return
	}
	if !h.registry.Unregister(int(id)) {
		errorJSON(c, http.StatusNotFound, "validator not found")
		return
	}
	h.log.Infof(c.Request.Context(), "validator unregistered validator_id=%d", id)
	c.Status(http.StatusNoContent)
}
