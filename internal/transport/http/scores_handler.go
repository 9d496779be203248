package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/order_guard/internal/scores"
	"github.com/Gunvolt24/order_guard/pkg/httpx"
)

// finalScores: POST /scores/final?top=K, тело = JSON-массив записей или JSONL.
// Ответ упорядочен по student_id.
func (h *Handler) finalScores(c *gin.Context) {
	raw, ok := readBody(c)
	if !ok {
		return
	}

	records, err := scores.DecodeRecords(raw)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	top := httpx.ParseTop(c, h.scores.Top(), maxTop)
	out, err := h.scores.FinalScores(records, top)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"top": top, "scores": out})
	case errors.Is(err, scores.ErrInvalidRecord):
		errorJSON(c, http.StatusBadRequest, err.Error())
	default:
		h.log.Errorf(c.Request.Context(), "FinalScores failed: %v", err)
		errorJSON(c, http.StatusInternalServerError, "internal server error")
	}
}
