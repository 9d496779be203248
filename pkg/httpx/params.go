package httpx

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ClampInt: ограничение значения v в диапазоне [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParseTop читает top из query: без параметра или при нечисловом значении
// возвращается def, иначе значение ограничивается [1, maxTop].
func ParseTop(c *gin.Context, def, maxTop int) int {
	raw, ok := c.GetQuery("top")
	if !ok {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return ClampInt(v, 1, maxTop)
}

// ParseID64 разбирает положительный целочисленный идентификатор из path-параметра.
func ParseID64(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
