package httpx

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Gunvolt24/order_guard/pkg/ctxmeta"
)

// HeaderRequestID: заголовок корреляции запросов.
const HeaderRequestID = "X-Request-ID"

// maxRequestIDLen: более длинный клиентский id заменяется сгенерированным.
const maxRequestIDLen = 128

// RequestIDMiddleware берёт X-Request-ID клиента (или генерирует UUID), кладёт его
// в контекст запроса и возвращает в ответном заголовке.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = uuid.New().String()
		}
		c.Header(HeaderRequestID, requestID)

		ctx := ctxmeta.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
