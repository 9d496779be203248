package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"

	"github.com/Gunvolt24/order_guard/internal/ports/mocks"
	"github.com/Gunvolt24/order_guard/pkg/httpx"
)

func newLoggedRouter(t *testing.T) (*gin.Engine, *mocks.MockLogger) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := mocks.NewMockLogger(gomock.NewController(t))
	r := gin.New()
	r.Use(httpx.RequestLogger(log))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	return r, log
}

func serve(r http.Handler, path string) {
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, http.NoBody))
}

func TestRequestLogger_Levels(t *testing.T) {
	r, log := newLoggedRouter(t)

	log.EXPECT().Infof(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)
	log.EXPECT().Warnf(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)

	serve(r, "/ok")
	serve(r, "/boom")
}

func TestRequestLogger_QuietRoutes(t *testing.T) {
	r, log := newLoggedRouter(t)

	log.EXPECT().Infof(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	log.EXPECT().Warnf(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	serve(r, "/ping")
}
