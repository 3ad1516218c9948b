package handler

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"syscall"
	"testing"
	"time"

	"ContentFront/internal/middleware/recovery"
	"ContentFront/internal/middleware/session"
	"ContentFront/internal/modules/content/domain/entity"
	"ContentFront/pkg/util/myjwt"
	"ContentFront/pkg/xerr"
	"ContentFront/web"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testKey    = "0123456789abcdef"
	testCookie = "session"
)

type mockFetcher struct{ mock.Mock }

func (m *mockFetcher) GetContent(ctx context.Context, s entity.SessionInfo) (entity.ContentRecord, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(entity.ContentRecord), args.Error(1)
}

func newRouter(t *testing.T, fetcher *mockFetcher) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tmpl, err := web.ParseTemplates()
	require.NoError(t, err)

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.Use(recovery.Recovery(), recovery.Errors(), session.Load(testKey, testCookie))
	router.GET("/", NewHomeHandler(fetcher).Home)
	return router
}

func get(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHomeRendersUpstreamContent(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("GetContent", mock.Anything, entity.SessionInfo{}).
		Return(entity.ContentRecord{Title: "Test Title", Text: "Test Text"}, nil).Once()

	rec := get(newRouter(t, fetcher), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Test Title")
	assert.Contains(t, rec.Body.String(), "Test Text")
	fetcher.AssertExpectations(t)
}

func TestHomeRendersFetcherDefault(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("GetContent", mock.Anything, mock.Anything).
		Return(entity.ContentRecord{Title: "Default Title", Text: "Default Text"}, nil)

	rec := get(newRouter(t, fetcher), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Default Title")
	assert.Contains(t, rec.Body.String(), "Default Text")
}

func TestHomeForwardsSession(t *testing.T) {
	token, err := myjwt.SignSession(map[string]any{"user": "alice"}, testKey, time.Hour)
	require.NoError(t, err)

	fetcher := new(mockFetcher)
	fetcher.On("GetContent", mock.Anything, entity.SessionInfo{"user": "alice"}).
		Return(entity.ContentRecord{Title: "Hello alice", Text: "t"}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	rec := get(newRouter(t, fetcher), req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Hello alice")
	fetcher.AssertExpectations(t)
}

func TestHomeConnectionFailureRendersFallback(t *testing.T) {
	refused := &xerr.TransportError{
		Kind: xerr.TransportConnection,
		URL:  "http://api.internal/content",
		Err:  &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED},
	}
	fetcher := new(mockFetcher)
	fetcher.On("GetContent", mock.Anything, mock.Anything).Return(entity.ContentRecord{}, refused)

	rec := get(newRouter(t, fetcher), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No title")
	assert.Contains(t, rec.Body.String(), "No text")
}

func TestHomeOtherFailuresReturn500(t *testing.T) {
	cases := map[string]error{
		"timeout": &xerr.TransportError{Kind: xerr.TransportTimeout, Err: context.DeadlineExceeded},
		"status":  &xerr.TransportError{Kind: xerr.TransportStatus, StatusCode: http.StatusBadGateway, Err: errors.New("502")},
		"other":   &xerr.TransportError{Kind: xerr.TransportOther, Err: context.Canceled},
		"config":  xerr.NewConfigurationError("API_ADDRESS", "upstream address is not set"),
	}
	for name, fetchErr := range cases {
		t.Run(name, func(t *testing.T) {
			fetcher := new(mockFetcher)
			fetcher.On("GetContent", mock.Anything, mock.Anything).Return(entity.ContentRecord{}, fetchErr)

			rec := get(newRouter(t, fetcher), httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.JSONEq(t, `{"error": "Internal server error"}`, rec.Body.String())
			assert.NotContains(t, rec.Body.String(), "No title")
		})
	}
}
