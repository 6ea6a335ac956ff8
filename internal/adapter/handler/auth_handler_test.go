package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ayes009/photoshare-webapp/internal/adapter/handler"
	"github.com/ayes009/photoshare-webapp/internal/domain"
	"github.com/ayes009/photoshare-webapp/internal/domain/entity"
	"github.com/ayes009/photoshare-webapp/internal/domain/valueobject"
	"github.com/ayes009/photoshare-webapp/internal/mocks"
	"github.com/ayes009/photoshare-webapp/internal/pkg/apperror"
	"github.com/ayes009/photoshare-webapp/internal/pkg/httputil"
	"github.com/ayes009/photoshare-webapp/internal/usecase/auth"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// withUsername stands in for the identity middleware.
func withUsername(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(httputil.UsernameKey, name)
		c.Next()
	}
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		authSvc := mocks.NewMockAuthService(ctrl)
		h := handler.NewAuthHandler(authSvc)

		router := setupRouter()
		router.POST("/login", h.Login)

		session := entity.NewSession("alice", valueobject.RoleCreator, "YWxpY2U6MQ==", time.Now())
		authSvc.EXPECT().Login(gomock.Any(), auth.LoginInput{Username: "alice", Role: "creator"}).Return(session, nil)

		body := `{"username":"alice","role":"creator"}`
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Access granted - Welcome to PhotoShare!", resp["message"])
		user := resp["user"].(map[string]any)
		assert.Equal(t, session.ID, user["id"])
		assert.Equal(t, "alice", user["username"])
		assert.Equal(t, "creator", user["role"])
		assert.Equal(t, "YWxpY2U6MQ==", user["token"])
	})

	t.Run("accepts an empty body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		authSvc := mocks.NewMockAuthService(ctrl)
		h := handler.NewAuthHandler(authSvc)

		router := setupRouter()
		router.POST("/login", h.Login)

		session := entity.NewSession(auth.DefaultUsername, auth.DefaultRole, "tok", time.Now())
		authSvc.EXPECT().Login(gomock.Any(), auth.LoginInput{}).Return(session, nil)

		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("long username is passed through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		authSvc := mocks.NewMockAuthService(ctrl)
		h := handler.NewAuthHandler(authSvc)

		router := setupRouter()
		router.POST("/login", h.Login)

		name := strings.Repeat("n", 300)
		session := entity.NewSession(name, auth.DefaultRole, "tok", time.Now())
		authSvc.EXPECT().Login(gomock.Any(), auth.LoginInput{Username: name}).Return(session, nil)

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"username":"`+name+`"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid role", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		authSvc := mocks.NewMockAuthService(ctrl)
		h := handler.NewAuthHandler(authSvc)

		router := setupRouter()
		router.POST("/login", h.Login)

		authSvc.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, apperror.Validation(domain.ErrInvalidRole))

		body := `{"username":"alice","role":"admin"}`
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp httputil.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, domain.ErrInvalidRole.Error(), resp.Error)
		assert.Equal(t, apperror.CodeValidation, resp.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		authSvc := mocks.NewMockAuthService(ctrl)
		h := handler.NewAuthHandler(authSvc)

		router := setupRouter()
		router.POST("/login", h.Login)

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"username":`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
