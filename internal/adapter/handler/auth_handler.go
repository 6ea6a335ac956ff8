package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ayes009/photoshare-webapp/internal/adapter/handler/dto/request"
	"github.com/ayes009/photoshare-webapp/internal/adapter/handler/dto/response"
	"github.com/ayes009/photoshare-webapp/internal/pkg/httputil"
	"github.com/ayes009/photoshare-webapp/internal/usecase/auth"
)

type AuthHandler struct {
	authSvc AuthService
}

func NewAuthHandler(authSvc AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login godoc
//
//	@Summary		Start a session
//	@Description	Issue an unverified session token for a username and role
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		request.LoginRequest	false	"Username and role"
//	@Success		200		{object}	response.LoginResponse
//	@Failure		400		{object}	httputil.ErrorResponse	"Invalid role"
//	@Router			/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	session, err := h.authSvc.Login(c.Request.Context(), auth.LoginInput{
		Username: req.Username,
		Role:     req.Role,
	})
	if err != nil {
		httputil.HandleError(c, err)
		return
	}

	httputil.OK(c, response.LoginFromSession(session))
}
