package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ayes009/photoshare-webapp/internal/adapter/handler/dto/request"
	"github.com/ayes009/photoshare-webapp/internal/adapter/handler/dto/response"
	"github.com/ayes009/photoshare-webapp/internal/pkg/httputil"
)

type EngagementHandler struct {
	engagementSvc EngagementService
}

func NewEngagementHandler(engagementSvc EngagementService) *EngagementHandler {
	return &EngagementHandler{engagementSvc: engagementSvc}
}

// Like godoc
//
//	@Summary	Like a photo
//	@Tags		engagement
//	@Produce	json
//	@Param		id	path		string	true	"Photo ID"
//	@Success	200	{object}	response.LikeResponse
//	@Failure	404	{object}	httputil.ErrorResponse
//	@Failure	409	{object}	httputil.ErrorResponse	"Too many concurrent updates"
//	@Failure	500	{object}	httputil.ErrorResponse
//	@Router		/photos/{id}/like [post]
func (h *EngagementHandler) Like(c *gin.Context) {
	photo, err := h.engagementSvc.Like(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.HandleError(c, err)
		return
	}

	httputil.OK(c, response.LikeResponse{Success: true, Likes: photo.Likes})
}

// Rate godoc
//
//	@Summary	Rate a photo
//	@Tags		engagement
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Photo ID"
//	@Param		request	body		request.RateRequest	true	"Rating from 1 to 5"
//	@Success	200		{object}	response.RateResponse
//	@Failure	400		{object}	httputil.ErrorResponse
//	@Failure	404		{object}	httputil.ErrorResponse
//	@Failure	409		{object}	httputil.ErrorResponse	"Too many concurrent updates"
//	@Failure	500		{object}	httputil.ErrorResponse
//	@Router		/photos/{id}/rate [post]
func (h *EngagementHandler) Rate(c *gin.Context) {
	var req request.RateRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	var rating float64
	if req.Rating != nil {
		rating = *req.Rating
	}

	photo, err := h.engagementSvc.Rate(c.Request.Context(), c.Param("id"), rating)
	if err != nil {
		httputil.HandleError(c, err)
		return
	}

	httputil.OK(c, response.RateResponse{
		Success:     true,
		Rating:      photo.Rating,
		RatingCount: photo.RatingCount,
	})
}

// Comment godoc
//
//	@Summary	Comment on a photo
//	@Tags		engagement
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string					true	"Photo ID"
//	@Param		request	body		request.CommentRequest	true	"Comment text"
//	@Success	201		{object}	response.CommentResponse
//	@Failure	400		{object}	httputil.ErrorResponse
//	@Failure	404		{object}	httputil.ErrorResponse
//	@Failure	409		{object}	httputil.ErrorResponse	"Too many concurrent updates"
//	@Failure	500		{object}	httputil.ErrorResponse
//	@Router		/photos/{id}/comments [post]
func (h *EngagementHandler) Comment(c *gin.Context) {
	var req request.CommentRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	comment, err := h.engagementSvc.Comment(c.Request.Context(), c.Param("id"), httputil.GetUsername(c), req.Text)
	if err != nil {
		httputil.HandleError(c, err)
		return
	}

	httputil.Created(c, response.CommentFromEntity(comment))
}
