package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayes009/photoshare-webapp/internal/adapter/handler/dto/request"
	"github.com/ayes009/photoshare-webapp/internal/adapter/handler/dto/response"
	"github.com/ayes009/photoshare-webapp/internal/pkg/httputil"
	"github.com/ayes009/photoshare-webapp/internal/pkg/pagination"
	"github.com/ayes009/photoshare-webapp/internal/usecase/upload"
)

type PhotoHandler struct {
	catalogSvc    CatalogService
	uploadSvc     UploadService
	maxUploadSize int64
}

func NewPhotoHandler(catalogSvc CatalogService, uploadSvc UploadService, maxUploadSize int64) *PhotoHandler {
	return &PhotoHandler{
		catalogSvc:    catalogSvc,
		uploadSvc:     uploadSvc,
		maxUploadSize: maxUploadSize,
	}
}

// List godoc
//
//	@Summary		List photos
//	@Description	All photos, newest first. page and per_page select one page and add X-Total-Count headers.
//	@Tags			photos
//	@Produce		json
//	@Param			page		query		int	false	"Page number"
//	@Param			per_page	query		int	false	"Items per page (max 100)"
//	@Success		200			{array}		response.PhotoResponse
//	@Failure		400			{object}	httputil.ErrorResponse
//	@Failure		500			{object}	response.ListErrorResponse
//	@Router			/photos [get]
func (h *PhotoHandler) List(c *gin.Context) {
	var req request.ListPhotosRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	photos, err := h.catalogSvc.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, response.ListErrorResponse{
			Error:     "failed to fetch photos",
			Details:   err.Error(),
			Photos:    []response.PhotoResponse{},
			RequestID: httputil.GetRequestID(c),
		})
		return
	}

	if req.Paginated() {
		var info *pagination.Info
		photos, info = pagination.Slice(photos, pagination.NewParams(req.Page, req.PerPage))
		for k, v := range info.Headers() {
			c.Header(k, v)
		}
	}

	httputil.OK(c, response.PhotosFromEntities(photos))
}

// Upload godoc
//
//	@Summary		Upload a photo
//	@Description	Store a base64 image and create its metadata document
//	@Tags			photos
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		request.UploadPhotoRequest	true	"Photo and metadata"
//	@Success		201		{object}	response.PhotoResponse
//	@Failure		400		{object}	httputil.ErrorResponse
//	@Failure		413		{object}	httputil.ErrorResponse
//	@Failure		500		{object}	httputil.ErrorResponse
//	@Router			/photos [post]
func (h *PhotoHandler) Upload(c *gin.Context) {
	if h.maxUploadSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize)
	}

	var req request.UploadPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if isBodyTooLarge(err) {
			httputil.ErrorWithCode(c, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "upload exceeds the size limit")
			return
		}
		httputil.ValidationError(c, err)
		return
	}

	photo, err := h.uploadSvc.Upload(c.Request.Context(), upload.UploadInput{
		Title:     req.Title,
		Caption:   req.Caption,
		Location:  req.Location,
		Tags:      req.Tags,
		ImageData: req.ImageData,
		FileName:  req.FileName,
		Username:  httputil.GetUsername(c),
	})
	if err != nil {
		httputil.HandleError(c, err)
		return
	}

	httputil.Created(c, response.PhotoFromEntity(photo))
}

// Delete godoc
//
//	@Summary		Delete a photo
//	@Description	Remove the metadata document and, best effort, the image blob
//	@Tags			photos
//	@Produce		json
//	@Param			id	path		string	true	"Photo ID"
//	@Success		200	{object}	response.DeleteResponse
//	@Failure		404	{object}	httputil.ErrorResponse
//	@Failure		500	{object}	httputil.ErrorResponse
//	@Router			/photos/{id} [delete]
func (h *PhotoHandler) Delete(c *gin.Context) {
	photoID := c.Param("id")

	if err := h.uploadSvc.Delete(c.Request.Context(), photoID); err != nil {
		httputil.HandleError(c, err)
		return
	}

	httputil.OK(c, response.DeleteResponse{
		Message: response.DeleteMessage,
		PhotoID: photoID,
	})
}
