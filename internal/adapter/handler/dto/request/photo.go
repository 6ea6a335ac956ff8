package request

type UploadPhotoRequest struct {
	Title     string `json:"title"`
	Caption   string `json:"caption"`
	Location  string `json:"location"`
	Tags      string `json:"tags"`
	ImageData string `json:"imageData"`
	FileName  string `json:"fileName"`
}

type RateRequest struct {
	Rating *float64 `json:"rating"`
}

type CommentRequest struct {
	Text string `json:"text"`
}

// ListPhotosRequest is optional; without page or per_page the whole catalog
// is returned.
type ListPhotosRequest struct {
	Page    int `form:"page" binding:"omitempty,min=1"`
	PerPage int `form:"per_page" binding:"omitempty,min=1,max=100"`
}

func (r ListPhotosRequest) Paginated() bool {
	return r.Page > 0 || r.PerPage > 0
}
