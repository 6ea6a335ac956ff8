package response

import "github.com/ayes009/photoshare-webapp/internal/domain/entity"

const DeleteMessage = "Photo deleted successfully"

type PhotoResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Caption     string            `json:"caption"`
	Location    string            `json:"location"`
	Tags        string            `json:"tags"`
	URL         string            `json:"url"`
	CreatorName string            `json:"creatorName"`
	Likes       int               `json:"likes"`
	Comments    []CommentResponse `json:"comments"`
	Rating      float64           `json:"rating"`
	RatingCount int               `json:"ratingCount"`
	UploadedAt  string            `json:"uploadedAt"`
}

type CommentResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

type LikeResponse struct {
	Success bool `json:"success"`
	Likes   int  `json:"likes"`
}

type RateResponse struct {
	Success     bool    `json:"success"`
	Rating      float64 `json:"rating"`
	RatingCount int     `json:"ratingCount"`
}

type DeleteResponse struct {
	Message string `json:"message"`
	PhotoID string `json:"photoId"`
}

// ListErrorResponse keeps a photos array in the body so clients can render
// an empty gallery on failure.
type ListErrorResponse struct {
	Error     string          `json:"error"`
	Details   string          `json:"details,omitempty"`
	Photos    []PhotoResponse `json:"photos"`
	RequestID string          `json:"request_id,omitempty"`
}

func PhotoFromEntity(p *entity.Photo) PhotoResponse {
	resp := PhotoResponse{
		ID:          p.ID,
		Title:       p.Title,
		Caption:     p.Caption,
		Location:    p.Location,
		Tags:        p.Tags,
		URL:         p.URL,
		CreatorName: p.CreatorName,
		Likes:       p.Likes,
		Comments:    make([]CommentResponse, 0, len(p.Comments)),
		Rating:      p.Rating,
		RatingCount: p.RatingCount,
		UploadedAt:  p.UploadedAtString(),
	}

	for i := range p.Comments {
		resp.Comments = append(resp.Comments, CommentFromEntity(&p.Comments[i]))
	}

	return resp
}

func PhotosFromEntities(photos []entity.Photo) []PhotoResponse {
	resp := make([]PhotoResponse, 0, len(photos))
	for i := range photos {
		resp = append(resp, PhotoFromEntity(&photos[i]))
	}
	return resp
}

func CommentFromEntity(c *entity.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Username:  c.Username,
		Text:      c.Text,
		Timestamp: c.TimestampString(),
	}
}
