package objectstore

import (
	"fmt"
	"strings"
	"time"

	"github.com/ayes009/photoshare-webapp/internal/domain/entity"
)

// Older documents were written with naive ISO-8601 timestamps.
var readLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

type photoDocument struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Caption     string            `json:"caption"`
	Location    string            `json:"location"`
	Tags        string            `json:"tags"`
	URL         string            `json:"url"`
	CreatorName string            `json:"creatorName"`
	Likes       int               `json:"likes"`
	Comments    []commentDocument `json:"comments"`
	Rating      float64           `json:"rating"`
	RatingCount int               `json:"ratingCount"`
	UploadedAt  string            `json:"uploadedAt"`
}

type commentDocument struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range readLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

func newPhotoDocument(p *entity.Photo) photoDocument {
	comments := make([]commentDocument, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, commentDocument{
			ID:        c.ID,
			UserID:    c.UserID,
			Username:  c.Username,
			Text:      c.Text,
			Timestamp: c.TimestampString(),
		})
	}

	return photoDocument{
		ID:          p.ID,
		Title:       p.Title,
		Caption:     p.Caption,
		Location:    p.Location,
		Tags:        p.Tags,
		URL:         p.URL,
		CreatorName: p.CreatorName,
		Likes:       p.Likes,
		Comments:    comments,
		Rating:      p.Rating,
		RatingCount: p.RatingCount,
		UploadedAt:  p.UploadedAtString(),
	}
}

// toEntity never fails on timestamps: a missing or unparseable value reads
// as the zero time and the stored text is carried along untouched.
func (d photoDocument) toEntity() *entity.Photo {
	uploadedAt, _ := parseTimestamp(d.UploadedAt)

	comments := make([]entity.Comment, 0, len(d.Comments))
	for _, c := range d.Comments {
		ts, _ := parseTimestamp(c.Timestamp)
		comments = append(comments, entity.Comment{
			ID:           c.ID,
			UserID:       c.UserID,
			Username:     c.Username,
			Text:         c.Text,
			Timestamp:    ts,
			RawTimestamp: c.Timestamp,
		})
	}

	creator := d.CreatorName
	if creator == "" {
		creator = entity.AnonymousUsername
	}

	return &entity.Photo{
		ID:          d.ID,
		Title:       d.Title,
		Caption:     d.Caption,
		Location:    d.Location,
		Tags:        d.Tags,
		URL:         d.URL,
		CreatorName: creator,
		Likes:       d.Likes,
		Rating:      d.Rating,
		RatingCount: d.RatingCount,
		Comments:    comments,
		UploadedAt:  uploadedAt,

		RawUploadedAt: d.UploadedAt,
	}
}
