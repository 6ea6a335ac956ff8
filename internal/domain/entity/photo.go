package entity

import (
	"time"

	"github.com/ayes009/photoshare-webapp/internal/domain/valueobject"
)

const AnonymousUsername = "Anonymous"

// TimestampLayout is the UTC form in which photo and comment times are
// written out.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

type Photo struct {
	ID          string
	Title       string
	Caption     string
	Location    string
	Tags        string
	URL         string
	CreatorName string
	Likes       int
	Rating      float64
	RatingCount int
	Comments    []Comment
	UploadedAt  time.Time
	// RawUploadedAt is uploadedAt as it was read from storage. It is written
	// back unchanged, even when it could not be parsed into UploadedAt.
	RawUploadedAt string
}

func NewPhoto(id, title, caption, location, tags, url, creatorName string) *Photo {
	return &Photo{
		ID:          id,
		Title:       title,
		Caption:     caption,
		Location:    location,
		Tags:        tags,
		URL:         url,
		CreatorName: creatorName,
		Comments:    []Comment{},
		UploadedAt:  time.Now().UTC(),
	}
}

// UploadedAtString is the stored form of the upload time.
func (p *Photo) UploadedAtString() string {
	if p.RawUploadedAt != "" || p.UploadedAt.IsZero() {
		return p.RawUploadedAt
	}
	return p.UploadedAt.UTC().Format(TimestampLayout)
}

func (p *Photo) Like() {
	p.Likes++
}

// Rate folds r into the running mean. Callers validate r first.
func (p *Photo) Rate(r valueobject.Rating) {
	count := p.RatingCount + 1
	p.Rating = (p.Rating*float64(p.RatingCount) + r.Value) / float64(count)
	p.RatingCount = count
}

func (p *Photo) AddComment(c Comment) {
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
	p.Comments = append(p.Comments, c)
}

// MetadataKey is the name of the photo's document in the metadata container.
func (p *Photo) MetadataKey() string {
	return MetadataKey(p.ID)
}

func MetadataKey(photoID string) string {
	return photoID + ".json"
}
