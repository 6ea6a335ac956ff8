package engagement

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/ayes009/photoshare-webapp/internal/adapter/repository"
	"github.com/ayes009/photoshare-webapp/internal/domain"
	"github.com/ayes009/photoshare-webapp/internal/domain/entity"
	"github.com/ayes009/photoshare-webapp/internal/domain/valueobject"
	"github.com/ayes009/photoshare-webapp/internal/pkg/apperror"
)

const retryBaseDelay = 5 * time.Millisecond

// Service applies likes, ratings and comments as read-modify-write cycles
// guarded by the document's entity tag. A lost race re-reads the document
// and applies the change again, up to maxAttempts times.
type Service struct {
	photoRepo   repository.PhotoRepository
	maxAttempts int
	logger      *zap.Logger
}

func NewService(photoRepo repository.PhotoRepository, maxAttempts int, logger *zap.Logger) *Service {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Service{
		photoRepo:   photoRepo,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

func (s *Service) Like(ctx context.Context, photoID string) (*entity.Photo, error) {
	return s.mutate(ctx, photoID, "failed to like photo", func(p *entity.Photo) {
		p.Like()
	})
}

func (s *Service) Rate(ctx context.Context, photoID string, rating float64) (*entity.Photo, error) {
	r := valueobject.NewRating(rating)
	if !r.IsValid() {
		return nil, apperror.Validation(domain.ErrInvalidRating)
	}

	return s.mutate(ctx, photoID, "failed to rate photo", func(p *entity.Photo) {
		p.Rate(r)
	})
}

// Comment appends one comment. The comment is built once so a retried write
// keeps the same id and timestamp.
func (s *Service) Comment(ctx context.Context, photoID, username, text string) (*entity.Comment, error) {
	if text == "" {
		return nil, apperror.Validation(domain.ErrEmptyComment)
	}
	if username == "" {
		username = entity.AnonymousUsername
	}

	comment := entity.NewComment(username, text)
	if _, err := s.mutate(ctx, photoID, "failed to add comment", func(p *entity.Photo) {
		p.AddComment(comment)
	}); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *Service) mutate(ctx context.Context, photoID, failure string, apply func(*entity.Photo)) (*entity.Photo, error) {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		photo, etag, err := s.photoRepo.GetByID(ctx, photoID)
		if err != nil {
			return nil, classify(err, failure)
		}

		apply(photo)

		err = s.photoRepo.Update(ctx, photo, etag)
		if err == nil {
			return photo, nil
		}
		if !errors.Is(err, domain.ErrPreconditionFailed) {
			return nil, classify(err, failure)
		}

		s.logger.Debug("photo changed concurrently, retrying",
			zap.String("photo_id", photoID),
			zap.Int("attempt", attempt),
		)

		if attempt < s.maxAttempts {
			if err := wait(ctx, attempt); err != nil {
				return nil, err
			}
		}
	}

	s.logger.Warn("giving up on contended photo",
		zap.String("photo_id", photoID),
		zap.Int("attempts", s.maxAttempts),
	)
	return nil, apperror.Conflict(domain.ErrTooManyConflicts)
}

func classify(err error, failure string) error {
	if errors.Is(err, domain.ErrPhotoNotFound) {
		return apperror.NotFound(domain.ErrPhotoNotFound)
	}
	return apperror.Wrap(err, failure)
}

// wait sleeps for a jittered delay that grows with the attempt number.
func wait(ctx context.Context, attempt int) error {
	delay := retryBaseDelay * time.Duration(attempt)
	delay += time.Duration(rand.Int63n(int64(delay)))

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
