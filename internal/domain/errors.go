package domain

import "errors"

var (
	ErrPhotoNotFound       = errors.New("photo not found")
	ErrInvalidRole         = errors.New("role must be either creator or consumer")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrEmptyComment        = errors.New("comment text is required")
	ErrMissingUploadFields = errors.New("title, imageData, and fileName are required")
	ErrInvalidImageData    = errors.New("imageData is not valid base64")
	ErrBlobNotFound        = errors.New("blob not found")
	ErrContainerNotFound   = errors.New("container not found")
	ErrPreconditionFailed  = errors.New("precondition failed")
	ErrTooManyConflicts    = errors.New("photo was modified concurrently, please retry")
)
