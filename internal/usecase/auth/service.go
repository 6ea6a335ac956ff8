package auth

import (
	"context"
	"strings"

	"github.com/ayes009/photoshare-webapp/internal/domain"
	"github.com/ayes009/photoshare-webapp/internal/domain/entity"
	"github.com/ayes009/photoshare-webapp/internal/domain/valueobject"
	"github.com/ayes009/photoshare-webapp/internal/infrastructure/auth"
	"github.com/ayes009/photoshare-webapp/internal/pkg/apperror"
)

const (
	DefaultUsername = "Guest"
	DefaultRole     = valueobject.RoleConsumer
)

type Service struct {
	tokens *auth.TokenCodec
}

func NewService(tokens *auth.TokenCodec) *Service {
	return &Service{tokens: tokens}
}

type LoginInput struct {
	Username string
	Role     string
}

// Login issues a session for any name. There is no credential check and
// nothing is stored.
func (s *Service) Login(ctx context.Context, input LoginInput) (*entity.Session, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		username = DefaultUsername
	}

	role := valueobject.Role(strings.TrimSpace(input.Role))
	if role == "" {
		role = DefaultRole
	}
	if !role.IsValid() {
		return nil, apperror.Validation(domain.ErrInvalidRole)
	}

	token, issuedAt := s.tokens.Issue(username)
	return entity.NewSession(username, role, token, issuedAt), nil
}
