package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/ayes009/photoshare-webapp/internal/domain/valueobject"
)

// userNamespace scopes the name-based user ids so the same username always
// maps to the same id.
var userNamespace = uuid.MustParse("6f1d0c6e-3c1a-4c55-9a3e-2b8f5d7e9a41")

type Session struct {
	ID       string
	Username string
	Role     valueobject.Role
	Token    string
	IssuedAt time.Time
}

func NewSession(username string, role valueobject.Role, token string, issuedAt time.Time) *Session {
	return &Session{
		ID:       UserIDFor(username),
		Username: username,
		Role:     role,
		Token:    token,
		IssuedAt: issuedAt,
	}
}

func UserIDFor(username string) string {
	return uuid.NewSHA1(userNamespace, []byte(username)).String()
}
