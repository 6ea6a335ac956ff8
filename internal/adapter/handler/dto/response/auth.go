package response

import "github.com/ayes009/photoshare-webapp/internal/domain/entity"

const LoginMessage = "Access granted - Welcome to PhotoShare!"

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

type LoginResponse struct {
	User    UserResponse `json:"user"`
	Message string       `json:"message"`
}

func LoginFromSession(s *entity.Session) LoginResponse {
	return LoginResponse{
		User: UserResponse{
			ID:       s.ID,
			Username: s.Username,
			Role:     string(s.Role),
			Token:    s.Token,
		},
		Message: LoginMessage,
	}
}
