package request

// LoginRequest fields are optional: a missing username becomes Guest and a
// missing role becomes consumer.
type LoginRequest struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
