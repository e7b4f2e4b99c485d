package port

type TokenPayload struct {
	Subject string `json:"subject"`
}

// TokenService issues and verifies the operator tokens guarding the
// settlement endpoint.
type TokenService interface {
	CreateToken(subject string) (string, error)
	VerifyToken(token string) (*TokenPayload, error)
}
