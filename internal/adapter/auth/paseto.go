package auth

import (
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/MikeRez0/dropship-checkout/internal/adapter/config"
	"github.com/MikeRez0/dropship-checkout/internal/core/domain"
	"github.com/MikeRez0/dropship-checkout/internal/core/port"
)

// PasetoToken issues and verifies operator tokens for the protected
// settlement endpoint. The symmetric key comes from configuration so tokens
// survive restarts; with no key configured a fresh one is generated and
// previously issued tokens stop verifying.
type PasetoToken struct {
	parser *paseto.Parser
	key    *paseto.V4SymmetricKey
}

func New(cfg *config.Auth) (port.TokenService, error) {
	parser := paseto.NewParser()

	var key paseto.V4SymmetricKey
	if cfg.OperatorKey != "" {
		var err error
		key, err = paseto.V4SymmetricKeyFromHex(cfg.OperatorKey)
		if err != nil {
			return nil, domain.ErrTokenCreation
		}
	} else {
		key = paseto.NewV4SymmetricKey()
	}

	s := PasetoToken{
		parser: &parser,
		key:    &key,
	}

	return &s, nil
}

func (p *PasetoToken) CreateToken(subject string) (string, error) {
	token := paseto.NewToken()
	token.SetExpiration(time.Now().Add(12 * time.Hour))

	payload := port.TokenPayload{Subject: subject}
	err := token.Set("payload", payload)
	if err != nil {
		return "", domain.ErrTokenCreation
	}

	return token.V4Encrypt(*p.key, nil), nil
}

func (p *PasetoToken) VerifyToken(token string) (*port.TokenPayload, error) {
	parsedToken, err := p.parser.ParseV4Local(*p.key, token, nil)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	payload := port.TokenPayload{}
	err = parsedToken.Get("payload", &payload)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	return &payload, nil
}
