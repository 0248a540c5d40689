package oauth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// GoogleVerifier validates Google Sign-In credentials against a client ID.
type GoogleVerifier struct {
	clientID string
	validate func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID, validate: idtoken.Validate}
}

func (g *GoogleVerifier) Verify(ctx context.Context, token string) (*Claims, error) {
	if g == nil || g.clientID == "" {
		return nil, ErrNotConfigured
	}
	payload, err := g.validate(ctx, token, g.clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claimsFromPayload(payload), nil
}

func claimsFromPayload(p *idtoken.Payload) *Claims {
	c := &Claims{Subject: p.Subject}
	c.Email, _ = p.Claims["email"].(string)
	c.Name, _ = p.Claims["name"].(string)
	c.Picture, _ = p.Claims["picture"].(string)
	return c
}
