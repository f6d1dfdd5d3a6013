package azpim

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

type accessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// ResolveObjectID returns the object ID (oid claim) of the signed-in user
// by requesting a management-scoped access token from the Azure CLI and
// decoding its claims. The token comes straight from the authenticated CLI
// session, so no signature verification is performed.
//
// This is the identity every activation request must be submitted under,
// even when the matched eligibility belongs to a group.
func (c *Client) ResolveObjectID(ctx context.Context) (string, error) {
	out, err := c.Runner.Run(ctx,
		"account", "get-access-token",
		"--resource", c.ManagementURL,
		"--output", "json",
	)
	if err != nil {
		return "", fmt.Errorf("get access token: %w", err)
	}

	var tok accessTokenResponse
	if err := json.Unmarshal(out, &tok); err != nil {
		return "", fmt.Errorf("decode access token response: %w", err)
	}

	return objectIDFromToken(tok.AccessToken)
}

// objectIDFromToken extracts the oid claim from a raw JWT without
// verifying its signature.
func objectIDFromToken(raw string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	oid, ok := claims["oid"].(string)
	if !ok || oid == "" {
		return "", ErrMissingObjectID
	}

	return oid, nil
}
