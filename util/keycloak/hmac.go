// util/keycloak/hmac.go
package keycloak

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mademanik/minjeminapp/model"
)

// HMACVerifier validates HS256 tokens carrying the same claim shape a
// Keycloak realm issues. It exists for local development and tests,
// where a real realm is not running.
type HMACVerifier struct {
	secret []byte
}

func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret)}
}

func (v *HMACVerifier) Verify(_ context.Context, rawToken string) (*model.Session, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return nil, ErrMissingToken
	}

	tok, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("invalid token")
	}

	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	var c claims
	c.Subject, _ = mc["sub"].(string)
	c.PreferredUsername, _ = mc["preferred_username"].(string)
	if ra, ok := mc["realm_access"].(map[string]any); ok {
		if roles, ok := ra["roles"].([]any); ok {
			for _, r := range roles {
				if s, ok := r.(string); ok {
					c.RealmAccess.Roles = append(c.RealmAccess.Roles, s)
				}
			}
		}
	}
	return c.session(rawToken), nil
}

// Issue mints a dev token with the given subject and realm roles.
func Issue(secret, subject, username string, roles []string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":                subject,
		"preferred_username": username,
		"realm_access":       map[string]any{"roles": roles},
		"exp":                time.Now().Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}
