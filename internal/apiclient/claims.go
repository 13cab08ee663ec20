package apiclient

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what an operator wants to see from a login token.
type TokenInfo struct {
	UserID    string
	Email     string
	Role      string
	TenantID  string
	ExpiresAt *time.Time
}

type hrmsClaims struct {
	PlainID  string `json:"id"`
	UserID   string `json:"userId"`
	UID      string `json:"uid"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	TenantID string `json:"tenantId"`
	jwt.RegisteredClaims
}

// DecodeToken reads the claims without verifying the signature; the
// signing secret belongs to the server, not to this tool.
func DecodeToken(token string) (TokenInfo, error) {
	var claims hrmsClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return TokenInfo{}, fmt.Errorf("decode token: %w", err)
	}

	info := TokenInfo{Email: claims.Email, Role: claims.Role, TenantID: claims.TenantID}
	for _, id := range []string{claims.PlainID, claims.UserID, claims.UID, claims.Subject} {
		if id != "" {
			info.UserID = id
			break
		}
	}
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time
		info.ExpiresAt = &exp
	}
	return info, nil
}
