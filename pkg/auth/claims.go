package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/isaacstephens/gymman-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID   uint
	Username string
	Role     enums.Role
	JTI      string
}

// AccessTokenClaims represents the typed JWT issued to clients. The
// registered ID (jti) doubles as the server-side session identifier.
type AccessTokenClaims struct {
	UserID   uint       `json:"user_id"`
	Username string     `json:"username"`
	Role     enums.Role `json:"role"`
	jwt.RegisteredClaims
}
