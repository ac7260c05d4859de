package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// TokenClaims is the decoded identity a verified token carries. Grade and
// Class are only present for users with a class assignment; for teachers they
// drive the roster filter.
type TokenClaims struct {
	UserID string
	Email  string
	Role   string
	Grade  *int
	Class  *int
}

type TokenService struct {
	Secret     []byte
	Issuer     string
	TTL        time.Duration
	BcryptCost int
}

func (t TokenService) HashPassword(raw string) (string, error) {
	cost := t.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), cost)
	return string(hash), err
}

func (t TokenService) VerifyPassword(raw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(raw)) == nil
}

func (t TokenService) CreateToken(claims TokenClaims) (string, int64, error) {
	now := time.Now().UTC()
	exp := now.Add(t.TTL)
	mapped := jwt.MapClaims{
		"iss":   t.Issuer,
		"sub":   claims.UserID,
		"email": claims.Email,
		"role":  claims.Role,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}
	if claims.Grade != nil {
		mapped["grade"] = *claims.Grade
	}
	if claims.Class != nil {
		mapped["class"] = *claims.Class
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapped)
	signed, err := token.SignedString(t.Secret)
	return signed, exp.Unix(), err
}

// ParseToken verifies signature, issuer and expiry and decodes the identity
// claims. Any failure surfaces as a 401 ServiceError.
func (t TokenService) ParseToken(tokenStr string) (TokenClaims, error) {
	raw := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, raw, func(token *jwt.Token) (interface{}, error) {
		return t.Secret, nil
	}, jwt.WithIssuer(t.Issuer), jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return TokenClaims{}, ErrUnauthorized("Authentication failed")
	}
	claims := TokenClaims{}
	claims.UserID, _ = raw["sub"].(string)
	claims.Email, _ = raw["email"].(string)
	claims.Role, _ = raw["role"].(string)
	claims.Grade = claimInt(raw, "grade")
	claims.Class = claimInt(raw, "class")
	if claims.UserID == "" || claims.Role == "" {
		return TokenClaims{}, ErrUnauthorized("Authentication failed")
	}
	return claims, nil
}

func claimInt(claims jwt.MapClaims, key string) *int {
	if value, ok := claims[key].(float64); ok {
		parsed := int(value)
		return &parsed
	}
	return nil
}
