package webserver

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/kashkoool/nizargold-sub000/internal/domain"
)

// Claims carried in the bearer token.
type Claims struct {
	UserID   int64  `json:"uid,string"`
	Username string `json:"usr"`
	Level    string `json:"lvl"`
	jwt.RegisteredClaims
}

// IssueToken signs a bearer token for an account.
func IssueToken(secret string, expire time.Duration, opr *domain.SysOpr) (string, error) {
	if expire <= 0 {
		expire = 24 * time.Hour
	}
	claims := &Claims{
		UserID:   opr.ID,
		Username: opr.Username,
		Level:    opr.Level,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   opr.Username,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expire)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// TokenClaims extracts the signed-in account's claims from the request.
func TokenClaims(c echo.Context) (*Claims, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, errors.New("no token in context")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}
	return claims, nil
}
