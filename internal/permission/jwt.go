package permission

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

// CookieName holds the session token for browser clients.
const CookieName = "events_session"

type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Resolver turns request credentials into a Session.
type Resolver struct {
	secret []byte
	now    func() time.Time
}

func NewResolver(secret string) *Resolver {
	return &Resolver{secret: []byte(strings.TrimSpace(secret)), now: time.Now}
}

// Validate parses an HS256 token and returns its claims.
func (r *Resolver) Validate(token string) (*Claims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}
	if len(r.secret) == 0 {
		return nil, fmt.Errorf("%w: signing secret not configured", ErrInvalidToken)
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return r.secret, nil
	}, jwt.WithLeeway(5*time.Second), jwt.WithTimeFunc(r.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims, nil
}

// Resolve reads the bearer header, falling back to the session cookie. Missing
// or invalid credentials resolve to an anonymous session.
func (r *Resolver) Resolve(req *http.Request) Session {
	token := ExtractToken(req)
	if token == "" {
		return Anonymous()
	}
	claims, err := r.Validate(token)
	if err != nil {
		return Anonymous()
	}
	return Session{UserID: claims.Subject, Roles: claims.Roles, Token: token}
}

// ExtractToken returns the bearer token of the request, or the session cookie value.
func ExtractToken(req *http.Request) string {
	if req == nil {
		return ""
	}
	header := strings.TrimSpace(req.Header.Get("Authorization"))
	if len(header) > len("bearer ") && strings.EqualFold(header[:len("bearer ")], "bearer ") {
		return strings.TrimSpace(header[len("bearer "):])
	}
	if cookie, err := req.Cookie(CookieName); err == nil {
		return strings.TrimSpace(cookie.Value)
	}
	return ""
}

// Issuer signs session tokens after a successful login.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Issuer{secret: []byte(strings.TrimSpace(secret)), ttl: ttl, now: time.Now}
}

func (i *Issuer) Issue(userID string, roles []string) (string, error) {
	if len(i.secret) == 0 {
		return "", errors.New("signing secret not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return "", errors.New("user id is required")
	}
	now := i.now()
	claims := Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

func (i *Issuer) TTL() time.Duration {
	return i.ttl
}
