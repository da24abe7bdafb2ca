package supabase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"flowboard/internal/shared/errors"
)

// Session is an authenticated GoTrue session. The claims are read from the
// access token without signature verification: the server issued and will
// verify the token, the client only needs the identity fields.
type Session struct {
	AccessToken  string
	RefreshToken string
	UserID       string
	Email        string
	ExpiresAt    time.Time

	adminEmail string
}

// IsAdmin reports whether the session belongs to the configured admin
// account. There are no roles beyond this single email comparison.
func (s *Session) IsAdmin() bool {
	return s.adminEmail != "" && strings.EqualFold(s.Email, s.adminEmail)
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SignIn exchanges the credentials for a session via the password grant and
// keeps the session on the client for subsequent requests.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	url := c.baseURL + "/auth/v1/token?grant_type=password"

	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var tr tokenResponse
	if err := c.doRequest(ctx, "POST", url, body, &tr, nil); err != nil {
		if appErr := errors.GetAppError(err); appErr != nil {
			// GoTrue answers bad credentials with 400, not 401.
			if appErr.Type == errors.ErrorTypeNetwork && appErr.StatusCode == 400 {
				return nil, errors.NewUnauthorizedError("invalid email or password")
			}
			return nil, appErr
		}
		return nil, err
	}

	session, err := sessionFromToken(tr, c.adminEmail)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.session = session
	c.mu.Unlock()

	c.logger.Infow("signed in", "email", session.Email, "admin", session.IsAdmin())
	return session, nil
}

func sessionFromToken(tr tokenResponse, adminEmail string) (*Session, error) {
	var claims tokenClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tr.AccessToken, &claims); err != nil {
		return nil, errors.NewUnauthorizedError(fmt.Sprintf("malformed access token: %v", err))
	}

	session := &Session{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		Email:        claims.Email,
		adminEmail:   adminEmail,
	}
	if claims.Subject != "" {
		session.UserID = claims.Subject
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	} else if tr.ExpiresIn > 0 {
		session.ExpiresAt = time.Now().UTC().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}

	return session, nil
}

// CurrentSession returns the active session, or nil when signed out or the
// token has expired.
func (c *Client) CurrentSession() *Session {
	c.mu.RLock()
	s := c.session
	c.mu.RUnlock()

	if s == nil {
		return nil
	}
	if !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt) {
		return nil
	}
	return s
}

// SignOut drops the session. Subsequent requests fall back to the anon key.
func (c *Client) SignOut() {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
}
