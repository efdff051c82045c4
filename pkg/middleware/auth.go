package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/Suhaibinator/SPipeline/pkg/httpstage"
	"go.uber.org/zap"
)

// ErrUnauthorized is returned by the Authenticate stage for rejected requests
var ErrUnauthorized = errors.New("unauthorized")

// AuthProvider decides whether a request carries valid credentials.
// Implementations include BasicAuthProvider, BearerTokenProvider and
// APIKeyProvider.
type AuthProvider interface {
	Authenticate(r *http.Request) bool
}

// AuthProviderFunc adapts a function to AuthProvider
type AuthProviderFunc func(r *http.Request) bool

// Authenticate calls f(r)
func (f AuthProviderFunc) Authenticate(r *http.Request) bool {
	return f(r)
}

// BasicAuthProvider validates HTTP Basic credentials against a fixed map
type BasicAuthProvider struct {
	Credentials map[string]string // username -> password
}

// Authenticate checks the Basic credentials of the request
func (p *BasicAuthProvider) Authenticate(r *http.Request) bool {
	username, password, ok := r.BasicAuth()
	if !ok {
		return false
	}
	expected, exists := p.Credentials[username]
	return exists && secureEqual(password, expected)
}

// BearerTokenProvider validates bearer tokens against a set or a validator
type BearerTokenProvider struct {
	ValidTokens map[string]bool
	Validator   func(token string) bool // takes precedence over ValidTokens
}

// Authenticate checks the bearer token of the request
func (p *BearerTokenProvider) Authenticate(r *http.Request) bool {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return false
	}
	if p.Validator != nil {
		return p.Validator(token)
	}
	return p.ValidTokens[token]
}

// APIKeyProvider validates an API key found in a header or query parameter
type APIKeyProvider struct {
	ValidKeys map[string]bool
	Header    string // e.g. "X-API-Key"
	Query     string // e.g. "api_key"
}

// Authenticate checks the API key of the request, header first
func (p *APIKeyProvider) Authenticate(r *http.Request) bool {
	if p.Header != "" {
		if key := r.Header.Get(p.Header); key != "" && p.ValidKeys[key] {
			return true
		}
	}
	if p.Query != "" {
		if key := r.URL.Query().Get(p.Query); key != "" && p.ValidKeys[key] {
			return true
		}
	}
	return false
}

func secureEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// Authenticate creates a stage that rejects requests the resolved provider
// does not accept with 401 Unauthorized
func Authenticate(provider httpstage.Resolver[AuthProvider], logger *zap.Logger) Middleware {
	return httpstage.Use1(func(_ context.Context, c *httpstage.Context, p AuthProvider) error {
		if p.Authenticate(c.Request) {
			return nil
		}
		if logger != nil {
			logger.Warn("Authentication failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("remote_addr", c.Request.RemoteAddr),
			)
		}
		return httpstage.WithStatus(http.StatusUnauthorized, ErrUnauthorized)
	}, provider, options("authenticate", logger)...)
}

// NewBasicAuthMiddleware creates an Authenticate stage using HTTP Basic Authentication
func NewBasicAuthMiddleware(credentials map[string]string, logger *zap.Logger) Middleware {
	return Authenticate(httpstage.Static[AuthProvider](&BasicAuthProvider{Credentials: credentials}), logger)
}

// NewBearerTokenMiddleware creates an Authenticate stage using bearer tokens
func NewBearerTokenMiddleware(validTokens map[string]bool, logger *zap.Logger) Middleware {
	return Authenticate(httpstage.Static[AuthProvider](&BearerTokenProvider{ValidTokens: validTokens}), logger)
}

// NewAPIKeyMiddleware creates an Authenticate stage using API keys
func NewAPIKeyMiddleware(validKeys map[string]bool, header, query string, logger *zap.Logger) Middleware {
	return Authenticate(httpstage.Static[AuthProvider](&APIKeyProvider{
		ValidKeys: validKeys,
		Header:    header,
		Query:     query,
	}), logger)
}
