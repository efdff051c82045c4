package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/Suhaibinator/SPipeline/pkg/httpstage"
)

// IPSourceType defines the source for client IP addresses
type IPSourceType string

const (
	// IPSourceRemoteAddr uses the request's RemoteAddr field
	IPSourceRemoteAddr IPSourceType = "remote_addr"

	// IPSourceXForwardedFor uses the leftmost X-Forwarded-For entry
	IPSourceXForwardedFor IPSourceType = "x_forwarded_for"

	// IPSourceXRealIP uses the X-Real-IP header
	IPSourceXRealIP IPSourceType = "x_real_ip"

	// IPSourceCustomHeader uses the header named by IPConfig.CustomHeader
	IPSourceCustomHeader IPSourceType = "custom_header"
)

// IPConfig defines configuration for IP extraction
type IPConfig struct {
	Source       IPSourceType
	CustomHeader string
	// TrustProxy allows proxy headers to be used. Without it RemoteAddr is always used.
	TrustProxy bool
}

// DefaultIPConfig returns the default IP configuration
func DefaultIPConfig() *IPConfig {
	return &IPConfig{
		Source:     IPSourceXForwardedFor,
		TrustProxy: true,
	}
}

type clientIPKey struct{}

// ClientIPKey is the key used to store the client IP in the request context
var ClientIPKey = clientIPKey{}

// GetClientIP extracts the client IP stored by the ClientIP stage
func GetClientIP(r *http.Request) string {
	if ip, ok := r.Context().Value(ClientIPKey).(string); ok {
		return ip
	}
	return ""
}

// ClientIP creates a stage that resolves the client IP and stores it in the
// request context
func ClientIP(config *IPConfig) Middleware {
	if config == nil {
		config = DefaultIPConfig()
	}
	return httpstage.Use0(func(ctx context.Context, c *httpstage.Context) error {
		ip := extractClientIP(c.Request, config)
		c.Request = c.Request.WithContext(context.WithValue(ctx, ClientIPKey, ip))
		return nil
	}, options("client_ip", nil)...)
}

func extractClientIP(r *http.Request, config *IPConfig) string {
	var ip string
	if config.TrustProxy {
		switch config.Source {
		case IPSourceXRealIP:
			ip = r.Header.Get("X-Real-IP")
		case IPSourceCustomHeader:
			ip = r.Header.Get(config.CustomHeader)
		case IPSourceRemoteAddr:
		default:
			ip, _, _ = strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
		}
	}

	ip = strings.TrimSpace(ip)
	if ip == "" {
		ip = r.RemoteAddr
	}
	return stripPort(ip)
}

// stripPort removes the port from host:port and [ipv6]:port forms
func stripPort(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return strings.TrimSuffix(strings.TrimPrefix(addr, "["), "]")
}
