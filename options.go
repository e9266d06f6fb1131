package lexdex

import (
	"time"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	doc      Document
	filePath string

	httpURL     string
	httpToken   string
	httpTimeout time.Duration

	addrs    []string
	password string
	cacheTTL time.Duration

	logger *zap.Logger
}

// WithDocument seeds the catalog from an in-memory document. No external
// source is consulted.
func WithDocument(doc Document) Option {
	return func(c *clientConfig) {
		c.doc = doc
	}
}

// WithFileSource loads the catalog from a JSON file on disk.
func WithFileSource(path string) Option {
	return func(c *clientConfig) {
		c.filePath = path
	}
}

// WithHTTPSource loads the catalog from a remote JSON endpoint. token,
// when non-empty, is sent as a Bearer credential.
func WithHTTPSource(url, token string) Option {
	return func(c *clientConfig) {
		c.httpURL = url
		c.httpToken = token
	}
}

// WithHTTPTimeout overrides the HTTP source request timeout.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.httpTimeout = timeout
	}
}

// WithRedis enables Redis caching of the last good document so a source
// outage degrades to the previous catalog.
func WithRedis(addr, password string) Option {
	return func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithCacheTTL sets an expiration on cached documents. Zero means no
// expiry.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *clientConfig) {
		c.cacheTTL = ttl
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}
