package auth

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidToken is returned for malformed, tampered or expired tokens.
var ErrInvalidToken = errors.New("invalid auth token")

const defaultTTL = 12 * time.Hour

// Strategy issues and verifies admin session tokens.
type Strategy interface {
	IssueToken(adminID int64) (string, error)
	ParseToken(token string) (int64, error)
	Name() string
}

// Options tunes token strategies.
type Options struct {
	TTL    time.Duration
	Issuer string
}

func (o Options) ttl() time.Duration {
	if o.TTL <= 0 {
		return defaultTTL
	}
	return o.TTL
}

// NewStrategy selects a strategy by name.
func NewStrategy(name, secret string, opts Options) (Strategy, error) {
	switch name {
	case "", StrategyJWT:
		return NewJWTStrategy(secret, opts), nil
	case StrategyHMAC:
		return NewHMACStrategy(secret, opts), nil
	default:
		return nil, fmt.Errorf("unknown auth strategy %q", name)
	}
}
