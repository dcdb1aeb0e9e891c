// Package share stores short links used to share a project view.
package share

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	linkKeyPrefix = "share:link:" // share:link:{code} -> target url
	codeLength    = 7
	maxAttempts   = 5
	DefaultTTL    = 30 * 24 * time.Hour

	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
)

var (
	ErrNotFound      = errors.New("short link not found")
	ErrInvalidURL    = errors.New("target url must be an absolute http(s) url")
	ErrCodeExhausted = errors.New("failed to generate unique short code")
)

// Link is a created short link.
type Link struct {
	Code      string    `json:"code"`
	ShortURL  string    `json:"short_url"`
	TargetURL string    `json:"target_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store keeps short codes in Redis with a TTL.
type Store struct {
	client  *redis.Client
	baseURL string
	ttl     time.Duration
}

// NewStore creates a store. baseURL prefixes generated short urls, e.g.
// "https://arch.example.com/s".
func NewStore(client *redis.Client, baseURL string, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{client: client, baseURL: strings.TrimSuffix(baseURL, "/"), ttl: ttl}
}

// Shorten registers target and returns its short link.
func (s *Store) Shorten(ctx context.Context, target string) (*Link, error) {
	target = strings.TrimSpace(target)
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidURL
	}

	for i := 0; i < maxAttempts; i++ {
		code, err := newCode()
		if err != nil {
			return nil, err
		}

		ok, err := s.client.SetNX(ctx, linkKeyPrefix+code, target, s.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to store short link: %w", err)
		}
		if !ok {
			// code already taken, try another
			continue
		}

		return &Link{
			Code:      code,
			ShortURL:  s.baseURL + "/" + code,
			TargetURL: target,
			ExpiresAt: time.Now().UTC().Add(s.ttl),
		}, nil
	}
	return nil, ErrCodeExhausted
}

// Resolve returns the target url for code.
func (s *Store) Resolve(ctx context.Context, code string) (string, error) {
	if code == "" || len(code) > codeLength*2 {
		return "", ErrNotFound
	}
	target, err := s.client.Get(ctx, linkKeyPrefix+code).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve short link: %w", err)
	}
	return target, nil
}

func newCode() (string, error) {
	b := make([]byte, codeLength)
	max := big.NewInt(int64(len(alphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = alphabet[n.Int64()]
	}
	return string(b), nil
}
