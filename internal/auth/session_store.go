package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/2beens/fitcoach/internal/telemetry/tracing"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "fitcoach-session||"
	valueSeparator   = "|"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

// SessionStore resolves bearer tokens to user ids. Sessions are issued by
// the account service, which writes "<user id>|<created at unix>" under
// the token key.
type SessionStore struct {
	ttl         time.Duration
	redisClient *redis.Client
	nowFunc     func() time.Time
}

func NewSessionStore(ttl time.Duration, redisClient *redis.Client) *SessionStore {
	return &SessionStore{
		ttl:         ttl,
		redisClient: redisClient,
		nowFunc:     time.Now,
	}
}

func SessionKey(token string) string {
	return sessionKeyPrefix + token
}

func SessionValue(userID string, createdAt time.Time) string {
	return userID + valueSeparator + strconv.FormatInt(createdAt.Unix(), 10)
}

func (s *SessionStore) UserID(ctx context.Context, token string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.session.userid")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	val, err := s.redisClient.Get(ctx, SessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionNotFound
		}
		return "", fmt.Errorf("get session: %w", err)
	}

	userID, createdAtUnixStr, found := strings.Cut(val, valueSeparator)
	if !found || userID == "" {
		return "", fmt.Errorf("malformed session value [%s]", val)
	}

	createdAtUnix, err := strconv.ParseInt(createdAtUnixStr, 10, 64)
	if err != nil {
		return "", fmt.Errorf("parse session created at: %w", err)
	}

	if s.nowFunc().Sub(time.Unix(createdAtUnix, 0)) > s.ttl {
		return "", ErrSessionExpired
	}

	return userID, nil
}
