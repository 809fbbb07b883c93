package security

import (
	"context"
	"errors"
	"time"

	"go-mockinterview-backend/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
)

// LoginTrackerConfig holds configuration for login tracking
type LoginTrackerConfig struct {
	MaxAttempts   int           // Maximum failed attempts before block
	AttemptWindow time.Duration // Time window for tracking attempts
	BlockDuration time.Duration // How long to block after max attempts
}

// DefaultLoginTrackerConfig returns sensible defaults
func DefaultLoginTrackerConfig() LoginTrackerConfig {
	return LoginTrackerConfig{
		MaxAttempts:   5,
		AttemptWindow: 15 * time.Minute,
		BlockDuration: 15 * time.Minute,
	}
}

// LoginTracker tracks failed login attempts and enforces block windows.
// Without Redis it fails open: nothing is ever blocked.
type LoginTracker struct {
	config LoginTrackerConfig
	logger *SecurityLogger
}

// NewLoginTracker creates a new login tracker with the given config
func NewLoginTracker(config LoginTrackerConfig) *LoginTracker {
	return &LoginTracker{
		config: config,
		logger: DefaultLogger(),
	}
}

// Redis key patterns
const (
	failLoginEmailPrefix    = "fail:login:email:"
	blockedLoginEmailPrefix = "blocked:login:email:"
)

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: current count after increment
const incrWithTTLScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

// IsBlocked checks whether the given email is inside a block window.
func (lt *LoginTracker) IsBlocked(ctx context.Context, email string) (bool, error) {
	client := redis.Client()
	if client == nil {
		return false, nil
	}

	exists, err := client.Exists(ctx, blockedLoginEmailPrefix+email).Result()
	if err != nil && !errors.Is(err, goredis.Nil) {
		return false, err
	}
	return exists > 0, nil
}

// RecordFailure increments the failed-attempt counter for the email and
// creates a block once the threshold is reached. Returns whether the
// subject is now blocked.
func (lt *LoginTracker) RecordFailure(ctx context.Context, email, ip, requestID string) (bool, error) {
	lt.logger.LogEvent(SecurityEvent{
		Event:        EventLoginFailed,
		SubjectType:  "email",
		SubjectValue: HashSubject(email),
		IP:           ip,
		RequestID:    requestID,
	})

	client := redis.Client()
	if client == nil {
		return false, nil
	}

	windowSecs := int(lt.config.AttemptWindow.Seconds())
	count, err := client.Eval(ctx, incrWithTTLScript,
		[]string{failLoginEmailPrefix + email}, windowSecs).Int64()
	if err != nil {
		return false, err
	}

	if count < int64(lt.config.MaxAttempts) {
		return false, nil
	}

	if err := client.Set(ctx, blockedLoginEmailPrefix+email, "1", lt.config.BlockDuration).Err(); err != nil {
		return false, err
	}

	lt.logger.LogEvent(SecurityEvent{
		Event:        EventBlockCreated,
		SubjectType:  "email",
		SubjectValue: HashSubject(email),
		IP:           ip,
		RequestID:    requestID,
		Details:      map[string]interface{}{"attempts": count, "block_minutes": lt.config.BlockDuration.Minutes()},
	})
	return true, nil
}

// RecordSuccess clears the failure counter after a successful login.
func (lt *LoginTracker) RecordSuccess(ctx context.Context, email, ip, requestID string) {
	lt.logger.LogEvent(SecurityEvent{
		Event:        EventLoginSuccess,
		SubjectType:  "email",
		SubjectValue: HashSubject(email),
		IP:           ip,
		RequestID:    requestID,
	})

	client := redis.Client()
	if client == nil {
		return
	}
	client.Del(ctx, failLoginEmailPrefix+email)
}

// Logger exposes the tracker's security logger for callers that want to
// emit related events.
func (lt *LoginTracker) Logger() *SecurityLogger {
	return lt.logger
}
