package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const usedRefreshPrefix = "refresh_used:"

// RefreshRepo records consumed refresh-token IDs so a rotated-out token
// cannot be exchanged twice. Entries expire with the token they guard.
type RefreshRepo struct {
	client *goredis.Client
}

func NewRefreshRepo(client *goredis.Client) *RefreshRepo {
	return &RefreshRepo{client: client}
}

// MarkUsed atomically claims jti. It returns true when this call was the
// first use and false when the token was already consumed.
func (r *RefreshRepo) MarkUsed(ctx context.Context, jti string, ttl time.Duration) (bool, error) {
	if r.client == nil {
		return false, fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(jti) == "" || ttl <= 0 {
		return false, fmt.Errorf("invalid refresh claim payload")
	}

	ok, err := r.client.SetNX(ctx, usedRefreshPrefix+jti, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("mark refresh token used: %w", err)
	}

	return ok, nil
}
