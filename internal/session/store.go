// Package session はセッショントークンとユーザーIDの対応をRedisに保持します。
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
)

// Store はセッションエントリ（token -> userId）をRedisに保存します。
// エントリは作成後に更新されることはなく、TTLによってのみ寿命が尽きます。
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore は Store を作成します。
// ttl にはトークン自体の有効期限と同じ長さを渡すのが基本です
// （ストア側の保持期間がトークンの期限と食い違うと、期限切れトークンが残り続ける）。
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{
		rdb: rdb,
		ttl: ttl,
	}
}

// Put はトークンとユーザーIDの対応を登録します。
func (s *Store) Put(ctx context.Context, token, userID string) error {
	if token == "" {
		return fmt.Errorf("token is required")
	}
	if userID == "" {
		return fmt.Errorf("userID is required")
	}
	return s.rdb.Set(ctx, sessionKey(token), userID, s.ttl).Err()
}

// Get はトークンに対応するユーザーIDを取得します。
// エントリが存在しない場合は空文字列を返します（ストア障害とは区別される）。
func (s *Store) Get(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("token is required")
	}
	userID, err := s.rdb.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}
	return userID, nil
}

// Ping はRedisへの疎通を確認します。起動時のフェイルファスト用です。
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}
