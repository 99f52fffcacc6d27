// Package auth は資格情報の検証、セッショントークンの発行、
// およびトークンによるリクエスト認可を提供します。
package auth

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/smart-brain-api/internal/apperr"
	"github.com/yourusername/smart-brain-api/internal/store"
)

// UserStore はリレーショナルストアのうち認証が必要とする読み取り操作です。
type UserStore interface {
	FindCredentialByEmail(ctx context.Context, email string) (*store.Credential, error)
	FindUserByEmail(ctx context.Context, email string) (*store.User, error)
}

// SessionStore はセッションエントリの登録と照会を行います。
// Get はエントリ不在を空文字列で表し、ストア障害のみをエラーとします。
type SessionStore interface {
	Put(ctx context.Context, token, userID string) error
	Get(ctx context.Context, token string) (string, error)
}

// Session は新規ログインの結果です。
type Session struct {
	UserID int
	Token  string
	User   *store.User
}

// Service は認証サブシステムの中核です。
type Service struct {
	users    UserStore
	sessions SessionStore
	issuer   *TokenIssuer
}

// NewService はServiceを作成します。
func NewService(users UserStore, sessions SessionStore, issuer *TokenIssuer) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		issuer:   issuer,
	}
}

// どちらの要素が誤りかは応答から判別できないよう、文言は共通にする
const msgInvalidCredentials = "メールアドレスまたはパスワードが正しくありません"

// 未知のメールアドレスでも既知の場合と同じ時間帯で失敗させるための
// 比較専用ダミーハッシュ（"password" のbcryptハッシュ。結果は常に捨てる）
var enumerationGuardHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// VerifyCredentials はメールアドレスとパスワードを検証し、
// 一致した場合に完全なユーザーレコードを返します。
func (s *Service) VerifyCredentials(ctx context.Context, email, password string) (*store.User, error) {
	if email == "" || password == "" {
		// 入力不備はストアへ一切アクセスせずに弾く
		return nil, apperr.Validation("メールアドレスとパスワードを入力してください")
	}

	normalized := strings.ToLower(email)

	cred, err := s.users.FindCredentialByEmail(ctx, normalized)
	if err != nil {
		return nil, apperr.Store("failed to look up credential", err)
	}
	if cred == nil {
		// レコード不在でもハッシュ比較1回分の時間を消費させる
		_ = bcrypt.CompareHashAndPassword(enumerationGuardHash, []byte(password))
		return nil, apperr.Auth(msgInvalidCredentials)
	}

	if bcrypt.CompareHashAndPassword([]byte(cred.Hash), []byte(password)) != nil {
		return nil, apperr.Auth(msgInvalidCredentials)
	}

	user, err := s.users.FindUserByEmail(ctx, normalized)
	if err != nil {
		return nil, apperr.Store("failed to look up user", err)
	}
	if user == nil {
		// loginにだけレコードが残っている不整合。詳細は明かさない
		return nil, apperr.Auth(msgInvalidCredentials)
	}

	return user, nil
}

// CreateSession は認証済みユーザーに対して新しいセッションを発行します。
// 署名とストア登録は順に行われ、登録に失敗した場合は操作全体が失敗します。
// 登録されていないトークンを呼び出し元に渡してはなりません。
func (s *Service) CreateSession(ctx context.Context, user *store.User) (*Session, error) {
	token, err := s.issuer.Sign(user.Email)
	if err != nil {
		return nil, apperr.Store("failed to sign session token", err)
	}

	if err := s.sessions.Put(ctx, token, strconv.Itoa(user.ID)); err != nil {
		return nil, apperr.Store("failed to register session", err)
	}

	return &Session{
		UserID: user.ID,
		Token:  token,
		User:   user,
	}, nil
}

// ResolveToken はトークンに対応するユーザーIDを返します。
// セッションの正はストア上の存在のみであり、署名や期限はここでは検証しません。
func (s *Service) ResolveToken(ctx context.Context, token string) (string, error) {
	userID, err := s.sessions.Get(ctx, token)
	if err != nil {
		return "", apperr.Store("failed to query session store", err)
	}
	if userID == "" {
		return "", apperr.Auth("認証されていません")
	}
	return userID, nil
}
