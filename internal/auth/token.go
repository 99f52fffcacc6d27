package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenValidity はセッショントークン自体の有効期限です（署名に焼き込まれる）。
const TokenValidity = 48 * time.Hour

// Claims はセッショントークンが運ぶクレームです。
// 本体のクレームはメールアドレスのみで、それ以外は標準クレームです。
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenIssuer は署名付きセッショントークンを発行します。
type TokenIssuer struct {
	secret []byte
}

// NewTokenIssuer はTokenIssuerを作成します。
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

// Sign はメールアドレスを唯一のクレームとして持つHS256署名トークンを発行します。
// jtiに毎回新しいUUIDを含めるため、同一ユーザーが同じ秒に2回ログインしても
// トークンは必ず別物になります。
func (i *TokenIssuer) Sign(email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenValidity)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse はトークンの署名と期限を検証してクレームを返します。
// セッション判定の正はあくまでストア側であり、これは診断・テスト用途です。
func (i *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
