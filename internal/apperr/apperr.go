// Package apperr はアプリケーション共通のエラー分類を提供します。
// 各コア操作は例外を投げる代わりに分類付きエラーを返し、
// HTTPステータスへの変換はハンドラー層だけが行います。
package apperr

import (
	"errors"
	"fmt"
)

// Kind はエラーの分類を表します。
type Kind int

const (
	// KindValidation は入力不備を表します。ストアには一切アクセスしていません。
	KindValidation Kind = iota + 1
	// KindAuth は認証失敗（資格情報不一致・未知のトークン）を表します。
	KindAuth
	// KindStore はセッションストアまたはリレーショナルストアのI/O障害を表します。
	KindStore
	// KindNotFound はプロフィール等のレコード不在を表します。
	KindNotFound
)

// Error は分類とメッセージを持つアプリケーションエラーです。
type Error struct {
	Kind    Kind
	Message string
	Err     error // 原因となった下位エラー（ログ用。クライアントには返さない）
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation は入力不備エラーを作成します。
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Auth は認証失敗エラーを作成します。
// メッセージはメール・パスワードどちらが誤りかを漏らさない文言にしてください。
func Auth(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

// Store はストアI/O障害エラーを作成します。
func Store(message string, cause error) *Error {
	return &Error{Kind: KindStore, Message: message, Err: cause}
}

// NotFound はレコード不在エラーを作成します。
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// KindOf はエラーの分類を返します。分類付きでない場合は KindStore として扱います
// （由来の不明な障害をクライアントに認証失敗と誤報しないため）。
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStore
}

// Is は err が指定した分類かどうかを判定します。
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
