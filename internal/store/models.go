package store

import "time"

// User はusersテーブルの1レコードを表します。
// このサブシステムが返すユーザー情報の完全な形です。
type User struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Entries     int64     `json:"entries"`
	Age         *int      `json:"age,omitempty"`
	FavoritePet *string   `json:"pet,omitempty"`
	Joined      time.Time `json:"joined"`
}

// Credential はloginテーブルが持つ認証用の最小レコードです。
// このサブシステムからは読み取り専用です（登録時のみ書き込まれる）。
type Credential struct {
	Email string
	Hash  string
}
