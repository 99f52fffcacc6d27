package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

const userColumns = "id, name, email, entries, age, favorite_pet, joined"

// UserRepo はユーザー・資格情報のリレーショナルストアへのアクセスを提供します。
// 見つからないレコードは (nil, nil) として返し、I/O障害のみをエラーとします。
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo はUserRepoを生成します。
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// FindCredentialByEmail は正規化済みメールアドレスに対応する資格情報レコードを取得します。
// 比較は大文字小文字を区別しません。見つからない場合はnilを返します。
func (r *UserRepo) FindCredentialByEmail(ctx context.Context, email string) (*Credential, error) {
	cred := &Credential{}
	err := r.db.QueryRowContext(ctx,
		`SELECT email, hash FROM login WHERE LOWER(email) = LOWER($1)`,
		email,
	).Scan(&cred.Email, &cred.Hash)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find credential by email: %w", err)
	}

	return cred, nil
}

// FindUserByEmail はメールアドレスからユーザーレコードを取得します。
// 比較は大文字小文字を区別しません。見つからない場合はnilを返します。
func (r *UserRepo) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	return r.findUser(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`,
		email,
	)
}

// FindUserByID は指定IDのユーザーレコードを取得します。見つからない場合はnilを返します。
func (r *UserRepo) FindUserByID(ctx context.Context, id int) (*User, error) {
	return r.findUser(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id,
	)
}

func (r *UserRepo) findUser(ctx context.Context, query string, arg any) (*User, error) {
	user := &User{}
	var age sql.NullInt64
	var name, pet sql.NullString
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &name, &user.Email, &user.Entries, &age, &pet, &user.Joined,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.Name = name.String
	if age.Valid {
		v := int(age.Int64)
		user.Age = &v
	}
	if pet.Valid {
		user.FavoritePet = &pet.String
	}
	return user, nil
}

// Create はloginとusersの両テーブルへ同一トランザクションで新規ユーザーを登録し、
// 作成されたユーザーレコードを返します。
func (r *UserRepo) Create(ctx context.Context, email, hash, name string) (*User, error) {
	normalized := strings.ToLower(email)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// 資格情報を作成
	_, err = tx.ExecContext(ctx,
		`INSERT INTO login (hash, email) VALUES ($1, $2)`,
		hash, normalized,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert credential: %w", err)
	}

	// ユーザーレコードを作成
	user := &User{Name: name, Email: normalized}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO users (name, email, joined) VALUES ($1, $2, now())
		 RETURNING id, entries, joined`,
		name, normalized,
	).Scan(&user.ID, &user.Entries, &user.Joined)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return user, nil
}

// UpdateProfile は名前・年齢・ペットの各項目を更新します。
// 対象レコードが存在しない場合は false を返します。
func (r *UserRepo) UpdateProfile(ctx context.Context, id int, name string, age *int, pet *string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = $1, age = $2, favorite_pet = $3 WHERE id = $4`,
		name, age, pet, id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update profile: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

// IncrementEntries は画像解析回数を1加算し、加算後の値を返します。
// 対象レコードが存在しない場合は found=false を返します。
func (r *UserRepo) IncrementEntries(ctx context.Context, id int) (entries int64, found bool, err error) {
	err = r.db.QueryRowContext(ctx,
		`UPDATE users SET entries = entries + 1 WHERE id = $1 RETURNING entries`,
		id,
	).Scan(&entries)

	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to increment entries: %w", err)
	}
	return entries, true, nil
}
