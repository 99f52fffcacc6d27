// Package register は新規ユーザー登録ハンドラーを提供します。
package register

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/smart-brain-api/internal/store"
)

// UserStore は登録処理が必要とするストア操作です。
type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (*store.User, error)
	Create(ctx context.Context, email, hash, name string) (*store.User, error)
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Handler は POST /register のハンドラーです。
// パスワードはbcryptでハッシュ化し、login・usersの両テーブルへ
// 同一トランザクションで登録します。
func Handler(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil ||
			req.Email == "" || req.Password == "" || req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "INVALID_INPUT",
				"message": "email・password・name をすべて入力してください",
			})
			return
		}

		normalized := strings.ToLower(req.Email)

		existing, err := users.FindUserByEmail(c.Request.Context(), normalized)
		if err != nil {
			log.Printf("register lookup failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    "STORE_ERROR",
				"message": "登録処理に失敗しました",
			})
			return
		}
		if existing != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "ALREADY_REGISTERED",
				"message": "このメールアドレスは登録できません",
			})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("password hashing failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "登録処理に失敗しました",
			})
			return
		}

		user, err := users.Create(c.Request.Context(), normalized, string(hash), req.Name)
		if err != nil {
			// 一意制約違反（同時登録）もここに落ちる。詳細は明かさない
			log.Printf("user creation failed: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "REGISTRATION_FAILED",
				"message": "登録できませんでした",
			})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}
