package auth

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/smart-brain-api/internal/apperr"
)

// ContextUserIDKey は、ハンドラー間で認証済みユーザーIDを共有するためのキーです。
const ContextUserIDKey = "auth.userID"

// RequireAuth はトークンヘッダーを検証するミドルウェアを返します。
// signinと異なり、資格情報によるフォールバックはありません。
// ストア障害時は判定が不能なためリクエストを通しません。
func RequireAuth(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(TokenHeader)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "認証が必要です",
			})
			return
		}

		userID, err := svc.ResolveToken(c.Request.Context(), token)
		if err != nil {
			if apperr.Is(err, apperr.KindAuth) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"code":    "UNAUTHORIZED",
					"message": "セッションが無効です",
				})
				return
			}
			log.Printf("session lookup failed: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"code":    "SESSION_STORE_ERROR",
				"message": "セッションの確認に失敗しました",
			})
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}
