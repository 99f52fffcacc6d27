package auth

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/smart-brain-api/internal/apperr"
)

// TokenHeader はセッショントークンを運ぶHTTPヘッダーです。
// フロントエンドとの互換のため、Bearerスキームを付けない生の値を扱います。
const TokenHeader = "Authorization"

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SigninHandler は POST /signin のハンドラーです。
// トークンヘッダー付きのリクエストはセッション確認、それ以外はログイン試行として
// 扱います。1つのエンドポイントに2種類のリクエスト形が多重化されています。
func SigninHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := c.GetHeader(TokenHeader); token != "" {
			handleSessionCheck(c, svc, token)
			return
		}
		handleLogin(c, svc)
	}
}

// handleSessionCheck は提示済みトークンをセッションストアで照会します。
// 資格情報検証やユーザー検索はこの経路では一切行いません。
func handleSessionCheck(c *gin.Context, svc *Service, token string) {
	userID, err := svc.ResolveToken(c.Request.Context(), token)
	if err != nil {
		if apperr.Is(err, apperr.KindAuth) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "セッションが無効です",
			})
			return
		}
		log.Printf("session lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "SESSION_STORE_ERROR",
			"message": "セッションの確認に失敗しました",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": userID})
}

// handleLogin は資格情報を検証し、新しいセッションを発行します。
func handleLogin(c *gin.Context, svc *Service) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "INVALID_INPUT",
			"message": "email と password を JSON で送ってください",
		})
		return
	}

	user, err := svc.VerifyCredentials(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch apperr.KindOf(err) {
		case apperr.KindValidation:
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "INVALID_INPUT",
				"message": err.Error(),
			})
		case apperr.KindAuth:
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "INVALID_CREDENTIALS",
				"message": msgInvalidCredentials,
			})
		default:
			log.Printf("credential check failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    "STORE_ERROR",
				"message": "サインイン処理に失敗しました",
			})
		}
		return
	}

	session, err := svc.CreateSession(c.Request.Context(), user)
	if err != nil {
		log.Printf("session creation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "STORE_ERROR",
			"message": "セッションの作成に失敗しました",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"userId":  session.UserID,
		"token":   session.Token,
		"user":    session.User,
	})
}
