// Package profile はユーザープロフィールの取得・更新ハンドラーを提供します。
package profile

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/smart-brain-api/internal/store"
)

// UserStore はプロフィール操作が必要とするストア操作です。
type UserStore interface {
	FindUserByID(ctx context.Context, id int) (*store.User, error)
	UpdateProfile(ctx context.Context, id int, name string, age *int, pet *string) (bool, error)
}

type updateRequest struct {
	Name string  `json:"name"`
	Age  *int    `json:"age"`
	Pet  *string `json:"pet"`
}

// GetHandler は GET /profile/:id のハンドラーです。
func GetHandler(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "INVALID_INPUT",
				"message": "ユーザーIDが不正です",
			})
			return
		}

		user, err := users.FindUserByID(c.Request.Context(), id)
		if err != nil {
			log.Printf("profile lookup failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    "STORE_ERROR",
				"message": "プロフィールの取得に失敗しました",
			})
			return
		}
		if user == nil {
			c.JSON(http.StatusNotFound, gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "ユーザーが見つかりません",
			})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// UpdateHandler は POST /profile/:id のハンドラーです。
// name・age・pet の3項目のみを更新対象とします。
func UpdateHandler(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "INVALID_INPUT",
				"message": "ユーザーIDが不正です",
			})
			return
		}

		var req updateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "INVALID_INPUT",
				"message": "プロフィール項目を JSON で送ってください",
			})
			return
		}

		updated, err := users.UpdateProfile(c.Request.Context(), id, req.Name, req.Age, req.Pet)
		if err != nil {
			log.Printf("profile update failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    "STORE_ERROR",
				"message": "プロフィールの更新に失敗しました",
			})
			return
		}
		if !updated {
			c.JSON(http.StatusNotFound, gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "ユーザーが見つかりません",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
