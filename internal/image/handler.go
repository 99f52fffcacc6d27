// Package image は画像解析回数の更新と、顔検出APIへのプロキシを提供します。
package image

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// UserStore は画像解析回数の更新に必要なストア操作です。
type UserStore interface {
	IncrementEntries(ctx context.Context, id int) (entries int64, found bool, err error)
}

type entriesRequest struct {
	ID int `json:"id" binding:"required"`
}

// EntriesHandler は PUT /image のハンドラーです。
// 解析成功のたびにユーザーのentriesを1加算し、加算後の値を返します。
func EntriesHandler(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req entriesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "INVALID_INPUT",
				"message": "id を JSON で送ってください",
			})
			return
		}

		entries, found, err := users.IncrementEntries(c.Request.Context(), req.ID)
		if err != nil {
			log.Printf("entries update failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    "STORE_ERROR",
				"message": "解析回数の更新に失敗しました",
			})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "ユーザーが見つかりません",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"entries": entries})
	}
}

// Proxy はClarifaiの顔検出APIへの中継を行います。
// 資格情報（PAT）はサーバー側だけが保持し、クライアントには渡しません。
type Proxy struct {
	client   *http.Client
	modelURL string
	pat      string
}

// NewProxy はProxyを作成します。
func NewProxy(modelURL, pat string) *Proxy {
	return &Proxy{
		client:   &http.Client{Timeout: 15 * time.Second},
		modelURL: modelURL,
		pat:      pat,
	}
}

type apiCallRequest struct {
	Input string `json:"input" binding:"required"`
}

// Handler は POST /imageurl のハンドラーです。
// 受け取った画像URLを顔検出APIへそのまま渡し、応答をそのまま返します。
func (p *Proxy) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req apiCallRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "INVALID_INPUT",
				"message": "input を JSON で送ってください",
			})
			return
		}

		payload, err := json.Marshal(map[string]any{
			"inputs": []map[string]any{
				{
					"data": map[string]any{
						"image": map[string]string{"url": req.Input},
					},
				},
			},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "リクエストの生成に失敗しました",
			})
			return
		}

		apiReq, err := http.NewRequestWithContext(c.Request.Context(),
			http.MethodPost, p.modelURL, bytes.NewReader(payload))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "リクエストの生成に失敗しました",
			})
			return
		}
		apiReq.Header.Set("Content-Type", "application/json")
		apiReq.Header.Set("Authorization", "Key "+p.pat)

		resp, err := p.client.Do(apiReq)
		if err != nil {
			log.Printf("image api call failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{
				"code":    "EXTERNAL_API_ERROR",
				"message": "画像解析APIの呼び出しに失敗しました",
			})
			return
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			log.Printf("image api response read failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{
				"code":    "EXTERNAL_API_ERROR",
				"message": "画像解析APIの応答取得に失敗しました",
			})
			return
		}

		c.Data(resp.StatusCode, "application/json", body)
	}
}
