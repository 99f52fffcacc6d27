// Package main はAPIサーバーのエントリーポイントです。
package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"

	"github.com/yourusername/smart-brain-api/internal/auth"
	"github.com/yourusername/smart-brain-api/internal/config"
	"github.com/yourusername/smart-brain-api/internal/image"
	"github.com/yourusername/smart-brain-api/internal/profile"
	"github.com/yourusername/smart-brain-api/internal/register"
	"github.com/yourusername/smart-brain-api/internal/session"
	"github.com/yourusername/smart-brain-api/internal/store"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ginのモードを設定
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	// リレーショナルストアへの接続（疎通確認込み。失敗したら起動しない）
	db, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := store.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// セッションストアへの接続。疎通が取れるまでリクエストは受け付けない
	sessions, err := setupSessionStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to session store: %v", err)
	}

	// Ginルーターの初期化（デフォルトミドルウェア: Logger, Recovery）
	router := gin.Default()

	// CORSミドルウェアの設定
	corsConfig := cors.DefaultConfig()
	// CORS許可オリジンを設定（カンマ区切りの文字列を配列に変換）
	origins := strings.Split(cfg.CORSAllowedOrigins, ",")
	corsConfig.AllowOrigins = origins
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Type",
		"Accept",
		"Authorization", // セッショントークン用ヘッダー
	}
	router.Use(cors.New(corsConfig))

	// ルーティングの設定
	setupRoutes(router, cfg, db, sessions)

	// サーバーの起動
	addr := ":" + cfg.Port
	log.Printf("Starting API server on %s (mode: %s)", addr, cfg.GinMode)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupSessionStore はRedisクライアントを生成し、疎通確認まで行います。
func setupSessionStore(ctx context.Context, cfg *config.Config) (*session.Store, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)
	ttl := time.Duration(cfg.SessionTTLHours) * time.Hour
	sessions := session.NewStore(rdb, ttl)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sessions.Ping(pingCtx); err != nil {
		return nil, err
	}
	return sessions, nil
}

// handleHealth はヘルスチェックエンドポイントのハンドラーです。
func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "smart-brain-api",
		"version": "0.1.0",
	})
}

// setupRoutes は認証まわりと各リソースの配線を行います。
func setupRoutes(router *gin.Engine, cfg *config.Config, db *sql.DB, sessions *session.Store) {
	// まずは誰でも叩けるヘルスチェックを登録
	router.GET("/health", handleHealth)

	users := store.NewUserRepo(db)
	issuer := auth.NewTokenIssuer(cfg.JWTSecret)
	authService := auth.NewService(users, sessions, issuer)

	// signinだけはトークン確認とログインの両方を受け付ける
	router.POST("/signin", auth.SigninHandler(authService))
	router.POST("/register", register.Handler(users))

	// これ以降のルートは有効なトークンヘッダーが必須（ログインへのフォールバックなし）
	protected := router.Group("")
	protected.Use(auth.RequireAuth(authService))
	{
		protected.GET("/profile/:id", profile.GetHandler(users))
		protected.POST("/profile/:id", profile.UpdateHandler(users))

		imageProxy := image.NewProxy(cfg.ClarifaiModelURL, cfg.ClarifaiPAT)
		protected.PUT("/image", image.EntriesHandler(users))
		protected.POST("/imageurl", imageProxy.Handler())
	}
}
