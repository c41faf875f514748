package server

import (
	"log"
	"strings"
	"time"

	"kweezy.app/server/internal/config"
	"kweezy.app/server/internal/middleware"
	"kweezy.app/server/pkg/storage"

	adminHttp "kweezy.app/server/internal/modules/admin/delivery/http"
	adminService "kweezy.app/server/internal/modules/admin/service"

	authHttp "kweezy.app/server/internal/modules/auth/delivery/http"
	authService "kweezy.app/server/internal/modules/auth/service"

	blogHttp "kweezy.app/server/internal/modules/blog/delivery/http"
	blogRepo "kweezy.app/server/internal/modules/blog/repository"
	blogService "kweezy.app/server/internal/modules/blog/service"

	commentHttp "kweezy.app/server/internal/modules/comment/delivery/http"
	commentRepo "kweezy.app/server/internal/modules/comment/repository"
	commentService "kweezy.app/server/internal/modules/comment/service"

	novelHttp "kweezy.app/server/internal/modules/novel/delivery/http"
	novelRepo "kweezy.app/server/internal/modules/novel/repository"
	novelService "kweezy.app/server/internal/modules/novel/service"

	progressHttp "kweezy.app/server/internal/modules/progress/delivery/http"
	progressRepo "kweezy.app/server/internal/modules/progress/repository"
	progressService "kweezy.app/server/internal/modules/progress/service"

	reactionHttp "kweezy.app/server/internal/modules/reaction/delivery/http"
	reactionRepo "kweezy.app/server/internal/modules/reaction/repository"
	reactionService "kweezy.app/server/internal/modules/reaction/service"

	searchHttp "kweezy.app/server/internal/modules/search/delivery/http"
	searchService "kweezy.app/server/internal/modules/search/service"

	userRepo "kweezy.app/server/internal/modules/user/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	users := userRepo.NewUserRepository(db)
	novels := novelRepo.NewNovelRepository(db)
	progresses := progressRepo.NewProgressRepository(db)
	comments := commentRepo.NewCommentRepository(db)
	reactions := reactionRepo.NewReactionRepository(db)
	blogPosts := blogRepo.NewBlogRepository(db)

	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		// Cover uploads fail with a clear error; the rest of the API works
		log.Printf("Cloudinary storage unavailable, cover uploads disabled: %v", err)
		imageStorage = nil
	}

	var meiliClient meilisearch.ServiceManager
	if cfg.MeiliSearchHost != "" {
		meiliClient = meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	}
	searchSvc := searchService.NewSearchService(meiliClient)
	searchHandler := searchHttp.NewSearchHandler(searchSvc)

	authSvc := authService.NewAuthService(users, cfg.JWTSecret, cfg.JWTExpiry)
	authHandler := authHttp.NewAuthHandler(authSvc)

	novelSvc := novelService.NewNovelService(novels, progresses)
	novelHandler := novelHttp.NewNovelHandler(novelSvc)

	progressSvc := progressService.NewProgressService(progresses, novels)
	progressHandler := progressHttp.NewProgressHandler(progressSvc)

	commentSvc := commentService.NewCommentService(comments, novels, redisClient, cfg.RateLimitComment, nil)
	commentHandler := commentHttp.NewCommentHandler(commentSvc)
	liveHandler := commentHttp.NewLiveCommentHandler(redisClient)

	reactionSvc := reactionService.NewReactionService(reactions, novels, redisClient)
	reactionHandler := reactionHttp.NewReactionHandler(reactionSvc)

	blogSvc := blogService.NewBlogService(blogPosts, searchSvc)
	blogHandler := blogHttp.NewBlogHandler(blogSvc)

	adminSvc := adminService.NewAdminService(novels, imageStorage, searchSvc)
	adminHandler := adminHttp.NewAdminHandler(adminSvc)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	setupCORS(router, cfg)

	authMiddleware := middleware.NewAuthMiddleware(users)

	api := router.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	api.GET("/search/novels", searchHandler.SearchNovels)

	api.GET("/blog", blogHandler.ListPosts)
	api.GET("/blog/:postId", blogHandler.GetPost)

	// Viewer-aware reads: anonymous works, a valid token enriches the payload
	public := api.Group("")
	public.Use(authMiddleware.OptionalAuth())
	{
		public.GET("/novels", novelHandler.ListNovels)
		public.GET("/novels/:novelId", novelHandler.GetNovel)
		public.GET("/chapters/:chapterId/segments", novelHandler.GetChapterSegments)
		public.GET("/segments/:segmentId/comments", commentHandler.ListComments)
		public.GET("/segments/:segmentId/reactions", reactionHandler.GetReactions)
		public.GET("/segments/:segmentId/comments/live", liveHandler.Subscribe)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.PUT("/profile", authHandler.UpdateProfile)

		protected.POST("/segments/:segmentId/comments", commentHandler.CreateComment)
		protected.POST("/comments/:commentId/like", commentHandler.ToggleLike)
		protected.POST("/segments/:segmentId/reactions", reactionHandler.ToggleReaction)

		protected.GET("/novels/:novelId/progress", progressHandler.GetProgress)
		protected.PUT("/novels/:novelId/progress", progressHandler.UpsertProgress)

		// Admin routes
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.GET("/novels", adminHandler.ListNovels)
			adminGroup.GET("/novels/list", adminHandler.ListNovelTitles)
			adminGroup.POST("/novels", adminHandler.CreateNovel)
			adminGroup.PUT("/novels/:novelId", adminHandler.UpdateNovel)
			adminGroup.DELETE("/novels/:novelId", adminHandler.DeleteNovel)
			adminGroup.POST("/novels/:novelId/cover", adminHandler.UploadCover)
			adminGroup.POST("/novels/:novelId/chapters", adminHandler.CreateChapter)
			adminGroup.DELETE("/novels/:novelId/chapters/:chapterNumber", adminHandler.DeleteChapter)
			adminGroup.POST("/novels/:novelId/chapters/:chapterNumber/content", adminHandler.ReplaceSegments)

			adminGroup.POST("/blog", blogHandler.CreatePost)
			adminGroup.PUT("/blog/:postId", blogHandler.UpdatePost)
			adminGroup.DELETE("/blog/:postId", blogHandler.DeletePost)
		}
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, cfg *config.Config) {
	origins := strings.Split(cfg.AllowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
