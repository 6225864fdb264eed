package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"kb-cms/config"
	"kb-cms/handlers"
	"kb-cms/helper"
	"kb-cms/middleware"
	"kb-cms/models"
	"kb-cms/repositories"
	"kb-cms/search"
	"kb-cms/services"
	"kb-cms/translator"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg := config.MustLoad(configPath)
	config.InitLogger(cfg.Log)

	// Initialize database
	db := config.InitDB(cfg.Database, cfg.Log.Level)
	if err := models.InitTable(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// Search index notifications go through redis when configured.
	var indexer search.Indexer = search.NoopIndexer{}
	if cfg.Redis.Enabled {
		redisClient, err := config.InitRedis(cfg.Redis)
		if err != nil {
			slog.Warn("redis unavailable, search index notifications disabled", "error", err)
		} else {
			indexer = search.NewRedisIndexer(redisClient, cfg.Redis.Channel)
		}
	}

	var translatorClient translator.Client = translator.Disabled{}
	if cfg.Translator.Enabled {
		translatorClient = translator.NewHTTPClient(
			cfg.Translator.Endpoint,
			cfg.Translator.APIKey,
			cfg.Translator.Region,
			cfg.Translator.Timeout,
		)
	}

	httpHelper := helper.NewHTTPHelper()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	articleRepo := repositories.NewArticleRepository(db)
	versionRepo := repositories.NewArticleVersionRepository(db)
	translationRepo := repositories.NewTranslationRepository(db)
	languageRepo := repositories.NewLanguageRepository(db)
	tagRepo := repositories.NewTagRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	articleService := services.NewArticleService(db, articleRepo, versionRepo, tagRepo, translationRepo, indexer)
	lifecycleService := services.NewVersionLifecycleService(db, articleRepo, versionRepo, tagRepo, indexer)
	translationService := services.NewTranslationService(db, articleRepo, versionRepo, translationRepo, languageRepo, translatorClient, cfg.Translator.SourceLang)
	languageService := services.NewLanguageService(languageRepo, translationRepo)
	tagService := services.NewTagService(tagRepo, articleRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, httpHelper)
	articleHandler := handlers.NewArticleHandler(articleService, httpHelper)
	versionHandler := handlers.NewVersionHandler(lifecycleService, httpHelper)
	translationHandler := handlers.NewTranslationHandler(translationService, httpHelper)
	languageHandler := handlers.NewLanguageHandler(languageService, httpHelper)
	tagHandler := handlers.NewTagHandler(tagService, httpHelper)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.RequestLogger(), gin.Recovery())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Public routes (published, public articles only)
		v1.GET("/articles", articleHandler.GetPublicArticles)
		v1.GET("/articles/:id", articleHandler.GetPublicArticle)
		v1.GET("/articles/:id/versions", versionHandler.GetPublicVersions)
		v1.POST("/articles/:id/helpful", articleHandler.MarkHelpful)
		v1.POST("/articles/:id/unhelpful", articleHandler.MarkUnhelpful)
		v1.GET("/tags", tagHandler.GetTags)
		v1.GET("/tags/:id", tagHandler.GetTag)
		v1.GET("/languages", languageHandler.GetLanguages)

		// Protected routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware())
		{
			// Profile
			admin.GET("/profile", authHandler.GetProfile)

			// Articles and version lifecycle
			articles := admin.Group("/articles")
			{
				articles.POST("", articleHandler.CreateArticle)
				articles.GET("", articleHandler.GetArticles)
				articles.GET("/:id", articleHandler.GetArticle)
				articles.PUT("/:id", articleHandler.UpdateArticle)
				articles.DELETE("/:id", articleHandler.DeleteArticle)

				articles.GET("/:id/versions", versionHandler.GetVersions)
				articles.POST("/:id/versions/draft", versionHandler.CreateDraft)
				articles.GET("/:id/versions/draft", versionHandler.GetDraft)
				articles.GET("/:id/versions/:number", versionHandler.GetVersion)
				articles.PUT("/:id/versions/:number", versionHandler.UpdateDraft)
				articles.DELETE("/:id/versions/:number", versionHandler.DiscardDraft)
				articles.POST("/:id/versions/:number/publish", versionHandler.PublishVersion)
				articles.POST("/:id/versions/:number/rollback", versionHandler.RollbackVersion)

				articles.GET("/:id/translations", translationHandler.GetTranslations)
			}

			// Translation groups
			translations := admin.Group("/translations")
			{
				translations.POST("", translationHandler.AttachTranslation)
				translations.DELETE("/:article_id", translationHandler.DetachTranslation)
			}

			// Languages
			languages := admin.Group("/languages")
			{
				languages.GET("", languageHandler.GetAllLanguages)
				languages.GET("/:id", languageHandler.GetLanguage)
				languages.POST("", languageHandler.CreateLanguage)
				languages.PUT("/:id", languageHandler.UpdateLanguage)
				languages.DELETE("/:id", languageHandler.DeleteLanguage)
			}

			// Tags
			admin.POST("/tags", tagHandler.CreateTag)
		}
	}

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	slog.Info("server starting", "addr", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
