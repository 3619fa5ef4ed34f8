package main

import (
	"context"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/go-playground/validator.v9"
	entranslations "gopkg.in/go-playground/validator.v9/translations/en"

	"lumen-cms/config"
	"lumen-cms/editor"
	"lumen-cms/handlers"
	"lumen-cms/helper"
	"lumen-cms/live"
	"lumen-cms/media"
	"lumen-cms/middleware"
	"lumen-cms/models"
	"lumen-cms/repositories"
	"lumen-cms/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	db := config.InitDB()

	// Translated validator for form-style payloads
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator("en")
	validate := validator.New()
	if err := entranslations.RegisterDefaultTranslations(validate, translator); err != nil {
		log.WithError(err).Fatal("validator translation setup failed")
	}
	httpHelper := &helper.HTTPHelper{Validate: validate, Translator: translator}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	prefRepo := repositories.NewPreferenceRepository(db)
	postRepo := repositories.NewPostRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	teamRepo := repositories.NewTeamRepository(db)
	galleryRepo := repositories.NewGalleryRepository(db)
	podcastRepo := repositories.NewPodcastRepository(db)
	contactRepo := repositories.NewContactRepository(db)

	// Media upload service
	mediaClient := media.NewClient(
		envOr("MEDIA_SERVICE_URL", "https://api.imgbb.com/1"),
		os.Getenv("MEDIA_SERVICE_KEY"),
	)
	uploads := media.NewAdapter(mediaClient, log)

	// Live update hub for the public listing pages
	hub := live.NewHub(log)

	// Services
	authService := services.NewAuthService(userRepo, prefRepo)
	postService := services.NewPostService(postRepo, tagRepo, uploads, hub, log)
	tagService := services.NewTagService(tagRepo)
	projectService := services.NewProjectService(projectRepo, uploads, hub)
	teamService := services.NewTeamService(teamRepo, uploads, hub)
	galleryService := services.NewGalleryService(galleryRepo, uploads, hub)
	podcastService := services.NewPodcastService(podcastRepo, uploads, hub)
	contactService := services.NewContactService(contactRepo)

	registerCollections(hub, postService, projectService, teamService, galleryService, podcastService)

	// Editing sessions with debounced autosave
	editorManager := editor.NewManager(postService, func(event string, err error) {
		log.WithError(err).Warn(event)
	}, editor.DefaultQuietPeriod)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	postHandler := handlers.NewPostHandler(postService)
	editorHandler := handlers.NewEditorHandler(editorManager, postService)
	uploadHandler := handlers.NewUploadHandler(uploads)
	tagHandler := handlers.NewTagHandler(tagService)
	projectHandler := handlers.NewProjectHandler(projectService)
	teamHandler := handlers.NewTeamHandler(teamService)
	galleryHandler := handlers.NewGalleryHandler(galleryService)
	podcastHandler := handlers.NewPodcastHandler(podcastService)
	contactHandler := handlers.NewContactHandler(contactService, httpHelper)
	liveHandler := handlers.NewLiveHandler(hub, log)

	router := gin.Default()

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

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/profile", authHandler.GetProfile)
			protected.GET("/preferences", authHandler.GetPreference)
			protected.PUT("/preferences", authHandler.UpdatePreference)

			posts := protected.Group("/posts")
			{
				posts.GET("", postHandler.GetPosts)
				posts.GET("/:id", postHandler.GetPost)
				posts.DELETE("/:id", postHandler.DeletePost)
			}

			sessions := protected.Group("/editor/sessions")
			{
				sessions.POST("", editorHandler.OpenSession)
				sessions.GET("/:id", editorHandler.GetSession)
				sessions.PUT("/:id/content", editorHandler.SetContent)
				sessions.PUT("/:id/markdown", editorHandler.SetMarkdown)
				sessions.PUT("/:id/mode", editorHandler.SwitchMode)
				sessions.POST("/:id/submit", editorHandler.Submit)
				sessions.DELETE("/:id", editorHandler.CloseSession)
			}

			protected.POST("/uploads", uploadHandler.UploadImage)

			tags := protected.Group("/tags")
			{
				tags.POST("", tagHandler.CreateTag)
				tags.GET("", tagHandler.GetTags)
				tags.GET("/:id", tagHandler.GetTag)
			}

			projects := protected.Group("/projects")
			{
				projects.POST("", projectHandler.CreateProject)
				projects.GET("", projectHandler.GetProjects)
				projects.PUT("/:id", projectHandler.UpdateProject)
				projects.DELETE("/:id", projectHandler.DeleteProject)
			}

			team := protected.Group("/team")
			{
				team.POST("", teamHandler.CreateMember)
				team.PUT("/:id", teamHandler.UpdateMember)
				team.DELETE("/:id", teamHandler.DeleteMember)
			}

			gallery := protected.Group("/gallery")
			{
				gallery.POST("", galleryHandler.CreateImage)
				gallery.PUT("/:id", galleryHandler.UpdateImage)
				gallery.DELETE("/:id", galleryHandler.DeleteImage)
			}

			podcast := protected.Group("/podcast")
			{
				podcast.POST("", podcastHandler.CreateEpisode)
				podcast.GET("", podcastHandler.GetEpisodes)
				podcast.PUT("/:id", podcastHandler.UpdateEpisode)
				podcast.DELETE("/:id", podcastHandler.DeleteEpisode)
			}

			messages := protected.Group("/messages")
			messages.Use(middleware.RequireRole(string(models.RoleAdmin), string(models.RoleEditor)))
			{
				messages.GET("", contactHandler.GetMessages)
				messages.PUT("/:id/read", contactHandler.MarkRead)
				messages.DELETE("/:id", contactHandler.DeleteMessage)
			}
		}

		// Public site routes (published content only)
		public := v1.Group("/public")
		{
			public.GET("/posts", postHandler.GetPublicPosts)
			public.GET("/posts/:id", postHandler.GetPublicPost)
			public.GET("/posts/slug/:slug", postHandler.GetPublicPostBySlug)
			public.GET("/resources", postHandler.GetResources)
			public.GET("/projects", projectHandler.GetPublicProjects)
			public.GET("/projects/:id", projectHandler.GetPublicProject)
			public.GET("/team", teamHandler.GetMembers)
			public.GET("/gallery", galleryHandler.GetImages)
			public.GET("/podcast", podcastHandler.GetPublicEpisodes)
			public.GET("/podcast/:id", podcastHandler.GetPublicEpisode)
			public.POST("/contact", contactHandler.SubmitMessage)
			public.GET("/live/:collection", liveHandler.Stream)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.WithField("port", port).Info("server starting")
	log.Fatal(http.ListenAndServe(":"+port, router))
}

// registerCollections wires the live hub's fetchers: each one loads
// the full published set of a public collection.
func registerCollections(hub *live.Hub, posts services.PostService, projects services.ProjectService, team services.TeamService, gallery services.GalleryService, podcast services.PodcastService) {
	hub.Register("posts", func(ctx context.Context) (interface{}, error) {
		list, _, err := posts.GetPosts(models.PostListParams{Page: 1, Limit: 100, SortBy: "published_at", SortOrder: "desc"}, true)
		return list, err
	})
	hub.Register("projects", func(ctx context.Context) (interface{}, error) {
		list, _, err := projects.GetProjects(models.ListParams{Page: 1, Limit: 100}, true)
		return list, err
	})
	hub.Register("team", func(ctx context.Context) (interface{}, error) {
		members, err := team.GetMembers()
		return members, err
	})
	hub.Register("gallery", func(ctx context.Context) (interface{}, error) {
		list, _, err := gallery.GetImages(models.ListParams{Page: 1, Limit: 200})
		return list, err
	})
	hub.Register("podcast", func(ctx context.Context) (interface{}, error) {
		list, _, err := podcast.GetEpisodes(models.ListParams{Page: 1, Limit: 100}, true)
		return list, err
	})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
