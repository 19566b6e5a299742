package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/Elzoka/devconnecter/internal/config"
	"github.com/Elzoka/devconnecter/internal/handlers"
	appMiddleware "github.com/Elzoka/devconnecter/internal/middleware"
	"github.com/Elzoka/devconnecter/internal/services"
	"github.com/Elzoka/devconnecter/internal/token"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	// Document store; unreachable Mongo aborts startup.
	userService, err := services.NewMongoUserService(ctx, cfg.MongoURI, cfg.MongoDB, logger)
	if err != nil {
		logger.Fatal("failed to connect user store", zap.Error(err))
	}
	profileService, err := services.NewMongoProfileService(ctx, cfg.MongoURI, cfg.MongoDB, logger)
	if err != nil {
		logger.Fatal("failed to connect profile store", zap.Error(err))
	}
	postService, err := services.NewMongoPostService(ctx, cfg.MongoURI, cfg.MongoDB, logger)
	if err != nil {
		logger.Fatal("failed to connect post store", zap.Error(err))
	}

	issuer := token.NewIssuer(cfg.JWTSecret, cfg.JWTExpiration)
	auth := appMiddleware.Authenticate(issuer, userService)

	usersHandler := handlers.NewUsersHandler(userService, issuer, logger)
	profileHandler := handlers.NewProfileHandler(profileService, userService, logger)
	postsHandler := handlers.NewPostsHandler(postService, logger)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(appMiddleware.RequestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Get("/test", usersHandler.Test)
			r.Post("/register", usersHandler.Register)
			r.Post("/login", usersHandler.Login)
			r.With(auth).Get("/current", usersHandler.Current)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/test", profileHandler.Test)
			r.Get("/all", profileHandler.GetAll)
			r.Get("/handle/{handle}", profileHandler.GetByHandle)
			r.Get("/user/{userID}", profileHandler.GetByUserID)

			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Get("/", profileHandler.GetCurrent)
				r.Post("/", profileHandler.Upsert)
				r.Delete("/", profileHandler.DeleteAccount)
				r.Post("/experience", profileHandler.AddExperience)
				r.Post("/education", profileHandler.AddEducation)
				r.Delete("/experience/{expID}", profileHandler.RemoveExperience)
				r.Delete("/education/{eduID}", profileHandler.RemoveEducation)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/test", postsHandler.Test)
			r.Get("/", postsHandler.GetAll)
			r.Get("/{postID}", postsHandler.GetByID)

			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Post("/", postsHandler.Create)
				r.Delete("/{postID}", postsHandler.Delete)
				r.Post("/{postID}/like", postsHandler.Like)
				r.Post("/{postID}/unlike", postsHandler.Unlike)
				r.Post("/{postID}/comment", postsHandler.AddComment)
				r.Delete("/{postID}/comment/{commentID}", postsHandler.RemoveComment)
			})
		})
	})

	logger.Info("server starting", zap.String("address", cfg.ServerAddress))
	if err := http.ListenAndServe(cfg.ServerAddress, r); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
