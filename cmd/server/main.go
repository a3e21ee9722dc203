package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/scribeapp/scribe/internal/config"
	"github.com/scribeapp/scribe/internal/database"
	"github.com/scribeapp/scribe/internal/fake"
	"github.com/scribeapp/scribe/internal/notify"
	postgresrepo "github.com/scribeapp/scribe/internal/repository/postgres"
	"github.com/scribeapp/scribe/internal/service"
	"github.com/scribeapp/scribe/internal/token"
	"github.com/scribeapp/scribe/internal/transport/http/handlers"
	"github.com/scribeapp/scribe/internal/transport/http/middleware"
)

func main() {
	seedFake := flag.Int("seed-fake", 0, "seed N fake users (with ~3 posts each) and exit")
	flag.Parse()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	tokens, err := token.New(cfg.SecretKey)
	if err != nil {
		slog.Error("SECRET_KEY must be set", "error", err)
		os.Exit(1)
	}

	// Database
	if err := database.Migrate(cfg.MigrateURL()); err != nil {
		slog.Error("migrating database", "error", err)
		os.Exit(1)
	}
	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		slog.Error("connecting to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	slog.Info("connected to database")

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	roleRepo := postgresrepo.NewRoleRepo(pool)
	followRepo := postgresrepo.NewFollowRepo(pool)
	postRepo := postgresrepo.NewPostRepo(pool)
	commentRepo := postgresrepo.NewCommentRepo(pool)

	// Notification publisher
	var publisher notify.Publisher = notify.LogPublisher{}
	if cfg.NATSURL != "" {
		natsPub, err := notify.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			slog.Error("connecting to nats", "error", err)
			os.Exit(1)
		}
		defer natsPub.Close()
		publisher = natsPub
	}

	// Services
	roleService := service.NewRoleService(roleRepo)
	authService := service.NewAuthService(userRepo, roleRepo, followRepo, tokens, publisher, cfg.AdminEmail)
	followService := service.NewFollowService(followRepo, userRepo, postRepo)
	postService := service.NewPostService(postRepo)
	commentService := service.NewCommentService(commentRepo, postRepo)

	// Bootstrap: roles first (accounts depend on them), then repair
	// any accounts missing their self-follow edge.
	if err := roleService.SeedRoles(ctx); err != nil {
		slog.Error("seeding roles", "error", err)
		os.Exit(1)
	}
	if created, err := followService.EnsureSelfFollows(ctx); err != nil {
		slog.Error("backfilling self-follows", "error", err)
		os.Exit(1)
	} else if created > 0 {
		slog.Info("backfilled self-follows", "created", created)
	}

	if *seedFake > 0 {
		ids, err := fake.Users(ctx, userRepo, roleRepo, followRepo, *seedFake)
		if err == nil {
			err = fake.Posts(ctx, postRepo, ids, *seedFake*3)
		}
		if err != nil {
			slog.Error("seeding fake data", "error", err)
			os.Exit(1)
		}
		return
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(authService, postService, followService, cfg.PostsPerPage)
	followHandler := handlers.NewFollowHandler(followService, cfg.PostsPerPage)
	postHandler := handlers.NewPostHandler(postService, commentService, cfg.PostsPerPage)
	commentHandler := handlers.NewCommentHandler(commentService, cfg.PostsPerPage)

	// Middleware: auth loads the user and pings last_seen; confirmed
	// additionally requires a confirmed account.
	auth := middleware.Auth(tokens, userRepo)
	confirmed := func(h http.HandlerFunc) http.Handler {
		return auth(middleware.RequireConfirmed(h))
	}
	authed := func(h http.HandlerFunc) http.Handler {
		return auth(h)
	}

	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/reset", authHandler.RequestPasswordReset)
	mux.HandleFunc("PUT /api/v1/auth/reset", authHandler.ResetPassword)

	// Authenticated, confirmation not yet required
	mux.Handle("POST /api/v1/auth/confirm", authed(authHandler.Confirm))
	mux.Handle("POST /api/v1/auth/confirm/resend", authed(authHandler.ResendConfirmation))

	// Account
	mux.Handle("GET /api/v1/me", confirmed(userHandler.Me))
	mux.Handle("PATCH /api/v1/me", confirmed(userHandler.UpdateProfile))
	mux.Handle("POST /api/v1/auth/email", confirmed(authHandler.RequestEmailChange))
	mux.Handle("PUT /api/v1/auth/email", confirmed(authHandler.ChangeEmail))

	// Users and the follow graph
	mux.Handle("GET /api/v1/users/{id}", confirmed(userHandler.Get))
	mux.Handle("GET /api/v1/users/{id}/posts", confirmed(userHandler.Posts))
	mux.Handle("GET /api/v1/users/{id}/timeline", confirmed(userHandler.Timeline))
	mux.Handle("POST /api/v1/users/{id}/follow", confirmed(followHandler.Follow))
	mux.Handle("DELETE /api/v1/users/{id}/follow", confirmed(followHandler.Unfollow))
	mux.Handle("GET /api/v1/users/{id}/followers", confirmed(followHandler.Followers))
	mux.Handle("GET /api/v1/users/{id}/following", confirmed(followHandler.Following))

	// Posts
	mux.Handle("POST /api/v1/posts", confirmed(postHandler.Create))
	mux.Handle("GET /api/v1/posts", confirmed(postHandler.List))
	mux.Handle("GET /api/v1/posts/{id}", confirmed(postHandler.Get))
	mux.Handle("PUT /api/v1/posts/{id}", confirmed(postHandler.Edit))
	mux.Handle("GET /api/v1/posts/{id}/comments", confirmed(postHandler.ListComments))
	mux.Handle("POST /api/v1/posts/{id}/comments", confirmed(postHandler.CreateComment))

	// Comments and moderation
	mux.Handle("GET /api/v1/comments", confirmed(commentHandler.List))
	mux.Handle("GET /api/v1/comments/{id}", confirmed(commentHandler.Get))
	mux.Handle("PUT /api/v1/comments/{id}/moderation", confirmed(commentHandler.Moderate))

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	slog.Info("starting server", "addr", addr)
	if err := http.ListenAndServe(addr, middleware.CORS(mux)); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
