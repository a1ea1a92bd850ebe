package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/forum-engagement/internal/config"
	"github.com/pribylovaa/forum-engagement/internal/transport/http/handlers"
	"github.com/pribylovaa/forum-engagement/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	Auth     config.AuthConfig
	BasePath string // например, "/v1"; если пустой — роуты регистрируются на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(h *handlers.Handlers, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.AuthBearer(middleware.NewTokenVerifier(opts.Auth)),
	)

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h, opts)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h, opts)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
// Подписки живут дольше общего дедлайна, поэтому Timeout на них не вешается.
func registerRoutes(r chi.Router, h *handlers.Handlers, opts Options) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(opts.Timeout))

		// events
		r.Post("/events/posts", h.PostCreated)
		r.Post("/events/comments", h.CommentCreated)

		// communities
		r.Post("/communities", h.CreateCommunity)
		r.Post("/communities/{id}/join", h.JoinCommunity)
		r.Post("/communities/{id}/leave", h.LeaveCommunity)

		// toggles
		r.Get("/saved-posts", h.SavedPosts)
		r.Post("/saved-posts/{id}/toggle", h.ToggleSavedPost)
		r.Post("/videos/{id}/likes/toggle", h.ToggleVideoLike)
		r.Post("/posts/{id}/votes/toggle", h.ToggleVote)

		// notifications
		r.Get("/notifications", h.ListNotifications)
		r.Post("/notifications/read-all", h.MarkAllRead)
		r.Delete("/notifications/{id}", h.DeleteNotification)

		// achievements
		r.Get("/achievements", h.Achievements)

		// admin
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(opts.Auth))
			r.Post("/communities/{id}/reconcile", h.ReconcileCommunity)
			r.Get("/dead-letters", h.ListDeadLetters)
			r.Post("/dead-letters/replay", h.ReplayDeadLetters)
		})
	})

	// subscriptions (websocket)
	r.Get("/watch/notifications", h.WatchNotifications)
	r.Get("/watch/achievements", h.WatchAchievements)
}
