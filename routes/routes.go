package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pr-poehali-dev/tournament-site-builder/handlers"
	"github.com/pr-poehali-dev/tournament-site-builder/middleware"
	"github.com/pr-poehali-dev/tournament-site-builder/models"
)

// SetupRoutes монтирует все маршруты приложения. Чтение открыто, запись
// требует токена; управление справочниками и пользователями — только
// admin/judge.
func SetupRoutes(
	router chi.Router,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	tournamentHandler *handlers.TournamentHandler,
	gameHandler *handlers.GameHandler,
	resultHandler *handlers.ResultHandler,
	ratingHandler *handlers.RatingHandler,
	cityHandler *handlers.CityHandler,
	formatHandler *handlers.FormatHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	// Открытая CORS-политика: фронтенд ходит с любых preview-доменов.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Auth-Token"},
		AllowCredentials: false,
		MaxAge:           86400,
	}))

	authenticated := middleware.Authenticate(jwtSecret)
	staffOnly := middleware.Authorize(models.RoleAdmin, models.RoleJudge)
	adminOnly := middleware.Authorize(models.RoleAdmin)

	router.Post("/auth/login", authHandler.Login)

	router.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.List)
		r.Get("/{userID}", userHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			r.Post("/{userID}/avatar", userHandler.UploadAvatar)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			r.Use(adminOnly)
			r.Post("/", userHandler.Create)
			r.Put("/{userID}", userHandler.Update)
			r.Delete("/{userID}", userHandler.Delete)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.List)
		r.Get("/{tournamentID}", tournamentHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			r.Use(staffOnly)
			r.Post("/", tournamentHandler.Create)
			r.Put("/{tournamentID}", tournamentHandler.Update)
			r.Delete("/{tournamentID}", tournamentHandler.Delete)
		})
	})

	router.Route("/games", func(r chi.Router) {
		r.Get("/", gameHandler.ListByTournament)

		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			r.Use(staffOnly)
			r.Post("/", gameHandler.CreatePairings)
			r.Put("/", gameHandler.SetResult)
		})
	})

	router.Route("/results", func(r chi.Router) {
		r.Get("/", resultHandler.List)

		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			r.Use(staffOnly)
			r.Post("/recalculate", resultHandler.Recalculate)
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(authenticated)
		r.Use(staffOnly)
		r.Post("/ratings/recalculate", ratingHandler.Recalculate)
	})

	router.Route("/cities", func(r chi.Router) {
		r.Get("/", cityHandler.List)

		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			r.Use(staffOnly)
			r.Post("/", cityHandler.Create)
			r.Put("/{cityID}", cityHandler.Update)
			r.Delete("/{cityID}", cityHandler.Delete)
		})
	})

	router.Route("/formats", func(r chi.Router) {
		r.Get("/", formatHandler.List)

		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			r.Use(staffOnly)
			r.Post("/", formatHandler.Create)
			r.Put("/{formatID}", formatHandler.Update)
			r.Delete("/{formatID}", formatHandler.Delete)
		})
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.Subscribe)
}
