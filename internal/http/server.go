package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"

	"studylog-backend-go/internal/config"
	"studylog-backend-go/internal/services"
)

type Server struct {
	DB         *sqlx.DB
	Config     config.Config
	Tokens     services.TokenService
	MetricsHub *services.MetricsHub
}

func NewServer(db *sqlx.DB, cfg config.Config, hub *services.MetricsHub) *Server {
	tokens := services.TokenService{
		Secret:     []byte(cfg.JWTSecret),
		Issuer:     cfg.JWTIssuer,
		TTL:        time.Duration(cfg.TokenTTLSeconds) * time.Second,
		BcryptCost: cfg.BcryptCost,
	}
	return &Server{
		DB:         db,
		Config:     cfg,
		Tokens:     tokens,
		MetricsHub: hub,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", s.Register)
		api.Post("/auth/login", s.Login)
		// aliases kept for clients built against earlier route names
		api.Post("/signup", s.Register)
		api.Post("/login", s.Login)

		api.Group(func(private chi.Router) {
			private.Use(WithAuth(s.Tokens))
			private.Get("/auth/me", s.Me)

			private.Post("/records", s.UpsertRecord)
			private.Get("/records/{userId}", s.ListRecords)
			private.Get("/battle-stats", s.BattleStats)

			private.Post("/summaries", s.UpsertSummary)
			private.Get("/summaries", s.GetSummary)

			private.With(RequireRole("teacher")).Post("/teacher-comment", s.SetTeacherComment)

			private.Route("/students", func(students chi.Router) {
				students.Use(RequireRole("teacher"))
				students.Get("/", s.ListStudents)
				students.Patch("/{studentId}", s.PatchStudent)
				students.Post("/batch", s.BatchPatchStudents)
				students.Get("/{studentId}/review", s.StudentReview)
			})

			private.With(RequireRole("teacher")).Get("/teacher/metrics/history", s.MetricsHistory)
		})
	})

	r.Get("/ws/metrics", s.MetricsSocket)
	return r
}
