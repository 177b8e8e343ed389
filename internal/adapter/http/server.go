package adapthttp

import (
	"net/http"

	"go.uber.org/zap"

	"weighttrack/internal/app"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	accounts *app.AccountService
	weight   *app.WeightService
	goals    *app.GoalService
	log      *zap.Logger
}

// New creates a Server wired to the given application services.
func New(as *app.AccountService, ws *app.WeightService, gs *app.GoalService, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{accounts: as, weight: ws, goals: gs, log: log.Named("http")}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/accounts", s.handleCreateAccount)
	api.HandleFunc("/login", s.handleLogin)

	api.Handle("/weights", s.requireUser(http.HandlerFunc(s.handleWeights)))
	api.Handle("/weights/{id}", s.requireUser(http.HandlerFunc(s.handleWeight)))
	api.Handle("/goal", s.requireUser(http.HandlerFunc(s.handleGoal)))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))

	return s.loggingMiddleware(withNoCache(root))
}
