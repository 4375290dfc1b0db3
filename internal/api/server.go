// Package api exposes the JSON HTTP surface: accounts, groups, expenses,
// settlements, budgets and monthly summaries. Handlers stay thin; all rules
// live in the service layer.
package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"splitledger/internal/auth"
	"splitledger/internal/middleware"
	"splitledger/internal/service"
)

// Server bundles the services behind the HTTP handlers.
type Server struct {
	users      *service.UserService
	groups     *service.GroupService
	expenses   *service.ExpenseService
	budgets    *service.BudgetService
	jwtManager *auth.JWTManager
}

// NewServer creates a Server over the given services.
func NewServer(users *service.UserService, groups *service.GroupService, expenses *service.ExpenseService, budgets *service.BudgetService, jwtManager *auth.JWTManager) *Server {
	return &Server{
		users:      users,
		groups:     groups,
		expenses:   expenses,
		budgets:    budgets,
		jwtManager: jwtManager,
	}
}

// Routes builds the full route table. Everything except registration, login,
// health and metrics requires a bearer token.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	protected := http.NewServeMux()
	protected.HandleFunc("GET /api/me", s.handleGetProfile)
	protected.HandleFunc("PATCH /api/me", s.handleUpdateProfile)

	protected.HandleFunc("POST /api/groups", s.handleCreateGroup)
	protected.HandleFunc("GET /api/groups", s.handleListGroups)
	protected.HandleFunc("GET /api/groups/{groupID}", s.handleGetGroup)
	protected.HandleFunc("PATCH /api/groups/{groupID}", s.handleUpdateGroup)
	protected.HandleFunc("DELETE /api/groups/{groupID}", s.handleDeleteGroup)

	protected.HandleFunc("POST /api/groups/{groupID}/members", s.handleAddMember)
	protected.HandleFunc("DELETE /api/groups/{groupID}/members/{userID}", s.handleRemoveMember)

	protected.HandleFunc("POST /api/groups/{groupID}/categories", s.handleCreateCategory)
	protected.HandleFunc("GET /api/groups/{groupID}/categories", s.handleListCategories)
	protected.HandleFunc("DELETE /api/groups/{groupID}/categories/{categoryID}", s.handleDeleteCategory)

	protected.HandleFunc("POST /api/groups/{groupID}/expenses", s.handleCreateExpense)
	protected.HandleFunc("GET /api/groups/{groupID}/expenses", s.handleListExpenses)
	protected.HandleFunc("GET /api/groups/{groupID}/expenses/{expenseID}", s.handleGetExpense)
	protected.HandleFunc("DELETE /api/groups/{groupID}/expenses/{expenseID}", s.handleDeleteExpense)

	protected.HandleFunc("POST /api/groups/{groupID}/settlements", s.handleCreateSettlement)
	protected.HandleFunc("GET /api/groups/{groupID}/settlements", s.handleListSettlements)

	protected.HandleFunc("PUT /api/groups/{groupID}/budget", s.handleUpsertBudget)
	protected.HandleFunc("GET /api/groups/{groupID}/budget", s.handleGetBudget)
	protected.HandleFunc("GET /api/groups/{groupID}/summary", s.handleSummary)

	mux.Handle("/api/", middleware.RequireAuth(s.jwtManager, protected))

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
