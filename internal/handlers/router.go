package handlers

import (
	"net/http"
	"strings"

	"backoffice/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogger(h.logger))
	r.Use(middleware.Actor)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   strings.Split(h.cfg.AllowedOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.ActorHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/savings", func(r chi.Router) {
		r.Get("/goal", h.GetSavingsGoal)
		r.Get("/progress", h.GetSavingsProgress)
		r.Get("/transactions", h.ListSavingsTransactions)
		r.Post("/transactions", h.CreateSavingsTransaction)
	})

	r.Route("/abstinence", func(r chi.Router) {
		r.Get("/tracker", h.GetAbstinenceTracker)
		r.Get("/progress", h.GetAbstinenceProgress)
		r.Get("/checkins", h.ListAbstinenceCheckIns)
		r.Post("/checkins", h.CreateAbstinenceCheckIn)
	})

	r.Route("/donors", func(r chi.Router) {
		r.Post("/", h.CreateDonor)
		r.Get("/", h.ListDonors)
		r.Get("/{id}", h.GetDonor)
		r.Put("/{id}", h.UpdateDonor)
		r.Delete("/{id}", h.DeleteDonor)
	})

	r.Route("/donations", func(r chi.Router) {
		r.Post("/", h.CreateDonation)
		r.Get("/", h.ListDonations)
		r.Get("/{id}", h.GetDonation)
		r.Delete("/{id}", h.DeleteDonation)
	})

	r.Route("/projects", func(r chi.Router) {
		r.Post("/", h.CreateProject)
		r.Get("/", h.ListProjects)
		r.Get("/{id}", h.GetProject)
		r.Put("/{id}", h.UpdateProject)
		r.Delete("/{id}", h.DeleteProject)
	})

	r.Route("/program-areas", func(r chi.Router) {
		r.Post("/", h.CreateProgramArea)
		r.Get("/", h.ListProgramAreas)
		r.Get("/{name}", h.GetProgramArea)
	})

	r.Route("/bank-accounts", func(r chi.Router) {
		r.Post("/", h.CreateBankAccount)
		r.Get("/", h.ListBankAccounts)
		r.Get("/{name}", h.GetBankAccount)
	})

	r.Route("/activities", func(r chi.Router) {
		r.Post("/", h.CreateActivity)
		r.Get("/", h.ListActivities)
		r.Get("/{id}", h.GetActivity)
		r.Delete("/{id}", h.DeleteActivity)
		r.Post("/{id}/request-approval", h.RequestActivityApproval)
	})

	r.Route("/activity-approvals", func(r chi.Router) {
		r.Get("/", h.ListActivityApprovals)
		r.Get("/{id}", h.GetActivityApproval)
		r.Post("/{id}/decision", h.DecideActivityApproval)
	})

	r.Route("/budget-approvals", func(r chi.Router) {
		r.Post("/", h.CreateBudgetApproval)
		r.Get("/", h.ListBudgetApprovals)
		r.Get("/{id}", h.GetBudgetApproval)
		r.Post("/{id}/decision", h.DecideBudgetApproval)
	})

	r.Route("/employees", func(r chi.Router) {
		r.Post("/", h.CreateEmployee)
		r.Get("/", h.ListEmployees)
		r.Get("/{id}", h.GetEmployee)
		r.Put("/{id}", h.UpdateEmployee)
		r.Delete("/{id}", h.DeleteEmployee)
	})

	r.Route("/payments", func(r chi.Router) {
		r.Post("/", h.RequestPayment)
		r.Get("/", h.ListPayments)
		r.Get("/{id}", h.GetPayment)
		r.Post("/{id}/decision", h.DecidePayment)
	})

	r.Route("/reports", func(r chi.Router) {
		r.Post("/", h.CreateReport)
		r.Get("/", h.ListReports)
		r.Get("/export", h.ExportReportsCSV)
		r.Get("/{id}", h.GetReport)
		r.Delete("/{id}", h.DeleteReport)
	})

	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", h.ListNotifications)
		r.Delete("/{id}", h.DeleteNotification)
	})

	r.Route("/folders", func(r chi.Router) {
		r.Post("/", h.CreateFolder)
		r.Get("/", h.ListFolders)
	})

	r.Route("/files", func(r chi.Router) {
		r.Post("/", h.UploadFile)
		r.Get("/", h.ListFiles)
		r.Get("/{id}/download", h.DownloadFile)
	})

	if h.deps.ServeWS != nil {
		r.Get("/ws/ledger", h.deps.ServeWS)
	}

	return r
}
