package handlers

import (
	"context"
	"net/http"
	"time"

	"backoffice/internal/config"
	"backoffice/internal/services"
	"backoffice/internal/store"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// TxRunner runs a function inside a scoped transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

type DonationService interface {
	Record(ctx context.Context, req services.RecordDonationRequest) (string, error)
	Delete(ctx context.Context, id string) error
}

type ApprovalService interface {
	CreateActivity(ctx context.Context, req services.CreateActivityRequest) (string, error)
	Decide(ctx context.Context, approvalID, decision, approvedBy, comments string) error
	Request(ctx context.Context, activityID, requestedBy string) error
}

type BudgetService interface {
	Create(ctx context.Context, activityID string, amountMinor int64, requestedBy string, comments *string) (string, error)
	Decide(ctx context.Context, id, decision, approvedBy, comments string) error
}

type PaymentService interface {
	Request(ctx context.Context, req services.RequestPaymentRequest) (string, error)
	Approve(ctx context.Context, id string, approved bool, processedBy, remarks string) error
}

type SavingsService interface {
	Goal(ctx context.Context) (store.SavingsGoal, error)
	Progress(ctx context.Context) (services.SavingsProgress, error)
	RecordTransaction(ctx context.Context, amountMinor int64, txType string, date time.Time, description *string) (int64, error)
	ListTransactions(ctx context.Context) ([]store.SavingsTransaction, error)
}

type AbstinenceService interface {
	Tracker(ctx context.Context) (store.AbstinenceTracker, error)
	Progress(ctx context.Context) (services.AbstinenceProgress, error)
	ListCheckIns(ctx context.Context) ([]store.AbstinenceCheckIn, error)
	CheckIn(ctx context.Context, date time.Time, success bool, notes *string) error
}

type LedgerStore interface {
	CreateBankAccount(ctx context.Context, tx store.Execer, id, name, accountNumber string, balance int64) error
	GetBankAccount(ctx context.Context, name string) (store.BankAccount, error)
	ListBankAccounts(ctx context.Context) ([]store.BankAccount, error)
	CreateProgramArea(ctx context.Context, tx store.Execer, id, name, description string, budget int64) error
	GetProgramArea(ctx context.Context, name string) (store.ProgramArea, error)
	ListProgramAreas(ctx context.Context) ([]store.ProgramArea, error)
}

type DonationStore interface {
	Get(ctx context.Context, id string) (store.Donation, error)
	List(ctx context.Context, limit, offset int) ([]map[string]any, error)
}

type DonorStore interface {
	Create(ctx context.Context, input store.DonorInput) error
	Get(ctx context.Context, id string) (store.Donor, error)
	List(ctx context.Context) ([]store.Donor, error)
	Update(ctx context.Context, input store.DonorInput) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type ProjectStore interface {
	Create(ctx context.Context, tx store.Execer, input store.ProjectInput) error
	Get(ctx context.Context, id string) (store.Project, error)
	List(ctx context.Context) ([]store.Project, error)
	Update(ctx context.Context, input store.ProjectInput) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type ActivityStore interface {
	Get(ctx context.Context, id string) (store.Activity, error)
	List(ctx context.Context) ([]store.Activity, error)
	Delete(ctx context.Context, id string) error
}

type ApprovalStore interface {
	GetActivityApproval(ctx context.Context, id string) (store.ActivityApproval, error)
	ListActivityApprovals(ctx context.Context) ([]store.ActivityApproval, error)
	GetBudgetApproval(ctx context.Context, id string) (store.BudgetApproval, error)
	ListBudgetApprovals(ctx context.Context) ([]store.BudgetApproval, error)
}

type EmployeeStore interface {
	Create(ctx context.Context, input store.EmployeeInput) error
	Get(ctx context.Context, id string) (store.Employee, error)
	List(ctx context.Context) ([]store.Employee, error)
	Update(ctx context.Context, input store.EmployeeInput) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type PaymentStore interface {
	Get(ctx context.Context, id string) (store.Payment, error)
	List(ctx context.Context, employeeID string) ([]store.Payment, error)
}

type NotificationStore interface {
	List(ctx context.Context, limit, offset int) ([]store.Notification, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type ReportStore interface {
	Create(ctx context.Context, input store.ReportInput) error
	Get(ctx context.Context, id string) (store.Report, error)
	List(ctx context.Context) ([]store.Report, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type FileStore interface {
	CreateFolder(ctx context.Context, id, name string) error
	ListFolders(ctx context.Context) ([]store.Folder, error)
	CreateFile(ctx context.Context, input store.FileInput) error
	GetFile(ctx context.Context, id string) (store.File, error)
	ListFiles(ctx context.Context, folderID string) ([]store.File, error)
}

// Deps collects everything the HTTP layer needs. The server wires concrete
// stores and services in; tests plug stubs.
type Deps struct {
	TxRunner TxRunner

	Donations  DonationService
	Approvals  ApprovalService
	Budgets    BudgetService
	Payments   PaymentService
	Savings    SavingsService
	Abstinence AbstinenceService

	Ledger        LedgerStore
	DonationRows  DonationStore
	Donors        DonorStore
	Projects      ProjectStore
	Activities    ActivityStore
	ApprovalRows  ApprovalStore
	Employees     EmployeeStore
	PaymentRows   PaymentStore
	Notifications NotificationStore
	Reports       ReportStore
	Files         FileStore

	ServeWS http.HandlerFunc
}

type Handler struct {
	cfg    config.Config
	logger *zap.Logger
	deps   Deps
}

func New(cfg config.Config, logger *zap.Logger, deps Deps) *Handler {
	return &Handler{cfg: cfg, logger: logger, deps: deps}
}
