package services

import (
	"context"
	"database/sql"
	"time"

	"backoffice/internal/store"
	"backoffice/internal/websocket"

	"github.com/jmoiron/sqlx"
)

// fakeTxRunner invokes the callback directly. The stubs below ignore the tx
// argument, so nil is fine.
type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(_ context.Context, fn func(*sqlx.Tx) error) error {
	return fn(nil)
}

type captureHub struct {
	updates []websocket.LedgerUpdate
}

func (h *captureHub) BroadcastLedger(update websocket.LedgerUpdate) {
	h.updates = append(h.updates, update)
}

type stubLedger struct {
	accounts map[string]int64
	areas    map[string]*store.ProgramArea
}

func newStubLedger() *stubLedger {
	return &stubLedger{
		accounts: map[string]int64{},
		areas:    map[string]*store.ProgramArea{},
	}
}

func (s *stubLedger) AdjustBankAccount(_ context.Context, _ store.Getter, name string, delta int64) (int64, error) {
	balance, ok := s.accounts[name]
	if !ok {
		return 0, sql.ErrNoRows
	}
	s.accounts[name] = balance + delta
	return balance + delta, nil
}

func (s *stubLedger) AdjustProgramArea(_ context.Context, _ store.Getter, name string, delta int64) (int64, error) {
	area, ok := s.areas[name]
	if !ok {
		return 0, sql.ErrNoRows
	}
	area.Balance += delta
	return area.Balance, nil
}

func (s *stubLedger) GetProgramAreaForUpdate(_ context.Context, _ store.Getter, name string) (store.ProgramArea, error) {
	area, ok := s.areas[name]
	if !ok {
		return store.ProgramArea{}, sql.ErrNoRows
	}
	return *area, nil
}

type stubDonations struct {
	rows map[string]store.Donation
}

func newStubDonations() *stubDonations {
	return &stubDonations{rows: map[string]store.Donation{}}
}

func (s *stubDonations) Create(_ context.Context, _ store.Execer, input store.DonationInput) error {
	s.rows[input.ID] = store.Donation{
		ID:            input.ID,
		DonorID:       input.DonorID,
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
		DonationDate:  input.DonationDate,
		Project:       input.Project,
		Status:        input.Status,
	}
	return nil
}

func (s *stubDonations) GetForUpdate(_ context.Context, _ store.Getter, id string) (store.Donation, error) {
	row, ok := s.rows[id]
	if !ok {
		return store.Donation{}, sql.ErrNoRows
	}
	return row, nil
}

func (s *stubDonations) Delete(_ context.Context, _ store.Execer, id string) error {
	delete(s.rows, id)
	return nil
}

type stubNotifications struct {
	messages []string
}

func (s *stubNotifications) Append(_ context.Context, _ store.Execer, _ string, message, _, _ string) error {
	s.messages = append(s.messages, message)
	return nil
}

type stubActivities struct {
	rows   map[string]*store.Activity
	joined map[string]store.ActivityProject
}

func newStubActivities() *stubActivities {
	return &stubActivities{
		rows:   map[string]*store.Activity{},
		joined: map[string]store.ActivityProject{},
	}
}

func (s *stubActivities) Create(_ context.Context, _ store.Execer, id, projectID, name, description string, budget int64, status string) error {
	s.rows[id] = &store.Activity{ID: id, ProjectID: projectID, Name: name, Budget: budget, Status: status}
	return nil
}

func (s *stubActivities) Get(_ context.Context, id string) (store.Activity, error) {
	row, ok := s.rows[id]
	if !ok {
		return store.Activity{}, sql.ErrNoRows
	}
	return *row, nil
}

func (s *stubActivities) UpdateStatus(_ context.Context, _ store.Execer, id, status string) error {
	row, ok := s.rows[id]
	if !ok {
		return sql.ErrNoRows
	}
	row.Status = status
	return nil
}

func (s *stubActivities) GetWithProject(_ context.Context, _ store.Getter, id string) (store.ActivityProject, error) {
	joined, ok := s.joined[id]
	if !ok {
		return store.ActivityProject{}, sql.ErrNoRows
	}
	return joined, nil
}

type stubActivityApprovals struct {
	rows map[string]*store.ActivityApproval
}

func newStubActivityApprovals() *stubActivityApprovals {
	return &stubActivityApprovals{rows: map[string]*store.ActivityApproval{}}
}

func (s *stubActivityApprovals) UpsertActivityPending(_ context.Context, _ store.Execer, id, activityID string, requestedAmount int64, requestedBy string) error {
	for _, row := range s.rows {
		if row.ActivityID == activityID {
			row.Status = "pending"
			row.RequestedAmount = requestedAmount
			row.RequestedBy = requestedBy
			row.ApprovedBy = nil
			return nil
		}
	}
	s.rows[id] = &store.ActivityApproval{
		ID:              id,
		ActivityID:      activityID,
		RequestedAmount: requestedAmount,
		Status:          "pending",
		RequestedBy:     requestedBy,
	}
	return nil
}

func (s *stubActivityApprovals) DecideActivityPending(_ context.Context, _ store.Getter, id, status, approvedBy, comments string) (string, error) {
	row, ok := s.rows[id]
	if !ok || row.Status != "pending" {
		return "", sql.ErrNoRows
	}
	row.Status = status
	row.ApprovedBy = &approvedBy
	row.ResponseComments = &comments
	return row.ActivityID, nil
}

func (s *stubActivityApprovals) GetActivityApproval(_ context.Context, id string) (store.ActivityApproval, error) {
	row, ok := s.rows[id]
	if !ok {
		return store.ActivityApproval{}, sql.ErrNoRows
	}
	return *row, nil
}

type stubProjects struct {
	rows map[string]store.Project
}

func (s *stubProjects) Get(_ context.Context, id string) (store.Project, error) {
	row, ok := s.rows[id]
	if !ok {
		return store.Project{}, sql.ErrNoRows
	}
	return row, nil
}

type stubBudgetApprovals struct {
	rows map[string]*store.BudgetApproval
}

func newStubBudgetApprovals() *stubBudgetApprovals {
	return &stubBudgetApprovals{rows: map[string]*store.BudgetApproval{}}
}

func (s *stubBudgetApprovals) CreateBudgetApproval(_ context.Context, _ store.Execer, input store.BudgetApprovalInput) error {
	s.rows[input.ID] = &store.BudgetApproval{
		ID:              input.ID,
		ActivityID:      input.ActivityID,
		ActivityName:    input.ActivityName,
		RequestedAmount: input.RequestedAmount,
		Status:          "pending",
		RequestedBy:     input.RequestedBy,
	}
	return nil
}

func (s *stubBudgetApprovals) GetBudgetApprovalForUpdate(_ context.Context, _ store.Getter, id string) (store.BudgetApproval, error) {
	row, ok := s.rows[id]
	if !ok {
		return store.BudgetApproval{}, sql.ErrNoRows
	}
	return *row, nil
}

func (s *stubBudgetApprovals) DecideBudgetPending(_ context.Context, _ store.Execer, id, status, approvedBy, comments string) (int64, error) {
	row, ok := s.rows[id]
	if !ok || row.Status != "pending" {
		return 0, nil
	}
	row.Status = status
	row.ApprovedBy = &approvedBy
	row.ResponseComments = &comments
	return 1, nil
}

type stubPayments struct {
	rows map[string]*store.Payment
}

func newStubPayments() *stubPayments {
	return &stubPayments{rows: map[string]*store.Payment{}}
}

func (s *stubPayments) Create(_ context.Context, input store.PaymentInput) error {
	s.rows[input.ID] = &store.Payment{
		ID:            input.ID,
		EmployeeID:    input.EmployeeID,
		Amount:        input.Amount,
		PaymentPeriod: input.PaymentPeriod,
		Status:        "pending",
	}
	return nil
}

func (s *stubPayments) Get(_ context.Context, id string) (store.Payment, error) {
	row, ok := s.rows[id]
	if !ok {
		return store.Payment{}, sql.ErrNoRows
	}
	return *row, nil
}

func (s *stubPayments) DecidePending(_ context.Context, _ store.Execer, id, status, processedBy, remarks string) (int64, error) {
	row, ok := s.rows[id]
	if !ok || row.Status != "pending" {
		return 0, nil
	}
	row.Status = status
	row.ProcessedBy = &processedBy
	row.Remarks = &remarks
	return 1, nil
}

type stubEmployees struct {
	ids map[string]bool
}

func (s *stubEmployees) Exists(_ context.Context, id string) (bool, error) {
	return s.ids[id], nil
}

type stubSavings struct {
	goal         store.SavingsGoal
	hasGoal      bool
	transactions []store.SavingsTransaction
}

func (s *stubSavings) GetGoal(_ context.Context) (store.SavingsGoal, error) {
	if !s.hasGoal {
		return store.SavingsGoal{}, sql.ErrNoRows
	}
	return s.goal, nil
}

func (s *stubSavings) AdjustGoalAmount(_ context.Context, _ store.Getter, delta int64) (int64, error) {
	if !s.hasGoal {
		return 0, sql.ErrNoRows
	}
	s.goal.CurrentAmount += delta
	return s.goal.CurrentAmount, nil
}

func (s *stubSavings) InsertTransaction(_ context.Context, _ store.Execer, amount int64, txType string, date time.Time, description *string) error {
	s.transactions = append(s.transactions, store.SavingsTransaction{
		ID:          int64(len(s.transactions) + 1),
		Amount:      amount,
		Type:        txType,
		Date:        date,
		Description: description,
	})
	return nil
}

func (s *stubSavings) ListTransactions(_ context.Context) ([]store.SavingsTransaction, error) {
	return s.transactions, nil
}

type stubAbstinence struct {
	tracker    store.AbstinenceTracker
	hasTracker bool
	checkins   map[string]store.AbstinenceCheckIn
}

func newStubAbstinence(tracker store.AbstinenceTracker) *stubAbstinence {
	return &stubAbstinence{
		tracker:    tracker,
		hasTracker: true,
		checkins:   map[string]store.AbstinenceCheckIn{},
	}
}

func dateKey(date time.Time) string {
	return date.Format("2006-01-02")
}

func (s *stubAbstinence) GetTracker(_ context.Context) (store.AbstinenceTracker, error) {
	if !s.hasTracker {
		return store.AbstinenceTracker{}, sql.ErrNoRows
	}
	return s.tracker, nil
}

func (s *stubAbstinence) GetTrackerForUpdate(ctx context.Context, _ store.Getter) (store.AbstinenceTracker, error) {
	return s.GetTracker(ctx)
}

func (s *stubAbstinence) GetCheckInByDate(_ context.Context, _ store.Getter, date time.Time) (store.AbstinenceCheckIn, error) {
	row, ok := s.checkins[dateKey(date)]
	if !ok {
		return store.AbstinenceCheckIn{}, sql.ErrNoRows
	}
	return row, nil
}

func (s *stubAbstinence) InsertCheckIn(_ context.Context, _ store.Execer, date time.Time, success bool, notes *string) error {
	s.checkins[dateKey(date)] = store.AbstinenceCheckIn{
		ID:      int64(len(s.checkins) + 1),
		Date:    date,
		Success: success,
		Notes:   notes,
	}
	return nil
}

func (s *stubAbstinence) UpdateTracker(_ context.Context, _ store.Execer, currentStreak, longestStreak int) error {
	s.tracker.CurrentStreak = currentStreak
	s.tracker.LongestStreak = longestStreak
	s.tracker.TotalDays++
	return nil
}

func (s *stubAbstinence) ListCheckIns(_ context.Context) ([]store.AbstinenceCheckIn, error) {
	rows := make([]store.AbstinenceCheckIn, 0, len(s.checkins))
	for _, row := range s.checkins {
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *stubAbstinence) CountSuccessfulCheckIns(_ context.Context) (int, error) {
	count := 0
	for _, row := range s.checkins {
		if row.Success {
			count++
		}
	}
	return count, nil
}
