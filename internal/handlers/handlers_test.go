package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"backoffice/internal/config"
	"backoffice/internal/services"
	"backoffice/internal/store"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type stubDonationService struct {
	recordErr error
	deleteErr error
	lastReq   services.RecordDonationRequest
}

func (s *stubDonationService) Record(_ context.Context, req services.RecordDonationRequest) (string, error) {
	s.lastReq = req
	if s.recordErr != nil {
		return "", s.recordErr
	}
	return "don-1", nil
}

func (s *stubDonationService) Delete(_ context.Context, _ string) error {
	return s.deleteErr
}

type stubPaymentService struct {
	approveErr error
}

func (s *stubPaymentService) Request(_ context.Context, _ services.RequestPaymentRequest) (string, error) {
	return "pay-1", nil
}

func (s *stubPaymentService) Approve(_ context.Context, _ string, _ bool, _, _ string) error {
	return s.approveErr
}

type stubEmployeeStore struct {
	createErr error
}

func (s *stubEmployeeStore) Create(_ context.Context, _ store.EmployeeInput) error { return s.createErr }
func (s *stubEmployeeStore) Get(_ context.Context, _ string) (store.Employee, error) {
	return store.Employee{}, nil
}
func (s *stubEmployeeStore) List(_ context.Context) ([]store.Employee, error) { return nil, nil }
func (s *stubEmployeeStore) Update(_ context.Context, _ store.EmployeeInput) (int64, error) {
	return 1, nil
}
func (s *stubEmployeeStore) Delete(_ context.Context, _ string) (int64, error) { return 1, nil }

func newTestHandler(deps Deps) http.Handler {
	h := New(config.Config{AllowedOrigins: "*", UploadDir: "uploads"}, zap.NewNop(), deps)
	return h.Routes()
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	handler := newTestHandler(Deps{})
	rec := doJSON(t, handler, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestCreateDonation(t *testing.T) {
	svc := &stubDonationService{}
	handler := newTestHandler(Deps{Donations: svc})

	rec := doJSON(t, handler, http.MethodPost, "/donations", `{"amount":"150.00","payment_method":"cash","project":"Health"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["donation_id"] != "don-1" {
		t.Errorf("donation_id = %q", resp["donation_id"])
	}
	if svc.lastReq.AmountMinor != 15000 {
		t.Errorf("amount passed to service = %d, want 15000", svc.lastReq.AmountMinor)
	}
}

func TestCreateDonationMissingPaymentMethod(t *testing.T) {
	handler := newTestHandler(Deps{Donations: &stubDonationService{}})
	rec := doJSON(t, handler, http.MethodPost, "/donations", `{"amount":"10.00"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "validation_failed") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestCreateDonationSubCentAmount(t *testing.T) {
	handler := newTestHandler(Deps{Donations: &stubDonationService{}})
	rec := doJSON(t, handler, http.MethodPost, "/donations", `{"amount":"10.005","payment_method":"cash"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateDonationUnknownProjectMapsTo404(t *testing.T) {
	handler := newTestHandler(Deps{Donations: &stubDonationService{recordErr: services.ErrNotFound}})
	rec := doJSON(t, handler, http.MethodPost, "/donations", `{"amount":"10.00","payment_method":"cash","project":"Ghost"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestDeleteDonationInvalidState(t *testing.T) {
	handler := newTestHandler(Deps{Donations: &stubDonationService{deleteErr: services.ErrInvalidState}})
	rec := doJSON(t, handler, http.MethodDelete, "/donations/don-1", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid_state") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestDecidePaymentAlreadyDecided(t *testing.T) {
	handler := newTestHandler(Deps{Payments: &stubPaymentService{approveErr: services.ErrInvalidState}})
	rec := doJSON(t, handler, http.MethodPost, "/payments/pay-1/decision", `{"approved":true}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDecidePaymentMissing(t *testing.T) {
	handler := newTestHandler(Deps{Payments: &stubPaymentService{approveErr: services.ErrNotFound}})
	rec := doJSON(t, handler, http.MethodPost, "/payments/pay-1/decision", `{"approved":false}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestRequestPaymentBadPeriod(t *testing.T) {
	handler := newTestHandler(Deps{Payments: &stubPaymentService{}})
	rec := doJSON(t, handler, http.MethodPost, "/payments", `{"employee_id":"emp-1","amount":"100.00","payment_period":"August 2026"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateEmployeeDuplicateNationalID(t *testing.T) {
	handler := newTestHandler(Deps{Employees: &stubEmployeeStore{createErr: &pq.Error{Code: "23505"}}})
	rec := doJSON(t, handler, http.MethodPost, "/employees", `{"full_name":"Jane Doe","national_id":"A123","salary":"2500.00"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestCreateEmployee(t *testing.T) {
	handler := newTestHandler(Deps{Employees: &stubEmployeeStore{}})
	rec := doJSON(t, handler, http.MethodPost, "/employees", `{"full_name":"Jane Doe","national_id":"A123","salary":"2500.00"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}
