package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/curlykit/PTLab2/internal/adapters/persistence/repositories"
	"github.com/curlykit/PTLab2/internal/adapters/persistence/repositories/repotest"
	"github.com/curlykit/PTLab2/internal/config"
	"github.com/curlykit/PTLab2/internal/core/domain"
	"github.com/curlykit/PTLab2/internal/core/payroll"
	"github.com/curlykit/PTLab2/internal/pkg/logger"
	"github.com/curlykit/PTLab2/internal/pkg/pagination"
	"github.com/curlykit/PTLab2/internal/pkg/password"

	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
)

func newPayroll(store *repotest.Store) *PayrollService {
	return NewPayrollService(store.Employees(), store.Payments(), logger.Nop())
}

func TestProcessPaymentRecordsAndBumpsTenure(t *testing.T) {
	store := repotest.NewStore()
	anna := store.AddEmployee("Anna", 40000, 1)
	svc := newPayroll(store)

	result, err := svc.ProcessPayment(context.Background(), anna.ID, PaymentInput{
		Bonus:       "8000",
		Deductions:  "5200",
		Description: "March salary",
	})
	if err != nil {
		t.Fatalf("process payment: %v", err)
	}

	if result.FinalPay != 42800 {
		t.Fatalf("expected final pay 42800, got %v", result.FinalPay)
	}
	if result.YearsOfService != 2 {
		t.Fatalf("expected years of service 2, got %d", result.YearsOfService)
	}
	if store.PaymentCount() != 1 {
		t.Fatalf("expected one payment, got %d", store.PaymentCount())
	}

	stored, _ := store.Payments().GetByID(context.Background(), result.Payment.ID)
	if stored.Description != "March salary" || stored.BonusAmount != "8000" {
		t.Fatalf("unexpected stored payment: %+v", stored)
	}
	if stored.PaymentType != string(domain.PaymentTypeSalary) {
		t.Fatalf("expected default payment type SALARY, got %s", stored.PaymentType)
	}
}

func TestProcessPaymentHugeBonusFitsColumn(t *testing.T) {
	store := repotest.NewStore()
	anna := store.AddEmployee("Anna", 40000, 1)
	svc := newPayroll(store)

	result, err := svc.ProcessPayment(context.Background(), anna.ID, PaymentInput{Bonus: "1e300"})
	if err != nil {
		t.Fatalf("process payment: %v", err)
	}

	stored, _ := store.Payments().GetByID(context.Background(), result.Payment.ID)
	if len(stored.BonusAmount) > 200 {
		t.Fatalf("bonus text is %d chars long", len(stored.BonusAmount))
	}
	if payroll.ParseBonus(stored.BonusAmount) != 1e300 {
		t.Fatalf("bonus %q does not read back as 1e300", stored.BonusAmount)
	}
}

func TestProcessPaymentRejectsNonNumeric(t *testing.T) {
	store := repotest.NewStore()
	anna := store.AddEmployee("Anna", 40000, 1)
	svc := newPayroll(store)

	for _, input := range []PaymentInput{
		{Bonus: "not a number", Deductions: "0"},
		{Bonus: "100", Deductions: "ten"},
	} {
		if _, err := svc.ProcessPayment(context.Background(), anna.ID, input); !errors.Is(err, ErrNonNumericAmount) {
			t.Fatalf("expected ErrNonNumericAmount, got %v", err)
		}
	}

	if store.PaymentCount() != 0 {
		t.Fatalf("expected no payment rows, got %d", store.PaymentCount())
	}
	employee, _ := store.Employees().GetByID(context.Background(), anna.ID)
	if employee.YearsOfService != 1 {
		t.Fatalf("expected tenure untouched, got %d", employee.YearsOfService)
	}
}

func TestProcessPaymentUnknownEmployee(t *testing.T) {
	svc := newPayroll(repotest.NewStore())
	if _, err := svc.ProcessPayment(context.Background(), 99, PaymentInput{Bonus: "1"}); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestProcessPaymentRejectsUnknownType(t *testing.T) {
	store := repotest.NewStore()
	anna := store.AddEmployee("Anna", 40000, 1)

	_, err := newPayroll(store).ProcessPayment(context.Background(), anna.ID, PaymentInput{PaymentType: "LOTTERY"})
	if !errors.Is(err, ErrInvalidPaymentType) {
		t.Fatalf("expected ErrInvalidPaymentType, got %v", err)
	}
	if store.PaymentCount() != 0 {
		t.Fatal("expected no payment rows")
	}
}

func TestOverview(t *testing.T) {
	store := repotest.NewStore()
	svc := newPayroll(store)

	empty, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if empty.Summary != nil {
		t.Fatalf("expected nil summary without employees, got %+v", empty.Summary)
	}

	store.AddEmployee("Anna", 40000, 1)
	store.AddEmployee("Boris", 120000, 7)

	full, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	stats := full.Summary.Salaries
	if stats.Sum != 160000 || stats.Mean != 80000 || stats.Median != 80000 || stats.Max != 120000 || stats.Min != 40000 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if len(full.Employees) != 2 || full.Employees[0].Name != "Anna" {
		t.Fatalf("unexpected employees: %+v", full.Employees)
	}
}

func TestAnalyticsReport(t *testing.T) {
	store := repotest.NewStore()
	analytics := NewAnalyticsService(store.Employees(), store.Payments())

	report, err := analytics.Report(context.Background())
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.HasData() || report.Bonuses != nil {
		t.Fatalf("expected empty report, got %+v", report)
	}

	anna := store.AddEmployee("Anna", 40000, 1)
	store.AddEmployee("Boris", 120000, 7)
	payrollSvc := newPayroll(store)
	if _, err := payrollSvc.ProcessPayment(context.Background(), anna.ID, PaymentInput{Bonus: "3000"}); err != nil {
		t.Fatalf("pay: %v", err)
	}
	if _, err := payrollSvc.ProcessPayment(context.Background(), anna.ID, PaymentInput{Bonus: "15000"}); err != nil {
		t.Fatalf("pay: %v", err)
	}

	report, err = analytics.Report(context.Background())
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !report.HasData() || report.Summary.Salaries.Count != 2 {
		t.Fatalf("expected data for two employees, got %+v", report.Summary)
	}
	if report.Bonuses == nil || report.Bonuses.Sum != 18000 || report.Bonuses.Max != 15000 {
		t.Fatalf("unexpected bonus stats: %+v", report.Bonuses)
	}
	if len(report.ByPosition) != 1 || report.ByPosition[0].Count != 2 {
		t.Fatalf("expected one default position group, got %+v", report.ByPosition)
	}
}

func TestEmployeeServiceCRUD(t *testing.T) {
	store := repotest.NewStore()
	svc := NewEmployeeService(store.Employees(), logger.Nop())
	ctx := context.Background()

	name, salary, years := "Anna", 40000.0, uint(3)
	created, err := svc.Create(ctx, EmployeeInput{Name: &name, BaseSalary: &salary, YearsOfService: &years})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Position != "Specialist" || created.EmployeeType != "MIDDLE" {
		t.Fatalf("expected defaults applied, got %+v", created)
	}

	lead := "lead"
	updated, err := svc.Update(ctx, created.ID, EmployeeInput{EmployeeType: &lead})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.EmployeeType != "LEAD" || updated.TypeLabel != "Team Lead" {
		t.Fatalf("unexpected type after update: %+v", updated)
	}

	bogus := "wizard"
	if _, err := svc.Update(ctx, created.ID, EmployeeInput{EmployeeType: &bogus}); !errors.Is(err, ErrInvalidEmployeeType) {
		t.Fatalf("expected ErrInvalidEmployeeType, got %v", err)
	}

	if _, err := svc.Create(ctx, EmployeeInput{BaseSalary: &salary}); !errors.Is(err, ErrInvalidEmployee) {
		t.Fatalf("expected ErrInvalidEmployee for missing name, got %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound after delete, got %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound on second delete, got %v", err)
	}
}

func TestEmployeeListFilters(t *testing.T) {
	store := repotest.NewStore()
	store.AddEmployee("Anna", 40000, 1)
	store.AddEmployee("Boris", 120000, 7)
	store.AddEmployee("Vera", 90000, 3)
	svc := NewEmployeeService(store.Employees(), logger.Nop())

	page, err := svc.List(context.Background(), repositories.EmployeeFilter{EmployeeType: "senior"}, pagination.New(1, 20))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Meta.Total != 1 || page.Items[0].Name != "Boris" {
		t.Fatalf("unexpected filtered page: %+v", page)
	}

	page, _ = svc.List(context.Background(), repositories.EmployeeFilter{Query: "ver"}, pagination.New(1, 20))
	if page.Meta.Total != 1 || page.Items[0].Name != "Vera" {
		t.Fatalf("unexpected search page: %+v", page)
	}

	if _, err := svc.List(context.Background(), repositories.EmployeeFilter{EmployeeType: "nope"}, pagination.New(1, 20)); !errors.Is(err, ErrInvalidEmployeeType) {
		t.Fatalf("expected ErrInvalidEmployeeType, got %v", err)
	}
}

func TestBulkSetType(t *testing.T) {
	store := repotest.NewStore()
	a := store.AddEmployee("Anna", 40000, 1)
	b := store.AddEmployee("Boris", 120000, 7)
	svc := NewEmployeeService(store.Employees(), logger.Nop())

	n, err := svc.BulkSetType(context.Background(), BulkTypeInput{IDs: []uint{a.ID, b.ID, 999}, EmployeeType: "MANAGER"})
	if err != nil {
		t.Fatalf("bulk: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 updated, got %d", n)
	}
	got, _ := svc.Get(context.Background(), a.ID)
	if got.EmployeeType != "MANAGER" {
		t.Fatalf("expected MANAGER, got %s", got.EmployeeType)
	}
}

func TestPaymentServiceCreateDoesNotBumpTenure(t *testing.T) {
	store := repotest.NewStore()
	anna := store.AddEmployee("Anna", 40000, 1)
	svc := NewPaymentService(store.Payments(), store.Employees(), logger.Nop())

	resp, err := svc.Create(context.Background(), CreatePaymentInput{EmployeeID: anna.ID, BonusAmount: "5000", PaymentType: "bonus"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.PaymentType != "BONUS" || resp.FinalSalary != 45000 {
		t.Fatalf("unexpected payment: %+v", resp)
	}

	employee, _ := store.Employees().GetByID(context.Background(), anna.ID)
	if employee.YearsOfService != 1 {
		t.Fatalf("expected tenure untouched, got %d", employee.YearsOfService)
	}

	if _, err := svc.Create(context.Background(), CreatePaymentInput{EmployeeID: anna.ID, BonusAmount: "abc"}); !errors.Is(err, ErrNonNumericAmount) {
		t.Fatalf("expected ErrNonNumericAmount, got %v", err)
	}
}

func TestPaymentListFilterAndOrder(t *testing.T) {
	store := repotest.NewStore()
	anna := store.AddEmployee("Anna", 40000, 1)
	boris := store.AddEmployee("Boris", 60000, 2)
	svc := NewPaymentService(store.Payments(), store.Employees(), logger.Nop())
	ctx := context.Background()

	first, _ := svc.Create(ctx, CreatePaymentInput{EmployeeID: anna.ID, BonusAmount: "1"})
	_, _ = svc.Create(ctx, CreatePaymentInput{EmployeeID: boris.ID, BonusAmount: "2", PaymentType: "ADVANCE"})
	last, _ := svc.Create(ctx, CreatePaymentInput{EmployeeID: anna.ID, BonusAmount: "3"})

	filter, err := svc.ListFilter("", anna.ID)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	page, err := svc.List(ctx, filter, pagination.New(1, 20))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Meta.Total != 2 || page.Items[0].ID != last.ID || page.Items[1].ID != first.ID {
		t.Fatalf("expected newest first for Anna, got %+v", page.Items)
	}

	filter, _ = svc.ListFilter("advance", 0)
	page, _ = svc.List(ctx, filter, pagination.New(1, 20))
	if page.Meta.Total != 1 || page.Items[0].EmployeeName != "Boris" {
		t.Fatalf("unexpected type filter result: %+v", page.Items)
	}

	if _, err := svc.ListFilter("lottery", 0); !errors.Is(err, ErrInvalidPaymentType) {
		t.Fatalf("expected ErrInvalidPaymentType, got %v", err)
	}
}

func TestExportCSV(t *testing.T) {
	store := repotest.NewStore()
	anna := store.AddEmployee("Anna", 40000, 1)
	svc := NewPaymentService(store.Payments(), store.Employees(), logger.Nop())
	_, _ = svc.Create(context.Background(), CreatePaymentInput{EmployeeID: anna.ID, BonusAmount: "8000", Description: "March"})

	export, err := svc.Export(context.Background(), repositories.PaymentFilter{}, "csv")
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(export.Body)).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header and one row, got %d", len(records))
	}
	row := records[1]
	if row[0] != "Anna" || row[1] != "Salary" || row[2] != "8000.00" || row[3] != "48000.00" || row[5] != "March" {
		t.Fatalf("unexpected row: %v", row)
	}
}

func TestExportXLSX(t *testing.T) {
	store := repotest.NewStore()
	anna := store.AddEmployee("Anna", 40000, 1)
	svc := NewPaymentService(store.Payments(), store.Employees(), logger.Nop())
	_, _ = svc.Create(context.Background(), CreatePaymentInput{EmployeeID: anna.ID, BonusAmount: "500"})

	export, err := svc.Export(context.Background(), repositories.PaymentFilter{}, "xlsx")
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(export.Body))
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 2 || rows[0][0] != "Employee" || rows[1][0] != "Anna" || rows[1][3] != "40500.00" {
		t.Fatalf("unexpected sheet: %v", rows)
	}

	if _, err := svc.Export(context.Background(), repositories.PaymentFilter{}, "pdf"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT:     config.JWTConfig{Secret: "test-secret", AccessTokenMins: 5},
		Admin:   config.AdminConfig{Username: "admin", Password: "admin-pass-1"},
	}
}

func TestEnsureAdminAndLogin(t *testing.T) {
	password.Cost = bcrypt.MinCost
	store := repotest.NewStore()
	auth := NewAuthService(store.Users(), testConfig(), logger.Nop())
	ctx := context.Background()

	created, err := auth.EnsureAdmin(ctx)
	if err != nil || !created {
		t.Fatalf("expected admin to be created, got %v %v", created, err)
	}
	created, err = auth.EnsureAdmin(ctx)
	if err != nil || created {
		t.Fatalf("expected second call to be a no-op, got %v %v", created, err)
	}

	resp, err := auth.Login(ctx, &LoginInput{Username: "admin", Password: "admin-pass-1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := auth.ValidateAccessToken(resp.AccessToken)
	if err != nil || claims.Role != string(domain.RoleAdmin) {
		t.Fatalf("unexpected claims: %+v %v", claims, err)
	}

	if _, err := auth.Login(ctx, &LoginInput{Username: "admin", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := auth.Login(ctx, &LoginInput{Username: "ghost", Password: "x"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
	if _, err := auth.ValidateAccessToken("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestResetAdminWithPurge(t *testing.T) {
	password.Cost = bcrypt.MinCost
	store := repotest.NewStore()
	auth := NewAuthService(store.Users(), testConfig(), logger.Nop())
	ctx := context.Background()

	if _, err := auth.ResetAdmin(ctx, "admin", "first-pass", false); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := auth.ResetAdmin(ctx, "helper", "helper-pass", false); err != nil {
		t.Fatalf("reset helper: %v", err)
	}

	if _, err := auth.ResetAdmin(ctx, "admin", "second-pass", true); err != nil {
		t.Fatalf("reset with purge: %v", err)
	}

	if _, err := auth.Login(ctx, &LoginInput{Username: "admin", Password: "second-pass"}); err != nil {
		t.Fatalf("expected new password to work: %v", err)
	}
	if _, err := auth.Login(ctx, &LoginInput{Username: "helper", Password: "helper-pass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected purged account to be rejected, got %v", err)
	}

	if _, err := auth.ResetAdmin(ctx, "admin", "short", false); !errors.Is(err, password.ErrTooShort) {
		t.Fatalf("expected ErrTooShort, got %v", err)
	}
}

func TestResetAdminRevivesPurgedAccount(t *testing.T) {
	password.Cost = bcrypt.MinCost
	store := repotest.NewStore()
	auth := NewAuthService(store.Users(), testConfig(), logger.Nop())
	ctx := context.Background()

	helper, err := auth.ResetAdmin(ctx, "helper", "helper-pass", false)
	if err != nil {
		t.Fatalf("reset helper: %v", err)
	}
	if _, err := auth.ResetAdmin(ctx, "admin", "admin-pass", true); err != nil {
		t.Fatalf("reset with purge: %v", err)
	}

	purged, err := store.Users().GetByUsername(ctx, "helper")
	if err != nil {
		t.Fatalf("expected purged account to stay resolvable by username: %v", err)
	}
	if !purged.DeletedAt.Valid {
		t.Fatal("expected helper to be soft deleted")
	}

	revived, err := auth.ResetAdmin(ctx, "helper", "helper-pass-2", false)
	if err != nil {
		t.Fatalf("reset purged account: %v", err)
	}
	if revived.ID != helper.ID {
		t.Fatalf("expected the purged row to be reused, got id %d want %d", revived.ID, helper.ID)
	}
	if _, err := auth.Login(ctx, &LoginInput{Username: "helper", Password: "helper-pass-2"}); err != nil {
		t.Fatalf("expected revived account to log in: %v", err)
	}
	if n, _ := store.Users().CountByRole(ctx, string(domain.RoleAdmin)); n != 2 {
		t.Fatalf("expected two active admins, got %d", n)
	}
}

func TestTakeSnapshot(t *testing.T) {
	store := repotest.NewStore()
	anna := store.AddEmployee("Anna", 40000, 1)
	store.AddEmployee("Boris", 120000, 7)
	_, _ = newPayroll(store).ProcessPayment(context.Background(), anna.ID, PaymentInput{Bonus: "2500"})

	svc := NewSnapshotService(store.Employees(), store.Payments(), store.Snapshots(), logger.Nop())
	snap, err := svc.TakeSnapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.EmployeeCount != 2 || snap.TotalFund != 160000 || snap.MedianSalary != 80000 || snap.BonusTotal != 2500 || snap.PaymentCount != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	list, err := svc.List(context.Background(), 10)
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one stored snapshot, got %d (%v)", len(list), err)
	}
}

func TestSnapshotStartRejectsBadSpec(t *testing.T) {
	store := repotest.NewStore()
	svc := NewSnapshotService(store.Employees(), store.Payments(), store.Snapshots(), logger.Nop())

	if err := svc.Start("not a cron spec"); err == nil {
		t.Fatal("expected invalid cron spec to fail")
	}
	if err := svc.Start(""); err != nil {
		t.Fatalf("empty spec should disable scheduling: %v", err)
	}
	svc.Stop()

	if err := svc.Start("@every 1h"); err != nil {
		t.Fatalf("start: %v", err)
	}
	svc.Stop()
}
