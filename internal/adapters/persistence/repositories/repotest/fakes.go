// Package repotest provides in-memory repository fakes for service and route tests.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/curlykit/PTLab2/internal/adapters/persistence/models"
	"github.com/curlykit/PTLab2/internal/adapters/persistence/repositories"
	"github.com/curlykit/PTLab2/internal/core/domain"

	"gorm.io/gorm"
)

// Store holds the rows shared by the fakes, so payments can see employees
type Store struct {
	mu        sync.Mutex
	employees map[uint]*models.Employee
	payments  []*models.Payment
	users     map[uint]*models.User
	snapshots []*models.SalarySnapshot
	nextID    uint
	now       func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		employees: make(map[uint]*models.Employee),
		users:     make(map[uint]*models.User),
		now:       time.Now,
	}
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

// AddEmployee inserts an employee with defaults applied and returns it
func (s *Store) AddEmployee(name string, salary float64, years uint) *models.Employee {
	e := &models.Employee{Name: name, BaseSalary: salary, YearsOfService: years}
	_ = s.Employees().Create(context.Background(), e)
	return e
}

// PaymentCount returns how many payments are stored
func (s *Store) PaymentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payments)
}

// Employees returns an EmployeeRepository backed by the store
func (s *Store) Employees() repositories.EmployeeRepository { return employeeRepo{s} }

// Payments returns a PaymentRepository backed by the store
func (s *Store) Payments() repositories.PaymentRepository { return paymentRepo{s} }

// Users returns a UserRepository backed by the store
func (s *Store) Users() repositories.UserRepository { return userRepo{s} }

// Snapshots returns a SnapshotRepository backed by the store
func (s *Store) Snapshots() repositories.SnapshotRepository { return snapshotRepo{s} }

// ------------------------------------------------------------
// employees
// ------------------------------------------------------------

type employeeRepo struct{ s *Store }

func (r employeeRepo) Create(_ context.Context, e *models.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e.ApplyDefaults()
	e.ID = r.s.id()
	e.CreatedAt = r.s.now()
	e.UpdatedAt = e.CreatedAt
	cp := *e
	r.s.employees[e.ID] = &cp
	return nil
}

func (r employeeRepo) GetByID(_ context.Context, id uint) (*models.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.employees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (r employeeRepo) Update(_ context.Context, e *models.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.employees[e.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	e.ApplyDefaults()
	e.UpdatedAt = r.s.now()
	cp := *e
	r.s.employees[e.ID] = &cp
	return nil
}

func (r employeeRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.employees[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.employees, id)

	kept := r.s.payments[:0]
	for _, p := range r.s.payments {
		if p.EmployeeID != id {
			kept = append(kept, p)
		}
	}
	r.s.payments = kept
	return nil
}

func (r employeeRepo) List(_ context.Context, f repositories.EmployeeFilter, offset, limit int) ([]*models.Employee, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(f.Query))
	var matched []*models.Employee
	for _, e := range r.s.sortedEmployees() {
		if q != "" && !strings.Contains(strings.ToLower(e.Name), q) && !strings.Contains(strings.ToLower(e.PositionName()), q) {
			continue
		}
		if f.EmployeeType != "" && string(e.Type()) != f.EmployeeType {
			continue
		}
		matched = append(matched, e)
	}
	return page(matched, offset, limit), int64(len(matched)), nil
}

func (r employeeRepo) All(_ context.Context) ([]*models.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.sortedEmployees(), nil
}

func (r employeeRepo) SetType(_ context.Context, ids []uint, employeeType string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, id := range ids {
		if e, ok := r.s.employees[id]; ok {
			t := employeeType
			e.EmployeeType = &t
			n++
		}
	}
	return n, nil
}

// sortedEmployees returns copies ordered by name, caller holds the lock
func (s *Store) sortedEmployees() []*models.Employee {
	out := make([]*models.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// ------------------------------------------------------------
// payments
// ------------------------------------------------------------

type paymentRepo struct{ s *Store }

func (r paymentRepo) Record(_ context.Context, p *models.Payment, bumpTenure bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.employees[p.EmployeeID]
	if !ok {
		return domain.ErrInvalidReference
	}
	if p.PaymentType == "" {
		p.PaymentType = string(domain.PaymentTypeSalary)
	}
	p.ID = r.s.id()
	p.PaidAt = r.s.now()
	if bumpTenure {
		e.YearsOfService++
	}
	cp := *p
	cp.Employee = models.Employee{}
	r.s.payments = append(r.s.payments, &cp)
	return nil
}

func (r paymentRepo) GetByID(_ context.Context, id uint) (*models.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.payments {
		if p.ID == id {
			return r.s.withEmployee(p), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r paymentRepo) List(_ context.Context, f repositories.PaymentFilter, offset, limit int) ([]*models.Payment, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	matched := r.s.filterPayments(f)
	return page(matched, offset, limit), int64(len(matched)), nil
}

func (r paymentRepo) All(_ context.Context, f repositories.PaymentFilter) ([]*models.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.filterPayments(f), nil
}

func (r paymentRepo) BonusAmounts(_ context.Context) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	amounts := make([]string, 0, len(r.s.payments))
	for _, p := range r.s.payments {
		amounts = append(amounts, p.BonusAmount)
	}
	return amounts, nil
}

// filterPayments returns newest first, caller holds the lock
func (s *Store) filterPayments(f repositories.PaymentFilter) []*models.Payment {
	var out []*models.Payment
	for i := len(s.payments) - 1; i >= 0; i-- {
		p := s.payments[i]
		if f.PaymentType != "" && p.PaymentType != f.PaymentType {
			continue
		}
		if f.EmployeeID != 0 && p.EmployeeID != f.EmployeeID {
			continue
		}
		out = append(out, s.withEmployee(p))
	}
	return out
}

func (s *Store) withEmployee(p *models.Payment) *models.Payment {
	cp := *p
	if e, ok := s.employees[p.EmployeeID]; ok {
		cp.Employee = *e
	}
	return &cp
}

// ------------------------------------------------------------
// users
// ------------------------------------------------------------

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Username == u.Username {
			return domain.ErrDuplicateEntry
		}
	}
	u.ID = r.s.id()
	u.CreatedAt = r.s.now()
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r userRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok || u.DeletedAt.Valid {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

// GetByUsername includes soft deleted accounts, like the gorm lookup
func (r userRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r userRepo) Update(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r userRepo) CountByRole(_ context.Context, role string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, u := range r.s.users {
		if u.Role == role && u.IsActive && !u.DeletedAt.Valid {
			n++
		}
	}
	return n, nil
}

func (r userRepo) DeleteExcept(_ context.Context, keepID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, u := range r.s.users {
		if id != keepID && !u.DeletedAt.Valid {
			u.DeletedAt = gorm.DeletedAt{Time: r.s.now(), Valid: true}
			n++
		}
	}
	return n, nil
}

// ------------------------------------------------------------
// snapshots
// ------------------------------------------------------------

type snapshotRepo struct{ s *Store }

func (r snapshotRepo) Create(_ context.Context, snap *models.SalarySnapshot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap.ID = r.s.id()
	cp := *snap
	r.s.snapshots = append(r.s.snapshots, &cp)
	return nil
}

func (r snapshotRepo) List(_ context.Context, limit int) ([]*models.SalarySnapshot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.SalarySnapshot
	for i := len(r.s.snapshots) - 1; i >= 0 && len(out) < limit; i-- {
		cp := *r.s.snapshots[i]
		out = append(out, &cp)
	}
	return out, nil
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
