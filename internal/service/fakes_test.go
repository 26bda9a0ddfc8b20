package service

import (
	"context"
	"sync"
	"time"

	"finwise/internal/models"
	"finwise/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

// fakeUserStore is an in-memory UserStore.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[uuid.UUID]*models.User)}
	for _, user := range users {
		s.users[user.ID] = user
	}
	return s
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) List(_ context.Context) ([]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.User, 0, len(s.users))
	for _, user := range s.users {
		copied := *user
		out = append(out, &copied)
	}
	return out, nil
}

func (s *fakeUserStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *fakeUserStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

// fakeGoalStore is an in-memory GoalStore with injectable failures and
// forced optimistic-write conflicts.
type fakeGoalStore struct {
	mu      sync.Mutex
	goals   map[uuid.UUID]*models.Goal
	order   []uuid.UUID
	listErr error
	saveErr map[uuid.UUID]error
	// conflicts forces AddToCurrentAmount to fail n times for a goal;
	// each forced conflict applies conflictInc as a concurrent writer.
	conflicts   map[uuid.UUID]int
	conflictInc decimal.Decimal
}

func newFakeGoalStore(goals ...*models.Goal) *fakeGoalStore {
	s := &fakeGoalStore{
		goals:     make(map[uuid.UUID]*models.Goal),
		saveErr:   make(map[uuid.UUID]error),
		conflicts: make(map[uuid.UUID]int),
	}
	for _, goal := range goals {
		s.goals[goal.ID] = goal
		s.order = append(s.order, goal.ID)
	}
	return s
}

func (s *fakeGoalStore) Create(_ context.Context, goal *models.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals[goal.ID] = goal
	s.order = append(s.order, goal.ID)
	return nil
}

func (s *fakeGoalStore) GetByID(_ context.Context, id uuid.UUID) (*models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	goal, ok := s.goals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *goal
	return &copied, nil
}

func (s *fakeGoalStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*models.Goal, error) {
	return s.list(func(g *models.Goal) bool { return g.UserID == userID })
}

func (s *fakeGoalStore) ListAutoAllocate(_ context.Context, userID uuid.UUID) ([]*models.Goal, error) {
	return s.list(func(g *models.Goal) bool { return g.UserID == userID && g.AutoAllocate })
}

func (s *fakeGoalStore) ListDeadlinePassed(_ context.Context, now time.Time) ([]*models.Goal, error) {
	return s.list(func(g *models.Goal) bool {
		return g.Deadline != nil && !g.Deadline.After(now) && !g.IsAchieved
	})
}

func (s *fakeGoalStore) list(match func(*models.Goal) bool) ([]*models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []*models.Goal
	for _, id := range s.order {
		if goal := s.goals[id]; match(goal) {
			copied := *goal
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *fakeGoalStore) Update(_ context.Context, goal *models.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.goals[goal.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *goal
	s.goals[goal.ID] = &copied
	return nil
}

func (s *fakeGoalStore) AddToCurrentAmount(_ context.Context, id uuid.UUID, expected, increment decimal.Decimal) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.saveErr[id]; err != nil {
		return false, err
	}
	goal, ok := s.goals[id]
	if !ok {
		return false, repository.ErrNotFound
	}
	if s.conflicts[id] > 0 {
		s.conflicts[id]--
		goal.CurrentAmount = goal.CurrentAmount.Add(s.conflictInc)
		return false, nil
	}
	if !goal.CurrentAmount.Equal(expected) {
		return false, nil
	}
	goal.CurrentAmount = expected.Add(increment)
	return true, nil
}

func (s *fakeGoalStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.goals[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.goals, id)
	return nil
}

func (s *fakeGoalStore) current(id uuid.UUID) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.goals[id].CurrentAmount
}

// fakeBudgetStore is an in-memory BudgetStore.
type fakeBudgetStore struct {
	mu      sync.Mutex
	budgets []*models.Budget
	findErr error
}

func newFakeBudgetStore(budgets ...*models.Budget) *fakeBudgetStore {
	return &fakeBudgetStore{budgets: budgets}
}

func (s *fakeBudgetStore) Create(_ context.Context, budget *models.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.budgets {
		if existing.UserID == budget.UserID && existing.Category == budget.Category && existing.Month == budget.Month {
			return repository.ErrDuplicate
		}
	}
	s.budgets = append(s.budgets, budget)
	return nil
}

func (s *fakeBudgetStore) GetByID(_ context.Context, id uuid.UUID) (*models.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, budget := range s.budgets {
		if budget.ID == id {
			copied := *budget
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeBudgetStore) FindByUserAndCategory(_ context.Context, userID uuid.UUID, category models.TransactionCategory) (*models.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	for _, budget := range s.budgets {
		if budget.UserID == userID && budget.Category == category {
			copied := *budget
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeBudgetStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*models.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Budget
	for _, budget := range s.budgets {
		if budget.UserID == userID {
			copied := *budget
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *fakeBudgetStore) Update(_ context.Context, budget *models.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.budgets {
		if existing.ID == budget.ID {
			copied := *budget
			s.budgets[i] = &copied
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *fakeBudgetStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.budgets {
		if existing.ID == id {
			s.budgets = append(s.budgets[:i], s.budgets[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// fakeNotificationStore is an in-memory NotificationStore.
type fakeNotificationStore struct {
	mu            sync.Mutex
	notifications []*models.Notification
}

func (s *fakeNotificationStore) Create(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *n
	s.notifications = append(s.notifications, &copied)
	return nil
}

func (s *fakeNotificationStore) GetByID(_ context.Context, id uuid.UUID) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications {
		if n.ID == id {
			copied := *n
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeNotificationStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			copied := *n
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *fakeNotificationStore) MarkRead(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications {
		if n.ID == id {
			n.IsRead = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *fakeNotificationStore) MarkAllRead(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (s *fakeNotificationStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *fakeNotificationStore) DeleteAllByUser(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.notifications[:0]
	for _, n := range s.notifications {
		if n.UserID != userID {
			kept = append(kept, n)
		}
	}
	s.notifications = kept
	return nil
}

// fakeNotifier records deliveries.
type fakeNotifier struct {
	mu    sync.Mutex
	err   error
	calls []notifyCall
}

type notifyCall struct {
	userID  uuid.UUID
	message string
	typ     string
}

func (n *fakeNotifier) Notify(_ context.Context, userID uuid.UUID, message, notificationType string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.calls = append(n.calls, notifyCall{userID: userID, message: message, typ: notificationType})
	return nil
}

func (n *fakeNotifier) callCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

// fakeTransactionStore is an in-memory TransactionStore.
type fakeTransactionStore struct {
	mu           sync.Mutex
	transactions []*models.Transaction
	createErr    error
}

func newFakeTransactionStore(transactions ...*models.Transaction) *fakeTransactionStore {
	return &fakeTransactionStore{transactions: transactions}
}

func (s *fakeTransactionStore) Create(_ context.Context, tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	copied := *tx
	s.transactions = append(s.transactions, &copied)
	return nil
}

func (s *fakeTransactionStore) GetByID(_ context.Context, id uuid.UUID) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tx := range s.transactions {
		if tx.ID == id {
			copied := *tx
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeTransactionStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*models.Transaction, error) {
	return s.list(func(tx *models.Transaction) bool { return tx.UserID == userID })
}

func (s *fakeTransactionStore) ListAll(_ context.Context) ([]*models.Transaction, error) {
	return s.list(func(*models.Transaction) bool { return true })
}

func (s *fakeTransactionStore) Filter(_ context.Context, userID uuid.UUID, filter repository.TransactionFilter) ([]*models.Transaction, error) {
	return s.list(func(tx *models.Transaction) bool {
		if tx.UserID != userID {
			return false
		}
		if filter.StartDate != nil && tx.Date.Before(*filter.StartDate) {
			return false
		}
		if filter.EndDate != nil && tx.Date.After(*filter.EndDate) {
			return false
		}
		if filter.Category != "" && tx.Category != filter.Category {
			return false
		}
		if len(filter.Tags) > 0 {
			matched := false
			for _, want := range filter.Tags {
				for _, have := range tx.Tags {
					if want == have {
						matched = true
					}
				}
			}
			if !matched {
				return false
			}
		}
		return true
	})
}

func (s *fakeTransactionStore) list(match func(*models.Transaction) bool) ([]*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Transaction
	for _, tx := range s.transactions {
		if match(tx) {
			copied := *tx
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *fakeTransactionStore) Update(_ context.Context, tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.transactions {
		if existing.ID == tx.ID {
			copied := *tx
			s.transactions[i] = &copied
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *fakeTransactionStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.transactions {
		if existing.ID == id {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *fakeTransactionStore) CountByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	txs, _ := s.ListByUser(context.Background(), userID)
	return int64(len(txs)), nil
}

func (s *fakeTransactionStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.transactions)), nil
}

func (s *fakeTransactionStore) SumByUserAndType(_ context.Context, userID uuid.UUID, txType models.TransactionType) (decimal.Decimal, error) {
	return s.sum(func(tx *models.Transaction) bool { return tx.UserID == userID && tx.Type == txType })
}

func (s *fakeTransactionStore) SumByType(_ context.Context, txType models.TransactionType) (decimal.Decimal, error) {
	return s.sum(func(tx *models.Transaction) bool { return tx.Type == txType })
}

func (s *fakeTransactionStore) sum(match func(*models.Transaction) bool) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, tx := range s.transactions {
		if match(tx) {
			total = total.Add(tx.Amount)
		}
	}
	return total, nil
}

// fakeAllocator and fakeAlerter record ingestion hook invocations.
type fakeAllocator struct {
	mu     sync.Mutex
	err    error
	calls  int
	lastID uuid.UUID
	amount decimal.Decimal
}

func (a *fakeAllocator) AllocateIncome(_ context.Context, userID uuid.UUID, amount decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls++
	a.lastID = userID
	a.amount = amount
	return a.err
}

type fakeAlerter struct {
	mu       sync.Mutex
	calls    int
	category models.TransactionCategory
	amount   decimal.Decimal
}

func (a *fakeAlerter) ExpenseRecorded(_ context.Context, _ uuid.UUID, category models.TransactionCategory, amount decimal.Decimal) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls++
	a.category = category
	a.amount = amount
}
