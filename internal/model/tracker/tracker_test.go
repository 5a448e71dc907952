package tracker

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/model/storage"
)

type staticConfig string

func (c staticConfig) DefaultCurrency() string { return string(c) }

type kvMock struct {
	mock.Mock
}

func (m *kvMock) Load(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *kvMock) Save(ctx context.Context, key, value string) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *kvMock) Remove(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func newTestStore(t *testing.T, kv kvStorage) *Store {
	t.Helper()
	s, err := New(context.Background(), kv, staticConfig("usd"))
	require.NoError(t, err)

	seq := 0
	s.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	return s
}

func Test_OnNew_ShouldStartEmpty(t *testing.T) {
	s := newTestStore(t, storage.NewInMemStorage())
	state := s.Snapshot()

	assert.Empty(t, state.Expenses)
	assert.NotNil(t, state.Expenses)
	assert.Equal(t, "", state.Settings.Budget)
	assert.Equal(t, "", state.Settings.Income)
	assert.Equal(t, "USD", state.Settings.Currency)
	assert.False(t, state.Settings.DarkMode)
}

func Test_OnNew_ShouldLoadPersistedState(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewInMemStorage()
	require.NoError(t, kv.Save(ctx, ExpensesKey, `[{"id":"a","description":"Coffee","amount":3.5,"category":"Food"}]`))
	require.NoError(t, kv.Save(ctx, BudgetKey, "100"))
	require.NoError(t, kv.Save(ctx, IncomeKey, "2000"))
	require.NoError(t, kv.Save(ctx, DarkModeKey, "true"))

	state := newTestStore(t, kv).Snapshot()

	require.Len(t, state.Expenses, 1)
	assert.Equal(t, "a", state.Expenses[0].ID)
	assert.True(t, decimal.RequireFromString("3.5").Equal(state.Expenses[0].Amount))
	assert.Equal(t, "100", state.Settings.Budget)
	assert.Equal(t, "2000", state.Settings.Income)
	assert.True(t, state.Settings.DarkMode)
}

func Test_OnNew_ShouldFailOnCorruptExpenses(t *testing.T) {
	kv := storage.NewInMemStorage()
	require.NoError(t, kv.Save(context.Background(), ExpensesKey, "{not json"))

	_, err := New(context.Background(), kv, staticConfig("USD"))
	assert.Error(t, err)
}

func Test_OnAddExpense_ShouldAppendAndPersist(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewInMemStorage()
	s := newTestStore(t, kv)

	rec, ok, err := s.AddExpense(ctx, "Coffee", "3.50", "food")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "id-1", rec.ID)
	assert.Equal(t, expense.Food, rec.Category)

	_, ok, err = s.AddExpense(ctx, "Bus", "2.00", "Transport")
	require.NoError(t, err)
	require.True(t, ok)

	state := s.Snapshot()
	require.Len(t, state.Expenses, 2)
	assert.Equal(t, "Coffee", state.Expenses[0].Description)
	assert.Equal(t, "Bus", state.Expenses[1].Description)

	raw, ok, err := kv.Load(ctx, ExpensesKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[
		{"id":"id-1","description":"Coffee","amount":3.5,"category":"Food"},
		{"id":"id-2","description":"Bus","amount":2,"category":"Transport"}
	]`, raw)
}

func Test_OnInvalidAddExpense_ShouldIgnore(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewInMemStorage())

	cases := []struct {
		desc, amount, category string
	}{
		{"", "10", "Food"},
		{"   ", "10", "Food"},
		{"desc", "", "Food"},
		{"desc", "abc", "Food"},
		{"desc", "0", "Food"},
		{"desc", "-5", "Food"},
		{"desc", "10", "Groceries"},
	}
	for _, tc := range cases {
		_, ok, err := s.AddExpense(ctx, tc.desc, tc.amount, tc.category)
		assert.NoError(t, err)
		assert.False(t, ok, tc)
	}
	assert.Empty(t, s.Snapshot().Expenses)
}

func Test_OnDeleteExpense_ShouldRemoveOnlyMatching(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewInMemStorage()
	s := newTestStore(t, kv)

	_, _, _ = s.AddExpense(ctx, "Coffee", "3.50", "Food")
	_, _, _ = s.AddExpense(ctx, "Bus", "2", "Transport")

	ok, err := s.DeleteExpense(ctx, "id-1")
	require.NoError(t, err)
	assert.True(t, ok)

	state := s.Snapshot()
	require.Len(t, state.Expenses, 1)
	assert.Equal(t, "id-2", state.Expenses[0].ID)

	raw, _, _ := kv.Load(ctx, ExpensesKey)
	assert.JSONEq(t, `[{"id":"id-2","description":"Bus","amount":2,"category":"Transport"}]`, raw)
}

func Test_OnDeleteMissingExpense_ShouldLeaveListUnchanged(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewInMemStorage())
	_, _, _ = s.AddExpense(ctx, "Coffee", "3.50", "Food")
	before := s.Snapshot()

	ok, err := s.DeleteExpense(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, before, s.Snapshot())
}

func Test_OnSettings_ShouldPersistRawText(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewInMemStorage()
	s := newTestStore(t, kv)

	require.NoError(t, s.SetBudget(ctx, "500"))
	require.NoError(t, s.SetIncome(ctx, "not a number"))
	s.SetCurrency(ctx, " eur ")

	state := s.Snapshot()
	assert.Equal(t, "500", state.Settings.Budget)
	assert.Equal(t, "not a number", state.Settings.Income)
	assert.Equal(t, "EUR", state.Settings.Currency)

	v, _, _ := kv.Load(ctx, BudgetKey)
	assert.Equal(t, "500", v)
	v, _, _ = kv.Load(ctx, IncomeKey)
	assert.Equal(t, "not a number", v)
}

func Test_OnToggleDarkMode_ShouldFlipAndPersist(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewInMemStorage()
	s := newTestStore(t, kv)

	dark, err := s.ToggleDarkMode(ctx)
	require.NoError(t, err)
	assert.True(t, dark)
	v, _, _ := kv.Load(ctx, DarkModeKey)
	assert.Equal(t, "true", v)

	dark, err = s.ToggleDarkMode(ctx)
	require.NoError(t, err)
	assert.False(t, dark)
	v, _, _ = kv.Load(ctx, DarkModeKey)
	assert.Equal(t, "false", v)
}

func Test_OnClearAll_ShouldRemoveKeys(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewInMemStorage()
	s := newTestStore(t, kv)

	_, _, _ = s.AddExpense(ctx, "Coffee", "3.50", "Food")
	require.NoError(t, s.SetBudget(ctx, "500"))
	require.NoError(t, s.SetIncome(ctx, "1000"))
	_, _ = s.ToggleDarkMode(ctx)

	require.NoError(t, s.ClearAll(ctx))

	state := s.Snapshot()
	assert.Empty(t, state.Expenses)
	assert.Equal(t, "", state.Settings.Budget)
	assert.Equal(t, "", state.Settings.Income)
	assert.True(t, state.Settings.DarkMode)

	for _, key := range []string{ExpensesKey, BudgetKey, IncomeKey} {
		_, ok, err := kv.Load(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, key)
	}
	v, ok, _ := kv.Load(ctx, DarkModeKey)
	assert.True(t, ok)
	assert.Equal(t, "true", v)
}

func Test_OnMutations_ShouldNotifyListeners(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewInMemStorage())

	var kinds []EventKind
	s.Subscribe(func(_ context.Context, ev Event) {
		assert.False(t, ev.At.IsZero())
		kinds = append(kinds, ev.Kind)
	})

	_, _, _ = s.AddExpense(ctx, "Coffee", "3.50", "Food")
	_, _, _ = s.AddExpense(ctx, "", "3.50", "Food")
	_, _ = s.DeleteExpense(ctx, "id-1")
	_, _ = s.DeleteExpense(ctx, "id-1")
	_ = s.SetBudget(ctx, "1")
	_ = s.SetIncome(ctx, "2")
	s.SetCurrency(ctx, "EUR")
	_, _ = s.ToggleDarkMode(ctx)
	_ = s.ClearAll(ctx)

	assert.Equal(t, []EventKind{
		ExpenseAdded, ExpenseDeleted, BudgetSet, IncomeSet, CurrencySet, DarkModeToggled, Cleared,
	}, kinds)
}

func Test_OnStorageFailure_ShouldKeepMemoryUnchanged(t *testing.T) {
	ctx := context.Background()
	kv := &kvMock{}
	kv.On("Load", mock.Anything, mock.Anything).Return("", false, nil)
	kv.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))
	kv.On("Remove", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	s := newTestStore(t, kv)

	notified := false
	s.Subscribe(func(context.Context, Event) { notified = true })

	_, ok, err := s.AddExpense(ctx, "Coffee", "3.50", "Food")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, s.SetBudget(ctx, "10"))
	assert.Error(t, s.SetIncome(ctx, "10"))
	dark, err := s.ToggleDarkMode(ctx)
	assert.Error(t, err)
	assert.False(t, dark)
	assert.Error(t, s.ClearAll(ctx))

	state := s.Snapshot()
	assert.Empty(t, state.Expenses)
	assert.Equal(t, "", state.Settings.Budget)
	assert.False(t, state.Settings.DarkMode)
	assert.False(t, notified)
	kv.AssertExpectations(t)
}

func Test_Snapshot_ShouldBeACopy(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewInMemStorage())
	_, _, _ = s.AddExpense(ctx, "Coffee", "3.50", "Food")

	state := s.Snapshot()
	state.Expenses[0].Description = "changed"

	assert.Equal(t, "Coffee", s.Snapshot().Expenses[0].Description)
}
