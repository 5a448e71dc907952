package tracker

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"max.ks1230/expense-tracker/internal/entity/currency"
	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/entity/settings"
	"max.ks1230/expense-tracker/internal/logger"
)

// Persisted keys.
const (
	ExpensesKey = "expenses"
	BudgetKey   = "budget"
	IncomeKey   = "income"
	DarkModeKey = "darkMode"
)

type kvStorage interface {
	Load(ctx context.Context, key string) (string, bool, error)
	Save(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

type config interface {
	DefaultCurrency() string
}

// Listener is called after a mutation has been persisted.
type Listener func(ctx context.Context, ev Event)

// State is a copy of the tracker contents.
type State struct {
	Expenses []expense.Record
	Settings settings.Settings
}

// Store owns the expense list and the settings and writes every change
// through to the storage before returning.
type Store struct {
	mu        sync.Mutex
	storage   kvStorage
	expenses  []expense.Record
	settings  settings.Settings
	listeners []Listener
	newID     func() string
	now       func() time.Time
}

func New(ctx context.Context, storage kvStorage, config config) (*Store, error) {
	s := &Store{
		storage:  storage,
		expenses: make([]expense.Record, 0),
		settings: settings.Settings{Currency: currency.Normalize(config.DefaultCurrency())},
		newID:    uuid.NewString,
		now:      time.Now,
	}
	if err := s.load(ctx); err != nil {
		return nil, errors.Wrap(err, "cannot load tracker state")
	}
	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	raw, ok, err := s.storage.Load(ctx, ExpensesKey)
	if err != nil {
		return err
	}
	if ok && raw != "" {
		var exps []expense.Record
		if err = json.Unmarshal([]byte(raw), &exps); err != nil {
			return errors.Wrap(err, "unmarshalling expenses")
		}
		if exps != nil {
			s.expenses = exps
		}
	}

	if s.settings.Budget, _, err = s.storage.Load(ctx, BudgetKey); err != nil {
		return err
	}
	if s.settings.Income, _, err = s.storage.Load(ctx, IncomeKey); err != nil {
		return err
	}
	dark, _, err := s.storage.Load(ctx, DarkModeKey)
	if err != nil {
		return err
	}
	s.settings.DarkMode = dark == "true"

	logger.Info("tracker state loaded", zap.Int("expenses", len(s.expenses)))
	return nil
}

// Subscribe registers l for every future mutation.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Store) snapshot() State {
	exps := make([]expense.Record, len(s.expenses))
	copy(exps, s.expenses)
	return State{Expenses: exps, Settings: s.settings}
}

// AddExpense appends a new expense. Blank descriptions, amounts that are not
// positive numbers and unknown categories are ignored: ok is false and the
// error is nil.
func (s *Store) AddExpense(ctx context.Context, description, amount, category string) (rec expense.Record, ok bool, err error) {
	defer func() { observeMutation(opAdd, ok, err) }()

	if strings.TrimSpace(description) == "" {
		return expense.Record{}, false, nil
	}
	value, valid := expense.ParseAmount(amount)
	if !valid {
		return expense.Record{}, false, nil
	}
	cat, valid := expense.NormalizeCategory(category)
	if !valid {
		return expense.Record{}, false, nil
	}

	s.mu.Lock()
	rec = expense.Record{
		ID:          s.newID(),
		Description: description,
		Amount:      value,
		Category:    cat,
	}
	next := append(s.cloneExpenses(), rec)
	if err = s.saveExpenses(ctx, next); err != nil {
		s.mu.Unlock()
		return expense.Record{}, false, errors.Wrap(err, "add expense")
	}
	s.expenses = next
	s.mu.Unlock()

	s.notify(ctx, Event{Kind: ExpenseAdded, ExpenseID: rec.ID, Value: rec.Description})
	return rec, true, nil
}

// DeleteExpense removes the expense with the given id, reporting whether
// there was one.
func (s *Store) DeleteExpense(ctx context.Context, id string) (ok bool, err error) {
	defer func() { observeMutation(opDelete, ok, err) }()

	s.mu.Lock()
	idx := -1
	for i, exp := range s.expenses {
		if exp.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false, nil
	}

	next := make([]expense.Record, 0, len(s.expenses)-1)
	next = append(next, s.expenses[:idx]...)
	next = append(next, s.expenses[idx+1:]...)
	if err = s.saveExpenses(ctx, next); err != nil {
		s.mu.Unlock()
		return false, errors.Wrap(err, "delete expense")
	}
	s.expenses = next
	s.mu.Unlock()

	s.notify(ctx, Event{Kind: ExpenseDeleted, ExpenseID: id})
	return true, nil
}

func (s *Store) SetBudget(ctx context.Context, text string) (err error) {
	defer func() { observeMutation(opBudget, true, err) }()

	s.mu.Lock()
	if err = s.save(ctx, BudgetKey, text); err != nil {
		s.mu.Unlock()
		return errors.Wrap(err, "set budget")
	}
	s.settings.Budget = text
	s.mu.Unlock()

	s.notify(ctx, Event{Kind: BudgetSet, Value: text})
	return nil
}

func (s *Store) SetIncome(ctx context.Context, text string) (err error) {
	defer func() { observeMutation(opIncome, true, err) }()

	s.mu.Lock()
	if err = s.save(ctx, IncomeKey, text); err != nil {
		s.mu.Unlock()
		return errors.Wrap(err, "set income")
	}
	s.settings.Income = text
	s.mu.Unlock()

	s.notify(ctx, Event{Kind: IncomeSet, Value: text})
	return nil
}

// SetCurrency selects the display currency. The code is not checked against
// the rate table and is not persisted.
func (s *Store) SetCurrency(ctx context.Context, code string) {
	code = currency.Normalize(code)
	observeMutation(opCurrency, true, nil)

	s.mu.Lock()
	s.settings.Currency = code
	s.mu.Unlock()

	s.notify(ctx, Event{Kind: CurrencySet, Value: code})
}

// ToggleDarkMode flips the theme flag and returns the new value.
func (s *Store) ToggleDarkMode(ctx context.Context) (dark bool, err error) {
	defer func() { observeMutation(opDarkMode, true, err) }()

	s.mu.Lock()
	dark = !s.settings.DarkMode
	if err = s.save(ctx, DarkModeKey, strconv.FormatBool(dark)); err != nil {
		s.mu.Unlock()
		return !dark, errors.Wrap(err, "toggle dark mode")
	}
	s.settings.DarkMode = dark
	s.mu.Unlock()

	s.notify(ctx, Event{Kind: DarkModeToggled, Value: strconv.FormatBool(dark)})
	return dark, nil
}

// ClearAll drops the expenses, budget and income, removing their keys.
// Dark mode and the selected currency are kept.
func (s *Store) ClearAll(ctx context.Context) (err error) {
	defer func() { observeMutation(opClear, true, err) }()

	s.mu.Lock()
	for _, key := range []string{ExpensesKey, BudgetKey, IncomeKey} {
		if err = s.remove(ctx, key); err != nil {
			s.mu.Unlock()
			return errors.Wrap(err, "clear all")
		}
		switch key {
		case ExpensesKey:
			s.expenses = make([]expense.Record, 0)
		case BudgetKey:
			s.settings.Budget = ""
		case IncomeKey:
			s.settings.Income = ""
		}
	}
	s.mu.Unlock()

	s.notify(ctx, Event{Kind: Cleared})
	return nil
}

func (s *Store) cloneExpenses() []expense.Record {
	res := make([]expense.Record, len(s.expenses), len(s.expenses)+1)
	copy(res, s.expenses)
	return res
}

func (s *Store) saveExpenses(ctx context.Context, exps []expense.Record) error {
	raw, err := json.Marshal(exps)
	if err != nil {
		return errors.Wrap(err, "marshalling expenses")
	}
	return s.save(ctx, ExpensesKey, string(raw))
}

func (s *Store) save(ctx context.Context, key, value string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "persist")
	defer span.Finish()
	span.SetTag("key", key)

	err := s.storage.Save(ctx, key, value)
	if err != nil {
		ext.Error.Set(span, true)
	}
	return err
}

func (s *Store) remove(ctx context.Context, key string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "remove")
	defer span.Finish()
	span.SetTag("key", key)

	err := s.storage.Remove(ctx, key)
	if err != nil {
		ext.Error.Set(span, true)
	}
	return err
}

func (s *Store) notify(ctx context.Context, ev Event) {
	ev.At = s.now()

	s.mu.Lock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l(ctx, ev)
	}
}
