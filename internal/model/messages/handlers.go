package messages

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"max.ks1230/expense-tracker/internal/entity/currency"
	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/logger"
	"max.ks1230/expense-tracker/internal/model/export"
	"max.ks1230/expense-tracker/internal/model/reports"
	"max.ks1230/expense-tracker/internal/model/tracker"
)

const (
	dontUnderstandMessage = "I don't understand you :("
	noRatesMessage        = "Exchange rates are not loaded yet"
	cannotSaveMessage     = "Can't save your changes atm. Try later"

	helpMessage = `Hello! I am your expense tracker 💰

/add <category> <amount> <description> - add an expense
/delete <id> - delete an expense
/budget <amount> - set the budget (empty clears it)
/income <amount> - set the income (empty clears it)
/currency <code> - select the display currency
/currencies - list known currencies
/darkmode - toggle dark mode
/clear - clear expenses, budget and income
/export - export expenses as CSV
/list - show the tracker

Categories: ` + "Food, Transport, Entertainment, Bills, Other"
)

const (
	startCommand      = "/start"
	helpCommand       = "/help"
	addCommand        = "/add"
	deleteCommand     = "/delete"
	budgetCommand     = "/budget"
	incomeCommand     = "/income"
	currencyCommand   = "/currency"
	currenciesCommand = "/currencies"
	darkModeCommand   = "/darkmode"
	clearCommand      = "/clear"
	exportCommand     = "/export"
	listCommand       = "/list"
)

type store interface {
	Snapshot() tracker.State
	AddExpense(ctx context.Context, description, amount, category string) (expense.Record, bool, error)
	DeleteExpense(ctx context.Context, id string) (bool, error)
	SetBudget(ctx context.Context, text string) error
	SetIncome(ctx context.Context, text string) error
	SetCurrency(ctx context.Context, code string)
	ToggleDarkMode(ctx context.Context) (bool, error)
	ClearAll(ctx context.Context) error
}

type ratesSource interface {
	Current() currency.Table
}

// Reply is the answer to one message. File is set for exports.
type Reply struct {
	Text string
	File *export.File
}

type handler func(ctx context.Context, arg string) (Reply, error)

type handlerMap map[string]handler

type HandlerService struct {
	handlersMap handlerMap
	store       store
	rates       ratesSource
	renderer    Renderer
	clock       func() time.Time
}

func newHandler(store store, rates ratesSource, renderer Renderer) *HandlerService {
	res := &HandlerService{
		store:    store,
		rates:    rates,
		renderer: renderer,
		clock:    time.Now,
	}
	res.handlersMap = newMap(res)
	return res
}

func (s *HandlerService) HandleMessage(ctx context.Context, text string, _ int64) (Reply, error) {
	cmd, arg := parseCommand(text)

	handler, ok := s.handlersMap[strings.ToLower(cmd)]
	if ok {
		return handler(ctx, arg)
	}
	return Reply{Text: dontUnderstandMessage}, nil
}

func newMap(s *HandlerService) handlerMap {
	m := make(handlerMap)
	m[startCommand] = s.handleHelp
	m[helpCommand] = s.handleHelp
	m[addCommand] = s.handleAdd
	m[deleteCommand] = s.handleDelete
	m[budgetCommand] = s.handleBudget
	m[incomeCommand] = s.handleIncome
	m[currencyCommand] = s.handleCurrency
	m[currenciesCommand] = s.handleCurrencies
	m[darkModeCommand] = s.handleDarkMode
	m[clearCommand] = s.handleClear
	m[exportCommand] = s.handleExport
	m[listCommand] = s.handleList

	m[""] = s.handleList

	return m
}

// view renders the current state, it is the answer to every intent.
func (s *HandlerService) view() Reply {
	state := s.store.Snapshot()
	return Reply{Text: s.renderer.Render(View{
		Month:  s.clock(),
		State:  state,
		Report: reports.Generate(state.Expenses, state.Settings, s.rates.Current()),
	})}
}

func (s *HandlerService) handleHelp(_ context.Context, _ string) (Reply, error) {
	return Reply{Text: helpMessage}, nil
}

func (s *HandlerService) handleList(_ context.Context, _ string) (Reply, error) {
	return s.view(), nil
}

func (s *HandlerService) handleAdd(ctx context.Context, arg string) (Reply, error) {
	args := splitArgs(arg, addArgs)
	for len(args) < addArgs {
		args = append(args, "")
	}
	category, amount, description := args[0], args[1], args[2]

	rec, ok, err := s.store.AddExpense(ctx, description, amount, category)
	if err != nil {
		return Reply{Text: cannotSaveMessage}, errors.Wrap(err, "handle add")
	}
	if ok {
		logger.Info("expense added", zap.String("id", rec.ID), zap.String("category", rec.Category))
	}
	return s.view(), nil
}

func (s *HandlerService) handleDelete(ctx context.Context, arg string) (Reply, error) {
	_, err := s.store.DeleteExpense(ctx, strings.TrimSpace(arg))
	if err != nil {
		return Reply{Text: cannotSaveMessage}, errors.Wrap(err, "handle delete")
	}
	return s.view(), nil
}

func (s *HandlerService) handleBudget(ctx context.Context, arg string) (Reply, error) {
	if err := s.store.SetBudget(ctx, strings.TrimSpace(arg)); err != nil {
		return Reply{Text: cannotSaveMessage}, errors.Wrap(err, "handle budget")
	}
	return s.view(), nil
}

func (s *HandlerService) handleIncome(ctx context.Context, arg string) (Reply, error) {
	if err := s.store.SetIncome(ctx, strings.TrimSpace(arg)); err != nil {
		return Reply{Text: cannotSaveMessage}, errors.Wrap(err, "handle income")
	}
	return s.view(), nil
}

func (s *HandlerService) handleCurrency(ctx context.Context, arg string) (Reply, error) {
	if code := currency.Normalize(arg); code != "" {
		s.store.SetCurrency(ctx, code)
	}
	return s.view(), nil
}

func (s *HandlerService) handleCurrencies(_ context.Context, _ string) (Reply, error) {
	codes := s.rates.Current().Codes()
	if len(codes) == 0 {
		return Reply{Text: noRatesMessage}, nil
	}
	return Reply{Text: strings.Join(codes, " ")}, nil
}

func (s *HandlerService) handleDarkMode(ctx context.Context, _ string) (Reply, error) {
	if _, err := s.store.ToggleDarkMode(ctx); err != nil {
		return Reply{Text: cannotSaveMessage}, errors.Wrap(err, "handle dark mode")
	}
	return s.view(), nil
}

func (s *HandlerService) handleClear(ctx context.Context, _ string) (Reply, error) {
	if err := s.store.ClearAll(ctx); err != nil {
		return Reply{Text: cannotSaveMessage}, errors.Wrap(err, "handle clear")
	}
	return s.view(), nil
}

func (s *HandlerService) handleExport(_ context.Context, _ string) (Reply, error) {
	f := export.CSV(s.store.Snapshot().Expenses)
	return Reply{Text: "Here are your expenses", File: &f}, nil
}
