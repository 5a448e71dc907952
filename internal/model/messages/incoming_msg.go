package messages

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"

	"max.ks1230/expense-tracker/internal/model/export"
)

const sorryMessage = "Sorry, something wrong happened...\n"

type messageSender interface {
	SendMessage(text string, userID int64) error
	SendFile(f export.File, userID int64) error
}

type MessageHandler interface {
	HandleMessage(ctx context.Context, text string, userID int64) (Reply, error)
}

type Service struct {
	sender  messageSender
	handler MessageHandler
}

// NewService wires the command handlers. A nil renderer falls back to the
// plain text one.
func NewService(sender messageSender, store store, rates ratesSource, renderer Renderer) *Service {
	if renderer == nil {
		renderer = PlainRenderer{}
	}
	return &Service{
		sender:  sender,
		handler: newHandler(store, rates, renderer),
	}
}

type Message struct {
	Text   string
	UserID int64
}

func (s *Service) HandleIncomingMessage(ctx context.Context, msg Message) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "handleMessage")
	defer span.Finish()

	start := time.Now()
	err := s.handle(ctx, msg)
	elapsed := time.Since(start)

	observeCommand(msg.Text, elapsed, err != nil)
	if err != nil {
		ext.Error.Set(span, true)
	}
	return err
}

func (s *Service) handle(ctx context.Context, msg Message) error {
	reply, err := s.handler.HandleMessage(ctx, msg.Text, msg.UserID)
	if err != nil {
		_ = s.sender.SendMessage(sorryMessage+reply.Text, msg.UserID)
		return err
	}
	if reply.File != nil {
		if err = s.sender.SendFile(*reply.File, msg.UserID); err != nil {
			return err
		}
	}
	return s.sender.SendMessage(reply.Text, msg.UserID)
}
