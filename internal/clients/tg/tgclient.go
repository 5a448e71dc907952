package tg

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"max.ks1230/expense-tracker/internal/logger"
	"max.ks1230/expense-tracker/internal/model/export"
	"max.ks1230/expense-tracker/internal/model/messages"
)

const (
	defaultUpdateOffset = 0
	timeoutSeconds      = 5
)

type config interface {
	Token() string
	OwnerID() int64
}

type Client struct {
	client  *tgbotapi.BotAPI
	ownerID int64
}

// ErrNoOwner is returned by New when telegram.owner-id is not set. The bot
// serves a single user's data and must not answer anyone else.
var ErrNoOwner = errors.New("telegram owner-id is required")

func New(config config) (*Client, error) {
	if config.OwnerID() == 0 {
		return nil, ErrNoOwner
	}
	client, err := tgbotapi.NewBotAPI(config.Token())
	if err != nil {
		return nil, errors.Wrap(err, "cannot NewBotApi")
	}
	return &Client{client: client, ownerID: config.OwnerID()}, nil
}

func (c *Client) SendMessage(text string, userID int64) error {
	_, err := c.client.Send(tgbotapi.NewMessage(userID, text))
	if err != nil {
		return errors.Wrap(err, "client.Send")
	}
	return nil
}

// SendFile delivers f as a document attachment.
func (c *Client) SendFile(f export.File, userID int64) error {
	doc := tgbotapi.NewDocument(userID, tgbotapi.FileBytes{Name: f.Name, Bytes: f.Data})
	_, err := c.client.Send(doc)
	if err != nil {
		return errors.Wrap(err, "client.Send document")
	}
	return nil
}

func (c *Client) ListenUpdates(ctx context.Context, msgModel *messages.Service) {
	u := tgbotapi.NewUpdate(defaultUpdateOffset)
	u.Timeout = 60

	updates := c.client.GetUpdatesChan(u)

	logger.Info("Start listening for messages")

	for {
		select {
		case <-ctx.Done():
			c.client.StopReceivingUpdates()
			logger.Info("Stop listening for messages")
			return
		case update := <-updates:
			c.listenOnce(ctx, update, msgModel)
		}
	}
}

func (c *Client) allowed(userID int64) bool {
	return c.ownerID != 0 && c.ownerID == userID
}

func (c *Client) listenOnce(ctx context.Context, update tgbotapi.Update, msgModel *messages.Service) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	if !c.allowed(update.Message.From.ID) {
		logger.Warn("ignoring message from stranger", zap.Int64("userID", update.Message.From.ID))
		return
	}
	logger.Info(update.Message.Text, zap.String("user", update.Message.From.UserName))

	ctx, cancel := context.WithTimeout(ctx, time.Second*timeoutSeconds)
	defer cancel()

	chatID := update.Message.From.ID
	if update.Message.Chat != nil {
		chatID = update.Message.Chat.ID
	}
	err := msgModel.HandleIncomingMessage(ctx, messages.Message{
		Text:   update.Message.Text,
		UserID: chatID,
	})
	if err != nil {
		logger.Error("error processing message:", zap.Error(err))
	}
}
