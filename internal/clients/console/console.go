package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"max.ks1230/expense-tracker/internal/logger"
	"max.ks1230/expense-tracker/internal/model/export"
	"max.ks1230/expense-tracker/internal/model/messages"
)

const (
	prompt      = "> "
	quitCommand = "/quit"
	localUserID = 0
)

type fileDeliverer interface {
	Deliver(ctx context.Context, f export.File) (string, error)
}

// Client is a line based front-end: one command per line on in, replies on out.
type Client struct {
	in        io.Reader
	out       io.Writer
	deliverer fileDeliverer
}

func New(in io.Reader, out io.Writer, deliverer fileDeliverer) *Client {
	return &Client{in: in, out: out, deliverer: deliverer}
}

func (c *Client) SendMessage(text string, _ int64) error {
	_, err := fmt.Fprintln(c.out, text)
	return err
}

func (c *Client) SendFile(f export.File, _ int64) error {
	path, err := c.deliverer.Deliver(context.Background(), f)
	if err != nil {
		return errors.Wrap(err, "deliver export")
	}
	_, err = fmt.Fprintf(c.out, "Saved %s\n", path)
	return err
}

// ListenUpdates serves commands until the input ends, /quit is typed or ctx
// is done.
func (c *Client) ListenUpdates(ctx context.Context, msgModel *messages.Service) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		scanner := bufio.NewScanner(c.in)
		// scanErr is buffered and filled before lines is closed, so a reader
		// that sees the close never waits on it.
		defer func() {
			scanErr <- scanner.Err()
			close(lines)
		}()
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			case <-done:
				return
			}
		}
	}()

	logger.Info("Start reading commands")
	c.handle(ctx, msgModel, "/list")

	for {
		_, _ = fmt.Fprint(c.out, prompt)
		select {
		case <-ctx.Done():
			logger.Info("Stop reading commands")
			return nil
		case line, ok := <-lines:
			if !ok {
				if ctx.Err() != nil {
					logger.Info("Stop reading commands")
					return nil
				}
				logger.Info("Input closed")
				return errors.Wrap(<-scanErr, "read commands")
			}
			if strings.EqualFold(strings.TrimSpace(line), quitCommand) {
				return nil
			}
			c.handle(ctx, msgModel, line)
		}
	}
}

func (c *Client) handle(ctx context.Context, msgModel *messages.Service, line string) {
	err := msgModel.HandleIncomingMessage(ctx, messages.Message{Text: line, UserID: localUserID})
	if err != nil {
		logger.Error("error processing command:", zap.Error(err))
	}
}
