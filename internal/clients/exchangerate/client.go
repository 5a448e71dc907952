package exchangerate

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"max.ks1230/expense-tracker/internal/logger"
)

type urlGetter interface {
	RatesURL() string
}

type Client struct {
	url        string
	httpClient *http.Client
}

type ratesResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

func New(getter urlGetter) *Client {
	return &Client{
		url:        getter.RatesURL(),
		httpClient: &http.Client{},
	}
}

// GetRates fetches the latest table relative to the base currency encoded
// in the configured URL.
func (c *Client) GetRates(ctx context.Context) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building rates request")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "requesting rates")
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading rates response")
	}
	if res.StatusCode != http.StatusOK {
		return nil, errors.Errorf("rates provider answered %d", res.StatusCode)
	}

	rates := ratesResponse{}
	if err = json.Unmarshal(body, &rates); err != nil {
		return nil, errors.Wrap(err, "unmarshalling response")
	}
	if rates.Rates == nil {
		return nil, errors.New("rates response has no rates")
	}

	logger.Info("new rates from provider",
		zap.String("base", rates.Base),
		zap.String("date", rates.Date),
		zap.Int("count", len(rates.Rates)))
	return rates.Rates, nil
}
