package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/involine/involine/internal/config"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Client queries a frankfurter-style API:
// GET {base}/{YYYY-MM-DD|latest}?from=EUR&to=USD -> {"rates":{"USD":1.0832}}.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(cfg config.Config, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.RateServiceBaseURL, "/"),
		http:    &http.Client{Timeout: cfg.RateServiceTimeout},
		log:     log.Named("exchangerate.client"),
	}
}

type ratesResponse struct {
	Rates map[string]decimal.Decimal `json:"rates"`
}

func (c *Client) Resolve(ctx context.Context, date time.Time, from, to string) (decimal.Decimal, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if from == to {
		return one, nil
	}

	dateParam := "latest"
	if !date.IsZero() {
		dateParam = date.UTC().Format("2006-01-02")
	}

	query := url.Values{}
	query.Set("from", from)
	query.Set("to", to)
	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, dateParam, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrRateService, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s to %s on %s: %v", ErrRateService, from, to, dateParam, err)
	}
	defer resp.Body.Close()

	// Frankfurter answers 404 for unknown currencies or dates outside its range.
	if resp.StatusCode == http.StatusNotFound {
		return decimal.Zero, fmt.Errorf("%w: %s to %s on %s", ErrRateUnavailable, from, to, dateParam)
	}
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: %s to %s on %s: status %d", ErrRateService, from, to, dateParam, resp.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("%w: decoding response: %v", ErrRateService, err)
	}

	rate, ok := body.Rates[to]
	if !ok || rate.IsZero() {
		c.log.Warn("rate missing in response",
			zap.String("from", from),
			zap.String("to", to),
			zap.String("date", dateParam),
		)
		return decimal.Zero, fmt.Errorf("%w: %s to %s on %s", ErrRateUnavailable, from, to, dateParam)
	}

	return rate, nil
}
