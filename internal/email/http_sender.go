package email

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPSender posts messages as JSON to a transactional mail API
// authenticated with a bearer key
type HTTPSender struct {
	client *resty.Client
	apiURL string
}

func NewHTTPSender(apiURL, apiKey string, timeout time.Duration) *HTTPSender {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}

	return &HTTPSender{client: client, apiURL: apiURL}
}

func (s *HTTPSender) Send(ctx context.Context, msg Message) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(msg).
		Post(s.apiURL)
	if err != nil {
		return fmt.Errorf("mail api request: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("mail api responded %d: %s", resp.StatusCode(), resp.String())
	}

	return nil
}
