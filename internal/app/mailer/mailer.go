package mailer

import (
	"context"
	"fmt"

	"amc-crm/internal/app/config"

	"github.com/go-resty/resty/v2"
)

// Client — клиент внешнего почтового шлюза для рассылки напоминаний
type Client struct {
	resty *resty.Client
	from  string
}

type sendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type sendResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func New(cfg config.MailerConfig) *Client {
	r := resty.New().
		SetBaseURL(cfg.GatewayURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Authorization", "Bearer "+cfg.APIKey)

	return &Client{
		resty: r,
		from:  cfg.From,
	}
}

// Send отправляет письмо через шлюз. Повторных попыток нет —
// неудачная отправка фиксируется в истории и видна пользователю
func (c *Client) Send(ctx context.Context, to, subject, body string) error {
	var result sendResponse

	resp, err := c.resty.R().
		SetContext(ctx).
		SetBody(sendRequest{
			From:    c.from,
			To:      to,
			Subject: subject,
			Body:    body,
		}).
		SetResult(&result).
		Post("/send")
	if err != nil {
		return fmt.Errorf("mail gateway request failed: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("mail gateway responded %d: %s", resp.StatusCode(), resp.String())
	}

	return nil
}
