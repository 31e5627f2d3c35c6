package notifications

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// Notifier delivers a short message about a finished run.
type Notifier interface {
	Post(msg string) error
}

type Slack struct {
	client  *http.Client
	webhook string
	channel string
}

func NewSlackNotifier(webHook string) *Slack {
	s := &Slack{
		client:  &http.Client{Timeout: 10 * time.Second},
		webhook: webHook,
	}
	return s
}

func (s *Slack) SetWebhook(newHook string) *Slack {
	s.webhook = newHook
	return s
}

func (s *Slack) SetChannel(newChannel string) *Slack {
	s.channel = newChannel
	return s
}

// Post sends msg to the incoming webhook.
func (s *Slack) Post(msg string) error {
	if s.webhook == "" {
		return errors.New("Slack notification impossible; no webhook specified")
	}
	payload := map[string]interface{}{
		"text": msg,
	}
	if s.channel != "" {
		payload["channel"] = s.channel
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := s.client.Post(s.webhook, "application/json", bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(err, "Slack notification POST failed")
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		response, _ := io.ReadAll(resp.Body)
		return errors.Errorf(
			"Slack notification POST response status was %s; response text was: %s",
			resp.Status,
			string(response),
		)
	}
	return nil
}
