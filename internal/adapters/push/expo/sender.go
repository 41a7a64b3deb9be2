// Package expo despacha notificaciones por el gateway de push de Expo,
// el mismo que usa la app móvil.
package expo

import (
	"context"
	"fmt"
	"time"

	"home-aidkit/internal/platform/httpclient"
	"home-aidkit/internal/ports/push"
)

const (
	DefaultURL = "https://exp.host/--/api/v2/push/send"

	// Expo rechaza lotes de más de 100 mensajes.
	maxBatch = 100
)

type Sender struct {
	client *httpclient.Client
	url    string
}

func NewSender(url string) *Sender {
	if url == "" {
		url = DefaultURL
	}
	return &Sender{
		client: httpclient.New(10 * time.Second),
		url:    url,
	}
}

type expoMessage struct {
	To    string `json:"to"`
	Title string `json:"title"`
	Body  string `json:"body"`
	Sound string `json:"sound"`
}

func (s *Sender) Send(ctx context.Context, msgs []push.Message) error {
	for start := 0; start < len(msgs); start += maxBatch {
		end := start + maxBatch
		if end > len(msgs) {
			end = len(msgs)
		}

		batch := make([]expoMessage, 0, end-start)
		for _, m := range msgs[start:end] {
			batch = append(batch, expoMessage{
				To:    m.Token,
				Title: m.Title,
				Body:  m.Body,
				Sound: "default",
			})
		}

		if err := s.client.DoJSON(ctx, "POST", s.url, nil, batch, nil); err != nil {
			return fmt.Errorf("expo push batch: %w", err)
		}
	}
	return nil
}
