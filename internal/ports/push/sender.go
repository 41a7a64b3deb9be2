package push

import "context"

// Message es una notificación push ya resuelta (token + textos).
type Message struct {
	Token string
	Title string
	Body  string
}

// Sender entrega mensajes push. La implementación real habla con el
// gateway (Expo); en dev/tests se usa una implementación en memoria.
type Sender interface {
	Send(ctx context.Context, msgs []Message) error
}
