package bridge

import (
	"context"
	"fmt"

	"github.com/coder/websocket"
)

// Sender ships encoded records off-box. Implementations must be safe to
// call from the export loop; they are never called from the producer
// path.
type Sender interface {
	Send(ctx context.Context, r Record) error
	Close() error
}

// WSSender pushes binary records over a websocket. The export rate is
// already bounded by the snapshot publisher, so the sender does no rate
// limiting of its own.
type WSSender struct {
	conn *websocket.Conn
	url  string
}

// Dial connects to the downstream consumer.
func Dial(ctx context.Context, url string) (*WSSender, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial bridge %s: %w", url, err)
	}
	return &WSSender{conn: conn, url: url}, nil
}

// URL returns the dialed endpoint.
func (s *WSSender) URL() string { return s.url }

func (s *WSSender) Send(ctx context.Context, r Record) error {
	if err := s.conn.Write(ctx, websocket.MessageBinary, r.Marshal()); err != nil {
		return fmt.Errorf("failed to send record seq=%d: %w", r.Seq, err)
	}
	return nil
}

func (s *WSSender) Close() error {
	return s.conn.Close(websocket.StatusNormalClosure, "shutdown")
}
