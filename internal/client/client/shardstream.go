package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hikariatama/sharder/internal/client/models"
	"github.com/hikariatama/sharder/internal/netx"
)

// Subscribe opens the shard status websocket. Every text frame is decoded
// as a batch of shard statuses and delivered in arrival order. Frames that
// fail to decode are skipped. The channel is closed when the connection
// ends or ctx is cancelled. The client never writes to the socket.
func (c *HTTPClient) Subscribe(ctx context.Context) (<-chan []models.ShardStatus, error) {
	u, err := netx.JoinURL(c.baseURL, "shards")
	if err != nil {
		return nil, err
	}
	u, err = netx.ToWebsocketURL(u)
	if err != nil {
		return nil, err
	}
	header, err := c.authHeader()
	if err != nil {
		return nil, err
	}

	conn, resp, err := c.dialer.DialContext(ctx, u, header)
	if err != nil {
		if resp != nil {
			defer resp.Body.Close()
			if mapped := mapStatus(resp); mapped != nil {
				return nil, mapped
			}
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	out := make(chan []models.ShardStatus)
	done := make(chan struct{})

	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			_ = conn.Close()
		case <-done:
		}
	}()

	go func() {
		defer close(out)
		defer close(done)
		defer conn.Close()

		for {
			kind, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if kind != websocket.TextMessage && kind != websocket.BinaryMessage {
				continue
			}
			var batch []models.ShardStatus
			if err := json.Unmarshal(data, &batch); err != nil {
				continue
			}
			select {
			case out <- batch:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
