// Package feed pushes simulated quote snapshots to websocket subscribers,
// backing the live markets screen.
package feed

import (
	"context"
	"log"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"stocktracker/internal/market"
)

// SubscribeMsg is the first message a client sends after connecting.
type SubscribeMsg struct {
	Action  string   `json:"action"`
	Symbols []string `json:"symbols"`
}

// Snapshot is one pushed batch of quotes.
type Snapshot struct {
	Quotes []market.Quote `json:"quotes"`
	At     time.Time      `json:"at"`
}

// Handler upgrades requests to a websocket and streams quote snapshots for
// the subscribed symbols until the peer goes away.
type Handler struct {
	Board    *market.Board
	Interval time.Duration
}

const subscribeWait = 10 * time.Second

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: []string{"*"}})
	if err != nil {
		log.Printf("feed: accept: %v", err)
		return
	}
	defer c.Close(websocket.StatusInternalError, "stream ended")

	ctx := r.Context()

	subCtx, cancel := context.WithTimeout(ctx, subscribeWait)
	var sub SubscribeMsg
	err = wsjson.Read(subCtx, c, &sub)
	cancel()
	if err != nil || sub.Action != "subscribe" || len(sub.Symbols) == 0 {
		c.Close(websocket.StatusPolicyViolation, "expected subscribe message")
		return
	}

	interval := h.Interval
	if interval <= 0 {
		interval = 5 * time.Second
	}

	// Read pump only exists to notice the peer closing; write pump pushes
	// snapshots per tick. Either failing tears both down.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			if _, _, err := c.Read(gctx); err != nil {
				return err
			}
		}
	})
	g.Go(func() error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		if err := h.push(gctx, c, sub.Symbols); err != nil {
			return err
		}
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-ticker.C:
				if err := h.push(gctx, c, sub.Symbols); err != nil {
					return err
				}
			}
		}
	})

	err = g.Wait()
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
	default:
		if err != nil && ctx.Err() == nil {
			log.Printf("feed: stream closed: %v", err)
		}
	}
	c.Close(websocket.StatusNormalClosure, "")
}

func (h *Handler) push(ctx context.Context, c *websocket.Conn, symbols []string) error {
	snap := Snapshot{Quotes: h.Board.Quotes(symbols), At: h.Board.Now().UTC()}
	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return wsjson.Write(writeCtx, c, snap)
}
