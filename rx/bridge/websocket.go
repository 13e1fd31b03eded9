package bridge

import (
	"context"
	"io"

	"github.com/gorilla/websocket"
	"github.com/minrx/minrx-go/logger"
	"github.com/minrx/minrx-go/rx"
	"go.uber.org/atomic"
)

// Message is a websocket message.
type Message struct {
	// Type is websocket.TextMessage or websocket.BinaryMessage.
	Type int
	Data []byte
}

// RawWsConn is the part of *websocket.Conn read by FromWebsocket.
type RawWsConn interface {
	io.Closer
	ReadMessage() (messageType int, p []byte, err error)
}

var _ RawWsConn = (*websocket.Conn)(nil)

// FromWebsocket returns a producer emitting every message read from conn on a dedicated
// worker. A normal closure completes the sequence, any other read error fails it.
// Disposal closes the connection, so it can be subscribed only once.
func FromWebsocket(conn RawWsConn) rx.Producer[Message] {
	return func(ctx context.Context, o rx.Observer[Message]) rx.Disposer {
		disposed := atomic.NewBool(false)
		closeConn := func() {
			if err := conn.Close(); err != nil {
				logger.Debugf("rx: close websocket failed: %s\n", err)
			}
		}
		d := rx.Worker().Schedule(ctx, func(ctx context.Context) {
			stop := context.AfterFunc(ctx, func() {
				if disposed.CompareAndSwap(false, true) {
					closeConn()
				}
			})
			defer stop()
			for {
				typ, data, err := conn.ReadMessage()
				if err == nil {
					o(rx.Next(Message{Type: typ, Data: data}))
					continue
				}
				if disposed.Load() {
					return
				}
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					o(rx.Completed[Message]())
				} else {
					o(rx.Failed[Message](err))
				}
				return
			}
		})
		return rx.Disposer(func() {
			if disposed.CompareAndSwap(false, true) {
				closeConn()
			}
			d.Dispose()
		}).Once()
	}
}
