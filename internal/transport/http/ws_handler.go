package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	stdhttp "net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/docsync/relay/internal/core"
	"github.com/docsync/relay/internal/proto"
)

// WSHandler upgrades HTTP connections and bridges them to core.Client.
type WSHandler struct {
	registry  *core.Registry
	rooms     *core.Manager
	router    *core.Router
	readLimit int64
	log       *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(registry *core.Registry, rooms *core.Manager, router *core.Router, readLimit int64, logger *zerolog.Logger) *WSHandler {
	return &WSHandler{
		registry:  registry,
		rooms:     rooms,
		router:    router,
		readLimit: readLimit,
		log:       logger,
	}
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ctx := r.Context()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	if h.readLimit > 0 {
		conn.SetReadLimit(h.readLimit)
	}

	client := h.registry.Register()
	defer func() {
		// Teardown is immediate and unconditional: no broadcast may reach
		// the client past this point, and its room forgets it.
		client.MarkClosed()
		h.rooms.Leave(client)
		h.registry.Unregister(client.ID)
		h.log.Info().Str("client_id", client.ID).Msg("client disconnected")
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := wsjson.Write(ctx, conn, proto.Message{Type: proto.TypeHello, ClientID: client.ID}); err != nil {
		h.log.Warn().Err(err).Str("client_id", client.ID).Msg("write hello")
		return
	}

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, client)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, client)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != 0 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

// readLoop decodes frames and feeds them to the router one at a time. A
// frame that is not valid JSON gets an error reply and the loop continues;
// only transport failures end it.
func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}

		var msg proto.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			h.log.Debug().Err(err).Str("client_id", client.ID).Msg("undecodable frame")
			if writeErr := wsjson.Write(ctx, conn, proto.Message{Type: proto.TypeError, Msg: "Invalid JSON"}); writeErr != nil {
				return writeErr
			}
			continue
		}

		h.router.Handle(client, commandFromMessage(msg))
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		select {
		case event, ok := <-client.Events:
			if !ok {
				return nil
			}
			if err := wsjson.Write(ctx, conn, messageFromEvent(event)); err != nil {
				h.log.Error().Err(err).Str("client_id", client.ID).Msg("write ws event")
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
