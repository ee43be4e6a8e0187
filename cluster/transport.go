package cluster

import (
	"bytes"
	"compress/zlib"
	"context"
	"io"

	"nhooyr.io/websocket"
)

// Conn is the minimal surface a shard needs from its gateway connection.
// It exists so shard.go depends on an interface rather than
// nhooyr.io/websocket directly at every call site, matching spec §1's
// framing of wire-level transport as an external collaborator whose
// interface the core specifies.
type Conn interface {
	Read(ctx context.Context) (messageType websocket.MessageType, data []byte, err error)
	Write(ctx context.Context, messageType websocket.MessageType, data []byte) error
	Close(code websocket.StatusCode, reason string) error
}

// Dialer opens a new gateway connection. The default implementation wraps
// nhooyr.io/websocket.Dial, the teacher's own forward-migration choice in
// gateway/shard.go.
type Dialer func(ctx context.Context, url string) (Conn, error)

// DefaultDialer dials with nhooyr.io/websocket and a generous read limit,
// matching gateway/shard.go's `wsConn.SetReadLimit(512 << 20)`.
func DefaultDialer(ctx context.Context, url string) (Conn, error) {
	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	c.SetReadLimit(512 << 20)
	return conn{c}, nil
}

type conn struct{ *websocket.Conn }

func (c conn) Close(code websocket.StatusCode, reason string) error {
	return c.Conn.Close(code, reason)
}

// FrameDecoder turns one received gateway frame into JSON bytes suitable
// for gatewayevent.JSON.Unmarshal. Text frames are already JSON and pass
// through unchanged; binary frames carry a zlib-compressed stream when the
// identify requested compress:true.
type FrameDecoder interface {
	Decode(messageType websocket.MessageType, data []byte) ([]byte, error)
}

// ZlibFrameDecoder is the default FrameDecoder, using stdlib compress/zlib.
// This is a pure-Go stand-in for the teacher's CGO bindings
// (TheRockettek/czlib, valyala/gozstd), dropped per DESIGN.md since wire
// framing is out of scope for the core and a CGO dependency has no other
// call site to justify it.
type ZlibFrameDecoder struct{}

func (ZlibFrameDecoder) Decode(messageType websocket.MessageType, data []byte) ([]byte, error) {
	if messageType == websocket.MessageText {
		return data, nil
	}
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
