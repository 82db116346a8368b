// Package ping drives the server list ping exchange against a single
// target: handshake, status request, status response, an optional latency
// ping, and the legacy plaintext fallback for pre-1.7 servers.
package ping

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"time"
	"unicode/utf16"

	"github.com/statcraft/mcstat/internal/protocol"
	"github.com/statcraft/mcstat/internal/resolver"
	"github.com/statcraft/mcstat/internal/status"
)

const (
	// DefaultProtocolVersion is the probe version sent in the handshake.
	// Servers answer status requests regardless of an exact match, so the
	// latest known version is a safe default.
	DefaultProtocolVersion = 767

	// DefaultTimeout bounds the whole session when the caller's context
	// carries no deadline.
	DefaultTimeout = 5 * time.Second

	handshakePacketID     = 0x00
	statusRequestPacketID = 0x00
	statusResponseID      = 0x00
	pingPacketID          = 0x01
	pongPacketID          = 0x01

	// Handshake next-state field: 1 requests the status state.
	nextStateStatus = 1
)

// Legacy ping bytes and the kick packet ID that answers them.
var legacyPing = []byte{0xFE, 0x01}

const legacyKickID = 0xFF

// DialFunc opens the TCP stream; swapped out in tests.
type DialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// Options tune a session. The zero value is usable.
type Options struct {
	// ProtocolVersion overrides the probe version. Zero means
	// DefaultProtocolVersion; negative values are sent as-is.
	ProtocolVersion int32

	// Timeout bounds the session when ctx has no deadline.
	Timeout time.Duration

	// SkipLatency disables the trailing ping/pong exchange.
	SkipLatency bool

	// Dial overrides the dialer.
	Dial DialFunc
}

func (o *Options) protocolVersion() int32 {
	if o.ProtocolVersion == 0 {
		return DefaultProtocolVersion
	}
	return o.ProtocolVersion
}

func (o *Options) dial() DialFunc {
	if o.Dial != nil {
		return o.Dial
	}
	d := &net.Dialer{}
	return d.DialContext
}

// Session is one status exchange against one target. A session owns its
// connection exclusively and is not reused after completion.
type Session struct {
	target resolver.Target
	opts   Options

	state State
	conn  net.Conn
	br    *bufio.Reader

	resp *status.Response
	err  error
}

// NewSession creates a session in the Disconnected state.
func NewSession(target resolver.Target, opts Options) *Session {
	return &Session{target: target, opts: opts, state: StateDisconnected}
}

// State returns the session's current state.
func (s *Session) State() State {
	return s.state
}

// Query resolves address and runs a full session against the result.
func Query(ctx context.Context, address string, opts Options) (*status.Response, error) {
	target, err := resolver.New().Resolve(ctx, address)
	if err != nil {
		return nil, err
	}
	return QueryTarget(ctx, target, opts)
}

// QueryTarget runs a full session against an already-resolved target.
func QueryTarget(ctx context.Context, target resolver.Target, opts Options) (*status.Response, error) {
	if _, ok := ctx.Deadline(); !ok {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	s := NewSession(target, opts)
	defer s.close()

	return s.Run(ctx)
}

// Run steps the state machine until a terminal state is reached.
func (s *Session) Run(ctx context.Context) (*status.Response, error) {
	for !s.state.terminal() {
		s.state = s.step(ctx)
	}
	if s.state == StateFailed {
		return nil, s.err
	}
	return s.resp, nil
}

// step performs exactly one transition and returns the next state.
func (s *Session) step(ctx context.Context) State {
	switch s.state {
	case StateDisconnected:
		return s.connect(ctx)
	case StateConnected:
		return s.sendHandshake(ctx)
	case StateHandshakeSent:
		return s.sendStatusRequest(ctx)
	case StateStatusRequested:
		return s.readStatus(ctx)
	case StateLegacyFallback:
		return s.legacyExchange(ctx)
	default:
		return s.fail(fmt.Errorf("%w: step from terminal state %s", ErrProtocol, s.state))
	}
}

func (s *Session) connect(ctx context.Context) State {
	conn, err := s.opts.dial()(ctx, "tcp", s.target.Addr())
	if err != nil {
		if isTimeout(ctx, err) {
			return s.fail(fmt.Errorf("%w: %w", ErrTimeout, err))
		}
		return s.fail(fmt.Errorf("%w: %w", ErrConnect, err))
	}
	s.conn = conn
	s.br = bufio.NewReader(conn)
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	return StateConnected
}

func (s *Session) sendHandshake(ctx context.Context) State {
	var payload bytes.Buffer
	if err := protocol.WriteVarInt(&payload, s.opts.protocolVersion()); err != nil {
		return s.fail(err)
	}
	if err := protocol.WriteString(&payload, s.target.Host); err != nil {
		return s.fail(err)
	}
	if err := protocol.WriteUnsignedShort(&payload, s.target.Port); err != nil {
		return s.fail(err)
	}
	if err := protocol.WriteVarInt(&payload, nextStateStatus); err != nil {
		return s.fail(err)
	}

	pk := protocol.Packet{ID: handshakePacketID, Payload: payload.Bytes()}
	if err := protocol.WritePacket(s.conn, pk); err != nil {
		return s.degrade(ctx, err)
	}
	return StateHandshakeSent
}

func (s *Session) sendStatusRequest(ctx context.Context) State {
	pk := protocol.Packet{ID: statusRequestPacketID}
	if err := protocol.WritePacket(s.conn, pk); err != nil {
		return s.degrade(ctx, err)
	}
	return StateStatusRequested
}

func (s *Session) readStatus(ctx context.Context) State {
	pk, err := protocol.ReadPacket(s.br)
	if err != nil {
		return s.degrade(ctx, err)
	}
	if pk.ID != statusResponseID {
		return s.degrade(ctx, fmt.Errorf("unexpected packet id %#x", pk.ID))
	}

	body, err := protocol.ReadString(bytes.NewReader(pk.Payload))
	if err != nil {
		return s.degrade(ctx, err)
	}
	resp, err := status.Decode([]byte(body))
	if err != nil {
		return s.degrade(ctx, err)
	}

	if !s.opts.SkipLatency {
		resp.Latency = s.measureLatency()
	}

	s.resp = resp
	return StateStatusReceived
}

// measureLatency sends the 0x01 ping and times the pong. Servers that
// drop the connection here do not fail the query.
func (s *Session) measureLatency() time.Duration {
	var payload bytes.Buffer
	start := time.Now()
	if err := protocol.WriteLong(&payload, start.UnixMilli()); err != nil {
		return 0
	}
	if err := protocol.WritePacket(s.conn, protocol.Packet{ID: pingPacketID, Payload: payload.Bytes()}); err != nil {
		return 0
	}
	pk, err := protocol.ReadPacket(s.br)
	if err != nil || pk.ID != pongPacketID {
		return 0
	}
	return time.Since(start)
}

// degrade routes a modern-exchange failure onto the legacy path, unless
// the failure was the overall deadline, which stays fatal.
func (s *Session) degrade(ctx context.Context, err error) State {
	if isTimeout(ctx, err) {
		return s.fail(fmt.Errorf("%w: %w", ErrTimeout, err))
	}
	s.close()
	return StateLegacyFallback
}

// legacyExchange reconnects and speaks the pre-1.7 ping: the raw 0xFE 0x01
// probe answered by a kick packet carrying a UTF-16BE status string.
func (s *Session) legacyExchange(ctx context.Context) State {
	conn, err := s.opts.dial()(ctx, "tcp", s.target.Addr())
	if err != nil {
		if isTimeout(ctx, err) {
			return s.fail(fmt.Errorf("%w: %w", ErrTimeout, err))
		}
		return s.fail(fmt.Errorf("%w: %w", ErrConnect, err))
	}
	s.conn = conn
	s.br = bufio.NewReader(conn)
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if _, err := conn.Write(legacyPing); err != nil {
		return s.legacyFail(ctx, err)
	}

	payload, err := s.readLegacyResponse()
	if err != nil {
		return s.legacyFail(ctx, err)
	}

	resp, err := status.ParseLegacy(payload)
	if err != nil {
		return s.fail(fmt.Errorf("%w: %w", ErrProtocol, err))
	}
	s.resp = resp
	return StateLegacyReceived
}

// readLegacyResponse reads the kick packet: 0xFF, a big-endian code-unit
// count, then that many UTF-16BE units.
func (s *Session) readLegacyResponse() (string, error) {
	id, err := s.br.ReadByte()
	if err != nil {
		return "", err
	}
	if id != legacyKickID {
		return "", fmt.Errorf("unexpected legacy packet id %#x", id)
	}

	units, err := protocol.ReadUnsignedShort(s.br)
	if err != nil {
		return "", err
	}

	raw := make([]byte, int(units)*2)
	if _, err := io.ReadFull(s.br, raw); err != nil {
		return "", err
	}

	codes := make([]uint16, units)
	for i := range codes {
		codes[i] = uint16(raw[2*i])<<8 | uint16(raw[2*i+1])
	}
	return string(utf16.Decode(codes)), nil
}

func (s *Session) legacyFail(ctx context.Context, err error) State {
	if isTimeout(ctx, err) {
		return s.fail(fmt.Errorf("%w: %w", ErrTimeout, err))
	}
	return s.fail(fmt.Errorf("%w: %w", ErrProtocol, err))
}

func (s *Session) fail(err error) State {
	s.err = err
	return StateFailed
}

func (s *Session) close() {
	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
		s.br = nil
	}
}
