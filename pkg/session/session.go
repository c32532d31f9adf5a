package session

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bardasz/etp/pkg/capture"
	"github.com/bardasz/etp/pkg/etperr"
	"github.com/bardasz/etp/pkg/messages"
	"github.com/bardasz/etp/pkg/protocol"
	"github.com/bardasz/etp/pkg/schema"
)

const tracerName = "github.com/bardasz/etp/pkg/session"

// Session is one ETP connection.
type Session struct {
	transport Transport
	registry  *schema.Registry
	logger    *slog.Logger
	metrics   *Metrics
	tracer    trace.Tracer
	recorder  capture.Recorder
	now       func() time.Time
	ctx       context.Context

	sentMsgID int64 // last id sent
	rcvMsgID  int64 // last id received
	sessionID messages.Uuid

	open             bool
	gzip             bool
	compressAll      bool
	extensionAllowed bool
	closed           bool

	requestSession *messages.RequestSession
	openSession    *messages.OpenSession
	lastExtension  *messages.MessageHeaderExtension
}

// Option configures a Session.
type Option func(*Session)

// WithRegistry sets the schema registry. Default: schema.Default().
func WithRegistry(r *schema.Registry) Option {
	return func(s *Session) {
		s.registry = r
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithMetrics records frame counters into m.
func WithMetrics(m *Metrics) Option {
	return func(s *Session) {
		s.metrics = m
	}
}

// WithTracer sets the tracer. Default: the global OpenTelemetry provider.
func WithTracer(t trace.Tracer) Option {
	return func(s *Session) {
		s.tracer = t
	}
}

// WithRecorder copies every frame, in both directions, to r.
func WithRecorder(r capture.Recorder) Option {
	return func(s *Session) {
		s.recorder = r
	}
}

// WithCompressAll sets the local policy of compressing every message once
// gzip is negotiated. Default: true.
func WithCompressAll(all bool) Option {
	return func(s *Session) {
		s.compressAll = all
	}
}

// WithClock overrides time.Now for Pong timestamps and transcripts.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithContext sets the parent context of the session's spans.
func WithContext(ctx context.Context) Option {
	return func(s *Session) {
		s.ctx = ctx
	}
}

// New creates an unopened session over t.
func New(t Transport, opts ...Option) *Session {
	s := &Session{
		transport:   t,
		compressAll: true,
		now:         time.Now,
		ctx:         context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = schema.Default()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	return s
}

// SetSessionOpen records the negotiated session parameters and marks the
// session open.
func (s *Session) SetSessionOpen(gzip, compressAll, extensionAllowed bool, sessionID messages.Uuid) {
	s.gzip = gzip
	s.compressAll = compressAll
	s.extensionAllowed = extensionAllowed
	s.sessionID = sessionID
	s.open = true

	s.logger.Debug("etp session open",
		"session_id", sessionID.String(),
		"gzip", gzip,
		"compress_all", compressAll,
		"extensions", extensionAllowed)
}

// SetHandshakeMessages keeps the RequestSession sent and the OpenSession
// received for later reference.
func (s *Session) SetHandshakeMessages(req *messages.RequestSession, open *messages.OpenSession) {
	s.requestSession = req
	s.openSession = open
}

// SendAck acknowledges the message with id correlationID.
// The Acknowledge frame carries a header and no body.
func (s *Session) SendAck(correlationID int64) error {
	flags := protocol.DefaultFlags()
	flags.Compress = false

	s.sentMsgID += 2
	hdr := protocol.NewHeader(protocol.CoreAcknowledge, s.sentMsgID, correlationID, flags)

	_, span := s.startSpan("etp.send", hdr)
	defer span.End()

	frame, err := s.registry.SerializeHeader(hdr)
	if err != nil {
		s.fail(span, "ack", err)
		return err
	}
	if err := s.write(hdr, frame); err != nil {
		s.fail(span, "ack", err)
		return err
	}
	s.metrics.ackSent()
	return nil
}

// SendMessage frames and writes one message and returns its message id.
//
// body is a messages.Message or a goavro native record for key. The caller's
// flags are adjusted before sending:
//   - compression is cleared unless gzip was negotiated
//   - compression is set when gzip was negotiated and the session compresses all
//   - compression is cleared for Core, ProtocolException and Acknowledge
//   - the extension flag is set only when ext is given and the peer allows
//     extensions; otherwise ext is dropped
func (s *Session) SendMessage(body any, key protocol.Key, correlationID int64, flags protocol.MessageHeaderFlags, ext *messages.MessageHeaderExtension) (int64, error) {
	flags = s.outgoingFlags(key, flags, ext != nil)

	s.sentMsgID += 2
	hdr := protocol.NewHeader(key, s.sentMsgID, correlationID, flags)

	_, span := s.startSpan("etp.send", hdr)
	defer span.End()

	frame, err := EncodeFrame(s.registry, hdr, body, ext)
	if err != nil {
		s.fail(span, "send", err)
		return 0, err
	}
	if err := s.write(hdr, frame); err != nil {
		s.fail(span, "send", err)
		return 0, err
	}
	return hdr.MessageID, nil
}

// Send is SendMessage for a typed message with default flags, no
// correlation and no extension.
func (s *Session) Send(m messages.Message) (int64, error) {
	return s.SendMessage(m, m.MessageKey(), 0, protocol.DefaultFlags(), nil)
}

func (s *Session) outgoingFlags(key protocol.Key, flags protocol.MessageHeaderFlags, hasExt bool) protocol.MessageHeaderFlags {
	if !s.gzip {
		flags.Compress = false
	}
	if s.compressAll && s.gzip {
		flags.Compress = true
	}
	if key.NeverCompressed() {
		flags.Compress = false
	}
	flags.Extension = hasExt && s.extensionAllowed
	return flags
}

func (s *Session) write(hdr protocol.MessageHeader, frame []byte) error {
	name := s.name(hdr.Key())
	if err := s.transport.WriteMessage(BinaryMessage, frame); err != nil {
		return etperr.New("E200").WithDetailf("write %s", name).Wrap(err)
	}
	s.metrics.sent(name, len(frame))
	s.record(capture.Sent, hdr, name, frame)
	s.logger.Debug("etp send",
		"message", name,
		"id", hdr.MessageID,
		"correlation_id", hdr.CorrelationID,
		"flags", hdr.MessageFlags,
		"bytes", len(frame))
	return nil
}

// ReadMessage returns the next message for the caller.
//
// Core.Ping is answered with a Pong and never returned. When the sender asks
// for an acknowledgement one is sent before the message is returned. Bodies
// without a typed model come back as *messages.Raw.
func (s *Session) ReadMessage() (protocol.MessageHeader, messages.Message, error) {
	for {
		hdr, msg, err := s.readOne()
		if err != nil {
			return protocol.MessageHeader{}, nil, err
		}

		if hdr.Key() == protocol.CorePing {
			pong := &messages.Pong{CurrentDateTime: protocol.TimeToETP(s.now())}
			if _, err := s.SendMessage(pong, protocol.CorePong, 0, protocol.DefaultFlags(), nil); err != nil {
				return protocol.MessageHeader{}, nil, err
			}
			s.metrics.pingAnswered()
			continue
		}

		if hdr.Flags().ReqAck {
			if err := s.SendAck(hdr.MessageID); err != nil {
				return protocol.MessageHeader{}, nil, err
			}
		}
		return hdr, msg, nil
	}
}

func (s *Session) readOne() (protocol.MessageHeader, messages.Message, error) {
	_, span := s.tracer.Start(s.ctx, "etp.receive", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	mt, data, err := s.transport.ReadMessage()
	if err != nil {
		err = etperr.New("E200").WithDetail("read").Wrap(err)
		s.fail(span, "read", err)
		return protocol.MessageHeader{}, nil, err
	}
	if mt != BinaryMessage {
		err := etperr.New("E301").WithDetailf("websocket message type %d", mt)
		s.fail(span, "read", err)
		return protocol.MessageHeader{}, nil, err
	}

	hdr, rest, err := s.registry.DeserializeHeader(data)
	if err != nil {
		s.fail(span, "read", err)
		return protocol.MessageHeader{}, nil, err
	}
	s.rcvMsgID = hdr.MessageID

	name := s.name(hdr.Key())
	span.SetName("etp.receive " + name)
	span.SetAttributes(headerAttributes(hdr)...)
	s.metrics.received(name, len(data))
	s.record(capture.Received, hdr, name, data)
	s.logger.Debug("etp receive",
		"message", name,
		"id", hdr.MessageID,
		"correlation_id", hdr.CorrelationID,
		"flags", hdr.MessageFlags,
		"bytes", len(data))

	msg, err := s.decodeBody(hdr, rest)
	if err != nil {
		s.fail(span, "read", err)
		return protocol.MessageHeader{}, nil, err
	}
	return hdr, msg, nil
}

func (s *Session) decodeBody(hdr protocol.MessageHeader, rest []byte) (messages.Message, error) {
	ext, native, err := decodePayload(s.registry, hdr, rest)
	if err != nil {
		return nil, err
	}
	s.lastExtension = ext
	return messages.Decode(hdr.Key(), native)
}

// Close ends the session. It never fails: when the transport can still
// write, a close handshake is started and reads are drained until the
// transport reports an error. The transport is released in every case.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	defer s.release()

	if !s.transport.CanWrite() {
		return
	}
	if err := s.transport.CloseHandshake(); err != nil {
		s.logger.Warn("etp close handshake failed", "error", err)
		return
	}
	for {
		if _, _, err := s.transport.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Session) release() {
	s.open = false
	if err := s.transport.Close(); err != nil {
		s.logger.Debug("etp transport close", "error", err)
	}
}

func (s *Session) record(dir capture.Direction, hdr protocol.MessageHeader, name string, frame []byte) {
	if s.recorder == nil {
		return
	}
	err := s.recorder.Record(capture.Entry{
		Time:      s.now(),
		Direction: dir,
		Header:    hdr,
		Name:      name,
		Frame:     frame,
	})
	if err != nil {
		s.logger.Warn("etp capture failed", "error", err)
	}
}

func (s *Session) name(key protocol.Key) string {
	if n, ok := s.registry.Name(key); ok {
		return n
	}
	return key.String()
}

func (s *Session) startSpan(name string, hdr protocol.MessageHeader) (context.Context, trace.Span) {
	return s.tracer.Start(s.ctx, name+" "+s.name(hdr.Key()),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(headerAttributes(hdr)...),
	)
}

func (s *Session) fail(span trace.Span, op string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.metrics.failed(op)
}

func headerAttributes(hdr protocol.MessageHeader) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int("etp.protocol", int(hdr.Protocol)),
		attribute.Int("etp.message_type", int(hdr.MessageType)),
		attribute.Int64("etp.message_id", hdr.MessageID),
		attribute.Int64("etp.correlation_id", hdr.CorrelationID),
	}
}

// SessionID returns the id assigned by the server.
func (s *Session) SessionID() messages.Uuid { return s.sessionID }

// IsOpen reports whether the handshake completed and the session is not closed.
func (s *Session) IsOpen() bool { return s.open }

// GzipEnabled reports whether gzip body compression was negotiated.
func (s *Session) GzipEnabled() bool { return s.gzip }

// CompressAll reports the local compress-all policy.
func (s *Session) CompressAll() bool { return s.compressAll }

// ExtensionAllowed reports whether header extensions are sent.
func (s *Session) ExtensionAllowed() bool { return s.extensionAllowed }

// SentMessageID returns the id of the last message sent.
func (s *Session) SentMessageID() int64 { return s.sentMsgID }

// ReceivedMessageID returns the id of the last message read.
func (s *Session) ReceivedMessageID() int64 { return s.rcvMsgID }

// Registry returns the schema registry used by the session.
func (s *Session) Registry() *schema.Registry { return s.registry }

// RequestSessionMsg returns the RequestSession sent during the handshake.
func (s *Session) RequestSessionMsg() *messages.RequestSession { return s.requestSession }

// OpenSessionMsg returns the OpenSession received during the handshake.
func (s *Session) OpenSessionMsg() *messages.OpenSession { return s.openSession }

// ReceivedExtension returns the header extension of the last message read,
// or nil.
func (s *Session) ReceivedExtension() *messages.MessageHeaderExtension { return s.lastExtension }
