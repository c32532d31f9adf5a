package client

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/websocket"

	"github.com/bardasz/etp/pkg/etperr"
	"github.com/bardasz/etp/pkg/messages"
	"github.com/bardasz/etp/pkg/protocol"
	"github.com/bardasz/etp/pkg/session"
)

// Payload limits advertised on the upgrade request.
const (
	MaxWebSocketFramePayloadSize   = 4194304
	MaxWebSocketMessagePayloadSize = protocol.MaxMessageSize
)

// Options configures Dial.
type Options struct {
	User     string
	Password string

	// RequestSession is sent to open the session.
	// Default: messages.DefaultRequestSession().
	RequestSession *messages.RequestSession

	// Session options applied to the new session.
	Session []session.Option

	// Dialer used for the upgrade. Default: websocket.DefaultDialer.
	Dialer *websocket.Dialer

	// ReadLimit caps one incoming websocket message.
	// Default: MaxWebSocketMessagePayloadSize.
	ReadLimit int64

	Logger *slog.Logger
}

// Dial connects to etpURL and runs the session handshake.
func Dial(ctx context.Context, etpURL string, opts Options) (*session.Session, error) {
	u, err := url.Parse(etpURL)
	if err != nil {
		return nil, etperr.New("E400").WithDetail(etpURL).Wrap(err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, etperr.New("E400").WithDetailf("%s: scheme must be ws or wss", etpURL)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	dialer := opts.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}

	conn, resp, err := dialer.DialContext(ctx, u.String(), UpgradeHeader(opts.User, opts.Password))
	if err != nil {
		detail := "dial " + u.Redacted()
		if resp != nil {
			detail += ": " + resp.Status
		}
		return nil, etperr.New("E200").WithDetail(detail).Wrap(err)
	}
	limit := opts.ReadLimit
	if limit <= 0 {
		limit = MaxWebSocketMessagePayloadSize
	}
	conn.SetReadLimit(limit)
	logger.Info("etp connected", "url", u.Redacted(), "subprotocol", conn.Subprotocol())

	sessOpts := append([]session.Option{
		session.WithLogger(logger),
		session.WithContext(context.WithoutCancel(ctx)),
	}, opts.Session...)
	s := session.New(session.NewWebSocketTransport(conn), sessOpts...)

	req := opts.RequestSession
	if req == nil {
		req = messages.DefaultRequestSession()
	}
	if err := handshake(s, req); err != nil {
		return nil, err
	}
	logger.Info("etp session open",
		"session_id", s.SessionID().String(),
		"server", s.OpenSessionMsg().ApplicationName,
		"gzip", s.GzipEnabled())
	return s, nil
}

// UpgradeHeader returns the request headers of the websocket upgrade.
func UpgradeHeader(user, password string) http.Header {
	h := http.Header{}
	h.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(user+":"+password)))
	h.Set("Sec-WebSocket-Protocol", protocol.SubProtocol)
	h.Set("etp-encoding", "binary")
	h.Set("MaxWebSocketFramePayloadSize", strconv.Itoa(MaxWebSocketFramePayloadSize))
	h.Set("MaxWebSocketMessagePayloadSize", strconv.Itoa(MaxWebSocketMessagePayloadSize))
	return h
}

// handshake sends RequestSession and opens s on an OpenSession answer.
// The session is closed on any other outcome.
func handshake(s *session.Session, req *messages.RequestSession) error {
	if _, err := s.SendMessage(req, protocol.CoreRequestSession, 0, protocol.DefaultFlags(), nil); err != nil {
		s.Close()
		return err
	}

	_, msg, err := s.ReadMessage()
	if err != nil {
		s.Close()
		return err
	}

	switch m := msg.(type) {
	case *messages.OpenSession:
		gzip := m.GzipAccepted()
		ext := messages.Bool(m.EndpointCapabilities, messages.CapSupportsMessageHeaderExtensions)
		s.SetSessionOpen(gzip, gzip && s.CompressAll(), ext, m.SessionID)
		s.SetHandshakeMessages(req, m)
		return nil

	case *messages.ProtocolException:
		s.Close()
		return exceptionError(m)

	default:
		s.Close()
		return etperr.New("E301").WithDetailf("handshake answered with %T", msg)
	}
}

// exceptionError converts a received ProtocolException into an error.
// An exception with only the per-item map keeps that map.
func exceptionError(m *messages.ProtocolException) *etperr.ProtocolException {
	var pe *etperr.ProtocolException
	switch {
	case m.Error != nil:
		pe = etperr.NewProtocolException(m.Error.Code, m.Error.Message)
	case len(m.Errors) > 0:
		pe = &etperr.ProtocolException{}
	default:
		return etperr.NewEmptyProtocolException()
	}
	if len(m.Errors) > 0 {
		pe.Errors = make(map[string]etperr.ErrorDetail, len(m.Errors))
		for k, e := range m.Errors {
			pe.Errors[k] = etperr.ErrorDetail{Code: e.Code, Message: e.Message}
		}
	}
	return pe
}

// ExceptionError converts a ProtocolException read from a session into an error.
func ExceptionError(m *messages.ProtocolException) error {
	return exceptionError(m)
}

// CloseSession sends Core.CloseSession and closes s.
func CloseSession(s *session.Session, reason string) {
	if s.IsOpen() {
		_, _ = s.SendMessage(&messages.CloseSession{Reason: reason}, protocol.CoreCloseSession, 0, protocol.DefaultFlags(), nil)
	}
	s.Close()
}
