package messages

import (
	"time"

	"github.com/linkedin/goavro/v2"

	"github.com/bardasz/etp/pkg/protocol"
)

// Client defaults announced by DefaultRequestSession.
const (
	DefaultApplicationName    = "etp-go Client Library Application"
	DefaultApplicationVersion = "0.1"
	CompressionGzip           = "gzip"
)

// RequestSession opens the Core handshake. Sent by the client.
type RequestSession struct {
	ApplicationName             string
	ApplicationVersion          string
	ClientInstanceID            Uuid
	RequestedProtocols          []SupportedProtocol
	SupportedDataObjects        []SupportedDataObject
	SupportedCompression        []string
	SupportedFormats            []string
	CurrentDateTime             int64
	EarliestRetainedChangeTime  int64
	ServerAuthorizationRequired bool
	EndpointCapabilities        map[string]DataValue
}

// NewRequestSession returns a RequestSession with the client defaults and
// the given protocols: a random client instance id, gzip offered, xml and
// json formats and timestamps set to now.
func NewRequestSession(protocols ...SupportedProtocol) *RequestSession {
	now := protocol.TimeToETP(time.Now())
	return &RequestSession{
		ApplicationName:            DefaultApplicationName,
		ApplicationVersion:         DefaultApplicationVersion,
		ClientInstanceID:           NewUuid(),
		RequestedProtocols:         protocols,
		SupportedDataObjects:       []SupportedDataObject{},
		SupportedCompression:       []string{CompressionGzip},
		SupportedFormats:           []string{"xml", "json"},
		CurrentDateTime:            now,
		EarliestRetainedChangeTime: now,
		EndpointCapabilities:       map[string]DataValue{},
	}
}

// DefaultRequestSession requests Core as the client, and Discovery and
// Store against a store.
func DefaultRequestSession() *RequestSession {
	return NewRequestSession(
		NewSupportedProtocol(protocol.ProtocolCore, protocol.RoleServer),
		NewSupportedProtocol(protocol.ProtocolDiscovery, protocol.RoleStore),
		NewSupportedProtocol(protocol.ProtocolStore, protocol.RoleStore),
	)
}

func (m *RequestSession) MessageKey() protocol.Key { return protocol.CoreRequestSession }

func (m *RequestSession) Native() map[string]any {
	return map[string]any{
		"applicationName":             m.ApplicationName,
		"applicationVersion":          m.ApplicationVersion,
		"clientInstanceId":            m.ClientInstanceID.Native(),
		"requestedProtocols":          supportedProtocolsNative(m.RequestedProtocols),
		"supportedDataObjects":        supportedDataObjectsNative(m.SupportedDataObjects),
		"supportedCompression":        stringsNative(m.SupportedCompression),
		"supportedFormats":            stringsNative(m.SupportedFormats),
		"currentDateTime":             m.CurrentDateTime,
		"earliestRetainedChangeTime":  m.EarliestRetainedChangeTime,
		"serverAuthorizationRequired": m.ServerAuthorizationRequired,
		"endpointCapabilities":        dataValueMapNative(m.EndpointCapabilities),
	}
}

// RequestSessionFromNative converts a decoded Core.RequestSession body.
func RequestSessionFromNative(v any) (*RequestSession, error) {
	r := newReader("RequestSession", v)
	m := &RequestSession{
		ApplicationName:             r.Str("applicationName"),
		ApplicationVersion:          r.Str("applicationVersion"),
		ClientInstanceID:            r.Uuid("clientInstanceId"),
		RequestedProtocols:          r.supportedProtocols("requestedProtocols"),
		SupportedDataObjects:        r.supportedDataObjects("supportedDataObjects"),
		SupportedCompression:        r.Strings("supportedCompression"),
		SupportedFormats:            r.Strings("supportedFormats"),
		CurrentDateTime:             r.Int64("currentDateTime"),
		EarliestRetainedChangeTime:  r.Int64("earliestRetainedChangeTime"),
		ServerAuthorizationRequired: r.Bool("serverAuthorizationRequired"),
		EndpointCapabilities:        r.DataValueMap("endpointCapabilities"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return m, nil
}

// OpenSession accepts a RequestSession. Sent by the server.
type OpenSession struct {
	ApplicationName            string
	ApplicationVersion         string
	ServerInstanceID           Uuid
	SupportedProtocols         []SupportedProtocol
	SupportedDataObjects       []SupportedDataObject
	SupportedCompression       string
	SupportedFormats           []string
	CurrentDateTime            int64
	EarliestRetainedChangeTime int64
	SessionID                  Uuid
	EndpointCapabilities       map[string]DataValue
}

func (m *OpenSession) MessageKey() protocol.Key { return protocol.CoreOpenSession }

func (m *OpenSession) Native() map[string]any {
	return map[string]any{
		"applicationName":            m.ApplicationName,
		"applicationVersion":         m.ApplicationVersion,
		"serverInstanceId":           m.ServerInstanceID.Native(),
		"supportedProtocols":         supportedProtocolsNative(m.SupportedProtocols),
		"supportedDataObjects":       supportedDataObjectsNative(m.SupportedDataObjects),
		"supportedCompression":       m.SupportedCompression,
		"supportedFormats":           stringsNative(m.SupportedFormats),
		"currentDateTime":            m.CurrentDateTime,
		"earliestRetainedChangeTime": m.EarliestRetainedChangeTime,
		"sessionId":                  m.SessionID.Native(),
		"endpointCapabilities":       dataValueMapNative(m.EndpointCapabilities),
	}
}

// GzipAccepted reports whether the server picked gzip compression.
func (m *OpenSession) GzipAccepted() bool {
	return m.SupportedCompression == CompressionGzip
}

// OpenSessionFromNative converts a decoded Core.OpenSession body.
func OpenSessionFromNative(v any) (*OpenSession, error) {
	r := newReader("OpenSession", v)
	m := &OpenSession{
		ApplicationName:            r.Str("applicationName"),
		ApplicationVersion:         r.Str("applicationVersion"),
		ServerInstanceID:           r.Uuid("serverInstanceId"),
		SupportedProtocols:         r.supportedProtocols("supportedProtocols"),
		SupportedDataObjects:       r.supportedDataObjects("supportedDataObjects"),
		SupportedCompression:       r.Str("supportedCompression"),
		SupportedFormats:           r.Strings("supportedFormats"),
		CurrentDateTime:            r.Int64("currentDateTime"),
		EarliestRetainedChangeTime: r.Int64("earliestRetainedChangeTime"),
		SessionID:                  r.Uuid("sessionId"),
		EndpointCapabilities:       r.DataValueMap("endpointCapabilities"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return m, nil
}

// CloseSession ends the session.
type CloseSession struct {
	Reason string
}

func (m *CloseSession) MessageKey() protocol.Key { return protocol.CoreCloseSession }

func (m *CloseSession) Native() map[string]any {
	return map[string]any{"reason": m.Reason}
}

func CloseSessionFromNative(v any) (*CloseSession, error) {
	r := newReader("CloseSession", v)
	m := &CloseSession{Reason: r.Str("reason")}
	if r.err != nil {
		return nil, r.err
	}
	return m, nil
}

// Authorize carries credentials inside an open session.
type Authorize struct {
	Authorization             string
	SupplementalAuthorization map[string]string
}

func (m *Authorize) MessageKey() protocol.Key { return protocol.CoreAuthorize }

func (m *Authorize) Native() map[string]any {
	return map[string]any{
		"authorization":             m.Authorization,
		"supplementalAuthorization": stringMapNative(m.SupplementalAuthorization),
	}
}

func AuthorizeFromNative(v any) (*Authorize, error) {
	r := newReader("Authorize", v)
	m := &Authorize{
		Authorization:             r.Str("authorization"),
		SupplementalAuthorization: r.StringMap("supplementalAuthorization"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return m, nil
}

type AuthorizeResponse struct {
	Success    bool
	Challenges []string
}

func (m *AuthorizeResponse) MessageKey() protocol.Key { return protocol.CoreAuthorizeResponse }

func (m *AuthorizeResponse) Native() map[string]any {
	return map[string]any{
		"success":    m.Success,
		"challenges": stringsNative(m.Challenges),
	}
}

func AuthorizeResponseFromNative(v any) (*AuthorizeResponse, error) {
	r := newReader("AuthorizeResponse", v)
	m := &AuthorizeResponse{
		Success:    r.Bool("success"),
		Challenges: r.Strings("challenges"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return m, nil
}

// Ping asks the peer for a Pong.
type Ping struct {
	CurrentDateTime int64
}

func (m *Ping) MessageKey() protocol.Key { return protocol.CorePing }

func (m *Ping) Native() map[string]any {
	return map[string]any{"currentDateTime": m.CurrentDateTime}
}

func PingFromNative(v any) (*Ping, error) {
	r := newReader("Ping", v)
	m := &Ping{CurrentDateTime: r.Int64("currentDateTime")}
	if r.err != nil {
		return nil, r.err
	}
	return m, nil
}

// Pong answers a Ping.
type Pong struct {
	CurrentDateTime int64
}

func (m *Pong) MessageKey() protocol.Key { return protocol.CorePong }

func (m *Pong) Native() map[string]any {
	return map[string]any{"currentDateTime": m.CurrentDateTime}
}

func PongFromNative(v any) (*Pong, error) {
	r := newReader("Pong", v)
	m := &Pong{CurrentDateTime: r.Int64("currentDateTime")}
	if r.err != nil {
		return nil, r.err
	}
	return m, nil
}

// ProtocolException reports a failure. Error is absent when only the
// per-item Errors map is used.
type ProtocolException struct {
	// Key is the protocol the exception was sent under. The zero value means Core.
	Key    protocol.Key
	Error  *ErrorInfo
	Errors map[string]ErrorInfo
}

func (m *ProtocolException) MessageKey() protocol.Key {
	if m.Key == (protocol.Key{}) {
		return protocol.CoreProtocolException
	}
	return m.Key
}

func (m *ProtocolException) Native() map[string]any {
	var errInfo any
	if m.Error != nil {
		errInfo = goavro.Union(typeErrorInfo, m.Error.Native())
	}
	errs := make(map[string]any, len(m.Errors))
	for k, e := range m.Errors {
		errs[k] = e.Native()
	}
	return map[string]any{
		"error":  errInfo,
		"errors": errs,
	}
}

// ProtocolExceptionFromNative converts a decoded ProtocolException body.
func ProtocolExceptionFromNative(v any) (*ProtocolException, error) {
	r := newReader("ProtocolException", v)
	m := &ProtocolException{}

	branch, x := r.Union("error")
	if branch == typeErrorInfo {
		info, err := ErrorInfoFromNative(x)
		r.setErr(err)
		m.Error = &info
	}

	if errs := r.Map("errors"); len(errs) > 0 {
		m.Errors = make(map[string]ErrorInfo, len(errs))
		for k, e := range errs {
			info, err := ErrorInfoFromNative(e)
			r.setErr(err)
			m.Errors[k] = info
		}
	}
	if r.err != nil {
		return nil, r.err
	}
	return m, nil
}

// Acknowledge confirms receipt of a message that requested it. It has no fields.
type Acknowledge struct {
	// Key is the protocol the ack was sent under. The zero value means Core.
	Key protocol.Key
}

func (m *Acknowledge) MessageKey() protocol.Key {
	if m.Key == (protocol.Key{}) {
		return protocol.CoreAcknowledge
	}
	return m.Key
}

func (m *Acknowledge) Native() map[string]any {
	return map[string]any{}
}
