package messages

import "github.com/bardasz/etp/pkg/protocol"

// Version is a protocol version.
type Version struct {
	Major    int32
	Minor    int32
	Revision int32
	Patch    int32
}

// ETP12Version is the version every ETP 1.2 protocol is negotiated at.
var ETP12Version = Version{Major: 1, Minor: 2}

// Native returns the native Version record.
func (v Version) Native() map[string]any {
	return map[string]any{
		"major":    v.Major,
		"minor":    v.Minor,
		"revision": v.Revision,
		"patch":    v.Patch,
	}
}

// VersionFromNative converts a decoded Version record.
func VersionFromNative(v any) (Version, error) {
	r := newReader("Version", v)
	out := Version{
		Major:    r.Int32("major"),
		Minor:    r.Int32("minor"),
		Revision: r.Int32("revision"),
		Patch:    r.Int32("patch"),
	}
	return out, r.err
}

// ErrorInfo is one error reported in a ProtocolException.
type ErrorInfo struct {
	Message string
	Code    int32
}

// Native returns the native ErrorInfo record.
func (e ErrorInfo) Native() map[string]any {
	return map[string]any{
		"message": e.Message,
		"code":    e.Code,
	}
}

// ErrorInfoFromNative converts a decoded ErrorInfo record.
func ErrorInfoFromNative(v any) (ErrorInfo, error) {
	r := newReader("ErrorInfo", v)
	out := ErrorInfo{
		Message: r.Str("message"),
		Code:    r.Int32("code"),
	}
	return out, r.err
}

// Contact is the contact block of ServerCapabilities.
type Contact struct {
	OrganizationName string
	ContactName      string
	ContactPhone     string
	ContactEmail     string
}

func (c Contact) Native() map[string]any {
	return map[string]any{
		"organizationName": c.OrganizationName,
		"contactName":      c.ContactName,
		"contactPhone":     c.ContactPhone,
		"contactEmail":     c.ContactEmail,
	}
}

func contactFromNative(v any) (Contact, error) {
	r := newReader("Contact", v)
	out := Contact{
		OrganizationName: r.Str("organizationName"),
		ContactName:      r.Str("contactName"),
		ContactPhone:     r.Str("contactPhone"),
		ContactEmail:     r.Str("contactEmail"),
	}
	return out, r.err
}

// SupportedProtocol announces one protocol and the role played in it.
type SupportedProtocol struct {
	Protocol             protocol.Protocol
	ProtocolVersion      Version
	Role                 string
	ProtocolCapabilities map[string]DataValue
}

// NewSupportedProtocol returns p at ETP12Version with no capabilities.
func NewSupportedProtocol(p protocol.Protocol, role string) SupportedProtocol {
	return SupportedProtocol{Protocol: p, ProtocolVersion: ETP12Version, Role: role}
}

func (p SupportedProtocol) Native() map[string]any {
	return map[string]any{
		"protocol":             int32(p.Protocol),
		"protocolVersion":      p.ProtocolVersion.Native(),
		"role":                 p.Role,
		"protocolCapabilities": dataValueMapNative(p.ProtocolCapabilities),
	}
}

// SupportedProtocolFromNative converts a decoded SupportedProtocol record.
func SupportedProtocolFromNative(v any) (SupportedProtocol, error) {
	r := newReader("SupportedProtocol", v)
	out := SupportedProtocol{
		Protocol:             protocol.Protocol(r.Int32("protocol")),
		Role:                 r.Str("role"),
		ProtocolCapabilities: r.DataValueMap("protocolCapabilities"),
	}
	ver, err := VersionFromNative(r.Record("protocolVersion"))
	r.setErr(err)
	out.ProtocolVersion = ver
	return out, r.err
}

// SupportedDataObject announces a data object type and its capabilities.
type SupportedDataObject struct {
	QualifiedType          string
	DataObjectCapabilities map[string]DataValue
}

func (d SupportedDataObject) Native() map[string]any {
	return map[string]any{
		"qualifiedType":          d.QualifiedType,
		"dataObjectCapabilities": dataValueMapNative(d.DataObjectCapabilities),
	}
}

// SupportedDataObjectFromNative converts a decoded SupportedDataObject record.
func SupportedDataObjectFromNative(v any) (SupportedDataObject, error) {
	r := newReader("SupportedDataObject", v)
	out := SupportedDataObject{
		QualifiedType:          r.Str("qualifiedType"),
		DataObjectCapabilities: r.DataValueMap("dataObjectCapabilities"),
	}
	return out, r.err
}

func supportedProtocolsNative(ps []SupportedProtocol) []any {
	out := make([]any, len(ps))
	for i, p := range ps {
		out[i] = p.Native()
	}
	return out
}

func supportedDataObjectsNative(ds []SupportedDataObject) []any {
	out := make([]any, len(ds))
	for i, d := range ds {
		out[i] = d.Native()
	}
	return out
}

func (r *fieldReader) supportedProtocols(field string) []SupportedProtocol {
	items := r.Array(field)
	out := make([]SupportedProtocol, 0, len(items))
	for _, it := range items {
		p, err := SupportedProtocolFromNative(it)
		if err != nil {
			r.setErr(err)
			return nil
		}
		out = append(out, p)
	}
	return out
}

func (r *fieldReader) supportedDataObjects(field string) []SupportedDataObject {
	items := r.Array(field)
	out := make([]SupportedDataObject, 0, len(items))
	for _, it := range items {
		d, err := SupportedDataObjectFromNative(it)
		if err != nil {
			r.setErr(err)
			return nil
		}
		out = append(out, d)
	}
	return out
}

// Endpoint capability names used by the client.
const (
	CapMaxWebSocketFramePayloadSize    = "MaxWebSocketFramePayloadSize"
	CapMaxWebSocketMessagePayloadSize  = "MaxWebSocketMessagePayloadSize"
	CapSupportsMessageHeaderExtensions = "SupportsMessageHeaderExtensions"
	CapSupportsAlternateRequestUris    = "SupportsAlternateRequestUris"
)

// ServerCapabilities is the document served at
// /.well-known/etp-server-capabilities.
type ServerCapabilities struct {
	ApplicationName      string
	ApplicationVersion   string
	ContactInformation   Contact
	SupportedCompression []string
	SupportedEncodings   []string
	SupportedFormats     []string
	SupportedDataObjects []SupportedDataObject
	SupportedProtocols   []SupportedProtocol
	EndpointCapabilities map[string]DataValue
}

func (c *ServerCapabilities) Native() map[string]any {
	return map[string]any{
		"applicationName":      c.ApplicationName,
		"applicationVersion":   c.ApplicationVersion,
		"contactInformation":   c.ContactInformation.Native(),
		"supportedCompression": stringsNative(c.SupportedCompression),
		"supportedEncodings":   stringsNative(c.SupportedEncodings),
		"supportedFormats":     stringsNative(c.SupportedFormats),
		"supportedDataObjects": supportedDataObjectsNative(c.SupportedDataObjects),
		"supportedProtocols":   supportedProtocolsNative(c.SupportedProtocols),
		"endpointCapabilities": dataValueMapNative(c.EndpointCapabilities),
	}
}

// ServerCapabilitiesFromNative converts a decoded ServerCapabilities record.
func ServerCapabilitiesFromNative(v any) (*ServerCapabilities, error) {
	r := newReader("ServerCapabilities", v)
	out := &ServerCapabilities{
		ApplicationName:      r.Str("applicationName"),
		ApplicationVersion:   r.Str("applicationVersion"),
		SupportedCompression: r.Strings("supportedCompression"),
		SupportedEncodings:   r.Strings("supportedEncodings"),
		SupportedFormats:     r.Strings("supportedFormats"),
		SupportedDataObjects: r.supportedDataObjects("supportedDataObjects"),
		SupportedProtocols:   r.supportedProtocols("supportedProtocols"),
		EndpointCapabilities: r.DataValueMap("endpointCapabilities"),
	}
	contact, err := contactFromNative(r.Record("contactInformation"))
	r.setErr(err)
	out.ContactInformation = contact
	if r.err != nil {
		return nil, r.err
	}
	return out, nil
}

// MessageHeaderExtension carries out-of-band values between header and body.
type MessageHeaderExtension struct {
	Extension map[string]DataValue
}

func (e *MessageHeaderExtension) Native() map[string]any {
	return map[string]any{"extension": dataValueMapNative(e.Extension)}
}

// MessageHeaderExtensionFromNative converts a decoded MessageHeaderExtension record.
func MessageHeaderExtensionFromNative(v any) (*MessageHeaderExtension, error) {
	r := newReader("MessageHeaderExtension", v)
	out := &MessageHeaderExtension{Extension: r.DataValueMap("extension")}
	if r.err != nil {
		return nil, r.err
	}
	return out, nil
}

// Bool reports a boolean capability value. Absent or non-boolean values are false.
func Bool(caps map[string]DataValue, name string) bool {
	b, ok := caps[name].(BooleanValue)
	return ok && bool(b)
}

// Long reports an integral capability value.
func Long(caps map[string]DataValue, name string) (int64, bool) {
	switch v := caps[name].(type) {
	case LongValue:
		return int64(v), true
	case IntValue:
		return int64(v), true
	}
	return 0, false
}
