package schema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/linkedin/goavro/v2"

	"github.com/bardasz/etp/pkg/etperr"
	"github.com/bardasz/etp/pkg/protocol"
)

// Well-known type names outside the message space.
const (
	TypeMessageHeaderExtension = "Energistics.Etp.v12.Datatypes.MessageHeaderExtension"
	TypeServerCapabilities     = "Energistics.Etp.v12.Datatypes.ServerCapabilities"
	TypeDataValue              = "Energistics.Etp.v12.Datatypes.DataValue"
)

const (
	headerFile      = "header.avsc"
	catalogSuffix   = ".avsc.json"
	protocolPrefix  = "Energistics.Etp.v12.Protocol."
	attrProtocol    = "protocol"
	attrMessageType = "messageType"
)

// Schema is one named definition of the catalog.
type Schema struct {
	// FullName is the Avro full name, e.g. Energistics.Etp.v12.Protocol.Core.Ping.
	FullName string

	// Key is set for protocol messages.
	Key       protocol.Key
	IsMessage bool

	codec *goavro.Codec
}

// Codec returns the goavro codec, or nil for enums and fixed types.
func (s *Schema) Codec() *goavro.Codec {
	return s.codec
}

// Registry maps message keys to compiled Avro codecs.
// A Registry is read-only after construction and safe for concurrent use.
type Registry struct {
	header  *goavro.Codec
	schemas []*Schema
	byName  map[string]int
	byKey   map[protocol.Key]int
	names   map[protocol.Key]string
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide registry built from the embedded catalog.
// It is built on first use and shared by all sessions.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = MustNew()
	})
	return defaultReg
}

// New builds a registry from the embedded catalog.
func New() (*Registry, error) {
	return Load(CatalogFS())
}

// MustNew is like New but panics on error. Use it at startup only.
func MustNew() *Registry {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Load builds a registry from a catalog directory: header.avsc plus every
// *.avsc.json file at the root of fsys.
func Load(fsys fs.FS) (*Registry, error) {
	r := &Registry{
		byName: make(map[string]int),
		byKey:  make(map[protocol.Key]int),
		names:  make(map[protocol.Key]string),
	}

	hdr, err := fs.ReadFile(fsys, headerFile)
	if err != nil {
		return nil, catalogError(headerFile, err)
	}
	r.header, err = goavro.NewCodec(string(hdr))
	if err != nil {
		return nil, catalogError(headerFile, err)
	}

	files, err := fs.Glob(fsys, "*"+catalogSuffix)
	if err != nil {
		return nil, catalogError(".", err)
	}
	sort.Strings(files)

	res := newResolver()
	for _, file := range files {
		if err := r.loadFile(fsys, file, res); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) loadFile(fsys fs.FS, file string, res *resolver) error {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return catalogError(file, err)
	}

	var defs []map[string]any
	if err := json.Unmarshal(data, &defs); err != nil {
		return catalogError(file, err)
	}

	for i, def := range defs {
		full, expanded, err := res.define(def)
		if err != nil {
			return catalogError(fmt.Sprintf("%s[%d]", path.Base(file), i), err)
		}

		s := &Schema{FullName: full}
		if def["type"] == "record" {
			js, err := json.Marshal(expanded)
			if err != nil {
				return catalogError(full, err)
			}
			if s.codec, err = goavro.NewCodec(string(js)); err != nil {
				return catalogError(full, err)
			}
		}

		if key, ok, err := messageKey(full, def); err != nil {
			return catalogError(full, err)
		} else if ok {
			if prev, dup := r.byKey[key]; dup {
				return catalogError(full, fmt.Errorf("key %v already used by %s", key, r.schemas[prev].FullName))
			}
			s.Key = key
			s.IsMessage = true
			r.byKey[key] = len(r.schemas)
			r.names[key] = displayName(full)
		}

		r.byName[full] = len(r.schemas)
		r.schemas = append(r.schemas, s)
	}
	return nil
}

// messageKey extracts the (protocol, messageType) attributes of a message record.
func messageKey(full string, def map[string]any) (protocol.Key, bool, error) {
	if def["type"] != "record" || !strings.HasPrefix(full, protocolPrefix) {
		return protocol.Key{}, false, nil
	}
	p, okP := def[attrProtocol].(string)
	mt, okT := def[attrMessageType].(string)
	if !okP || !okT {
		return protocol.Key{}, false, nil
	}
	pn, err := strconv.ParseInt(p, 10, 32)
	if err != nil {
		return protocol.Key{}, false, fmt.Errorf("protocol attribute: %w", err)
	}
	tn, err := strconv.ParseInt(mt, 10, 32)
	if err != nil {
		return protocol.Key{}, false, fmt.Errorf("messageType attribute: %w", err)
	}
	return protocol.Key{Protocol: int32(pn), MessageType: int32(tn)}, true, nil
}

// displayName turns Energistics.Etp.v12.Protocol.Core.OpenSession into Core.OpenSession.
func displayName(full string) string {
	ns, short := splitName(full)
	_, leaf := splitName(ns)
	return leaf + "." + short
}

func catalogError(where string, err error) error {
	return etperr.New("E103").WithDetail(where).Wrap(err)
}

// Name returns the display name of a message, e.g. "Core.OpenSession".
func (r *Registry) Name(key protocol.Key) (string, bool) {
	n, ok := r.names[key]
	return n, ok
}

// Keys returns every registered message key, sorted by protocol then message type.
func (r *Registry) Keys() []protocol.Key {
	keys := make([]protocol.Key, 0, len(r.byKey))
	for k := range r.byKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Protocol != keys[j].Protocol {
			return keys[i].Protocol < keys[j].Protocol
		}
		return keys[i].MessageType < keys[j].MessageType
	})
	return keys
}

// Schemas returns all definitions in catalog order.
func (r *Registry) Schemas() []*Schema {
	return r.schemas
}

// Lookup returns the definition for an Avro full name.
func (r *Registry) Lookup(fullName string) (*Schema, bool) {
	i, ok := r.byName[fullName]
	if !ok {
		return nil, false
	}
	return r.schemas[i], true
}

// messageCodec finds the codec for key. ProtocolException and Acknowledge
// have one shape in every protocol, so those fall back to the Core schema
// when the protocol does not declare its own.
func (r *Registry) messageCodec(key protocol.Key) (*goavro.Codec, error) {
	if i, ok := r.byKey[key]; ok {
		return r.schemas[i].codec, nil
	}
	if key.IsProtocolException() || key.IsAcknowledge() {
		core := protocol.Key{Protocol: int32(protocol.ProtocolCore), MessageType: key.MessageType}
		if i, ok := r.byKey[core]; ok {
			return r.schemas[i].codec, nil
		}
	}
	return nil, etperr.New("E100").WithDetailf("protocol %d, message type %d", key.Protocol, key.MessageType)
}

func (r *Registry) typeCodec(fullName string) (*goavro.Codec, error) {
	s, ok := r.Lookup(fullName)
	if !ok || s.codec == nil {
		return nil, etperr.New("E100").WithDetail(fullName)
	}
	return s.codec, nil
}

func (r *Registry) label(key protocol.Key) string {
	if n, ok := r.names[key]; ok {
		return n
	}
	return key.String()
}

// SerializeBody encodes a message body as Avro binary.
func (r *Registry) SerializeBody(key protocol.Key, native any) ([]byte, error) {
	return r.AppendBody(nil, key, native)
}

// AppendBody is like SerializeBody but appends to buf.
func (r *Registry) AppendBody(buf []byte, key protocol.Key, native any) ([]byte, error) {
	c, err := r.messageCodec(key)
	if err != nil {
		return nil, err
	}
	out, err := c.BinaryFromNative(buf, native)
	if err != nil {
		return nil, etperr.New("E101").WithDetail(r.label(key)).Wrap(err)
	}
	return out, nil
}

// DeserializeBody decodes a message body and returns the bytes that follow it.
func (r *Registry) DeserializeBody(key protocol.Key, data []byte) (any, []byte, error) {
	c, err := r.messageCodec(key)
	if err != nil {
		return nil, nil, err
	}
	native, rest, err := c.NativeFromBinary(data)
	if err != nil {
		return nil, nil, etperr.New("E102").WithDetail(r.label(key)).Wrap(err)
	}
	return native, rest, nil
}

// SerializeHeader encodes a MessageHeader.
func (r *Registry) SerializeHeader(h protocol.MessageHeader) ([]byte, error) {
	return r.AppendHeader(nil, h)
}

// AppendHeader is like SerializeHeader but appends to buf.
func (r *Registry) AppendHeader(buf []byte, h protocol.MessageHeader) ([]byte, error) {
	out, err := r.header.BinaryFromNative(buf, map[string]any{
		"protocol":      h.Protocol,
		"messageType":   h.MessageType,
		"correlationId": h.CorrelationID,
		"messageId":     h.MessageID,
		"messageFlags":  h.MessageFlags,
	})
	if err != nil {
		return nil, etperr.New("E101").WithDetail("MessageHeader").Wrap(err)
	}
	return out, nil
}

// DeserializeHeader decodes a MessageHeader from the front of a frame.
// The returned bytes are everything after the header.
func (r *Registry) DeserializeHeader(data []byte) (protocol.MessageHeader, []byte, error) {
	native, rest, err := r.header.NativeFromBinary(data)
	if err != nil {
		return protocol.MessageHeader{}, nil, etperr.New("E102").WithDetail("MessageHeader").Wrap(err)
	}
	m, _ := native.(map[string]any)
	h := protocol.MessageHeader{
		Protocol:      asInt32(m["protocol"]),
		MessageType:   asInt32(m["messageType"]),
		CorrelationID: asInt64(m["correlationId"]),
		MessageID:     asInt64(m["messageId"]),
		MessageFlags:  asInt32(m["messageFlags"]),
	}
	return h, rest, nil
}

// SerializeType encodes a value of any named record of the catalog.
func (r *Registry) SerializeType(fullName string, native any) ([]byte, error) {
	c, err := r.typeCodec(fullName)
	if err != nil {
		return nil, err
	}
	out, err := c.BinaryFromNative(nil, native)
	if err != nil {
		return nil, etperr.New("E101").WithDetail(fullName).Wrap(err)
	}
	return out, nil
}

// DeserializeType decodes a value of a named record and returns the trailing bytes.
func (r *Registry) DeserializeType(fullName string, data []byte) (any, []byte, error) {
	c, err := r.typeCodec(fullName)
	if err != nil {
		return nil, nil, err
	}
	native, rest, err := c.NativeFromBinary(data)
	if err != nil {
		return nil, nil, etperr.New("E102").WithDetail(fullName).Wrap(err)
	}
	return native, rest, nil
}

// NativeFromJSON decodes the Avro JSON encoding of a named record.
func (r *Registry) NativeFromJSON(fullName string, data []byte) (any, error) {
	c, err := r.typeCodec(fullName)
	if err != nil {
		return nil, err
	}
	native, _, err := c.NativeFromTextual(data)
	if err != nil {
		return nil, etperr.New("E102").WithDetail(fullName).Wrap(err)
	}
	return native, nil
}

// BodyJSON renders a decoded message body in the Avro JSON encoding.
func (r *Registry) BodyJSON(key protocol.Key, native any) ([]byte, error) {
	c, err := r.messageCodec(key)
	if err != nil {
		return nil, err
	}
	out, err := c.TextualFromNative(nil, native)
	if err != nil {
		return nil, etperr.New("E101").WithDetail(r.label(key)).Wrap(err)
	}
	return out, nil
}

func asInt32(v any) int32 {
	switch n := v.(type) {
	case int32:
		return n
	case int64:
		return int32(n)
	case int:
		return int32(n)
	}
	return 0
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	}
	return 0
}
