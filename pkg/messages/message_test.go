package messages

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/bardasz/etp/pkg/protocol"
	"github.com/bardasz/etp/pkg/schema"
)

// wire encodes m with the default registry and decodes it back through Decode.
func wire(t *testing.T, m Message) Message {
	t.Helper()
	reg := schema.Default()
	data, err := reg.SerializeBody(m.MessageKey(), m.Native())
	if err != nil {
		t.Fatalf("SerializeBody(%T): %v", m, err)
	}
	native, rest, err := reg.DeserializeBody(m.MessageKey(), data)
	if err != nil {
		t.Fatalf("DeserializeBody(%T): %v", m, err)
	}
	if len(rest) != 0 {
		t.Fatalf("trailing bytes after %T: %v", m, rest)
	}
	out, err := Decode(m.MessageKey(), native)
	if err != nil {
		t.Fatalf("Decode(%T): %v", m, err)
	}
	return out
}

func TestRequestSessionRoundTrip(t *testing.T) {
	rs := DefaultRequestSession()
	rs.EndpointCapabilities[CapMaxWebSocketMessagePayloadSize] = LongValue(16777216)

	got, ok := wire(t, rs).(*RequestSession)
	if !ok {
		t.Fatal("Decode did not return *RequestSession")
	}
	if got.ClientInstanceID != rs.ClientInstanceID {
		t.Errorf("ClientInstanceID = %v, want %v", got.ClientInstanceID, rs.ClientInstanceID)
	}
	if len(got.RequestedProtocols) != 3 {
		t.Fatalf("RequestedProtocols = %d", len(got.RequestedProtocols))
	}
	core := got.RequestedProtocols[0]
	if core.Protocol != protocol.ProtocolCore || core.Role != protocol.RoleServer || core.ProtocolVersion != ETP12Version {
		t.Errorf("core protocol = %+v", core)
	}
	if !reflect.DeepEqual(got.SupportedCompression, []string{"gzip"}) {
		t.Errorf("SupportedCompression = %v", got.SupportedCompression)
	}
	if !reflect.DeepEqual(got.SupportedFormats, []string{"xml", "json"}) {
		t.Errorf("SupportedFormats = %v", got.SupportedFormats)
	}
	if n, ok := Long(got.EndpointCapabilities, CapMaxWebSocketMessagePayloadSize); !ok || n != 16777216 {
		t.Errorf("capability = %d, %v", n, ok)
	}
	if got.ApplicationName != DefaultApplicationName {
		t.Errorf("ApplicationName = %q", got.ApplicationName)
	}
}

func TestOpenSessionRoundTrip(t *testing.T) {
	open := &OpenSession{
		ApplicationName:      "store",
		ApplicationVersion:   "2.0",
		ServerInstanceID:     NewUuid(),
		SupportedProtocols:   []SupportedProtocol{NewSupportedProtocol(protocol.ProtocolDiscovery, protocol.RoleStore)},
		SupportedCompression: "gzip",
		SupportedFormats:     []string{"xml"},
		SessionID:            NewUuid(),
		EndpointCapabilities: map[string]DataValue{CapSupportsMessageHeaderExtensions: BooleanValue(true)},
	}
	got, ok := wire(t, open).(*OpenSession)
	if !ok {
		t.Fatal("Decode did not return *OpenSession")
	}
	if got.SessionID != open.SessionID || !got.GzipAccepted() {
		t.Errorf("decoded = %+v", got)
	}
	if !Bool(got.EndpointCapabilities, CapSupportsMessageHeaderExtensions) {
		t.Error("extension capability lost")
	}
}

var protocolExceptionBytes = []byte{
	2, 36, 115, 111, 109, 101, 32, 69, 114, 114, 111, 114, 32, 77, 101, 115,
	115, 97, 103, 101, 234, 3, 0,
}

func TestProtocolExceptionVector(t *testing.T) {
	reg := schema.Default()
	pe := &ProtocolException{Error: &ErrorInfo{Message: "some Error Message", Code: 245}}

	data, err := reg.SerializeBody(pe.MessageKey(), pe.Native())
	if err != nil {
		t.Fatalf("SerializeBody: %v", err)
	}
	if !bytes.Equal(data, protocolExceptionBytes) {
		t.Errorf("SerializeBody = %v, want %v", data, protocolExceptionBytes)
	}

	native, _, err := reg.DeserializeBody(protocol.CoreProtocolException, protocolExceptionBytes)
	if err != nil {
		t.Fatalf("DeserializeBody: %v", err)
	}
	got, err := ProtocolExceptionFromNative(native)
	if err != nil {
		t.Fatalf("ProtocolExceptionFromNative: %v", err)
	}
	if got.Error == nil || *got.Error != *pe.Error || len(got.Errors) != 0 {
		t.Errorf("decoded = %+v", got)
	}
}

func TestProtocolExceptionErrorsOnly(t *testing.T) {
	pe := &ProtocolException{Errors: map[string]ErrorInfo{
		"1": {Message: "not found", Code: 11},
	}}
	got := wire(t, pe).(*ProtocolException)
	if got.Error != nil {
		t.Errorf("Error = %+v, want nil", got.Error)
	}
	if got.Errors["1"] != pe.Errors["1"] {
		t.Errorf("Errors = %+v", got.Errors)
	}
}

func TestDecodeExceptionUnderOtherProtocol(t *testing.T) {
	key := protocol.Key{Protocol: int32(protocol.ProtocolStore), MessageType: protocol.MessageTypeProtocolException}
	native, _, err := schema.Default().DeserializeBody(key, protocolExceptionBytes)
	if err != nil {
		t.Fatalf("DeserializeBody: %v", err)
	}
	m, err := Decode(key, native)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	pe, ok := m.(*ProtocolException)
	if !ok {
		t.Fatalf("Decode returned %T", m)
	}
	if pe.MessageKey() != key {
		t.Errorf("MessageKey = %v, want %v", pe.MessageKey(), key)
	}
}

func TestDecodeRaw(t *testing.T) {
	body := map[string]any{"channelIds": map[string]any{"a": int64(1)}}
	m, err := Decode(protocol.ChannelSubscribeUnsubscribeChannels, body)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	raw, ok := m.(*Raw)
	if !ok {
		t.Fatalf("Decode returned %T", m)
	}
	if raw.MessageKey() != protocol.ChannelSubscribeUnsubscribeChannels || raw.Native()["channelIds"] == nil {
		t.Errorf("raw = %+v", raw)
	}
	if _, err := Decode(protocol.ChannelSubscribeUnsubscribeChannels, 12); err == nil {
		t.Error("expected error for non-record body")
	}
}

func TestAcknowledge(t *testing.T) {
	got := wire(t, &Acknowledge{})
	if got.MessageKey() != protocol.CoreAcknowledge {
		t.Errorf("MessageKey = %v", got.MessageKey())
	}
}

func TestPingPongCloseSession(t *testing.T) {
	if got := wire(t, &Ping{CurrentDateTime: 42}).(*Ping); got.CurrentDateTime != 42 {
		t.Errorf("Ping = %+v", got)
	}
	if got := wire(t, &Pong{CurrentDateTime: 43}).(*Pong); got.CurrentDateTime != 43 {
		t.Errorf("Pong = %+v", got)
	}
	if got := wire(t, &CloseSession{Reason: "bye"}).(*CloseSession); got.Reason != "bye" {
		t.Errorf("CloseSession = %+v", got)
	}
}

func TestAuthorizeRoundTrip(t *testing.T) {
	a := &Authorize{Authorization: "Bearer x", SupplementalAuthorization: map[string]string{"k": "v"}}
	if got := wire(t, a).(*Authorize); !reflect.DeepEqual(got, a) {
		t.Errorf("Authorize = %+v", got)
	}
	ar := &AuthorizeResponse{Success: true, Challenges: []string{"c"}}
	if got := wire(t, ar).(*AuthorizeResponse); !reflect.DeepEqual(got, ar) {
		t.Errorf("AuthorizeResponse = %+v", got)
	}
}

func TestDiscoveryRoundTrip(t *testing.T) {
	status := StatusActive
	req := NewGetResources("eml:///", ScopeTargetsOrSelf)
	req.ActiveStatusFilter = &status
	req.StoreLastWriteFilter = ptr(int64(99))

	got := wire(t, req).(*GetResources)
	if got.Context.URI != "eml:///" || got.Scope != ScopeTargetsOrSelf {
		t.Errorf("GetResources = %+v", got)
	}
	if got.ActiveStatusFilter == nil || *got.ActiveStatusFilter != StatusActive {
		t.Errorf("ActiveStatusFilter = %v", got.ActiveStatusFilter)
	}
	if got.StoreLastWriteFilter == nil || *got.StoreLastWriteFilter != 99 {
		t.Errorf("StoreLastWriteFilter = %v", got.StoreLastWriteFilter)
	}

	resp := &GetResourcesResponse{Resources: []*Resource{{
		URI:          "eml:///dataspace('demo')/witsml20.Well(1)",
		Name:         "Well 1",
		SourceCount:  ptr(int32(3)),
		LastChanged:  1,
		ActiveStatus: StatusInactive,
		CustomData:   map[string]DataValue{"owner": StringValue("ops")},
	}}}
	gotResp := wire(t, resp).(*GetResourcesResponse)
	if len(gotResp.Resources) != 1 {
		t.Fatalf("resources = %d", len(gotResp.Resources))
	}
	res := gotResp.Resources[0]
	if res.Name != "Well 1" || res.SourceCount == nil || *res.SourceCount != 3 || res.TargetCount != nil {
		t.Errorf("resource = %+v", res)
	}
	if res.CustomData["owner"] != StringValue("ops") {
		t.Errorf("customData = %v", res.CustomData)
	}
}

func TestEdgeNative(t *testing.T) {
	e := &Edge{SourceURI: "a", TargetURI: "b", RelationshipKind: RelationshipPrimary}
	got, err := EdgeFromNative(e.Native())
	if err != nil {
		t.Fatalf("EdgeFromNative: %v", err)
	}
	if got.SourceURI != "a" || got.TargetURI != "b" || got.RelationshipKind != RelationshipPrimary {
		t.Errorf("Edge = %+v", got)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	req := &GetDataObjects{URIs: map[string]string{"1": "eml:///a"}}
	got := wire(t, req).(*GetDataObjects)
	if got.Format != "xml" || got.URIs["1"] != "eml:///a" {
		t.Errorf("GetDataObjects = %+v", got)
	}

	blob := NewUuid()
	resp := &GetDataObjectsResponse{DataObjects: map[string]*DataObject{
		"1": {Resource: &Resource{URI: "eml:///a", Name: "a", ActiveStatus: StatusActive}, Data: []byte("<x/>")},
		"2": {Resource: &Resource{URI: "eml:///b", Name: "b", ActiveStatus: StatusActive}, BlobID: &blob},
	}}
	gotResp := wire(t, resp).(*GetDataObjectsResponse)
	if string(gotResp.DataObjects["1"].Data) != "<x/>" || gotResp.DataObjects["1"].Format != "xml" {
		t.Errorf("object 1 = %+v", gotResp.DataObjects["1"])
	}
	if b := gotResp.DataObjects["2"].BlobID; b == nil || *b != blob {
		t.Errorf("object 2 blob = %v", b)
	}
}

func TestTransactionRoundTrip(t *testing.T) {
	id := NewUuid()
	start := wire(t, &StartTransaction{ReadOnly: true}).(*StartTransaction)
	if !start.ReadOnly || !reflect.DeepEqual(start.DataspaceURIs, []string{""}) {
		t.Errorf("StartTransaction = %+v", start)
	}

	commit := wire(t, &CommitTransaction{TransactionUUID: id}).(*CommitTransaction)
	if commit.TransactionUUID != id {
		t.Errorf("CommitTransaction = %+v", commit)
	}
	rollback := wire(t, &RollbackTransaction{TransactionUUID: id}).(*RollbackTransaction)
	if rollback.TransactionUUID != id {
		t.Errorf("RollbackTransaction = %+v", rollback)
	}

	result := TransactionResult{TransactionUUID: id, Successful: false, FailureReason: "locked"}
	tests := []Message{
		&StartTransactionResponse{result},
		&CommitTransactionResponse{result},
		&RollbackTransactionResponse{result},
	}
	for _, m := range tests {
		got := wire(t, m)
		if !reflect.DeepEqual(got, m) {
			t.Errorf("%T round trip = %+v", m, got)
		}
	}
}

func TestDataspaceRoundTrip(t *testing.T) {
	req := wire(t, &GetDataspaces{}).(*GetDataspaces)
	if req.StoreLastWriteFilter != nil {
		t.Errorf("GetDataspaces = %+v", req)
	}
	resp := &GetDataspacesResponse{Dataspaces: []*Dataspace{{URI: "eml:///dataspace('a')", Path: "a", StoreCreated: 5}}}
	got := wire(t, resp).(*GetDataspacesResponse)
	if len(got.Dataspaces) != 1 || got.Dataspaces[0].Path != "a" || got.Dataspaces[0].StoreCreated != 5 {
		t.Errorf("GetDataspacesResponse = %+v", got)
	}
}

func TestServerCapabilitiesFromJSON(t *testing.T) {
	doc := []byte(`{
		"applicationName": "store",
		"applicationVersion": "1.0",
		"contactInformation": {"organizationName": "o", "contactName": "c", "contactPhone": "p", "contactEmail": "e"},
		"supportedCompression": ["gzip"],
		"supportedEncodings": ["binary"],
		"supportedFormats": ["xml"],
		"supportedDataObjects": [{"qualifiedType": "witsml20.Well", "dataObjectCapabilities": {}}],
		"supportedProtocols": [{"protocol": 3, "protocolVersion": {"major": 1, "minor": 2, "revision": 0, "patch": 0}, "role": "store", "protocolCapabilities": {}}],
		"endpointCapabilities": {"SupportsMessageHeaderExtensions": {"item": {"boolean": true}}}
	}`)
	native, err := schema.Default().NativeFromJSON(schema.TypeServerCapabilities, doc)
	if err != nil {
		t.Fatalf("NativeFromJSON: %v", err)
	}
	caps, err := ServerCapabilitiesFromNative(native)
	if err != nil {
		t.Fatalf("ServerCapabilitiesFromNative: %v", err)
	}
	if caps.ContactInformation.ContactEmail != "e" || len(caps.SupportedProtocols) != 1 {
		t.Errorf("caps = %+v", caps)
	}
	if caps.SupportedProtocols[0].Protocol != protocol.ProtocolDiscovery {
		t.Errorf("protocol = %v", caps.SupportedProtocols[0].Protocol)
	}
	if !Bool(caps.EndpointCapabilities, CapSupportsMessageHeaderExtensions) {
		t.Error("SupportsMessageHeaderExtensions = false")
	}
}

func TestUuid(t *testing.T) {
	u := NewUuid()
	parsed, err := ParseUuid(u.String())
	if err != nil || parsed != u {
		t.Errorf("ParseUuid(%s) = %v, %v", u, parsed, err)
	}
	if _, err := ParseUuid("nope"); err == nil {
		t.Error("expected parse error")
	}
	if _, err := UuidFromNative([]byte{1, 2}); err == nil {
		t.Error("expected length error")
	}
	if !(Uuid{}).IsZero() || u.IsZero() {
		t.Error("IsZero wrong")
	}
}
