package session

import (
	"errors"
	"testing"
	"time"

	"github.com/bardasz/etp/pkg/capture"
	"github.com/bardasz/etp/pkg/etperr"
	"github.com/bardasz/etp/pkg/messages"
	"github.com/bardasz/etp/pkg/protocol"
	"github.com/bardasz/etp/pkg/schema"
)

type inbound struct {
	mt   int
	data []byte
	err  error
}

type written struct {
	mt   int
	data []byte
}

// fakeTransport replays queued frames and collects writes.
type fakeTransport struct {
	in       []inbound
	writes   []written
	writeErr error

	canWrite     bool
	handshakeErr error
	handshakes   int
	closes       int
	reads        int
}

func newFakeTransport(in ...inbound) *fakeTransport {
	return &fakeTransport{in: in, canWrite: true}
}

func (f *fakeTransport) ReadMessage() (int, []byte, error) {
	f.reads++
	if len(f.in) == 0 {
		return 0, nil, errors.New("connection closed")
	}
	next := f.in[0]
	f.in = f.in[1:]
	return next.mt, next.data, next.err
}

func (f *fakeTransport) WriteMessage(mt int, data []byte) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.writes = append(f.writes, written{mt: mt, data: append([]byte(nil), data...)})
	return nil
}

func (f *fakeTransport) CanWrite() bool { return f.canWrite }

func (f *fakeTransport) CloseHandshake() error {
	f.handshakes++
	if f.handshakeErr != nil {
		return f.handshakeErr
	}
	f.canWrite = false
	return nil
}

func (f *fakeTransport) Close() error {
	f.closes++
	return nil
}

type fakeRecorder struct {
	entries []capture.Entry
}

func (r *fakeRecorder) Record(e capture.Entry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *fakeRecorder) Close() error { return nil }

var testClock = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestSession(t *fakeTransport, opts ...Option) *Session {
	opts = append([]Option{WithClock(func() time.Time { return testClock })}, opts...)
	return New(t, opts...)
}

// frame builds an incoming binary frame.
func frame(t *testing.T, hdr protocol.MessageHeader, body messages.Message, ext *messages.MessageHeaderExtension) inbound {
	t.Helper()
	reg := schema.Default()
	payload, err := reg.SerializeBody(hdr.Key(), body.Native())
	if err != nil {
		t.Fatalf("SerializeBody: %v", err)
	}
	if hdr.Flags().Compress {
		if payload, err = protocol.Compress(payload); err != nil {
			t.Fatal(err)
		}
	}
	data, err := reg.SerializeHeader(hdr)
	if err != nil {
		t.Fatalf("SerializeHeader: %v", err)
	}
	if ext != nil {
		extBytes, err := reg.SerializeType(schema.TypeMessageHeaderExtension, ext.Native())
		if err != nil {
			t.Fatal(err)
		}
		data = append(data, extBytes...)
	}
	return inbound{mt: BinaryMessage, data: append(data, payload...)}
}

// parse decodes a written frame. The body is decompressed when flagged.
func parse(t *testing.T, w written) (protocol.MessageHeader, []byte) {
	t.Helper()
	if w.mt != BinaryMessage {
		t.Fatalf("frame type = %d, want binary", w.mt)
	}
	hdr, rest, err := schema.Default().DeserializeHeader(w.data)
	if err != nil {
		t.Fatalf("DeserializeHeader: %v", err)
	}
	return hdr, rest
}

func decodeBody(t *testing.T, hdr protocol.MessageHeader, rest []byte) messages.Message {
	t.Helper()
	if hdr.Flags().Compress {
		var err error
		if rest, err = protocol.Decompress(rest); err != nil {
			t.Fatalf("Decompress: %v", err)
		}
	}
	native, _, err := schema.Default().DeserializeBody(hdr.Key(), rest)
	if err != nil {
		t.Fatalf("DeserializeBody: %v", err)
	}
	m, err := messages.Decode(hdr.Key(), native)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return m
}

func TestNewDefaults(t *testing.T) {
	s := New(newFakeTransport())
	if s.IsOpen() || s.GzipEnabled() || s.ExtensionAllowed() {
		t.Error("new session should be unopened without gzip or extensions")
	}
	if !s.CompressAll() {
		t.Error("compressAll should default to true")
	}
	if s.SentMessageID() != 0 || s.ReceivedMessageID() != 0 {
		t.Error("message ids should start at 0")
	}
	if s.Registry() != schema.Default() {
		t.Error("default registry not used")
	}
}

func TestSetSessionOpen(t *testing.T) {
	s := New(newFakeTransport())
	id := messages.NewUuid()
	s.SetSessionOpen(true, false, true, id)

	if !s.IsOpen() || !s.GzipEnabled() || s.CompressAll() || !s.ExtensionAllowed() {
		t.Errorf("state = open:%v gzip:%v all:%v ext:%v", s.IsOpen(), s.GzipEnabled(), s.CompressAll(), s.ExtensionAllowed())
	}
	if s.SessionID() != id {
		t.Errorf("SessionID() = %s, want %s", s.SessionID(), id)
	}
}

func TestSendMessage_IDsAdvanceByTwo(t *testing.T) {
	tr := newFakeTransport()
	s := newTestSession(tr)

	for i, want := range []int64{2, 4, 6} {
		id, err := s.SendMessage(&messages.Ping{CurrentDateTime: 1}, protocol.CorePing, 0, protocol.DefaultFlags(), nil)
		if err != nil {
			t.Fatalf("SendMessage #%d: %v", i, err)
		}
		if id != want {
			t.Errorf("SendMessage #%d id = %d, want %d", i, id, want)
		}
		hdr, _ := parse(t, tr.writes[i])
		if hdr.MessageID != want {
			t.Errorf("header id = %d, want %d", hdr.MessageID, want)
		}
	}
	if err := s.SendAck(9); err != nil {
		t.Fatal(err)
	}
	if s.SentMessageID() != 8 {
		t.Errorf("SentMessageID() = %d, want 8", s.SentMessageID())
	}
	if len(tr.writes) != 4 {
		t.Errorf("writes = %d, want 4", len(tr.writes))
	}
}

func TestSendMessage_CompressionPolicy(t *testing.T) {
	discoveryPE := protocol.Key{Protocol: int32(protocol.ProtocolDiscovery), MessageType: 1000}
	storeAck := protocol.Key{Protocol: int32(protocol.ProtocolStore), MessageType: 1001}

	tests := []struct {
		name        string
		gzip        bool
		compressAll bool
		body        messages.Message
		compress    bool
		want        bool
	}{
		{"no gzip clears caller request", false, true, messages.NewGetResources("eml:///", messages.ScopeSelf), true, false},
		{"gzip keeps caller request", true, false, messages.NewGetResources("eml:///", messages.ScopeSelf), true, true},
		{"gzip keeps caller refusal", true, false, messages.NewGetResources("eml:///", messages.ScopeSelf), false, false},
		{"compress all overrides caller", true, true, messages.NewGetResources("eml:///", messages.ScopeSelf), false, true},
		{"core never compressed", true, true, &messages.CloseSession{Reason: "bye"}, true, false},
		{"exception never compressed", true, true, &messages.ProtocolException{Key: discoveryPE, Error: &messages.ErrorInfo{Message: "x", Code: 5}}, true, false},
		{"ack never compressed", true, true, &messages.Acknowledge{Key: storeAck}, true, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := newFakeTransport()
			s := newTestSession(tr)
			s.SetSessionOpen(tc.gzip, tc.compressAll, false, messages.Uuid{})

			flags := protocol.DefaultFlags()
			flags.Compress = tc.compress
			if _, err := s.SendMessage(tc.body, tc.body.MessageKey(), 0, flags, nil); err != nil {
				t.Fatalf("SendMessage: %v", err)
			}

			hdr, rest := parse(t, tr.writes[0])
			if got := hdr.Flags().Compress; got != tc.want {
				t.Errorf("compress = %v, want %v", got, tc.want)
			}
			if hdr.Key() != tc.body.MessageKey() {
				t.Errorf("key = %v, want %v", hdr.Key(), tc.body.MessageKey())
			}
			decodeBody(t, hdr, rest)
		})
	}
}

func TestSendMessage_Extension(t *testing.T) {
	ext := &messages.MessageHeaderExtension{Extension: map[string]messages.DataValue{
		"trace": messages.StringValue("abc"),
	}}

	t.Run("dropped when not allowed", func(t *testing.T) {
		tr := newFakeTransport()
		s := newTestSession(tr)
		s.SetSessionOpen(false, false, false, messages.Uuid{})

		flags := protocol.DefaultFlags()
		flags.Extension = true
		if _, err := s.SendMessage(messages.NewGetResources("eml:///", messages.ScopeSelf), protocol.DiscoveryGetResources, 0, flags, ext); err != nil {
			t.Fatal(err)
		}
		hdr, rest := parse(t, tr.writes[0])
		if hdr.Flags().Extension {
			t.Error("extension flag set")
		}
		decodeBody(t, hdr, rest)
	})

	t.Run("sent when allowed", func(t *testing.T) {
		tr := newFakeTransport()
		s := newTestSession(tr)
		s.SetSessionOpen(false, false, true, messages.Uuid{})

		if _, err := s.SendMessage(messages.NewGetResources("eml:///", messages.ScopeSelf), protocol.DiscoveryGetResources, 0, protocol.DefaultFlags(), ext); err != nil {
			t.Fatal(err)
		}
		hdr, rest := parse(t, tr.writes[0])
		if !hdr.Flags().Extension {
			t.Fatal("extension flag not set")
		}
		native, body, err := schema.Default().DeserializeType(schema.TypeMessageHeaderExtension, rest)
		if err != nil {
			t.Fatal(err)
		}
		got, err := messages.MessageHeaderExtensionFromNative(native)
		if err != nil {
			t.Fatal(err)
		}
		if got.Extension["trace"] != messages.StringValue("abc") {
			t.Errorf("extension = %v", got.Extension)
		}
		decodeBody(t, hdr, body)
	})
}

func TestSendMessage_RawNative(t *testing.T) {
	tr := newFakeTransport()
	s := newTestSession(tr)
	body := map[string]any{"reason": "done"}
	if _, err := s.SendMessage(body, protocol.CoreCloseSession, 0, protocol.DefaultFlags(), nil); err != nil {
		t.Fatal(err)
	}
	hdr, rest := parse(t, tr.writes[0])
	cs, ok := decodeBody(t, hdr, rest).(*messages.CloseSession)
	if !ok || cs.Reason != "done" {
		t.Errorf("body = %#v", cs)
	}
}

func TestSendMessage_UnknownKey(t *testing.T) {
	tr := newFakeTransport()
	s := newTestSession(tr)
	_, err := s.SendMessage(map[string]any{}, protocol.Key{Protocol: 99, MessageType: 99}, 0, protocol.DefaultFlags(), nil)
	if !errors.Is(err, etperr.ErrNoSchema) {
		t.Fatalf("err = %v, want ErrNoSchema", err)
	}
	if len(tr.writes) != 0 {
		t.Error("frame written for unknown key")
	}
}

func TestSendMessage_WriteError(t *testing.T) {
	tr := newFakeTransport()
	tr.writeErr = errors.New("broken pipe")
	s := newTestSession(tr)
	_, err := s.SendMessage(&messages.Ping{}, protocol.CorePing, 0, protocol.DefaultFlags(), nil)
	if !errors.Is(err, etperr.ErrTransport) {
		t.Fatalf("err = %v, want ErrTransport", err)
	}
}

func TestSendAck(t *testing.T) {
	tr := newFakeTransport()
	s := newTestSession(tr)
	if err := s.SendAck(17); err != nil {
		t.Fatal(err)
	}
	hdr, rest := parse(t, tr.writes[0])
	if hdr.Key() != protocol.CoreAcknowledge {
		t.Errorf("key = %v", hdr.Key())
	}
	if hdr.CorrelationID != 17 || hdr.MessageID != 2 {
		t.Errorf("correlation/id = %d/%d, want 17/2", hdr.CorrelationID, hdr.MessageID)
	}
	if len(rest) != 0 {
		t.Errorf("ack carries %d body bytes", len(rest))
	}
	if f := hdr.Flags(); !f.Final || f.Compress {
		t.Errorf("flags = %+v", f)
	}
}

func TestReadMessage_AbsorbsPing(t *testing.T) {
	tr := newFakeTransport(
		frame(t, protocol.NewHeader(protocol.CorePing, 1, 0, protocol.DefaultFlags()), &messages.Ping{CurrentDateTime: 5}, nil),
		frame(t, protocol.NewHeader(protocol.CoreCloseSession, 3, 0, protocol.DefaultFlags()), &messages.CloseSession{Reason: "later"}, nil),
	)
	s := newTestSession(tr)

	hdr, msg, err := s.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if hdr.Key() != protocol.CoreCloseSession || hdr.MessageID != 3 {
		t.Errorf("returned %v id %d", hdr.Key(), hdr.MessageID)
	}
	if cs, ok := msg.(*messages.CloseSession); !ok || cs.Reason != "later" {
		t.Errorf("msg = %#v", msg)
	}
	if s.ReceivedMessageID() != 3 {
		t.Errorf("ReceivedMessageID() = %d", s.ReceivedMessageID())
	}

	if len(tr.writes) != 1 {
		t.Fatalf("writes = %d, want one Pong", len(tr.writes))
	}
	phdr, rest := parse(t, tr.writes[0])
	if phdr.Key() != protocol.CorePong || phdr.CorrelationID != 0 {
		t.Errorf("pong header = %+v", phdr)
	}
	if f := phdr.Flags(); !f.Final || f.Compress || f.ReqAck {
		t.Errorf("pong flags = %+v", f)
	}
	pong := decodeBody(t, phdr, rest).(*messages.Pong)
	if pong.CurrentDateTime != testClock.UnixMilli() {
		t.Errorf("pong time = %d, want %d", pong.CurrentDateTime, testClock.UnixMilli())
	}
}

func TestReadMessage_AcksOnRequest(t *testing.T) {
	flags := protocol.DefaultFlags()
	flags.ReqAck = true
	flags.Compress = false
	tr := newFakeTransport(
		frame(t, protocol.NewHeader(protocol.DiscoveryGetResourcesResponse, 7, 2, flags), &messages.GetResourcesResponse{}, nil),
	)
	s := newTestSession(tr)

	hdr, _, err := s.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	if hdr.MessageID != 7 {
		t.Errorf("id = %d", hdr.MessageID)
	}
	if len(tr.writes) != 1 {
		t.Fatalf("writes = %d, want one ack", len(tr.writes))
	}
	ack, _ := parse(t, tr.writes[0])
	if ack.Key() != protocol.CoreAcknowledge || ack.CorrelationID != 7 {
		t.Errorf("ack header = %+v", ack)
	}
}

func TestReadMessage_NoAckWithoutRequest(t *testing.T) {
	tr := newFakeTransport(
		frame(t, protocol.NewHeader(protocol.DiscoveryGetResourcesResponse, 7, 2, protocol.MessageHeaderFlags{Final: true}), &messages.GetResourcesResponse{}, nil),
	)
	s := newTestSession(tr)
	if _, _, err := s.ReadMessage(); err != nil {
		t.Fatal(err)
	}
	if len(tr.writes) != 0 {
		t.Errorf("writes = %d, want 0", len(tr.writes))
	}
}

func TestReadMessage_Compressed(t *testing.T) {
	res := &messages.Resource{URI: "eml:///witsml20.Well(abc)", Name: "Well 1", ActiveStatus: messages.StatusActive}
	tr := newFakeTransport(
		frame(t, protocol.NewHeader(protocol.DiscoveryGetResourcesResponse, 9, 2, protocol.DefaultFlags()),
			&messages.GetResourcesResponse{Resources: []*messages.Resource{res}}, nil),
	)
	s := newTestSession(tr)

	_, msg, err := s.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	resp := msg.(*messages.GetResourcesResponse)
	if len(resp.Resources) != 1 || resp.Resources[0].Name != "Well 1" {
		t.Errorf("resources = %+v", resp.Resources)
	}
}

func TestReadMessage_BadGzip(t *testing.T) {
	data, err := schema.Default().SerializeHeader(protocol.NewHeader(protocol.DiscoveryGetResourcesResponse, 9, 2, protocol.DefaultFlags()))
	if err != nil {
		t.Fatal(err)
	}
	tr := newFakeTransport(inbound{mt: BinaryMessage, data: append(data, 1, 2, 3)})
	s := newTestSession(tr)
	if _, _, err := s.ReadMessage(); !errors.Is(err, etperr.ErrCompression) {
		t.Errorf("err = %v, want ErrCompression", err)
	}
}

func TestReadMessage_HeaderOnlyAckWithDefaultFlags(t *testing.T) {
	// final|compress with nothing after the header
	hdr := protocol.NewHeader(protocol.CoreAcknowledge, 3, 2, protocol.ParseFlags(0x0A))
	data, err := schema.Default().SerializeHeader(hdr)
	if err != nil {
		t.Fatal(err)
	}
	tr := newFakeTransport(inbound{mt: BinaryMessage, data: data})
	s := newTestSession(tr)

	got, msg, err := s.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if _, ok := msg.(*messages.Acknowledge); !ok {
		t.Fatalf("msg = %T, want *messages.Acknowledge", msg)
	}
	if got.CorrelationID != 2 || s.ReceivedMessageID() != 3 {
		t.Errorf("correlation/received id = %d/%d, want 2/3", got.CorrelationID, s.ReceivedMessageID())
	}
	if len(tr.writes) != 0 {
		t.Errorf("wrote %d frames in reply to an ack", len(tr.writes))
	}
}

func TestReadMessage_OversizedBody(t *testing.T) {
	data, err := schema.Default().SerializeHeader(protocol.NewHeader(protocol.CoreCloseSession, 5, 0, protocol.DefaultFlags()))
	if err != nil {
		t.Fatal(err)
	}
	bomb, err := protocol.Compress(make([]byte, protocol.MaxMessageSize+1))
	if err != nil {
		t.Fatal(err)
	}
	tr := newFakeTransport(inbound{mt: BinaryMessage, data: append(data, bomb...)})
	s := newTestSession(tr)

	if _, _, err := s.ReadMessage(); !errors.Is(err, etperr.ErrCompression) {
		t.Errorf("err = %v, want ErrCompression", err)
	}
}

func TestReadMessage_Extension(t *testing.T) {
	ext := &messages.MessageHeaderExtension{Extension: map[string]messages.DataValue{"n": messages.LongValue(3)}}
	flags := protocol.DefaultFlags()
	flags.Extension = true
	tr := newFakeTransport(
		frame(t, protocol.NewHeader(protocol.CoreCloseSession, 1, 0, flags), &messages.CloseSession{Reason: "r"}, ext),
	)
	s := newTestSession(tr)

	_, msg, err := s.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	if msg.(*messages.CloseSession).Reason != "r" {
		t.Errorf("msg = %#v", msg)
	}
	got := s.ReceivedExtension()
	if got == nil || got.Extension["n"] != messages.LongValue(3) {
		t.Errorf("ReceivedExtension() = %+v", got)
	}
}

func TestReadMessage_ProtocolException(t *testing.T) {
	key := protocol.Key{Protocol: int32(protocol.ProtocolStore), MessageType: 1000}
	pe := &messages.ProtocolException{Key: key, Error: &messages.ErrorInfo{Message: "not found", Code: 11}}
	tr := newFakeTransport(frame(t, protocol.NewHeader(key, 5, 4, protocol.DefaultFlags()), pe, nil))
	s := newTestSession(tr)

	hdr, msg, err := s.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	got, ok := msg.(*messages.ProtocolException)
	if !ok {
		t.Fatalf("msg = %T", msg)
	}
	if hdr.CorrelationID != 4 || got.Error.Code != 11 || got.MessageKey() != key {
		t.Errorf("exception = %+v under %v", got.Error, got.MessageKey())
	}
}

func TestReadMessage_Errors(t *testing.T) {
	unknown, err := schema.Default().SerializeHeader(protocol.MessageHeader{Protocol: 77, MessageType: 3, MessageID: 1})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		in   inbound
		want error
	}{
		{"text frame", inbound{mt: TextMessage, data: []byte("hi")}, etperr.ErrUnsupportedMessage},
		{"transport error", inbound{err: errors.New("reset")}, etperr.ErrTransport},
		{"truncated header", inbound{mt: BinaryMessage, data: []byte{0}}, etperr.ErrDecode},
		{"unknown key", inbound{mt: BinaryMessage, data: unknown}, etperr.ErrNoSchema},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSession(newFakeTransport(tc.in))
			if _, _, err := s.ReadMessage(); !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestClose(t *testing.T) {
	t.Run("drains after handshake", func(t *testing.T) {
		tr := newFakeTransport(
			inbound{mt: BinaryMessage, data: []byte{1}},
			inbound{mt: BinaryMessage, data: []byte{2}},
		)
		s := newTestSession(tr)
		s.SetSessionOpen(false, false, false, messages.Uuid{})
		s.Close()

		if tr.handshakes != 1 || tr.closes != 1 {
			t.Errorf("handshakes/closes = %d/%d", tr.handshakes, tr.closes)
		}
		if tr.reads != 3 {
			t.Errorf("reads = %d, want 3", tr.reads)
		}
		if s.IsOpen() {
			t.Error("session still open")
		}
	})

	t.Run("already closed transport", func(t *testing.T) {
		tr := newFakeTransport()
		tr.canWrite = false
		s := newTestSession(tr)
		s.Close()
		if tr.handshakes != 0 || tr.reads != 0 {
			t.Errorf("handshakes/reads = %d/%d", tr.handshakes, tr.reads)
		}
	})

	t.Run("handshake error", func(t *testing.T) {
		tr := newFakeTransport()
		tr.handshakeErr = errors.New("write failed")
		s := newTestSession(tr)
		s.Close()
		if tr.reads != 0 || tr.closes != 1 {
			t.Errorf("reads/closes = %d/%d", tr.reads, tr.closes)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		tr := newFakeTransport()
		s := newTestSession(tr)
		s.Close()
		s.Close()
		if tr.handshakes != 1 || tr.closes != 1 {
			t.Errorf("handshakes/closes = %d/%d", tr.handshakes, tr.closes)
		}
	})
}

func TestRecorder(t *testing.T) {
	rec := &fakeRecorder{}
	tr := newFakeTransport(
		frame(t, protocol.NewHeader(protocol.CorePing, 1, 0, protocol.DefaultFlags()), &messages.Ping{}, nil),
		frame(t, protocol.NewHeader(protocol.CoreCloseSession, 3, 0, protocol.DefaultFlags()), &messages.CloseSession{}, nil),
	)
	s := newTestSession(tr, WithRecorder(rec))
	if _, _, err := s.ReadMessage(); err != nil {
		t.Fatal(err)
	}

	want := []struct {
		dir  capture.Direction
		name string
	}{
		{capture.Received, "Core.Ping"},
		{capture.Sent, "Core.Pong"},
		{capture.Received, "Core.CloseSession"},
	}
	if len(rec.entries) != len(want) {
		t.Fatalf("entries = %d, want %d", len(rec.entries), len(want))
	}
	for i, w := range want {
		e := rec.entries[i]
		if e.Direction != w.dir || e.Name != w.name {
			t.Errorf("entry %d = %s %s, want %s %s", i, e.Direction, e.Name, w.dir, w.name)
		}
		if !e.Time.Equal(testClock) || len(e.Frame) == 0 {
			t.Errorf("entry %d time/frame = %v/%d", i, e.Time, len(e.Frame))
		}
	}
}

func TestSend(t *testing.T) {
	tr := newFakeTransport()
	s := newTestSession(tr)
	id, err := s.Send(&messages.CloseSession{Reason: "x"})
	if err != nil || id != 2 {
		t.Fatalf("Send = %d, %v", id, err)
	}
	hdr, _ := parse(t, tr.writes[0])
	if hdr.Key() != protocol.CoreCloseSession || !hdr.Flags().Final {
		t.Errorf("header = %+v", hdr)
	}
}

func TestHandshakeMessages(t *testing.T) {
	s := New(newFakeTransport())
	req := messages.DefaultRequestSession()
	open := &messages.OpenSession{ApplicationName: "store"}
	s.SetHandshakeMessages(req, open)
	if s.RequestSessionMsg() != req || s.OpenSessionMsg() != open {
		t.Error("handshake messages not kept")
	}
}
