package session

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/bardasz/etp/pkg/messages"
	"github.com/bardasz/etp/pkg/protocol"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func TestMetrics_RecordsTraffic(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegisterer(reg), WithConstLabels(prometheus.Labels{"endpoint": "test"}))

	flags := protocol.DefaultFlags()
	flags.ReqAck = true
	ping := frame(t, protocol.NewHeader(protocol.CorePing, 1, 0, protocol.DefaultFlags()), &messages.Ping{}, nil)
	closing := frame(t, protocol.NewHeader(protocol.CoreCloseSession, 3, 0, flags), &messages.CloseSession{}, nil)
	tr := newFakeTransport(ping, closing, inbound{mt: TextMessage})
	s := newTestSession(tr, WithMetrics(m))

	if _, _, err := s.ReadMessage(); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.ReadMessage(); err == nil {
		t.Fatal("expected error for text frame")
	}

	if got := metricCounterValue(t, m.pingsAnswered); got != 1 {
		t.Errorf("pings answered = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.acksSent); got != 1 {
		t.Errorf("acks sent = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.framesReceived.WithLabelValues("Core.Ping")); got != 1 {
		t.Errorf("pings received = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.framesSent.WithLabelValues("Core.Pong")); got != 1 {
		t.Errorf("pongs sent = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.errors.WithLabelValues("read")); got != 1 {
		t.Errorf("read errors = %v, want 1", got)
	}
	want := float64(len(ping.data) + len(closing.data))
	if got := metricCounterValue(t, m.bytesReceived); got != want {
		t.Errorf("bytes received = %v, want %v", got, want)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "etp_session_frames_sent_total" {
			found = true
		}
	}
	if !found {
		t.Error("etp_session_frames_sent_total not registered")
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.sent("x", 1)
	m.received("x", 1)
	m.pingAnswered()
	m.ackSent()
	m.failed("send")
}
