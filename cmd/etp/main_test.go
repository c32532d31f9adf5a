package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/bardasz/etp/internal/config"
	"github.com/bardasz/etp/pkg/capture"
	"github.com/bardasz/etp/pkg/messages"
	"github.com/bardasz/etp/pkg/protocol"
	"github.com/bardasz/etp/pkg/schema"
	"github.com/bardasz/etp/pkg/session"
)

func TestRequestSession(t *testing.T) {
	tests := []struct {
		name      string
		protocols []config.ProtocolConfig
		want      []protocol.Protocol
	}{
		{"default", nil, []protocol.Protocol{protocol.ProtocolCore, protocol.ProtocolDiscovery, protocol.ProtocolStore}},
		{"configured", []config.ProtocolConfig{{Protocol: 3, Role: "store"}}, []protocol.Protocol{protocol.ProtocolCore, protocol.ProtocolDiscovery}},
		{"core is not repeated", []config.ProtocolConfig{{Protocol: 0, Role: "server"}, {Protocol: 4, Role: "store"}}, []protocol.Protocol{protocol.ProtocolCore, protocol.ProtocolStore}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Protocols = tt.protocols
			a := &app{cfg: cfg}

			got := a.requestSession().RequestedProtocols
			if len(got) != len(tt.want) {
				t.Fatalf("got %d protocols, want %d", len(got), len(tt.want))
			}
			for i, p := range got {
				if p.Protocol != tt.want[i] {
					t.Errorf("protocol[%d] = %s, want %s", i, p.Protocol, tt.want[i])
				}
			}
		})
	}
}

func TestGlobalFlagsOverrideConfig(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(config.EnvURL, "")

	g := &globalFlags{url: "wss://store.example.com/etp", user: "alice", logLevel: "debug", noCompress: true}
	cfg, err := g.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.URL != g.url || cfg.User != "alice" || cfg.LogLevel != "debug" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Compress() {
		t.Error("--no-compress should disable compressAll")
	}
}

func TestInspect(t *testing.T) {
	reg := schema.Default()
	hdr := protocol.NewHeader(protocol.DiscoveryGetResources, 2, 0, protocol.DefaultFlags())
	frame, err := session.EncodeFrame(reg, hdr, messages.NewGetResources("eml:///", messages.ScopeTargets), nil)
	if err != nil {
		t.Fatalf("EncodeFrame: %v", err)
	}

	var transcript bytes.Buffer
	enc := json.NewEncoder(&transcript)
	entries := []capture.Entry{
		{Time: time.Now(), Direction: capture.Sent, Header: hdr, Name: "GetResources", Frame: frame},
		{Time: time.Now(), Direction: capture.Received, Header: hdr, Frame: []byte{0x01}},
	}
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			t.Fatal(err)
		}
	}

	var out bytes.Buffer
	if err := inspect(&transcript, &out, reg, true); err != nil {
		t.Fatalf("inspect: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "-> GetResources") || !strings.Contains(lines[0], "id=2") {
		t.Errorf("summary line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "eml:") {
		t.Errorf("body line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "<-") {
		t.Errorf("received line = %q", lines[2])
	}
	if !strings.Contains(lines[3], "!") {
		t.Errorf("undecodable frame should be reported, got %q", lines[3])
	}
}

func TestNoColorFlag(t *testing.T) {
	defer func() { colors = true }()

	cmd := rootCmd()
	cmd.SetArgs([]string{"--no-color", "version", "--short"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if colors {
		t.Error("--no-color left colors on")
	}
	if got := paint("\033[32m", "ok"); got != "ok" {
		t.Errorf("paint = %q", got)
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatalf("Chdir: %v", err)
		}
	})
}
