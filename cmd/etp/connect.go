package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bardasz/etp/pkg/client"
	"github.com/bardasz/etp/pkg/messages"
	"github.com/bardasz/etp/pkg/protocol"
	"github.com/bardasz/etp/pkg/session"
)

func connectCmd(g *globalFlags) *cobra.Command {
	var ping int

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Open a session and print what was negotiated",
		Long: `Open an ETP session, print the negotiated protocols and close it.

Examples:
  etp connect --url wss://store.example.com/etp --user reader
  etp connect --ping 3 --log-level debug`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runConnect(ctx, g, ping)
		},
	}

	cmd.Flags().IntVar(&ping, "ping", 0, "Send this many Core.Ping messages and report round trips")

	return cmd
}

func runConnect(ctx context.Context, g *globalFlags, pings int) error {
	a, err := newApp(ctx, g)
	if err != nil {
		return err
	}
	defer a.close()

	s, err := a.dial(ctx)
	if err != nil {
		return err
	}
	defer client.CloseSession(s, "etp connect done")

	printSession(s)

	for i := 0; i < pings; i++ {
		start := time.Now()
		id, err := s.Send(&messages.Ping{CurrentDateTime: protocol.TimeToETP(start)})
		if err != nil {
			return err
		}
		err = a.awaitResponses(s, id, func(hdr protocol.MessageHeader, msg messages.Message) error {
			if pong, ok := msg.(*messages.Pong); ok {
				info("pong %d: %s (server time %s)", i+1, time.Since(start).Round(time.Microsecond),
					protocol.TimeFromETP(pong.CurrentDateTime).Format(time.RFC3339Nano))
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func printSession(s *session.Session) {
	open := s.OpenSessionMsg()
	success("Session %s open", s.SessionID())
	info("Server:      %s %s", open.ApplicationName, open.ApplicationVersion)
	info("Compression: %s (gzip=%v, compressAll=%v)", orNone(open.SupportedCompression), s.GzipEnabled(), s.CompressAll())
	info("Extensions:  %v", s.ExtensionAllowed())
	info("Formats:     %v", open.SupportedFormats)
	info("Protocols:")
	for _, p := range open.SupportedProtocols {
		info("  %-22s %-2d v%d.%d  role=%s", p.Protocol, int32(p.Protocol),
			p.ProtocolVersion.Major, p.ProtocolVersion.Minor, p.Role)
	}
	if n := len(open.SupportedDataObjects); n > 0 {
		info("Data objects: %d supported types", n)
	}
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
