package main

import (
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bardasz/etp/pkg/client"
	"github.com/bardasz/etp/pkg/etperr"
)

func capabilitiesCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "capabilities",
		Short: "Fetch the server capabilities document",
		Long: `Fetch /.well-known/etp-server-capabilities from the endpoint's host.
No session is opened.

Examples:
  etp capabilities --url wss://store.example.com/etp`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if cfg.URL == "" {
				return etperr.New("E400").WithDetail("no endpoint: set --url or ETP_URL")
			}

			httpClient := &http.Client{Timeout: cfg.TimeoutDuration()}
			caps, err := client.GetServerCapabilities(ctx, httpClient, cfg.URL)
			if err != nil {
				return err
			}

			success("%s %s", caps.ApplicationName, caps.ApplicationVersion)
			info("Contact:     %s <%s>, %s", caps.ContactInformation.ContactName,
				caps.ContactInformation.ContactEmail, caps.ContactInformation.OrganizationName)
			info("Compression: %v", caps.SupportedCompression)
			info("Encodings:   %v", caps.SupportedEncodings)
			info("Formats:     %v", caps.SupportedFormats)
			info("Protocols:")
			for _, p := range caps.SupportedProtocols {
				info("  %-22s v%d.%d  role=%s", p.Protocol, p.ProtocolVersion.Major, p.ProtocolVersion.Minor, p.Role)
			}
			if len(caps.EndpointCapabilities) > 0 {
				info("Endpoint capabilities:")
				names := make([]string, 0, len(caps.EndpointCapabilities))
				for n := range caps.EndpointCapabilities {
					names = append(names, n)
				}
				sort.Strings(names)
				for _, n := range names {
					info("  %s = %v", n, caps.EndpointCapabilities[n])
				}
			}
			info("Data objects: %d types", len(caps.SupportedDataObjects))
			return nil
		},
	}
}
