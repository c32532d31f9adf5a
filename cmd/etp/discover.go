package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bardasz/etp/pkg/client"
	"github.com/bardasz/etp/pkg/etperr"
	"github.com/bardasz/etp/pkg/messages"
	"github.com/bardasz/etp/pkg/protocol"
)

var scopes = map[string]messages.ContextScopeKind{
	"self":          messages.ScopeSelf,
	"sources":       messages.ScopeSources,
	"targets":       messages.ScopeTargets,
	"sourcesOrSelf": messages.ScopeSourcesOrSelf,
	"targetsOrSelf": messages.ScopeTargetsOrSelf,
}

func discoverCmd(g *globalFlags) *cobra.Command {
	var (
		uri    string
		scope  string
		depth  int32
		types  []string
		counts bool
	)

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List resources with Discovery.GetResources",
		Long: `List resources below a URI with Discovery.GetResources.

Examples:
  etp discover
  etp discover --uri "eml:///dataspace('demo')" --depth 2
  etp discover --type witsml20.Well --type witsml20.Wellbore`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := scopes[scope]
			if !ok {
				return etperr.New("E401").WithDetailf("scope %q: want self, sources, targets, sourcesOrSelf or targetsOrSelf", scope)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, g)
			if err != nil {
				return err
			}
			defer a.close()

			s, err := a.dial(ctx)
			if err != nil {
				return err
			}
			defer client.CloseSession(s, "etp discover done")

			req := messages.NewGetResources(uri, kind)
			req.Context.Depth = depth
			req.Context.DataObjectTypes = types
			req.CountObjects = counts

			id, err := s.Send(req)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "URI\tNAME\tSTATUS\tTARGETS\tLAST CHANGED")
			total := 0
			err = a.awaitResponses(s, id, func(_ protocol.MessageHeader, msg messages.Message) error {
				resp, ok := msg.(*messages.GetResourcesResponse)
				if !ok {
					return nil
				}
				for _, r := range resp.Resources {
					total++
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.URI, r.Name, r.ActiveStatus,
						optional(r.TargetCount), protocol.TimeFromETP(r.LastChanged).Format("2006-01-02 15:04:05"))
				}
				return nil
			})
			w.Flush()
			if err != nil {
				return err
			}
			success("%d resources", total)
			return nil
		},
	}

	cmd.Flags().StringVar(&uri, "uri", "eml:///", "Context URI")
	cmd.Flags().StringVar(&scope, "scope", "targets", "Scope: self, sources, targets, sourcesOrSelf, targetsOrSelf")
	cmd.Flags().Int32Var(&depth, "depth", 1, "Context depth")
	cmd.Flags().StringSliceVar(&types, "type", nil, "Only these data object types")
	cmd.Flags().BoolVar(&counts, "count", false, "Ask the store for source/target counts")

	return cmd
}

func optional(n *int32) string {
	if n == nil {
		return "-"
	}
	return fmt.Sprint(*n)
}
