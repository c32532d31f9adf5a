package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bardasz/etp/pkg/client"
	"github.com/bardasz/etp/pkg/etperr"
	"github.com/bardasz/etp/pkg/messages"
	"github.com/bardasz/etp/pkg/protocol"
)

func getCmd(g *globalFlags) *cobra.Command {
	var (
		uris   []string
		format string
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Fetch data objects with Store.GetDataObjects",
		Long: `Fetch data objects by URI with Store.GetDataObjects.

Objects are written to stdout, or to one file per object with --out.

Examples:
  etp get --uri "eml:///witsml20.Well(ec8c3f16-1454-4f36-ae10-27d2a2680cf2)"
  etp get --uri "eml:///witsml20.Well(a)" --uri "eml:///witsml20.Well(b)" --out ./objects`,
		RunE: func(cmd *cobra.Command, args []string) error {
			uris = append(uris, args...)
			if len(uris) == 0 {
				return etperr.New("E401").WithDetail("at least one --uri is required")
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
			defer client.CloseSession(s, "etp get done")

			req := &messages.GetDataObjects{URIs: make(map[string]string, len(uris)), Format: format}
			for i, u := range uris {
				req.URIs[strconv.Itoa(i)] = u
			}
			id, err := s.Send(req)
			if err != nil {
				return err
			}

			if outDir != "" {
				if err := os.MkdirAll(outDir, 0755); err != nil {
					return err
				}
			}

			count := 0
			err = a.awaitResponses(s, id, func(_ protocol.MessageHeader, msg messages.Message) error {
				resp, ok := msg.(*messages.GetDataObjectsResponse)
				if !ok {
					return nil
				}
				keys := make([]string, 0, len(resp.DataObjects))
				for k := range resp.DataObjects {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					obj := resp.DataObjects[k]
					count++
					if outDir == "" {
						if obj.Resource != nil {
							fmt.Printf("# %s\n", obj.Resource.URI)
						}
						os.Stdout.Write(obj.Data)
						fmt.Println()
						continue
					}
					path := filepath.Join(outDir, "object-"+k+"."+obj.Format)
					if err := os.WriteFile(path, obj.Data, 0644); err != nil {
						return err
					}
					info("%s", path)
				}
				return nil
			})
			if err != nil {
				return err
			}
			success("%d of %d objects", count, len(uris))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&uris, "uri", nil, "Data object URI (repeatable)")
	cmd.Flags().StringVar(&format, "format", "xml", "Requested format: xml or json")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Write objects to this directory")

	return cmd
}
