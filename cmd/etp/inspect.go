package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bardasz/etp/pkg/capture"
	"github.com/bardasz/etp/pkg/schema"
	"github.com/bardasz/etp/pkg/session"
)

func inspectCmd() *cobra.Command {
	var bodies bool

	cmd := &cobra.Command{
		Use:   "inspect <transcript>",
		Short: "Decode a captured session transcript",
		Long: `Decode a transcript written with --capture and print one line per frame.
Use "-" to read from stdin.

Examples:
  etp inspect ./captures/session.jsonl
  etp inspect --body ./captures/session.jsonl`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = os.Stdin
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			return inspect(r, os.Stdout, schema.Default(), bodies)
		},
	}

	cmd.Flags().BoolVarP(&bodies, "body", "b", false, "Print message bodies as JSON")

	return cmd
}

func inspect(r io.Reader, w io.Writer, reg *schema.Registry, bodies bool) error {
	return capture.ReadEntries(r, func(e capture.Entry) error {
		arrow := "->"
		if e.Direction == capture.Received {
			arrow = "<-"
		}
		name := e.Name
		if name == "" {
			name = e.Header.Key().String()
		}
		flags := e.Header.Flags()
		fmt.Fprintf(w, "%s %s %-40s id=%d corr=%d final=%t gzip=%t %dB\n",
			e.Time.Format("15:04:05.000"), arrow, name,
			e.Header.MessageID, e.Header.CorrelationID, flags.Final, flags.Compress, len(e.Frame))

		if !bodies {
			return nil
		}
		frame, err := session.DecodeFrame(reg, e.Frame)
		if err != nil {
			fmt.Fprintf(w, "    ! %v\n", err)
			return nil
		}
		if frame.Extension != nil {
			fmt.Fprintf(w, "    extension: %d entries\n", len(frame.Extension.Extension))
		}
		body, err := reg.BodyJSON(frame.Header.Key(), frame.Body)
		if err != nil {
			fmt.Fprintf(w, "    ! %v\n", err)
			return nil
		}
		fmt.Fprintf(w, "    %s\n", body)
		return nil
	})
}
