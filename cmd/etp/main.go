package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bardasz/etp/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "etp",
		Short: "ETP 1.2 client for Energistics stores",
		Long: `etp talks to ETP 1.2 stores over websockets.

It opens a session with Basic credentials, negotiates compression and
runs Discovery and Store requests. Settings come from etp.json, the
ETP_URL / ETP_USER / ETP_PASSWORD environment variables and flags, in
increasing order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if g.noColor || os.Getenv("NO_COLOR") != "" {
				disableColors()
			}
		},
	}
	g.register(cmd)

	cmd.AddCommand(
		connectCmd(g),
		discoverCmd(g),
		getCmd(g),
		capabilitiesCmd(g),
		inspectCmd(),
		versionCmd(),
	)
	return cmd
}

var colors = true

func disableColors() {
	colors = false
	errors.DisableColors()
}

func paint(code, text string) string {
	if !colors {
		return text
	}
	return code + text + "\033[0m"
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("%s %s\n", paint("\033[32m", "✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("%s %s\n", paint("\033[33m", "⚠"), fmt.Sprintf(format, args...))
}
