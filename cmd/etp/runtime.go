package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/bardasz/etp/internal/config"
	"github.com/bardasz/etp/pkg/capture"
	"github.com/bardasz/etp/pkg/client"
	"github.com/bardasz/etp/pkg/etperr"
	"github.com/bardasz/etp/pkg/messages"
	"github.com/bardasz/etp/pkg/protocol"
	"github.com/bardasz/etp/pkg/session"
)

// globalFlags are shared by every command that talks to a store.
type globalFlags struct {
	configPath  string
	url         string
	user        string
	logLevel    string
	capture     string
	metricsAddr string
	noCompress  bool
	noColor     bool
}

func (g *globalFlags) register(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVarP(&g.configPath, "config", "c", "", "Path to etp.json (default: search from the working directory)")
	f.StringVarP(&g.url, "url", "u", "", "ETP endpoint, ws:// or wss://")
	f.StringVar(&g.user, "user", "", "Basic auth user (password from ETP_PASSWORD)")
	f.StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	f.StringVar(&g.capture, "capture", "", "Record frames to a file or s3://bucket/prefix")
	f.StringVar(&g.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	f.BoolVar(&g.noCompress, "no-compress", false, "Only compress when a request asks for it")
	f.BoolVar(&g.noColor, "no-color", false, "Disable colored output (also NO_COLOR)")
}

// loadConfig reads etp.json and applies flag overrides.
func (g *globalFlags) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if g.configPath != "" {
		cfg, err = config.LoadFile(g.configPath)
	} else {
		cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return nil, err
	}

	if g.url != "" {
		cfg.URL = g.url
	}
	if g.user != "" {
		cfg.User = g.user
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	if g.capture != "" {
		cfg.Capture = g.capture
	}
	if g.metricsAddr != "" {
		cfg.MetricsAddr = g.metricsAddr
	}
	if g.noCompress {
		all := false
		cfg.CompressAll = &all
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// app holds what a command needs to run sessions.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	metrics  *session.Metrics
	recorder capture.Recorder
	server   *http.Server
}

func newApp(ctx context.Context, g *globalFlags) (*app, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.URL == "" {
		return nil, etperr.New("E400").WithDetail("no endpoint: set --url, " + config.EnvURL + " or url in " + config.ConfigFileName)
	}

	a := &app{
		cfg: cfg,
		logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: cfg.SlogLevel(),
		})),
	}

	if cfg.Capture != "" {
		rec, err := capture.Open(ctx, cfg.Capture)
		if err != nil {
			return nil, err
		}
		a.recorder = rec
	}

	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		a.metrics = session.NewMetrics(session.WithRegisterer(reg))
		a.server = metricsServer(cfg.MetricsAddr, reg)
		go func() {
			if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				a.logger.Error("metrics server", "error", err)
			}
		}()
		a.logger.Info("serving metrics", "addr", cfg.MetricsAddr)
	}
	return a, nil
}

func metricsServer(addr string, reg *prometheus.Registry) *http.Server {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// dial opens a session with the configured endpoint and credentials.
func (a *app) dial(ctx context.Context) (*session.Session, error) {
	opts := []session.Option{
		session.WithCompressAll(a.cfg.Compress()),
		session.WithMetrics(a.metrics),
	}
	if a.recorder != nil {
		opts = append(opts, session.WithRecorder(a.recorder))
	}

	dialCtx, cancel := context.WithTimeout(ctx, a.cfg.TimeoutDuration())
	defer cancel()

	return client.Dial(dialCtx, a.cfg.URL, client.Options{
		User:           a.cfg.User,
		Password:       a.cfg.Password,
		RequestSession: a.requestSession(),
		Session:        opts,
		Logger:         a.logger,
	})
}

func (a *app) requestSession() *messages.RequestSession {
	if len(a.cfg.Protocols) == 0 {
		return messages.DefaultRequestSession()
	}
	protocols := []messages.SupportedProtocol{
		messages.NewSupportedProtocol(protocol.ProtocolCore, protocol.RoleServer),
	}
	for _, p := range a.cfg.Protocols {
		if protocol.Protocol(p.Protocol) == protocol.ProtocolCore {
			continue
		}
		protocols = append(protocols, messages.NewSupportedProtocol(protocol.Protocol(p.Protocol), p.Role))
	}
	return messages.NewRequestSession(protocols...)
}

// close flushes the transcript and stops the metrics server.
func (a *app) close() {
	if a.recorder != nil {
		if err := a.recorder.Close(); err != nil {
			a.logger.Error("capture", "error", err)
		}
	}
	if a.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.server.Shutdown(ctx)
	}
}

// awaitResponses reads until the final message correlated with id.
// Unrelated messages are logged and skipped. A final ProtocolException ends
// the exchange with its error; a partial one is reported and reading goes on.
func (a *app) awaitResponses(s *session.Session, id int64, fn func(protocol.MessageHeader, messages.Message) error) error {
	for {
		hdr, msg, err := s.ReadMessage()
		if err != nil {
			return err
		}
		if hdr.CorrelationID != id {
			a.logger.Debug("skipping unrelated message", "key", hdr.Key().String(), "correlation_id", hdr.CorrelationID)
			continue
		}

		if pe, ok := msg.(*messages.ProtocolException); ok {
			perr := client.ExceptionError(pe)
			if hdr.Flags().Final {
				return perr
			}
			warn("%s", perr)
			continue
		}

		if err := fn(hdr, msg); err != nil {
			return err
		}
		if hdr.Flags().Final {
			return nil
		}
	}
}
