package commands

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cenkalti/backoff"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"

	"github.com/ntpmcp/ntpmcp/cache"
	cfg "github.com/ntpmcp/ntpmcp/config"
	"github.com/ntpmcp/ntpmcp/mcp/core"
	mcpserver "github.com/ntpmcp/ntpmcp/mcp/server"
	"github.com/ntpmcp/ntpmcp/ntpclient"
	"github.com/ntpmcp/ntpmcp/ratelimit"
	mcptime "github.com/ntpmcp/ntpmcp/types/time"
	"github.com/ntpmcp/ntpmcp/whitelist"
)

// AddServerFlags exposes the common server options on the command line.
func AddServerFlags(cmd *cobra.Command) {
	cmd.Flags().String("ntp.server", config.NTP.Server,
		"NTP server to query; must pass the whitelist (see the list-servers command)")
	cmd.Flags().String("ntp.timezone", config.NTP.Timezone,
		"IANA time zone readings are rendered in (empty means the system time zone)")
	cmd.Flags().String("mcp.transport", config.MCP.Transport, "MCP transport (stdio | tcp)")
	cmd.Flags().String("mcp.tcp_laddr", config.MCP.TCPListenAddress,
		"TCP listen address used when transport is tcp")
	cmd.Flags().Bool("instrumentation.prometheus", config.Instrumentation.Prometheus,
		"enable the Prometheus metrics listener")
	cmd.Flags().String("instrumentation.prometheus_listen_addr", config.Instrumentation.PrometheusListenAddr,
		"Prometheus metrics listen address")
}

// NewRunServerCmd returns the command that serves the MCP tools until the
// transport closes or the process is signaled.
func NewRunServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run",
		Aliases: []string{"start", "serve"},
		Short:   "Run the MCP time server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd.Context(), config)
		},
	}
	AddServerFlags(cmd)
	return cmd
}

// newEnvironment wires the acquisition pipeline from the configuration.
func newEnvironment(conf *cfg.Config) (*core.Environment, error) {
	loc, err := conf.NTP.TimeLocation()
	if err != nil {
		return nil, err
	}

	clock := mcptime.DefaultSource{}

	metrics := core.NopMetrics()
	if conf.Instrumentation.IsPrometheusEnabled() {
		metrics = core.PrometheusMetrics(conf.Instrumentation.Namespace)
	}

	var responseCache cache.ResponseCache = cache.NopCache{}
	if conf.MCP.CacheTTL > 0 {
		responseCache = cache.NewTTL(conf.MCP.CacheTTL, clock)
	}

	newBackOff := func() backoff.BackOff {
		bo := backoff.NewExponentialBackOff()
		bo.InitialInterval = conf.NTP.RetryInitialWait
		bo.MaxInterval = conf.NTP.RetryMaxWait
		bo.MaxElapsedTime = 0
		return bo
	}

	ntpLogger := logger.With("module", "ntp")
	return &core.Environment{
		Logger:    logger.With("module", "mcp"),
		Validator: whitelist.NewDefault(),
		Client: ntpclient.NewClient(ntpLogger,
			ntpclient.WithTimeout(conf.NTP.QueryTimeout),
			ntpclient.WithAttempts(conf.NTP.MaxAttempts),
			ntpclient.WithBackOff(newBackOff),
		),
		Fallback:   ntpclient.NewFallback(ntpLogger, clock),
		Cache:      responseCache,
		Limiter:    ratelimit.NewSlidingWindow(conf.MCP.RateLimit, conf.MCP.RateWindow, clock),
		Metrics:    metrics,
		ServerName: conf.NTP.Server,
		Location:   loc,
	}, nil
}

func runServer(ctx context.Context, conf *cfg.Config) error {
	env, err := newEnvironment(conf)
	if err != nil {
		return err
	}

	// The fallback path assumes a readable local clock; read it once now so
	// a broken clock fails the start, not a later call.
	startedAt := mcptime.DefaultSource{}.Now()
	logger.Info("starting MCP time server",
		"server", conf.NTP.Server,
		"timezone", conf.NTP.Timezone,
		"transport", conf.MCP.Transport,
		"started_at", startedAt)

	// A misconfigured server name still starts the server: the security
	// error is the tool's answer, not a crash. Flag it early anyway.
	if _, err := env.Validator.Validate(conf.NTP.Server); err != nil {
		logger.Warn("configured NTP server fails validation; get_current_time will return a security error",
			"server", conf.NTP.Server, "err", err)
	}

	srv := mcpserver.New(logger.With("module", "mcp"), env, &mcpserver.Config{
		MaxOpenConnections: conf.MCP.MaxOpenConnections,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// errTransportClosed makes a clean transport exit cancel the group, so
	// the metrics listener shuts down with it.
	errTransportClosed := errors.New("transport closed")

	switch conf.MCP.Transport {
	case cfg.TransportStdio:
		g.Go(func() error {
			errc := make(chan error, 1)
			go func() { errc <- srv.Serve(ctx, os.Stdin, os.Stdout) }()
			select {
			case err := <-errc:
				if err == nil {
					err = errTransportClosed
				}
				return err
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	case cfg.TransportTCP:
		ln, err := mcpserver.Listen(conf.MCP.TCPListenAddress, conf.MCP.MaxOpenConnections)
		if err != nil {
			return err
		}
		logger.Info("MCP listener bound", "addr", ln.Addr())
		g.Go(func() error { return srv.ServeListener(ctx, ln) })
	}

	if conf.Instrumentation.IsPrometheusEnabled() {
		promLn, err := net.Listen("tcp", conf.Instrumentation.PrometheusListenAddr)
		if err != nil {
			return err
		}
		if n := conf.Instrumentation.MaxOpenConnections; n > 0 {
			promLn = netutil.LimitListener(promLn, n)
		}
		promSrv := &http.Server{Handler: promhttp.Handler()}
		logger.Info("Prometheus metrics listener bound", "addr", promLn.Addr())
		g.Go(func() error {
			if err := promSrv.Serve(promLn); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			return promSrv.Close()
		})
	}

	err = g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, errTransportClosed) {
		return err
	}
	logger.Info("MCP time server stopped")
	return nil
}
