package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"yunitemcp/internal/app"
	"yunitemcp/internal/app/seed"
	"yunitemcp/internal/domain"
	"yunitemcp/internal/infra/gateway"
)

type rootOptions struct {
	configPath string
}

type serveOptions struct {
	transport          string
	host               string
	port               int
	httpPath           string
	httpToken          string
	httpAllowedOrigins []string
	httpJSONResponse   bool
	noProbe            bool
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	root := newRootCmd(logger, os.Stdout)
	if err := root.Execute(); err != nil {
		logger.Fatal("command failed", zap.Error(err))
	}
}

func newRootCmd(logger *zap.Logger, out io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "yunitemcp",
		Short:         "MCP server exposing the Yunite campus API as tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to YAML config file (optional; environment is always read)")

	root.AddCommand(
		newServeCmd(logger, opts),
		newToolsCmd(logger),
		newCallCmd(logger, opts),
		newSmokeCmd(logger, opts),
		newSeedCmd(logger, opts),
		newValidateCmd(logger, opts),
	)
	return root
}

func newServeCmd(logger *zap.Logger, root *rootOptions) *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("transport") {
				switch domain.TransportKind(opts.transport) {
				case domain.TransportStdio, domain.TransportStreamableHTTP, domain.TransportSSE:
				default:
					return fmt.Errorf("unsupported transport: %s", opts.transport)
				}
			}

			ctx, cancel := signalAwareContext(cmd.Context())
			defer cancel()

			application := app.New(logger)
			err := application.Serve(ctx, app.ServeConfig{
				ConfigPath: root.configPath,
				Override:   serveOverride(flags, opts),
			})
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.transport, "transport", string(domain.DefaultServerTransport), "transport (streamable-http, sse or stdio)")
	flags.StringVar(&opts.host, "host", domain.DefaultServerHost, "HTTP listen host")
	flags.IntVar(&opts.port, "port", domain.DefaultServerPort, "HTTP listen port")
	flags.StringVar(&opts.httpPath, "http-path", domain.DefaultServerPath, "streamable HTTP endpoint path")
	flags.StringVar(&opts.httpToken, "http-token", "", "bearer token required from HTTP clients")
	flags.StringArrayVar(&opts.httpAllowedOrigins, "http-allowed-origin", nil, "allowed browser origin (repeatable or *)")
	flags.BoolVar(&opts.httpJSONResponse, "http-json-response", false, "use application/json responses instead of SSE streams")
	flags.BoolVar(&opts.noProbe, "no-probe", false, "skip the startup login probe")
	return cmd
}

// serveOverride applies only the flags set on the command line, so config
// file and environment values survive unless explicitly replaced.
func serveOverride(flags *pflag.FlagSet, opts *serveOptions) func(*domain.Config) {
	return func(cfg *domain.Config) {
		flags.Visit(func(f *pflag.Flag) {
			switch f.Name {
			case "transport":
				cfg.Server.Transport = domain.TransportKind(opts.transport)
			case "host":
				cfg.Server.Host = opts.host
			case "port":
				cfg.Server.Port = opts.port
			case "http-path":
				cfg.Server.Path = opts.httpPath
			case "http-token":
				cfg.Server.Token = opts.httpToken
			case "http-allowed-origin":
				cfg.Server.AllowedOrigins = opts.httpAllowedOrigins
			case "http-json-response":
				cfg.Server.JSONResponse = opts.httpJSONResponse
			case "no-probe":
				cfg.Auth.ProbeOnStart = !opts.noProbe
			}
		})
	}
}

func newToolsCmd(logger *zap.Logger) *cobra.Command {
	var group string
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Print the tool catalogue as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tools, err := app.New(logger).Tools(group)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), tools)
		},
	}
	cmd.Flags().StringVar(&group, "group", "", "restrict to one group (read or write)")
	return cmd
}

func newCallCmd(logger *zap.Logger, root *rootOptions) *cobra.Command {
	var rawArgs string
	cmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Dispatch one tool and print the result envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toolArgs, err := parseToolArgs(rawArgs)
			if err != nil {
				return err
			}
			ctx, cancel := signalAwareContext(cmd.Context())
			defer cancel()

			result, err := app.New(logger).Call(ctx, app.ServeConfig{ConfigPath: root.configPath}, args[0], toolArgs)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), result.Pretty()); err != nil {
				return err
			}
			if !result.OK() {
				return errors.New("tool call failed")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&rawArgs, "args", "", "tool arguments as a JSON object")
	return cmd
}

func newSmokeCmd(logger *zap.Logger, root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "smoke",
		Short: "Log in and call the core list tools once each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalAwareContext(cmd.Context())
			defer cancel()

			checks, err := app.New(logger).Smoke(ctx, app.ServeConfig{ConfigPath: root.configPath})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, check := range checks {
				printCheck(out, check)
			}
			if !seed.Passed(checks) {
				return errors.New("smoke checks failed")
			}
			return nil
		},
	}
}

func newSeedCmd(logger *zap.Logger, root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create sample department, students, staff and a post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalAwareContext(cmd.Context())
			defer cancel()

			report, err := app.New(logger).Seed(ctx, app.ServeConfig{ConfigPath: root.configPath})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}
}

func newValidateCmd(logger *zap.Logger, root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration without contacting the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := app.New(logger).ValidateConfig(cmd.Context(), app.ServeConfig{ConfigPath: root.configPath})
			if err != nil {
				return err
			}
			if summary.Transport != string(domain.TransportStdio) && !summary.InboundAuth && !gateway.IsLocalhostAddr(summary.Listen) {
				logger.Warn("http front is reachable beyond localhost without a bearer token", zap.String("listen", summary.Listen))
			}
			return writeJSON(cmd.OutOrStdout(), summary)
		},
	}
}

func parseToolArgs(raw string) (map[string]any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, fmt.Errorf("--args must be a JSON object: %w", err)
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

func printCheck(out io.Writer, check seed.Check) {
	status := "ok  "
	detail := ""
	if !check.OK {
		status = "FAIL"
		detail = check.Message
	} else if check.Count > 0 {
		detail = fmt.Sprintf("%d items", check.Count)
	}
	_, _ = fmt.Fprintf(out, "%s %-18s %6dms %s\n", status, check.Tool, check.Duration.Milliseconds(), detail)
}

func writeJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func signalAwareContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
