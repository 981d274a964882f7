// tinythread inspects, self-tests and benchmarks the threading primitives.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"example.com/tinythread/base/zaplog"

	"example.com/tinythread/benchmark"

	"example.com/tinythread/core/config"
	"example.com/tinythread/core/selftest"

	"example.com/tinythread/tthread"
	"example.com/tinythread/tthread/thisthread"
)

const (
	formatText = "text"
	formatYAML = "yaml"
)

var (
	log *zap.Logger

	errChecksFailed = errors.New("self-test checks failed")
)

type buildInfo struct {
	Version             string `yaml:"version"`
	NativeBackend       string `yaml:"native_backend"`
	AtomicStrategy      string `yaml:"atomic_strategy"`
	AtomicLockFree      bool   `yaml:"atomic_lock_free"`
	FlagLockFree        bool   `yaml:"flag_lock_free"`
	HardwareConcurrency int    `yaml:"hardware_concurrency"`
	ThreadID            string `yaml:"thread_id"`
}

func initLogger(verbose bool) {
	c := zap.NewDevelopmentConfig()
	c.DisableStacktrace = true
	c.EncoderConfig.EncodeCaller = func(
		caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
		p := caller.TrimmedPath()
		if len(p) > 30 {
			p = "..." + p[len(p)-27:]
		}
		enc.AppendString(fmt.Sprintf("%30s", p))
	}
	if !verbose {
		c.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	var err error
	log, err = c.Build()
	if err != nil {
		panic(err)
	}
	zaplog.SetLogger(log)
}

func runMonitor(log *zap.Logger, addr string) {
	http.Handle("/metrics", promhttp.Handler())
	err := http.ListenAndServe(addr, nil)
	log.Fatal("failed to serve metrics", zap.String("address", addr), zap.Error(err))
}

func loadConfig(configFile string) (config.Config, error) {
	if configFile == "" {
		return config.Default(), nil
	}
	return config.Load(configFile)
}

func currentBuildInfo() buildInfo {
	var a tthread.AtomicInt
	var f tthread.AtomicFlag
	return buildInfo{
		Version:             fmt.Sprintf("%d.%d", tthread.VersionMajor, tthread.VersionMinor),
		NativeBackend:       tthread.NativeBackend,
		AtomicStrategy:      tthread.AtomicStrategy,
		AtomicLockFree:      a.IsLockFree(),
		FlagLockFree:        f.IsLockFree(),
		HardwareConcurrency: tthread.HardwareConcurrency(),
		ThreadID:            thisthread.GetID().String(),
	}
}

func runInfo(w io.Writer, format string) error {
	info := currentBuildInfo()
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(info); err != nil {
			return err
		}
		return enc.Close()
	case formatText:
		tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
		fmt.Fprintf(tw, "version\t%s\n", info.Version)
		fmt.Fprintf(tw, "native backend\t%s\n", info.NativeBackend)
		fmt.Fprintf(tw, "atomic strategy\t%s\n", info.AtomicStrategy)
		fmt.Fprintf(tw, "atomic lock-free\t%t\n", info.AtomicLockFree)
		fmt.Fprintf(tw, "flag lock-free\t%t\n", info.FlagLockFree)
		fmt.Fprintf(tw, "hardware concurrency\t%d\n", info.HardwareConcurrency)
		fmt.Fprintf(tw, "thread id\t%s\n", info.ThreadID)
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func runSelftest(ctx context.Context, w io.Writer, cfg config.Config) error {
	results := selftest.Run(ctx, log, cfg)
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	for _, r := range results {
		status := "ok"
		if !r.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(tw, "%s\t%s\t%v\t%s\n", status, r.Name, r.Elapsed, r.Detail)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if !selftest.Passed(results) {
		return errChecksFailed
	}
	return nil
}

func newRootCmd() *cobra.Command {
	var (
		verbose     bool
		metricsAddr string
		configFile  string
		format      string
	)

	startMonitor := func(cfg config.Config) {
		addr := metricsAddr
		if addr == "" {
			addr = cfg.MetricsAddr
		}
		if addr != "" {
			go runMonitor(log, addr)
		}
	}

	rootCmd := &cobra.Command{
		Use:           "tinythread",
		Short:         "Inspect, self-test and benchmark the tinythread primitives",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogger(verbose)
		},
	}
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose logging")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics", "", "Serve Prometheus metrics on this address")

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Show the version and the backends selected at build time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd.OutOrStdout(), format)
		},
	}
	infoCmd.Flags().StringVar(&format, "format", formatText, "Output format (text or yaml)")

	selftestCmd := &cobra.Command{
		Use:   "selftest",
		Short: "Check the primitives against their guarantees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			startMonitor(cfg)
			return runSelftest(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure lock and atomic latencies under contention",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			startMonitor(cfg)
			return benchmark.Run(log, cfg, cmd.OutOrStdout())
		},
	}

	for _, c := range []*cobra.Command{selftestCmd, benchCmd} {
		c.Flags().StringVar(&configFile, "config", "", "Config file (TOML or YAML)")
	}
	rootCmd.AddCommand(infoCmd, selftestCmd, benchCmd)
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		if log == nil {
			initLogger(false)
		}
		log.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}
