// Package cmd implements the liquer command-line tool: evaluating queries,
// inspecting compiled plans, driving a store directly, and listing the
// registered command metadata.
package cmd

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/orest-d/liquer-go/ast"
	"github.com/orest-d/liquer-go/cache"
	cachemem "github.com/orest-d/liquer-go/cache/memory"
	"github.com/orest-d/liquer-go/command"
	"github.com/orest-d/liquer-go/command/executor"
	"github.com/orest-d/liquer-go/config"
	"github.com/orest-d/liquer-go/environment"
	"github.com/orest-d/liquer-go/logging"
	"github.com/orest-d/liquer-go/store"
	"github.com/orest-d/liquer-go/store/file"
	"github.com/orest-d/liquer-go/store/memory"
)

// RootCommand is the base CLI command every subcommand in this package
// registers itself under via an init function's AddCommand call.
var RootCommand = &cobra.Command{
	Use:   "liquer",
	Short: "LiQuer query engine",
	Long:  "A URL-style query engine: parse, plan and evaluate queries against a pluggable resource store.",
}

var rootParams struct {
	storeRoot     string
	configFile    string
	cacheCapacity int
	logLevel      string
	logFormat     string
}

func init() {
	fs := RootCommand.PersistentFlags()
	addStoreRootFlag(fs, &rootParams.storeRoot)
	addConfigFileFlag(fs, &rootParams.configFile)
	addCacheCapacityFlag(fs, &rootParams.cacheCapacity)
	addLogLevelFlag(fs, &rootParams.logLevel)
	addLogFormatFlag(fs, &rootParams.logFormat)
}

var (
	processMetricsOnce sync.Once
	processMetrics     *environment.Metrics
)

// sharedMetrics returns the single *Metrics every Environment this process
// builds reports through, registering it against prometheus.DefaultRegisterer
// the first time it's needed. Building it once and sharing it, rather than
// letting each environment.New call default its own, keeps a test binary
// that exercises newEnvironment more than once from hitting MustRegister's
// duplicate-collector panic on the second call.
func sharedMetrics() *environment.Metrics {
	processMetricsOnce.Do(func() {
		processMetrics = environment.NewMetrics(prometheus.DefaultRegisterer)
	})
	return processMetrics
}

// newEnvironment builds the Environment every subcommand evaluates or
// plans against, from the root command's persistent flags, environment
// variables and (if --config-file is set) a config file, in that
// decreasing precedence.
func newEnvironment(registry *command.Registry, ex *executor.Executor) (*environment.Environment, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, err
	}

	s, err := newStore(cfg.StoreRoot)
	if err != nil {
		return nil, err
	}

	log := logging.New()
	if cfg.LogLevel != "" {
		log.SetLevel(parseLogLevel(cfg.LogLevel))
	}
	if cfg.LogFormat == "text" {
		log.SetFormatter(&logrus.TextFormatter{})
	}

	opts := []environment.Option{
		environment.WithStore(s),
		environment.WithLogger(log),
		environment.WithMetrics(sharedMetrics()),
	}
	if c, err := newResultCache(cfg.CacheCapacity); err != nil {
		return nil, err
	} else if c != nil {
		opts = append(opts, environment.WithCache(c))
	}

	return environment.New(registry, ex, opts...), nil
}

// resolveConfig applies LIQUER_* environment overrides onto the root
// command's unchanged persistent flags, then loads the final
// EnvironmentConfig from flags > env > config file > defaults.
func resolveConfig() (config.EnvironmentConfig, error) {
	if err := config.BindEnvOverrides(RootCommand.PersistentFlags()); err != nil {
		return config.EnvironmentConfig{}, err
	}
	return config.Load(RootCommand.PersistentFlags(), rootParams.configFile)
}

// newStore opens a file-backed store rooted at dir, or an in-memory store
// if dir is empty.
func newStore(dir string) (store.Store, error) {
	if dir == "" {
		return memory.New(ast.Key{}), nil
	}
	s, err := file.New(dir, "")
	if err != nil {
		return nil, fmt.Errorf("opening store at %s: %w", dir, err)
	}
	return s, nil
}

func newResultCache(capacity int) (cache.Cache, error) {
	if capacity <= 0 {
		return nil, nil
	}
	c, err := cachemem.New(capacity)
	if err != nil {
		return nil, fmt.Errorf("creating result cache: %w", err)
	}
	return c, nil
}

func parseLogLevel(s string) logging.Level {
	switch s {
	case "debug":
		return logging.Debug
	case "warn":
		return logging.Warn
	case "error":
		return logging.Error
	default:
		return logging.Info
	}
}
