package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"rollcall/internal/platform/config"
	"rollcall/internal/platform/database"
	"rollcall/internal/platform/logger"
	"rollcall/internal/votes/extract/house"
	"rollcall/internal/votes/extract/senate"
	"rollcall/internal/votes/metrics"
	"rollcall/internal/votes/publisher"
	"rollcall/internal/votes/service"
	"rollcall/internal/votes/source"
	"rollcall/internal/votes/store/jsonfile"
	"rollcall/internal/votes/store/sqlstore"
	pstrings "rollcall/pkg/platform/strings"
)

func newProcessCmd(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Process rollcall documents into a sink",
	}
	cmd.AddCommand(newProcessJSONCmd(global), newProcessSQLCmd(global))
	return cmd
}

func newProcessJSONCmd(global *globalOptions) *cobra.Command {
	var (
		output  string
		brokers []string
		topic   string
	)
	cmd := &cobra.Command{
		Use:   "json [file]",
		Short: "Aggregate every document into one JSON file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd, global, func(cfg *config.Config) {
				if cmd.Flags().Changed("output") {
					cfg.OutputPath = output
				}
				if cmd.Flags().Changed("kafka-brokers") {
					cfg.KafkaBrokers = pstrings.DedupeAndTrim(brokers)
				}
				if cmd.Flags().Changed("kafka-topic") {
					cfg.KafkaTopic = topic
				}
			})
			if err != nil {
				return err
			}
			return env.runJSON(cmd.Context(), args)
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "Output document path")
	cmd.Flags().StringSliceVar(&brokers, "kafka-brokers", nil, "Publish every record to these Kafka brokers")
	cmd.Flags().StringVar(&topic, "kafka-topic", "", "Kafka topic for published records")
	return cmd
}

func newProcessSQLCmd(global *globalOptions) *cobra.Command {
	var driver, dsn string
	cmd := &cobra.Command{
		Use:   "sql [file]",
		Short: "Write the relational form of every document in one transaction",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd, global, func(cfg *config.Config) {
				if cmd.Flags().Changed("db-driver") {
					cfg.DBDriver = driver
				}
				if cmd.Flags().Changed("db-dsn") {
					cfg.DBDSN = dsn
				}
			})
			if err != nil {
				return err
			}
			return env.runSQL(cmd.Context(), args)
		},
	}
	cmd.Flags().StringVar(&driver, "db-driver", "", "sqlite, pgx or postgres")
	cmd.Flags().StringVar(&dsn, "db-dsn", "", "Database connection string")
	return cmd
}

// env is what every process subcommand needs once flags are resolved.
type env struct {
	cfg     config.Config
	logger  *slog.Logger
	metrics *metrics.Metrics
	out     io.Writer
}

func setup(cmd *cobra.Command, global *globalOptions, local func(*config.Config)) (*env, error) {
	cfg, err := config.Load(global.configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("data-root") {
		cfg.DataRoot = global.dataRoot
	}
	if flags.Changed("workers") {
		cfg.Workers = global.workers
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = global.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = global.logFormat
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = global.metricsFile
	}
	local(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: log, metrics: metrics.New(), out: cmd.OutOrStdout()}, nil
}

// input resolves the documents of a run: the single named file, or every
// document below the data root.
func (e *env) input(ctx context.Context, args []string) (service.Input, error) {
	in := service.Input{Root: e.cfg.DataRoot}
	if len(args) == 1 {
		files, ok := source.Single(args[0])
		if !ok {
			e.logger.WarnContext(ctx, "not a readable .json document, nothing to process", "path", args[0])
		}
		in.Files = files
		return in, nil
	}
	files, err := source.Discover(ctx, e.logger, e.cfg.DataRoot)
	if err != nil {
		return in, err
	}
	in.Files = files
	return in, nil
}

func (e *env) service(opts ...service.Option) (*service.Service, error) {
	base := []service.Option{
		service.WithLogger(e.logger),
		service.WithMetrics(e.metrics),
		service.WithWorkers(e.cfg.Workers),
	}
	return service.New(
		house.New(house.WithLogger(e.logger)),
		senate.New(senate.WithLogger(e.logger)),
		append(base, opts...)...,
	)
}

func (e *env) runJSON(ctx context.Context, args []string) (err error) {
	defer e.flushMetrics(ctx)

	in, err := e.input(ctx, args)
	if err != nil {
		return err
	}

	var opts []service.Option
	if len(e.cfg.KafkaBrokers) > 0 {
		pub, err := publisher.Dial(ctx, e.cfg.KafkaBrokers, e.cfg.KafkaTopic, publisher.WithLogger(e.logger))
		if err != nil {
			return err
		}
		defer pub.Close()
		opts = append(opts, service.WithPublisher(pub))
	}

	svc, err := e.service(opts...)
	if err != nil {
		return err
	}

	sink, err := jsonfile.New(e.cfg.OutputPath,
		jsonfile.WithLogger(e.logger),
		jsonfile.WithProgress(func(written, total int64) {
			e.logger.DebugContext(ctx, "writing vote document", "written", written, "total", total)
		}),
	)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, sink.Close())
	}()

	report, err := svc.ExportJSON(ctx, in, sink)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "%d rollcalls, %d votes from %d files (%d skipped) written to %s\n",
		report.Rollcalls, report.Votes, report.FilesProcessed, report.FilesSkipped, sink.Path())
	return nil
}

func (e *env) runSQL(ctx context.Context, args []string) (err error) {
	defer e.flushMetrics(ctx)

	in, err := e.input(ctx, args)
	if err != nil {
		return err
	}

	db, err := database.Open(ctx, e.cfg.DBDriver, e.cfg.DBDSN)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, db.Close())
	}()

	store, err := sqlstore.New(db, e.cfg.DBDriver)
	if err != nil {
		return err
	}
	if err := store.Migrate(ctx); err != nil {
		return err
	}

	svc, err := e.service()
	if err != nil {
		return err
	}
	report, err := svc.IngestSQL(ctx, in, store)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "%d rollcalls, %d members from %d files (%d skipped) committed as run %s\n",
		report.Rollcalls, report.Members, report.FilesProcessed, report.FilesSkipped, report.RunID)
	return nil
}

func (e *env) flushMetrics(ctx context.Context) {
	if err := e.metrics.WriteTextfile(e.cfg.MetricsFile); err != nil {
		e.logger.WarnContext(ctx, "metrics textfile not written", "path", e.cfg.MetricsFile, "error", err)
	}
}
