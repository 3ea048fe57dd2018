package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-intel/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis API over HTTP",
	Long: `Serve exposes analysis over HTTP:

  POST /analyze          analyze one document (JSON or text/plain body)
  POST /analyze/stream   same, streaming progress as server-sent events
  POST /analyze/batch    analyze several documents at once
  GET  /analyses         list stored analyses
  GET  /analyses/{id}    fetch one stored analysis
  GET  /health           liveness check

Results are stored only when database_url is configured. Rate limits are
read from RATE_LIMIT_* environment variables.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	servePort      int
	serveMaxBatch  int
	serveMaxBodyKB int64
)

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "Port to listen on")
	serveCmd.Flags().IntVar(&serveMaxBatch, "max-batch", 50, "Maximum documents per batch request")
	serveCmd.Flags().Int64Var(&serveMaxBodyKB, "max-body-kb", 1024, "Maximum request body size per document in KiB")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := newSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.logger.Sync() }()

	var store server.Store
	if s.cfg.DatabaseURL != "" {
		conn, err := s.openStore(ctx)
		if err != nil {
			return err
		}
		defer conn.Close()
		store = conn
	} else {
		s.logger.Info("no database_url configured, results will not be stored")
	}

	srv := server.New(server.Config{
		Port:         servePort,
		MaxBodyBytes: serveMaxBodyKB << 10,
		MaxBatchSize: serveMaxBatch,
	}, s.engine, store, s.logger)

	s.logger.Info("serving analysis API", zap.Int("port", servePort), zap.Bool("store", store != nil))
	return srv.Start(ctx)
}
