package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/bancagelo/apostas-ledger/internal/shared/config"
	skafka "github.com/bancagelo/apostas-ledger/internal/shared/kafka"
	"github.com/bancagelo/apostas-ledger/internal/shared/logger"
	"github.com/bancagelo/apostas-ledger/internal/shared/metrics"
	sheetsync "github.com/bancagelo/apostas-ledger/internal/sheet-sync"
	"github.com/bancagelo/apostas-ledger/internal/sheets"
)

func main() {
	cfg := config.Load()
	log, err := logger.New("sheet-sync-worker", cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	reader := skafka.NewReader(cfg.KafkaBrokers, cfg.TopicLedgerMutations, "sheet-sync")
	defer reader.Close()

	dlq := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicLedgerMutationsDLQ)
	defer dlq.Close()

	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error { return nil })
	log.Info("metrics/health", zap.String("addr", ":"+cfg.MetricsPort))

	applier := &sheetsync.Applier{
		Log:    log,
		Reader: reader,
		Sheets: sheets.New(cfg.SheetsAPIURL),
		DLQ:    dlq,

		OnApplied: func() { metrics.WorkerAppliedTotal.Inc() },
		OnError:   func(stage string) { metrics.WorkerErrorsTotal.WithLabelValues(stage).Inc() },
	}

	log.Info("sheet-sync-worker started",
		zap.String("consume", cfg.TopicLedgerMutations),
		zap.String("sheets", cfg.SheetsAPIURL),
	)
	if err := applier.Run(context.Background()); err != nil {
		log.Fatal("worker", zap.Error(err))
	}
}
