package main

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	lhttp "github.com/bancagelo/apostas-ledger/internal/ledger-service/http"
	kpub "github.com/bancagelo/apostas-ledger/internal/ledger-service/producer"
	"github.com/bancagelo/apostas-ledger/internal/ledger-service/session"
	"github.com/bancagelo/apostas-ledger/internal/ledger-service/store"
	"github.com/bancagelo/apostas-ledger/internal/shared/cache"
	"github.com/bancagelo/apostas-ledger/internal/shared/config"
	skafka "github.com/bancagelo/apostas-ledger/internal/shared/kafka"
	"github.com/bancagelo/apostas-ledger/internal/shared/logger"
	"github.com/bancagelo/apostas-ledger/internal/shared/metrics"
	"github.com/bancagelo/apostas-ledger/internal/sheets"
)

func main() {
	cfg := config.Load()
	log, err := logger.New("ledger-service", cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Cliente da planilha remota: fonte das três coleções e, no modo
	// direct, destino das notificações de mutação.
	sheetsClient := sheets.New(cfg.SheetsAPIURL)

	// Sessões: Redis quando configurado, memória caso contrário.
	var sessions session.TokenStore = session.NewMemoryStore()
	var redisHealth metrics.HealthFunc
	if cfg.RedisAddr != "" {
		rdb, err := cache.ConnectRedis(cfg.RedisAddr)
		if err != nil {
			log.Fatal("redis", zap.Error(err))
		}
		sessions = session.NewRedisStore(rdb)
		redisHealth = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		log.Info("sessions in redis", zap.String("addr", cfg.RedisAddr))
	}

	// Sincronização remota: POST direto ou via tópico Kafka.
	var syncer store.Syncer = sheetsClient
	if cfg.SyncMode == config.SyncKafka {
		writer := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicLedgerMutations)
		defer writer.Close()
		syncer = kpub.NewKafkaPublisher(writer)
		log.Info("sync via kafka", zap.String("topic", cfg.TopicLedgerMutations))
	}

	st := store.New(log, syncer)
	st.OnMutation = func(action string) { metrics.MutationsTotal.WithLabelValues(action).Inc() }
	st.OnSyncOK = func(action string) { metrics.SyncPublishedTotal.WithLabelValues(action).Inc() }
	st.OnSyncError = func(action string) { metrics.SyncErrorsTotal.WithLabelValues(action).Inc() }

	// Carga inicial: as três coleções juntas, limitadas pelo timeout.
	// Qualquer falha derruba o serviço — sem modo degradado parcial.
	loadCtx, cancel := context.WithTimeout(context.Background(), cfg.LoadTimeout)
	if err := st.Load(loadCtx, sheetsClient); err != nil {
		cancel()
		log.Fatal("initial load", zap.Error(err))
	}
	cancel()

	api := lhttp.NewServer(log, st, sessions)
	api.OnLogin = func(result string) { metrics.LoginsTotal.WithLabelValues(result).Inc() }

	// metrics/health em porta separada
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if redisHealth != nil {
			return redisHealth(ctx)
		}
		return nil
	})
	log.Info("metrics/health", zap.String("addr", ":"+cfg.MetricsPort))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: api.Router(),
	}
	log.Info("ledger-service listening", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api", zap.Error(err))
	}
}
