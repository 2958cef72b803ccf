package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores compartilhados entre ledger-service e sheet-sync-worker.
var (
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_logins_total",
		Help: "Tentativas de login por resultado (success, invalid, inactive).",
	}, []string{"result"})

	MutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_mutations_total",
		Help: "Mutações aplicadas no estado local, por ação.",
	}, []string{"action"})

	SyncPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_sync_published_total",
		Help: "Notificações de sincronização enviadas com sucesso, por ação.",
	}, []string{"action"})

	SyncErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_sync_errors_total",
		Help: "Falhas de sincronização com a planilha remota, por ação.",
	}, []string{"action"})

	WorkerAppliedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sheet_sync_applied_total",
		Help: "Mutações aplicadas na planilha pelo worker.",
	})

	WorkerErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sheet_sync_errors_total",
		Help: "Erros do worker por fase (read, decode, apply, dlq).",
	}, []string{"stage"})
)
