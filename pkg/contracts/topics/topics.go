package topics

const (
	// Mutações do livro de apostas (service -> sheet-sync-worker)
	LedgerMutations = "ledger_mutations"

	// DLQ
	LedgerMutationsDLQ = "ledger_mutations_dlq"
)
