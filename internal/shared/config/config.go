package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	ctopics "github.com/bancagelo/apostas-ledger/pkg/contracts/topics"
)

// Modos de sincronização com a planilha remota.
const (
	SyncDirect = "direct" // POST assíncrono direto na API de planilha
	SyncKafka  = "kafka"  // publica no tópico ledger_mutations (worker aplica)
)

// Config centraliza variáveis de ambiente e parâmetros de execução dos serviços
type Config struct {
	Env         string // "local", "dev", "prod"
	ServiceName string // "ledger-service" | "sheet-sync-worker"

	// API de planilha (Google Apps Script ou equivalente)
	SheetsAPIURL string

	// Infra opcional
	RedisAddr    string // vazio = sessões em memória
	KafkaBrokers string // "a:9092,b:9092"

	// Tópicos
	TopicLedgerMutations    string
	TopicLedgerMutationsDLQ string

	// Carga inicial e sincronização
	LoadTimeout time.Duration
	SyncMode    string // direct | kafka

	// Portas do serviço atual
	HTTPPort    string // API pública
	MetricsPort string // /metrics e /healthz
}

// Load carrega variáveis de ambiente e define defaults conforme o SERVICE_NAME
func Load() Config {
	_ = godotenv.Load()

	svc := getEnv("SERVICE_NAME", "")
	env := getEnv("ENV", "local")

	cfg := Config{
		Env:         env,
		ServiceName: svc,

		SheetsAPIURL: getEnv("SHEETS_API_URL", "http://localhost:8090/exec"),

		RedisAddr:    getEnv("REDIS_ADDR", ""),
		KafkaBrokers: getEnv("KAFKA_BROKERS", "localhost:9092"),

		TopicLedgerMutations:    getEnv("KAFKA_TOPIC_LEDGER_MUTATIONS", ctopics.LedgerMutations),
		TopicLedgerMutationsDLQ: getEnv("KAFKA_TOPIC_LEDGER_MUTATIONS_DLQ", ctopics.LedgerMutationsDLQ),

		LoadTimeout: time.Duration(getEnvInt("LOAD_TIMEOUT_SECONDS", 15)) * time.Second,
		SyncMode:    getEnv("SYNC_MODE", SyncDirect),
	}

	// Portas padrão por serviço
	switch svc {
	case "sheet-sync-worker":
		cfg.HTTPPort = getEnv("HTTP_PORT_SYNC", "") // worker não expõe HTTP público
		cfg.MetricsPort = getEnv("METRICS_PORT_SYNC", "9096")
	default:
		cfg.HTTPPort = getEnv("HTTP_PORT", "8080")
		cfg.MetricsPort = getEnv("METRICS_PORT", "9095")
	}

	return cfg
}

// getEnv retorna o valor da variável de ambiente ou o default
func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

// getEnvInt idem, com conversão para int
func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
