package producer

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/segmentio/kafka-go"

	skafka "github.com/bancagelo/apostas-ledger/internal/shared/kafka"
	"github.com/bancagelo/apostas-ledger/pkg/contracts/events"
)

// KafkaPublisher publica cada mutação do livro no tópico ledger_mutations.
// O sheet-sync-worker consome e aplica na planilha; daqui pra frente é
// melhor esforço.
type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(w *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: w}
}

// Apply implementa store.Syncer. A chave é o id da entidade, pra manter a
// ordem das mutações de um mesmo registro dentro da partição.
func (p *KafkaPublisher) Apply(ctx context.Context, m events.LedgerMutation) error {
	b, _ := json.Marshal(m)
	return skafka.WriteJSON(ctx, p.Writer, strconv.FormatInt(m.ID, 10), b)
}
