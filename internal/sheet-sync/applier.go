package sheetsync

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/bancagelo/apostas-ledger/internal/sheets"
	"github.com/bancagelo/apostas-ledger/pkg/contracts/events"
)

// MutationReader é o subconjunto de kafka.Reader que o Applier usa.
type MutationReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// MessageWriter é o subconjunto de kafka.Writer que o Applier usa pra DLQ.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Applier consome mutações do tópico ledger_mutations e aplica na planilha.
// Falha depois das tentativas vai pra DLQ; o resultado nunca volta pro
// estado do ledger-service (sincronização é melhor esforço por contrato).
type Applier struct {
	Log    *zap.Logger
	Reader MutationReader
	Sheets *sheets.Client
	DLQ    MessageWriter // opcional

	Attempts int // tentativas por mutação (default 3)

	// callbacks de métricas
	OnConsumed func()
	OnApplied  func()
	OnError    func(stage string)
}

// Run roda o loop principal até o contexto ser cancelado.
func (a *Applier) Run(ctx context.Context) error {
	for {
		msg, err := a.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			a.Log.Warn("kafka read failed", zap.Error(err))
			a.fail("read")
			time.Sleep(500 * time.Millisecond)
			continue
		}

		if a.OnConsumed != nil {
			a.OnConsumed()
		}

		var m events.LedgerMutation
		if err := json.Unmarshal(msg.Value, &m); err != nil {
			a.Log.Error("invalid mutation", zap.Error(err))
			a.fail("decode")
			continue
		}

		if err := a.apply(ctx, m); err != nil {
			a.Log.Error("apply mutation",
				zap.String("action", m.Action),
				zap.Int64("id", m.ID),
				zap.Error(err),
			)
			a.fail("apply")
			a.toDLQ(ctx, msg.Value)
			continue
		}

		if a.OnApplied != nil {
			a.OnApplied()
		}
	}
}

// apply tenta a mutação com backoff simples entre as tentativas.
func (a *Applier) apply(ctx context.Context, m events.LedgerMutation) error {
	attempts := a.Attempts
	if attempts <= 0 {
		attempts = 3
	}

	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-time.After(time.Duration(i) * time.Second):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err = a.Sheets.Apply(ctx, m); err == nil {
			return nil
		}
	}
	return err
}

func (a *Applier) toDLQ(ctx context.Context, value []byte) {
	if a.DLQ == nil {
		return
	}
	if err := a.DLQ.WriteMessages(ctx, kafka.Message{Value: value, Time: time.Now()}); err != nil {
		a.Log.Error("dlq write failed", zap.Error(err))
		a.fail("dlq")
	}
}

func (a *Applier) fail(stage string) {
	if a.OnError != nil {
		a.OnError(stage)
	}
}
