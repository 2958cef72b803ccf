package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bancagelo/apostas-ledger/internal/ledger"
	"github.com/bancagelo/apostas-ledger/pkg/contracts/events"
)

var ErrNotFound = errors.New("not found")

// Loader carrega as três coleções da planilha remota.
type Loader interface {
	GetBets(ctx context.Context) ([]ledger.Bet, error)
	GetBettors(ctx context.Context) ([]ledger.Bettor, error)
	GetUsers(ctx context.Context) ([]ledger.User, error)
}

// Syncer recebe a notificação de cada mutação local. Implementado pelo
// cliente de planilha (modo direct) e pelo publisher Kafka (modo kafka).
type Syncer interface {
	Apply(ctx context.Context, m events.LedgerMutation) error
}

// Store guarda as três coleções em memória. O estado local é a fonte de
// verdade da sessão: cada mutação é aplicada aqui sob lock e notificada ao
// destino remoto em melhor esforço, sem reconciliação — falha de sync é
// logada e o estado segue divergente até o próximo reload completo.
type Store struct {
	mu     sync.RWMutex
	log    *zap.Logger
	syncer Syncer
	now    func() time.Time

	bets    []ledger.Bet
	bettors []ledger.Bettor
	users   []ledger.User

	// callbacks de métricas
	OnMutation  func(action string)
	OnSyncOK    func(action string)
	OnSyncError func(action string)
}

func New(log *zap.Logger, syncer Syncer) *Store {
	return &Store{log: log, syncer: syncer, now: time.Now}
}

// Load busca as três coleções concorrentemente e só aceita o resultado se as
// três derem certo — sem modo degradado com dados parciais. O contexto
// recebido limita a espera (LOAD_TIMEOUT).
func (s *Store) Load(ctx context.Context, src Loader) error {
	var (
		bets    []ledger.Bet
		bettors []ledger.Bettor
		users   []ledger.User
	)

	errc := make(chan error, 3)
	go func() {
		var err error
		bets, err = src.GetBets(ctx)
		errc <- err
	}()
	go func() {
		var err error
		bettors, err = src.GetBettors(ctx)
		errc <- err
	}()
	go func() {
		var err error
		users, err = src.GetUsers(ctx)
		errc <- err
	}()

	for i := 0; i < 3; i++ {
		select {
		case err := <-errc:
			if err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	ledger.SortNewestFirst(bets)

	s.mu.Lock()
	s.bets, s.bettors, s.users = bets, bettors, users
	s.mu.Unlock()

	s.log.Info("collections loaded",
		zap.Int("bets", len(bets)),
		zap.Int("bettors", len(bettors)),
		zap.Int("users", len(users)),
	)
	return nil
}

// Bets devolve uma cópia do histórico, opcionalmente filtrado por status
// ("" ou "ALL" devolve tudo).
func (s *Store) Bets(status string) []ledger.Bet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if status == "" || status == "ALL" {
		return append([]ledger.Bet(nil), s.bets...)
	}
	want := ledger.Status(status)
	out := make([]ledger.Bet, 0, len(s.bets))
	for _, b := range s.bets {
		if b.Status == want {
			out = append(out, b)
		}
	}
	return out
}

func (s *Store) BetByID(id int64) (ledger.Bet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bets {
		if b.ID == id {
			return b, nil
		}
	}
	return ledger.Bet{}, ErrNotFound
}

func (s *Store) Bettors() []ledger.Bettor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ledger.Bettor(nil), s.bettors...)
}

func (s *Store) Users() []ledger.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ledger.User(nil), s.users...)
}

// Snapshot devolve apostas e apostadores de uma vez, pra agregações que
// precisam das duas coleções coerentes.
func (s *Store) Snapshot() ([]ledger.Bet, []ledger.Bettor) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ledger.Bet(nil), s.bets...), append([]ledger.Bettor(nil), s.bettors...)
}

// AddBet insere a aposta no topo do histórico (mais recente primeiro),
// atribuindo id e data quando ausentes.
func (s *Store) AddBet(b ledger.Bet) ledger.Bet {
	s.mu.Lock()
	if b.ID == 0 {
		b.ID = s.now().UnixMilli()
	}
	if b.Date == "" {
		b.Date = s.now().Format("2006-01-02")
	}
	s.bets = append([]ledger.Bet{b}, s.bets...)
	s.mu.Unlock()

	s.notify(payloadMutation(events.ActionAddBet, b))
	return b
}

// EditBet substitui a aposta de mesmo id, mantendo a posição no histórico.
func (s *Store) EditBet(b ledger.Bet) error {
	s.mu.Lock()
	idx := s.betIndex(b.ID)
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.bets[idx] = b
	s.mu.Unlock()

	s.notify(payloadMutation(events.ActionEditBet, b))
	return nil
}

// DeleteBet remove definitivamente (hard delete, sem tombstone).
func (s *Store) DeleteBet(id int64) error {
	s.mu.Lock()
	idx := s.betIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.bets = append(s.bets[:idx], s.bets[idx+1:]...)
	s.mu.Unlock()

	s.notify(events.LedgerMutation{Action: events.ActionDeleteBet, ID: id})
	return nil
}

// UpdateBetStatus aplica uma transição de status. Com isCashout, profit é o
// override do operador e o status resultante é sempre WIN; sem cashout o
// lucro derivado é recalculado pelas odds, descartando override anterior.
func (s *Store) UpdateBetStatus(id int64, status ledger.Status, profit *float64, isCashout bool) (ledger.Bet, error) {
	s.mu.Lock()
	idx := s.betIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return ledger.Bet{}, ErrNotFound
	}
	b := s.bets[idx]
	if isCashout && profit != nil {
		b = b.WithCashout(*profit)
	} else {
		b = b.WithStatus(status)
	}
	s.bets[idx] = b
	s.mu.Unlock()

	p := b.PotentialProfit
	s.notify(events.LedgerMutation{
		Action:    events.ActionUpdateBetStatus,
		ID:        b.ID,
		Status:    string(b.Status),
		Profit:    &p,
		IsCashout: b.IsCashout,
	})
	return b, nil
}

// AddBettor cadastra um apostador Ativo com a data corrente.
func (s *Store) AddBettor(name, avatar string) ledger.Bettor {
	s.mu.Lock()
	bt := ledger.Bettor{
		ID:     s.now().UnixMilli(),
		Name:   name,
		Date:   s.now().Format("2006-01-02"),
		Status: ledger.StatusActive,
		Avatar: avatar,
	}
	s.bettors = append(s.bettors, bt)
	s.mu.Unlock()

	s.notify(payloadMutation(events.ActionAddBettor, bt))
	return bt
}

// DeleteBettor remove o cadastro. Não há cascade: apostas antigas seguem
// referenciando o nome e continuam contando nas agregações.
func (s *Store) DeleteBettor(id int64) error {
	s.mu.Lock()
	idx := -1
	for i, bt := range s.bettors {
		if bt.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.bettors = append(s.bettors[:idx], s.bettors[idx+1:]...)
	s.mu.Unlock()

	s.notify(events.LedgerMutation{Action: events.ActionDeleteBettor, ID: id})
	return nil
}

// ToggleBettorStatus alterna Ativo/Inativo.
func (s *Store) ToggleBettorStatus(id int64) (ledger.Bettor, error) {
	s.mu.Lock()
	idx := -1
	for i, bt := range s.bettors {
		if bt.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ledger.Bettor{}, ErrNotFound
	}
	bt := s.bettors[idx].Toggled()
	s.bettors[idx] = bt
	s.mu.Unlock()

	s.notify(events.LedgerMutation{
		Action: events.ActionUpdateBettorStatus,
		ID:     bt.ID,
		Status: bt.Status,
	})
	return bt, nil
}

// AddUser cadastra uma conta de acesso.
func (s *Store) AddUser(u ledger.User) ledger.User {
	s.mu.Lock()
	if u.ID == 0 {
		u.ID = s.now().UnixMilli()
	}
	if u.Status == "" {
		u.Status = ledger.StatusActive
	}
	s.users = append(s.users, u)
	s.mu.Unlock()

	s.notify(payloadMutation(events.ActionAddUser, u))
	return u
}

func (s *Store) DeleteUser(id int64) error {
	s.mu.Lock()
	idx := -1
	for i, u := range s.users {
		if u.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.users = append(s.users[:idx], s.users[idx+1:]...)
	s.mu.Unlock()

	s.notify(events.LedgerMutation{Action: events.ActionDeleteUser, ID: id})
	return nil
}

// betIndex procura por id; chamar com o lock tomado.
func (s *Store) betIndex(id int64) int {
	for i, b := range s.bets {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// notify dispara a sincronização remota em melhor esforço, fora do caminho
// da requisição. O resultado não reconcilia o estado local.
func (s *Store) notify(m events.LedgerMutation) {
	if s.OnMutation != nil {
		s.OnMutation(m.Action)
	}
	if s.syncer == nil {
		return
	}
	m.TsUnixMs = s.now().UnixMilli()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.syncer.Apply(ctx, m); err != nil {
			s.log.Warn("remote sync failed",
				zap.String("action", m.Action),
				zap.Int64("id", m.ID),
				zap.Error(err),
			)
			if s.OnSyncError != nil {
				s.OnSyncError(m.Action)
			}
			return
		}
		if s.OnSyncOK != nil {
			s.OnSyncOK(m.Action)
		}
	}()
}

func payloadMutation(action string, entity any) events.LedgerMutation {
	raw, _ := json.Marshal(entity)
	return events.LedgerMutation{Action: action, Payload: raw}
}
