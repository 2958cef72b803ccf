package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bancagelo/apostas-ledger/internal/ledger"
	"github.com/bancagelo/apostas-ledger/pkg/contracts/events"
)

// Client fala com a API de planilha remota (Google Apps Script ou
// equivalente). Leituras são GET ?action=...; escritas são POST com o corpo
// {action, ...}. A resposta de escrita só interessa como sinal de
// sucesso/falha.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(base string) *Client {
	return &Client{
		BaseURL: base,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// GetBets carrega e normaliza a coleção de apostas.
func (c *Client) GetBets(ctx context.Context) ([]ledger.Bet, error) {
	records, err := c.list(ctx, "getBets")
	if err != nil {
		return nil, err
	}
	bets := make([]ledger.Bet, 0, len(records))
	for _, r := range records {
		bets = append(bets, BetFromRecord(r))
	}
	return bets, nil
}

// GetBettors carrega e normaliza a coleção de apostadores.
func (c *Client) GetBettors(ctx context.Context) ([]ledger.Bettor, error) {
	records, err := c.list(ctx, "getBettors")
	if err != nil {
		return nil, err
	}
	bettors := make([]ledger.Bettor, 0, len(records))
	for _, r := range records {
		bettors = append(bettors, BettorFromRecord(r))
	}
	return bettors, nil
}

// GetUsers carrega e normaliza a coleção de usuários.
func (c *Client) GetUsers(ctx context.Context) ([]ledger.User, error) {
	records, err := c.list(ctx, "getUsers")
	if err != nil {
		return nil, err
	}
	users := make([]ledger.User, 0, len(records))
	for _, r := range records {
		users = append(users, UserFromRecord(r))
	}
	return users, nil
}

// Apply envia uma mutação do livro para a planilha. O corpo do evento já
// espelha o contrato da API, então vai como está.
func (c *Client) Apply(ctx context.Context, m events.LedgerMutation) error {
	body, _ := json.Marshal(m)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("sheets %s: %w", m.Action, err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return fmt.Errorf("sheets %s: http %d", m.Action, res.StatusCode)
	}

	var out struct {
		Result string `json:"result"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err == nil && out.Result == "error" {
		return fmt.Errorf("sheets %s: remote error", m.Action)
	}
	return nil
}

// list busca uma coleção crua. Cada registro vem como mapa solto porque a
// planilha alterna convenções de caixa e tipos; a normalização acontece nos
// *FromRecord.
func (c *Client) list(ctx context.Context, action string) ([]map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?action="+action, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sheets %s: %w", action, err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return nil, fmt.Errorf("sheets %s: http %d", action, res.StatusCode)
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("sheets %s: %w", action, err)
	}

	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("sheets %s: decode: %w", action, err)
	}
	return records, nil
}
