package http

import (
	"encoding/json"
	"math"
	"net/http"

	"go.uber.org/zap"

	"github.com/bancagelo/apostas-ledger/internal/ledger"
	"github.com/bancagelo/apostas-ledger/internal/ledger-service/dto"
	"github.com/bancagelo/apostas-ledger/internal/ledger-service/session"
)

// listBets devolve o histórico (mais recente primeiro), com filtros
// opcionais de status (ALL/PENDING/WIN/LOSS), período e apostador.
func (s *Server) listBets(w http.ResponseWriter, r *http.Request, _ session.Session) {
	bets := s.store.Bets(r.URL.Query().Get("status"))

	period, ref, start, end := periodQuery(r)
	bets = ledger.FilterByPeriod(bets, period, ref, start, end)

	if bettor := r.URL.Query().Get("bettor"); bettor != "" {
		filtered := bets[:0]
		for _, b := range bets {
			if b.Bettor == bettor {
				filtered = append(filtered, b)
			}
		}
		bets = filtered
	}

	out := make([]dto.BetResponse, 0, len(bets))
	for _, b := range bets {
		out = append(out, dto.BetResponse{Bet: b, CashoutEditValue: b.CashoutEditValue()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getBet(w http.ResponseWriter, r *http.Request, _ session.Session) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	b, err := s.store.BetByID(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, dto.BetResponse{Bet: b, CashoutEditValue: b.CashoutEditValue()})
}

// addBet valida e registra uma aposta PENDING. Falha de validação aborta
// sem mudança parcial de estado.
func (s *Server) addBet(w http.ResponseWriter, r *http.Request, sess session.Session) {
	var req dto.SaveBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if msg := validateSaveBet(req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	b := s.store.AddBet(ledger.NewBet(0, req.Date, req.Bettor, req.Selections, req.Stake))
	s.log.Info("bet added",
		zap.Int64("id", b.ID),
		zap.String("bettor", b.Bettor),
		zap.Float64("stake", b.Stake),
		zap.String("by", sess.Username),
	)
	writeJSON(w, http.StatusCreated, dto.BetResponse{Bet: b, CashoutEditValue: b.CashoutEditValue()})
}

// editBet regrava a aposta com seleções/stake novos, rederivando odds, tipo
// e lucro potencial. O status atual é mantido; um cashout anterior é
// descartado pelo recálculo.
func (s *Server) editBet(w http.ResponseWriter, r *http.Request, _ session.Session) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req dto.SaveBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if msg := validateSaveBet(req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	current, err := s.store.BetByID(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	date := req.Date
	if date == "" {
		date = current.Date
	}
	b := ledger.NewBet(id, date, req.Bettor, req.Selections, req.Stake).WithStatus(current.Status)
	if err := s.store.EditBet(b); err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, dto.BetResponse{Bet: b, CashoutEditValue: b.CashoutEditValue()})
}

func (s *Server) deleteBet(w http.ResponseWriter, r *http.Request, _ session.Session) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.store.DeleteBet(id); err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// updateBetStatus aplica uma transição de status ou um cashout.
func (s *Server) updateBetStatus(w http.ResponseWriter, r *http.Request, _ session.Session) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req dto.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	if req.IsCashout {
		if req.Profit == nil || math.IsNaN(*req.Profit) || math.IsInf(*req.Profit, 0) {
			writeError(w, http.StatusBadRequest, "valor de cashout inválido")
			return
		}
	}

	b, err := s.store.UpdateBetStatus(id, ledger.ParseStatus(req.Status), req.Profit, req.IsCashout)
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, dto.BetResponse{Bet: b, CashoutEditValue: b.CashoutEditValue()})
}

func (s *Server) listBettors(w http.ResponseWriter, _ *http.Request, _ session.Session) {
	writeJSON(w, http.StatusOK, s.store.Bettors())
}

func (s *Server) addBettor(w http.ResponseWriter, r *http.Request, _ session.Session) {
	var req dto.NewBettorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "nome obrigatório")
		return
	}
	bt := s.store.AddBettor(req.Name, req.Avatar)
	writeJSON(w, http.StatusCreated, bt)
}

func (s *Server) deleteBettor(w http.ResponseWriter, r *http.Request, _ session.Session) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.store.DeleteBettor(id); err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) toggleBettorStatus(w http.ResponseWriter, r *http.Request, _ session.Session) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	bt, err := s.store.ToggleBettorStatus(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, bt)
}

func (s *Server) listUsers(w http.ResponseWriter, _ *http.Request, _ session.Session) {
	writeJSON(w, http.StatusOK, s.store.Users())
}

func (s *Server) addUser(w http.ResponseWriter, r *http.Request, _ session.Session) {
	var req dto.NewUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "usuário e senha obrigatórios")
		return
	}
	u := s.store.AddUser(ledger.User{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Email:    req.Email,
		Role:     ledger.ParseRole(req.Role),
		Avatar:   req.Avatar,
	})
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request, _ session.Session) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.store.DeleteUser(id); err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// validateSaveBet cobre as falhas de validação de entrada: apostador ausente
// e stake não positiva.
func validateSaveBet(req dto.SaveBetRequest) string {
	if req.Bettor == "" {
		return "apostador obrigatório"
	}
	if req.Stake <= 0 {
		return "valor da aposta deve ser positivo"
	}
	if len(req.Selections) == 0 {
		return "pelo menos uma seleção"
	}
	return ""
}
