package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bancagelo/apostas-ledger/internal/ledger"
	"github.com/bancagelo/apostas-ledger/internal/ledger-service/dto"
	"github.com/bancagelo/apostas-ledger/internal/ledger-service/session"
	"github.com/bancagelo/apostas-ledger/internal/ledger-service/store"
)

const sessionTTL = 12 * time.Hour

// Server expõe a API JSON do livro de apostas: login, mutações e as visões
// agregadas (dashboard, ranking, relatórios).
type Server struct {
	log      *zap.Logger
	store    *store.Store
	sessions session.TokenStore

	// callbacks de métricas
	OnLogin func(result string)
}

func NewServer(log *zap.Logger, st *store.Store, sessions session.TokenStore) *Server {
	return &Server{log: log, store: st, sessions: sessions}
}

// Router monta as rotas. Leitura exige sessão; escrita exige papel admin.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /login", s.login)
	mux.HandleFunc("POST /logout", s.logout)

	// histórico
	mux.HandleFunc("GET /v1/bets", s.withAuth(s.listBets))
	mux.HandleFunc("GET /v1/bets/{id}", s.withAuth(s.getBet))
	mux.HandleFunc("POST /v1/bets", s.withAdmin(s.addBet))
	mux.HandleFunc("PUT /v1/bets/{id}", s.withAdmin(s.editBet))
	mux.HandleFunc("DELETE /v1/bets/{id}", s.withAdmin(s.deleteBet))
	mux.HandleFunc("POST /v1/bets/{id}/status", s.withAdmin(s.updateBetStatus))

	// apostadores
	mux.HandleFunc("GET /v1/bettors", s.withAuth(s.listBettors))
	mux.HandleFunc("POST /v1/bettors", s.withAdmin(s.addBettor))
	mux.HandleFunc("DELETE /v1/bettors/{id}", s.withAdmin(s.deleteBettor))
	mux.HandleFunc("POST /v1/bettors/{id}/status", s.withAdmin(s.toggleBettorStatus))

	// acessos
	mux.HandleFunc("GET /v1/users", s.withAdmin(s.listUsers))
	mux.HandleFunc("POST /v1/users", s.withAdmin(s.addUser))
	mux.HandleFunc("DELETE /v1/users/{id}", s.withAdmin(s.deleteUser))

	// visões agregadas
	mux.HandleFunc("GET /v1/dashboard", s.withAuth(s.dashboard))
	mux.HandleFunc("GET /v1/ranking", s.withAuth(s.ranking))
	mux.HandleFunc("GET /v1/reports", s.withAuth(s.reports))

	return mux
}

// authed é um handler que já recebeu a sessão validada.
type authed func(w http.ResponseWriter, r *http.Request, sess session.Session)

// withAuth valida o token Bearer antes de chamar o handler.
func (s *Server) withAuth(next authed) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "token required")
			return
		}
		sess, ok, err := s.sessions.Get(r.Context(), token)
		if err != nil {
			s.log.Warn("session lookup failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "session store unavailable")
			return
		}
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid session")
			return
		}
		next(w, r, sess)
	}
}

// withAdmin restringe o handler a sessões admin.
func (s *Server) withAdmin(next authed) http.HandlerFunc {
	return s.withAuth(func(w http.ResponseWriter, r *http.Request, sess session.Session) {
		if !sess.IsAdmin() {
			writeError(w, http.StatusForbidden, "admin only")
			return
		}
		next(w, r, sess)
	})
}

// login confere as credenciais contra a lista de usuários carregada da
// planilha e abre a sessão. Conta inativa recebe 403, distinto do 401 de
// credenciais erradas.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	sess, err := session.Login(s.store.Users(), req.Username, req.Password)
	switch {
	case err == session.ErrInactiveUser:
		s.countLogin("inactive")
		writeError(w, http.StatusForbidden, err.Error())
		return
	case err != nil:
		s.countLogin("invalid")
		writeError(w, http.StatusUnauthorized, session.ErrInvalidCredentials.Error())
		return
	}

	token := session.NewToken()
	if err := s.sessions.Put(r.Context(), token, sess, sessionTTL); err != nil {
		s.log.Error("session store", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "session store unavailable")
		return
	}

	s.countLogin("success")
	s.log.Info("login", zap.String("username", sess.Username), zap.String("role", sess.Role))
	writeJSON(w, http.StatusOK, dto.LoginResponse{Token: token, Session: sess})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if token := bearerToken(r); token != "" {
		_ = s.sessions.Delete(r.Context(), token)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) countLogin(result string) {
	if s.OnLogin != nil {
		s.OnLogin(result)
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// periodQuery lê os parâmetros de recorte comuns às visões: period
// (default Geral), ref (data de referência, default agora) e start/end
// do modo Periodo.
func periodQuery(r *http.Request) (ledger.Period, time.Time, string, string) {
	q := r.URL.Query()
	period := ledger.Period(q.Get("period"))
	if period == "" {
		period = ledger.PeriodAll
	}
	var ref time.Time
	if v := q.Get("ref"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			ref = t
		}
	}
	return period, ref, q.Get("start"), q.Get("end")
}

func modeQuery(r *http.Request) ledger.Mode {
	if ledger.Mode(r.URL.Query().Get("mode")) == ledger.ModeUnits {
		return ledger.ModeUnits
	}
	return ledger.ModeMoney
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
