// Package api serves read-only projections of the world over HTTP.
// GET endpoints are public; the admin control plane (speed, save) is POST
// behind a bearer token.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/MarcinGorn/businesssuite/internal/engine"
	"github.com/MarcinGorn/businesssuite/internal/persistence"
)

// Server serves the simulation state over HTTP.
type Server struct {
	Engine   *engine.Engine
	Runner   *engine.Runner
	DB       *persistence.DB
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/pnl", s.handlePnL)
	mux.HandleFunc("/api/v1/balance-sheet", s.handleBalanceSheet)
	mux.HandleFunc("/api/v1/objectives", s.handleObjectives)
	mux.HandleFunc("/api/v1/stocks", s.handleStocks)
	mux.HandleFunc("/api/v1/stocks/", s.handleStockHistory)
	mux.HandleFunc("/api/v1/ledger", s.handleLedger)
	mux.HandleFunc("/api/v1/businesses", s.handleBusinesses)
	mux.HandleFunc("/api/v1/cities", s.handleCities)
	mux.HandleFunc("/api/v1/saves", s.handleSaves)

	mux.HandleFunc("/api/v1/speed", s.adminOnly(s.handleSpeed))
	mux.HandleFunc("/api/v1/save", s.adminOnly(s.handleSave))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// adminOnly wraps a handler to require bearer token auth on POST requests.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if s.AdminKey == "" {
				http.Error(w, "admin endpoints disabled (no BIZSIM_ADMIN_KEY set)", http.StatusForbidden)
				return
			}
			if !s.checkBearerToken(r) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		next(w, r)
	}
}

func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Engine.Status())
}

func (s *Server) handlePnL(w http.ResponseWriter, r *http.Request) {
	pnl, ok := s.Engine.PnL()
	if !ok {
		http.Error(w, "ledger not enabled", http.StatusNotFound)
		return
	}
	writeJSON(w, pnl)
}

func (s *Server) handleBalanceSheet(w http.ResponseWriter, r *http.Request) {
	bs, ok := s.Engine.BalanceSheet()
	if !ok {
		http.Error(w, "ledger not enabled", http.StatusNotFound)
		return
	}
	writeJSON(w, bs)
}

func (s *Server) handleObjectives(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Engine.Objectives())
}

func (s *Server) handleStocks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Engine.Tickers())
}

// handleStockHistory serves GET /api/v1/stocks/{ticker}.
func (s *Server) handleStockHistory(w http.ResponseWriter, r *http.Request) {
	ticker := strings.TrimPrefix(r.URL.Path, "/api/v1/stocks/")
	if ticker == "" {
		http.Error(w, "missing ticker", http.StatusBadRequest)
		return
	}
	history, ok := s.Engine.PriceHistory(strings.ToUpper(ticker))
	if !ok {
		http.Error(w, "unknown ticker", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]any{"ticker": strings.ToUpper(ticker), "history": history})
}

func (s *Server) handleLedger(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	writeJSON(w, s.Engine.LedgerTail(limit))
}

func (s *Server) handleBusinesses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Engine.Businesses())
}

func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Engine.Cities())
}

func (s *Server) handleSaves(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "persistence not enabled", http.StatusNotFound)
		return
	}
	slots, err := s.DB.ListSlots()
	if err != nil {
		http.Error(w, "list slots failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, slots)
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		var req struct {
			Speed float64 `json:"speed"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Speed < 0 || req.Speed > 1000 {
			http.Error(w, "speed must be 0-1000", http.StatusBadRequest)
			return
		}
		s.Runner.SetSpeed(req.Speed)
	}
	writeJSON(w, map[string]float64{"speed": s.Runner.Speed()})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.DB == nil {
		http.Error(w, "persistence not enabled", http.StatusNotFound)
		return
	}
	var req struct {
		Slot int `json:"slot"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.Slot < 0 {
		http.Error(w, "slot must be non-negative", http.StatusBadRequest)
		return
	}
	if err := s.Engine.SaveTo(s.DB, req.Slot, false); err != nil {
		http.Error(w, "save failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"saved": true, "slot": req.Slot})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
