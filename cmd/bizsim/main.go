// Command bizsim runs the business strategy economy simulation.
package main

import (
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/dustin/go-humanize"

	"github.com/MarcinGorn/businesssuite/internal/api"
	"github.com/MarcinGorn/businesssuite/internal/bank"
	"github.com/MarcinGorn/businesssuite/internal/config"
	"github.com/MarcinGorn/businesssuite/internal/engine"
	"github.com/MarcinGorn/businesssuite/internal/entropy"
	"github.com/MarcinGorn/businesssuite/internal/finance"
	"github.com/MarcinGorn/businesssuite/internal/goals"
	"github.com/MarcinGorn/businesssuite/internal/persistence"
	"github.com/MarcinGorn/businesssuite/internal/rivals"
	"github.com/MarcinGorn/businesssuite/internal/stocks"
	"github.com/MarcinGorn/businesssuite/internal/supply"
	"github.com/MarcinGorn/businesssuite/internal/tax"
	"github.com/MarcinGorn/businesssuite/internal/world"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	seed := envInt64("BIZSIM_SEED", 42)
	dbPath := envStr("BIZSIM_DB", "data/bizsim.db")
	apiPort := int(envInt64("BIZSIM_PORT", 8080))
	adminKey := os.Getenv("BIZSIM_ADMIN_KEY")
	balancePath := envStr("BIZSIM_BALANCE", "balance.yaml")
	autosaveDays := int(envInt64("BIZSIM_AUTOSAVE_DAYS", 30))
	slot := int(envInt64("BIZSIM_SLOT", 0))

	os.MkdirAll(filepath.Dir(dbPath), 0755)
	db, err := persistence.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", dbPath)

	balance, err := config.Load(balancePath)
	if err != nil {
		slog.Warn("balance config unreadable, using defaults",
			"path", balancePath, "error", err)
	}

	state, err := db.Load(slot)
	if err != nil {
		slog.Error("failed to read save slot", "slot", slot, "error", err)
		os.Exit(1)
	}
	if state == nil {
		slog.Info("no saved world, starting fresh", "slot", slot, "seed", seed)
		state = world.NewState()
	}

	rng := entropy.NewSource(seed)
	ledger := finance.NewLedger(state)
	chain := supply.NewChain(state, rng)
	chain.ApplyBalance(balance)
	lender := bank.New(state, ledger)
	taxman := tax.New(state, ledger)
	taxman.ApplyBalance(balance)
	market := stocks.New(state, rng)
	market.ApplyBalance(balance)
	competitors := rivals.New(state, rng)
	tracker := goals.New(state)

	engCfg := engine.DefaultConfig()
	engCfg.Seed = seed
	eng := engine.New(state, engCfg, rng, engine.Deps{
		Supply: chain,
		Ledger: ledger,
		Bank:   lender,
		Taxes:  taxman,
		Stocks: market,
		Rivals: competitors,
		Goals:  tracker,
	})

	runner := engine.NewRunner(eng)
	runner.OnDay = func(day int) {
		if autosaveDays > 0 && day%autosaveDays == 0 {
			if err := eng.SaveTo(db, slot, true); err != nil {
				slog.Error("autosave failed", "error", err)
			}
		}
	}

	server := &api.Server{
		Engine:   eng,
		Runner:   runner,
		DB:       db,
		Port:     apiPort,
		AdminKey: adminKey,
	}
	server.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		runner.Stop()
	}()

	slog.Info("world ready",
		"cash", humanize.CommafWithDigits(state.Player.Cash, 2),
		"businesses", len(state.Businesses),
		"tick", state.Clock.Tick,
	)

	runner.Run()

	if err := eng.SaveTo(db, slot, false); err != nil {
		slog.Error("final save failed", "error", err)
		os.Exit(1)
	}
	slog.Info("final save complete", "slot", slot)
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
		slog.Warn("invalid numeric env var, using default", "key", key, "value", v)
	}
	return fallback
}
