// Small HTTP front over the transfer coordinator, backed by the
// in-memory store. Amounts cross the wire as decimals and are held as
// integer units internally.
package main

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/fund-transfer-system/internal/config"
	"github.com/sheikh-saqib/fund-transfer-system/internal/events/kafka"
	"github.com/sheikh-saqib/fund-transfer-system/internal/interfaces"
	"github.com/sheikh-saqib/fund-transfer-system/internal/models"
	"github.com/sheikh-saqib/fund-transfer-system/internal/pkg/logger"
	"github.com/sheikh-saqib/fund-transfer-system/internal/schema"
	"github.com/sheikh-saqib/fund-transfer-system/internal/storage/memory"
	"github.com/sheikh-saqib/fund-transfer-system/internal/transfer"
)

func main() {
	log, err := logger.New(config.LogMode())
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	config.Load(log)

	store := memory.NewStore()
	store.Seed(schema.SeedAccounts())

	var publisher interfaces.EventPublisher
	if brokers := config.KafkaBrokers(log); len(brokers) > 0 {
		p := kafka.NewPublisher(brokers, kafka.TransferCompletedTopic)
		defer p.Close()
		publisher = p
	}
	coordinator := transfer.NewCoordinator(store, publisher, log)

	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	http.HandleFunc("/transfers", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var req struct {
			FromAccount   string          `json:"from_account"`
			ToAccount     string          `json:"to_account"`
			Amount        decimal.Decimal `json:"amount"`
			SimulateFault bool            `json:"simulate_fault"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if !req.Amount.IsInteger() {
			http.Error(w, "amount must be a whole number of units", http.StatusBadRequest)
			return
		}

		t := models.NewTransfer(req.FromAccount, req.ToAccount, req.Amount.IntPart())
		t.SimulateFault = req.SimulateFault

		outcome := coordinator.Transfer(r.Context(), t)

		resp := struct {
			TransferID string `json:"transfer_id"`
			Outcome    string `json:"outcome"`
			Reason     string `json:"reason,omitempty"`
		}{
			TransferID: t.ID.String(),
			Outcome:    string(outcome.State),
		}
		if outcome.Reason != nil {
			resp.Reason = outcome.Reason.Error()
		}

		w.Header().Set("Content-Type", "application/json")
		if outcome.Committed() {
			w.WriteHeader(http.StatusCreated)
		} else {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}
		json.NewEncoder(w).Encode(resp)
	})

	http.HandleFunc("/accounts/balances", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		balances, err := coordinator.ListBalances(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		type row struct {
			AccountNumber string          `json:"account_number"`
			Balance       decimal.Decimal `json:"balance"`
		}
		out := make([]row, 0, len(balances))
		for _, b := range balances {
			out = append(out, row{AccountNumber: b.AccountNumber, Balance: decimal.NewFromInt(b.Balance)})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(out)
	})

	addr := ":" + config.Getenv("PORT", "8080", log)
	log.Info("starting server", "addr", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
