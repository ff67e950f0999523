// Package payment simulates the payment provider the production system
// would talk to. Outcomes are probabilistic booleans, not errors.
package payment

import (
	"math/rand"
	"sync"

	"github.com/google/uuid"
)

// DepositWallet is the fixed address buyers are asked to pay into.
const DepositWallet = "UQAaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

const (
	paymentFoundRate    = 0.7
	purchaseSuccessRate = 0.8
)

// Simulator produces simulated payment outcomes from an injected random
// source, so tests can pin the dice.
type Simulator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulator builds a simulator around src. A nil source seeds from
// the clock via the global generator's source semantics.
func NewSimulator(src rand.Source) *Simulator {
	if src == nil {
		src = rand.NewSource(rand.Int63())
	}
	return &Simulator{rng: rand.New(src)}
}

// CheckPayment reports whether the buyer's transfer was found. A miss is
// a normal outcome, not a failure.
func (s *Simulator) CheckPayment() bool {
	return s.roll() < paymentFoundRate
}

// ExecutePurchase reports whether the simulated gift transfer went through.
func (s *Simulator) ExecutePurchase() bool {
	return s.roll() < purchaseSuccessRate
}

func (s *Simulator) roll() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// Invoice is a generated payment request.
type Invoice struct {
	InvoiceID     string  `json:"invoice_id"`
	WalletAddress string  `json:"wallet_address"`
	Amount        float64 `json:"amount"`
}

// GenerateInvoice creates a payment request for the given amount against
// the deposit wallet.
func GenerateInvoice(amount float64) Invoice {
	return Invoice{
		InvoiceID:     uuid.NewString(),
		WalletAddress: DepositWallet,
		Amount:        amount,
	}
}
