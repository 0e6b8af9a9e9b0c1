package ledgerservice

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"farmmarket/internal/domain"
	"farmmarket/internal/pkg/cacheport"
	"farmmarket/internal/pkg/logger"
)

// Service é o livro-razão local de transações: um log durável, ilimitado e
// somente-anexação de compras simuladas concluídas. O registro não é amarrado
// à identidade da sessão no momento da escrita (nenhuma checagem de dono).
type Service struct {
	cache  cacheport.Port
	logger logger.Logger
	now    func() time.Time

	// mu garante a atomicidade do read-modify-write da lista persistida:
	// checkouts concorrentes não podem perder atualizações.
	mu sync.Mutex
}

// NewService cria o serviço de livro-razão sobre o porto de cache.
func NewService(cache cacheport.Port, log logger.Logger) *Service {
	return &Service{
		cache:  cache,
		logger: log,
		now:    time.Now,
	}
}

// Checkout valida o estado de pagamento apresentado e, se completo, congela
// a transação e a anexa ao livro-razão. O pagamento é simulado: não existe
// fase de liquidação, o status inicial já é o de conclusão.
//
// items é a fotografia dos itens a pagar — a lista do carrinho ou, no fluxo
// de compra direta, o único item com sua quantidade.
func (s *Service) Checkout(ctx context.Context, items []domain.TransactionItem, shipping domain.ShippingInfo, paymentMethod string, agreedToTerms bool) domain.CheckoutResult {
	// Validações de domínio, na ordem em que a tela as apresenta.
	if len(items) == 0 {
		return domain.CheckoutResult{Success: false, Message: domain.MsgCheckoutEmpty}
	}
	if !shipping.Complete() {
		return domain.CheckoutResult{Success: false, Message: domain.MsgCheckoutNeedShipping}
	}
	if paymentMethod == "" {
		return domain.CheckoutResult{Success: false, Message: domain.MsgCheckoutNeedMethod}
	}
	if !agreedToTerms {
		return domain.CheckoutResult{Success: false, Message: domain.MsgCheckoutNeedAgreement}
	}

	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}

	now := s.now()
	tx := domain.Transaction{
		ID:            fmt.Sprintf("TRX-%d-%d", now.UnixMilli(), rand.Intn(1000)),
		Date:          now.Format("2006-01-02"),
		Products:      items,
		ShippingInfo:  shipping,
		Amount:        total + domain.ShippingFee,
		PaymentMethod: paymentMethod,
		Status:        domain.StatusPaid,
	}

	s.Append(ctx, tx)

	return domain.CheckoutResult{Success: true, Transaction: &tx, Message: domain.MsgCheckoutDone}
}

// Append anexa a transação ao topo da lista persistida (mais recente
// primeiro). Lista ausente ou corrompida é tratada como vazia. O acesso
// exclusivo à chave cobre a leitura e a escrita.
func (s *Service) Append(ctx context.Context, tx domain.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var transactions []domain.Transaction
	s.cache.Load(ctx, cacheport.KeyTransactions, &transactions)

	updated := make([]domain.Transaction, 0, len(transactions)+1)
	updated = append(updated, tx)
	updated = append(updated, transactions...)

	s.cache.Save(ctx, cacheport.KeyTransactions, updated)

	s.logger.Info("Transação registrada no livro-razão.",
		map[string]interface{}{"transaction_id": tx.ID, "amount": tx.Amount})
}

// List retorna as transações persistidas, mais recentes primeiro.
// Ausência ou corrupção resulta em lista vazia.
func (s *Service) List(ctx context.Context) []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	var transactions []domain.Transaction
	s.cache.Load(ctx, cacheport.KeyTransactions, &transactions)
	return transactions
}
