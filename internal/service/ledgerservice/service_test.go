package ledgerservice_test

import (
	"context"
	"io"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"farmmarket/internal/domain"
	"farmmarket/internal/pkg/cacheport"
	"farmmarket/internal/pkg/logger"
	"farmmarket/internal/service/ledgerservice"
)

func quietLogger() logger.Logger {
	return logger.NewLoggerTo("fatal", io.Discard)
}

func newFixture() (*ledgerservice.Service, *cacheport.MemoryPort) {
	cache := cacheport.NewMemoryPort(quietLogger())
	svc := ledgerservice.NewService(cache, quietLogger())
	return svc, cache
}

var (
	shipping = domain.ShippingInfo{
		Name:    "김철수",
		Phone:   "010-1234-5678",
		Address: "서울시 강남구",
		ZipCode: "06000",
	}
	items = []domain.TransactionItem{
		{ID: "p1", Name: "유기농 감자", Quantity: 2, Price: 5000, ImageURL: "/img/p1.jpg"},
		{ID: "p2", Name: "방울토마토", Quantity: 1, Price: 8000, ImageURL: "/img/p2.jpg"},
	}
)

// TestCheckout_Success: congela a transação com subtotais + taxa de entrega,
// status de conclusão e identificador TRX-<ms>-<sufixo>, e a anexa.
func TestCheckout_Success(t *testing.T) {
	svc, _ := newFixture()

	result := svc.Checkout(context.Background(), items, shipping, "카드결제", true)

	assert.True(t, result.Success)
	assert.Equal(t, domain.MsgCheckoutDone, result.Message)
	if !assert.NotNil(t, result.Transaction) {
		return
	}
	tx := *result.Transaction

	// 2x5000 + 1x8000 + 3000 de entrega
	assert.Equal(t, float64(21000), tx.Amount)
	assert.Equal(t, domain.StatusPaid, tx.Status)
	assert.Equal(t, "카드결제", tx.PaymentMethod)
	assert.Equal(t, shipping, tx.ShippingInfo)
	assert.Equal(t, items, tx.Products)
	assert.Regexp(t, regexp.MustCompile(`^TRX-\d+-\d+$`), tx.ID)
	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), tx.Date)

	persisted := svc.List(context.Background())
	if assert.Len(t, persisted, 1) {
		assert.Equal(t, tx.ID, persisted[0].ID)
	}
}

// TestCheckout_BuyNow: no fluxo de compra direta há um único item e o total
// é preço x quantidade dele, mais a entrega.
func TestCheckout_BuyNow(t *testing.T) {
	svc, _ := newFixture()
	buyNow := []domain.TransactionItem{
		{ID: "p3", Name: "사과 한 박스", Quantity: 3, Price: 12000},
	}

	result := svc.Checkout(context.Background(), buyNow, shipping, "무통장입금", true)

	assert.True(t, result.Success)
	assert.Equal(t, float64(3*12000+domain.ShippingFee), result.Transaction.Amount)
}

// TestCheckout_Validations: cada pré-condição incompleta curto-circuita com
// a sua mensagem, antes de qualquer escrita no livro-razão.
func TestCheckout_Validations(t *testing.T) {
	tests := []struct {
		name     string
		items    []domain.TransactionItem
		shipping domain.ShippingInfo
		method   string
		agreed   bool
		wantMsg  string
	}{
		{"sem itens", nil, shipping, "카드결제", true, domain.MsgCheckoutEmpty},
		{"entrega incompleta", items, domain.ShippingInfo{Name: "김철수"}, "카드결제", true, domain.MsgCheckoutNeedShipping},
		{"sem método de pagamento", items, shipping, "", true, domain.MsgCheckoutNeedMethod},
		{"sem aceite dos termos", items, shipping, "카드결제", false, domain.MsgCheckoutNeedAgreement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, cache := newFixture()

			result := svc.Checkout(context.Background(), tt.items, tt.shipping, tt.method, tt.agreed)

			assert.False(t, result.Success)
			assert.Equal(t, tt.wantMsg, result.Message)
			assert.Nil(t, result.Transaction)

			var persisted []domain.Transaction
			assert.False(t, cache.Load(context.Background(), cacheport.KeyTransactions, &persisted),
				"nenhuma escrita deve ocorrer em falha de validação")
		})
	}
}

// TestAppend_NewestFirst: após append(t1) e append(t2), a lista persistida é
// [t2, t1] e nenhuma entrada anterior foi alterada.
func TestAppend_NewestFirst(t *testing.T) {
	svc, cache := newFixture()

	t1 := domain.Transaction{ID: "TRX-1", Amount: 10000, Status: domain.StatusPaid}
	t2 := domain.Transaction{ID: "TRX-2", Amount: 20000, Status: domain.StatusPaid}

	svc.Append(context.Background(), t1)
	svc.Append(context.Background(), t2)

	list := svc.List(context.Background())
	if assert.Len(t, list, 2) {
		assert.Equal(t, "TRX-2", list[0].ID)
		assert.Equal(t, "TRX-1", list[1].ID)
		assert.Equal(t, float64(10000), list[1].Amount)
	}

	// O log é independente da instância: um serviço novo sobre o mesmo porto
	// enxerga as mesmas entradas.
	fresh := ledgerservice.NewService(cache, quietLogger())
	assert.Len(t, fresh.List(context.Background()), 2)
}

// TestList_CorruptTreatedEmpty: lista persistida corrompida é tratada como
// vazia, e o próximo append recomeça o log sem pânico.
func TestList_CorruptTreatedEmpty(t *testing.T) {
	svc, cache := newFixture()
	cache.Corrupt(cacheport.KeyTransactions, []byte("[{corrompido"))

	assert.Empty(t, svc.List(context.Background()))

	svc.Append(context.Background(), domain.Transaction{ID: "TRX-3"})
	list := svc.List(context.Background())
	if assert.Len(t, list, 1) {
		assert.Equal(t, "TRX-3", list[0].ID)
	}
}
