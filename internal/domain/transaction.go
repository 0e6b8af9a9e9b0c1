package domain

// ShippingFee é a taxa fixa de entrega somada a todo checkout, em won.
const ShippingFee = 3000

// StatusPaid é o status inicial (e único) de uma transação registrada:
// não existe fase de liquidação, o pagamento é simulado e concluído na hora.
const StatusPaid = "결제 완료"

// TransactionItem é a fotografia de um item no momento do pagamento.
type TransactionItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"imageUrl"`
}

// Subtotal retorna o valor do item (preço x quantidade).
func (i TransactionItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// ShippingInfo congela o formulário de entrega preenchido no checkout.
type ShippingInfo struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	DetailAddress string `json:"detailAddress"`
	ZipCode       string `json:"zipCode"`
}

// Complete informa se os campos obrigatórios do formulário foram preenchidos.
// O endereço detalhado é opcional.
func (s ShippingInfo) Complete() bool {
	return s.Name != "" && s.Phone != "" && s.Address != "" && s.ZipCode != ""
}

// Transaction é o registro imutável de uma compra simulada concluída.
// Uma vez anexada ao livro-razão local, nunca é alterada nem removida.
// O registro não é amarrado à identidade da sessão no momento da escrita.
type Transaction struct {
	ID            string            `json:"id"`
	Date          string            `json:"date"` // formato YYYY-MM-DD
	Products      []TransactionItem `json:"products"`
	ShippingInfo  ShippingInfo      `json:"shippingInfo"`
	Amount        float64           `json:"amount"`
	PaymentMethod string            `json:"paymentMethod"`
	Status        string            `json:"status"`
}

// CheckoutResult é o resultado estruturado da operação de checkout.
type CheckoutResult struct {
	Success     bool         `json:"success"`
	Transaction *Transaction `json:"transaction,omitempty"`
	Message     string       `json:"message,omitempty"`
}
