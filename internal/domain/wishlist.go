package domain

// WishlistEntry é o marcador de interesse de um usuário por um produto.
// Invariante: no máximo uma entrada por par (UserID, ProductID).
type WishlistEntry struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
}

// WishlistResult é o resultado estruturado da operação de toggle.
// Message carrega o aviso exibível ao usuário (sucesso ou falha).
type WishlistResult struct {
	Success bool   `json:"success"`
	Added   bool   `json:"added"` // true se a entrada foi criada; false se removida
	Message string `json:"message,omitempty"`
}
