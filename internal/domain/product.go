package domain

// Product representa o item do catálogo do marketplace.
// O núcleo de estado não é dono desta entidade: as telas de produto a
// consomem diretamente através do repositório, que compartilha o mesmo
// cliente remoto das demais camadas.
type Product struct {
	ID          string  `json:"id"`
	FarmerID    string  `json:"farmerId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	Stock       int     `json:"stock"`
}
