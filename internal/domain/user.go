package domain

// User representa a identidade autenticada e seu perfil público.
// É o mesmo documento armazenado no diretório remoto (/users) e,
// quando há sessão ativa, o snapshot persistido no cache local.
type User struct {
	ID              string   `json:"id"`
	Email           string   `json:"email"`
	Password        string   `json:"password,omitempty"` // diretório mock: senha em texto plano (não-objetivo de segurança)
	Name            string   `json:"name"`
	Role            UserRole `json:"role"`
	ProfileImageURL string   `json:"profileImageUrl"`
	ProfileBgURL    string   `json:"profileBgUrl"`
	Bio             string   `json:"bio"`
}

// UserRole é um tipo string para representar o papel do usuário no marketplace.
type UserRole string

// Constantes para os papéis de usuário.
const (
	RoleConsumer UserRole = "consumer"
	RoleFarmer   UserRole = "farmer"
)

// AuthResult é o resultado estruturado das operações de sessão
// (login, registro, atualização de perfil). As falhas de transporte e de
// domínio são dobradas aqui; nada é propagado como erro ao consumidor.
type AuthResult struct {
	Success bool   `json:"success"`
	User    *User  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
}
