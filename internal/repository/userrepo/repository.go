package userrepo

import (
	"context"
	"fmt"

	"farmmarket/internal/domain"
	"farmmarket/internal/pkg/logger"
	"farmmarket/internal/pkg/rest"
)

// UserRepository dá acesso ao diretório remoto de usuários (/users).
// O diretório é a fonte de verdade para autenticação e perfil; o serviço de
// sessão só persiste localmente depois que o remoto confirma.
type UserRepository struct {
	client *rest.Client
	logger logger.Logger
}

// NewUserRepository cria uma nova instância do repositório de usuários.
func NewUserRepository(client *rest.Client, log logger.Logger) *UserRepository {
	return &UserRepository{client: client, logger: log}
}

// List busca o diretório completo de usuários.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	r.logger.Debug("Buscando diretório de usuários no remoto.", nil)

	var users []domain.User
	if err := r.client.GetJSON(ctx, "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Create submete um novo usuário ao diretório e retorna o registro criado.
func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	r.logger.Debug("Criando usuário no diretório remoto.",
		map[string]interface{}{"user_id": user.ID, "email": user.Email})

	var created domain.User
	if err := r.client.PostJSON(ctx, "/users", user, &created); err != nil {
		return domain.User{}, err
	}
	return created, nil
}

// Update aplica o registro completo via PATCH e retorna o documento
// atualizado pelo servidor, que é o que o serviço de sessão comita.
func (r *UserRepository) Update(ctx context.Context, id string, user domain.User) (domain.User, error) {
	r.logger.Debug("Atualizando usuário no diretório remoto.",
		map[string]interface{}{"user_id": id})

	var updated domain.User
	if err := r.client.PatchJSON(ctx, fmt.Sprintf("/users/%s", id), user, &updated); err != nil {
		return domain.User{}, err
	}
	return updated, nil
}
