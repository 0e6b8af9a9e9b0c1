package authservice

import (
	"context"
	"fmt"
	"sync"
	"time"

	"farmmarket/internal/domain"
	"farmmarket/internal/pkg/cacheport"
	"farmmarket/internal/pkg/logger"
)

// Directory é o contrato que este serviço espera do diretório remoto de
// usuários (implementado por repository/userrepo).
type Directory interface {
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
	Update(ctx context.Context, id string, user domain.User) (domain.User, error)
}

// Service é o gerenciador de sessão: dono exclusivo do usuário ativo.
//
// Máquina de estados: Restaurando -> {Anônimo, Autenticado}. Ready() informa
// se a restauração inicial terminou; Loading() informa se há uma operação de
// autenticação em andamento.
//
// Toda mutação de sessão é serializada por uma geração monotônica: um
// resultado remoto que resolve depois de ser superado por um despacho mais
// novo é descartado sem comitar (last-writer-wins por despacho).
type Service struct {
	directory Directory
	cache     cacheport.Port
	logger    logger.Logger
	now       func() time.Time

	mu          sync.Mutex
	user        *domain.User
	ready       bool
	loading     bool
	generation  uint64
	subscribers []func(*domain.User)
}

// NewService cria o gerenciador de sessão, injetando o diretório remoto e o
// porto de cache persistente.
func NewService(directory Directory, cache cacheport.Port, log logger.Logger) *Service {
	return &Service{
		directory: directory,
		cache:     cache,
		logger:    log,
		now:       time.Now,
	}
}

// OnChange registra um observador de mudanças de sessão. O observador é
// chamado com o novo usuário (ou nil no logout) após cada transição
// confirmada. Registrar antes de Restore para não perder a transição inicial.
func (s *Service) OnChange(fn func(*domain.User)) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

// Restore é invocado uma única vez na inicialização: lê o snapshot da sessão
// do cache e transiciona para Autenticado (snapshot válido) ou Anônimo
// (ausente ou malformado — o porto já tratou a corrupção). Sempre termina
// ligando a flag ready, para que dependentes distingam "ainda restaurando"
// de "anônimo confirmado".
func (s *Service) Restore(ctx context.Context) {
	var snapshot domain.User
	found := s.cache.Load(ctx, cacheport.KeyAuthUser, &snapshot)

	s.mu.Lock()
	s.generation++
	if found {
		u := snapshot
		s.user = &u
		s.logger.Info("Sessão restaurada do cache.",
			map[string]interface{}{"user_id": u.ID})
	} else {
		s.user = nil
		s.logger.Info("Nenhuma sessão persistida; iniciando anônimo.", nil)
	}
	s.ready = true
	current := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(current)
}

// Login autentica contra o diretório remoto: busca todos os usuários e faz
// uma varredura linear por correspondência exata de (email, senha).
//
// Saídas possíveis, sempre como resultado estruturado:
//   - sucesso: a sessão é comitada e persistida, o usuário é retornado;
//   - falha de domínio: credenciais inválidas, estado intocado;
//   - falha de transporte: logada, mensagem genérica, sessão anterior intacta.
//
// A flag de loading é ligada no despacho e desligada em todo caminho de
// saída cujo despacho ainda é o mais recente.
func (s *Service) Login(ctx context.Context, email, password string) domain.AuthResult {
	gen := s.beginDispatch()

	users, err := s.directory.List(ctx)
	if err != nil {
		s.logger.Error("Falha ao buscar diretório de usuários no login.", err)
		s.endDispatch(gen)
		return domain.AuthResult{Success: false, Message: domain.MsgLoginError}
	}

	var found *domain.User
	for i := range users {
		if users[i].Email == email && users[i].Password == password {
			found = &users[i]
			break
		}
	}

	s.mu.Lock()
	if s.generation != gen {
		// Um despacho mais novo (login, logout, atualização) superou este
		// resultado: descarta sem comitar nem mexer na flag de loading.
		s.mu.Unlock()
		s.logger.Debug("Resultado de login obsoleto descartado.",
			map[string]interface{}{"email": email})
		return domain.AuthResult{Success: false, Message: domain.MsgLoginError}
	}
	s.loading = false

	if found == nil {
		s.mu.Unlock()
		return domain.AuthResult{Success: false, Message: domain.MsgInvalidCredentials}
	}

	u := *found
	s.user = &u
	s.cache.Save(ctx, cacheport.KeyAuthUser, u)
	current := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Info("Login efetuado.", map[string]interface{}{"user_id": u.ID})
	s.notify(current)

	result := u
	return domain.AuthResult{Success: true, User: &result}
}

// Register cria um novo usuário no diretório remoto. Emails já presentes são
// rejeitados sem nenhuma mutação remota. O registro NÃO autentica: registro
// e login são desacoplados, o usuário precisa entrar em seguida.
func (s *Service) Register(ctx context.Context, email, password, username string) domain.AuthResult {
	gen := s.beginDispatch()
	defer s.endDispatch(gen)

	users, err := s.directory.List(ctx)
	if err != nil {
		s.logger.Error("Falha ao buscar diretório de usuários no registro.", err)
		return domain.AuthResult{Success: false, Message: domain.MsgRegisterError}
	}

	for i := range users {
		if users[i].Email == email {
			return domain.AuthResult{Success: false, Message: domain.MsgEmailExists}
		}
	}

	name := username
	if name == "" {
		name = domain.DefaultUserName
	}
	newUser := domain.User{
		ID:       fmt.Sprintf("u%d", s.now().UnixMilli()),
		Email:    email,
		Password: password,
		Name:     name,
		Role:     domain.RoleConsumer,
	}

	if _, err := s.directory.Create(ctx, newUser); err != nil {
		s.logger.Error("Falha ao criar usuário no diretório.", err)
		return domain.AuthResult{Success: false, Message: domain.MsgRegisterError}
	}

	return domain.AuthResult{Success: true, Message: domain.MsgRegisterSuccess}
}

// UpdateSession substitui a sessão ativa pelo registro completo informado e
// persiste o snapshot. Não há atualização parcial: é usada tanto pelo commit
// de login quanto pelo commit de edição de perfil.
func (s *Service) UpdateSession(ctx context.Context, user domain.User) {
	s.mu.Lock()
	s.generation++
	u := user
	s.user = &u
	s.cache.Save(ctx, cacheport.KeyAuthUser, u)
	current := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(current)
}

// UpdateProfile submete o registro completo ao diretório remoto e, somente
// após a confirmação, comita o documento retornado pelo servidor como a nova
// sessão. Falha de transporte deixa a sessão anterior intacta.
func (s *Service) UpdateProfile(ctx context.Context, user domain.User) domain.AuthResult {
	gen := s.beginDispatch()

	updated, err := s.directory.Update(ctx, user.ID, user)
	if err != nil {
		s.logger.Error("Falha ao atualizar perfil no diretório.", err)
		s.endDispatch(gen)
		return domain.AuthResult{Success: false, Message: domain.MsgProfileUpdateError}
	}

	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		s.logger.Debug("Resultado de atualização de perfil obsoleto descartado.",
			map[string]interface{}{"user_id": user.ID})
		return domain.AuthResult{Success: false, Message: domain.MsgProfileUpdateError}
	}
	s.loading = false
	u := updated
	s.user = &u
	s.cache.Save(ctx, cacheport.KeyAuthUser, u)
	current := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(current)

	result := updated
	return domain.AuthResult{Success: true, User: &result}
}

// Logout limpa a sessão em memória e remove o snapshot do cache,
// incondicionalmente. Nenhuma chamada remota é feita.
func (s *Service) Logout(ctx context.Context) {
	s.mu.Lock()
	s.generation++
	s.user = nil
	s.loading = false
	s.cache.Clear(ctx, cacheport.KeyAuthUser)
	s.mu.Unlock()

	s.logger.Info("Sessão encerrada.", nil)
	s.notify(nil)
}

// CurrentUser retorna uma cópia do usuário ativo, ou nil se anônimo.
// Consumidores recebem apenas projeções: a sessão em si é propriedade
// exclusiva deste serviço.
func (s *Service) CurrentUser() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Ready informa se a restauração inicial já terminou.
func (s *Service) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Loading informa se há uma operação de autenticação em andamento.
func (s *Service) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// beginDispatch registra um novo despacho de mutação: avança a geração e
// liga a flag de loading. Retorna a geração capturada.
func (s *Service) beginDispatch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.loading = true
	return s.generation
}

// endDispatch desliga a flag de loading se o despacho ainda for o corrente.
func (s *Service) endDispatch(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation == gen {
		s.loading = false
	}
}

// snapshotLocked retorna uma cópia do usuário ativo. Chamar com o lock.
func (s *Service) snapshotLocked() *domain.User {
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// notify entrega a transição aos observadores, fora do lock.
func (s *Service) notify(user *domain.User) {
	s.mu.Lock()
	subs := make([]func(*domain.User), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(user)
	}
}
