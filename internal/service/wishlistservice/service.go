package wishlistservice

import (
	"context"
	"sync"
	"time"

	"farmmarket/internal/domain"
	"farmmarket/internal/pkg/logger"
)

// RemoteWishlist é o contrato que este serviço espera do armazenamento
// remoto de listas de desejos (implementado por repository/wishlistrepo).
type RemoteWishlist interface {
	ListByUser(ctx context.Context, userID string) ([]domain.WishlistEntry, error)
	Create(ctx context.Context, entry domain.WishlistEntry) (domain.WishlistEntry, error)
	Delete(ctx context.Context, id string) error
}

// Service é o sincronizador de lista de desejos: mantém uma coleção derivada
// do remoto, chaveada pela identidade da sessão ativa.
//
// Cada mudança de sessão avança uma geração de derivação. A busca remota
// disparada por uma mudança carrega a geração do despacho e só é aplicada se
// ainda for a corrente quando resolver — trocas rápidas de sessão nunca
// deixam a coleção de um usuário anterior visível (last-writer-wins por
// identidade de sessão).
//
// O toggle não é otimista: a memória só muda depois que o remoto confirma,
// eliminando a complexidade de rollback ao custo de latência.
type Service struct {
	remote       RemoteWishlist
	logger       logger.Logger
	fetchTimeout time.Duration

	mu         sync.Mutex
	user       *domain.User
	entries    []domain.WishlistEntry
	loading    bool
	generation uint64
}

// NewService cria o sincronizador. fetchTimeout limita cada derivação
// remota; a expiração é tratada como falha de transporte comum.
func NewService(remote RemoteWishlist, fetchTimeout time.Duration, log logger.Logger) *Service {
	return &Service{
		remote:       remote,
		logger:       log,
		fetchTimeout: fetchTimeout,
	}
}

// HandleSessionChange re-deriva a coleção para a nova identidade de sessão.
// Deve ser registrado no gerenciador de sessão pela raiz da aplicação.
//
// Sem sessão: a coleção é esvaziada sincronamente, sem chamada remota.
// Com sessão: loading liga e a busca remota parte em segundo plano,
// etiquetada com a geração deste despacho.
func (s *Service) HandleSessionChange(user *domain.User) {
	s.mu.Lock()
	s.generation++
	gen := s.generation

	if user == nil {
		s.user = nil
		s.entries = nil
		s.loading = false
		s.mu.Unlock()
		return
	}

	u := *user
	s.user = &u
	s.loading = true
	s.mu.Unlock()

	go s.derive(gen, u.ID)
}

// derive busca a coleção do usuário e a aplica apenas se a geração ainda for
// a corrente; um resultado superado por uma troca de sessão mais nova é
// descartado sem tocar a coleção.
func (s *Service) derive(gen uint64, userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.fetchTimeout)
	defer cancel()

	entries, err := s.remote.ListByUser(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != gen {
		s.logger.Debug("Derivação de lista de desejos obsoleta descartada.",
			map[string]interface{}{"user_id": userID})
		return
	}

	if err != nil {
		s.logger.Error("Falha ao derivar lista de desejos; coleção esvaziada.", err)
		s.entries = nil
	} else {
		s.entries = entries
	}
	s.loading = false
}

// Toggle alterna a presença do produto na lista do usuário ativo.
//
// Sem sessão ativa: aviso bloqueante, nenhuma mutação, nenhuma chamada
// remota. Com sessão: remove a entrada existente (delete remoto primeiro)
// ou cria uma nova (create remoto primeiro, a entrada retornada pelo
// servidor — que pode carregar ID atribuído por ele — é a anexada).
// Qualquer falha remota deixa a memória intacta.
func (s *Service) Toggle(ctx context.Context, productID string) domain.WishlistResult {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return domain.WishlistResult{Success: false, Message: domain.MsgWishlistLoginFirst}
	}
	if s.loading {
		// A derivação inicial ainda está em voo: o pertencimento não pode
		// ser decidido, e criar agora duplicaria um par já presente no
		// remoto. Curto-circuita sem mutação nem chamada remota.
		s.mu.Unlock()
		return domain.WishlistResult{Success: false, Message: domain.MsgWishlistFailed}
	}
	userID := s.user.ID
	gen := s.generation

	var existing *domain.WishlistEntry
	for i := range s.entries {
		if s.entries[i].ProductID == productID && s.entries[i].UserID == userID {
			e := s.entries[i]
			existing = &e
			break
		}
	}
	s.mu.Unlock()

	if existing != nil {
		if err := s.remote.Delete(ctx, existing.ID); err != nil {
			s.logger.Error("Falha ao remover entrada da lista de desejos.", err)
			return domain.WishlistResult{Success: false, Message: domain.MsgWishlistFailed}
		}

		s.mu.Lock()
		if s.generation == gen {
			kept := s.entries[:0]
			for _, e := range s.entries {
				if e.ID != existing.ID {
					kept = append(kept, e)
				}
			}
			s.entries = kept
		}
		s.mu.Unlock()

		return domain.WishlistResult{Success: true, Added: false, Message: domain.MsgWishlistRemoved}
	}

	created, err := s.remote.Create(ctx, domain.WishlistEntry{
		UserID:    userID,
		ProductID: productID,
	})
	if err != nil {
		s.logger.Error("Falha ao criar entrada na lista de desejos.", err)
		return domain.WishlistResult{Success: false, Message: domain.MsgWishlistFailed}
	}

	s.mu.Lock()
	if s.generation == gen && !s.containsLocked(userID, productID) {
		s.entries = append(s.entries, created)
	}
	s.mu.Unlock()

	return domain.WishlistResult{Success: true, Added: true, Message: domain.MsgWishlistAdded}
}

// Contains é o teste puro de pertencimento para o par (produto, sessão
// corrente). Sem sessão ativa, retorna false.
func (s *Service) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return false
	}
	return s.containsLocked(s.user.ID, productID)
}

func (s *Service) containsLocked(userID, productID string) bool {
	for _, e := range s.entries {
		if e.ProductID == productID && e.UserID == userID {
			return true
		}
	}
	return false
}

// Items retorna uma cópia da coleção corrente.
func (s *Service) Items() []domain.WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.WishlistEntry, len(s.entries))
	copy(items, s.entries)
	return items
}

// Loading informa se há uma derivação remota em andamento.
func (s *Service) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}
