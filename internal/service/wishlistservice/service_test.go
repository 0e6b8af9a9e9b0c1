package wishlistservice_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"farmmarket/internal/domain"
	"farmmarket/internal/pkg/logger"
	"farmmarket/internal/service/wishlistservice"
)

// MockRemoteWishlist é uma implementação mock da interface RemoteWishlist.
type MockRemoteWishlist struct {
	mock.Mock
}

func (m *MockRemoteWishlist) ListByUser(ctx context.Context, userID string) ([]domain.WishlistEntry, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.WishlistEntry), args.Error(1)
}

func (m *MockRemoteWishlist) Create(ctx context.Context, entry domain.WishlistEntry) (domain.WishlistEntry, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(domain.WishlistEntry), args.Error(1)
}

func (m *MockRemoteWishlist) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func quietLogger() logger.Logger {
	return logger.NewLoggerTo("fatal", io.Discard)
}

func newFixture() (*wishlistservice.Service, *MockRemoteWishlist) {
	remote := new(MockRemoteWishlist)
	svc := wishlistservice.NewService(remote, 2*time.Second, quietLogger())
	return svc, remote
}

var (
	userA = domain.User{ID: "uA", Email: "a@test.com", Name: "A"}
	userB = domain.User{ID: "uB", Email: "b@test.com", Name: "B"}
)

// waitSettled espera a derivação em andamento terminar.
func waitSettled(t *testing.T, svc *wishlistservice.Service) {
	t.Helper()
	assert.Eventually(t, func() bool { return !svc.Loading() },
		2*time.Second, 5*time.Millisecond)
}

// TestSessionChange_NoSession: sem sessão a coleção esvazia sincronamente e
// nenhuma chamada remota é feita.
func TestSessionChange_NoSession(t *testing.T) {
	svc, remote := newFixture()

	svc.HandleSessionChange(nil)

	assert.Empty(t, svc.Items())
	assert.False(t, svc.Loading())
	remote.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything)
}

// TestSessionChange_Derives: com sessão, a coleção buscada substitui a local.
func TestSessionChange_Derives(t *testing.T) {
	svc, remote := newFixture()
	fetched := []domain.WishlistEntry{
		{ID: "w1", UserID: "uA", ProductID: "p1"},
		{ID: "w2", UserID: "uA", ProductID: "p2"},
	}
	remote.On("ListByUser", mock.Anything, "uA").Return(fetched, nil)

	svc.HandleSessionChange(&userA)
	waitSettled(t, svc)

	assert.Equal(t, fetched, svc.Items())
	assert.True(t, svc.Contains("p1"))
	assert.False(t, svc.Contains("p9"))
	remote.AssertExpectations(t)
}

// TestSessionChange_FetchFailure: falha remota esvazia a coleção e desliga
// o loading mesmo assim.
func TestSessionChange_FetchFailure(t *testing.T) {
	svc, remote := newFixture()
	remote.On("ListByUser", mock.Anything, "uA").
		Return([]domain.WishlistEntry{}, errors.New("connection refused"))

	svc.HandleSessionChange(&userA)
	waitSettled(t, svc)

	assert.Empty(t, svc.Items())
}

// TestSessionIsolation_StaleFetchDiscarded: a busca do usuário A que resolve
// depois da troca para B não pode sobrescrever a coleção de B.
// (Propriedade de regressão para a corrida de troca rápida de sessão.)
func TestSessionIsolation_StaleFetchDiscarded(t *testing.T) {
	svc, remote := newFixture()

	entriesA := []domain.WishlistEntry{{ID: "w1", UserID: "uA", ProductID: "p1"}}
	entriesB := []domain.WishlistEntry{{ID: "w2", UserID: "uB", ProductID: "p2"}}

	startedA := make(chan struct{})
	releaseA := make(chan struct{})
	remote.On("ListByUser", mock.Anything, "uA").Run(func(mock.Arguments) {
		close(startedA)
		<-releaseA
	}).Return(entriesA, nil).Once()
	remote.On("ListByUser", mock.Anything, "uB").Return(entriesB, nil).Once()

	svc.HandleSessionChange(&userA)
	<-startedA

	// Troca de sessão antes da busca de A resolver.
	svc.HandleSessionChange(&userB)
	waitSettled(t, svc)
	assert.Equal(t, entriesB, svc.Items())

	// A busca de A resolve agora — e deve ser descartada.
	close(releaseA)
	time.Sleep(50 * time.Millisecond)

	items := svc.Items()
	assert.Equal(t, entriesB, items)
	for _, e := range items {
		assert.Equal(t, "uB", e.UserID)
	}
	remote.AssertExpectations(t)
}

// TestToggle_NoSession: aviso bloqueante, nenhuma mutação, nenhuma chamada.
func TestToggle_NoSession(t *testing.T) {
	svc, remote := newFixture()

	result := svc.Toggle(context.Background(), "p1")

	assert.False(t, result.Success)
	assert.Equal(t, domain.MsgWishlistLoginFirst, result.Message)
	assert.Empty(t, svc.Items())
	remote.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	remote.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// TestToggle_Idempotent: dois toggles consecutivos com remoto saudável
// devolvem a coleção ao estado original, mantendo a unicidade por
// (userId, productId) o tempo todo.
func TestToggle_Idempotent(t *testing.T) {
	svc, remote := newFixture()
	remote.On("ListByUser", mock.Anything, "uA").Return([]domain.WishlistEntry{}, nil)

	svc.HandleSessionChange(&userA)
	waitSettled(t, svc)

	serverID := uuid.NewString()
	created := domain.WishlistEntry{ID: serverID, UserID: "uA", ProductID: "p1"}
	remote.On("Create", mock.Anything, domain.WishlistEntry{UserID: "uA", ProductID: "p1"}).
		Return(created, nil).Once()
	remote.On("Delete", mock.Anything, serverID).Return(nil).Once()

	// Primeiro toggle: cria. A entrada anexada é a retornada pelo servidor.
	first := svc.Toggle(context.Background(), "p1")
	assert.True(t, first.Success)
	assert.True(t, first.Added)
	assert.Equal(t, domain.MsgWishlistAdded, first.Message)
	assert.True(t, svc.Contains("p1"))
	assert.Len(t, svc.Items(), 1)

	// Segundo toggle: remove.
	second := svc.Toggle(context.Background(), "p1")
	assert.True(t, second.Success)
	assert.False(t, second.Added)
	assert.Equal(t, domain.MsgWishlistRemoved, second.Message)
	assert.False(t, svc.Contains("p1"))
	assert.Empty(t, svc.Items())

	remote.AssertExpectations(t)
}

// TestToggle_DuringDerivation: enquanto a derivação inicial está em voo o
// pertencimento é indecidível — o toggle curto-circuita sem chamada remota,
// evitando duplicar um par já presente no remoto. Após a derivação resolver,
// a operação volta ao normal.
func TestToggle_DuringDerivation(t *testing.T) {
	svc, remote := newFixture()

	started := make(chan struct{})
	release := make(chan struct{})
	remote.On("ListByUser", mock.Anything, "uA").Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return([]domain.WishlistEntry{{ID: "w1", UserID: "uA", ProductID: "p1"}}, nil).Once()

	svc.HandleSessionChange(&userA)
	<-started

	result := svc.Toggle(context.Background(), "p1")

	assert.False(t, result.Success)
	assert.Equal(t, domain.MsgWishlistFailed, result.Message)
	remote.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	remote.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	close(release)
	waitSettled(t, svc)

	// Com a coleção derivada, o par presente remotamente segue o caminho de
	// remoção — nenhuma criação duplicada em momento algum.
	remote.On("Delete", mock.Anything, "w1").Return(nil).Once()
	after := svc.Toggle(context.Background(), "p1")
	assert.True(t, after.Success)
	assert.False(t, after.Added)
	remote.AssertExpectations(t)
}

// TestToggle_CreateFailureLeavesMemory: o toggle não é otimista — a memória
// só muda após a confirmação remota.
func TestToggle_CreateFailureLeavesMemory(t *testing.T) {
	svc, remote := newFixture()
	remote.On("ListByUser", mock.Anything, "uA").Return([]domain.WishlistEntry{}, nil)
	remote.On("Create", mock.Anything, mock.Anything).
		Return(domain.WishlistEntry{}, errors.New("timeout")).Once()

	svc.HandleSessionChange(&userA)
	waitSettled(t, svc)

	result := svc.Toggle(context.Background(), "p1")

	assert.False(t, result.Success)
	assert.Equal(t, domain.MsgWishlistFailed, result.Message)
	assert.False(t, svc.Contains("p1"))
	assert.Empty(t, svc.Items())
}

// TestToggle_DeleteFailureLeavesMemory: idem para a remoção.
func TestToggle_DeleteFailureLeavesMemory(t *testing.T) {
	svc, remote := newFixture()
	existing := []domain.WishlistEntry{{ID: "w1", UserID: "uA", ProductID: "p1"}}
	remote.On("ListByUser", mock.Anything, "uA").Return(existing, nil)
	remote.On("Delete", mock.Anything, "w1").Return(errors.New("timeout")).Once()

	svc.HandleSessionChange(&userA)
	waitSettled(t, svc)

	result := svc.Toggle(context.Background(), "p1")

	assert.False(t, result.Success)
	assert.True(t, svc.Contains("p1"), "a entrada deve permanecer após a falha")
}

// TestContains_ScopedToSession: o pertencimento é sempre relativo à sessão
// corrente; após a troca só as entradas do novo usuário são visíveis.
func TestContains_ScopedToSession(t *testing.T) {
	svc, remote := newFixture()
	remote.On("ListByUser", mock.Anything, "uA").
		Return([]domain.WishlistEntry{{ID: "w1", UserID: "uA", ProductID: "p1"}}, nil).Once()
	remote.On("ListByUser", mock.Anything, "uB").
		Return([]domain.WishlistEntry{{ID: "w2", UserID: "uB", ProductID: "p2"}}, nil).Once()

	svc.HandleSessionChange(&userA)
	waitSettled(t, svc)
	assert.True(t, svc.Contains("p1"))

	svc.HandleSessionChange(&userB)
	waitSettled(t, svc)
	assert.False(t, svc.Contains("p1"))
	assert.True(t, svc.Contains("p2"))

	// E ao ficar sem sessão, nada pertence.
	svc.HandleSessionChange(nil)
	assert.False(t, svc.Contains("p2"))
}
