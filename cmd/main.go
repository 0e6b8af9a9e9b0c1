package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	// Infraestrutura e utilitários
	"farmmarket/config"
	"farmmarket/internal/pkg/cacheport"
	"farmmarket/internal/pkg/logger"
	"farmmarket/internal/pkg/rest"

	// Camadas do núcleo de estado para injeção de dependências
	"farmmarket/internal/repository/productrepo"
	"farmmarket/internal/repository/userrepo"
	"farmmarket/internal/repository/wishlistrepo"
	"farmmarket/internal/service/authservice"
	"farmmarket/internal/service/ledgerservice"
	"farmmarket/internal/service/wishlistservice"
)

// A raiz da aplicação: monta o núcleo de estado do cliente com injeção
// explícita de dependências (Repository -> Service) e dispara a restauração
// de sessão. As telas da interface consomem os serviços montados aqui; elas
// nunca tocam o porto de cache nem o cliente remoto diretamente.
func main() {
	// 0. Carregar variáveis de ambiente (.env), se presente.
	if err := godotenv.Load(); err != nil {
		log.Println("Aviso: arquivo .env não encontrado; usando apenas o ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	appLog := logger.NewLogger(cfg.LogLevel)
	appLog.Info("Configurações carregadas.", map[string]interface{}{
		"api_base_url":  cfg.APIBaseURL,
		"cache_backend": cfg.CacheBackend,
	})

	ctx := context.Background()

	// 1. Cache persistente local (a sombra durável do estado em memória)
	var cache cacheport.Port
	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		cache = cacheport.NewRedisPort(ctx, cfg.RedisAddr, appLog)
	case config.CacheBackendMemory:
		cache = cacheport.NewMemoryPort(appLog)
	default:
		cache = cacheport.NewFilePort(cfg.CacheDir, appLog)
	}
	appLog.Debug("Porto de cache inicializado.", nil)

	// 2. Cliente do armazenamento remoto, compartilhado pelos repositórios
	remote := rest.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout)

	userRepo := userrepo.NewUserRepository(remote, appLog)
	wishlistRepo := wishlistrepo.NewWishlistRepository(remote, appLog)
	productRepo := productrepo.NewProductRepository(remote, appLog)
	appLog.Debug("Repositórios remotos inicializados.", nil)

	// 3. Serviços do núcleo de estado
	authSvc := authservice.NewService(userRepo, cache, appLog)
	wishlistSvc := wishlistservice.NewService(wishlistRepo, cfg.HTTPTimeout, appLog)
	ledgerSvc := ledgerservice.NewService(cache, appLog)
	appLog.Debug("Serviços de sessão, lista de desejos e livro-razão inicializados.", nil)

	// 4. Ligação: mudanças de sessão re-derivam a lista de desejos
	authSvc.OnChange(wishlistSvc.HandleSessionChange)

	// 5. Restauração da sessão persistida (Restaurando -> Anônimo|Autenticado)
	authSvc.Restore(ctx)

	if user := authSvc.CurrentUser(); user != nil {
		appLog.Info("Sessão ativa.", map[string]interface{}{
			"user_id": user.ID,
			"name":    user.Name,
			"role":    string(user.Role),
		})
	} else {
		appLog.Info("Nenhuma sessão ativa.", nil)
	}

	// A derivação da lista de desejos disparada pela restauração corre em
	// segundo plano; espera-a assentar antes de reportar o estado.
	deadline := time.Now().Add(cfg.HTTPTimeout + time.Second)
	for wishlistSvc.Loading() && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	appLog.Info("Lista de desejos derivada.", map[string]interface{}{
		"entradas": len(wishlistSvc.Items()),
	})

	// Amostra do estado acessível às telas: catálogo e histórico local.
	if products, err := productRepo.List(ctx); err != nil {
		appLog.Error("Catálogo indisponível.", err)
	} else {
		appLog.Info("Catálogo carregado.", map[string]interface{}{"produtos": len(products)})
	}

	transactions := ledgerSvc.List(ctx)
	appLog.Info("Livro-razão local carregado.", map[string]interface{}{"transações": len(transactions)})
}
