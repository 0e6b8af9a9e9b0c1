package errors

import "fmt"

// AppError é a interface central para todos os erros customizados do núcleo
// de estado. A Categoria permite que os serviços distingam falha de
// transporte de falha de dado persistido sem inspecionar strings.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "TRANSPORT", "NOT_FOUND")
	Unwrap() error    // Permite encapsular o erro subjacente (causa original)
}

// --- Falhas de transporte (camada remota) ---

// TransportError representa uma chamada remota que falhou: rede indisponível,
// timeout, resposta 5xx ou corpo que não pôde ser decodificado. A política é
// sempre capturar no ponto de chamada, logar e converter em resultado
// estruturado; este erro nunca alcança a camada de interface.
type TransportError struct {
	Msg string
	Err error
}

func (e *TransportError) Error() string    { return fmt.Sprintf("falha de transporte: %s", e.Msg) }
func (e *TransportError) Category() string { return "TRANSPORT" }
func (e *TransportError) Unwrap() error    { return e.Err }

// NewTransportError cria um novo erro de transporte encapsulando a causa.
func NewTransportError(msg string, err error) AppError {
	return &TransportError{Msg: msg, Err: err}
}

// --- Ausência de recurso remoto ---

// NotFoundError representa um 404 do armazenamento remoto.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// --- Corrupção de persistência (cache local) ---

// CorruptionError representa um blob persistido ilegível ou malformado.
// O porto de cache o trata como "entrada ausente": loga o aviso e segue,
// garantindo que a aplicação sempre alcance um estado determinado.
type CorruptionError struct {
	Key string
	Err error
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("conteúdo persistido corrompido na chave '%s'", e.Key)
}
func (e *CorruptionError) Category() string { return "CORRUPTION" }
func (e *CorruptionError) Unwrap() error    { return e.Err }

// NewCorruptionError cria um erro de corrupção para a chave informada.
func NewCorruptionError(key string, err error) AppError {
	return &CorruptionError{Key: key, Err: err}
}

// --- Falhas internas ---

// InternalError representa falhas inesperadas que não se encaixam nas
// categorias acima (e.g., serialização de um valor do próprio programa).
type InternalError struct {
	Msg string
	Err error
}

func (e *InternalError) Error() string    { return fmt.Sprintf("erro interno: %s", e.Msg) }
func (e *InternalError) Category() string { return "INTERNAL" }
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro interno encapsulando a causa.
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}
