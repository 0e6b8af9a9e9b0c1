package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperror "farmmarket/internal/errors"
)

// Client é o cliente HTTP compartilhado do armazenamento remoto. Todos os
// repositórios (usuários, lista de desejos, produtos) passam por aqui, de
// modo que timeout e tradução de erros ficam em um único lugar.
//
// Toda falha é traduzida para um erro tipado do pacote errors: rede/timeout,
// 5xx e corpo indecodificável viram TransportError; 404 vira NotFoundError.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient cria o cliente apontando para a base da API remota.
// O timeout se aplica a cada requisição individual; a expiração é tratada
// pelos chamadores como falha de transporte comum.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetJSON executa GET em path e decodifica o corpo em out.
func (c *Client) GetJSON(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// PostJSON executa POST em path com body serializado e decodifica a resposta
// em out (que pode ser nil quando a resposta não interessa).
func (c *Client) PostJSON(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// PatchJSON executa PATCH em path com body serializado e decodifica a
// resposta em out.
func (c *Client) PatchJSON(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

// Delete executa DELETE em path, ignorando o corpo da resposta.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return apperror.NewInternalError(
				fmt.Sprintf("serializar corpo de %s %s", method, path), err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperror.NewInternalError(
			fmt.Sprintf("montar requisição %s %s", method, path), err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Timeout e falha de rede chegam por aqui.
		return apperror.NewTransportError(
			fmt.Sprintf("%s %s", method, path), err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperror.NewNotFoundError(fmt.Sprintf("%s %s", method, path))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return apperror.NewTransportError(
			fmt.Sprintf("%s %s retornou status %d", method, path, resp.StatusCode), nil)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.NewTransportError(
			fmt.Sprintf("decodificar resposta de %s %s", method, path), err)
	}
	return nil
}
