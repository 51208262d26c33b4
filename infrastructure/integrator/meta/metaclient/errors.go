package metaclient

import (
	"fmt"

	"github.com/pkg/errors"
	metadomain "github.com/vfg2006/insights-pipeline/infrastructure/integrator/meta/domain"
)

// AuthError indica que o upstream rejeitou o token ou o acesso à conta
// (HTTP 401/403). Não é retentado: o chamador incrementa o contador de falhas
// consecutivas da conta e pode desabilitá-la
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("acesso negado pelo upstream (status %d): %s", e.StatusCode, e.Message)
}

// RateLimitError indica um HTTP 429 (ou erro de limite da Graph API). É
// retentado com backoff dentro do cliente; se as tentativas se esgotarem,
// vira UpstreamError
type RateLimitError struct {
	Message string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("limite de requisições do upstream atingido: %s", e.Message)
}

// UpstreamError é qualquer outro não-2xx ou corpo JSON malformado. Não é
// retentado automaticamente
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("erro do upstream (status %d): %s", e.StatusCode, e.Body)
}

// IsAuthError verifica se o erro (ou sua causa) é um AuthError
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// IsRateLimitError verifica se o erro (ou sua causa) é um RateLimitError
func IsRateLimitError(err error) bool {
	var rateErr *RateLimitError
	return errors.As(err, &rateErr)
}

const maxErrorBodyLen = 512

// truncateBody limita o corpo de erro logado/propagado para diagnóstico
func truncateBody(body []byte) string {
	if len(body) > maxErrorBodyLen {
		return string(body[:maxErrorBodyLen]) + "..."
	}
	return string(body)
}

// classifyResponse converte uma resposta não-2xx no erro tipado correspondente
func classifyResponse(statusCode int, body []byte, errResp *metadomain.ErrorResponse) error {
	switch {
	case statusCode == 429:
		return &RateLimitError{Message: truncateBody(body)}
	case errResp != nil && errResp.IsRateLimited():
		return &RateLimitError{Message: errResp.Error.Message}
	case statusCode == 401 || statusCode == 403:
		message := truncateBody(body)
		if errResp != nil {
			message = errResp.Error.Message
		}
		return &AuthError{StatusCode: statusCode, Message: message}
	case errResp != nil && errResp.IsTokenExpired():
		return &AuthError{StatusCode: statusCode, Message: errResp.Error.Message}
	default:
		return &UpstreamError{StatusCode: statusCode, Body: truncateBody(body)}
	}
}
