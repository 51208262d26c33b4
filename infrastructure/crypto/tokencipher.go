package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"

	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20poly1305"
)

// TokenCipher cifra tokens de acesso antes de persistir no banco.
// A chave é derivada da secret key da aplicação
type TokenCipher struct {
	key []byte
}

func NewTokenCipher(secretKey string) (*TokenCipher, error) {
	if secretKey == "" {
		return nil, errors.New("secret key não pode ser vazia")
	}

	// Deriva uma chave de 32 bytes independente do tamanho da secret
	derived := sha256.Sum256([]byte(secretKey))

	return &TokenCipher{key: derived[:]}, nil
}

// Encrypt cifra o token e retorna o resultado em base64, com o nonce
// prefixado ao ciphertext
func (c *TokenCipher) Encrypt(plaintext string) (string, error) {
	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", errors.Wrap(err, "erro ao inicializar a cifra")
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", errors.Wrap(err, "erro ao gerar nonce")
	}

	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverte um token cifrado por Encrypt
func (c *TokenCipher) Decrypt(encoded string) (string, error) {
	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", errors.Wrap(err, "erro ao inicializar a cifra")
	}

	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", errors.Wrap(err, "token cifrado não é base64 válido")
	}

	if len(sealed) < aead.NonceSize() {
		return "", errors.New("token cifrado menor que o nonce")
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", errors.Wrap(err, "erro ao decifrar token")
	}

	return string(plaintext), nil
}
