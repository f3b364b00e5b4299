package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/commandbar/pkg/domain"
	"github.com/aretw0/commandbar/pkg/ports"
)

// SealedPrefix marks a token that was encrypted by the encryption middleware.
const SealedPrefix = "sealed:"

// ErrUnsealedToken is returned on Load when a stored token is plain text.
var ErrUnsealedToken = errors.New("stored github token is not sealed")

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.TreeStore
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that seals github.token with AES-GCM before
// the tree reaches the store. The rest of the tree is stored as is, so stores keep validating
// and listing it.
func NewEncryptionMiddleware(config EncryptionConfig) (Middleware, error) {
	if len(config.ActiveKey) != 32 {
		return nil, fmt.Errorf("active key must be 32 bytes (AES-256), got %d", len(config.ActiveKey))
	}
	for i, k := range config.FallbackKeys {
		if len(k) != 32 {
			return nil, fmt.Errorf("fallback key %d must be 32 bytes (AES-256), got %d", i, len(k))
		}
	}
	return func(next ports.TreeStore) ports.TreeStore {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}, nil
}

func (m *encryptionMiddleware) Save(ctx context.Context, sessionID string, tree *domain.Tree) error {
	if tree == nil || tree.GitHub.Token == "" {
		return m.next.Save(ctx, sessionID, tree)
	}

	ciphertext, err := encrypt([]byte(tree.GitHub.Token), m.config.ActiveKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt token: %w", err)
	}

	// Copy so the caller's snapshot keeps its plain token.
	sealed := *tree
	sealed.GitHub.Token = SealedPrefix + base64.StdEncoding.EncodeToString(ciphertext)
	return m.next.Save(ctx, sessionID, &sealed)
}

func (m *encryptionMiddleware) Load(ctx context.Context, sessionID string) (*domain.Tree, error) {
	stored, err := m.next.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	token := stored.GitHub.Token
	if token == "" {
		return stored, nil
	}
	encoded, ok := strings.CutPrefix(token, SealedPrefix)
	if !ok {
		// Fail closed: a plain token means the store was written without the key.
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrUnsealedToken)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}

	plainText, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt token: %w", err)
	}

	opened := *stored
	opened.GitHub.Token = string(plainText)
	return &opened, nil
}

func (m *encryptionMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *encryptionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}

	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}

	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	return gcm.Open(nil, nonce, ciphertext[gcm.NonceSize():], nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
