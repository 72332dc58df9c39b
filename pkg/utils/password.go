package utils

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrEncryptionService covers every failure of the remote encryption
// service: network errors, timeouts and non-200 replies alike.
var ErrEncryptionService = errors.New("Encryption service failure")

// PasswordHasher protects passwords before storage and checks them later.
// Plaintext never reaches the database.
type PasswordHasher interface {
	Hash(ctx context.Context, plain string) (string, error)
	Verify(ctx context.Context, plain, stored string) (bool, error)
}

// HashPassword turns a plaintext password into a bcrypt hash
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a plaintext password with a stored hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// BcryptHasher is the default PasswordHasher.
type BcryptHasher struct{}

func (BcryptHasher) Hash(_ context.Context, plain string) (string, error) {
	return HashPassword(plain)
}

func (BcryptHasher) Verify(_ context.Context, plain, stored string) (bool, error) {
	return CheckPassword(plain, stored), nil
}

// RemoteCipher stores passwords as ciphertext produced by an external
// encryption service and verifies them by asking the same service to decrypt.
//
//	POST {base}/encrypt {"plaintext": ..., "key": ...} -> {"ciphertext": ...}
//	POST {base}/decrypt {"ciphertext": ..., "key": ...} -> {"plaintext": ...}
type RemoteCipher struct {
	baseURL string
	key     string
	client  *http.Client
}

func NewRemoteCipher(baseURL, key string, timeout time.Duration) *RemoteCipher {
	return &RemoteCipher{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		client:  &http.Client{Timeout: timeout},
	}
}

func (r *RemoteCipher) Hash(ctx context.Context, plain string) (string, error) {
	var out struct {
		Ciphertext string `json:"ciphertext"`
	}
	if err := r.call(ctx, "/encrypt", map[string]string{"plaintext": plain, "key": r.key}, &out); err != nil {
		return "", err
	}
	return out.Ciphertext, nil
}

func (r *RemoteCipher) Verify(ctx context.Context, plain, stored string) (bool, error) {
	var out struct {
		Plaintext string `json:"plaintext"`
	}
	if err := r.call(ctx, "/decrypt", map[string]string{"ciphertext": stored, "key": r.key}, &out); err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(out.Plaintext), []byte(plain)) == 1, nil
}

func (r *RemoteCipher) call(ctx context.Context, path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncryptionService, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncryptionService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %d", ErrEncryptionService, path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrEncryptionService, path, err)
	}
	return nil
}
