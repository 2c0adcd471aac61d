package session

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"miniblog/internal/models"

	"gorm.io/gorm"
)

// TTL is how long a session lives after login.
const TTL = 24 * time.Hour

// Identity is the resolved owner of a request. A nil *Identity means
// the request is anonymous.
type Identity struct {
	UserID   string
	Username string
}

// Manager maintains the mapping from opaque cookie tokens to
// server-side session records. Cookie values are HMAC-signed with the
// deployment secret so a forged or tampered cookie resolves to
// anonymous without touching the database.
type Manager struct {
	db     *gorm.DB
	secret []byte
}

// NewManager creates a new session manager
func NewManager(db *gorm.DB, secret string) *Manager {
	return &Manager{db: db, secret: []byte(secret)}
}

// Issue creates a session for the given user and returns the signed
// cookie value to hand to the client.
func (m *Manager) Issue(userID, username string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	sess := &models.Session{
		Token:     token,
		UserID:    userID,
		Username:  username,
		ExpiresAt: time.Now().Add(TTL),
		CreatedAt: time.Now(),
	}

	if err := m.db.Create(sess).Error; err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return token + "." + m.sign(token), nil
}

// Resolve maps a cookie value back to an identity. Unsigned, tampered,
// unknown and expired cookies all resolve to nil.
func (m *Manager) Resolve(cookie string) (*Identity, error) {
	token, ok := m.verify(cookie)
	if !ok {
		return nil, nil
	}

	var sess models.Session
	if err := m.db.First(&sess, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if time.Now().After(sess.ExpiresAt) {
		m.db.Delete(&models.Session{}, "token = ?", token)
		return nil, nil
	}

	return &Identity{UserID: sess.UserID, Username: sess.Username}, nil
}

// Destroy removes the session behind a cookie value. Destroying an
// unknown or already-destroyed session is not an error.
func (m *Manager) Destroy(cookie string) error {
	token, ok := m.verify(cookie)
	if !ok {
		return nil
	}

	if err := m.db.Delete(&models.Session{}, "token = ?", token).Error; err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

// DeleteExpired removes sessions past their expiry. Run periodically;
// Resolve already treats expired rows as absent, so the sweep only
// keeps the table from growing.
func (m *Manager) DeleteExpired() error {
	if err := m.db.Delete(&models.Session{}, "expires_at < ?", time.Now()).Error; err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}

func (m *Manager) sign(token string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

// verify splits a cookie value into token and signature and checks the
// signature in constant time.
func (m *Manager) verify(cookie string) (string, bool) {
	token, sig, ok := strings.Cut(cookie, ".")
	if !ok || token == "" {
		return "", false
	}

	want := m.sign(token)
	if !hmac.Equal([]byte(sig), []byte(want)) {
		return "", false
	}
	return token, true
}

// generateToken generates a random session token
func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
