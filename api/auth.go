/*
auth.go - Basic Auth with Argon2id password hashing

PURPOSE:
  Protects the mutating endpoints (ingest, events, snapshot refresh,
  demo loading). Credentials live in a single auth file with the format
  "username:hash"; the hash is Argon2id in the standard encoded form.

DEV MODE:
  When no auth file exists the middleware passes everything through and
  the server logs a loud warning. That keeps local development friction
  free without ever shipping an unprotected default past it.

HASH FORMAT:
  $argon2id$v=19$m=65536,t=1,p=4$<base64 salt>$<base64 hash>

SEE ALSO:
  - server.go: Where the middleware is mounted
  - cmd/server/main.go: The hash-password helper flag
*/
package api

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters (OWASP recommended)
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32
	saltLen       = 16
)

// Auth holds the credentials mutating endpoints are checked against.
// The zero value (no file loaded) disables the check.
type Auth struct {
	user string
	hash string
}

// LoadAuth reads an auth file with the format "username:hash". A missing
// file is not an error: it returns a disabled Auth and logs a warning.
func LoadAuth(path string) (*Auth, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Println("[Auth] WARNING: no auth file found, mutating endpoints are UNPROTECTED")
			log.Printf("[Auth] expected file: %s", path)
			log.Println("[Auth] create one with: server -hash-password")
			return &Auth{}, nil
		}
		return nil, fmt.Errorf("failed to read auth file: %w", err)
	}

	line := strings.TrimSpace(string(data))
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid auth file format (expected: username:hash)")
	}

	log.Printf("[Auth] Basic Auth enabled for mutating endpoints (user: %s)", parts[0])
	return &Auth{user: parts[0], hash: parts[1]}, nil
}

// Enabled reports whether credentials were loaded.
func (a *Auth) Enabled() bool {
	return a != nil && a.hash != ""
}

// Middleware enforces Basic Auth. In dev mode (no credentials loaded) it
// passes requests through untouched.
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		user, pass, ok := r.BasicAuth()

		userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(a.user)) == 1

		passMatch := false
		if ok && userMatch {
			var err error
			passMatch, err = VerifyPassword(pass, a.hash)
			if err != nil {
				log.Printf("[Auth] error verifying password: %v", err)
				passMatch = false
			}
		}

		if !ok || !userMatch || !passMatch {
			w.Header().Set("WWW-Authenticate", `Basic realm="Calendar Heatmap"`)
			writeError(w, http.StatusUnauthorized, "Unauthorized", nil)
			log.Printf("[Auth] failed attempt from %s (user: %s)", r.RemoteAddr, user)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// HashPassword creates an Argon2id hash of the password in the standard
// encoded form.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		argon2Memory, argon2Time, argon2Threads, b64Salt, b64Hash), nil
}

// VerifyPassword verifies a password against an encoded Argon2id hash.
func VerifyPassword(password, hash string) (bool, error) {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		return false, fmt.Errorf("invalid hash format")
	}
	if parts[1] != "argon2id" {
		return false, fmt.Errorf("not an argon2id hash")
	}

	var memory, time, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, fmt.Errorf("failed to parse hash parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("failed to decode salt: %w", err)
	}

	decodedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("failed to decode hash: %w", err)
	}

	computedHash := argon2.IDKey([]byte(password), salt, time, memory, uint8(threads), uint32(len(decodedHash)))

	return subtle.ConstantTimeCompare(decodedHash, computedHash) == 1, nil
}

// WriteAuthFile hashes the password and writes "username:hash" to path
// with read-only permissions.
func WriteAuthFile(path, username, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	content := fmt.Sprintf("%s:%s\n", username, hash)
	if err := os.WriteFile(path, []byte(content), 0o400); err != nil {
		return fmt.Errorf("failed to write auth file: %w", err)
	}

	return nil
}
