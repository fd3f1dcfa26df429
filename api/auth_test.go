package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	password := "MySecurePassword123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$v=19$") {
		t.Errorf("Hash should start with $argon2id$v=19$, got: %s", hash)
	}

	// Hash should be different each time (different salt)
	hash2, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() failed on second call: %v", err)
	}
	if hash == hash2 {
		t.Error("Two hashes of same password should be different (different salts)")
	}
}

func TestVerifyPassword(t *testing.T) {
	password := "MySecurePassword123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
		wantErr  bool
	}{
		{
			name:     "Correct password",
			password: password,
			hash:     hash,
			want:     true,
		},
		{
			name:     "Wrong password",
			password: "WrongPassword456",
			hash:     hash,
			want:     false,
		},
		{
			name:     "Invalid hash format",
			password: password,
			hash:     "invalid",
			wantErr:  true,
		},
		{
			name:     "Wrong algorithm",
			password: password,
			hash:     "$bcrypt$v=1$m=65536,t=1,p=4$salt$hash",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := VerifyPassword(tt.password, tt.hash)
			if (err != nil) != tt.wantErr {
				t.Errorf("VerifyPassword() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("VerifyPassword() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWriteAuthFile(t *testing.T) {
	authFile := filepath.Join(t.TempDir(), "auth.secret")

	if err := WriteAuthFile(authFile, "testuser", "TestPassword123456"); err != nil {
		t.Fatalf("WriteAuthFile() failed: %v", err)
	}

	info, err := os.Stat(authFile)
	if err != nil {
		t.Fatalf("Failed to stat auth file: %v", err)
	}
	if info.Mode().Perm() != 0o400 {
		t.Errorf("Expected file mode 0400 (read-only), got %o", info.Mode().Perm())
	}

	content, err := os.ReadFile(authFile)
	if err != nil {
		t.Fatalf("Failed to read auth file: %v", err)
	}
	line := strings.TrimSpace(string(content))
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		t.Fatal("Auth file should contain username:hash")
	}
	if parts[0] != "testuser" {
		t.Errorf("Expected username testuser, got %s", parts[0])
	}

	match, err := VerifyPassword("TestPassword123456", parts[1])
	if err != nil {
		t.Fatalf("VerifyPassword() failed: %v", err)
	}
	if !match {
		t.Error("Password verification failed for created hash")
	}
}

func TestLoadAuth(t *testing.T) {
	tests := []struct {
		name        string
		setupFile   func(string) error
		wantEnabled bool
		wantErr     bool
	}{
		{
			name: "Valid auth file",
			setupFile: func(path string) error {
				hash, _ := HashPassword("TestPassword123456")
				return os.WriteFile(path, []byte("testuser:"+hash), 0o600)
			},
			wantEnabled: true,
		},
		{
			name: "File not exists (dev mode)",
			setupFile: func(path string) error {
				return nil // don't create file
			},
			wantEnabled: false,
		},
		{
			name: "Invalid format (missing colon)",
			setupFile: func(path string) error {
				return os.WriteFile(path, []byte("invalidformat"), 0o600)
			},
			wantErr: true,
		},
		{
			name: "Invalid format (empty)",
			setupFile: func(path string) error {
				return os.WriteFile(path, []byte(""), 0o600)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authFile := filepath.Join(t.TempDir(), "auth.secret")
			if err := tt.setupFile(authFile); err != nil {
				t.Fatalf("Setup failed: %v", err)
			}

			auth, err := LoadAuth(authFile)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadAuth() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if auth.Enabled() != tt.wantEnabled {
				t.Errorf("Enabled() = %v, want %v", auth.Enabled(), tt.wantEnabled)
			}
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("success")); err != nil {
			t.Errorf("Failed to write response: %v", err)
		}
	})

	password := "TestPassword123456"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to create test hash: %v", err)
	}

	tests := []struct {
		name           string
		auth           *Auth
		user           string
		pass           string
		sendAuth       bool
		expectedStatus int
	}{
		{
			name:           "Valid credentials",
			auth:           &Auth{user: "admin", hash: hash},
			user:           "admin",
			pass:           password,
			sendAuth:       true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid password",
			auth:           &Auth{user: "admin", hash: hash},
			user:           "admin",
			pass:           "wrongpassword",
			sendAuth:       true,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid username",
			auth:           &Auth{user: "admin", hash: hash},
			user:           "wronguser",
			pass:           password,
			sendAuth:       true,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "No auth header",
			auth:           &Auth{user: "admin", hash: hash},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Dev mode (no auth file)",
			auth:           &Auth{},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/events", nil)
			if tt.sendAuth {
				req.SetBasicAuth(tt.user, tt.pass)
			}
			w := httptest.NewRecorder()

			tt.auth.Middleware(next).ServeHTTP(w, req)

			resp := w.Result()
			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, resp.StatusCode)
			}

			if tt.expectedStatus == http.StatusUnauthorized {
				if resp.Header.Get("WWW-Authenticate") == "" {
					t.Error("Expected WWW-Authenticate header on 401")
				}
			}
		})
	}
}
