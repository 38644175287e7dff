package configuration

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"mongo": {
			"uri": "mongodb://localhost:27017",
			"database": "dchat",
			"usersCollection": "users",
			"conversationsCollection": "conversations",
			"messagesCollection": "messages"
		},
		"server": {
			"app_port": 8000,
			"socket_port": 8080,
			"socket_route": "ws",
			"allowed_origins": ["http://localhost:3000"]
		},
		"auth": {
			"jwt_secret": "file-secret",
			"token_ttl_hours": 12
		}
	}`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if config.ChatDatabase.Database != "dchat" || config.Server.AppPort != 8000 {
		t.Fatalf("unexpected config: %+v", config)
	}
	if config.Auth.TokenTTLHours != 12 {
		t.Fatalf("expected ttl 12, got %d", config.Auth.TokenTTLHours)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"mongo": {"uri": "mongodb://localhost:27017", "database": "dchat"},
		"server": {"app_port": 8000, "socket_port": 8080}
	}`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if config.Auth.TokenTTLHours != 24 {
		t.Fatalf("expected default ttl 24, got %d", config.Auth.TokenTTLHours)
	}
	if config.Server.SocketRoute != "ws" {
		t.Fatalf("expected default socket route, got %q", config.Server.SocketRoute)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, `{
		"mongo": {"uri": "mongodb://file-host:27017", "database": "dchat"},
		"server": {"app_port": 8000, "socket_port": 8080},
		"auth": {"jwt_secret": "file-secret"}
	}`)

	t.Setenv("MONGO_URI", "mongodb://env-host:27017")
	t.Setenv("JWT_SECRET_KEY", "env-secret")

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if config.ChatDatabase.Uri != "mongodb://env-host:27017" {
		t.Fatalf("expected env mongo uri, got %q", config.ChatDatabase.Uri)
	}
	if config.Auth.JWTSecret != "env-secret" {
		t.Fatalf("expected env secret, got %q", config.Auth.JWTSecret)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
