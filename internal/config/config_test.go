package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/pkg/types"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `source: /mnt/export
dest: /mnt/library
ffprobe_path: /usr/local/bin/ffprobe
conflict_policy: rename
hash_verify: true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.Source != "/mnt/export" || cfg.Dest != "/mnt/library" {
		t.Errorf("paths not loaded: %+v", cfg)
	}
	if cfg.FFprobePath != "/usr/local/bin/ffprobe" {
		t.Errorf("ffprobe path not loaded: %s", cfg.FFprobePath)
	}
	if cfg.ConflictPolicy != types.ConflictPolicyRename {
		t.Errorf("conflict policy not loaded: %s", cfg.ConflictPolicy)
	}
	if !cfg.HashVerify {
		t.Error("hash_verify not loaded")
	}
}

func TestValidate_RequiresPaths(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing source")
	}

	cfg.Source = "/src"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing dest")
	}

	cfg.Dest = "/dest"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestValidate_DefaultsAndPolicy(t *testing.T) {
	cfg := &Config{Source: "/src", Dest: "/dest"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if cfg.FFprobePath != "ffprobe" {
		t.Errorf("expected ffprobe default, got %q", cfg.FFprobePath)
	}
	if cfg.ConflictPolicy != types.ConflictPolicyOverwrite {
		t.Errorf("expected overwrite default, got %q", cfg.ConflictPolicy)
	}
	if cfg.LogFile == "" {
		t.Error("expected log file default")
	}

	cfg.ConflictPolicy = "explode"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown conflict policy")
	}
}

func TestLoadEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "credentials.env")
	content := "OPENCAGE_API_KEY=file-key\nGEOCODER_EMAIL=file@example.com\n"
	if err := os.WriteFile(envFile, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	// t.Setenv registers cleanup; the unset makes sure the dotenv file is
	// what supplies the values (godotenv never overrides existing vars).
	t.Setenv("OPENCAGE_API_KEY", "placeholder")
	t.Setenv("GEOCODER_EMAIL", "placeholder")
	os.Unsetenv("OPENCAGE_API_KEY")
	os.Unsetenv("GEOCODER_EMAIL")

	cfg := DefaultConfig()
	cfg.EnvFile = envFile
	cfg.LoadEnv()

	if cfg.OpenCageAPIKey != "file-key" {
		t.Errorf("expected key from env file, got %q", cfg.OpenCageAPIKey)
	}
	if cfg.NominatimEmail != "file@example.com" {
		t.Errorf("expected email from env file, got %q", cfg.NominatimEmail)
	}
}

func TestLoadEnv_EnvironmentWins(t *testing.T) {
	t.Setenv("OPENCAGE_API_KEY", "env-key")

	cfg := DefaultConfig()
	cfg.OpenCageAPIKey = "config-key"
	cfg.LoadEnv()

	if cfg.OpenCageAPIKey != "env-key" {
		t.Errorf("environment should win, got %q", cfg.OpenCageAPIKey)
	}
}

func TestLoadEnv_MissingFileIsNotFatal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnvFile = "/path/does/not/exist.env"
	cfg.LoadEnv() // must not panic or abort
}
