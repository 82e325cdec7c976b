// Package config holds the run configuration: YAML file, flag overrides
// applied by the CLI, and credentials from the environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/pkg/types"
)

type Config struct {
	// Source and Dest are absolute paths to the flat input folder and the
	// destination tree root.
	Source string `yaml:"source" json:"source"`
	Dest   string `yaml:"dest" json:"dest"`

	// FFprobePath is the container probe executable. Configured explicitly
	// instead of mutating the process PATH.
	FFprobePath string `yaml:"ffprobe_path" json:"ffprobe_path"`

	// OpenCageAPIKey keys the container-location geocoder. NominatimEmail
	// identifies us to the EXIF-GPS geocoder per its usage policy.
	OpenCageAPIKey string `yaml:"opencage_api_key" json:"opencage_api_key"`
	NominatimEmail string `yaml:"geocoder_email" json:"geocoder_email"`

	// EnvFile optionally points at a dotenv file loaded before reading the
	// credential variables.
	EnvFile string `yaml:"env_file" json:"env_file"`

	ConflictPolicy types.ConflictPolicy `yaml:"conflict_policy" json:"conflict_policy"`
	QuarantineDir  string               `yaml:"quarantine_dir" json:"quarantine_dir"`
	HashVerify     bool                 `yaml:"hash_verify" json:"hash_verify"`
	DryRun         bool                 `yaml:"dry_run" json:"dry_run"`

	LogFile string `yaml:"log_file" json:"log_file"`
	LogJSON bool   `yaml:"log_json" json:"log_json"`
}

func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	stateDir := filepath.Join(homeDir, ".mediasort")

	return &Config{
		FFprobePath: "ffprobe",
		// Overwrite mirrors a plain copy: rerunning the batch refreshes
		// files in place.
		ConflictPolicy: types.ConflictPolicyOverwrite,
		QuarantineDir:  "quarantine",
		LogFile:        filepath.Join(stateDir, "mediasort.log"),
	}
}

func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadEnv pulls credentials from the environment, optionally sourcing a
// dotenv file first. Environment values win over file values. A missing
// dotenv file is not an error, matching dotenv conventions.
func (c *Config) LoadEnv() {
	if c.EnvFile != "" {
		_ = godotenv.Load(c.EnvFile)
	}

	if v := os.Getenv("OPENCAGE_API_KEY"); v != "" {
		c.OpenCageAPIKey = v
	}
	if v := os.Getenv("GEOCODER_EMAIL"); v != "" {
		c.NominatimEmail = v
	}
}

func (c *Config) Validate() error {
	if c.Source == "" {
		return &ValidationError{Field: "source", Message: "source path is required"}
	}
	if c.Dest == "" {
		return &ValidationError{Field: "dest", Message: "destination path is required"}
	}

	switch c.ConflictPolicy {
	case types.ConflictPolicySkip, types.ConflictPolicyRename,
		types.ConflictPolicyOverwrite, types.ConflictPolicyQuarantine:
	case "":
		c.ConflictPolicy = types.ConflictPolicyOverwrite
	default:
		return &ValidationError{Field: "conflict_policy", Message: "unknown policy " + string(c.ConflictPolicy)}
	}

	if c.FFprobePath == "" {
		c.FFprobePath = "ffprobe"
	}
	if c.QuarantineDir == "" {
		c.QuarantineDir = "quarantine"
	}
	if c.LogFile == "" {
		homeDir, _ := os.UserHomeDir()
		c.LogFile = filepath.Join(homeDir, ".mediasort", "mediasort.log")
	}

	return nil
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
