package main

import (
	"fmt"
	"os"

	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/internal/config"
	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/internal/pipeline"
	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/pkg/types"
	"github.com/spf13/cobra"
)

var (
	appVersion = "0.1.0"

	cfgFile        string
	source         string
	dest           string
	ffprobePath    string
	envFile        string
	conflictPolicy string
	quarantine     string
	logFile        string
	logJSON        bool
	dryRun         bool
	hashVerify     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mediasort",
	Short: "Rename and organize photos/videos by capture date and location",
	Long: `Mediasort scans a folder of photos and videos, reads the capture date
and GPS location from their metadata (EXIF/container tags), reverse
geocodes the location, and copies each file into a date-and-place named
destination tree (YYYY/images|videos/YYYY-MM-DD-HH-MM-SS-State-Country).`,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the organizing pipeline",
	RunE:  runPipeline,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(appVersion)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)

	runCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	runCmd.Flags().StringVarP(&source, "source", "s", "", "source directory with media files")
	runCmd.Flags().StringVarP(&dest, "dest", "d", "", "destination directory root")
	runCmd.Flags().StringVar(&ffprobePath, "ffprobe", "", "path to the ffprobe executable")
	runCmd.Flags().StringVar(&envFile, "env-file", "", "dotenv file with geocoder credentials")
	runCmd.Flags().StringVar(&conflictPolicy, "conflict", "", "conflict policy: skip, rename, overwrite, quarantine")
	runCmd.Flags().StringVar(&quarantine, "quarantine-dir", "", "directory for conflicting files")
	runCmd.Flags().StringVar(&logFile, "log-file", "", "log file path")
	runCmd.Flags().BoolVar(&logJSON, "log-json", false, "output JSON logs")
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "simulate without copying")
	runCmd.Flags().BoolVar(&hashVerify, "hash-verify", false, "verify copies with hash")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.LoadFromFile(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		cfg = config.DefaultConfig()
	}

	if source != "" {
		cfg.Source = source
	}
	if dest != "" {
		cfg.Dest = dest
	}
	if ffprobePath != "" {
		cfg.FFprobePath = ffprobePath
	}
	if envFile != "" {
		cfg.EnvFile = envFile
	}
	if conflictPolicy != "" {
		cfg.ConflictPolicy = types.ConflictPolicy(conflictPolicy)
	}
	if quarantine != "" {
		cfg.QuarantineDir = quarantine
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	if logJSON {
		cfg.LogJSON = true
	}
	if dryRun {
		cfg.DryRun = true
	}
	if hashVerify {
		cfg.HashVerify = true
	}

	cfg.LoadEnv()

	if err := cfg.Validate(); err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer p.Close()

	_, err = p.Run(cmd.Context())
	return err
}
