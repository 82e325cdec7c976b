// Package pipeline is the batch driver: scan the source folder, resolve
// each file's capture time and location, plan its destination, and copy.
// Files are processed sequentially; one file's failure never aborts the
// rest. The single fatal condition is a missing ffprobe executable.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/internal/config"
	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/internal/copier"
	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/internal/geocode"
	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/internal/log"
	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/internal/metadata"
	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/internal/planner"
	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/internal/policy"
	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/internal/resolve"
	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/internal/scanner"
	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/pkg/types"
)

type Pipeline struct {
	cfg      *config.Config
	scanner  *scanner.Scanner
	resolver *resolve.Resolver
	planner  *planner.Planner
	conflict *policy.ConflictResolver
	copier   *copier.Copier
	logger   *log.Logger
}

// New wires the pipeline and fails fast when the container probe is not
// runnable: without it every video in the batch would silently lose its
// metadata.
func New(cfg *config.Config) (*Pipeline, error) {
	logger, err := log.New(cfg.LogFile, cfg.LogJSON, true)
	if err != nil {
		return nil, err
	}

	probe := metadata.NewFFProbeExtractor(cfg.FFprobePath)
	if err := probe.CheckBinary(); err != nil {
		logger.Close()
		return nil, err
	}

	resolver := resolve.New(
		metadata.New(cfg.FFprobePath),
		geocode.NewOpenCage(cfg.OpenCageAPIKey),
		geocode.NewNominatim(cfg.NominatimEmail),
		logger,
	)

	quarantinePath := filepath.Join(cfg.Dest, cfg.QuarantineDir)

	return &Pipeline{
		cfg:      cfg,
		scanner:  scanner.New(),
		resolver: resolver,
		planner:  planner.New(cfg.Dest),
		conflict: policy.NewConflictResolver(cfg.ConflictPolicy, quarantinePath),
		copier:   copier.New(cfg.DryRun, cfg.HashVerify),
		logger:   logger,
	}, nil
}

func (p *Pipeline) Run(ctx context.Context) (*types.RunSummary, error) {
	startTime := time.Now()

	p.logger.Info("Starting scan: '" + p.cfg.Source + "'")

	entries, err := p.scanner.Scan(p.cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to scan source: %w", err)
	}

	p.logger.Info("Found " + strconv.Itoa(len(entries)) + " files")

	if !p.cfg.DryRun {
		if err := p.createFallbackDirs(); err != nil {
			return nil, err
		}
	}

	summary := &types.RunSummary{
		ScannedFiles: len(entries),
		StartTime:    startTime,
	}

	for _, entry := range entries {
		if err := p.processOne(ctx, entry, summary); err != nil {
			// Missing probe binary is the one condition that aborts the
			// whole batch.
			if errors.Is(err, metadata.ErrProbeNotFound) {
				return nil, err
			}
			summary.Failed++
			p.logger.Error("Failed to process "+entry.Name, err)
		}
	}

	summary.EndTime = time.Now()
	summary.Duration = summary.EndTime.Sub(startTime)
	p.logger.Summary(*summary)

	return summary, nil
}

func (p *Pipeline) processOne(ctx context.Context, entry types.FileEntry, summary *types.RunSummary) error {
	res, err := p.resolver.Resolve(ctx, entry)
	if err != nil {
		return err
	}

	task := p.planner.Plan(entry, res)

	resolution := p.conflict.Resolve(&task)
	if resolution.Skip {
		task.Action = resolution.Action
		summary.Skipped++
		p.logger.LogTask(task)
		return nil
	}
	task.DestPath = resolution.DestPath
	task.Action = resolution.Action

	task = p.copier.Copy(task)
	if task.Error != "" {
		summary.Failed++
		p.logger.LogTask(task)
		return nil
	}

	switch {
	case task.Action == types.CopyActionQuarantined:
		summary.Quarantined++
	case task.Renamed:
		summary.Organized++
	case entry.Kind == types.MediaOther:
		summary.Unrecognized++
	default:
		summary.NoMetadata++
	}
	summary.BytesCopied += entry.Size

	p.logger.LogTask(task)
	return nil
}

// createFallbackDirs pre-creates the noMetadata layout so it exists even
// for an all-metadata batch, mirroring the destination contract.
func (p *Pipeline) createFallbackDirs() error {
	for _, dir := range planner.NoMetadataDirs(p.cfg.Dest) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

func (p *Pipeline) Close() error {
	return p.logger.Close()
}
