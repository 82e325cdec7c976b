// Package copier performs the actual file copies, one file at a time.
package copier

import (
	"io"
	"os"
	"path/filepath"

	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/internal/verify"
	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/pkg/types"
)

type Copier struct {
	dryRun     bool
	hashVerify bool
}

func New(dryRun, hashVerify bool) *Copier {
	return &Copier{
		dryRun:     dryRun,
		hashVerify: hashVerify,
	}
}

// Copy executes one task: create the destination directory, copy via a
// .part file, rename into place, preserve the source modification time,
// then verify.
func (c *Copier) Copy(task types.CopyTask) types.CopyTask {
	if c.dryRun {
		return task
	}

	if err := os.MkdirAll(task.DestDir, 0755); err != nil {
		return fail(task, err)
	}

	partPath := task.DestPath + ".part"
	if err := atomicCopy(task.Source.Path, partPath, task.DestPath); err != nil {
		os.Remove(partPath)
		return fail(task, err)
	}

	if err := verify.Copy(task.Source.Path, task.DestPath, task.Source.Size, c.hashVerify); err != nil {
		return fail(task, err)
	}

	return task
}

func fail(task types.CopyTask, err error) types.CopyTask {
	task.Action = types.CopyActionFailed
	task.Error = err.Error()
	return task
}

func atomicCopy(src, partDest, finalDest string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	// The planner may place tasks outside DestDir (quarantine); make sure
	// the immediate parent exists too.
	if err := os.MkdirAll(filepath.Dir(partDest), 0755); err != nil {
		return err
	}

	dstFile, err := os.Create(partDest)
	if err != nil {
		return err
	}

	_, err = io.Copy(dstFile, srcFile)
	if closeErr := dstFile.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}

	// Preserve modification time, like a copy that keeps stat info.
	if info, err := srcFile.Stat(); err == nil {
		os.Chtimes(partDest, info.ModTime(), info.ModTime())
	}

	return os.Rename(partDest, finalDest)
}
