// Package policy decides what happens when a planned destination already
// exists. Timestamp-derived names collide legitimately (burst shots within
// the same second), so the behavior is configurable.
package policy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/pkg/types"
)

type ConflictResolver struct {
	policy        types.ConflictPolicy
	quarantineDir string
}

func NewConflictResolver(policy types.ConflictPolicy, quarantineDir string) *ConflictResolver {
	return &ConflictResolver{
		policy:        policy,
		quarantineDir: quarantineDir,
	}
}

type Resolution struct {
	Action   types.CopyAction
	DestPath string
	Skip     bool
}

func (c *ConflictResolver) Resolve(task *types.CopyTask) Resolution {
	if _, err := os.Stat(task.DestPath); os.IsNotExist(err) {
		return Resolution{Action: types.CopyActionCopied, DestPath: task.DestPath}
	}

	switch c.policy {
	case types.ConflictPolicyOverwrite:
		return Resolution{Action: types.CopyActionOverwritten, DestPath: task.DestPath}

	case types.ConflictPolicySkip:
		return Resolution{Action: types.CopyActionSkipped, Skip: true}

	case types.ConflictPolicyRename:
		return Resolution{Action: types.CopyActionRenamed, DestPath: c.generateUniqueName(task.DestPath)}

	case types.ConflictPolicyQuarantine:
		quarantinePath := filepath.Join(c.quarantineDir, task.Source.Name)
		return Resolution{Action: types.CopyActionQuarantined, DestPath: c.generateUniqueName(quarantinePath)}

	default:
		return Resolution{Action: types.CopyActionSkipped, Skip: true}
	}
}

func (c *ConflictResolver) generateUniqueName(path string) string {
	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(filepath.Base(path), ext)

	for i := 1; i < 10000; i++ {
		newPath := filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, i, ext))
		if _, err := os.Stat(newPath); os.IsNotExist(err) {
			return newPath
		}
	}

	return path
}
