// Package planner derives the destination path for a file from its
// resolution. Pure and deterministic: the same file with the same metadata
// always plans to the same path.
package planner

import (
	"path/filepath"

	"github.com/MFLakatos/imgs-Nvideo-rename-Nmove-Wmetadata/pkg/types"
)

const noMetadataDir = "noMetadata"

// Planner builds destination paths under destRoot.
type Planner struct {
	destRoot string
}

func New(destRoot string) *Planner {
	return &Planner{destRoot: destRoot}
}

// Plan maps an entry and its resolution to a copy task:
//
//	<dest>/<year>/<images|videos>/YYYY-MM-DD-HH-MM-SS[-region-country]<ext>
//	<dest>/noMetadata/<images|videos>/<original name>   (no timestamp)
//	<dest>/noMetadata/<original name>                   (unrecognized extension)
//
// The original extension is appended verbatim, case untouched.
func (p *Planner) Plan(entry types.FileEntry, res types.Resolution) types.CopyTask {
	task := types.CopyTask{
		Source:     entry,
		Resolution: res,
	}

	switch {
	case entry.Kind == types.MediaOther:
		task.DestDir = filepath.Join(p.destRoot, noMetadataDir)
		task.DestPath = filepath.Join(task.DestDir, entry.Name)

	case res.Timestamp == nil:
		task.DestDir = filepath.Join(p.destRoot, noMetadataDir, string(entry.Kind))
		task.DestPath = filepath.Join(task.DestDir, entry.Name)

	default:
		t := *res.Timestamp
		name := t.Format("2006-01-02-15-04-05")
		if res.Place != nil {
			name += "-" + res.Place.Region + "-" + res.Place.Country
		}
		name += entry.Ext

		task.DestDir = filepath.Join(p.destRoot, t.Format("2006"), string(entry.Kind))
		task.DestPath = filepath.Join(task.DestDir, name)
		task.Renamed = true
	}

	return task
}

// NoMetadataDirs lists the fallback directories pre-created at the start of
// a run, mirroring the destination layout even when they stay empty.
func NoMetadataDirs(destRoot string) []string {
	return []string{
		filepath.Join(destRoot, noMetadataDir, string(types.MediaImage)),
		filepath.Join(destRoot, noMetadataDir, string(types.MediaVideo)),
	}
}
