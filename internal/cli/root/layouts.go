package root

import "github.com/regenrek/splitpanes/internal/layoutfile"

// LayoutDirs are the directories a command's layout loader works from.
type LayoutDirs struct {
	Project string
	Work    string
}

// ResolveLayoutDirs resolves the project dir (nearest ancestor with a project
// layout) and the work dir (anchor for relative layout paths).
func ResolveLayoutDirs(ctx CommandContext) (LayoutDirs, error) {
	work, err := ResolveWorkDir(ctx)
	if err != nil {
		return LayoutDirs{}, err
	}
	project, err := ResolveProjectDir(ctx)
	if err != nil {
		return LayoutDirs{}, err
	}
	return LayoutDirs{Project: project, Work: work}, nil
}

// NewLoader returns a loader with every source loaded.
func (d LayoutDirs) NewLoader() (*layoutfile.Loader, error) {
	loader, err := layoutfile.NewLoader(d.Project)
	if err != nil {
		return nil, err
	}
	loader.SetWorkDir(d.Work)
	if err := loader.LoadAll(); err != nil {
		return nil, err
	}
	return loader, nil
}
