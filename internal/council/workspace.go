package council

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	baseDirName     = ".council"
	maxParentSearch = 5
)

// Workspace is the .council/<title> directory holding every artifact of one
// deliberation: stage1 answers, stage2 peer reviews and the final answer.
type Workspace struct {
	Title string
	Dir   string
}

// FindBaseDir locates the nearest .council directory: the current working
// directory first, then up to five parents. When none exists it falls back
// to <cwd>/.council so the missing-directory error surfaces on the title
// lookup with a concrete path.
func FindBaseDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	candidate := filepath.Join(cwd, baseDirName)
	if dirExists(candidate) {
		return candidate, nil
	}
	dir := cwd
	for i := 0; i < maxParentSearch; i++ {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
		candidate := filepath.Join(dir, baseDirName)
		if dirExists(candidate) {
			return candidate, nil
		}
	}
	return filepath.Join(cwd, baseDirName), nil
}

// OpenWorkspace resolves the workspace for title. The title directory must
// already exist; it is created by the upstream answer-collection stage.
func OpenWorkspace(title string) (*Workspace, error) {
	base, err := FindBaseDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(base, title)
	if !dirExists(dir) {
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			cwd = "."
		}
		return nil, fmt.Errorf("Directory not found: %s (searched from: %s)", dir, cwd)
	}
	return &Workspace{Title: title, Dir: dir}, nil
}

// WriteArtifact writes content to name inside the workspace, overwriting any
// previous run's output, and returns the full path.
func (w *Workspace) WriteArtifact(name, content string) (string, error) {
	path := filepath.Join(w.Dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			cwd = "."
		}
		return "", fmt.Errorf("Failed to write %s (current dir: %s): %w", path, cwd, err)
	}
	return path, nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
