package council

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	reviewPrefix          = "peer-review-"
	canonicalReviewPrefix = "peer-review-by-"
)

// MigrateLegacyReviews renames review files written under deprecated naming
// conventions to the canonical peer-review-by-<engine>.md form. It never
// overwrites an existing canonical file and swallows every failure: the
// migration is advisory cleanup, not a prerequisite for the current write.
func (w *Workspace) MigrateLegacyReviews(engineToken string, logger *slog.Logger) {
	// Oldest convention: a single bare peer-review.md with no engine at all.
	// Adopt it for the engine running now.
	bare := filepath.Join(w.Dir, "peer-review.md")
	canonical := filepath.Join(w.Dir, canonicalReviewPrefix+engineToken+".md")
	if fileExists(bare) && !fileExists(canonical) {
		if moveFile(bare, canonical) && logger != nil {
			logger.Info("council.review_migrated", "from", bare, "to", canonical)
		}
	}

	// Interim convention: peer-review-<engine>.md without the -by- marker.
	entries, err := os.ReadDir(w.Dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, reviewPrefix) ||
			!strings.HasSuffix(name, ".md") || strings.Contains(name, canonicalReviewPrefix) {
			continue
		}
		engine := strings.TrimSuffix(strings.TrimPrefix(name, reviewPrefix), ".md")
		if engine == "" {
			continue
		}
		src := filepath.Join(w.Dir, name)
		dst := filepath.Join(w.Dir, canonicalReviewPrefix+engine+".md")
		if fileExists(dst) {
			continue
		}
		if moveFile(src, dst) && logger != nil {
			logger.Info("council.review_migrated", "from", src, "to", dst)
		}
	}
}

// moveFile renames src to dst, falling back to a read+write copy when the
// rename fails. Best-effort: a false return means the legacy file stays.
func moveFile(src, dst string) bool {
	if err := os.Rename(src, dst); err == nil {
		return true
	}
	content, err := os.ReadFile(src)
	if err != nil {
		return false
	}
	return os.WriteFile(dst, content, 0o644) == nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
