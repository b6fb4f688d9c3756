package council

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

var queryFileNames = []string{"query.txt", "user_query.txt", "question.txt", "input.txt"}

// UserQuery recovers the original user question for the workspace: a
// dedicated query file first, then a query/user_query field in a stage1 JSON
// answer, then the literal "Unknown query". It never fails.
func (w *Workspace) UserQuery() string {
	for _, name := range queryFileNames {
		content, err := os.ReadFile(filepath.Join(w.Dir, name))
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	entries, err := os.ReadDir(w.Dir)
	if err != nil {
		return "Unknown query"
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			continue
		}
		if !strings.Contains(name, "-answer.json") && !strings.HasSuffix(name, "answer.json") {
			continue
		}
		content, err := os.ReadFile(filepath.Join(w.Dir, name))
		if err != nil {
			continue
		}
		var doc map[string]any
		if err := json.Unmarshal(content, &doc); err != nil {
			continue
		}
		if q, ok := doc["query"].(string); ok {
			return q
		}
		if q, ok := doc["user_query"].(string); ok {
			return q
		}
	}
	return "Unknown query"
}
