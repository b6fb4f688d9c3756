package council

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Stage1Answer is one model's answer to the user's question. Raw holds the
// decoded JSON document when the file was JSON, or the file text otherwise.
type Stage1Answer struct {
	Model    string
	Response string
	Raw      any
	File     string
}

// Stage2Review is one engine's ranking of the stage1 answers.
type Stage2Review struct {
	Engine string
	Review string
	Raw    any
	File   string
}

// Stage1Files returns the stage1 answer files in the workspace, in the
// sorted order os.ReadDir yields, so downstream labels are deterministic.
func (w *Workspace) Stage1Files() ([]string, error) {
	return w.matchFiles(isStage1Name)
}

// Stage2Files returns every peer-review file, canonical or legacy.
func (w *Workspace) Stage2Files() ([]string, error) {
	return w.matchFiles(func(name string) bool {
		return strings.Contains(name, "peer-review")
	})
}

func (w *Workspace) matchFiles(match func(string) bool) ([]string, error) {
	entries, err := os.ReadDir(w.Dir)
	if err != nil {
		return nil, fmt.Errorf("Failed to read directory: %s: %w", w.Dir, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if match(entry.Name()) {
			paths = append(paths, filepath.Join(w.Dir, entry.Name()))
		}
	}
	return paths, nil
}

// Markdown answers are preferred; JSON is accepted for backward
// compatibility with the earlier collection stage.
func isStage1Name(name string) bool {
	return strings.Contains(name, "-answer.md") || strings.HasSuffix(name, "answer.md") ||
		strings.Contains(name, "-answer.json") || strings.HasSuffix(name, "answer.json")
}

// LoadStage1 reads every stage1 answer. Zero answer files is a hard error:
// the upstream collection stage has not run for this title.
func (w *Workspace) LoadStage1() ([]Stage1Answer, error) {
	files, err := w.Stage1Files()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("No Stage1 answer files found in %s", w.Dir)
	}
	answers := make([]Stage1Answer, 0, len(files))
	for _, path := range files {
		answer, err := ReadStage1Answer(path)
		if err != nil {
			return nil, fmt.Errorf("Failed to parse answer file: %s: %w", path, err)
		}
		answers = append(answers, answer)
	}
	return answers, nil
}

// LoadStage2 reads every peer-review file. An empty result is not an error
// here; the finalize stage decides whether reviews are required.
func (w *Workspace) LoadStage2() ([]Stage2Review, error) {
	files, err := w.Stage2Files()
	if err != nil {
		return nil, err
	}
	reviews := make([]Stage2Review, 0, len(files))
	for _, path := range files {
		review, err := ReadStage2Review(path)
		if err != nil {
			return nil, fmt.Errorf("Failed to parse review file: %s: %w", path, err)
		}
		reviews = append(reviews, review)
	}
	return reviews, nil
}

// ReadStage1Answer loads one answer file. JSON documents yield their model
// field and extracted content; anything that fails to parse as JSON is taken
// verbatim as the response text. The model falls back to the filename with
// the -answer suffix stripped.
func ReadStage1Answer(path string) (Stage1Answer, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Stage1Answer{}, fmt.Errorf("Failed to read file: %s: %w", path, err)
	}
	file := filepath.Base(path)
	modelFromName := strings.ReplaceAll(stem(file), "-answer", "")
	if modelFromName == "" {
		modelFromName = "unknown-model"
	}

	var doc any
	if err := json.Unmarshal(content, &doc); err == nil {
		model := modelFromName
		if m, ok := doc.(map[string]any); ok {
			if s, ok := m["model"].(string); ok {
				model = s
			}
		}
		return Stage1Answer{Model: model, Response: ExtractContent(doc), Raw: doc, File: file}, nil
	}
	return Stage1Answer{Model: modelFromName, Response: string(content), Raw: string(content), File: file}, nil
}

// ReadStage2Review loads one peer-review file with the same JSON-or-text
// fallback as stage1. The engine falls back to the filename with the
// peer-review-by- prefix stripped.
func ReadStage2Review(path string) (Stage2Review, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Stage2Review{}, fmt.Errorf("Failed to read file: %s: %w", path, err)
	}
	file := filepath.Base(path)
	engineFromName := strings.ReplaceAll(stem(file), "peer-review-by-", "")
	if engineFromName == "" {
		engineFromName = "unknown-engine"
	}

	var doc any
	if err := json.Unmarshal(content, &doc); err == nil {
		engine := engineFromName
		review, hasReview := "", false
		if m, ok := doc.(map[string]any); ok {
			if s, ok := m["engine"].(string); ok {
				engine = s
			}
			if s, ok := m["review"].(string); ok {
				review, hasReview = s, true
			}
		}
		if !hasReview {
			review = ExtractContent(doc)
		}
		return Stage2Review{Engine: engine, Review: review, Raw: doc, File: file}, nil
	}
	return Stage2Review{Engine: engineFromName, Review: string(content), Raw: string(content), File: file}, nil
}

// ExtractContent pulls the answer text out of a decoded JSON value: the
// response field, then content, then the value itself when it is a bare
// string, then a pretty-printed dump as the last resort.
func ExtractContent(doc any) string {
	if m, ok := doc.(map[string]any); ok {
		if s, ok := m["response"].(string); ok {
			return s
		}
		if s, ok := m["content"].(string); ok {
			return s
		}
	}
	if s, ok := doc.(string); ok {
		return s
	}
	pretty, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "Invalid content"
	}
	return string(pretty)
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
