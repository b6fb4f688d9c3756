package council

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testWorkspace(t *testing.T) *Workspace {
	t.Helper()
	dir := t.TempDir()
	return &Workspace{Title: "test", Dir: dir}
}

func TestReadStage1AnswerMarkdown(t *testing.T) {
	ws := testWorkspace(t)
	path := writeFile(t, ws.Dir, "claude-answer.md", "Paris is the capital")

	answer, err := ReadStage1Answer(path)
	require.NoError(t, err)
	require.Equal(t, "claude", answer.Model)
	require.Equal(t, "Paris is the capital", answer.Response)
	require.Equal(t, "Paris is the capital", answer.Raw)
}

func TestReadStage1AnswerJSON(t *testing.T) {
	ws := testWorkspace(t)
	path := writeFile(t, ws.Dir, "gpt-answer.json", `{"model":"gpt-4o","response":"Paris.","query":"capital?"}`)

	answer, err := ReadStage1Answer(path)
	require.NoError(t, err)
	require.Equal(t, "gpt-4o", answer.Model)
	require.Equal(t, "Paris.", answer.Response)
}

func TestReadStage1AnswerJSONWithoutModelField(t *testing.T) {
	ws := testWorkspace(t)
	path := writeFile(t, ws.Dir, "gemini-answer.json", `{"content":"Paris, France."}`)

	answer, err := ReadStage1Answer(path)
	require.NoError(t, err)
	require.Equal(t, "gemini", answer.Model)
	require.Equal(t, "Paris, France.", answer.Response)
}

func TestReadStage1AnswerRoundTrip(t *testing.T) {
	// Writing an answer and reading it back preserves model and content.
	ws := testWorkspace(t)
	writeFile(t, ws.Dir, "sonnet-answer.md", "the answer text")

	answers, err := ws.LoadStage1()
	require.NoError(t, err)
	require.Len(t, answers, 1)
	require.Equal(t, "sonnet", answers[0].Model)
	require.Equal(t, "the answer text", ExtractContent(answers[0].Raw))
}

func TestLoadStage1EmptyIsError(t *testing.T) {
	ws := testWorkspace(t)
	_, err := ws.LoadStage1()
	require.Error(t, err)
	require.Contains(t, err.Error(), "No Stage1 answer files found")
}

func TestLoadStage1SortedOrder(t *testing.T) {
	ws := testWorkspace(t)
	writeFile(t, ws.Dir, "zeta-answer.md", "z")
	writeFile(t, ws.Dir, "alpha-answer.md", "a")
	writeFile(t, ws.Dir, "mid-answer.md", "m")

	answers, err := ws.LoadStage1()
	require.NoError(t, err)
	require.Len(t, answers, 3)
	require.Equal(t, []string{"alpha", "mid", "zeta"}, []string{answers[0].Model, answers[1].Model, answers[2].Model})
}

func TestReadStage2ReviewJSON(t *testing.T) {
	ws := testWorkspace(t)
	path := writeFile(t, ws.Dir, "peer-review-by-gemini.md", `{"engine":"gemini-pro","review":"ranked"}`)

	review, err := ReadStage2Review(path)
	require.NoError(t, err)
	require.Equal(t, "gemini-pro", review.Engine)
	require.Equal(t, "ranked", review.Review)
}

func TestReadStage2ReviewFilenameFallback(t *testing.T) {
	ws := testWorkspace(t)
	path := writeFile(t, ws.Dir, "peer-review-by-grok.md", "# Peer Review\nfull text")

	review, err := ReadStage2Review(path)
	require.NoError(t, err)
	require.Equal(t, "grok", review.Engine)
	require.Equal(t, "# Peer Review\nfull text", review.Review)
}

func TestLoadStage2EmptyIsNotError(t *testing.T) {
	ws := testWorkspace(t)
	reviews, err := ws.LoadStage2()
	require.NoError(t, err)
	require.Empty(t, reviews)
}

func TestExtractContentFallbackOrder(t *testing.T) {
	require.Equal(t, "r", ExtractContent(map[string]any{"response": "r", "content": "c"}))
	require.Equal(t, "c", ExtractContent(map[string]any{"content": "c"}))
	require.Equal(t, "bare", ExtractContent("bare"))
	require.Equal(t, "{\n  \"other\": \"x\"\n}", ExtractContent(map[string]any{"other": "x"}))
}
