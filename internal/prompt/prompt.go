// Package prompt assembles the deliberation prompts sent to review and
// chairman engines. Both are plain string templates; any parsing contract
// (like the FINAL RANKING section) lives in the template text itself.
package prompt

import (
	"fmt"
	"strings"

	"council/internal/council"
)

// LabeledAnswer is a stage1 answer under its ephemeral anonymized label.
type LabeledAnswer struct {
	Label   string
	Content string
}

// Label returns the anonymized name for the answer at index, "Response A"
// onward. Callers assign labels after any self-model exclusion so the
// sequence stays consecutive.
func Label(index int) string {
	return fmt.Sprintf("Response %c", rune('A'+index))
}

// Ranking builds the stage2 prompt asking one engine to evaluate and rank
// the anonymized answers, ending with a machine-parseable FINAL RANKING
// section.
func Ranking(userQuery string, answers []LabeledAnswer) string {
	blocks := make([]string, 0, len(answers))
	for _, a := range answers {
		blocks = append(blocks, a.Label+":\n"+a.Content)
	}
	return fmt.Sprintf(`You are evaluating different responses to the following question:

Question: %s

Here are the responses from different models (anonymized):

%s

Your task:
1. First, evaluate each response individually. For each response, explain what it does well and what it does poorly.
2. Then, at the very end of your response, provide a final ranking.

IMPORTANT: Your final ranking MUST be formatted EXACTLY as follows:
- Start with the line "FINAL RANKING:" (all caps, with colon)
- Then list the responses from best to worst as a numbered list
- Each line should be: number, period, space, then ONLY the response label (e.g., "1. Response A")
- Do not add any other text or explanations in the ranking section

Example of the correct format for your ENTIRE response:

Response A provides good detail on X but misses Y...
Response B is accurate but lacks depth on Z...
Response C offers the most comprehensive answer...

FINAL RANKING:
1. Response C
2. Response A
3. Response B

Now provide your evaluation and ranking:`, userQuery, strings.Join(blocks, "\n\n"))
}

// Chairman builds the stage3 prompt asking one engine to synthesize the
// stage1 answers and stage2 rankings into a single final answer.
func Chairman(userQuery string, answers []council.Stage1Answer, reviews []council.Stage2Review) string {
	stage1Blocks := make([]string, 0, len(answers))
	for i, a := range answers {
		model := a.Model
		if model == "" {
			model = fmt.Sprintf("Model %d", i+1)
		}
		stage1Blocks = append(stage1Blocks, fmt.Sprintf("Model: %s\nResponse: %s", model, a.Response))
	}
	stage2Blocks := make([]string, 0, len(reviews))
	for i, r := range reviews {
		engine := r.Engine
		if engine == "" {
			engine = fmt.Sprintf("Reviewer %d", i+1)
		}
		stage2Blocks = append(stage2Blocks, fmt.Sprintf("Model: %s\nRanking: %s", engine, r.Review))
	}
	return fmt.Sprintf(`You are the Chairman of an LLM Council. Multiple AI models have provided responses to a user's question, and then ranked each other's responses.

Original Question: %s

STAGE 1 - Individual Responses:
%s

STAGE 2 - Peer Rankings:
%s

Your task as Chairman is to synthesize all of this information into a single, comprehensive, accurate answer to the user's original question. Consider:
- The individual responses and their insights
- The peer rankings and what they reveal about response quality
- Any patterns of agreement or disagreement

Provide a clear, well-reasoned final answer that represents the council's collective wisdom:`,
		userQuery, strings.Join(stage1Blocks, "\n\n"), strings.Join(stage2Blocks, "\n\n"))
}
