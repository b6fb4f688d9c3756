package council

import "fmt"

// BuildReviewMarkdown renders the persisted stage2 artifact: a fixed header
// identifying the run followed by the reviewer's raw output.
func BuildReviewMarkdown(title, engine, userQuery string, answerCount int, reviewOutput string) string {
	return fmt.Sprintf(
		"# Peer Review\n- title: %s\n- engine: %s\n- answers reviewed: %d\n\n## User Question\n%s\n\n## Review\n%s",
		title, engine, answerCount, userQuery, reviewOutput,
	)
}

// BuildFinalMarkdown renders the persisted stage3 artifact.
func BuildFinalMarkdown(title, engine, userQuery string, stage1Count, stage2Count int, finalOutput string) string {
	return fmt.Sprintf(
		"# Final Answer\n- title: %s\n- engine: %s\n- stage1 responses: %d\n- stage2 reviews: %d\n\n## User Question\n%s\n\n## Final Answer\n%s",
		title, engine, stage1Count, stage2Count, userQuery, finalOutput,
	)
}
