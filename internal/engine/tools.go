package engine

// toolDescriptors is the static tools/list payload: the two council tools
// and their JSON-schema input shapes.
func toolDescriptors() []map[string]any {
	return []map[string]any{
		{
			"name":        "council.peer_review",
			"description": "Stage2: Read Stage1 JSON files and generate peer review using local LLM CLI",
			"inputSchema": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title": map[string]any{
						"type":        "string",
						"description": "Conversation title/directory name",
					},
					"engine": map[string]any{
						"type":        "string",
						"description": "LLM model/engine (examples: sonnet, gemini, gpt, grok)",
						"default":     "claude",
					},
					"self_model": map[string]any{
						"type":        "string",
						"description": "Model name to exclude from peer review (its own response)",
					},
				},
				"required": []string{"title"},
			},
		},
		{
			"name":        "council.finalize",
			"description": "Stage3: Read Stage1 and Stage2 JSON files and generate final answer using local LLM CLI",
			"inputSchema": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title": map[string]any{
						"type":        "string",
						"description": "Conversation title/directory name",
					},
					"engine": map[string]any{
						"type":        "string",
						"description": "LLM model/engine (examples: sonnet, gemini, gpt, grok)",
						"default":     "claude",
					},
				},
				"required": []string{"title"},
			},
		},
	}
}
