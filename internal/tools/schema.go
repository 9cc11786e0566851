package tools

import (
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool declarations. Schemas are spelled out by hand rather than inferred
// from the argument structs so the descriptions, enums, and range
// constraints the model sees stay exact.

func searchTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "search",
		Description: "Search PullWeights for AI models by query, framework, or sort order",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"query": {Type: "string", Description: "Search query string"},
				"framework": {
					Type:        "string",
					Description: "Filter by framework (e.g. pytorch, gguf, safetensors)",
				},
				"sort": {
					Type:        "string",
					Enum:        []any{"downloads", "created", "name", "updated"},
					Description: "Sort order",
				},
				"per_page": {
					Type:        "integer",
					Minimum:     jsonschema.Ptr(1.0),
					Maximum:     jsonschema.Ptr(100.0),
					Description: "Results per page, 1 to 100 (default 20)",
				},
				"page": {
					Type:        "integer",
					Minimum:     jsonschema.Ptr(1.0),
					Description: "Page number, starting at 1",
				},
			},
		},
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true},
	}
}

func lsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "ls",
		Description: "List models in an org, or list your orgs (requires auth)",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"org": {
					Type:        "string",
					Description: "Organization name. Omit to list your orgs.",
				},
			},
		},
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true},
	}
}

func inspectTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "inspect",
		Description: "Get the manifest for a model version (files, checksums, metadata)",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"model": {
					Type:        "string",
					Description: "Model reference: org/model or org/model:tag",
				},
			},
			Required: []string{"model"},
		},
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true},
	}
}

func tagsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "tags",
		Description: "List available tags for a model",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"model": {
					Type:        "string",
					Description: "Model reference: org/model",
				},
			},
			Required: []string{"model"},
		},
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true},
	}
}

func pullTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "pull",
		Description: "Download a model's files to disk with SHA-256 verification",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"model": {
					Type:        "string",
					Description: "Model reference: org/model or org/model:tag",
				},
				"output_dir": {
					Type:        "string",
					Description: "Output directory (default: ./pullweights_models/org/model/tag)",
				},
			},
			Required: []string{"model"},
		},
		Annotations: &mcp.ToolAnnotations{IdempotentHint: true},
	}
}

func pushTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "push",
		Description: "Upload model files to PullWeights (three-phase: init, upload to storage, finalize)",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"model": {
					Type:        "string",
					Description: "Model reference: org/model:tag",
				},
				"files": {
					Type:        "array",
					Items:       &jsonschema.Schema{Type: "string"},
					MinItems:    jsonschema.Ptr(1),
					Description: "Absolute file paths to upload (at least one)",
				},
				"description": {
					Type:        "string",
					Description: "Model description",
				},
				"visibility": {
					Type:        "string",
					Enum:        []any{"public", "private"},
					Description: "Model visibility (default: public)",
				},
			},
			Required: []string{"model", "files"},
		},
	}
}

func updateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "update",
		Description: "Update a model's description or visibility (requires auth)",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"model": {
					Type:        "string",
					Description: "Model reference: org/model",
				},
				"description": {
					Type:        "string",
					Description: "New model description",
				},
				"visibility": {
					Type:        "string",
					Enum:        []any{"public", "private"},
					Description: "New model visibility",
				},
			},
			Required: []string{"model"},
		},
		Annotations: &mcp.ToolAnnotations{IdempotentHint: true},
	}
}
