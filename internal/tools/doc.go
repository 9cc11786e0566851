// Package tools exposes the PullWeights registry operations as MCP tools.
//
// Each tool is a typed handler method on Toolbox that returns rendered text
// for an LLM to read. The MCP server built by NewServer and the CLI
// subcommands share these handlers, so a tool behaves identically over
// stdio and on the command line.
//
// Handlers hold no per-call state; a single Toolbox serves concurrent
// calls. Failures are returned as errors and surfaced to MCP clients on
// the tool result's error channel rather than as protocol errors, keeping
// them readable by the calling model.
package tools
