// Package cli builds the pullweights-mcp command tree.
//
// The root command carries the connection flags shared by every
// subcommand. serve runs the MCP stdio server; the other subcommands call
// the tool handlers directly and print the same text an MCP client would
// receive, so tool output can be exercised without an agent attached.
package cli
