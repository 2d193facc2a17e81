package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/conn"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/speaker/schema"
)

// Server wraps the MCP server with speaker control functionality
type Server struct {
	mcpServer *server.MCPServer
	fleet     *conn.Fleet
	validator *schema.Validator
}

// NewServer creates a new MCP server for speaker control
func NewServer(fleet *conn.Fleet, validator *schema.Validator) *Server {
	s := &Server{
		fleet:     fleet,
		validator: validator,
	}

	// Create MCP server
	s.mcpServer = server.NewMCPServer(
		"soundtouch",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	// Register all tools
	s.registerTools()

	return s
}

// ServeStdio starts the MCP server using stdio transport
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
