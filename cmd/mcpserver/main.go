package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/roackb2/octave-chat/config"
	"github.com/roackb2/octave-chat/internal/pkg/agents/tools"
	"github.com/roackb2/octave-chat/internal/pkg/mcpserver"
	"github.com/roackb2/octave-chat/internal/pkg/octave"
	"github.com/roackb2/octave-chat/internal/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, relying on config file and environment")
	}

	mode := utils.GetOrDefault(os.Getenv("APP_MODE"), "dev")
	if err := config.LoadConfig(mode); err != nil {
		slog.Error("Error loading configuration", "error", err)
		panic(err)
	}

	octaveClient := octave.NewClient(octave.Config{
		BaseURL:          config.Config.OctaveBaseURL(),
		APIKey:           config.Config.Octave.APIKey,
		EnrichCompanyOID: config.Config.Octave.EnrichCompanyOID,
		EnrichPersonOID:  config.Config.Octave.EnrichPersonOID,
		SequenceOID:      config.Config.Octave.SequenceOID,
	})
	server := mcpserver.New(tools.NewRegistry(octaveClient))

	mux := http.NewServeMux()
	mux.Handle("/mcp", server.Handler())

	addr := fmt.Sprintf(":%s", config.Config.Server.MCPPort)
	log.Println("MCP server is running on port", config.Config.Server.MCPPort)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("MCP server stopped", "error", err)
		panic(err)
	}
}
