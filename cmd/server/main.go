package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/roackb2/octave-chat/config"
	"github.com/roackb2/octave-chat/internal/app/controllers"
	"github.com/roackb2/octave-chat/internal/pkg/agents/engine"
	"github.com/roackb2/octave-chat/internal/pkg/agents/providers"
	"github.com/roackb2/octave-chat/internal/pkg/agents/tools"
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
	registry := tools.NewRegistry(octaveClient)

	client := openai.NewClient(option.WithAPIKey(config.Config.OpenAI.APIKey))
	provider := providers.NewOpenAIChatProvider(client, config.Config.OpenAI.Model)
	orchestrator := engine.NewEngine(provider, registry)

	r := gin.Default()
	chatController := controllers.NewChatController(orchestrator)
	api := r.Group("/api")
	{
		api.POST("/chat", chatController.Chat)
	}
	r.GET("/healthz", controllers.Healthz)

	log.Println("Server is running on port", config.Config.Server.Port)
	if err := r.Run(fmt.Sprintf(":%s", config.Config.Server.Port)); err != nil {
		slog.Error("Server stopped", "error", err)
		panic(err)
	}
}
