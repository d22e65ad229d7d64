package providers

import (
	"context"
	"log/slog"

	"github.com/openai/openai-go"
	"github.com/roackb2/octave-chat/internal/pkg/utils"
)

type OpenAIChatProvider struct {
	Client *openai.Client
	Model  string
}

func NewOpenAIChatProvider(client *openai.Client, model string) *OpenAIChatProvider {
	return &OpenAIChatProvider{
		Client: client,
		Model:  utils.GetOrDefault(model, openai.ChatModelGPT4o),
	}
}

func (p *OpenAIChatProvider) Chat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	chatParams := p.assembleChatParams(req)
	p.debugStruct("Chat params messages", chatParams.Messages)

	chatCompletion, err := p.Client.Chat.Completions.New(ctx, chatParams)
	if err != nil {
		slog.Error("Chat completion error", "error", err)
		return ChatResponse{}, err
	}
	respMessage := chatCompletion.Choices[0].Message

	p.debugStruct("Chat completion", chatCompletion)
	return p.convertToChatResponse(chatCompletion.ID, &respMessage), nil
}

func (p *OpenAIChatProvider) assembleChatParams(req ChatRequest) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.Instructions != "" {
		messages = append(messages, openai.SystemMessage(req.Instructions))
	}
	for _, msg := range req.Messages {
		if converted := p.convertFromChatMessage(msg); converted != nil {
			messages = append(messages, converted)
		}
	}

	params := openai.ChatCompletionNewParams{
		Messages: openai.F(messages),
		Model:    openai.F(p.Model),
	}
	if len(req.Tools) > 0 {
		params.Tools = openai.F(p.convertToolDescriptors(req.Tools))
	}
	return params
}

func (p *OpenAIChatProvider) convertToolDescriptors(descriptors []ToolDescriptor) []openai.ChatCompletionToolParam {
	tools := make([]openai.ChatCompletionToolParam, len(descriptors))
	for i, d := range descriptors {
		tools[i] = openai.ChatCompletionToolParam{
			Type: openai.F(openai.ChatCompletionToolTypeFunction),
			Function: openai.F(openai.FunctionDefinitionParam{
				Name:        openai.String(d.Name),
				Description: openai.String(d.Description),
				Parameters:  openai.F(openai.FunctionParameters(d.Parameters)),
			}),
		}
	}
	return tools
}

func (p *OpenAIChatProvider) convertFromChatMessage(msg ChatMessage) openai.ChatCompletionMessageParamUnion {
	switch msg.Role {
	case "system":
		return openai.SystemMessage(*msg.Content)
	case "user":
		return openai.UserMessage(*msg.Content)
	case "assistant":
		if len(msg.ToolCalls) > 0 {
			return p.convertAssistantToolCalls(msg.ToolCalls)
		}
		return openai.AssistantMessage(*msg.Content)
	case "tool":
		return openai.ToolMessage(msg.ToolCall.ID, *msg.Content)
	}
	return nil
}

func (p *OpenAIChatProvider) convertAssistantToolCalls(toolCalls []ToolCall) openai.ChatCompletionAssistantMessageParam {
	converted := make([]openai.ChatCompletionMessageToolCallParam, len(toolCalls))
	for i, toolCall := range toolCalls {
		converted[i] = openai.ChatCompletionMessageToolCallParam{
			ID:   openai.F(toolCall.ID),
			Type: openai.F(openai.ChatCompletionMessageToolCallTypeFunction),
			Function: openai.F(openai.ChatCompletionMessageToolCallFunctionParam{
				Name:      openai.F(toolCall.FunctionName),
				Arguments: openai.F(toolCall.Args),
			}),
		}
	}
	return openai.ChatCompletionAssistantMessageParam{
		Role:      openai.F(openai.ChatCompletionAssistantMessageParamRoleAssistant),
		ToolCalls: openai.F(converted),
	}
}

func (p *OpenAIChatProvider) convertToChatResponse(id string, agentResponse *openai.ChatCompletionMessage) ChatResponse {
	resp := ChatResponse{
		ID:      id,
		Content: &agentResponse.Content,
		Role:    "assistant",
	}
	if agentResponse.ToolCalls != nil {
		resp.ToolCalls = make([]ToolCall, len(agentResponse.ToolCalls))
		for i, toolCall := range agentResponse.ToolCalls {
			resp.ToolCalls[i] = ToolCall{
				ID:           toolCall.ID,
				FunctionName: toolCall.Function.Name,
				Args:         toolCall.Function.Arguments,
			}
		}
	}
	return resp
}

func (p *OpenAIChatProvider) debugStruct(title string, v any) {
	slog.Debug(title)
	utils.PrintStruct(v)
}
