package ai

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

type openAIModel struct {
	client *openai.Client
	model  string
}

func NewOpenAIModel(apiKey, model string) Model {
	if model == "" {
		model = openai.GPT4o
	}
	return &openAIModel{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (o *openAIModel) DescribeImage(ctx context.Context, req VisionRequest) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.model,
		MaxTokens: req.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: req.Prompt},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    DataURL(req.Image, req.MimeType),
							Detail: openai.ImageURLDetailHigh,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return "", err
	}
	return firstChoice(resp)
}

func (o *openAIModel) Complete(ctx context.Context, req TextRequest) (string, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:       o.model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	}
	if req.JSONObject {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := o.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", err
	}
	return firstChoice(resp)
}

func (o *openAIModel) Close() error {
	return nil
}

func firstChoice(resp openai.ChatCompletionResponse) (string, error) {
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
