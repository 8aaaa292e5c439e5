package service

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
	"github.com/thedailylaw/dailylaw-be/types"
)

type OpenAIArticleService struct {
	client *openai.Client
	model  string
}

func NewOpenAIArticleService(baseURL, apiKey, model string) *OpenAIArticleService {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	client := openai.NewClientWithConfig(config)
	return &OpenAIArticleService{
		client: client,
		model:  model,
	}
}

func (s *OpenAIArticleService) GenerateArticle(ctx context.Context, bill types.CongressBill, sponsors types.SponsorData) (*types.ArticleContent, error) {
	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: articleSystemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: buildArticlePrompt(bill, sponsors),
				},
			},
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		},
	)
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("no response generated")
	}

	return parseArticleJSON(resp.Choices[0].Message.Content)
}
