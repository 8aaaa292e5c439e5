package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"github.com/thedailylaw/dailylaw-be/types"
	"google.golang.org/api/option"
)

type GeminiArticleService struct {
	apiKeys    []string
	currentKey int
	client     *genai.Client
	model      *genai.GenerativeModel
	modelName  string
	mu         sync.Mutex
}

func NewGeminiArticleService(apiKeys []string, modelName string) (*GeminiArticleService, error) {
	if len(apiKeys) == 0 {
		return nil, errors.New("no API keys provided")
	}

	service := &GeminiArticleService{
		apiKeys:    apiKeys,
		currentKey: 0,
		modelName:  modelName,
	}

	if err := service.initClient(); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *GeminiArticleService) initClient() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(s.apiKeys[s.currentKey]))
	if err != nil {
		return err
	}
	s.client = client
	s.model = client.GenerativeModel(s.modelName)
	s.model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(articleSystemPrompt)},
	}
	return nil
}

func (s *GeminiArticleService) rotateAPIKey() error {
	s.mu.Lock()
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
	if err := s.client.Close(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()
	return s.initClient()
}

func (s *GeminiArticleService) GenerateArticle(ctx context.Context, bill types.CongressBill, sponsors types.SponsorData) (*types.ArticleContent, error) {
	prompt := genai.Text(buildArticlePrompt(bill, sponsors))

	resp, err := s.model.GenerateContent(ctx, prompt)
	if err != nil {
		// Try the next API key once before giving up.
		if err := s.rotateAPIKey(); err != nil {
			return nil, err
		}
		resp, err = s.model.GenerateContent(ctx, prompt)
		if err != nil {
			return nil, err
		}
	}

	if len(resp.Candidates) == 0 {
		return nil, errors.New("no response generated")
	}

	content := ""
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				content += string(text)
			}
		}
	}

	return parseArticleJSON(content)
}
