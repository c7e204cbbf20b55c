package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"civdef-inventory-backend/internal/domain"
	"civdef-inventory-backend/internal/logger"
	"civdef-inventory-backend/internal/repository"
)

// FallbackAnswer is returned whenever the language-model call fails for any
// reason. Callers always get a usable string.
const FallbackAnswer = "Sorry, the assistant could not produce an answer. Check the connection or the API key configuration."

const systemPromptHeader = `You are the inventory assistant for a civil-defense organization.
Your mission is to help staff locate equipment and manage the inventory.

CURRENT INVENTORY:
%s

INSTRUCTIONS:
1. Answer availability questions based ONLY on the inventory listed above.
2. If asked for suggestions about equipment not on the list, suggest standard emergency-grade specifications.
3. Be concise, professional, and use an emergency-service tone.
4. If asked about something that does not exist, say so clearly.`

type assistantService struct {
	itemRepo repository.ItemRepository
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
}

func NewAssistantService(itemRepo repository.ItemRepository, endpoint, model, apiKey string) AssistantService {
	return &assistantService{
		itemRepo: itemRepo,
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    model,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Wire format of the Generative Language generateContent endpoint.
type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	SystemInstruction *generateContent  `json:"system_instruction,omitempty"`
	Contents          []generateContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

func (s *assistantService) Answer(ctx context.Context, query string) (string, error) {
	items, err := s.itemRepo.List(ctx)
	if err != nil {
		logger.Error("Failed to load inventory for assistant context", "error", err)
		return FallbackAnswer, nil
	}

	answer, err := s.generate(ctx, query, items)
	logger.ExternalServiceResult("assistant", "generateContent", err)
	if err != nil {
		return FallbackAnswer, nil
	}
	return answer, nil
}

func (s *assistantService) generate(ctx context.Context, query string, items []domain.Item) (string, error) {
	if s.apiKey == "" {
		return "", errors.New("assistant API key is not configured")
	}

	var sb strings.Builder
	for _, item := range items {
		specs, _ := json.Marshal(item.Specifications)
		fmt.Fprintf(&sb, "- %s (%s): Total %d, Available %d. ID: %d. Specs: %s\n",
			item.Name, item.Category, item.Quantity, item.Available, item.ID, specs)
	}

	payload := generateRequest{
		SystemInstruction: &generateContent{
			Parts: []generatePart{{Text: fmt.Sprintf(systemPromptHeader, sb.String())}},
		},
		Contents: []generateContent{
			{Parts: []generatePart{{Text: query}}},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", s.endpoint, s.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("assistant endpoint returned status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("assistant returned no candidates")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
