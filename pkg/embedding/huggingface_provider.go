package embedding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HuggingFaceProvider implements EmbeddingProvider using the HF Inference
// feature-extraction route. The prospectus index was built with
// BAAI/bge-large-en-v1.5 (1024 dimensions), so queries must use the same model.
type HuggingFaceProvider struct {
	APIKey  string
	BaseURL string
	Model   string
	Client  *http.Client
}

func NewHuggingFaceProvider(apiKey, model string) EmbeddingProvider {
	if model == "" {
		model = "BAAI/bge-large-en-v1.5"
	}
	return &HuggingFaceProvider{
		APIKey:  apiKey,
		BaseURL: "https://router.huggingface.co/hf-inference/models",
		Model:   model,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type hfEmbeddingRequest struct {
	Inputs []string `json:"inputs"`
}

func (p *HuggingFaceProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	// TaskType has no meaning for BGE models, kept for interface compatibility

	reqBody := hfEmbeddingRequest{Inputs: []string{text}}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s/pipeline/feature-extraction", p.BaseURL, p.Model)
	req, err := http.NewRequest("POST", endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.APIKey)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("huggingface embedding error: %s", string(bodyBytes))
	}

	// Response shape: one vector per input
	var vectors [][]float32
	if err := json.Unmarshal(bodyBytes, &vectors); err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("huggingface embedding returned no vectors")
	}

	// Normalize for cosine distance in pgvector
	normalizedValues := normalizeVector(vectors[0])

	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{
			Values: normalizedValues,
		},
	}, nil
}
