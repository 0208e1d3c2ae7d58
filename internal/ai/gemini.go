package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/GriffinCanCode/ChimeraOS/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/infrastructure/resilience"
)

const defaultTemperature = 0.7

// GeminiClient calls the generateContent endpoint of a Gemini-compatible API.
type GeminiClient struct {
	resty   *resty.Client
	limiter *rate.Limiter
	breaker *resilience.Breaker
	model   string
	apiKey  string
	logger  *logging.Logger
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature,omitempty"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type generateRequest struct {
	Contents          []content        `json:"contents"`
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewGeminiClient builds a client from configuration. It returns
// ErrUnavailable when no API key is configured.
func NewGeminiClient(cfg config.AIConfig, logger *logging.Logger) (*GeminiClient, error) {
	if !cfg.Enabled() {
		return nil, ErrUnavailable
	}

	// Retries of 429 and 5xx answers happen in the retryablehttp round
	// tripper; resty itself sends each request once.
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.Retries
	retryClient.RetryWaitMin = 200 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Logger = nil

	restyClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "ChimeraOS/1.0")
	restyClient.SetTransport(retryClient.StandardClient().Transport)

	log := logging.OrNop(logger).Named("gemini")
	breaker := resilience.New("ai", resilience.Settings{
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(c resilience.Counts) bool {
			return c.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to resilience.State) {
			log.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &GeminiClient{
		resty:   restyClient,
		limiter: rate.NewLimiter(rate.Limit(5), 10),
		breaker: breaker,
		model:   cfg.Model,
		apiKey:  cfg.APIKey,
		logger:  log,
	}, nil
}

// Generate returns the model's text reply.
func (c *GeminiClient) Generate(ctx context.Context, prompt, system string) (string, error) {
	return c.generate(ctx, prompt, system, generationConfig{Temperature: defaultTemperature})
}

// GenerateJSON asks for a JSON reply and returns its raw bytes after
// checking that they parse.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt, system string) ([]byte, error) {
	text, err := c.generate(ctx, prompt, system, generationConfig{ResponseMimeType: "application/json"})
	if err != nil {
		return nil, err
	}
	raw := ExtractJSON(text)
	if !sonic.Valid(raw) {
		return nil, ErrBadJSON
	}
	return raw, nil
}

func (c *GeminiClient) generate(ctx context.Context, prompt, system string, gen generationConfig) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req := generateRequest{
		Contents:         []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: gen,
	}
	if system != "" {
		req.SystemInstruction = &content{Parts: []part{{Text: system}}}
	}
	body, err := sonic.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	var text string
	err = c.breaker.Do(ctx, func(ctx context.Context) error {
		resp, err := c.resty.R().
			SetContext(ctx).
			SetQueryParam("key", c.apiKey).
			SetBody(body).
			Post(fmt.Sprintf("/v1beta/models/%s:generateContent", c.model))
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}

		var out generateResponse
		if err := sonic.Unmarshal(resp.Body(), &out); err != nil {
			return fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode(), err)
		}
		if out.Error != nil {
			return fmt.Errorf("model error %d: %s", out.Error.Code, out.Error.Message)
		}
		if resp.IsError() {
			return fmt.Errorf("model returned status %d", resp.StatusCode())
		}

		text = firstText(out)
		return nil
	})
	if err != nil {
		c.logger.Warn("Generation failed", zap.String("model", c.model), zap.Error(err))
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func firstText(resp generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// ExtractJSON strips a markdown code fence or leading prose around a JSON
// document, returning the bytes from the first '{' or '[' to the matching
// last '}' or ']'.
func ExtractJSON(text string) []byte {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return []byte(s)
	}
	closer := byte('}')
	if s[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(s, closer)
	if end < start {
		return []byte(s[start:])
	}
	return []byte(s[start : end+1])
}
