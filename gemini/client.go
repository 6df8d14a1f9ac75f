// Package gemini implements the schema-constrained generative client:
// three operations against the Gemini generateContent endpoint, each
// sending a natural-language instruction plus a structural JSON schema and
// returning a parsed, validated domain object. The upstream is never
// trusted to honor the schema silently; every response is re-validated for
// required-field presence and any non-conformant payload becomes a
// *domain.GenerationError.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/prescrito/prescrito-api/domain"
	"github.com/prescrito/prescrito-api/interfaces"
	"github.com/prescrito/prescrito-api/logging"
	"github.com/prescrito/prescrito-api/metrics"
)

// Compile-time check to ensure Client implements Generator
var _ interfaces.Generator = (*Client)(nil)

const apiPath = "/v1beta/models/{model}:generateContent"

// User-facing failure messages, surfaced verbatim by the controller.
const (
	msgPrescriptionFailed = "Falha ao comunicar com o modelo de IA. Verifique sua chave de API e tente novamente."
	msgDrugInfoFailed     = "Falha ao comunicar com o modelo de IA para obter informações sobre medicamentos."
	msgInteractionFailed  = "Falha ao comunicar com o modelo de IA para verificar interações."
)

// Client talks to the generative backend over HTTP. Calls go through a
// circuit breaker so a flapping upstream fails fast instead of piling up
// 30s timeouts.
type Client struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
	model   string
	ids     domain.IDGenerator
}

// NewClient creates a generative client. The API key must already have
// been validated at process init; it is attached to every request here.
func NewClient(baseURL, apiKey, model string, ids domain.IDGenerator) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(45 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", apiKey)

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "gemini",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn("Generative backend circuit breaker state change",
				"breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		http:    httpClient,
		breaker: breaker,
		model:   model,
		ids:     ids,
	}
}

// BreakerState exposes the circuit breaker state for health reporting.
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}

// generateContent request/response envelopes.

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType"`
	ResponseSchema   *Schema `json:"responseSchema"`
	Temperature      float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generate performs one schema-constrained call and returns the raw JSON
// text produced by the model.
func (c *Client) generate(ctx context.Context, operation, prompt string, schema *Schema, temperature float64) ([]byte, error) {
	start := time.Now()

	result, err := c.breaker.Execute(func() (any, error) {
		var envelope generateResponse
		resp, err := c.http.R().
			SetContext(ctx).
			SetPathParam("model", c.model).
			SetBody(generateRequest{
				Contents: []content{{Parts: []part{{Text: prompt}}}},
				GenerationConfig: generationConfig{
					ResponseMimeType: "application/json",
					ResponseSchema:   schema,
					Temperature:      temperature,
				},
			}).
			SetResult(&envelope).
			Post(apiPath)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("upstream returned status %d: %s", resp.StatusCode(), resp.String())
		}
		if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
			return nil, fmt.Errorf("upstream returned no candidates")
		}
		return []byte(strings.TrimSpace(envelope.Candidates[0].Content.Parts[0].Text)), nil
	})

	metrics.GenerationRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GenerationRequestTotals.WithLabelValues(operation, "error").Inc()
		logging.Error("Generative backend call failed", "operation", operation, "error", err)
		return nil, err
	}
	metrics.GenerationRequestTotals.WithLabelValues(operation, "success").Inc()

	return result.([]byte), nil
}

// requireFields checks that a JSON object carries every required key.
func requireFields(raw json.RawMessage, required []string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("payload is not a JSON object: %w", err)
	}
	for _, key := range required {
		if _, ok := fields[key]; !ok {
			return fmt.Errorf("payload is missing required field %q", key)
		}
	}
	return nil
}

// FetchDrugInfo looks up structured information about one drug.
func (c *Client) FetchDrugInfo(ctx context.Context, name string) (domain.DrugInfo, error) {
	raw, err := c.generate(ctx, "drug_info", drugInfoPrompt(name), drugInfoSchema, 0.2)
	if err != nil {
		return domain.DrugInfo{}, domain.NewGenerationError(msgDrugInfoFailed, err)
	}

	if err := requireFields(raw, drugInfoSchema.Required); err != nil {
		return domain.DrugInfo{}, domain.NewGenerationError(msgDrugInfoFailed, err)
	}

	var info domain.DrugInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return domain.DrugInfo{}, domain.NewGenerationError(msgDrugInfoFailed, err)
	}
	return info, nil
}

// FetchInteractions analyses pairwise interactions between the given
// drugs. Blank names are dropped before the call. The pairwise
// completeness of the response (one entry per queried drug, no
// self-interactions) is validated post-parse as a soft failure: the
// upstream's array lengths are not schema-enforced, so a mismatch is
// logged and the response still returned.
func (c *Client) FetchInteractions(ctx context.Context, names []string) ([]domain.ResultadoInteracao, error) {
	queried := domain.CleanDrugNames(names)

	raw, err := c.generate(ctx, "interactions", interactionsPrompt(queried), fullInteractionSchema, 0.3)
	if err != nil {
		return nil, domain.NewGenerationError(msgInteractionFailed, err)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, domain.NewGenerationError(msgInteractionFailed, fmt.Errorf("payload is not a JSON array: %w", err))
	}
	for _, entry := range entries {
		if err := requireFields(entry, interactionResultSchema.Required); err != nil {
			return nil, domain.NewGenerationError(msgInteractionFailed, err)
		}
	}

	var results []domain.ResultadoInteracao
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, domain.NewGenerationError(msgInteractionFailed, err)
	}

	for _, problem := range domain.CheckInteractionResults(queried, results) {
		logging.Warn("Interaction response failed pairwise check", "problem", problem)
	}

	for i := range results {
		domain.SortInteractions(results[i].Interacoes)
	}
	return results, nil
}

// GeneratePrescriptionTemplate drafts a prescription skeleton for a
// diagnosis. Every medication item gets a locally generated stable id;
// the upstream schema cannot produce those, they are UI-only correlation
// keys.
func (c *Client) GeneratePrescriptionTemplate(ctx context.Context, diagnosis string, tipo domain.TipoReceita) (domain.Prescription, error) {
	raw, err := c.generate(ctx, "prescription", prescriptionPrompt(diagnosis, tipo), prescriptionSchema, 0.5)
	if err != nil {
		return domain.Prescription{}, domain.NewGenerationError(msgPrescriptionFailed, err)
	}

	if err := requireFields(raw, prescriptionSchema.Required); err != nil {
		return domain.Prescription{}, domain.NewGenerationError(msgPrescriptionFailed, err)
	}

	var prescription domain.Prescription
	if err := json.Unmarshal(raw, &prescription); err != nil {
		return domain.Prescription{}, domain.NewGenerationError(msgPrescriptionFailed, err)
	}

	prescription.ID = ""
	prescription.Tipo = tipo
	return domain.NormalizePrescription(c.ids, prescription), nil
}
