package rationalize

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/blackwell-systems/aiready/internal/advisor"
)

const (
	batchEndpoint    = "/v1/chat/completions"
	batchTemperature = 0.2
	maxResponseLine  = 16 << 20
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatBody struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
	Temperature    float64        `json:"temperature"`
}

// requestLine is one line of a chat completions batch input file.
type requestLine struct {
	CustomID string   `json:"custom_id"`
	Method   string   `json:"method"`
	URL      string   `json:"url"`
	Body     chatBody `json:"body"`
}

// responseLine is one line of a batch output file.
type responseLine struct {
	CustomID string `json:"custom_id"`
	Response *struct {
		StatusCode int `json:"status_code"`
		Body       struct {
			Choices []struct {
				Message chatMessage `json:"message"`
			} `json:"choices"`
		} `json:"body"`
	} `json:"response"`
	Error json.RawMessage `json:"error"`
}

func (l responseLine) content() (string, error) {
	if len(l.Error) > 0 && string(l.Error) != "null" {
		return "", fmt.Errorf("batch error: %s", l.Error)
	}
	if l.Response == nil {
		return "", fmt.Errorf("no response")
	}
	if l.Response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", l.Response.StatusCode)
	}
	if len(l.Response.Body.Choices) == 0 {
		return "", fmt.Errorf("no choices")
	}
	return l.Response.Body.Choices[0].Message.Content, nil
}

// ExportBatch writes one batch request line per chunk of the active
// catalog to w and returns the number of lines written.
func (r *Rationalizer) ExportBatch(ctx context.Context, w io.Writer) (int, error) {
	batches, err := r.batches(ctx)
	if err != nil {
		return 0, err
	}
	enc := json.NewEncoder(w)
	for i, batch := range batches {
		line := requestLine{
			CustomID: batchID(i),
			Method:   http.MethodPost,
			URL:      batchEndpoint,
			Body: chatBody{
				Model: r.model,
				Messages: []chatMessage{
					{Role: "system", Content: advisor.GroupingSystemPrompt},
					{Role: "user", Content: advisor.GroupingPrompt(batch)},
				},
				ResponseFormat: responseFormat{Type: "json_object"},
				Temperature:    batchTemperature,
			},
		}
		if err := enc.Encode(line); err != nil {
			return i, fmt.Errorf("writing %s: %w", line.CustomID, err)
		}
	}
	return len(batches), nil
}

// ApplyBatch reads a batch output file and applies the groups of every
// successful line. Lines that failed or cannot be decoded are counted as
// failed batches.
func (r *Rationalizer) ApplyBatch(ctx context.Context, in io.Reader) (Result, error) {
	var res Result
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), maxResponseLine)
	for sc.Scan() {
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}
		res.Batches++

		var line responseLine
		if err := json.Unmarshal(raw, &line); err != nil {
			res.FailedBatches++
			r.log.WithError(err).Warn("unreadable batch response line")
			continue
		}
		log := r.log.WithField("batch", line.CustomID)
		content, err := line.content()
		if err != nil {
			res.FailedBatches++
			log.WithError(err).Warn("batch response failed")
			continue
		}
		grouping, err := advisor.DecodeGrouping(content)
		if err != nil {
			res.FailedBatches++
			log.WithError(err).Warn("invalid batch response content")
			continue
		}
		if err := r.Apply(ctx, grouping.CapabilityGroups, &res); err != nil {
			return res, err
		}
	}
	if err := sc.Err(); err != nil {
		return res, fmt.Errorf("reading batch responses: %w", err)
	}
	return res, nil
}
