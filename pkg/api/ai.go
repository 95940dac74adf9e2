package api

import (
	"net/http"

	"github.com/otterlog/daypulse/pkg/models"
)

// AI helper endpoints. All of these are passthrough calls to the backend's
// assistant; the client only shapes requests and surfaces whatever comes back.

// NowSuggestion asks for a one-line hint about what to focus on right now
func (c *Client) NowSuggestion() (string, error) {
	var out models.NowSuggestion
	if err := c.get("/ai/now/suggestion", &out); err != nil {
		return "", err
	}
	return out.Suggestion, nil
}

// HistoryInsights summarizes alert response patterns in a date range
func (c *Client) HistoryInsights(r models.DateRange) (models.HistoryInsights, error) {
	var out models.HistoryInsights
	err := c.do(http.MethodPost, "/ai/history/insights", r, &out)
	return out, err
}

// NotesSummary summarizes the user's snooze/skip micro-journal notes
func (c *Client) NotesSummary(r models.DateRange) (models.NotesSummary, error) {
	var out models.NotesSummary
	err := c.do(http.MethodPost, "/ai/notes/summary", r, &out)
	return out, err
}

// TemplateSuggestions turns a free-text routine description into templates
func (c *Client) TemplateSuggestions(freeText string) ([]models.Task, error) {
	var out models.TemplateSuggestions
	req := models.TemplateSuggestionsRequest{FreeText: freeText}
	if err := c.do(http.MethodPost, "/ai/templates/suggestions", req, &out); err != nil {
		return nil, err
	}
	return out.Templates, nil
}

// RefineTemplate adjusts one template according to an instruction
func (c *Client) RefineTemplate(task models.Task, instruction string) (models.Task, error) {
	var out models.TemplateRefineResponse
	req := models.TemplateRefineRequest{Template: task, Instruction: instruction}
	if err := c.do(http.MethodPost, "/ai/templates/refine", req, &out); err != nil {
		return models.Task{}, err
	}
	return out.Template, nil
}

// WordingOptions suggests alert phrasings for a category and tone
func (c *Client) WordingOptions(req models.WordingRequest) ([]string, error) {
	var out models.WordingOptions
	if err := c.do(http.MethodPost, "/ai/alerts/wording", req, &out); err != nil {
		return nil, err
	}
	return out.Options, nil
}

// Speak asks the backend to read text aloud through its TTS pipeline
func (c *Client) Speak(text string) error {
	return c.do(http.MethodPost, "/ai/tts/play", models.SpeechRequest{Text: text}, nil)
}
