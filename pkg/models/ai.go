package models

// Request and response bodies for the /ai/ helper endpoints. These are
// passthrough calls; the client treats the payloads as opaque suggestions.

type NowSuggestion struct {
	Suggestion string `json:"suggestion"`
}

// DateRange narrows history-based AI requests. Dates are "YYYY-MM-DD";
// empty fields are omitted.
type DateRange struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

type HistoryInsights struct {
	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
}

type NotesSummary struct {
	Patterns        []string `json:"patterns"`
	Recommendations []string `json:"recommendations"`
}

type TemplateSuggestionsRequest struct {
	FreeText string `json:"free_text"`
}

type TemplateSuggestions struct {
	Templates []Task `json:"templates"`
}

type TemplateRefineRequest struct {
	Template    Task   `json:"template"`
	Instruction string `json:"instruction,omitempty"`
}

type TemplateRefineResponse struct {
	Template Task `json:"template"`
}

type WordingRequest struct {
	Category  string `json:"category"`
	Tone      string `json:"tone"`
	MaxLength int    `json:"max_length,omitempty"`
	Count     int    `json:"count,omitempty"`
}

type WordingOptions struct {
	Options []string `json:"options"`
}

type SpeechRequest struct {
	Text string `json:"text"`
}
