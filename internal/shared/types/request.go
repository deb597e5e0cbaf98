package types

// ExecuteRequest represents a service execution request
type ExecuteRequest struct {
	ToolID string                 `json:"tool_id" binding:"required"`
	Params map[string]interface{} `json:"params" binding:"required"`
	TabID  *string                `json:"tab_id,omitempty"`
}

// NavigateRequest asks a tab to load an address
type NavigateRequest struct {
	Address string `json:"address" binding:"required"`
}

// SearchRequest asks a tab to run a search
type SearchRequest struct {
	Query          string `json:"query" binding:"required"`
	SkipSuggestion bool   `json:"skip_suggestion"`
}

// PageRequest moves a tab's search results to another page
type PageRequest struct {
	Page int `json:"page" binding:"required"`
}

// CapacityRequest changes the tab capacity
type CapacityRequest struct {
	Capacity int `json:"capacity" binding:"required"`
}

// ArchiveSubmitRequest is the archive viewer's search field
type ArchiveSubmitRequest struct {
	TabID   string `json:"tab_id"`
	Address string `json:"address" binding:"required"`
}

// WSMessage is a browser command sent over the websocket
type WSMessage struct {
	Type           string `json:"type"`
	TabID          string `json:"tab_id,omitempty"`
	Address        string `json:"address,omitempty"`
	Query          string `json:"query,omitempty"`
	SkipSuggestion bool   `json:"skip_suggestion,omitempty"`
	Page           int    `json:"page,omitempty"`
}
