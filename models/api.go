package models

// URLRequest is the body shared by /api/metadata and /api/ai-summarize.
type URLRequest struct {
	URL string `json:"url"`
}

// FaviconResponse wraps a validated favicon URL.
type FaviconResponse struct {
	FaviconURL string `json:"faviconUrl"`
}

// ErrorResponse carries an error message and, for metadata extraction
// failures, a best-effort fallback record the client can still render.
type ErrorResponse struct {
	Error    string          `json:"error"`
	Fallback *MetadataRecord `json:"fallback,omitempty"`
}

// MessageResponse is a plain acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse reports service status and cache statistics.
type HealthResponse struct {
	Status           string `json:"status"`
	CacheSize        int    `json:"cacheSize"`
	FaviconCacheSize int    `json:"faviconCacheSize"`
}

// ServicesHealthResponse reports liveness of the summarization collaborators.
type ServicesHealthResponse struct {
	TranscriptService bool `json:"transcriptService"`
	OpenAIConfigured  bool `json:"openaiConfigured"`
}

// SummaryChunk is a single server-push event payload on the summary stream.
type SummaryChunk struct {
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
}
