package types

import "time"

// Model is the server-side representation returned by GET /models/{uid}.
type Model struct {
	// Unique model identifier assigned by the service.
	// example: 4b8cd2c4a9e14c0d8b7f0c6a1e5d2f3a
	UID string `json:"uid" example:"4b8cd2c4a9e14c0d8b7f0c6a1e5d2f3a"`
	// Display name.
	// example: Old Bridge
	Name string `json:"name" example:"Old Bridge"`
	// Free-text description.
	Description string `json:"description,omitempty"`
	// API resource URI.
	URI string `json:"uri,omitempty"`
	// Public viewer page.
	ViewerURL string `json:"viewerUrl,omitempty"`
	// Embeddable viewer URL.
	EmbedURL string `json:"embedUrl,omitempty"`
	// License attached at upload time.
	License *License `json:"license,omitempty"`
	// Tags as normalized by the service.
	Tags []Tag `json:"tags,omitempty"`
	// Categories the model is filed under.
	Categories []Category `json:"categories,omitempty"`
	// Whether the model is visible to others.
	IsPublished bool `json:"isPublished"`
	// Whether the 3D inspector is enabled.
	IsInspectable bool `json:"isInspectable"`
	// Private models require a password (or ownership) to view.
	IsPrivate bool `json:"private"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	// Processing status of the uploaded file.
	Status      ModelStatus `json:"status"`
	FaceCount   int         `json:"faceCount,omitempty"`
	VertexCount int         `json:"vertexCount,omitempty"`
	Thumbnails  *Thumbnails `json:"thumbnails,omitempty"`
}

// IsReady reports whether the service has finished processing the model.
func (m Model) IsReady() bool { return m.Status.Processing == ProcessingSucceeded }

// ModelStatus carries the asynchronous processing state of a model.
type ModelStatus struct {
	// example: SUCCEEDED
	Processing ProcessingState `json:"processing" example:"SUCCEEDED"`
	// Optional warning emitted by the processing pipeline.
	Warning any `json:"warning,omitempty"`
}

// License identifies the license attached to a model.
type License struct {
	// example: by
	Slug  string `json:"slug" example:"by"`
	Label string `json:"label,omitempty"`
}

// Tag is a model tag as returned by the service.
type Tag struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Category groups models by subject.
type Category struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Thumbnails lists rendered previews of a model.
type Thumbnails struct {
	Images []ThumbnailImage `json:"images"`
}

type ThumbnailImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: model not found
	Error string `json:"error" example:"model not found"`
	// HTTP status code.
	// example: 404
	Code int `json:"code" example:"404"`
}
