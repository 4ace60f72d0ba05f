package modelapi

import (
	"fmt"
	"strings"

	"modelhub/internal/httpform"
)

// TokenType is the authorization scheme placed in front of the token.
type TokenType int

const (
	// Bearer is used for OAuth2 access tokens.
	Bearer TokenType = iota
	// Token is used for personal API tokens.
	Token
)

// String returns the Authorization header prefix.
func (t TokenType) String() string {
	switch t {
	case Bearer:
		return "Bearer"
	case Token:
		return "Token"
	default:
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
}

// ParseTokenType maps a case-insensitive scheme name to a TokenType.
// The empty string selects Bearer.
func ParseTokenType(s string) (TokenType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bearer":
		return Bearer, nil
	case "token":
		return Token, nil
	default:
		return Bearer, fmt.Errorf("unknown token type %q (want bearer|token)", s)
	}
}

// UploadRequest describes a model to upload, or the metadata to apply to an
// existing model. Pointer booleans are only sent when non-nil.
type UploadRequest struct {
	// FilePath is the local model file. Required by Upload, ignored by Update.
	FilePath string
	// Source identifies the producing tool; strongly recommended.
	Source string

	Name        string
	Description string
	Tags        []string
	Categories  []string
	License     string
	Password    string

	Private       *bool
	IsPublished   *bool
	IsInspectable *bool

	TokenType TokenType

	// ModelID is set by a successful Upload.
	ModelID string
}

// UploadResponse is the outcome of Upload. ModelID is empty unless the
// service accepted the model.
type UploadResponse struct {
	ModelID    string
	StatusCode int
	// Message is the reason phrase of the response status.
	Message string
}

// Succeeded reports whether the service accepted the upload.
func (r UploadResponse) Succeeded() bool { return r.StatusCode >= 200 && r.StatusCode < 300 }

// Bool returns a pointer to v, for the optional flags of UploadRequest.
func Bool(v bool) *bool { return &v }

// addCommonFields writes the metadata shared by upload and update forms.
func addCommonFields(f *httpform.Form, r *UploadRequest) {
	f.AddString("name", r.Name)
	f.AddString("description", r.Description)
	f.AddRange("tags", r.Tags)
	f.AddRange("categories", r.Categories)
	f.AddString("license", r.License)
	f.AddString("password", r.Password)
	f.AddBool("private", r.Private)
	f.AddBool("isPublished", r.IsPublished)
	f.AddBool("isInspectable", r.IsInspectable)
}
