// Package modelapi is a client for a 3D model hosting REST API. It is split
// into small files by concern:
//
//   - client.go: Client, Options, construction and the shared send path.
//   - request.go: UploadRequest, UploadResponse and TokenType.
//   - errors.go: error types and helpers (IsInvalidArgument, IsFileNotFound, IsRemoteRejected).
//   - upload.go: Upload (POST /models).
//   - update.go: Update (PATCH /models/{uid}).
//   - get.go: GetModel and IsReady (GET /models/{uid}).
//   - transport.go: default pooled *http.Client.
//
// Failure policy differs per operation: Upload reports a rejected status in
// the returned UploadResponse with a nil error, while Update, GetModel and
// IsReady return a *StatusError for any non-2xx status.
//
// The client holds no per-call state; a single Client may be shared by
// concurrent callers.
package modelapi
