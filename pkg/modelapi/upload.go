package modelapi

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"modelhub/internal/httpform"
	"modelhub/internal/metrics"
)

// modelFileField is the multipart field carrying the model payload.
const modelFileField = "modelFile"

// Upload sends req.FilePath to POST /models. A rejected upload is reported
// through the returned UploadResponse with a nil error; only invalid input and
// transport failures return an error. On success the assigned id is also
// written to req.ModelID.
func (c *Client) Upload(ctx context.Context, req *UploadRequest, token string) (UploadResponse, error) {
	var out UploadResponse
	if req == nil {
		return out, c.fail(opUpload, kindInvalidArgument, ErrInvalidArgument("request"))
	}
	c.log.Info().Str("op", opUpload).Str("path", req.FilePath).Msgf("Uploading model [%s].", req.FilePath)
	if strings.TrimSpace(req.FilePath) == "" {
		return out, c.fail(opUpload, kindInvalidArgument, ErrInvalidArgument("file path"))
	}
	if fi, err := os.Stat(req.FilePath); err != nil || fi.IsDir() {
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			return out, c.fail(opUpload, kindNotFound, ErrFileNotFound(req.FilePath))
		}
		return out, c.fail(opUpload, kindIO, fmt.Errorf("stat model file: %w", err))
	}
	data, err := os.ReadFile(req.FilePath)
	if err != nil {
		return out, c.fail(opUpload, kindIO, fmt.Errorf("read model file: %w", err))
	}

	form := httpform.NewForm()
	form.AddFile(modelFileField, filepath.Base(req.FilePath), data)
	if strings.TrimSpace(req.Source) != "" {
		form.AddField("source", req.Source)
	} else {
		c.log.Warn().Str("op", opUpload).Msg("upload has no source configured; set one to identify all models produced by the same exporter")
	}
	addCommonFields(form, req)
	if err := form.Close(); err != nil {
		return out, c.fail(opUpload, kindMarshal, fmt.Errorf("build upload form: %w", err))
	}

	hr, err := httpform.NewRequest(http.MethodPost, c.baseURL+"/models", form.Bytes())
	if err != nil {
		return out, c.fail(opUpload, kindMarshal, err)
	}
	hr.Header.Set("Content-Type", form.ContentType())
	httpform.SetAuthorization(hr.Header, req.TokenType.String(), token)

	start := time.Now()
	resp, err := c.send(ctx, opUpload, hr)
	if err != nil {
		return out, c.fail(opUpload, kindTransport, fmt.Errorf("upload: %w", err))
	}
	metrics.AddUploadBytes(len(data))

	out.StatusCode = resp.StatusCode
	out.Message = reasonPhrase(resp)
	if !isSuccess(resp.StatusCode) {
		se := rejected(opUpload, resp)
		_ = resp.Body.Close()
		metrics.IncError(opUpload, kindRejected)
		c.log.Error().Str("op", opUpload).Int("status", se.Code).Str("reason", se.Reason).Str("body", se.Body).
			Msgf("Error in model upload: %d %s", se.Code, se.Reason)
		return out, nil
	}
	defer drain(resp)

	if loc := resp.Header.Values("Location"); len(loc) > 0 {
		out.ModelID = loc[0]
	}
	req.ModelID = out.ModelID
	if out.ModelID == "" {
		c.log.Warn().Str("op", opUpload).Int("status", out.StatusCode).Msg("upload accepted without a Location header")
	}
	c.log.Info().Str("op", opUpload).Str("model", out.ModelID).Dur("dur", time.Since(start)).
		Msgf("Uploading is complete. Model uid is %s", out.ModelID)
	return out, nil
}
