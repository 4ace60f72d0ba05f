package modelapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"modelhub/internal/httpform"
)

// Update replaces the metadata of modelID with the common fields of req. No
// file is sent. Any non-2xx response is returned as a *StatusError.
func (c *Client) Update(ctx context.Context, modelID string, req *UploadRequest, token string) error {
	if req == nil {
		return c.fail(opUpdate, kindInvalidArgument, ErrInvalidArgument("request"))
	}
	c.log.Info().Str("op", opUpdate).Str("model", modelID).Msgf("Updating model [%s].", req.Name)
	if strings.TrimSpace(modelID) == "" {
		return c.fail(opUpdate, kindInvalidArgument, ErrInvalidArgument("model id"))
	}

	form := httpform.NewForm()
	addCommonFields(form, req)
	if err := form.Close(); err != nil {
		return c.fail(opUpdate, kindMarshal, fmt.Errorf("build update form: %w", err))
	}
	hr, err := httpform.NewRequest(http.MethodPatch, c.modelURL(modelID), form.Bytes())
	if err != nil {
		return c.fail(opUpdate, kindMarshal, err)
	}
	hr.Header.Set("Content-Type", form.ContentType())
	httpform.SetAuthorization(hr.Header, req.TokenType.String(), token)

	resp, err := c.send(ctx, opUpdate, hr)
	if err != nil {
		return c.fail(opUpdate, kindTransport, fmt.Errorf("update: %w", err))
	}
	if !isSuccess(resp.StatusCode) {
		se := rejected(opUpdate, resp)
		_ = resp.Body.Close()
		return c.fail(opUpdate, kindRejected, se)
	}
	drain(resp)
	return nil
}
