package modelapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"modelhub/internal/httpform"
	"modelhub/pkg/types"
)

// GetModel fetches the current state of modelID. The call is not
// authenticated. Any non-2xx response is returned as a *StatusError.
func (c *Client) GetModel(ctx context.Context, modelID string) (*types.Model, error) {
	c.log.Info().Str("op", opGet).Str("model", modelID).Msg("Get model")
	if strings.TrimSpace(modelID) == "" {
		return nil, c.fail(opGet, kindInvalidArgument, ErrInvalidArgument("model id"))
	}
	hr, err := httpform.NewRequest(http.MethodGet, c.modelURL(modelID), nil)
	if err != nil {
		return nil, c.fail(opGet, kindMarshal, err)
	}
	hr.Header.Set("Accept", "application/json")

	resp, err := c.send(ctx, opGet, hr)
	if err != nil {
		return nil, c.fail(opGet, kindTransport, fmt.Errorf("get model: %w", err))
	}
	if !isSuccess(resp.StatusCode) {
		se := rejected(opGet, resp)
		_ = resp.Body.Close()
		return nil, c.fail(opGet, kindRejected, se)
	}
	defer drain(resp)

	var m types.Model
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, c.fail(opGet, kindDecode, fmt.Errorf("decode model: %w", err))
	}
	c.log.Info().Str("op", opGet).Str("model", modelID).Str("processing", string(m.Status.Processing)).Msg("GetModel OK")
	return &m, nil
}

// IsReady reports whether the service has finished processing modelID.
// Errors from GetModel are returned unchanged.
func (c *Client) IsReady(ctx context.Context, modelID string) (bool, error) {
	m, err := c.GetModel(ctx, modelID)
	if err != nil {
		c.log.Error().Str("op", opReady).Str("model", modelID).Err(err).Msg("readiness check failed")
		return false, err
	}
	return m.IsReady(), nil
}
