package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"modelhub/internal/fsutil"
	"modelhub/pkg/modelapi"
)

// metaFlags are the model metadata flags shared by upload and update.
type metaFlags struct {
	name, description, license, password string
	tags, categories                      []string
	private, published, inspectable       bool
}

func (m *metaFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&m.name, "name", "", "Display name")
	f.StringVar(&m.description, "description", "", "Description")
	f.StringArrayVar(&m.tags, "tag", nil, "Tag (repeatable)")
	f.StringArrayVar(&m.categories, "category", nil, "Category slug (repeatable)")
	f.StringVar(&m.license, "license", "", "License slug, e.g. by, by-sa, cc0")
	f.StringVar(&m.password, "password", "", "Password for private models")
	f.BoolVar(&m.private, "private", false, "Mark the model private (sent only when given)")
	f.BoolVar(&m.published, "published", false, "Publish the model (sent only when given)")
	f.BoolVar(&m.inspectable, "inspectable", false, "Enable the 3D inspector (sent only when given)")
}

// request builds an UploadRequest; boolean flags are included only when set
// on the command line.
func (m *metaFlags) request(cmd *cobra.Command, tt modelapi.TokenType) *modelapi.UploadRequest {
	r := &modelapi.UploadRequest{
		Name:        m.name,
		Description: m.description,
		Tags:        m.tags,
		Categories:  m.categories,
		License:     m.license,
		Password:    m.password,
		TokenType:   tt,
	}
	if cmd.Flags().Changed("private") {
		r.Private = modelapi.Bool(m.private)
	}
	if cmd.Flags().Changed("published") {
		r.IsPublished = modelapi.Bool(m.published)
	}
	if cmd.Flags().Changed("inspectable") {
		r.IsInspectable = modelapi.Bool(m.inspectable)
	}
	return r
}

// uploadResult is the JSON printed by `upload`.
type uploadResult struct {
	ModelID    string `json:"model_id,omitempty"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

func newUploadCmd(a *app) *cobra.Command {
	var meta metaFlags
	var source string
	cmd := &cobra.Command{
		Use:     "upload <file>",
		Short:   "Upload a model file",
		Example: "  modelhub upload ./bridge.glb --name Bridge --tag stone --source my-exporter",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireToken(); err != nil {
				return err
			}
			path, err := fsutil.ExpandHome(args[0])
			if err != nil {
				return err
			}
			req := meta.request(cmd, a.tokenType)
			req.FilePath = path
			req.Source = a.cfg.Source
			if cmd.Flags().Changed("source") {
				req.Source = source
			}
			res, err := a.client.Upload(cmd.Context(), req, a.cfg.Token)
			if err != nil {
				return err
			}
			if err := a.printJSON(uploadResult{ModelID: res.ModelID, StatusCode: res.StatusCode, Message: res.Message}); err != nil {
				return err
			}
			if !res.Succeeded() {
				return fmt.Errorf("upload rejected: %d %s", res.StatusCode, res.Message)
			}
			return nil
		},
	}
	meta.register(cmd)
	cmd.Flags().StringVar(&source, "source", "", "Tool identifier sent as the upload source (defaults to config source)")
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var meta metaFlags
	cmd := &cobra.Command{
		Use:     "update <uid>",
		Short:   "Update the metadata of an existing model",
		Example: "  modelhub update 4b8cd2c4a9e1 --name \"Old Bridge\" --published",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireToken(); err != nil {
				return err
			}
			return a.client.Update(cmd.Context(), strings.TrimSpace(args[0]), meta.request(cmd, a.tokenType), a.cfg.Token)
		},
	}
	meta.register(cmd)
	return cmd
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <uid>",
		Short: "Print the current state of a model as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.client.GetModel(cmd.Context(), strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			return a.printJSON(m)
		},
	}
}

func newReadyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ready <uid>",
		Short: "Report whether a model has finished processing (exit 3 when not ready)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uid := strings.TrimSpace(args[0])
			ready, err := a.client.IsReady(cmd.Context(), uid)
			if err != nil {
				return err
			}
			if err := a.printJSON(map[string]any{"uid": uid, "ready": ready}); err != nil {
				return err
			}
			if !ready {
				return errNotReady
			}
			return nil
		},
	}
}
