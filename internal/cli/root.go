package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"modelhub/internal/config"
	"modelhub/pkg/modelapi"
)

// errNotReady is returned by `ready` when the model is still processing.
var errNotReady = errors.New("model is not ready")

// app carries state shared by all subcommands of one invocation.
type app struct {
	out, errOut io.Writer

	configPath string
	cfg        config.Config

	log       zerolog.Logger
	client    *modelapi.Client
	tokenType modelapi.TokenType

	// httpClient overrides the transport; used by tests.
	httpClient *http.Client
}

// setup resolves configuration (file, then env, then flags) and builds the client.
func (a *app) setup(cmd *cobra.Command) error {
	var cfg config.Config
	if a.configPath != "" {
		c, err := config.Load(a.configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
	}
	cfg = config.FromEnv(cfg)
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL, _ = flags.GetString("base-url")
	}
	if flags.Changed("token") {
		cfg.Token, _ = flags.GetString("token")
	}
	if flags.Changed("token-type") {
		cfg.TokenType, _ = flags.GetString("token-type")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	a.cfg = cfg

	tt, err := modelapi.ParseTokenType(cfg.TokenType)
	if err != nil {
		return err
	}
	a.tokenType = tt
	a.log = newLogger(a.errOut, cfg.LogLevel)

	hc := a.httpClient
	if hc == nil {
		hc = modelapi.NewHTTPClient(time.Duration(cfg.RequestTimeoutSeconds) * time.Second)
	}
	a.client, err = modelapi.New(modelapi.Options{BaseURL: cfg.BaseURL, HTTPClient: hc, Logger: &a.log})
	return err
}

func (a *app) requireToken() error {
	if a.cfg.Token == "" {
		return fmt.Errorf("a token is required (--token or %s)", config.EnvToken)
	}
	return nil
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// buildRootCmd constructs the command tree wired to a.
func buildRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "modelhub",
		Short:         "Upload, update and inspect 3D models on a model hosting service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Config file (.yaml|.yml|.json|.toml)")
	pf.String("base-url", modelapi.DefaultBaseURL, "API base URL (defaults MODELHUB_BASE_URL)")
	pf.String("token", "", "API token (defaults MODELHUB_TOKEN)")
	pf.String("token-type", "bearer", "Authorization scheme: bearer|token (defaults MODELHUB_TOKEN_TYPE)")
	pf.String("log-level", "info", "Log level: debug|info|warn|error|off (defaults MODELHUB_LOG_LEVEL)")

	root.AddCommand(newUploadCmd(a), newUpdateCmd(a), newGetCmd(a), newReadyCmd(a))

	// completion command
	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil }}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(a.out) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(a.out) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(a.out, true) }})
	completionCmd.AddCommand(&cobra.Command{Use: "powershell", Short: "PowerShell completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenPowerShellCompletionWithDesc(a.out) }})
	root.AddCommand(completionCmd)

	return root
}
