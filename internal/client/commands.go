package client

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-gene-consent/internal/config"
	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/models"
)

const skipAppAnnotation = "skip-app"

// appLoader builds the session for one command run.
type appLoader func(ctx context.Context, configArgs []string) (*App, error)

// rootOptions are the persistent flags. They are forwarded to the config
// loader as its own flags so env, flags and JSON merge the usual way.
type rootOptions struct {
	configPath    string
	subject       string
	dsn           string
	ledgerAddress string
	logFile       string
}

func (o rootOptions) configArgs() []string {
	var args []string
	add := func(name, v string) {
		if v != "" {
			args = append(args, "-"+name, v)
		}
	}
	add("c", o.configPath)
	add("subject", o.subject)
	add("d", o.dsn)
	add("ledger-address", o.ledgerAddress)
	add("log-file", o.logFile)
	return args
}

type cli struct {
	root *cobra.Command
}

// New returns the client whose commands load their configuration from env,
// the persistent flags and the optional JSON file.
func New(info models.AppBuildInfo) Client {
	return &cli{root: newRootCommand(info, loadApp)}
}

func (c *cli) Execute(ctx context.Context, args []string) error {
	c.root.SetArgs(args)
	return c.root.ExecuteContext(ctx)
}

func loadApp(ctx context.Context, configArgs []string) (*App, error) {
	cfg, err := config.GetClientConfig(configArgs)
	if err != nil {
		return nil, fmt.Errorf("error getting configs: %w", err)
	}

	log := logger.NewClientLogger("gene-consent-client", cfg.App.LogFile)
	return NewApp(ctx, cfg, log)
}

func newRootCommand(info models.AppBuildInfo, load appLoader) *cobra.Command {
	var (
		opts rootOptions
		app  *App
	)

	root := &cobra.Command{
		Use:           "gene-consent",
		Short:         "Consent-gated genetic data sharing client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipAppAnnotation] != "" {
				return nil
			}
			var err error
			app, err = load(cmd.Context(), opts.configArgs())
			return err
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if app == nil {
				return nil
			}
			return app.Close()
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "JSON config file path")
	pf.StringVarP(&opts.subject, "subject", "s", "", "identity credential to act as")
	pf.StringVar(&opts.dsn, "db", "", "local SQLite database path")
	pf.StringVar(&opts.ledgerAddress, "ledger", "", "ledger node base URL")
	pf.StringVar(&opts.logFile, "log-file", "", "client log file")

	session := func() *App { return app }

	root.AddCommand(
		newVersionCommand(info),
		newAddressCommand(session),
		newRegisterCommand(session),
		newUpdateCommand(session),
		newRequestCommand(session),
		newGrantCommand(session),
		newDeclineCommand(session),
		newListCommand(session),
		newStatusCommand(session),
		newPendingCommand(session),
		newReconcileCommand(session),
		newWatchCommand(session),
		newDispatchCommand(session),
		newReportCommand(session),
		newResultCommand(session),
		newVaultCommand(session),
		newExportCommand(session),
		newImportCommand(session),
		newAuditCommand(session),
	)
	return root
}

func newVersionCommand(info models.AppBuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print build information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipAppAnnotation: "true"},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprint(cmd.OutOrStdout(), info.String())
		},
	}
}

func parseRequestID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid request id %q", raw)
	}
	return id, nil
}

func readPayload(path string) ([]byte, string, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	return payload, filepath.Base(path), nil
}
