package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aic/aic/internal/client"
	"github.com/aic/aic/internal/config"
	"github.com/aic/aic/internal/config/data"
	"github.com/aic/aic/internal/dao"
	"github.com/aic/aic/internal/logging"
	"github.com/aic/aic/internal/view"
	log "github.com/sirupsen/logrus"
)

const (
	appName    = "aic"
	appVersion = "0.1.0"
)

var (
	aicFlags *data.Flags
	rootCmd  = &cobra.Command{
		Use:           appName,
		Short:         "A terminal console for the assisted installer",
		Long:          `aic is a terminal UI for assisted installer clusters, hosts and storage, inspired by k9s.`,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, appVersion)
		},
	}
)

func init() {
	aicFlags = config.NewFlags()
	initAicFlags()
	rootCmd.AddCommand(versionCmd, clustersCmd(), hostsCmd(), logsCmd())
}

func initAicFlags() {
	rootCmd.PersistentFlags().Float32VarP(aicFlags.RefreshRate, "refresh", "r", 0, "Refresh rate in seconds")
	rootCmd.PersistentFlags().StringVarP(aicFlags.LogLevel, "logLevel", "l", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(aicFlags.LogFile, "logFile", "", "Log file path")
	rootCmd.PersistentFlags().StringVarP(aicFlags.Endpoint, "endpoint", "e", "", "Endpoint profile to use")
	rootCmd.PersistentFlags().StringVar(aicFlags.APIURL, "api-url", "", "Backend URL, overrides the endpoint URL")
	rootCmd.PersistentFlags().BoolVar(aicFlags.ReadOnly, "readonly", false, "Enable read-only mode")
	rootCmd.PersistentFlags().BoolVar(aicFlags.Write, "write", false, "Enable write mode (overrides readonly)")

	rootCmd.Flags().StringVarP(aicFlags.Command, "command", "c", "", "Startup command/view")
	rootCmd.Flags().IntVar(aicFlags.PageSize, "page-size", 0, "Rows per page")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// session is what every command needs to talk to the backend.
type session struct {
	cfg    *config.Config
	conn   *client.APIClient
	logger io.Closer
}

func (s *session) Close() {
	if s.logger != nil {
		s.logger.Close()
	}
}

// bootstrap loads the configuration, sets up logging and connects to the
// active endpoint. The TUI logs to file only; headless commands also log
// to stderr.
func bootstrap(headless bool) (*session, error) {
	if err := config.InitLocs(); err != nil {
		return nil, fmt.Errorf("failed to initialize locations: %w", err)
	}

	settings, err := client.LoadEndpoints(config.AppEndpointsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load endpoints: %w", err)
	}

	cfg := config.NewConfig(settings)
	if err := cfg.Load(config.AppConfigFile, false); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Refine(aicFlags, settings); err != nil {
		return nil, fmt.Errorf("failed to refine configuration: %w", err)
	}

	logFile := cfg.Aic.Logger.File
	if logFile == "" && !headless {
		logFile = config.AppLogFile
	}
	closer, err := logging.Init(cfg.Aic.Logger.Level, logFile, os.Stderr)
	if err != nil {
		return nil, err
	}
	if err := cfg.Save(config.AppConfigFile, false); err != nil {
		log.Warnf("failed to save configuration: %v", err)
	}

	ccfg, err := cfg.Aic.ClientConfig()
	if err != nil {
		closer.Close()
		return nil, err
	}
	conn, err := client.NewAPIClient(settings, ccfg)
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	cfg.SetConnection(conn)
	log.WithField("endpoint", conn.ActiveEndpoint()).Infof("%s %s starting", appName, appVersion)

	return &session{cfg: cfg, conn: conn, logger: closer}, nil
}

func run(cmd *cobra.Command, args []string) error {
	s, err := bootstrap(false)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), config.DefaultAPITimeout)
	if !s.conn.CheckConnectivity(ctx) {
		log.Warnf("endpoint %s is not reachable", s.conn.ActiveEndpoint())
	}
	cancel()

	app := view.NewApp(s.cfg, dao.NewFactory(s.conn), appVersion)
	if err := app.Init(); err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run()
}
