package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-reconciler/internal/config"
	domain "github.com/oshokin/alarm-reconciler/internal/domain/alarm"
	"github.com/oshokin/alarm-reconciler/internal/logger"
	"github.com/oshokin/alarm-reconciler/internal/report"
	"github.com/oshokin/alarm-reconciler/internal/service/reconciler"
	"github.com/oshokin/alarm-reconciler/internal/version"
)

// Alarm definition flags, either inline or via --file.
var (
	alarmName               string
	metric                  string
	namespace               string
	statistic               string
	comparison              string
	threshold               float64
	period                  int
	evaluationPeriods       int
	unit                    string
	description             string
	dimensionFlags          []string
	alarmActions            []string
	insufficientDataActions []string
	okActions               []string
	desiredState            string
	specFile                string
)

// Connection, configuration and logging flags.
var (
	region          string
	endpointURL     string
	accessKey       string
	secretKey       string
	sessionToken    string
	profile         string
	noValidateCerts bool
	configPath      string
	envFile         string
	logLevel        string
	logFile         string
)

// definitionFlagNames are the inline descriptor flags that conflict with --file.
var definitionFlagNames = []string{
	"name", "metric", "namespace", "statistic", "comparison", "threshold",
	"period", "evaluation-periods", "unit", "description", "dimension",
	"alarm-action", "insufficient-data-action", "ok-action", "state",
}

// rootCmd represents the base command performing one reconciliation run.
var rootCmd = &cobra.Command{
	Use:   "alarm-reconciler",
	Short: "Converge a metric alarm on its declared definition.",
	Long: `Declarative one-shot reconciler for provider metric alarms.

Describe the desired alarm with flags or a YAML file (--file). A present
alarm is written wholesale, creating or replacing the remote definition;
an absent alarm is deleted when it exists and left alone when it does not.

The run prints exactly one JSON object to stdout: {"changed":true|false}
on success, {"failed":true,"msg":"..."} on failure. Logs go to stderr.
Connection settings resolve from flags, then environment variables, then
the settings file; a dotenv file can seed the environment via --env-file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Past this point failures are reported through the payload and
		// logs; keep cobra from printing usage or a second error line.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true

		// Setup graceful shutdown handling.
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		result, err := run(ctx, cmd)
		if err != nil {
			logger.Errorf(ctx, "Reconciliation failed: %v", err)

			if emitErr := report.Failure(err).Emit(cmd.OutOrStdout()); emitErr != nil {
				return emitErr
			}

			return err
		}

		return report.Success(result.Changed).Emit(cmd.OutOrStdout())
	},
}

// Execute runs the alarm-reconciler CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// run configures logging, seeds the environment, builds the descriptor and
// hands off to the reconciler.
func run(ctx context.Context, cmd *cobra.Command) (*reconciler.Result, error) {
	if err := configureLogging(); err != nil {
		return nil, err
	}

	if err := config.PreloadEnv(envFile); err != nil {
		return nil, err
	}

	spec, err := buildSpec(cmd)
	if err != nil {
		return nil, err
	}

	options := &reconciler.Options{
		ConfigPath: configPath,
		Overrides: &config.Overrides{
			Region:          region,
			EndpointURL:     endpointURL,
			Profile:         profile,
			AccessKey:       accessKey,
			SecretKey:       secretKey,
			SessionToken:    sessionToken,
			NoValidateCerts: noValidateCerts,
		},
		Spec: spec,
	}

	return reconciler.Run(ctx, options)
}

// configureLogging applies the log level and the optional rotated file sink.
func configureLogging() error {
	level, ok := logger.ParseLogLevel(logLevel)
	if !ok {
		return fmt.Errorf("unknown log level %q", logLevel)
	}

	logger.SetLevel(level)

	if logFile != "" {
		logger.SetLogger(logger.New(nil, logger.WithRotatingFile(nil, logFile)))
	}

	return nil
}

// buildSpec assembles the alarm descriptor from --file or the inline flags.
func buildSpec(cmd *cobra.Command) (*domain.Spec, error) {
	if specFile == "" {
		return specFromFlags()
	}

	for _, name := range definitionFlagNames {
		if cmd.Flags().Changed(name) {
			return nil, fmt.Errorf("--file cannot be combined with --%s", name)
		}
	}

	return domain.LoadFile(specFile)
}

// specFromFlags translates the inline flags into a descriptor.
func specFromFlags() (*domain.Spec, error) {
	dimensions, err := parseDimensions(dimensionFlags)
	if err != nil {
		return nil, err
	}

	return &domain.Spec{
		Name:                    alarmName,
		Metric:                  metric,
		Namespace:               domain.Namespace(namespace),
		Statistic:               domain.Statistic(statistic),
		Comparison:              domain.ComparisonOperator(comparison),
		Threshold:               threshold,
		Period:                  period,
		EvaluationPeriods:       evaluationPeriods,
		Unit:                    domain.Unit(unit),
		Description:             description,
		Dimensions:              dimensions,
		AlarmActions:            alarmActions,
		InsufficientDataActions: insufficientDataActions,
		OKActions:               okActions,
		State:                   domain.State(desiredState),
	}, nil
}

// parseDimensions turns repeated name=value flags into the descriptor
// mapping. Repeating a name accumulates its values in flag order.
func parseDimensions(raw []string) (domain.Dimensions, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	dimensions := make(domain.Dimensions, len(raw))

	for _, entry := range raw {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid dimension %q: expected name=value", entry)
		}

		dimensions[name] = append(dimensions[name], value)
	}

	return dimensions, nil
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := rootCmd.Flags()

	// Alarm definition.
	flags.StringVarP(&alarmName, "name", "n", "", "alarm name, the sole identity key")
	flags.StringVar(&metric, "metric", "", "name of the metric to watch")
	flags.StringVar(&namespace, "namespace", "", "metric namespace, e.g. AWS/EC2")
	flags.StringVar(&statistic, "statistic", "", "aggregation: SampleCount, Average, Sum, Minimum or Maximum")
	flags.StringVar(&comparison, "comparison", "", "threshold comparison: >=, >, < or <=")
	flags.Float64Var(&threshold, "threshold", 0, "trigger value the statistic is compared against")
	flags.IntVar(&period, "period", 0, "evaluation window in seconds")
	flags.IntVar(&evaluationPeriods, "evaluation-periods", 0, "consecutive breaching periods required to trigger")
	flags.StringVar(&unit, "unit", "", "metric unit, e.g. Percent")
	flags.StringVar(&description, "description", "", "free-text alarm description")
	flags.StringArrayVar(&dimensionFlags, "dimension", nil, "metric dimension as name=value, repeatable")
	flags.StringArrayVar(&alarmActions, "alarm-action", nil, "ARN invoked on ALARM transitions, repeatable")
	flags.StringArrayVar(&insufficientDataActions, "insufficient-data-action", nil,
		"ARN invoked on INSUFFICIENT_DATA transitions, repeatable")
	flags.StringArrayVar(&okActions, "ok-action", nil, "ARN invoked on OK transitions, repeatable")
	flags.StringVar(&desiredState, "state", "present", "desired state: present or absent")
	flags.StringVarP(&specFile, "file", "f", "", "YAML descriptor file instead of definition flags")

	// Provider connection.
	flags.StringVar(&region, "region", "", "provider region (falls back to AWS_REGION)")
	flags.StringVar(&endpointURL, "endpoint-url", "", "custom provider endpoint URL")
	flags.StringVar(&accessKey, "access-key", "", "access key (falls back to AWS_ACCESS_KEY_ID)")
	flags.StringVar(&secretKey, "secret-key", "", "secret key (falls back to AWS_SECRET_ACCESS_KEY)")
	flags.StringVar(&sessionToken, "session-token", "", "session token for temporary credentials")
	flags.StringVar(&profile, "profile", "", "shared credentials profile name")
	flags.BoolVar(&noValidateCerts, "no-validate-certs", false, "skip TLS certificate verification")

	// Configuration and logging.
	flags.StringVarP(&configPath, "config", "c", "",
		"path to settings file (default "+config.DefaultConfigFilename+" when present)")
	flags.StringVar(&envFile, "env-file", "", "dotenv file loaded before environment fallbacks")
	flags.StringVar(&logLevel, "log-level", "info", "log verbosity: debug, info, warn or error")
	flags.StringVar(&logFile, "log-file", "", "also write JSON logs to this size-rotated file")
}
