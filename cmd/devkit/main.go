package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"devkit/internal/app"
	"devkit/pkg/capability"
)

type ExitCoder interface {
	ExitCode() int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if ex, ok := err.(ExitCoder); ok {
			os.Exit(ex.ExitCode())
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var jsonOutput bool
	var logLevel string
	logger := zap.NewNop()

	newSvc := func() (*app.Service, error) {
		return app.New(app.Options{ConfigPath: configPath, Logger: logger})
	}

	cmd := &cobra.Command{
		Use:           "devkit",
		Short:         "Workstation setup assistant for interchangeable dev tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg := zap.NewProductionConfig()
			if err := cfg.Level.UnmarshalText([]byte(logLevel)); err != nil {
				return fmt.Errorf("invalid log level %q", logLevel)
			}
			log, err := cfg.Build()
			if err != nil {
				return err
			}
			logger = log
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = logger.Sync()
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug|info|warn|error")

	cmd.AddCommand(newStatusCmd(newSvc, &jsonOutput))
	cmd.AddCommand(newActivateCmd(newSvc, &jsonOutput))
	cmd.AddCommand(newRestartCmd(newSvc, &jsonOutput))
	cmd.AddCommand(newScanCmd(newSvc, &jsonOutput))
	cmd.AddCommand(newSetupCmd(newSvc, &jsonOutput))
	cmd.AddCommand(newInstallCmd(newSvc, &jsonOutput))
	cmd.AddCommand(newVersionCmd(&jsonOutput))

	return cmd
}

func newStatusCmd(newSvc func() (*app.Service, error), jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active provider per capability kind",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newSvc()
			if err != nil {
				return err
			}
			status := svc.Status()
			if *jsonOutput {
				return print(true, status, "")
			}
			for _, kind := range capability.Kinds() {
				name := status[kind]
				if name == "" {
					name = "(none)"
				}
				fmt.Printf("- %-8s %s\n", kind, name)
			}
			return nil
		},
	}
}

func newActivateCmd(newSvc func() (*app.Service, error), jsonOutput *bool) *cobra.Command {
	var auto bool
	cmd := &cobra.Command{
		Use:   "activate [kind] [name]",
		Short: "Activate a provider, or auto-activate all kinds",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newSvc()
			if err != nil {
				return err
			}
			if auto || len(args) == 0 {
				svc.AutoActivate(cmd.Context())
				return print(*jsonOutput, svc.Status(), statusLine(svc))
			}
			if len(args) != 2 {
				return fmt.Errorf("expected <kind> <name>")
			}
			ok, err := svc.Activate(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("could not activate %s provider %q", args[0], args[1])
			}
			return print(*jsonOutput, svc.Status(), fmt.Sprintf("activated %s provider %s", args[0], args[1]))
		},
	}
	cmd.Flags().BoolVar(&auto, "auto", false, "walk the priority list for every kind")
	return cmd
}

func newRestartCmd(newSvc func() (*app.Service, error), jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "restart",
		Short: "Restart the active language provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newSvc()
			if err != nil {
				return err
			}
			svc.AutoActivate(cmd.Context())
			svc.Restart(cmd.Context())
			return print(*jsonOutput, svc.Status(), statusLine(svc))
		},
	}
}

func newScanCmd(newSvc func() (*app.Service, error), jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "List missing tools with their remediation strategies",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newSvc()
			if err != nil {
				return err
			}
			svc.AutoActivate(cmd.Context())
			report := svc.Scan(cmd.Context())
			if *jsonOutput {
				return print(true, report, "")
			}
			if len(report.Tools) == 0 {
				fmt.Println("nothing missing")
				return nil
			}
			for _, tool := range report.Tools {
				marker := "optional"
				if tool.Required {
					marker = "required"
				}
				fmt.Printf("- %s (%s, %s install): %s\n", tool.Name, marker, tool.Method, tool.Description)
			}
			if !report.Healthy {
				fmt.Println("required tooling is missing; run: devkit setup")
			}
			return nil
		},
	}
}

func newSetupCmd(newSvc func() (*app.Service, error), jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Auto-activate providers and walk through missing-tool remediation",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newSvc()
			if err != nil {
				return err
			}
			report, outcomes := svc.Setup(cmd.Context())
			payload := map[string]any{"report": report, "outcomes": outcomes}
			return print(*jsonOutput, payload, summarizeOutcomes(outcomes))
		},
	}
}

func newInstallCmd(newSvc func() (*app.Service, error), jsonOutput *bool) *cobra.Command {
	var all bool
	var selective bool
	cmd := &cobra.Command{
		Use:   "install [tool-id...]",
		Short: "Install missing tools by id, all at once, or via multi-select",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newSvc()
			if err != nil {
				return err
			}
			svc.AutoActivate(cmd.Context())
			var outcomes []capability.Outcome
			switch {
			case all:
				outcomes = svc.InstallAll(cmd.Context())
			case selective:
				outcomes = svc.InstallSelect(cmd.Context())
			case len(args) > 0:
				outcomes, err = svc.InstallByID(cmd.Context(), args)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("pass tool ids, --all, or --select")
			}
			return print(*jsonOutput, outcomes, summarizeOutcomes(outcomes))
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "install every missing tool")
	cmd.Flags().BoolVar(&selective, "select", false, "choose tools interactively")
	return cmd
}

func statusLine(svc *app.Service) string {
	status := svc.Status()
	parts := make([]string, 0, len(status))
	for _, kind := range capability.Kinds() {
		name := status[kind]
		if name == "" {
			name = "none"
		}
		parts = append(parts, fmt.Sprintf("%s=%s", kind, name))
	}
	return strings.Join(parts, " ")
}

func summarizeOutcomes(outcomes []capability.Outcome) string {
	if len(outcomes) == 0 {
		return "nothing to do"
	}
	var installed, declined, failed int
	for _, o := range outcomes {
		switch o.Status {
		case capability.Installed:
			installed++
		case capability.Failed:
			failed++
		default:
			declined++
		}
	}
	return fmt.Sprintf("installed=%d declined=%d failed=%d", installed, declined, failed)
}

func print(jsonOutput bool, payload any, message string) error {
	if jsonOutput {
		blob, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(blob))
		return nil
	}
	if message != "" {
		fmt.Println(message)
	}
	return nil
}
