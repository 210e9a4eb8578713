// Package install turns a list of missing tools into automatic
// remediation or user-facing guidance, without ever blocking the host
// or letting an external failure escape as a crash.
package install

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"devkit/internal/audit"
	"devkit/internal/notify"
	"devkit/internal/platform"
	"devkit/internal/registry"
	"devkit/pkg/capability"
)

const (
	actionInstall = notify.Action("Install now")
	actionView    = notify.Action("View instructions")
	actionSkip    = notify.Action("Skip")
	actionShowAll = notify.Action("Show all options")
	actionRestart = notify.Action("Restart active providers")
	actionCopy    = notify.Action("Copy instructions")
	actionOpen    = notify.Action("Open download page")
	actionLogs    = notify.Action("View logs")
)

// Orchestrator drives remediation for missing tools. One instance is
// constructed per session; dependencies are passed explicitly.
type Orchestrator struct {
	Platform platform.Service
	Notifier notify.Notifier
	Registry *registry.Registry
	Audit    *audit.Logger
	Logger   *zap.Logger
}

// InstallOne executes one tool's remediation strategy and reports the
// tri-state outcome. It never returns an error; failures become
// Failed outcomes and everything user-driven becomes declined.
func (o *Orchestrator) InstallOne(ctx context.Context, tool capability.MissingTool) capability.Outcome {
	var outcome capability.Outcome
	switch tool.Method {
	case capability.Automatic:
		outcome = o.installAutomatic(ctx, tool)
	case capability.Guided:
		outcome = o.installGuided(ctx, tool)
	default:
		outcome = o.installManual(ctx, tool)
	}
	_ = o.Audit.Log(audit.Event{Operation: "install", Tool: tool.ID, Outcome: string(outcome.Status), Message: outcome.Reason})
	return outcome
}

// InstallMany attempts each tool strictly in input order, one at a
// time. A failure does not abort the remaining tools; sequential
// execution keeps shared console output from interleaving.
func (o *Orchestrator) InstallMany(ctx context.Context, tools []capability.MissingTool) []capability.Outcome {
	outcomes := make([]capability.Outcome, 0, len(tools))
	for _, tool := range tools {
		outcomes = append(outcomes, o.InstallOne(ctx, tool))
	}
	return outcomes
}

// SelectiveInstall presents a multi-select surface and installs
// exactly the chosen subset.
func (o *Orchestrator) SelectiveInstall(ctx context.Context, tools []capability.MissingTool) []capability.Outcome {
	items := make([]notify.Item, 0, len(tools))
	byID := map[string]capability.MissingTool{}
	for _, tool := range tools {
		items = append(items, notify.Item{ID: tool.ID, Label: tool.Name + " — " + tool.Description})
		byID[tool.ID] = tool
	}
	picked, err := o.Notifier.PickMany("Select tools to install", items)
	if err != nil {
		o.surfaceFailure("tool selection failed", err)
		return nil
	}
	selected := make([]capability.MissingTool, 0, len(picked))
	for _, item := range picked {
		if tool, ok := byID[item.ID]; ok {
			selected = append(selected, tool)
		}
	}
	return o.InstallMany(ctx, selected)
}

// PromptForRemediation surfaces required tools with an explicit
// choice each (skip is always available) and optional tools through a
// lighter-weight flow that keeps the interruption small.
func (o *Orchestrator) PromptForRemediation(ctx context.Context, tools []capability.MissingTool) []capability.Outcome {
	required := make([]capability.MissingTool, 0, len(tools))
	optional := make([]capability.MissingTool, 0, len(tools))
	for _, tool := range tools {
		if tool.Required {
			required = append(required, tool)
		} else {
			optional = append(optional, tool)
		}
	}

	outcomes := []capability.Outcome{}
	for _, tool := range required {
		action, err := o.Notifier.Info(tool.Name+" is required: "+tool.Description, actionInstall, actionView, actionSkip)
		if err != nil {
			o.surfaceFailure("prompt failed", err)
			continue
		}
		switch action {
		case actionInstall:
			outcomes = append(outcomes, o.InstallOne(ctx, tool))
		case actionView:
			outcomes = append(outcomes, o.installManual(ctx, tool))
		default:
			outcomes = append(outcomes, capability.Outcome{ToolID: tool.ID, Status: capability.DeclinedOrCancelled})
		}
	}

	switch len(optional) {
	case 0:
	case 1:
		outcomes = append(outcomes, o.offerOptional(ctx, optional[0]))
	default:
		first := optional[0]
		rest := fmt.Sprintf("%s (and %d more)", first.Name, len(optional)-1)
		action, err := o.Notifier.Info("Optional tooling available: "+rest, actionInstall, actionShowAll, actionSkip)
		if err != nil {
			o.surfaceFailure("prompt failed", err)
			return outcomes
		}
		switch action {
		case actionInstall:
			outcomes = append(outcomes, o.InstallOne(ctx, first))
		case actionShowAll:
			outcomes = append(outcomes, o.SelectiveInstall(ctx, optional)...)
		}
	}
	return outcomes
}

func (o *Orchestrator) installAutomatic(ctx context.Context, tool capability.MissingTool) capability.Outcome {
	var res platform.ExecResult
	var cancelled bool
	err := o.Notifier.Progress(ctx, "Installing "+tool.Name, func(runCtx context.Context) error {
		r, execErr := o.Platform.ExecuteCommand(runCtx, tool.Command, tool.Args, "")
		if runCtx.Err() != nil {
			cancelled = true
			return capability.ErrInstallCancelled
		}
		if execErr != nil {
			return execErr
		}
		res = r
		return nil
	})
	if cancelled || errors.Is(err, context.Canceled) || errors.Is(err, capability.ErrInstallCancelled) {
		o.logger().Info("install cancelled", zap.String("tool", tool.ID))
		return capability.Outcome{ToolID: tool.ID, Status: capability.DeclinedOrCancelled}
	}
	if err != nil {
		o.surfaceFailure("install command could not start", err)
		return capability.Outcome{ToolID: tool.ID, Status: capability.Failed, Reason: err.Error()}
	}
	if res.ExitCode != 0 {
		cmdErr := &capability.CommandError{ExitCode: res.ExitCode, Stderr: res.Stderr}
		o.logger().Warn("install command failed",
			zap.String("tool", tool.ID), zap.Int("exitCode", res.ExitCode), zap.String("stderr", res.Stderr))
		// Raw stderr stays behind an action instead of an inline dump.
		action, promptErr := o.Notifier.Error(tool.Name+" install failed", notify.Action("View output"), actionSkip)
		if promptErr == nil && action == notify.Action("View output") {
			o.Notifier.Warn(res.Stderr)
		}
		return capability.Outcome{ToolID: tool.ID, Status: capability.Failed, Reason: cmdErr.Error()}
	}

	// The newly installed tool only takes effect after a provider
	// restart; that stays an explicit choice.
	action, err := o.Notifier.Info(tool.Name+" installed", actionRestart, actionSkip)
	if err == nil && action == actionRestart {
		o.Registry.RestartActive(ctx)
	}
	return capability.Outcome{ToolID: tool.ID, Status: capability.Installed}
}

func (o *Orchestrator) installGuided(ctx context.Context, tool capability.MissingTool) capability.Outcome {
	if tool.MarketplaceID == "" {
		// Guided without an identifier degrades to the manual flow.
		return o.installManual(ctx, tool)
	}
	if err := o.Notifier.ShowExtensionInstall(tool.MarketplaceID); err != nil {
		o.surfaceFailure("could not open the extension surface", err)
	}
	// The actual install happens outside this process; completion is
	// never polled for.
	return capability.Outcome{ToolID: tool.ID, Status: capability.DeclinedOrCancelled}
}

func (o *Orchestrator) installManual(_ context.Context, tool capability.MissingTool) capability.Outcome {
	actions := []notify.Action{actionCopy}
	if tool.DownloadURL != "" {
		actions = append(actions, actionOpen)
	}
	actions = append(actions, actionSkip)
	action, err := o.Notifier.Info(manualPromptText(tool), actions...)
	if err != nil {
		o.surfaceFailure("prompt failed", err)
		return capability.Outcome{ToolID: tool.ID, Status: capability.DeclinedOrCancelled}
	}
	switch action {
	case actionCopy:
		if err := o.Notifier.WriteClipboard(strings.Join(tool.Instructions, "\n")); err != nil {
			o.surfaceFailure("clipboard write failed", err)
		}
	case actionOpen:
		if err := o.Notifier.OpenExternal(tool.DownloadURL); err != nil {
			o.surfaceFailure("could not open download page", err)
		}
	}
	// No code path can confirm a manual install completed.
	return capability.Outcome{ToolID: tool.ID, Status: capability.DeclinedOrCancelled}
}

func (o *Orchestrator) offerOptional(ctx context.Context, tool capability.MissingTool) capability.Outcome {
	action, err := o.Notifier.Info("Optional: "+tool.Name+" — "+tool.Description, actionInstall, actionSkip)
	if err != nil {
		o.surfaceFailure("prompt failed", err)
		return capability.Outcome{ToolID: tool.ID, Status: capability.DeclinedOrCancelled}
	}
	if action == actionInstall {
		return o.InstallOne(ctx, tool)
	}
	return capability.Outcome{ToolID: tool.ID, Status: capability.DeclinedOrCancelled}
}

// surfaceFailure logs an external-call failure and shows a
// non-crashing error surface. It never propagates.
func (o *Orchestrator) surfaceFailure(msg string, err error) {
	o.logger().Warn(msg, zap.Error(err))
	_, _ = o.Notifier.Error(msg+": "+err.Error(), actionLogs, actionView)
}

func manualPromptText(tool capability.MissingTool) string {
	lines := []string{tool.Name + ": " + tool.Description}
	lines = append(lines, tool.Instructions...)
	return strings.Join(lines, "\n")
}

func (o *Orchestrator) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
