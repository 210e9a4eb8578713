// Package classify inspects the environment and produces an ordered,
// deterministic list of absent tools with remediation strategies.
package classify

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"

	"devkit/internal/platform"
	"devkit/internal/registry"
	"devkit/pkg/capability"
)

// Classifier evaluates its checks in a fixed order so that two scans
// of an unchanged environment produce identical output.
type Classifier struct {
	Platform platform.Service
	Registry *registry.Registry
	// Mono is the optional debug-runtime probe. A nil field means the
	// host cannot probe Mono and the check is skipped.
	Mono platform.MonoProber
	// MinSDKVersion gates the base SDK probe, e.g. "8.0.0".
	MinSDKVersion string
	// Disabled suppresses optional catalog entries by tool ID. The
	// required base-SDK check cannot be disabled.
	Disabled map[string]bool
	Logger   *zap.Logger
}

// Report is the scan result the CLI surfaces.
type Report struct {
	Healthy bool                     `json:"healthy"`
	Tools   []capability.MissingTool `json:"tools"`
}

// Scan probes the environment and returns every missing tool in
// remediation preference order. Only the base SDK entry is required;
// everything else is advisory so that the workflow degrades to
// reduced support rather than blocking.
func (c *Classifier) Scan(ctx context.Context) []capability.MissingTool {
	logger := c.logger()
	tools := []capability.MissingTool{}

	// The SDK gates everything else: every later remediation either
	// runs through it or is pointless without it.
	if !c.sdkPresent(ctx) {
		return append(tools, sdkTool())
	}

	// An active language provider means the setup already works;
	// alternatives are not offered on top of it.
	if c.Registry.ActiveName(capability.Language) == "" {
		anyAlternative := false
		for _, alt := range []capability.MissingTool{csDevKitTool(), omniSharpExtTool()} {
			if c.extensionPresent(alt.MarketplaceID) {
				anyAlternative = true
				continue
			}
			if c.Disabled[alt.ID] {
				continue
			}
			tools = append(tools, alt)
		}
		// The command-line fallback only applies when no richer
		// alternative is already on the machine.
		if !anyAlternative && !c.Disabled[ToolCSharpLS] {
			tools = append(tools, csharpLSTool())
		}
	}

	if hostOS := c.Platform.CurrentPlatform(); hostOS != platform.Windows && c.Mono != nil && !c.Disabled[ToolMono] {
		present, err := c.Mono.ProbeMono(ctx)
		if err != nil {
			logger.Warn("mono probe failed, treating as absent", zap.Error(err))
			present = false
		}
		if !present {
			tools = append(tools, monoTool(string(hostOS)))
		}
	}

	return tools
}

// Run wraps Scan into a report; healthy means no required tool is
// absent.
func (c *Classifier) Run(ctx context.Context) Report {
	tools := c.Scan(ctx)
	healthy := true
	for _, t := range tools {
		if t.Required {
			healthy = false
			break
		}
	}
	return Report{Healthy: healthy, Tools: tools}
}

func (c *Classifier) sdkPresent(ctx context.Context) bool {
	chains, err := c.Platform.FindToolchains(ctx)
	if err != nil {
		c.logger().Warn("toolchain probe failed, treating SDK as absent", zap.Error(err))
		return false
	}
	for _, chain := range chains {
		if chain.Name != "dotnet" {
			continue
		}
		if c.MinSDKVersion == "" || semver.Compare("v"+chain.Version, "v"+c.MinSDKVersion) >= 0 {
			return true
		}
	}
	return false
}

func (c *Classifier) extensionPresent(id string) bool {
	for _, root := range extensionRoots(id) {
		if c.Platform.DirectoryExists(root) {
			return true
		}
	}
	return false
}

func (c *Classifier) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
