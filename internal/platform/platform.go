package platform

import "context"

// OS identifies the host platform for platform-conditional checks.
type OS string

const (
	Windows OS = "windows"
	Mac     OS = "mac"
	Linux   OS = "linux"
)

// Toolchain is one discovered SDK/runtime installation.
type Toolchain struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Version string `json:"version"`
}

// ProjectMetadata carries the few string fields devkit extracts from
// a project manifest; full manifest parsing stays outside the core.
type ProjectMetadata struct {
	Name            string `json:"name"`
	TargetFramework string `json:"targetFramework,omitempty"`
	SDKVersion      string `json:"sdkVersion,omitempty"`
}

// ExecResult is the outcome of one command invocation. A non-zero
// exit is reported via ExitCode, never as an error; ExecuteCommand
// only returns an error for spawn failure (binary missing, ctx done).
type ExecResult struct {
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	ExitCode int    `json:"exitCode"`
}

// Service performs all OS/filesystem/process probing on behalf of
// providers, the classifier, and the orchestrator.
type Service interface {
	FindToolchains(ctx context.Context) ([]Toolchain, error)
	FindExecutable(name string) (string, bool)
	ProbeBuildEngine(ctx context.Context, root string) (bool, error)
	ProbeLanguageService(ctx context.Context, root string) (bool, error)
	ProbeDebugger(ctx context.Context) (bool, error)
	ReadProjectMetadata(ctx context.Context, path string) (ProjectMetadata, error)
	ExecuteCommand(ctx context.Context, cmd string, args []string, cwd string) (ExecResult, error)
	FileExists(path string) bool
	DirectoryExists(path string) bool
	ReadFile(path string) ([]byte, error)
	CurrentPlatform() OS
}

// MonoProber is the optional extra probe for the cross-platform debug
// runtime. Holders model its absence as a nil field, not a runtime
// type check on Service.
type MonoProber interface {
	ProbeMono(ctx context.Context) (bool, error)
}
