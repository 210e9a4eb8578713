package provider

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"devkit/internal/platform"
	"devkit/pkg/capability"
)

type fakePlatform struct {
	executables map[string]string
	toolchains  []platform.Toolchain
	files       map[string]bool
	execResult  platform.ExecResult
	execErr     error

	execCmds [][]string
}

func (f *fakePlatform) FindToolchains(_ context.Context) ([]platform.Toolchain, error) {
	return f.toolchains, nil
}

func (f *fakePlatform) FindExecutable(name string) (string, bool) {
	path, ok := f.executables[name]
	return path, ok
}

func (f *fakePlatform) ProbeBuildEngine(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (f *fakePlatform) ProbeLanguageService(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (f *fakePlatform) ProbeDebugger(_ context.Context) (bool, error) { return false, nil }

func (f *fakePlatform) ReadProjectMetadata(_ context.Context, _ string) (platform.ProjectMetadata, error) {
	return platform.ProjectMetadata{}, nil
}

func (f *fakePlatform) ExecuteCommand(_ context.Context, cmd string, args []string, _ string) (platform.ExecResult, error) {
	f.execCmds = append(f.execCmds, append([]string{cmd}, args...))
	return f.execResult, f.execErr
}

func (f *fakePlatform) FileExists(path string) bool       { return f.files[path] }
func (f *fakePlatform) DirectoryExists(_ string) bool     { return false }
func (f *fakePlatform) ReadFile(_ string) ([]byte, error) { return nil, errors.New("no file") }
func (f *fakePlatform) CurrentPlatform() platform.OS      { return platform.Linux }

func TestLanguageServerAvailabilityTracksBinary(t *testing.T) {
	fp := &fakePlatform{executables: map[string]string{}}
	p := NewOmniSharp(fp)
	ok, err := p.Available(context.Background())
	if err != nil || ok {
		t.Fatalf("expected unavailable without binary: %v %v", ok, err)
	}
	fp.executables["omnisharp"] = "/usr/bin/omnisharp"
	ok, err = p.Available(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected available with binary: %v %v", ok, err)
	}
}

func TestLanguageServerActivationHandshake(t *testing.T) {
	fp := &fakePlatform{
		executables: map[string]string{"csharp-ls": "/usr/bin/csharp-ls"},
		execResult:  platform.ExecResult{ExitCode: 0},
	}
	p := NewBasicLanguageServer(fp)
	if err := p.Activate(context.Background()); err != nil {
		t.Fatalf("activation failed: %v", err)
	}
	fp.execResult = platform.ExecResult{ExitCode: 2}
	if err := p.Activate(context.Background()); !errors.Is(err, capability.ErrActivationFailed) {
		t.Fatalf("expected activation failure, got %v", err)
	}
}

func TestSDKBuildAvailabilityAndVerbs(t *testing.T) {
	fp := &fakePlatform{execResult: platform.ExecResult{ExitCode: 0}}
	p := NewSDKBuild(fp)
	ok, err := p.Available(context.Background())
	if err != nil || ok {
		t.Fatalf("expected unavailable without toolchain: %v %v", ok, err)
	}
	fp.toolchains = []platform.Toolchain{{Name: "dotnet", Version: "8.0.100"}}
	ok, err = p.Available(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected available: %v %v", ok, err)
	}

	ops, isOps := p.(capability.BuildOps)
	if !isOps {
		t.Fatalf("sdk build must expose build operations")
	}
	if err := ops.Build(context.Background(), "/repo"); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	want := []string{"dotnet", "build"}
	got := fp.execCmds[len(fp.execCmds)-1]
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSDKBuildNonZeroExitIsCommandError(t *testing.T) {
	fp := &fakePlatform{
		toolchains: []platform.Toolchain{{Name: "dotnet", Version: "8.0.100"}},
		execResult: platform.ExecResult{ExitCode: 1, Stderr: "CS0103"},
	}
	ops := NewSDKBuild(fp).(capability.BuildOps)
	err := ops.Build(context.Background(), "/repo")
	var cmdErr *capability.CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected CommandError, got %v", err)
	}
	if cmdErr.ExitCode != 1 || cmdErr.Stderr != "CS0103" {
		t.Fatalf("unexpected command error: %+v", cmdErr)
	}
}

func TestMakeBuildRequiresMakefile(t *testing.T) {
	fp := &fakePlatform{
		executables: map[string]string{"make": "/usr/bin/make"},
		files:       map[string]bool{},
		execResult:  platform.ExecResult{ExitCode: 0},
	}
	ops := NewMakeBuild(fp).(capability.BuildOps)
	if err := ops.Build(context.Background(), "/repo"); err == nil {
		t.Fatalf("expected failure without Makefile")
	}
	fp.files[filepath.Join("/repo", "Makefile")] = true
	if err := ops.Build(context.Background(), "/repo"); err != nil {
		t.Fatalf("build failed: %v", err)
	}
}

func TestDebuggerInspectReturnsVersionBanner(t *testing.T) {
	fp := &fakePlatform{
		executables: map[string]string{"netcoredbg": "/usr/bin/netcoredbg"},
		execResult:  platform.ExecResult{ExitCode: 0, Stdout: "netcoredbg 3.1\n"},
	}
	dbg := NewNetCoreDbg(fp).(capability.DebugOps)
	banner, err := dbg.Inspect(context.Background())
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if banner != "netcoredbg 3.1" {
		t.Fatalf("unexpected banner %q", banner)
	}
}

func TestDefaultsCoverEveryKind(t *testing.T) {
	set := Defaults(&fakePlatform{})
	if len(set.Language) == 0 || len(set.Build) == 0 || len(set.Debug) == 0 {
		t.Fatalf("expected providers for every kind: %+v", set)
	}
	priorities := DefaultPriorities()
	for kind, names := range priorities {
		if len(names) == 0 {
			t.Fatalf("no priorities for kind %s", kind)
		}
	}
}
