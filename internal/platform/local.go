package platform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"devkit/pkg/capability"
)

// Local is the real Service backed by os/exec and the filesystem.
type Local struct{}

func NewLocal() *Local {
	return &Local{}
}

func (l *Local) FindToolchains(ctx context.Context) ([]Toolchain, error) {
	out := []Toolchain{}
	path, err := exec.LookPath("dotnet")
	if err != nil {
		return out, nil
	}
	res, err := l.ExecuteCommand(ctx, path, []string{"--version"}, "")
	if err != nil {
		return nil, fmt.Errorf("%w: toolchain version: %v", capability.ErrProbeFailed, err)
	}
	version := strings.TrimSpace(res.Stdout)
	if res.ExitCode != 0 || version == "" {
		return out, nil
	}
	out = append(out, Toolchain{Name: "dotnet", Path: path, Version: version})
	return out, nil
}

func (l *Local) FindExecutable(name string) (string, bool) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", false
	}
	return path, true
}

func (l *Local) ProbeBuildEngine(_ context.Context, root string) (bool, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return false, fmt.Errorf("%w: project root: %v", capability.ErrProbeFailed, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".csproj") || strings.HasSuffix(name, ".sln") || name == "Makefile" {
			return true, nil
		}
	}
	return false, nil
}

func (l *Local) ProbeLanguageService(_ context.Context, _ string) (bool, error) {
	for _, name := range []string{"omnisharp", "OmniSharp", "csharp-ls"} {
		if _, ok := l.FindExecutable(name); ok {
			return true, nil
		}
	}
	return false, nil
}

func (l *Local) ProbeDebugger(_ context.Context) (bool, error) {
	for _, name := range []string{"netcoredbg", "vsdbg"} {
		if _, ok := l.FindExecutable(name); ok {
			return true, nil
		}
	}
	return false, nil
}

func (l *Local) ProbeMono(_ context.Context) (bool, error) {
	_, ok := l.FindExecutable("mono")
	return ok, nil
}

func (l *Local) ReadProjectMetadata(_ context.Context, path string) (ProjectMetadata, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return ProjectMetadata{}, fmt.Errorf("PLT_PROJECT_READ: %w", err)
	}
	meta := ProjectMetadata{Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))}
	meta.TargetFramework = extractElement(string(blob), "TargetFramework")
	meta.SDKVersion = extractElement(string(blob), "SdkVersion")
	return meta, nil
}

func (l *Local) ExecuteCommand(ctx context.Context, cmd string, args []string, cwd string) (ExecResult, error) {
	c := exec.CommandContext(ctx, cmd, args...)
	if cwd != "" {
		c.Dir = cwd
	}
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr
	err := c.Run()
	res := ExecResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return ExecResult{}, fmt.Errorf("PLT_EXEC_SPAWN: %w", err)
	}
	return res, nil
}

func (l *Local) FileExists(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && !stat.IsDir()
}

func (l *Local) DirectoryExists(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && stat.IsDir()
}

func (l *Local) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (l *Local) CurrentPlatform() OS {
	switch runtime.GOOS {
	case "windows":
		return Windows
	case "darwin":
		return Mac
	default:
		return Linux
	}
}

// extractElement pulls the text of one <Element>value</Element> pair
// out of a project file without a full XML parse.
func extractElement(doc, element string) string {
	open := "<" + element + ">"
	closing := "</" + element + ">"
	start := strings.Index(doc, open)
	if start < 0 {
		return ""
	}
	rest := doc[start+len(open):]
	end := strings.Index(rest, closing)
	if end < 0 {
		return ""
	}
	return strings.TrimSpace(rest[:end])
}
