package provider

import (
	"context"
	"fmt"
	"path/filepath"

	"devkit/internal/platform"
	"devkit/pkg/capability"
)

// sdkBuild drives builds through the dotnet SDK.
type sdkBuild struct {
	platform platform.Service
}

func NewSDKBuild(ps platform.Service) capability.Provider {
	return &sdkBuild{platform: ps}
}

func (p *sdkBuild) Name() string        { return "msbuild-sdk" }
func (p *sdkBuild) DisplayName() string { return "dotnet SDK build engine" }

func (p *sdkBuild) Available(ctx context.Context) (bool, error) {
	chains, err := p.platform.FindToolchains(ctx)
	if err != nil {
		return false, err
	}
	return len(chains) > 0, nil
}

func (p *sdkBuild) Activate(_ context.Context) error   { return nil }
func (p *sdkBuild) Deactivate(_ context.Context) error { return nil }

func (p *sdkBuild) Build(ctx context.Context, root string) error {
	return p.run(ctx, root, "build")
}

func (p *sdkBuild) Clean(ctx context.Context, root string) error {
	return p.run(ctx, root, "clean")
}

func (p *sdkBuild) Restore(ctx context.Context, root string) error {
	return p.run(ctx, root, "restore")
}

func (p *sdkBuild) run(ctx context.Context, root, verb string) error {
	res, err := p.platform.ExecuteCommand(ctx, "dotnet", []string{verb}, root)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return &capability.CommandError{ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return nil
}

// makeBuild drives Makefile projects for repos that sidestep the SDK.
type makeBuild struct {
	platform platform.Service
}

func NewMakeBuild(ps platform.Service) capability.Provider {
	return &makeBuild{platform: ps}
}

func (p *makeBuild) Name() string        { return "make" }
func (p *makeBuild) DisplayName() string { return "Makefile build driver" }

func (p *makeBuild) Available(_ context.Context) (bool, error) {
	_, ok := p.platform.FindExecutable("make")
	return ok, nil
}

func (p *makeBuild) Activate(_ context.Context) error   { return nil }
func (p *makeBuild) Deactivate(_ context.Context) error { return nil }

func (p *makeBuild) Build(ctx context.Context, root string) error {
	return p.run(ctx, root)
}

func (p *makeBuild) Clean(ctx context.Context, root string) error {
	return p.run(ctx, root, "clean")
}

func (p *makeBuild) Restore(_ context.Context, _ string) error {
	// make has no restore phase.
	return nil
}

func (p *makeBuild) run(ctx context.Context, root string, args ...string) error {
	if !p.platform.FileExists(filepath.Join(root, "Makefile")) {
		return fmt.Errorf("BLD_NO_MAKEFILE: no Makefile under %s", root)
	}
	res, err := p.platform.ExecuteCommand(ctx, "make", args, root)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return &capability.CommandError{ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return nil
}
