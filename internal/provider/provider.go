// Package provider holds the compile-time set of capability
// providers. There is no plugin discovery: the known implementations
// are fixed here and ranked by the default priority lists.
package provider

import (
	"devkit/internal/platform"
	"devkit/pkg/capability"
)

// Set is the full provider collection for one session.
type Set struct {
	Language []capability.Provider
	Build    []capability.Provider
	Debug    []capability.Provider
}

// Defaults builds every known provider against one platform service.
func Defaults(ps platform.Service) Set {
	return Set{
		Language: []capability.Provider{NewOmniSharp(ps), NewBasicLanguageServer(ps)},
		Build:    []capability.Provider{NewSDKBuild(ps), NewMakeBuild(ps)},
		Debug:    []capability.Provider{NewNetCoreDbg(ps), NewVSDbg(ps)},
	}
}

// DefaultPriorities ranks provider names most capable first.
func DefaultPriorities() map[capability.Kind][]string {
	return map[capability.Kind][]string{
		capability.Language: {"omnisharp", "lsp-basic"},
		capability.Build:    {"msbuild-sdk", "make"},
		capability.Debug:    {"netcoredbg", "vsdbg"},
	}
}
