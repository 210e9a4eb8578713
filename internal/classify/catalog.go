package classify

import (
	"os"
	"path/filepath"

	"devkit/pkg/capability"
)

// Stable tool IDs. The catalog is fixed at compile time; config can
// only disable optional entries, never add new ones.
const (
	ToolSDK       = "dotnet-sdk"
	ToolCSDevKit  = "ext-csdevkit"
	ToolOmniSharp = "ext-omnisharp"
	ToolCSharpLS  = "tool-csharp-ls"
	ToolMono      = "mono-runtime"
)

const (
	sdkDownloadURL  = "https://dotnet.microsoft.com/download"
	monoDownloadURL = "https://www.mono-project.com/download/stable/"

	csDevKitExtensionID  = "ms-dotnettools.csdevkit"
	omniSharpExtensionID = "ms-dotnettools.csharp"
)

func sdkTool() capability.MissingTool {
	return capability.MissingTool{
		ID:          ToolSDK,
		Name:        "dotnet SDK",
		Description: "base SDK required for builds, language analysis and tool installs",
		Required:    true,
		Category:    capability.CategoryRuntime,
		Method:      capability.Manual,
		DownloadURL: sdkDownloadURL,
		Instructions: []string{
			"1. Open " + sdkDownloadURL + " and download the SDK for your platform",
			"2. Run the installer and accept the defaults",
			"3. Restart your terminal so the dotnet binary is on PATH",
		},
	}
}

func csDevKitTool() capability.MissingTool {
	return capability.MissingTool{
		ID:            ToolCSDevKit,
		Name:          "C# Dev Kit extension",
		Description:   "full-featured editor language support",
		Category:      capability.CategoryLanguage,
		Method:        capability.Guided,
		MarketplaceID: csDevKitExtensionID,
	}
}

func omniSharpExtTool() capability.MissingTool {
	return capability.MissingTool{
		ID:            ToolOmniSharp,
		Name:          "OmniSharp extension",
		Description:   "editor language support via OmniSharp",
		Category:      capability.CategoryLanguage,
		Method:        capability.Guided,
		MarketplaceID: omniSharpExtensionID,
	}
}

func csharpLSTool() capability.MissingTool {
	return capability.MissingTool{
		ID:          ToolCSharpLS,
		Name:        "csharp-ls language server",
		Description: "command-line installable fallback language server",
		Category:    capability.CategoryLanguage,
		Method:      capability.Automatic,
		Command:     "dotnet",
		Args:        []string{"tool", "install", "--global", "csharp-ls"},
	}
}

func monoTool(platform string) capability.MissingTool {
	tool := capability.MissingTool{
		ID:          ToolMono,
		Name:        "Mono runtime",
		Description: "debug runtime needed outside windows",
		Category:    capability.CategoryDebug,
	}
	if platform == "mac" {
		tool.Method = capability.Guided
		tool.Instructions = []string{"1. Install homebrew if missing", "2. Run: brew install mono"}
		return tool
	}
	tool.Method = capability.Manual
	tool.DownloadURL = monoDownloadURL
	tool.Instructions = []string{
		"1. Open " + monoDownloadURL,
		"2. Follow the install steps for your distribution",
	}
	return tool
}

// extensionRoots lists directories an editor extension id may live
// under. Mirrors the home-relative detection the rest of devkit uses.
func extensionRoots(id string) []string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return []string{
		filepath.Join(home, ".vscode", "extensions", id),
		filepath.Join(home, ".vscode-server", "extensions", id),
	}
}
