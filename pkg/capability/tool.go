package capability

// InstallMethod is the remediation strategy attached to a missing tool.
type InstallMethod string

const (
	// Automatic installs run a command line and check its exit status.
	Automatic InstallMethod = "automatic"
	// Guided installs require the user to complete one externally
	// surfaced step (e.g. an editor extension install) that devkit
	// cannot confirm completion of.
	Guided InstallMethod = "guided"
	// Manual installs only make instructions and a download URL
	// available.
	Manual InstallMethod = "manual"
)

// Category groups missing tools for reporting.
type Category string

const (
	CategoryLanguage Category = "language"
	CategoryBuild    Category = "build"
	CategoryDebug    Category = "debug"
	CategoryRuntime  Category = "runtime"
)

// MissingTool describes one absent capability and how to remedy it.
// Values are constructed fresh on every classification pass and never
// mutated afterwards.
type MissingTool struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	// Required marks absence that blocks core functionality rather
	// than merely degrading it.
	Required bool          `json:"required"`
	Category Category      `json:"category"`
	Method   InstallMethod `json:"method"`

	// Automatic method data.
	Command string   `json:"command,omitempty"`
	Args    []string `json:"args,omitempty"`

	// Guided method data: a marketplace identifier, or instructions
	// when no identifier applies (guided then degrades to manual).
	MarketplaceID string `json:"marketplaceId,omitempty"`

	// Manual method data.
	DownloadURL  string   `json:"downloadUrl,omitempty"`
	Instructions []string `json:"instructions,omitempty"`
}

// OutcomeStatus is the tri-state result of one install attempt.
type OutcomeStatus string

const (
	Installed           OutcomeStatus = "installed"
	DeclinedOrCancelled OutcomeStatus = "declined"
	Failed              OutcomeStatus = "failed"
)

// Outcome reports what happened to one attempted tool.
type Outcome struct {
	ToolID string        `json:"toolId"`
	Status OutcomeStatus `json:"status"`
	Reason string        `json:"reason,omitempty"`
}
