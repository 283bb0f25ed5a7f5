package model

// NotifyMode controls when a run notification is raised.
type NotifyMode string

// Recognized notify modes.
const (
	NotifyAlways        NotifyMode = "always"
	NotifyFailure       NotifyMode = "failure"
	NotifySuccess       NotifyMode = "success"
	NotifyChange        NotifyMode = "change"
	NotifySuccessChange NotifyMode = "success-change"
	NotifyFailureChange NotifyMode = "failure-change"
)

// NotifyModes lists every valid NotifyMode.
var NotifyModes = []NotifyMode{
	NotifyAlways, NotifyFailure, NotifySuccess,
	NotifyChange, NotifySuccessChange, NotifyFailureChange,
}

// SnapshotUpdateState tells which snapshots a run may write.
type SnapshotUpdateState string

// Snapshot update states.
const (
	SnapshotAll  SnapshotUpdateState = "all"
	SnapshotNew  SnapshotUpdateState = "new"
	SnapshotNone SnapshotUpdateState = "none"
)

// SnapshotUpdateStates lists every valid SnapshotUpdateState.
var SnapshotUpdateStates = []SnapshotUpdateState{SnapshotAll, SnapshotNew, SnapshotNone}

// Timers selects the timer implementation installed in test environments.
type Timers string

// Timer implementations.
const (
	TimersReal Timers = "real"
	TimersFake Timers = "fake"
)

// TimerModes lists every valid Timers value.
var TimerModes = []Timers{TimersReal, TimersFake}

// CoverageReporter names a coverage report format.
type CoverageReporter string

// CoverageReporters lists every known coverage report format.
var CoverageReporters = []CoverageReporter{
	"clover", "cobertura", "html", "html-spa", "json", "json-summary", "lcov",
	"lcovonly", "none", "teamcity", "text", "text-lcov", "text-summary",
}

// CoverageMetrics lists the metric names a threshold may constrain.
var CoverageMetrics = []string{"branches", "functions", "lines", "statements"}

// GlobalThresholdKey is the catch-all CoverageThreshold entry.
const GlobalThresholdKey = "global"

// CoverageThreshold maps a path (or GlobalThresholdKey) to metric thresholds.
type CoverageThreshold map[string]map[string]float64

// Clone returns a deep copy of c.
func (c CoverageThreshold) Clone() CoverageThreshold {
	if c == nil {
		return nil
	}

	out := make(CoverageThreshold, len(c))
	for path, metrics := range c {
		inner := make(map[string]float64, len(metrics))
		for metric, value := range metrics {
			inner[metric] = value
		}

		out[path] = inner
	}

	return out
}

// Pair maps a pattern to a target; used where the first matching pattern wins.
type Pair struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	Target  string `json:"target" yaml:"target"`
}

// HasteConfig configures the module map.
type HasteConfig struct {
	ComputeSha1               bool     `json:"computeSha1" yaml:"computeSha1"`
	DefaultPlatform           *string  `json:"defaultPlatform" yaml:"defaultPlatform"`
	HasteImplModulePath       string   `json:"hasteImplModulePath" yaml:"hasteImplModulePath"`
	Platforms                 []string `json:"platforms" yaml:"platforms"`
	ProvidesModuleNodeModules []string `json:"providesModuleNodeModules" yaml:"providesModuleNodeModules"`
	ThrowOnModuleCollision    bool     `json:"throwOnModuleCollision" yaml:"throwOnModuleCollision"`
}

// DisplayNameColor is a terminal color for a project label.
type DisplayNameColor string

// DisplayNameColors lists every valid DisplayNameColor.
var DisplayNameColors = []DisplayNameColor{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white", "gray", "grey",
	"blackBright", "redBright", "greenBright", "yellowBright",
	"blueBright", "magentaBright", "cyanBright", "whiteBright",
	"bgBlack", "bgRed", "bgGreen", "bgYellow", "bgBlue", "bgMagenta", "bgCyan", "bgWhite",
	"bgBlackBright", "bgRedBright", "bgGreenBright", "bgYellowBright",
	"bgBlueBright", "bgMagentaBright", "bgCyanBright", "bgWhiteBright",
}

// DisplayName labels a project in output.
type DisplayName struct {
	Name  string           `json:"name" yaml:"name"`
	Color DisplayNameColor `json:"color,omitempty" yaml:"color,omitempty"`
}

// ReporterConfig names a reporter module and its options.
type ReporterConfig struct {
	Path    string         `json:"path" yaml:"path"`
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

// WatchPlugin names a watch plugin module and its config.
type WatchPlugin struct {
	Path   string         `json:"path" yaml:"path"`
	Config map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}
