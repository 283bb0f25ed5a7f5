package model

import "slices"

// SharedOptions holds the fields common to GlobalOptions and ProjectOptions.
// Both records always carry identical values for them.
type SharedOptions struct {
	RootDir                    Path     `json:"rootDir" yaml:"rootDir"`
	GlobalSetup                *Path    `json:"globalSetup" yaml:"globalSetup"`
	GlobalTeardown             *Path    `json:"globalTeardown" yaml:"globalTeardown"`
	CoveragePathIgnorePatterns []string `json:"coveragePathIgnorePatterns" yaml:"coveragePathIgnorePatterns"`
	DetectLeaks                bool     `json:"detectLeaks" yaml:"detectLeaks"`
	DetectOpenHandles          bool     `json:"detectOpenHandles" yaml:"detectOpenHandles"`
	ErrorOnDeprecated          bool     `json:"errorOnDeprecated" yaml:"errorOnDeprecated"`
	ExtraGlobals               []string `json:"extraGlobals" yaml:"extraGlobals"`
	Filter                     *Path    `json:"filter" yaml:"filter"`
	SkipFilter                 bool     `json:"skipFilter" yaml:"skipFilter"`
}

// Clone returns a deep copy of s.
func (s SharedOptions) Clone() SharedOptions {
	out := s
	out.GlobalSetup = clonePtr(s.GlobalSetup)
	out.GlobalTeardown = clonePtr(s.GlobalTeardown)
	out.CoveragePathIgnorePatterns = slices.Clone(s.CoveragePathIgnorePatterns)
	out.ExtraGlobals = slices.Clone(s.ExtraGlobals)
	out.Filter = clonePtr(s.Filter)

	return out
}

// GlobalOptions configures a whole run.
type GlobalOptions struct {
	SharedOptions `yaml:",inline"`

	Bail                     int                        `json:"bail" yaml:"bail"`
	ChangedFilesWithAncestor bool                       `json:"changedFilesWithAncestor" yaml:"changedFilesWithAncestor"`
	ChangedSince             string                     `json:"changedSince" yaml:"changedSince"`
	CollectCoverage          bool                       `json:"collectCoverage" yaml:"collectCoverage"`
	CollectCoverageFrom      []Glob                     `json:"collectCoverageFrom" yaml:"collectCoverageFrom"`
	CollectCoverageOnlyFrom  map[Path]bool              `json:"collectCoverageOnlyFrom" yaml:"collectCoverageOnlyFrom"`
	CoverageDirectory        Path                       `json:"coverageDirectory" yaml:"coverageDirectory"`
	CoverageReporters        []CoverageReporter         `json:"coverageReporters" yaml:"coverageReporters"`
	CoverageThreshold        CoverageThreshold          `json:"coverageThreshold" yaml:"coverageThreshold"`
	EnabledTestsMap          map[string]map[string]bool `json:"enabledTestsMap" yaml:"enabledTestsMap"`
	Expand                   bool                       `json:"expand" yaml:"expand"`
	FindRelatedTests         bool                       `json:"findRelatedTests" yaml:"findRelatedTests"`
	ForceExit                bool                       `json:"forceExit" yaml:"forceExit"`
	JSON                     bool                       `json:"json" yaml:"json"`
	LastCommit               bool                       `json:"lastCommit" yaml:"lastCommit"`
	ListTests                bool                       `json:"listTests" yaml:"listTests"`
	LogHeapUsage             bool                       `json:"logHeapUsage" yaml:"logHeapUsage"`
	MaxConcurrency           int                        `json:"maxConcurrency" yaml:"maxConcurrency"`
	MaxWorkers               int                        `json:"maxWorkers" yaml:"maxWorkers"`
	NoSCM                    *bool                      `json:"noSCM" yaml:"noSCM"`
	NoStackTrace             bool                       `json:"noStackTrace" yaml:"noStackTrace"`
	NonFlagArgs              []string                   `json:"nonFlagArgs" yaml:"nonFlagArgs"`
	Notify                   bool                       `json:"notify" yaml:"notify"`
	NotifyMode               NotifyMode                 `json:"notifyMode" yaml:"notifyMode"`
	OnlyChanged              bool                       `json:"onlyChanged" yaml:"onlyChanged"`
	OnlyFailures             bool                       `json:"onlyFailures" yaml:"onlyFailures"`
	OutputFile               *Path                      `json:"outputFile" yaml:"outputFile"`
	PassWithNoTests          bool                       `json:"passWithNoTests" yaml:"passWithNoTests"`
	Projects                 []Glob                     `json:"projects" yaml:"projects"`
	Replname                 *string                    `json:"replname" yaml:"replname"`
	Reporters                []ReporterConfig           `json:"reporters" yaml:"reporters"`
	RunTestsByPath           bool                       `json:"runTestsByPath" yaml:"runTestsByPath"`
	Silent                   bool                       `json:"silent" yaml:"silent"`
	TestFailureExitCode      int                        `json:"testFailureExitCode" yaml:"testFailureExitCode"`
	TestMatch                []Glob                     `json:"testMatch" yaml:"testMatch"`
	TestNamePattern          string                     `json:"testNamePattern" yaml:"testNamePattern"`
	TestPathPattern          string                     `json:"testPathPattern" yaml:"testPathPattern"`
	TestResultsProcessor     *string                    `json:"testResultsProcessor" yaml:"testResultsProcessor"`
	TestSequencer            string                     `json:"testSequencer" yaml:"testSequencer"`
	UpdateSnapshot           SnapshotUpdateState        `json:"updateSnapshot" yaml:"updateSnapshot"`
	UseStderr                bool                       `json:"useStderr" yaml:"useStderr"`
	Verbose                  *bool                      `json:"verbose" yaml:"verbose"`
	Watch                    bool                       `json:"watch" yaml:"watch"`
	WatchAll                 bool                       `json:"watchAll" yaml:"watchAll"`
	WatchPlugins             []WatchPlugin              `json:"watchPlugins" yaml:"watchPlugins"`
	Watchman                 bool                       `json:"watchman" yaml:"watchman"`
}

// ProjectOptions configures a single test project.
type ProjectOptions struct {
	SharedOptions `yaml:",inline"`

	Automock                   bool           `json:"automock" yaml:"automock"`
	Browser                    bool           `json:"browser" yaml:"browser"`
	Cache                      bool           `json:"cache" yaml:"cache"`
	CacheDirectory             Path           `json:"cacheDirectory" yaml:"cacheDirectory"`
	ClearMocks                 bool           `json:"clearMocks" yaml:"clearMocks"`
	Cwd                        Path           `json:"cwd" yaml:"cwd"`
	DependencyExtractor        *string        `json:"dependencyExtractor" yaml:"dependencyExtractor"`
	DisplayName                *DisplayName   `json:"displayName" yaml:"displayName"`
	ForceCoverageMatch         []Glob         `json:"forceCoverageMatch" yaml:"forceCoverageMatch"`
	Globals                    map[string]any `json:"globals" yaml:"globals"`
	Haste                      HasteConfig    `json:"haste" yaml:"haste"`
	ModuleDirectories          []string       `json:"moduleDirectories" yaml:"moduleDirectories"`
	ModuleFileExtensions       []string       `json:"moduleFileExtensions" yaml:"moduleFileExtensions"`
	ModuleLoader               *Path          `json:"moduleLoader" yaml:"moduleLoader"`
	ModuleNameMapper           []Pair         `json:"moduleNameMapper" yaml:"moduleNameMapper"`
	ModulePathIgnorePatterns   []string       `json:"modulePathIgnorePatterns" yaml:"modulePathIgnorePatterns"`
	ModulePaths                []string       `json:"modulePaths" yaml:"modulePaths"`
	Name                       string         `json:"name" yaml:"name"`
	Preset                     *string        `json:"preset" yaml:"preset"`
	PrettierPath               string         `json:"prettierPath" yaml:"prettierPath"`
	ResetMocks                 bool           `json:"resetMocks" yaml:"resetMocks"`
	ResetModules               bool           `json:"resetModules" yaml:"resetModules"`
	Resolver                   *Path          `json:"resolver" yaml:"resolver"`
	RestoreMocks               bool           `json:"restoreMocks" yaml:"restoreMocks"`
	Roots                      []Path         `json:"roots" yaml:"roots"`
	Runner                     string         `json:"runner" yaml:"runner"`
	SetupFiles                 []Path         `json:"setupFiles" yaml:"setupFiles"`
	SetupFilesAfterEnv         []Path         `json:"setupFilesAfterEnv" yaml:"setupFilesAfterEnv"`
	SkipNodeResolution         bool           `json:"skipNodeResolution" yaml:"skipNodeResolution"`
	SnapshotResolver           *Path          `json:"snapshotResolver" yaml:"snapshotResolver"`
	SnapshotSerializers        []Path         `json:"snapshotSerializers" yaml:"snapshotSerializers"`
	TestEnvironment            string         `json:"testEnvironment" yaml:"testEnvironment"`
	TestEnvironmentOptions     map[string]any `json:"testEnvironmentOptions" yaml:"testEnvironmentOptions"`
	TestLocationInResults      bool           `json:"testLocationInResults" yaml:"testLocationInResults"`
	TestPathIgnorePatterns     []string       `json:"testPathIgnorePatterns" yaml:"testPathIgnorePatterns"`
	TestRegex                  []string       `json:"testRegex" yaml:"testRegex"`
	TestRunner                 string         `json:"testRunner" yaml:"testRunner"`
	TestURL                    string         `json:"testURL" yaml:"testURL"`
	Timers                     Timers         `json:"timers" yaml:"timers"`
	Transform                  []Pair         `json:"transform" yaml:"transform"`
	TransformIgnorePatterns    []Glob         `json:"transformIgnorePatterns" yaml:"transformIgnorePatterns"`
	UnmockedModulePathPatterns []string       `json:"unmockedModulePathPatterns" yaml:"unmockedModulePathPatterns"`
	WatchPathIgnorePatterns    []string       `json:"watchPathIgnorePatterns" yaml:"watchPathIgnorePatterns"`
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}

	v := *p

	return &v
}
