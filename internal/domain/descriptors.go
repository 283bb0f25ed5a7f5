package domain

import (
	m "gooze.dev/pkg/optset/internal/model"
)

// DefaultsVersion identifies the default values in optionTable. Bump it
// whenever a default changes.
const DefaultsVersion = 1

func none[T any]() *T { return nil }

// optionTable declares every recognized option. Adding an option means
// adding one entry here.
func optionTable() []Descriptor {
	return []Descriptor{
		// Shared.
		sharedOption("rootDir", KindDirect, m.Path("."), asText[m.Path],
			func(o *m.SharedOptions, v m.Path) { o.RootDir = v },
			flag(FlagString, "root directory that tests and modules are searched in")),
		sharedOption("globalSetup", KindDirect, none[m.Path](), asOptional[m.Path],
			func(o *m.SharedOptions, v *m.Path) { o.GlobalSetup = v },
			flag(FlagString, "module run once before all test suites")),
		sharedOption("globalTeardown", KindDirect, none[m.Path](), asOptional[m.Path],
			func(o *m.SharedOptions, v *m.Path) { o.GlobalTeardown = v },
			flag(FlagString, "module run once after all test suites")),
		sharedOption("coveragePathIgnorePatterns", KindDirect, []string{"/node_modules/"}, asList[string],
			func(o *m.SharedOptions, v []string) { o.CoveragePathIgnorePatterns = v },
			flag(FlagStrings, "regexp patterns of paths excluded from coverage (repeatable)")),
		sharedOption("detectLeaks", KindDerived, false, asBool,
			func(o *m.SharedOptions, v bool) { o.DetectLeaks = v },
			flag(FlagBool, "detect memory leaks in test suites")),
		sharedOption("detectOpenHandles", KindDerived, false, asBool,
			func(o *m.SharedOptions, v bool) { o.DetectOpenHandles = v },
			flag(FlagBool, "report handles that keep the process alive")),
		sharedOption("errorOnDeprecated", KindDerived, false, asBool,
			func(o *m.SharedOptions, v bool) { o.ErrorOnDeprecated = v },
			flag(FlagBool, "make calls to deprecated APIs throw")),
		sharedOption("extraGlobals", KindDerived, []string{}, parseIdentifiers,
			func(o *m.SharedOptions, v []string) { o.ExtraGlobals = v }),
		sharedOption("filter", KindDerived, none[m.Path](), asOptional[m.Path],
			func(o *m.SharedOptions, v *m.Path) { o.Filter = v },
			flag(FlagString, "module that filters the list of tests to run")),
		sharedOption("skipFilter", KindDerived, false, asBool,
			func(o *m.SharedOptions, v bool) { o.SkipFilter = v }),

		// Global.
		globalOption("bail", KindRaw, 0, parseBail,
			func(o *m.GlobalOptions, v int) { o.Bail = v },
			flag(FlagBoolOrString, "stop after n failed test suites (bare flag means 1)"), short("b")),
		globalOption("changedFilesWithAncestor", KindDirect, false, asBool,
			func(o *m.GlobalOptions, v bool) { o.ChangedFilesWithAncestor = v },
			flag(FlagBool, "include changes from the last commit in changed files")),
		globalOption("changedSince", KindDirect, "", asText[string],
			func(o *m.GlobalOptions, v string) { o.ChangedSince = v },
			flag(FlagString, "run tests related to changes since the given branch or commit")),
		globalOption("collectCoverage", KindDirect, false, asBool,
			func(o *m.GlobalOptions, v bool) { o.CollectCoverage = v },
			flag(FlagBool, "collect test coverage"), alias("coverage")),
		globalOption("collectCoverageFrom", KindRaw, []m.Glob{}, parseCollectCoverageFrom,
			func(o *m.GlobalOptions, v []m.Glob) { o.CollectCoverageFrom = v },
			flag(FlagString, "glob (or JSON array of globs) of files to collect coverage from")),
		globalOption("collectCoverageOnlyFrom", KindRaw, map[m.Path]bool(nil), parseOnlyFrom,
			func(o *m.GlobalOptions, v map[m.Path]bool) { o.CollectCoverageOnlyFrom = v },
			flag(FlagStrings, "only collect coverage from these paths (repeatable)")),
		globalOption("coverageDirectory", KindDirect, m.Path("coverage"), asText[m.Path],
			func(o *m.GlobalOptions, v m.Path) { o.CoverageDirectory = v },
			flag(FlagString, "directory coverage reports are written to")),
		globalOption("coverageReporters", KindRaw, []m.CoverageReporter{"json", "text", "lcov", "clover"}, asList[m.CoverageReporter],
			func(o *m.GlobalOptions, v []m.CoverageReporter) { o.CoverageReporters = v },
			flag(FlagStrings, "coverage report formats (repeatable)")),
		globalOption("coverageThreshold", KindRaw, m.CoverageThreshold(nil), parseThreshold,
			func(o *m.GlobalOptions, v m.CoverageThreshold) { o.CoverageThreshold = v },
			flag(FlagString, `JSON object of minimum coverage, e.g. {"global":{"lines":90}}`)),
		globalOption("enabledTestsMap", KindDerived, map[string]map[string]bool(nil), parseEnabledTestsMap,
			func(o *m.GlobalOptions, v map[string]map[string]bool) { o.EnabledTestsMap = v }),
		globalOption("expand", KindDerived, false, asBool,
			func(o *m.GlobalOptions, v bool) { o.Expand = v },
			flag(FlagBool, "show full diffs and errors"), short("e")),
		globalOption("findRelatedTests", KindDirect, false, asBool,
			func(o *m.GlobalOptions, v bool) { o.FindRelatedTests = v },
			flag(FlagBool, "run tests related to the given source files")),
		globalOption("forceExit", KindDirect, false, asBool,
			func(o *m.GlobalOptions, v bool) { o.ForceExit = v },
			flag(FlagBool, "force the process to exit after tests complete")),
		globalOption("json", KindDirect, false, asBool,
			func(o *m.GlobalOptions, v bool) { o.JSON = v },
			flag(FlagBool, "print test results as JSON")),
		globalOption("lastCommit", KindDirect, false, asBool,
			func(o *m.GlobalOptions, v bool) { o.LastCommit = v },
			flag(FlagBool, "run tests affected by the last commit")),
		globalOption("listTests", KindDerived, false, asBool,
			func(o *m.GlobalOptions, v bool) { o.ListTests = v },
			flag(FlagBool, "list the tests that would run and exit")),
		globalOption("logHeapUsage", KindDirect, false, asBool,
			func(o *m.GlobalOptions, v bool) { o.LogHeapUsage = v },
			flag(FlagBool, "log heap usage after every test")),
		globalOption("maxConcurrency", KindDerived, 5, asInt,
			func(o *m.GlobalOptions, v int) { o.MaxConcurrency = v },
			flag(FlagInt, "maximum number of concurrent tests in a suite")),
		globalOption("maxWorkers", KindDirect, 0, asInt,
			func(o *m.GlobalOptions, v int) { o.MaxWorkers = v },
			flag(FlagInt, "maximum number of workers (0 picks one per core)"), short("w")),
		globalOption("noSCM", KindDerived, none[bool](), asOptionalBool,
			func(o *m.GlobalOptions, v *bool) { o.NoSCM = v }),
		globalOption("noStackTrace", KindDirect, false, asBool,
			func(o *m.GlobalOptions, v bool) { o.NoStackTrace = v },
			flag(FlagBool, "omit stack traces from test output")),
		globalOption("nonFlagArgs", KindDerived, []string{}, asList[string],
			func(o *m.GlobalOptions, v []string) { o.NonFlagArgs = v }),
		globalOption("notify", KindDirect, false, asBool,
			func(o *m.GlobalOptions, v bool) { o.Notify = v },
			flag(FlagBool, "raise a notification for test results")),
		globalOption("notifyMode", KindRaw, m.NotifyFailureChange, asText[m.NotifyMode],
			func(o *m.GlobalOptions, v m.NotifyMode) { o.NotifyMode = v },
			flag(FlagString, "when to notify: always, failure, success, change, success-change, failure-change")),
		globalOption("onlyChanged", KindDirect, false, asBool,
			func(o *m.GlobalOptions, v bool) { o.OnlyChanged = v },
			flag(FlagBool, "run tests related to changed files only"), short("o")),
		globalOption("onlyFailures", KindDerived, false, asBool,
			func(o *m.GlobalOptions, v bool) { o.OnlyFailures = v },
			flag(FlagBool, "run tests that failed in the previous run"), short("f")),
		globalOption("outputFile", KindRaw, none[m.Path](), parseOutputFile,
			func(o *m.GlobalOptions, v *m.Path) { o.OutputFile = v },
			flag(FlagString, "write test results to this file")),
		globalOption("passWithNoTests", KindDerived, false, asBool,
			func(o *m.GlobalOptions, v bool) { o.PassWithNoTests = v },
			flag(FlagBool, "succeed when no tests are found")),
		globalOption("projects", KindDirect, []m.Glob{}, asList[m.Glob],
			func(o *m.GlobalOptions, v []m.Glob) { o.Projects = v },
			flag(FlagStrings, "globs of project directories to run (repeatable)")),
		globalOption("replname", KindDerived, none[string](), asOptional[string],
			func(o *m.GlobalOptions, v *string) { o.Replname = v }),
		globalOption("reporters", KindDerived, []m.ReporterConfig{}, parseReporters,
			func(o *m.GlobalOptions, v []m.ReporterConfig) { o.Reporters = v },
			flag(FlagStrings, "reporter modules (repeatable)")),
		globalOption("runTestsByPath", KindDerived, false, asBool,
			func(o *m.GlobalOptions, v bool) { o.RunTestsByPath = v },
			flag(FlagBool, "treat positional arguments as exact test paths")),
		globalOption("silent", KindDirect, false, asBool,
			func(o *m.GlobalOptions, v bool) { o.Silent = v },
			flag(FlagBool, "suppress console output from tests")),
		globalOption("testFailureExitCode", KindRaw, 1, parseExitCode,
			func(o *m.GlobalOptions, v int) { o.TestFailureExitCode = v },
			flag(FlagString, "exit code used when tests fail")),
		globalOption("testMatch", KindDirect, []m.Glob{"**/__tests__/**/*.[jt]s?(x)", "**/?(*.)+(spec|test).[jt]s?(x)"}, asList[m.Glob],
			func(o *m.GlobalOptions, v []m.Glob) { o.TestMatch = v },
			flag(FlagStrings, "globs that identify test files (repeatable)")),
		globalOption("testNamePattern", KindDirect, "", asText[string],
			func(o *m.GlobalOptions, v string) { o.TestNamePattern = v },
			flag(FlagString, "run only tests whose name matches this regexp"), short("t")),
		globalOption("testPathPattern", KindRaw, "", parseTestPathPattern,
			func(o *m.GlobalOptions, v string) { o.TestPathPattern = v },
			flag(FlagStrings, "regexp matched against test paths (repeatable, joined with |)")),
		globalOption("testResultsProcessor", KindDirect, none[string](), asOptional[string],
			func(o *m.GlobalOptions, v *string) { o.TestResultsProcessor = v },
			flag(FlagString, "module that processes aggregated results")),
		globalOption("testSequencer", KindDirect, "@jest/test-sequencer", asText[string],
			func(o *m.GlobalOptions, v string) { o.TestSequencer = v },
			flag(FlagString, "module that orders test suites")),
		globalOption("updateSnapshot", KindRaw, m.SnapshotNew, parseUpdateSnapshot,
			func(o *m.GlobalOptions, v m.SnapshotUpdateState) { o.UpdateSnapshot = v },
			flag(FlagBool, "re-record every snapshot that fails"), short("u")),
		globalOption("useStderr", KindDirect, false, asBool,
			func(o *m.GlobalOptions, v bool) { o.UseStderr = v },
			flag(FlagBool, "write reporter output to stderr")),
		globalOption("verbose", KindDirect, none[bool](), asOptionalBool,
			func(o *m.GlobalOptions, v *bool) { o.Verbose = v },
			flag(FlagBool, "report every individual test")),
		globalOption("watch", KindDirect, false, asBool,
			func(o *m.GlobalOptions, v bool) { o.Watch = v },
			flag(FlagBool, "re-run tests related to changed files")),
		globalOption("watchAll", KindDirect, false, asBool,
			func(o *m.GlobalOptions, v bool) { o.WatchAll = v },
			flag(FlagBool, "re-run all tests when a file changes")),
		globalOption("watchPlugins", KindDerived, []m.WatchPlugin{}, parseWatchPlugins,
			func(o *m.GlobalOptions, v []m.WatchPlugin) { o.WatchPlugins = v }),
		globalOption("watchman", KindDirect, true, asBool,
			func(o *m.GlobalOptions, v bool) { o.Watchman = v },
			flag(FlagBool, "use watchman for file crawling")),

		// Project.
		projectOption("automock", KindDirect, false, asBool,
			func(o *m.ProjectOptions, v bool) { o.Automock = v },
			flag(FlagBool, "mock every imported module automatically")),
		projectOption("browser", KindDirect, false, asBool,
			func(o *m.ProjectOptions, v bool) { o.Browser = v },
			flag(FlagBool, "respect the browser field of package.json")),
		projectOption("cache", KindDirect, true, asBool,
			func(o *m.ProjectOptions, v bool) { o.Cache = v },
			flag(FlagBool, "use the transform cache")),
		projectOption("cacheDirectory", KindDirect, m.Path("/tmp/jest"), asText[m.Path],
			func(o *m.ProjectOptions, v m.Path) { o.CacheDirectory = v },
			flag(FlagString, "directory for cached dependency information")),
		projectOption("clearMocks", KindDirect, false, asBool,
			func(o *m.ProjectOptions, v bool) { o.ClearMocks = v },
			flag(FlagBool, "clear mock calls between tests")),
		projectOption("cwd", KindDerived, m.Path("."), asText[m.Path],
			func(o *m.ProjectOptions, v m.Path) { o.Cwd = v }),
		projectOption("dependencyExtractor", KindDerived, none[string](), asOptional[string],
			func(o *m.ProjectOptions, v *string) { o.DependencyExtractor = v }),
		projectOption("displayName", KindDerived, none[m.DisplayName](), parseDisplayName,
			func(o *m.ProjectOptions, v *m.DisplayName) { o.DisplayName = v }),
		projectOption("forceCoverageMatch", KindDerived, []m.Glob{}, asList[m.Glob],
			func(o *m.ProjectOptions, v []m.Glob) { o.ForceCoverageMatch = v }),
		projectOption("globals", KindRaw, map[string]any{}, parseGlobals,
			func(o *m.ProjectOptions, v map[string]any) { o.Globals = v },
			flag(FlagString, "JSON object of global variables for test environments")),
		projectOption("haste", KindRaw, m.HasteConfig{Platforms: []string{}, ProvidesModuleNodeModules: []string{}}, parseHaste,
			func(o *m.ProjectOptions, v m.HasteConfig) { o.Haste = v },
			flag(FlagString, "JSON object configuring the module map")),
		projectOption("moduleDirectories", KindDirect, []string{"node_modules"}, asList[string],
			func(o *m.ProjectOptions, v []string) { o.ModuleDirectories = v },
			flag(FlagStrings, "directories searched for modules (repeatable)")),
		projectOption("moduleFileExtensions", KindDirect, []string{"js", "json", "jsx", "ts", "tsx", "node"}, asList[string],
			func(o *m.ProjectOptions, v []string) { o.ModuleFileExtensions = v },
			flag(FlagStrings, "file extensions modules may use (repeatable)")),
		projectOption("moduleLoader", KindDerived, none[m.Path](), asOptional[m.Path],
			func(o *m.ProjectOptions, v *m.Path) { o.ModuleLoader = v }),
		projectOption("moduleNameMapper", KindRaw, []m.Pair{}, parsePairs,
			func(o *m.ProjectOptions, v []m.Pair) { o.ModuleNameMapper = v },
			flag(FlagString, "JSON object mapping module regexps to paths, first match wins")),
		projectOption("modulePathIgnorePatterns", KindDirect, []string{}, asList[string],
			func(o *m.ProjectOptions, v []string) { o.ModulePathIgnorePatterns = v },
			flag(FlagStrings, "regexps of paths hidden from the module loader (repeatable)")),
		projectOption("modulePaths", KindDirect, []string{}, asList[string],
			func(o *m.ProjectOptions, v []string) { o.ModulePaths = v },
			flag(FlagStrings, "extra module search locations (repeatable)")),
		projectOption("name", KindDerived, "", asText[string],
			func(o *m.ProjectOptions, v string) { o.Name = v }),
		projectOption("preset", KindDirect, none[string](), asOptional[string],
			func(o *m.ProjectOptions, v *string) { o.Preset = v },
			flag(FlagString, "preset used as a base configuration")),
		projectOption("prettierPath", KindDirect, "prettier", asText[string],
			func(o *m.ProjectOptions, v string) { o.PrettierPath = v },
			flag(FlagString, "path to prettier for inline snapshots")),
		projectOption("resetMocks", KindDirect, false, asBool,
			func(o *m.ProjectOptions, v bool) { o.ResetMocks = v },
			flag(FlagBool, "reset mock state between tests")),
		projectOption("resetModules", KindDirect, false, asBool,
			func(o *m.ProjectOptions, v bool) { o.ResetModules = v },
			flag(FlagBool, "reset the module registry between tests")),
		projectOption("resolver", KindDirect, none[m.Path](), asOptional[m.Path],
			func(o *m.ProjectOptions, v *m.Path) { o.Resolver = v },
			flag(FlagString, "custom module resolver")),
		projectOption("restoreMocks", KindDirect, false, asBool,
			func(o *m.ProjectOptions, v bool) { o.RestoreMocks = v },
			flag(FlagBool, "restore mocked implementations between tests")),
		projectOption("roots", KindDirect, []m.Path{"<rootDir>"}, asList[m.Path],
			func(o *m.ProjectOptions, v []m.Path) { o.Roots = v },
			flag(FlagStrings, "directories searched for tests and modules (repeatable)")),
		projectOption("runner", KindDerived, "jest-runner", asText[string],
			func(o *m.ProjectOptions, v string) { o.Runner = v }),
		projectOption("setupFiles", KindDirect, []m.Path{}, asList[m.Path],
			func(o *m.ProjectOptions, v []m.Path) { o.SetupFiles = v },
			flag(FlagStrings, "modules run before each test file (repeatable)")),
		projectOption("setupFilesAfterEnv", KindDirect, []m.Path{}, asList[m.Path],
			func(o *m.ProjectOptions, v []m.Path) { o.SetupFilesAfterEnv = v },
			flag(FlagStrings, "modules run after the framework is installed (repeatable)")),
		projectOption("skipNodeResolution", KindDerived, false, asBool,
			func(o *m.ProjectOptions, v bool) { o.SkipNodeResolution = v }),
		projectOption("snapshotResolver", KindDerived, none[m.Path](), asOptional[m.Path],
			func(o *m.ProjectOptions, v *m.Path) { o.SnapshotResolver = v }),
		projectOption("snapshotSerializers", KindDirect, []m.Path{}, asList[m.Path],
			func(o *m.ProjectOptions, v []m.Path) { o.SnapshotSerializers = v },
			flag(FlagStrings, "snapshot serializer modules (repeatable)")),
		projectOption("testEnvironment", KindDirect, "node", asText[string],
			func(o *m.ProjectOptions, v string) { o.TestEnvironment = v },
			flag(FlagString, "test environment module"), alias("env")),
		projectOption("testEnvironmentOptions", KindDerived, map[string]any{}, parseGlobals,
			func(o *m.ProjectOptions, v map[string]any) { o.TestEnvironmentOptions = v }),
		projectOption("testLocationInResults", KindDerived, false, asBool,
			func(o *m.ProjectOptions, v bool) { o.TestLocationInResults = v },
			flag(FlagBool, "add test locations to results")),
		projectOption("testPathIgnorePatterns", KindDirect, []string{"/node_modules/"}, asList[string],
			func(o *m.ProjectOptions, v []string) { o.TestPathIgnorePatterns = v },
			flag(FlagStrings, "regexps of test paths to skip (repeatable)")),
		projectOption("testRegex", KindRaw, []string{}, asOneOrList[string],
			func(o *m.ProjectOptions, v []string) { o.TestRegex = v },
			flag(FlagStrings, "regexps that identify test files (repeatable)")),
		projectOption("testRunner", KindDirect, "jasmine2", asText[string],
			func(o *m.ProjectOptions, v string) { o.TestRunner = v },
			flag(FlagString, "test runner module")),
		projectOption("testURL", KindDirect, "http://localhost", asText[string],
			func(o *m.ProjectOptions, v string) { o.TestURL = v },
			flag(FlagString, "URL of the test environment location")),
		projectOption("timers", KindRaw, m.TimersReal, asText[m.Timers],
			func(o *m.ProjectOptions, v m.Timers) { o.Timers = v },
			flag(FlagString, "timer implementation: real or fake")),
		projectOption("transform", KindRaw, []m.Pair{}, parsePairs,
			func(o *m.ProjectOptions, v []m.Pair) { o.Transform = v },
			flag(FlagString, "JSON object mapping file regexps to transformers, first match wins")),
		projectOption("transformIgnorePatterns", KindDirect, []m.Glob{"/node_modules/"}, asList[m.Glob],
			func(o *m.ProjectOptions, v []m.Glob) { o.TransformIgnorePatterns = v },
			flag(FlagStrings, "regexps of paths that are not transformed (repeatable)")),
		projectOption("unmockedModulePathPatterns", KindDirect, []string(nil), asList[string],
			func(o *m.ProjectOptions, v []string) { o.UnmockedModulePathPatterns = v },
			flag(FlagStrings, "regexps of modules never mocked automatically (repeatable)")),
		projectOption("watchPathIgnorePatterns", KindDirect, []string{}, asList[string],
			func(o *m.ProjectOptions, v []string) { o.WatchPathIgnorePatterns = v },
			flag(FlagStrings, "regexps of paths ignored in watch mode (repeatable)")),
	}
}

func directiveTable() []Directive {
	return []Directive{
		{Flag: "ci", Usage: "never write new snapshots unless --updateSnapshot is given", Target: "updateSnapshot", Value: false, Layer: LayerDefault},
		{Flag: "runInBand", Short: "i", Usage: "run all tests serially in the current process", Target: "maxWorkers", Value: 1, Layer: LayerCLI},
		{Flag: "all", Usage: "run all tests instead of changed ones", Target: "onlyChanged", Value: false, Layer: LayerCLI},
	}
}
