package cmd

import (
	"os"
	"path/filepath"

	"dibuild/common"
	"dibuild/generate"
	"dibuild/llvm"
	"dibuild/manifest"
	"dibuild/report"

	"github.com/ComedicChimera/olive"
)

// Execute is the main entry point for the `dibuild` CLI utility.
func Execute() {
	os.Exit(run(os.Args))
}

// run runs the CLI on the given arguments and returns the exit code.
func run(args []string) int {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("dibuild", "dibuild is a tool for generating LLVM debug info", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the log level", false, report.LogLevelNames())
	logLvlArg.SetDefaultValue("verbose")

	emitCmd := cli.AddSubcommand("emit", "emit the LLVM module described by a debug manifest", true)
	emitCmd.AddPrimaryArg("manifest-path", "the path to the debug manifest", true)
	emitCmd.AddStringArg("output", "o", "the path to write the LLVM module to", false)

	cli.AddSubcommand("version", "print the dibuild version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, args)
	if err != nil {
		report.ReportFatal("%s", err)
		return 1
	}

	logLevel, _ := report.ParseLogLevel(result.Arguments["loglevel"].(string))
	report.InitReporter(logLevel)

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "emit":
		return execEmitCommand(subResult)
	case "version":
		report.ReportInfo("dibuild version", "%s (debug metadata v%d)", common.DibuildVersion, llvm.DebugMetadataVersion())
	}

	return 0
}

// execEmitCommand executes the emit subcommand and handles all errors.
func execEmitCommand(result *olive.ArgParseResult) int {
	// get the primary argument: the manifest path
	manifestRelPath, _ := result.PrimaryArg()

	manifestPath, err := filepath.Abs(manifestRelPath)
	if err != nil {
		report.ReportStdError(manifestRelPath, err)
		return 1
	}

	if filepath.Ext(manifestPath) != common.ManifestFileExt {
		report.ReportWarning(manifestRelPath, "debug manifests should have the `%s` extension", common.ManifestFileExt)
	}

	outPath := ""
	if outArgVal, ok := result.Arguments["output"]; ok {
		outPath = outArgVal.(string)
	}

	return emit(manifestPath, outPath)
}

// emit loads the manifest at manifestPath and writes its LLVM module to
// outPath.  Contract violations in the LLVM layer are caught and reported as
// internal errors.
func emit(manifestPath, outPath string) (code int) {
	defer func() {
		if report.AnyErrors() {
			code = 1
		}
	}()
	defer report.CatchErrors(manifestPath)

	m, err := manifest.Load(manifestPath)
	if err != nil {
		report.ReportStdError(manifestPath, err)
		return 1
	}

	if outPath != "" && filepath.Ext(outPath) != common.LLVMFileExt {
		report.ReportWarning(outPath, "LLVM modules should have the `%s` extension", common.LLVMFileExt)
	}

	writtenPath, err := generate.EmitFile(m, outPath, report.Logger())
	if err != nil {
		report.ReportStdError(manifestPath, err)
		return 1
	}

	report.ReportInfo("Emitted", "`%s` to %s", m.Name, writtenPath)
	return 0
}
