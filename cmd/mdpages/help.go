package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpages <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate   Convert the page table to HTML pages")
	fmt.Fprintln(w, "  watch      Regenerate pages when their sources change")
	fmt.Fprintln(w, "  doctor     Check pandoc, Chrome and directories")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdpages help <command>' for details on a specific command.")
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpages generate [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert each document of a pipeline's page table to a themed HTML page.")
	fmt.Fprintln(w)
	printSourceFlags(w)
	printRenderFlags(w)
	fmt.Fprintln(w, "Run:")
	fmt.Fprintln(w, "      --strict              Exit 1 when any page fails")
	fmt.Fprintln(w)
	printCommonFlags(w)
	printEnvVars(w)
}

// printWatchUsage prints usage for the watch command.
func printWatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpages watch [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate once, then regenerate a pipeline whenever one of its")
	fmt.Fprintln(w, "source documents changes. Stop with Ctrl+C.")
	fmt.Fprintln(w)
	printSourceFlags(w)
	printRenderFlags(w)
	fmt.Fprintln(w, "Watch:")
	fmt.Fprintln(w, "      --debounce <d>        Quiet period before regenerating (default 300ms)")
	fmt.Fprintln(w)
	printCommonFlags(w)
	printEnvVars(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpages doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report whether pandoc and Chrome are available, where pages are read")
	fmt.Fprintln(w, "from and written to, and whether the output directory is writable.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --docs <dir>          Source documents directory")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory")
	fmt.Fprintln(w, "      --json                Machine-readable output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 ready or warnings, 1 errors found.")
}

func printSourceFlags(w io.Writer) {
	fmt.Fprintln(w, "Pipeline:")
	fmt.Fprintln(w, "  -p, --pipeline <name>     Pipeline name or \"all\" (default cards)")
	fmt.Fprintln(w, "      --docs <dir>          Source documents directory")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory for every selected pipeline")
	fmt.Fprintln(w, "      --converter <kind>    pandoc, cards or goldmark")
	fmt.Fprintln(w)
}

func printRenderFlags(w io.Writer) {
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --escape-html         Escape &, < and > in card text")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with templates/NAME.html overrides")
	fmt.Fprintln(w, "      --pdf                 Also export each page to PDF")
	fmt.Fprintln(w, "      --pdf-timeout <d>     PDF render timeout per page (default 30s)")
	fmt.Fprintln(w)
}

func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log diagnostics to stderr")
	fmt.Fprintln(w)
}

func printEnvVars(w io.Writer) {
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDPAGES_CONFIG, MDPAGES_PIPELINE, MDPAGES_DOCS_DIR, MDPAGES_OUTPUT_DIR,")
	fmt.Fprintln(w, "  MDPAGES_BASE_URL, MDPAGES_PANDOC_BIN, MDPAGES_PDF_TIMEOUT")
	fmt.Fprintln(w, "  Flags override environment, which overrides the config file.")
}

// runHelp prints help for a command, or the main usage.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "generate":
		printGenerateUsage(env.Stdout)
	case "watch":
		printWatchUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdpages version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
	}
}
