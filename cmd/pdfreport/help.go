package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdfreport <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate   Build a PDF report from an .xlsx or .csv file")
	fmt.Fprintln(w, "  sample     Write the demo workbook")
	fmt.Fprintln(w, "  doctor     Check the browser and environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'pdfreport help <command>' for details on a specific command.")
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdfreport generate <data.xlsx|data.csv> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build a report: title page, executive summary, key metrics, data table,")
	fmt.Fprintln(w, "charts and conclusion.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -o, --output <file>       Output file name or path")
	fmt.Fprintln(w, "      --output-dir <dir>    Output directory (default: reports)")
	fmt.Fprintln(w, "      --sheet <name>        Worksheet to read (default: first)")
	fmt.Fprintln(w, "      --max-rows <n>        Rows shown in the data table (default: 10)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Title page:")
	fmt.Fprintln(w, "      --title <s>           Report title")
	fmt.Fprintln(w, "      --company <s>         Company name")
	fmt.Fprintln(w, "      --author <s>          Prepared by")
	fmt.Fprintln(w, "      --logo <path>         Logo image")
	fmt.Fprintln(w, "      --date-format <s>     Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: a4, letter, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <pt>         Margin in points (0-288)")
	fmt.Fprintln(w, "      --footer-text <s>     Footer text")
	fmt.Fprintln(w, "      --no-footer           Disable footer")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Charts:")
	fmt.Fprintln(w, "      --x-column <name>     Category column (default: first column)")
	fmt.Fprintln(w, "      --bar-column <name>   Bar chart column (default: Sales or first numeric)")
	fmt.Fprintln(w, "      --line-column <name>  Line chart column (default: Revenue or next numeric)")
	fmt.Fprintln(w, "      --pie-column <name>   Pie chart of category counts")
	fmt.Fprintln(w, "      --compare <a,b,...>   Grouped bar chart of two or more columns")
	fmt.Fprintln(w, "      --no-charts           Skip the visual analysis section")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment: PDFREPORT_* overrides config keys, e.g. PDFREPORT_REPORT_TITLE,")
	fmt.Fprintln(w, "PDFREPORT_CHART_DPI. Flags win over environment, environment over the file.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "generate":
		printGenerateUsage(env.Stdout)
	case "sample":
		fmt.Fprintln(env.Stdout, "Usage: pdfreport sample [-o sample_data.xlsx]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Write six months of demo Sales, Revenue and Customers figures.")
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: pdfreport doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome, sandbox settings and the temp directory.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: pdfreport version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: pdfreport help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
