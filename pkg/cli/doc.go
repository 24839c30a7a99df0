/*
Package cli provides command-line helpers for the zeedzad command.

Output Formatting:

Results are printed as aligned text on a terminal and as JSON when piped,
unless --output forces one or the other:

	format, err := cli.ParseOutputFormat(flagValue)
	formatter := cli.NewFormatter(format, os.Stdout)
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return err
	}

Types that implement Tabular render as a table in text mode.

Errors:

ConfigError marks bad configuration or flags and maps to exit code 2 via
ExitCode; everything else exits 1.

Signal Handling:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
