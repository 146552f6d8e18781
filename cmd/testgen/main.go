// cmd/testgen/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/julianshen/testgen/internal/cli"
	"github.com/julianshen/testgen/internal/ollama"
	"github.com/julianshen/testgen/internal/runner"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionString() string {
	return fmt.Sprintf("testgen %s (commit: %s, built: %s)", version, commit, date)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hint := cli.Hint(err); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
		os.Exit(runner.ExitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	flags := &cli.Flags{}

	rootCmd := &cobra.Command{
		Use:   "testgen <feature>",
		Short: "Generate test cases from a feature description using Ollama",
		Long: "testgen sends a feature description to a locally running Ollama server\n" +
			"and prints the model's suggested test cases as JSON or plain text.",
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := cli.Resolve(flags, args[0])
			if err != nil {
				return err
			}
			client := ollama.NewClient(opts.BaseURL)
			return cli.RunGenerate(cmd.Context(), opts, client, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return runner.Usagef("%v", err)
	})

	rootCmd.Flags().StringVar(&flags.ConfigPath, "config", "", "path to config file")
	rootCmd.Flags().StringVar(&flags.Model, "model", "", "Ollama model to use (default: codellama)")
	rootCmd.Flags().StringVar(&flags.BaseURL, "base-url", "", "Ollama API base URL (default: http://localhost:11434)")
	rootCmd.Flags().StringVar(&flags.Format, "format", "", "output format: json, text (default: json)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(versionString())
		},
	})

	return rootCmd
}

// usageArgs converts positional-argument validation failures into usage
// errors so they map to the usage exit code.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return runner.Usagef("%v", err)
		}
		return nil
	}
}
