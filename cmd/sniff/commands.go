package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golift.io/sniff"
	"golift.io/sniff/staged"
	"gopkg.in/yaml.v3"
)

// app carries the loaded config from the root command to its children.
type app struct {
	viper      *viper.Viper
	configFile string
	config     *config
}

func newRootCmd() *cobra.Command {
	cli := &app{viper: viper.New()}

	root := &cobra.Command{
		Use:   "sniff",
		Short: "Decide whether files and staged changes are text or binary",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := cli.viper.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("binding flags: %w", err)
			}

			cfg, err := loadConfig(cli.viper, cli.configFile)
			if err != nil {
				return err
			}

			cli.config = cfg

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&cli.configFile, "config", "c", "", "config file (default: ./sniff.yaml)")
	flags.StringP("format", "f", formatText, "output format: text, json or yaml")
	flags.Bool("debug", false, "log every classification decision")
	flags.Bool("peek", false, "look inside compressed streams and archives")
	flags.Bool("language", false, "detect the programming language of text files")
	flags.Int("max-diff-size", staged.DefaultMaxDiffSize, "largest diff, in bytes, shown as text")
	flags.Float64("min-confidence", staged.DefaultMinConfidence, "confidence a binary verdict must exceed to hide a diff")
	flags.String("placeholder", sniff.BinaryPlaceholder, "text shown instead of binary content")

	for _, name := range []string{"max-diff-size", "min-confidence"} {
		_ = cli.viper.BindPFlag(underscore(name), flags.Lookup(name))
	}

	root.AddCommand(cli.classifyCmd(), cli.diffCmd(), cli.stagedCmd())

	return root
}

// underscore maps a flag name to its config file key.
func underscore(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// fileResult pairs a path with its verdict for structured output.
type fileResult struct {
	Path   string        `json:"path"            yaml:"path"`
	Result *sniff.Result `json:"result,omitempty" yaml:"result,omitempty"`
	Error  string        `json:"error,omitempty"  yaml:"error,omitempty"`
}

func (a *app) classifyCmd() *cobra.Command {
	var mimeType string

	cmd := &cobra.Command{
		Use:   "classify <path> [paths...]",
		Short: "Classify files; folders are walked",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			classifier := a.config.classifier()
			results := []*fileResult{}

			for _, arg := range args {
				paths, err := sniff.FindFiles(arg)
				if err != nil {
					return fmt.Errorf("finding files: %w", err)
				}

				for _, path := range paths {
					item := &fileResult{Path: path}

					if item.Result, err = classifier.ClassifyFileMime(path, mimeType); err != nil {
						item.Error = err.Error()
					}

					results = append(results, item)
				}
			}

			return a.write(cmd.OutOrStdout(), results, func(out io.Writer) {
				for _, item := range results {
					writeResult(out, item)
				}
			})
		},
	}

	cmd.Flags().StringVarP(&mimeType, "mime", "m", "", "declared MIME type applied to every file")

	return cmd
}

func writeResult(out io.Writer, item *fileResult) {
	if item.Error != "" {
		fmt.Fprintf(out, "%s: error: %s\n", item.Path, item.Error)
		return
	}

	fmt.Fprintf(out, "%s: %s\n", item.Path, describe(item.Result))

	for inner := item.Result.Inner; inner != nil; inner = inner.Inner {
		fmt.Fprintf(out, "  inside: %s\n", describe(inner))
	}
}

func describe(result *sniff.Result) string {
	kind := "binary"
	if result.IsText {
		kind = "text"
	}

	detail := result.Encoding
	if result.IsBinary {
		detail = result.MimeType
	}

	if detail != "" {
		kind += " (" + detail + ")"
	}

	if result.Language != "" {
		kind += " [" + result.Language + "]"
	}

	return fmt.Sprintf("%s %.2f %s: %s", kind, result.Confidence, result.Rule, result.Reason)
}

// diffVerdict is the structured output of the diff command.
type diffVerdict struct {
	Path     string `json:"path"     yaml:"path"`
	IsBinary bool   `json:"isBinary" yaml:"isBinary"`
	Reason   string `json:"reason"   yaml:"reason"`
}

func (a *app) diffCmd() *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "diff [file]",
		Short: "Decide whether a diff read from a file or stdin should be hidden",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := cmd.InOrStdin()

			if len(args) == 1 && args[0] != "-" {
				file, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening diff: %w", err)
				}
				defer file.Close()

				input = file
			}

			data, err := io.ReadAll(input)
			if err != nil {
				return fmt.Errorf("reading diff: %w", err)
			}

			verdict := &diffVerdict{Path: filePath}
			verdict.IsBinary, verdict.Reason = staged.IsBinaryDiff(string(data), filePath, a.config.staged())

			return a.write(cmd.OutOrStdout(), verdict, func(out io.Writer) {
				if verdict.IsBinary {
					fmt.Fprintf(out, "binary: %s\n", verdict.Reason)
				} else {
					fmt.Fprintf(out, "text: %s\n", verdict.Reason)
				}
			})
		},
	}

	cmd.Flags().StringVarP(&filePath, "path", "p", "", "path of the diffed file, used for its extension")

	return cmd
}

func (a *app) stagedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "staged [repo]",
		Short: "Render staged changes as markdown with binary content hidden",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			repo, err := staged.Open(dir)
			if err != nil {
				return fmt.Errorf("opening repository: %w", err)
			}

			files, err := staged.Collect(repo, a.config.staged())
			if err != nil {
				return fmt.Errorf("collecting staged files: %w", err)
			}

			return a.write(cmd.OutOrStdout(), files, func(out io.Writer) {
				fmt.Fprintln(out, staged.Format(files))
			})
		},
	}
}

// write renders data in the configured format. text renders the plain output.
func (a *app) write(out io.Writer, data any, text func(io.Writer)) error {
	switch a.config.Format {
	case formatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
	case formatYAML:
		encoder := yaml.NewEncoder(out)
		defer encoder.Close()

		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
	default:
		text(out)
	}

	return nil
}
