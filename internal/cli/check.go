package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/realitycheck/internal/client"
	"github.com/ppiankov/realitycheck/internal/factcheck"
	"github.com/ppiankov/realitycheck/internal/fetch"
	"github.com/ppiankov/realitycheck/internal/model"
	"github.com/ppiankov/realitycheck/internal/render"
	"github.com/ppiankov/realitycheck/internal/server"
)

var (
	checkFile   string
	checkURL    string
	checkLocal  bool
	checkExpand bool
	outJSON     string
	outMD       string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [text]",
	Short: "Fact-check text, a file or a web page",
	Long: `Check submits text to the fact-check endpoint and prints the verdicts.

The text is taken from the arguments, --file, --url or standard input, in
that order of precedence (--url and --file win over arguments). Input shorter
than the minimum length (20 characters by default) is rejected locally.

By default the text goes to a running 'realitycheck serve' endpoint. With
--local the completion provider is called in-process instead.

Example:
  realitycheck check "The Great Wall of China is visible from the Moon."
  realitycheck check --file article.txt --expand
  realitycheck check --url https://example.com/article --md report.md
  pbpaste | realitycheck check --local --json result.json`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Input flags
	checkCmd.Flags().StringVarP(&checkFile, "file", "f", "", "read text from file")
	checkCmd.Flags().StringVarP(&checkURL, "url", "u", "", "fetch a web page and check its readable text")

	// Transport flags
	checkCmd.Flags().String("endpoint", "", "fact-check endpoint URL (default from config)")
	checkCmd.Flags().BoolVar(&checkLocal, "local", false, "call the completion provider in-process instead of the endpoint")
	_ = viper.BindPFlag("client.endpoint", checkCmd.Flags().Lookup("endpoint"))

	// Output flags
	checkCmd.Flags().BoolVarP(&checkExpand, "expand", "e", false, "show explanations and sources for every claim")
	checkCmd.Flags().StringVar(&outJSON, "json", "", "write the result JSON to path")
	checkCmd.Flags().StringVar(&outMD, "md", "", "write a Markdown report to path")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	text, err := readInput(ctx, cfg, args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	var analyzer client.Analyzer
	if checkLocal {
		checker, err := newChecker(cfg, newLogger())
		if err != nil {
			return err
		}
		analyzer = localAnalyzer{checker: checker}
	} else {
		analyzer = client.New(cfg.Client.Endpoint, cfg.Client.Timeout)
	}

	errOut := cmd.ErrOrStderr()
	session := client.NewSession(analyzer, &stderrNotifier{w: errOut}, cfg.Client.MinTextLength)

	if verbose {
		target := cfg.Client.Endpoint
		if checkLocal {
			target = "local " + cfg.LLM.Provider + "/" + cfg.LLM.Model
		}
		fmt.Fprintf(errOut, "⚙️  Analyzing %d characters via %s...\n", len([]rune(text)), target)
	}

	if err := session.Submit(ctx, text); err != nil {
		return fmt.Errorf("%w: %w", ErrReported, err)
	}

	resp := session.Current()
	if resp.Fallback {
		fmt.Fprintf(errOut, "⚠ The model reply could not be parsed; showing a low-confidence fallback result\n")
	}
	fmt.Fprintln(errOut)

	cards := render.NewCards(len(resp.Result.Claims))
	if checkExpand {
		cards = render.ExpandedCards(len(resp.Result.Claims))
	}
	if err := render.Text(cmd.OutOrStdout(), resp.Result, cards); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	return writeOutputs(errOut, resp)
}

// readInput resolves the text to check from flags, arguments or stdin
func readInput(ctx context.Context, cfg *model.Config, args []string, stdin io.Reader) (string, error) {
	switch {
	case checkURL != "":
		if verbose {
			fmt.Fprintf(os.Stderr, "Fetching: %s\n", checkURL)
		}
		page, err := fetch.NewFetcher(cfg.Fetch).Fetch(ctx, checkURL)
		if err != nil {
			return "", fmt.Errorf("fetch %s: %w", checkURL, err)
		}
		if page.Truncated && verbose {
			fmt.Fprintf(os.Stderr, "Warning: page truncated to %d bytes (fetch.max_body_bytes)\n", cfg.Fetch.MaxBodyBytes)
		}
		text, err := fetch.ExtractText(page.HTML)
		if err != nil {
			return "", fmt.Errorf("extract text: %w", err)
		}
		return text, nil

	case checkFile != "":
		data, err := os.ReadFile(checkFile)
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}
		return string(data), nil

	case len(args) > 0:
		return strings.Join(args, " "), nil

	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
}

func writeOutputs(w io.Writer, resp *client.Response) error {
	if outJSON != "" {
		var buf bytes.Buffer
		if err := json.Indent(&buf, resp.Raw, "", "  "); err != nil {
			return fmt.Errorf("format JSON: %w", err)
		}
		buf.WriteByte('\n')
		if err := os.WriteFile(outJSON, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
		fmt.Fprintf(w, "✓ Wrote JSON: %s\n", outJSON)
	}

	if outMD != "" {
		if err := os.WriteFile(outMD, []byte(render.Markdown(resp.Result)), 0o644); err != nil {
			return fmt.Errorf("write markdown: %w", err)
		}
		fmt.Fprintf(w, "✓ Wrote Markdown: %s\n", outMD)
	}

	return nil
}

// stderrNotifier prints session notifications
type stderrNotifier struct {
	w io.Writer
}

func (n *stderrNotifier) Error(msg string) {
	fmt.Fprintf(n.w, "✗ %s\n", msg)
}

func (n *stderrNotifier) Success(msg string) {
	fmt.Fprintf(n.w, "✓ %s\n", msg)
}

// localAnalyzer runs the checker in-process with the endpoint's error mapping
type localAnalyzer struct {
	checker *factcheck.Checker
}

func (a localAnalyzer) Analyze(ctx context.Context, text string) (*client.Response, error) {
	outcome, err := a.checker.Check(ctx, text)
	if err != nil {
		status, msg := server.ErrorStatus(err)
		return nil, &client.APIError{StatusCode: status, Message: msg}
	}

	body, err := outcome.Body()
	if err != nil {
		return nil, err
	}

	return &client.Response{
		Result:   outcome.Result,
		Raw:      body,
		Fallback: outcome.Fallback,
	}, nil
}
