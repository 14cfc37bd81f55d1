package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"reviewd/internal/ai"
	"reviewd/internal/cache"
	"reviewd/internal/config"
	"reviewd/internal/issue"
	"reviewd/internal/logging"
	"reviewd/internal/output"
	"reviewd/internal/providers"
	"reviewd/internal/review"
	"reviewd/internal/rules"
)

var (
	flagExtensions string
	flagExclude    string
	flagWorkers    int
	flagFormat     string
	flagOut        string
	flagFailOn     string
	flagRules      string
	flagAI         bool
	flagNoAI       bool
	flagProvider   string
	flagModel      string
	flagNoSecrets  bool
)

var reviewCmd = &cobra.Command{
	Use:   "review <path>",
	Short: "Review a file or directory",
	Long:  "Review runs every analysis engine over the given file or directory tree and prints the aggregated findings.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		applyFlags(&cfg)
		runReview(args[0], cfg)
		return nil
	},
}

func init() {
	reviewCmd.Flags().StringVar(&flagExtensions, "extensions", "", "Extension allow-list, comma-separated (e.g. .py,.go)")
	reviewCmd.Flags().StringVar(&flagExclude, "exclude", "", "Exclude globs, comma-separated")
	reviewCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Concurrent file workers")
	reviewCmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json)")
	reviewCmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	reviewCmd.Flags().StringVar(&flagFailOn, "fail-on", "", "Exit non-zero at or above this severity (none, low, medium, high)")
	reviewCmd.Flags().StringVar(&flagRules, "rules", "", "Extra rule pack (YAML)")
	reviewCmd.Flags().BoolVar(&flagAI, "ai", false, "Enable model augmentation")
	reviewCmd.Flags().BoolVar(&flagNoAI, "no-ai", false, "Disable model augmentation")
	reviewCmd.Flags().StringVar(&flagProvider, "provider", "", "Model provider (ollama, openai)")
	reviewCmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	reviewCmd.Flags().BoolVar(&flagNoSecrets, "no-secrets", false, "Skip the committed-credential scan")
}

// applyFlags layers command-line overrides on top of the loaded config.
func applyFlags(cfg *config.Config) {
	if flagExtensions != "" {
		cfg.Extensions = splitComma(flagExtensions)
	}
	if flagExclude != "" {
		cfg.Exclude = append(cfg.Exclude, splitComma(flagExclude)...)
	}
	if flagWorkers > 0 {
		cfg.Workers = flagWorkers
	}
	if flagFormat != "" {
		cfg.Format = flagFormat
	}
	if flagFailOn != "" {
		cfg.FailOn = flagFailOn
	}
	if flagRules != "" {
		cfg.RulesPack = flagRules
	}
	if flagAI {
		cfg.AI.Enabled = true
	}
	if flagNoAI {
		cfg.AI.Enabled = false
	}
	if flagProvider != "" {
		cfg.AI.Provider = flagProvider
	}
	if flagModel != "" {
		cfg.AI.Model = flagModel
	}
	if flagNoSecrets {
		cfg.Security.CheckSecrets = false
	}
}

func splitComma(s string) []string {
	var result []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

func runReview(path string, cfg config.Config) {
	log := logging.New(flagVerbose)
	defer func() { _ = log.Sync() }()

	registry := rules.Default()
	if cfg.RulesPack != "" {
		pack, err := rules.LoadPack(cfg.RulesPack)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading rule pack: %v\n", err)
			exitCode = ExitUsageError
			return
		}
		if err := registry.Merge(pack); err != nil {
			fmt.Fprintf(os.Stderr, "Error in rule pack: %v\n", err)
			exitCode = ExitUsageError
			return
		}
	}

	var augmentor *ai.Augmentor
	if cfg.AI.Enabled {
		completer, err := providers.New(cfg.AI)
		if err != nil {
			if providers.IsAuthError(err) {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				exitCode = ExitAuthError
				return
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitUsageError
			return
		}
		store, err := cache.New(cfg.AI.Cache.Enabled, cfg.AI.Cache.Dir, cfg.AI.Cache.TTLSeconds)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening cache: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}
		augmentor = ai.New(cfg.AI, completer, store, log)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orchestrator := review.NewOrchestrator(&cfg, registry, augmentor, log)
	session, err := orchestrator.Run(ctx, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if err := output.WriteSession(session, cfg.Format, flagOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if shouldFail(session, cfg.FailOn) {
		exitCode = ExitFindings
	}
}

// shouldFail applies the fail-on threshold to the finished session.
func shouldFail(session *review.Session, failOn string) bool {
	if failOn == "" || failOn == "none" {
		return false
	}
	max, ok := session.MaxSeverity()
	if !ok {
		return false
	}
	return issue.MeetsThreshold(max, failOn)
}
