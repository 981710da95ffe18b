// captrans is a caption translation assistant for Dynamics NAV / C/SIDE
// translation export files, with a persistent translation memory and optional
// machine translation.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/minios-linux/captrans/batch"
	"github.com/minios-linux/captrans/config"
	"github.com/minios-linux/captrans/confirm"
	"github.com/minios-linux/captrans/i18n"
	"github.com/minios-linux/captrans/langmeta"
	"github.com/minios-linux/captrans/logging"
	"github.com/minios-linux/captrans/memory"
	"github.com/minios-linux/captrans/mt"
	"github.com/minios-linux/captrans/navfile"
	"github.com/minios-linux/captrans/resolve"
	"github.com/minios-linux/captrans/settings"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flag
// ---------------------------------------------------------------------------

var rootDir string

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "captrans",
		Short: "Translate missing captions in Dynamics NAV export files",
		Long: `captrans — caption translation assistant for Dynamics NAV / C/SIDE.

Fills the missing work-language captions of translation export files. Every
caption is looked up in a per-language-pair translation memory first; the
value already present in the export or a machine translation is offered for
confirmation next, and manual entry is the last resort. Confirmed values are
stored in the memory and reused on every later run.

Commands:
  translate   Translate missing captions of export files
  memory      Inspect and merge translation memories
  auth        Manage machine-translation API keys
  languages   List the supported language ids

Machine-translation providers:
  deepl          DeepL API — API key
  google         Google Cloud Translation — API key
  openai         OpenAI — API key
  groq           Groq — API key
  ollama         Ollama local server
  custom-openai  Custom OpenAI-compatible endpoint`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flag, inherited by all subcommands
	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Directory holding .captrans.yaml and .env")

	root.AddCommand(
		newTranslateCmd(),
		newMemoryCmd(),
		newAuthCmd(),
		newLanguagesCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("captrans version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}

	return cmd
}

// ---------------------------------------------------------------------------
// translate
// ---------------------------------------------------------------------------

type translateArgs struct {
	base, work, dictionary        string
	useMT                         bool
	provider, model, apiKey       string
	baseURL, proxy                string
	timeout                       time.Duration
	encoding                      string
	strict, review, noColor       bool
	logFile, logLevel, uiLanguage string
}

func newTranslateCmd() *cobra.Command {
	var a translateArgs

	cmd := &cobra.Command{
		Use:   "translate FILE...",
		Short: "Translate missing captions of export files",
		Long: `Translate the missing work-language captions of C/SIDE translation
export files (all languages in one text file, lines like
T18-F2-P8629-A1031-L999:Kunde).

Settings come from .captrans.yaml/.captrans.toml in --root, then CAPTRANS_*
environment variables (also read from .env), then flags.

Answers in the confirmation dialogue:
  a  accept the proposal        k  keep the original text
  e  edit the proposal          c  capitalize every word
  q  stop the run (the memory is still saved)

Examples:
  # English to German, memory in the default data directory
  captrans translate --base 1033 --work 1031 tab18.txt tab36.txt

  # With DeepL suggestions
  captrans translate --base en-US --work de-DE --provider deepl tab18.txt

  # Re-check existing translations, failing on ambiguous captions
  captrans translate --base 1033 --work 1036 --review --strict export.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, a, args)
		},
	}

	// Languages and memory
	cmd.Flags().StringVar(&a.base, "base", "", "Base language id or tag (e.g. 1033, en-US)")
	cmd.Flags().StringVar(&a.work, "work", "", "Work language id or tag (e.g. 1031, de-DE)")
	cmd.Flags().StringVar(&a.dictionary, "dictionary", "", "Translation memory file or directory (default: data directory)")

	// Machine translation
	cmd.Flags().BoolVar(&a.useMT, "mt", true, "Ask the machine-translation provider when no suggestion exists")
	cmd.Flags().StringVar(&a.provider, "provider", "", "Provider: deepl, google, openai, groq, ollama, custom-openai")
	cmd.Flags().StringVar(&a.model, "model", "", "Model name (chat providers)")
	cmd.Flags().StringVar(&a.apiKey, "api-key", "", "API key (or CAPTRANS_API_KEY env var)")
	cmd.Flags().StringVar(&a.baseURL, "base-url", "", "Custom API base URL")
	cmd.Flags().StringVar(&a.proxy, "proxy", "", "HTTP/HTTPS proxy URL")
	cmd.Flags().DurationVar(&a.timeout, "timeout", 0, "Request timeout (0 = provider default)")

	// Files
	cmd.Flags().StringVar(&a.encoding, "encoding", "", "Export file encoding (default: ibm850)")
	cmd.Flags().BoolVar(&a.strict, "strict", false, "Fail on captions matching more than one line")
	cmd.Flags().BoolVar(&a.review, "review", false, "Also offer captions that already have a translation")

	// Output
	cmd.Flags().StringVar(&a.logFile, "log-file", "", "Write the diagnostic log to this file")
	cmd.Flags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.Flags().BoolVar(&a.noColor, "no-color", false, "Disable colored prompts")
	cmd.Flags().StringVar(&a.uiLanguage, "ui-language", "", "Language of the dialogue (default: from LANG)")

	_ = cmd.RegisterFlagCompletionFunc("provider", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		providers := mt.DefaultProviders()
		completions := make([]string, 0, len(providers))
		for _, id := range mt.ProviderIDs() {
			completions = append(completions, fmt.Sprintf("%s\t%s", id, providers[id].Name))
		}
		return completions, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// runOptions is the merged configuration of one translate run.
type runOptions struct {
	file   *config.File
	useMT  bool
	review bool
	strict bool
}

// mergeOptions layers project file, environment and flags. changed reports
// whether a flag was given on the command line.
func mergeOptions(file *config.File, a translateArgs, changed func(string) bool) runOptions {
	if file == nil {
		file = &config.File{Encoding: config.DefaultEncoding, LogLevel: "info"}
	}
	file.ApplyEnv()

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&file.BaseLanguage, a.base)
	set(&file.WorkLanguage, a.work)
	set(&file.Dictionary, a.dictionary)
	set(&file.Provider.ID, a.provider)
	set(&file.Provider.Model, a.model)
	set(&file.Provider.BaseURL, a.baseURL)
	set(&file.Provider.Proxy, a.proxy)
	set(&file.Encoding, a.encoding)
	set(&file.LogFile, a.logFile)
	set(&file.LogLevel, a.logLevel)

	opts := runOptions{
		file:   file,
		useMT:  file.Provider.ID != "",
		review: file.Review,
		strict: file.Strict,
	}
	if changed("mt") {
		opts.useMT = a.useMT && file.Provider.ID != ""
	}
	if changed("review") {
		opts.review = a.review
	}
	if changed("strict") {
		opts.strict = a.strict
	}
	return opts
}

func runTranslate(cmd *cobra.Command, a translateArgs, files []string) error {
	if err := config.LoadDotEnv(rootDir); err != nil {
		logWarning("%v", err)
	}
	projectFile, err := config.Load(rootDir)
	if err != nil {
		return err
	}
	if projectFile != nil {
		logInfo("Config: %s", projectFile.Path())
	}
	opts := mergeOptions(projectFile, a, cmd.Flags().Changed)
	cfg := opts.file

	if cfg.BaseLanguage == "" || cfg.WorkLanguage == "" {
		return errors.New("base and work language required (--base/--work or base_language/work_language)")
	}
	baseID, err := config.ParseLanguage(cfg.BaseLanguage)
	if err != nil {
		return fmt.Errorf("base language: %w", err)
	}
	workID, err := config.ParseLanguage(cfg.WorkLanguage)
	if err != nil {
		return fmt.Errorf("work language: %w", err)
	}
	setup, err := config.NewLanguageSetup(baseID, workID, cfg.Dictionary, opts.useMT)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer closeLog()

	i18n.Init(a.uiLanguage)

	mem, err := memory.Load(setup.DictionaryPath)
	if err != nil {
		return err
	}
	logInfo("%s → %s, memory %s (%s)", setup.BaseLanguageName, setup.WorkLanguageName, setup.DictionaryPath, mem.Summary())

	nav, err := navfile.New(setup, navfile.WithEncoding(cfg.Encoding), navfile.WithReview(opts.review))
	if err != nil {
		return err
	}

	engineOpts := []resolve.Option{
		resolve.WithWorkLanguage(setup.WorkLanguageID),
		resolve.WithTargetISO(setup.WorkLanguageISO),
		resolve.WithLogger(logger),
		resolve.WithNotifier(logWarning),
	}
	if setup.UseMT {
		tr, prov, err := newTranslator(cfg.Provider, a.apiKey, a.timeout)
		if err != nil {
			return err
		}
		logInfo("Machine translation: %s", prov.Name)
		engineOpts = append(engineOpts, resolve.WithTranslator(tr))
	}

	console := confirm.NewConsole(os.Stdin, os.Stdout, useColor(a.noColor))
	engine := resolve.New(mem, console, engineOpts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		// A second interrupt terminates without saving.
		signal.Stop(sigCh)
		logWarning("Interrupted, answer q (or press Ctrl-D) to stop and save the memory")
		cancel()
	}()

	driver := &batch.Driver{
		Exporter:   nav,
		Importer:   nav,
		Engine:     engine,
		Memory:     mem,
		MemoryPath: setup.DictionaryPath,
		Setup:      setup,
		Strict:     opts.strict,
		Logger:     logger,
		OnFile: func(file string, records int) {
			if records == 0 {
				logInfo("%s: nothing to translate", file)
				return
			}
			logInfo("%s: %d captions to translate", file, records)
		},
	}

	paths, err := expandFiles(files)
	if err != nil {
		return err
	}
	sum, runErr := driver.Run(ctx, paths)
	printSummary(sum, mem, setup.DictionaryPath)
	return runErr
}

// newTranslator builds the machine translator from the provider settings,
// the credential store and the --api-key/--timeout flags.
func newTranslator(p config.Provider, apiKey string, timeout time.Duration) (mt.Translator, mt.Provider, error) {
	if timeout == 0 {
		d, err := p.TimeoutDuration()
		if err != nil {
			return nil, mt.Provider{}, err
		}
		timeout = d
	}
	prov, err := mt.Lookup(p.ID, mt.Provider{
		BaseURL: settings.ResolveBaseURL(p.ID, p.BaseURL),
		APIKey:  settings.ResolveAPIKey(p.ID, apiKey),
		Model:   p.Model,
		Proxy:   p.Proxy,
		Timeout: timeout,
	})
	if err != nil {
		return nil, mt.Provider{}, err
	}
	tr, err := mt.New(prov)
	if err != nil {
		return nil, mt.Provider{}, fmt.Errorf("%w (run 'captrans auth set %s')", err, p.ID)
	}
	return tr, prov, nil
}

func useColor(noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

func printSummary(sum batch.Summary, mem *memory.Memory, memPath string) {
	fmt.Fprintln(os.Stderr)
	logInfo(i18n.N("%d caption resolved", "%d captions resolved", sum.Records), sum.Records)
	if sum.Records > 0 {
		for _, src := range resolve.Sources {
			n := sum.BySource[src]
			if n == 0 {
				continue
			}
			fmt.Fprintf(os.Stderr, "  %-10s %s  (%d)\n", src, progressBar(n*100/sum.Records, 20), n)
		}
	}
	if sum.Skipped > 0 {
		logInfo("%d captions without base text skipped", sum.Skipped)
	}
	if sum.Imported > 0 {
		logSuccess("%d of %d files updated", sum.Imported, sum.Files)
	}
	if sum.Aborted {
		logWarning("Stopped by user; the file in progress was not updated")
	}
	if sum.MemorySaved {
		logSuccess("Memory saved: %s (%s)", memPath, mem.Summary())
	}
}

// progressBar renders percent as a colored bar followed by the number.
func progressBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100

	color := colorYellow
	switch {
	case percent >= 80:
		color = colorGreen
	case percent < 20:
		color = colorRed
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s%s%s %3d%%", color, bar, colorReset, percent)
}

// ---------------------------------------------------------------------------
// memory
// ---------------------------------------------------------------------------

func newMemoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Inspect and merge translation memories",
		Long: `Inspect and merge translation memories.

A memory file is .csv (Key,Value columns) or .db/.sqlite (SQLite). Without a
path the default memory of --base/--work in the data directory is used.

Examples:
  captrans memory stats --base 1033 --work 1031
  captrans memory lookup dictionary.csv "Customer"
  captrans memory merge dictionary.csv colleague.csv
  captrans memory path --base en-US --work fr-FR`,
	}

	cmd.AddCommand(
		newMemoryStatsCmd(),
		newMemoryLookupCmd(),
		newMemoryMergeCmd(),
		newMemoryPathCmd(),
	)

	return cmd
}

// memoryPath returns args[0] or the default path for the language pair.
func memoryPath(args []string, base, work string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if base == "" || work == "" {
		return "", errors.New("memory file or --base/--work required")
	}
	baseID, err := config.ParseLanguage(base)
	if err != nil {
		return "", err
	}
	workID, err := config.ParseLanguage(work)
	if err != nil {
		return "", err
	}
	setup, err := config.NewLanguageSetup(baseID, workID, "", false)
	if err != nil {
		return "", err
	}
	return setup.DictionaryPath, nil
}

func newMemoryStatsCmd() *cobra.Command {
	var base, work string
	cmd := &cobra.Command{
		Use:   "stats [FILE]",
		Short: "Show memory size and untranslated share",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := memoryPath(args, base, work)
			if err != nil {
				return err
			}
			mem, err := memory.Load(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "\n%sTranslation memory%s\n", colorBlue, colorReset)
			fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))
			fmt.Fprintf(os.Stderr, "  %-12s %s\n", "file", path)
			fmt.Fprintf(os.Stderr, "  %-12s %s\n", "entries", mem.Summary())
			if mem.Len() > 0 {
				translated := mem.Len() - mem.Untranslated()
				fmt.Fprintf(os.Stderr, "  %-12s %s\n", "translated", progressBar(translated*100/mem.Len(), 30))
			}
			fmt.Fprintln(os.Stderr)
			return nil
		},
	}
	cmd.Flags().StringVar(&base, "base", "", "Base language id or tag")
	cmd.Flags().StringVar(&work, "work", "", "Work language id or tag")
	return cmd
}

func newMemoryLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup FILE TEXT",
		Short: "Print the stored translation of TEXT",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mem, err := memory.Load(args[0])
			if err != nil {
				return err
			}
			v, ok := mem.Lookup(args[1])
			if !ok {
				return fmt.Errorf("%q not in %s", args[1], args[0])
			}
			fmt.Println(v)
			return nil
		},
	}
}

func newMemoryMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge DEST SOURCE...",
		Short: "Add the entries of other memories to DEST",
		Long: `Add the entries of SOURCE memories to DEST. Entries already in DEST win,
so merging never changes a confirmed translation. Formats may be mixed
(e.g. merge a CSV export into a SQLite memory).`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest, err := memory.Load(args[0])
			if err != nil {
				return err
			}
			for _, src := range args[1:] {
				other, err := memory.Load(src)
				if err != nil {
					return err
				}
				added := dest.Merge(other)
				logInfo("%s: %d new entries", src, added)
			}
			saved, err := dest.Save(args[0])
			if err != nil {
				return err
			}
			if saved {
				logSuccess("Memory saved: %s (%s)", args[0], dest.Summary())
			} else {
				logInfo("Nothing new, %s unchanged", args[0])
			}
			return nil
		},
	}
}

func newMemoryPathCmd() *cobra.Command {
	var base, work string
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the default memory file of a language pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := memoryPath(nil, base, work)
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
	cmd.Flags().StringVar(&base, "base", "", "Base language id or tag")
	cmd.Flags().StringVar(&work, "work", "", "Work language id or tag")
	return cmd
}

// ---------------------------------------------------------------------------
// languages
// ---------------------------------------------------------------------------

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the supported language ids",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%-6s %-8s %-28s %s\n", "ID", "TAG", "NAME", "NATIVE")
			for _, id := range langmeta.IDs() {
				m, _ := langmeta.Lookup(id)
				fmt.Printf("%-6d %-8s %-28s %s\n", id, m.Tag, m.Name(), m.NativeName())
			}
		},
	}
}

// ---------------------------------------------------------------------------
// auth
// ---------------------------------------------------------------------------

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage machine-translation API keys",
		Long: `Manage API keys of machine-translation providers.

Keys are stored in auth.json in the data directory (0600). At run time the
key is taken from --api-key, then CAPTRANS_API_KEY, then the provider's own
variable (DEEPL_AUTH_KEY, GOOGLE_API_KEY, OPENAI_API_KEY, GROQ_API_KEY), then
the store.

Examples:
  captrans auth set deepl                  Paste a DeepL key
  captrans auth set custom-openai --base-url http://localhost:8080/v1
  captrans auth remove deepl               Remove the DeepL key
  captrans auth remove                     Remove all keys
  captrans auth list                       Show stored keys`,
	}

	cmd.AddCommand(
		newAuthSetCmd(),
		newAuthRemoveCmd(),
		newAuthListCmd(),
	)

	return cmd
}

// keyHelp lists where users obtain a key.
var keyHelp = map[string]string{
	mt.ProviderDeepL:  "https://www.deepl.com/your-account/keys",
	mt.ProviderGoogle: "https://console.cloud.google.com/apis/credentials",
	mt.ProviderOpenAI: "https://platform.openai.com/api-keys",
	mt.ProviderGroq:   "https://console.groq.com/keys",
}

func newAuthSetCmd() *cobra.Command {
	var key, baseURL string

	cmd := &cobra.Command{
		Use:   "set PROVIDER",
		Short: "Store an API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			providerID := args[0]
			prov, err := mt.Lookup(providerID, mt.Provider{})
			if err != nil {
				return err
			}

			if key == "" {
				fmt.Fprintf(os.Stderr, "\n%s%s — API Key Setup%s\n", colorBlue, prov.Name, colorReset)
				fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))
				if url := keyHelp[providerID]; url != "" {
					fmt.Fprintf(os.Stderr, "  Get your API key from: %s%s%s\n\n", colorGreen, url, colorReset)
				}
				existing := settings.Get(providerID)
				if existing != nil && existing.Key != "" {
					fmt.Fprintf(os.Stderr, "  Current key: %s%s%s\n", colorYellow, settings.MaskKey(existing.Key), colorReset)
					fmt.Fprintf(os.Stderr, "  Enter new key to replace, or press Enter to keep: ")
				} else {
					fmt.Fprintf(os.Stderr, "  Enter API key: ")
				}
				scanner := bufio.NewScanner(os.Stdin)
				if !scanner.Scan() {
					return errors.New("no input received")
				}
				key = strings.TrimSpace(scanner.Text())
				if key == "" {
					if existing != nil && existing.Key != "" {
						logInfo("Keeping existing key")
						return nil
					}
					if providerID != mt.ProviderCustomOpenAI && providerID != mt.ProviderOllama {
						return errors.New("no API key provided")
					}
				}
			}

			if err := settings.SetAPIKey(providerID, key, baseURL); err != nil {
				return fmt.Errorf("saving API key: %w", err)
			}
			logSuccess("%s credentials saved to %s", prov.Name, settings.FilePath())
			return nil
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "API key (prompted when omitted)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Endpoint for custom-openai/ollama")
	return cmd
}

func newAuthRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [PROVIDER]",
		Short: "Remove stored credentials (all when no provider is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := args
			if len(ids) == 0 {
				ids = settings.Providers()
			}
			for _, id := range ids {
				if err := settings.Remove(id); err != nil {
					return fmt.Errorf("removing %s credentials: %w", id, err)
				}
				logSuccess("%s credentials removed", id)
			}
			return nil
		},
	}
}

func newAuthListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show stored credentials",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stderr, "\n%sStored Credentials%s (%s)\n", colorBlue, colorReset, settings.FilePath())
			fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))

			for _, id := range mt.ProviderIDs() {
				entry := settings.Get(id)
				switch {
				case entry != nil && entry.Key != "":
					status := fmt.Sprintf("%sconfigured%s (key: %s)", colorGreen, colorReset, settings.MaskKey(entry.Key))
					if entry.BaseURL != "" {
						status += fmt.Sprintf("\n  %14s endpoint: %s", "", entry.BaseURL)
					}
					fmt.Fprintf(os.Stderr, "  %-14s %s\n", id, status)
				case entry != nil && entry.BaseURL != "":
					fmt.Fprintf(os.Stderr, "  %-14s %sconfigured%s (no key)\n  %14s endpoint: %s\n", id, colorGreen, colorReset, "", entry.BaseURL)
				default:
					fmt.Fprintf(os.Stderr, "  %-14s %snot configured%s\n", id, colorRed, colorReset)
				}
			}

			fmt.Fprintf(os.Stderr, "\n  %sEnvironment Variables%s\n", colorYellow, colorReset)
			envKey := os.Getenv(settings.EnvAPIKey)
			if envKey != "" {
				fmt.Fprintf(os.Stderr, "  %s: %s%s%s (overrides stored keys)\n", settings.EnvAPIKey, colorGreen, settings.MaskKey(envKey), colorReset)
			} else {
				fmt.Fprintf(os.Stderr, "  %s: %snot set%s\n", settings.EnvAPIKey, colorRed, colorReset)
			}
			fmt.Fprintln(os.Stderr)
		},
	}
}

// ---------------------------------------------------------------------------
// Shared helpers
// ---------------------------------------------------------------------------

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// expandFiles replaces directory arguments by the .txt files they contain.
func expandFiles(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		if fileExists(arg) {
			out = append(out, arg)
			continue
		}
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			continue
		}
		matches, err := filepath.Glob(filepath.Join(arg, "*.txt"))
		if err != nil {
			return nil, err
		}
		out = append(out, matches...)
	}
	return out, nil
}
