package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"keynote-mcp/internal/agent"
	"keynote-mcp/internal/cli"
	"keynote-mcp/internal/hook/handlers"
	"keynote-mcp/internal/llm/openai"
	kmcp "keynote-mcp/internal/mcp"
	"keynote-mcp/internal/script"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

var (
	configPath string
	verbose    bool
	noColor    bool
	jsonOutput bool
	maxTurns   int
	launch     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "keynote-mcp",
		Short:         "Keynote automation over the Model Context Protocol",
		Long:          "Serves tools that create and edit Apple Keynote presentations through AppleScript.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: search ./keynote-mcp.yaml, ./configs, ~/.config/keynote-mcp)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tools over stdio",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	toolsCmd := &cobra.Command{
		Use:   "tools",
		Short: "List the available tools",
		Args:  cobra.NoArgs,
		RunE:  runTools,
	}
	toolsCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print descriptors with input schemas as JSON")

	callCmd := &cobra.Command{
		Use:   "call <tool> [arguments-json]",
		Short: "Call one tool and print its response",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runCall,
	}

	chatCmd := &cobra.Command{
		Use:   "chat [task]",
		Short: "Let a chat model drive Keynote to complete a task",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runChat,
	}
	chatCmd.Flags().IntVar(&maxTurns, "max-turns", 0, "Maximum conversation turns (default from config)")
	chatCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	doctorCmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the local setup",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
	doctorCmd.Flags().BoolVar(&launch, "launch", false, "Launch Keynote if it is not running")

	rootCmd.AddCommand(serveCmd, toolsCmd, callCmd, chatCmd, doctorCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := signalContext()
	defer cancel()

	serverVersion := a.cfg.Server.Version
	if serverVersion == "" {
		serverVersion = version
	}
	srv := kmcp.NewServer(a.dispatcher, kmcp.Options{
		Name:    a.cfg.Server.Name,
		Version: serverVersion,
		Logger:  a.log.With("component", "mcp"),
	})
	return srv.RunStdio(ctx)
}

func runTools(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	tools := a.dispatcher.ListTools()
	out := cmd.OutOrStdout()

	if jsonOutput {
		b, err := json.MarshalIndent(tools, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode tools: %w", err)
		}
		fmt.Fprintln(out, string(b))
		return nil
	}

	for _, t := range tools {
		fmt.Fprintf(out, "%-32s %s\n", t.Name, t.Description)
	}
	fmt.Fprintf(out, "\n%d tool(s)\n", len(tools))
	return nil
}

func runCall(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	var toolArgs map[string]any
	if len(args) == 2 {
		if err := json.Unmarshal([]byte(args[1]), &toolArgs); err != nil {
			return fmt.Errorf("arguments must be a JSON object: %w", err)
		}
	}

	ctx, cancel := signalContext()
	defer cancel()

	resp := a.dispatcher.CallTool(ctx, args[0], toolArgs)
	fmt.Fprintln(cmd.OutOrStdout(), resp.Text)
	if !resp.OK {
		return fmt.Errorf("%s failed", args[0])
	}
	return nil
}

func runChat(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	llmCfg := a.cfg.LLM
	if llmCfg.APIKey == "" {
		return fmt.Errorf("OpenAI API key required (set OPENAI_API_KEY or llm.api_key)")
	}

	if len(a.cfg.Hooks.ToolConfirm) > 0 {
		a.hooks.Register(handlers.NewToolConfirmHandler(a.cfg.Hooks.ToolConfirm...))
	}

	turns := maxTurns
	if turns == 0 {
		turns = llmCfg.MaxTurns
	}

	a.log.Debug("creating LLM client (model: %s)", llmCfg.Model)
	llmClient := openai.NewClient(llmCfg.APIKey, llmCfg.Model, llmCfg.BaseURL)

	ag := agent.NewBaseAgent("keynote", agent.SystemPrompt, llmClient, a.dispatcher, &agent.Config{
		Model:       llmCfg.Model,
		Temperature: llmCfg.Temperature,
		MaxTokens:   4096,
		MaxTurns:    turns,
	})

	w := cli.NewWriter(cmd.OutOrStdout())
	w.SetColorMode(!noColor)
	transcript := cli.NewTranscript(w, verbose)

	ctx, cancel := signalContext()
	defer cancel()

	out, err := ag.Run(ctx, &agent.Input{
		Task:     strings.Join(args, " "),
		MaxTurns: turns,
		Logger:   a.log.With("component", "agent"),
		Observer: transcript,
	})
	if err != nil {
		return err
	}

	failed := 0
	for _, tc := range out.ToolCalls {
		if !tc.Response.OK {
			failed++
		}
	}
	transcript.Summary(len(out.ToolCalls), failed)
	return nil
}

func runDoctor(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	ctx, cancel := signalContext()
	defer cancel()

	problems := 0
	check := func(name string, err error, detail string) {
		if err != nil {
			problems++
			fmt.Fprintf(out, "❌ %-12s %v\n", name, err)
			return
		}
		fmt.Fprintf(out, "✅ %-12s %s\n", name, detail)
	}

	check("config", nil, fmt.Sprintf("log level %s, script timeout %s", a.cfg.Logging.Level, a.cfg.Automation.Timeout()))

	scratch, err := os.MkdirTemp("", "keynote-mcp-doctor-")
	if err == nil {
		defer os.RemoveAll(scratch)
		err = a.runner.Compile(ctx, script.KeynoteVersion(), filepath.Join(scratch, "version.scpt"))
	}
	check("compiler", err, a.cfg.Automation.Compiler+" accepts generated scripts")

	probe := a.service.Probe
	if launch {
		probe = a.service.EnsureRunning
	}
	status, err := probe(ctx)
	switch {
	case err != nil:
		check("keynote", err, "")
	case !status.Running:
		check("keynote", nil, "not running (use --launch to start it)")
	default:
		check("keynote", nil, "running, version "+status.Version)
	}

	if a.service.HasImages() {
		check("unsplash", nil, "image tools enabled")
	} else {
		check("unsplash", nil, "image tools disabled (UNSPLASH_KEY not set)")
	}

	check("server", selfCheck(ctx, len(a.dispatcher.ListTools())), "stdio server lists every tool")

	if problems > 0 {
		return fmt.Errorf("%d check(s) failed", problems)
	}
	return nil
}

// selfCheck starts this binary as a stdio server and compares its tool
// list against the local registry
func selfCheck(ctx context.Context, want int) error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	serveArgs := []string{"serve"}
	if configPath != "" {
		serveArgs = append(serveArgs, "--config", configPath)
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	c, err := kmcp.ConnectCommand(ctx, exe, serveArgs...)
	if err != nil {
		return err
	}
	defer c.Close()

	if got := len(c.Tools()); got != want {
		return fmt.Errorf("server listed %d tools, expected %d", got, want)
	}
	return nil
}
