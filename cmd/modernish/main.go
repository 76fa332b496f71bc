// Package main provides the modernish CLI application entry point.
// modernish retrofits block-scoped local state, structured looping, and
// safe argument transformation onto a minimal command interpreter.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abiosoft/ishell/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mgree/modernish/internal/logger"
	"github.com/mgree/modernish/internal/shell"
	"github.com/mgree/modernish/internal/version"
)

var (
	logLevel string
	logFile  string
	testMode bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "modernish",
	Short: "modernish - block-scoped local state for a command interpreter",
	Long: `modernish is a minimal command interpreter retrofitted with block-scoped
local variables and options, structured looping, and safe argument
transformation. The 'local ... do ... done' construct saves global state,
applies temporary local values, runs its body exactly once, and restores
the saved state on every exit path.`,
	Run: runShell,
}

// shellCmd is the explicit form of the default behavior.
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start interactive shell mode",
	Long:  `Start the interactive modernish shell.`,
	Run:   runShell,
}

// batchCmd executes a script file without entering interactive mode.
var batchCmd = &cobra.Command{
	Use:   "batch <script.msh>",
	Short: "Execute a .msh script file in batch mode",
	Long: `Execute a .msh script file directly without entering interactive mode.
Useful for automation and predefined workflows.`,
	Args: cobra.ExactArgs(1),
	Run:  runBatch,
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(version.Get().String())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to file instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&testMode, "test-mode", false, "Run in deterministic test mode")

	if err := viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding log-level flag: %v\n", err)
		os.Exit(1)
	}
	if err := viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding log-file flag: %v\n", err)
		os.Exit(1)
	}
	if err := viper.BindPFlag("test-mode", rootCmd.PersistentFlags().Lookup("test-mode")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding test-mode flag: %v\n", err)
		os.Exit(1)
	}

	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(versionCmd)

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if err := logger.Configure(logLevel, logFile, testMode); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
}

func runShell(_ *cobra.Command, _ []string) {
	logger.Info("Starting modernish", "version", version.GetVersion())

	if err := shell.InitializeServices(testMode); err != nil {
		logger.Fatal("Failed to initialize services", "error", err)
	}

	sh := ishell.New()
	sh.SetPrompt("msh> ")

	// Remove built-in commands so every line reaches the interpreter.
	sh.DeleteCmd("exit")
	sh.DeleteCmd("help")

	sh.Println(fmt.Sprintf("modernish v%s", version.GetVersion()))
	sh.Println("Try: local x=1 -- a b do echo ${x} $1 $2 done")

	sh.NotFound(func(c *ishell.Context) {
		shell.ProcessInput(strings.Join(c.RawArgs, " "))
	})

	sh.Run()
}

func runBatch(_ *cobra.Command, args []string) {
	scriptPath := args[0]

	logger.Info("Starting modernish batch mode", "script", scriptPath)

	if err := validateScriptFile(scriptPath); err != nil {
		logger.Fatal("Script validation failed", "error", err)
	}

	if err := shell.InitializeServices(testMode); err != nil {
		logger.Fatal("Failed to initialize services", "error", err)
	}

	if err := executeBatchScript(scriptPath); err != nil {
		logger.Fatal("Script execution failed", "error", err)
	}

	logger.Info("Script executed successfully", "script", scriptPath)
}

func validateScriptFile(scriptPath string) error {
	if _, err := os.Stat(scriptPath); os.IsNotExist(err) {
		return fmt.Errorf("script file does not exist: %s", scriptPath)
	}

	if ext := filepath.Ext(scriptPath); ext != ".msh" {
		return fmt.Errorf("script file must have .msh extension, got: %s", ext)
	}

	return nil
}

func executeBatchScript(scriptPath string) error {
	file, err := os.Open(scriptPath)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	interp, err := shell.NewInterpreter()
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if status, err := interp.Execute(scanner.Text()); err != nil {
			return fmt.Errorf("line %d: status %d: %w", lineNo, status, err)
		}
	}
	return scanner.Err()
}
