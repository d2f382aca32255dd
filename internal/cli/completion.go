// Package cli provides the command-line interface for spectree.
package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// shellType represents supported shell types.
type shellType string

// Sentinel errors for completion commands.
var (
	errUnsupportedShell = errors.New("unsupported shell (supported: zsh, bash, fish)")
	errNoShellDetected  = errors.New("could not detect shell from $SHELL environment variable; use --shell flag")
)

const (
	shellZsh     shellType = "zsh"
	shellBash    shellType = "bash"
	shellFish    shellType = "fish"
	shellUnknown shellType = "unknown"
)

// AddCompletionCommand adds the completion command with subcommands to the root command.
// This replaces Cobra's default completion command with a custom one that includes
// an "install" subcommand for easy setup.
func AddCompletionCommand(rootCmd *cobra.Command) {
	// Disable Cobra's default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	completionCmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completions",
		Long: `Generate shell completion scripts for spectree.

To install completions automatically:
  spectree completion install

To generate completion scripts manually:
  spectree completion bash
  spectree completion zsh
  spectree completion fish
  spectree completion powershell`,
	}

	generators := []struct {
		use         string
		loadHint    string
		installable bool
		gen         func(root *cobra.Command, w io.Writer) error
	}{
		{"bash", "source <(spectree completion bash)", true,
			func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletion(w) }},
		{"zsh", "source <(spectree completion zsh)", true,
			func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) }},
		{"fish", "spectree completion fish | source", true,
			func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) }},
		{"powershell", "spectree completion powershell | Out-String | Invoke-Expression", false,
			func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) }},
	}
	for _, g := range generators {
		completionCmd.AddCommand(newGenerateCompletionCmd(g.use, g.loadHint, g.installable, g.gen))
	}
	completionCmd.AddCommand(newInstallCompletionCmd())

	rootCmd.AddCommand(completionCmd)
}

// newGenerateCompletionCmd creates one shell-specific generation subcommand.
func newGenerateCompletionCmd(shell, loadHint string, installable bool, gen func(*cobra.Command, io.Writer) error) *cobra.Command {
	long := fmt.Sprintf(`Generate %s completion script for spectree.

To load completions in current session:
  %s`, shell, loadHint)
	if installable {
		long += fmt.Sprintf(`

To install completions permanently:
  spectree completion install --shell %s`, shell)
	}

	return &cobra.Command{
		Use:                   shell,
		Short:                 fmt.Sprintf("Generate %s completion script", shell),
		Long:                  long,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return gen(cmd.Root(), cmd.OutOrStdout())
		},
	}
}

func newInstallCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install shell completions automatically",
		Long: `Install shell completions for spectree.

This command auto-detects your shell and writes the completion script to
that shell's user completion directory. Fish picks the script up on its
own; for zsh and bash the command prints the line to add to your shell
rc file. You can override the detected shell with the --shell flag.

Supported shells: zsh, bash, fish

Examples:
  spectree completion install              # Auto-detect shell
  spectree completion install --shell zsh  # Force zsh`,
		RunE: runCompletionInstall,
	}

	cmd.Flags().String("shell", "", "Shell to install completions for (zsh, bash, fish)")
	return cmd
}

// runCompletionInstall handles the completion install subcommand.
func runCompletionInstall(cmd *cobra.Command, _ []string) error {
	shellFlag, _ := cmd.Flags().GetString("shell")
	quiet, _ := cmd.Flags().GetBool("quiet")

	// Detect or validate shell
	var shell shellType
	if shellFlag != "" {
		shell = shellType(shellFlag)
		if shell != shellZsh && shell != shellBash && shell != shellFish {
			return fmt.Errorf("%s: %w", shellFlag, errUnsupportedShell)
		}
	} else {
		shell = detectShell()
		if shell == shellUnknown {
			return errNoShellDetected
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("could not determine home directory: %w", err)
	}

	completionPath, err := installCompletionsToDir(cmd.Root(), home, shell)
	if err != nil {
		return err
	}

	if !quiet {
		cmd.Printf("Detected shell: %s\n", shell)
		cmd.Printf("  Created %s\n", completionPath)
		if hint := completionTargetFor(shell).rcHint; hint != "" {
			cmd.Println()
			cmd.Println("Add this line to " + rcFileForShell(shell) + " if it is not there yet:")
			cmd.Println("  " + hint)
		}
	}

	return nil
}

// detectShell detects the user's shell from the $SHELL environment variable.
func detectShell() shellType {
	shellPath := os.Getenv("SHELL")
	if shellPath == "" {
		return shellUnknown
	}

	switch filepath.Base(shellPath) {
	case "zsh":
		return shellZsh
	case "bash":
		return shellBash
	case "fish":
		return shellFish
	default:
		return shellUnknown
	}
}

// rcFileForShell returns the name of the shell's rc file for hint messages.
func rcFileForShell(shell shellType) string {
	switch shell {
	case shellZsh:
		return "~/.zshrc"
	case shellBash:
		return "~/.bashrc"
	case shellFish:
		return "~/.config/fish/config.fish"
	case shellUnknown:
		return ""
	}
	return ""
}

// completionTarget describes where a shell expects user completion scripts.
type completionTarget struct {
	dir      []string // path segments under the home directory
	filename string
	rcHint   string // line to add to the shell rc, empty when auto-loaded
}

// completionTargetFor returns the install target for a shell.
func completionTargetFor(shell shellType) completionTarget {
	switch shell {
	case shellZsh:
		return completionTarget{
			dir:      []string{".zsh", "completions"},
			filename: "_spectree",
			rcHint:   "fpath=(~/.zsh/completions $fpath) && autoload -U compinit && compinit",
		}
	case shellBash:
		return completionTarget{
			dir:      []string{".bash_completion.d"},
			filename: "spectree",
			rcHint:   "source ~/.bash_completion.d/spectree",
		}
	case shellFish:
		return completionTarget{
			dir:      []string{".config", "fish", "completions"},
			filename: "spectree.fish",
		}
	case shellUnknown:
		return completionTarget{}
	}
	return completionTarget{}
}

// installCompletionsToDir generates the completion script for shell and
// writes it under home. This function is extracted for testability.
func installCompletionsToDir(rootCmd *cobra.Command, home string, shell shellType) (string, error) {
	target := completionTargetFor(shell)
	if target.filename == "" {
		return "", errUnsupportedShell
	}

	completionsDir := filepath.Join(append([]string{home}, target.dir...)...)
	if err := os.MkdirAll(completionsDir, 0o750); err != nil {
		return "", fmt.Errorf("could not create %s: %w", completionsDir, err)
	}

	var buf bytes.Buffer
	var err error
	switch shell {
	case shellZsh:
		err = rootCmd.GenZshCompletion(&buf)
	case shellBash:
		err = rootCmd.GenBashCompletion(&buf)
	case shellFish:
		err = rootCmd.GenFishCompletion(&buf, true)
	case shellUnknown:
		return "", errUnsupportedShell
	}
	if err != nil {
		return "", fmt.Errorf("could not generate %s completions: %w", shell, err)
	}

	completionPath := filepath.Join(completionsDir, target.filename)
	if err := os.WriteFile(completionPath, buf.Bytes(), 0o600); err != nil {
		return "", fmt.Errorf("could not write %s: %w", completionPath, err)
	}

	return completionPath, nil
}
