// Package hooks runs user commands around split and join operations.
package hooks

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/go-andiamo/splitter"
)

// InputFilePlaceholder is replaced by the file a post hook is about.
const InputFilePlaceholder = "%INPUTFILE%"

// Hooks holds the commands run before a run and after split or join.
type Hooks struct {
	PreRun    string `env:"PRERUN"    env-default:"" yaml:"prerun"`
	PostSplit string `env:"POSTSPLIT" env-default:"" yaml:"postsplit"`
	PostJoin  string `env:"POSTJOIN"  env-default:"" yaml:"postjoin"`
}

// GeneratePreRunCmd generates the pre run command.
func (h *Hooks) GeneratePreRunCmd() string {
	return h.PreRun
}

// GeneratePostSplitCmd generates the post split command for the given manifest.
func (h *Hooks) GeneratePostSplitCmd(manifest string) string {
	return strings.ReplaceAll(h.PostSplit, InputFilePlaceholder, manifest)
}

// GeneratePostJoinCmd generates the post join command for the given output file.
func (h *Hooks) GeneratePostJoinCmd(output string) string {
	return strings.ReplaceAll(h.PostJoin, InputFilePlaceholder, output)
}

// HasPreRun returns true if a pre run command is defined.
func (h *Hooks) HasPreRun() bool {
	return h.PreRun != ""
}

// HasPostSplit returns true if a post split command is defined.
func (h *Hooks) HasPostSplit() bool {
	return h.PostSplit != ""
}

// HasPostJoin returns true if a post join command is defined.
func (h *Hooks) HasPostJoin() bool {
	return h.PostJoin != ""
}

// ExecutePreRun executes the pre run command.
func (h *Hooks) ExecutePreRun(ctx context.Context) error {
	return execute(ctx, h.GeneratePreRunCmd())
}

// ExecutePostSplit executes the post split command.
func (h *Hooks) ExecutePostSplit(ctx context.Context, manifest string) error {
	return execute(ctx, h.GeneratePostSplitCmd(manifest))
}

// ExecutePostJoin executes the post join command.
func (h *Hooks) ExecutePostJoin(ctx context.Context, output string) error {
	return execute(ctx, h.GeneratePostJoinCmd(output))
}

// execute executes the given command.
func execute(ctx context.Context, command string) error {
	if command == "" {
		return nil
	}
	commandSplitter, err := splitter.NewSplitter(' ', splitter.SingleQuotes, splitter.DoubleQuotes)
	if err != nil {
		return fmt.Errorf("failed to create command splitter: %w", err)
	}
	trimmer := splitter.Trim("'\"")
	splitCmd, err := commandSplitter.Split(command, trimmer)
	if err != nil {
		return fmt.Errorf("failed to parse command '%s': %w", command, err)
	}
	args := splitCmd[:0]
	for _, a := range splitCmd {
		if a != "" {
			args = append(args, a)
		}
	}
	if len(args) == 0 {
		return nil
	}
	//nolint:gosec // G204: Command execution with user input is intentional for hook functionality
	out, err := exec.CommandContext(ctx, args[0], args[1:]...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to execute %s: %w (output: %s)", command, err, strings.TrimSpace(string(out)))
	}
	return nil
}
