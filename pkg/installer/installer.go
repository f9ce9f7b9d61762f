// Package installer hands validated specifier lists to an external
// package installer. It prefers uv when present and falls back to pip run
// through the current interpreter. Every specifier is validated before it
// appears in a subprocess argument list; rejected specifiers are reported
// back to the caller, never silently dropped.
package installer

import (
	"context"
	"os"
	"os/exec"

	"github.com/pyscout/pyscout/pkg/errors"
)

// Runner executes an external command. Split out so tests can intercept
// without spawning processes.
type Runner func(ctx context.Context, name string, args ...string) error

func execRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Options configures an Installer.
type Options struct {
	// Runner overrides subprocess execution. Defaults to exec.Command.
	Runner Runner

	// LookPath overrides binary discovery. Defaults to exec.LookPath.
	LookPath func(name string) (string, error)

	// Logger receives progress diagnostics. May be nil.
	Logger func(format string, args ...any)
}

// Installer installs package specifiers via uv or pip.
type Installer struct {
	run      Runner
	lookPath func(string) (string, error)
	logger   func(format string, args ...any)
}

// New creates an Installer.
func New(opts Options) *Installer {
	inst := &Installer{
		run:      opts.Runner,
		lookPath: opts.LookPath,
		logger:   opts.Logger,
	}
	if inst.run == nil {
		inst.run = execRunner
	}
	if inst.lookPath == nil {
		inst.lookPath = exec.LookPath
	}
	if inst.logger == nil {
		inst.logger = func(string, ...any) {}
	}
	return inst
}

// Result reports what an Install call did.
type Result struct {
	// Installed holds the specifiers handed to the installer.
	Installed []string

	// Rejected holds specifiers that failed validation and were never
	// passed on.
	Rejected []string

	// Tool names the installer used ("uv" or "pip").
	Tool string
}

// Install validates the given specifiers and installs the safe ones.
// Specifiers failing validation are collected in Result.Rejected. An
// empty input is a no-op; an input where nothing survives validation is
// an error.
func (i *Installer) Install(ctx context.Context, specs []string) (*Result, error) {
	res := &Result{}
	if len(specs) == 0 {
		return res, nil
	}

	var safe []string
	for _, spec := range specs {
		if err := errors.ValidateSpecifier(spec); err != nil {
			i.logger("rejected unsafe specifier %q: %v", spec, errors.UserMessage(err))
			res.Rejected = append(res.Rejected, spec)
			continue
		}
		safe = append(safe, spec)
	}

	if len(safe) == 0 {
		return res, errors.New(errors.ErrCodeInvalidSpecifier,
			"no valid packages to install after validation (%d rejected)", len(res.Rejected))
	}

	name, args := i.command(safe)
	res.Tool = name
	if name == "python3" || name == "python" {
		res.Tool = "pip"
	}

	i.logger("installing %d packages with %s", len(safe), res.Tool)
	if err := i.run(ctx, name, args...); err != nil {
		return res, errors.Wrap(errors.ErrCodeInternal, err, "package installation failed")
	}

	res.Installed = safe
	return res, nil
}

// command picks the installer invocation: uv when on PATH (adding
// --system outside a virtual environment), otherwise pip through the
// interpreter. Specifiers are passed as discrete argv entries; no shell
// is involved.
func (i *Installer) command(specs []string) (string, []string) {
	if _, err := i.lookPath("uv"); err == nil {
		args := []string{"pip", "install"}
		if !inVirtualEnv() {
			i.logger("no virtual environment detected, using --system for uv")
			args = append(args, "--system")
		}
		return "uv", append(args, specs...)
	}

	python := "python3"
	if _, err := i.lookPath(python); err != nil {
		python = "python"
	}
	return python, append([]string{"-m", "pip", "install"}, specs...)
}

func inVirtualEnv() bool {
	return os.Getenv("VIRTUAL_ENV") != "" || os.Getenv("CONDA_PREFIX") != ""
}
