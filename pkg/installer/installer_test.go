package installer

import (
	"context"
	"errors"
	"testing"
)

type capturedRun struct {
	name string
	args []string
}

func fakeInstaller(lookPathHits map[string]bool, runErr error) (*Installer, *[]capturedRun) {
	var runs []capturedRun
	inst := New(Options{
		Runner: func(_ context.Context, name string, args ...string) error {
			runs = append(runs, capturedRun{name: name, args: args})
			return runErr
		},
		LookPath: func(name string) (string, error) {
			if lookPathHits[name] {
				return "/usr/bin/" + name, nil
			}
			return "", errors.New("not found")
		},
	})
	return inst, &runs
}

func TestInstallRejectsShellMetacharacters(t *testing.T) {
	inst, runs := fakeInstaller(map[string]bool{"uv": true}, nil)

	res, err := inst.Install(context.Background(), []string{
		"requests",
		"evil;rm -rf /",
		"bad`tick`",
		"sub$(shell)",
	})
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if len(res.Rejected) != 3 {
		t.Errorf("Rejected = %v, want 3 entries", res.Rejected)
	}
	if len(res.Installed) != 1 || res.Installed[0] != "requests" {
		t.Errorf("Installed = %v, want [requests]", res.Installed)
	}

	for _, run := range *runs {
		for _, arg := range run.args {
			if arg != "requests" && (arg == "evil;rm -rf /" || arg == "bad`tick`" || arg == "sub$(shell)") {
				t.Errorf("unsafe specifier reached argv: %q", arg)
			}
		}
	}
}

func TestInstallAllRejectedIsError(t *testing.T) {
	inst, runs := fakeInstaller(map[string]bool{"uv": true}, nil)

	_, err := inst.Install(context.Background(), []string{"only;bad"})
	if err == nil {
		t.Fatal("Install() with no valid packages succeeded, want error")
	}
	if len(*runs) != 0 {
		t.Errorf("installer invoked despite empty safe set: %v", *runs)
	}
}

func TestInstallEmptyInputNoop(t *testing.T) {
	inst, runs := fakeInstaller(map[string]bool{"uv": true}, nil)

	res, err := inst.Install(context.Background(), nil)
	if err != nil {
		t.Fatalf("Install(nil) error = %v", err)
	}
	if len(res.Installed) != 0 || len(*runs) != 0 {
		t.Errorf("Install(nil) ran something: %+v, %v", res, *runs)
	}
}

func TestInstallPrefersUV(t *testing.T) {
	inst, runs := fakeInstaller(map[string]bool{"uv": true}, nil)

	res, err := inst.Install(context.Background(), []string{"requests"})
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if res.Tool != "uv" {
		t.Errorf("Tool = %q, want uv", res.Tool)
	}
	if len(*runs) != 1 || (*runs)[0].name != "uv" {
		t.Fatalf("runs = %v, want one uv invocation", *runs)
	}
	args := (*runs)[0].args
	if args[0] != "pip" || args[1] != "install" {
		t.Errorf("uv args = %v", args)
	}
}

func TestInstallFallsBackToPip(t *testing.T) {
	inst, runs := fakeInstaller(map[string]bool{"python3": true}, nil)

	res, err := inst.Install(context.Background(), []string{"requests"})
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if res.Tool != "pip" {
		t.Errorf("Tool = %q, want pip", res.Tool)
	}
	if len(*runs) != 1 || (*runs)[0].name != "python3" {
		t.Fatalf("runs = %v, want one python3 invocation", *runs)
	}
	args := (*runs)[0].args
	if len(args) < 3 || args[0] != "-m" || args[1] != "pip" || args[2] != "install" {
		t.Errorf("pip args = %v", args)
	}
}

func TestInstallSubprocessFailure(t *testing.T) {
	inst, _ := fakeInstaller(map[string]bool{"uv": true}, errors.New("exit status 1"))

	if _, err := inst.Install(context.Background(), []string{"requests"}); err == nil {
		t.Error("Install() with failing subprocess succeeded, want error")
	}
}
