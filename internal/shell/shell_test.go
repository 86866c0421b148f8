package shell

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
)

func mockRunner(t *testing.T, captured *[][]string) CommandRunner {
	return func(ctx context.Context, args []string, stdout, stderr io.Writer) error {
		if captured != nil {
			*captured = append(*captured, args)
		}
		if len(args) == 0 {
			return fmt.Errorf("no command")
		}
		switch args[0] {
		case "version":
			fmt.Fprintln(stdout, "xlmatch v1-test")
			return nil
		case "broken":
			fmt.Fprintln(stderr, "something failed")
			return fmt.Errorf("broken")
		}
		fmt.Fprintln(stdout, "OK")
		return nil
	}
}

func TestNewSession(t *testing.T) {
	s, err := NewSession()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.CommandHistory) != 0 {
		t.Errorf("expected empty history, got %d entries", len(s.CommandHistory))
	}
	if s.HistoryFile == "" {
		t.Error("expected history file path to be set")
	}
	if len(s.KnownCommands) == 0 {
		t.Error("expected known commands to be populated")
	}
}

func TestEvalVersion(t *testing.T) {
	DefaultRunner = mockRunner(t, nil)
	defer func() { DefaultRunner = nil }()

	s, _ := NewSession()
	output, err := s.Eval(context.Background(), "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output, "v1-test") {
		t.Errorf("expected version output, got: %q", output)
	}
}

func TestEvalSurfacesStderr(t *testing.T) {
	DefaultRunner = mockRunner(t, nil)
	defer func() { DefaultRunner = nil }()

	s, _ := NewSession()
	_, err := s.Eval(context.Background(), "broken")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "something failed") {
		t.Errorf("expected stderr in error, got: %v", err)
	}
}

func TestEvalInjectsDefaultSource(t *testing.T) {
	var captured [][]string
	DefaultRunner = mockRunner(t, &captured)
	defer func() { DefaultRunner = nil }()

	s, _ := NewSession()
	s.DefaultSource = "lookup.xlsx"

	if _, err := s.Eval(context.Background(), "match --target t.xlsx --keys Dept --value Amount"); err != nil {
		t.Fatal(err)
	}
	if len(captured) != 1 {
		t.Fatalf("expected 1 invocation, got %d", len(captured))
	}
	if !containsFlag(captured[0], "--source") {
		t.Errorf("expected --source injected, got %v", captured[0])
	}

	// An explicit --source wins over the session default.
	captured = nil
	if _, err := s.Eval(context.Background(), "match --source other.xlsx"); err != nil {
		t.Fatal(err)
	}
	count := 0
	for _, a := range captured[0] {
		if a == "--source" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected a single --source flag, got %v", captured[0])
	}
}

func TestCompleteTopLevel(t *testing.T) {
	s, _ := NewSession()

	matches := s.Complete("ma")
	found := false
	for _, m := range matches {
		if m == "match" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected 'match' in completions, got %v", matches)
	}
}

func TestCompleteSubcommands(t *testing.T) {
	s, _ := NewSession()

	matches := s.Complete("inspect sh")
	if len(matches) != 1 || matches[0] != "sheets" {
		t.Errorf("expected [sheets], got %v", matches)
	}
}

func TestEvalWithoutRunner(t *testing.T) {
	DefaultRunner = nil
	s, _ := NewSession()
	if _, err := s.Eval(context.Background(), "version"); err == nil {
		t.Error("expected error when runner not configured")
	}
}
