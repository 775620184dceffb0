package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/marcelocantos/cotsh/internal/cap"
)

// recorder runs steps by name: "ok" succeeds, "fail" fails, "exit" asks the
// shell to terminate.
type recorder struct {
	ran []string
}

func (r *recorder) run(_ context.Context, line string) error {
	r.ran = append(r.ran, line)
	switch line {
	case "fail":
		return errors.New("failed")
	case "exit":
		return &cap.ExitError{Code: 2}
	}
	return nil
}

func TestExecuteCommand(t *testing.T) {
	tests := []struct {
		line    string
		want    []string
		wantErr bool
	}{
		{"ok; ok", []string{"ok", "ok"}, false},
		{"fail; ok", []string{"fail", "ok"}, false},
		{"ok; fail", []string{"ok", "fail"}, true},
		{"fail && ok", []string{"fail"}, true},
		{"ok && ok", []string{"ok", "ok"}, false},
		{"ok || fail", []string{"ok"}, false},
		{"fail || ok", []string{"fail", "ok"}, false},
		{"fail && ok; ok", []string{"fail", "ok"}, false},
		{"ok || fail && ok", []string{"ok", "ok"}, false},
		{"ok; ; ok", []string{"ok", "", "ok"}, false},
	}
	for _, tt := range tests {
		r := &recorder{}
		err := ExecuteCommand(context.Background(), Parse(tt.line), r.run)
		if (err != nil) != tt.wantErr {
			t.Errorf("%q: err = %v, wantErr %v", tt.line, err, tt.wantErr)
		}
		if diff := cmp.Diff(tt.want, r.ran); diff != "" {
			t.Errorf("%q: steps run mismatch (-want +got):\n%s", tt.line, diff)
		}
	}
}

func TestExecuteCommandStopsOnExit(t *testing.T) {
	r := &recorder{}
	err := ExecuteCommand(context.Background(), Parse("ok; exit; ok"), r.run)
	code, ok := cap.IsExit(err)
	if !ok || code != 2 {
		t.Fatalf("err = %v, want exit 2", err)
	}
	if diff := cmp.Diff([]string{"ok", "exit"}, r.ran); diff != "" {
		t.Errorf("steps run mismatch (-want +got):\n%s", diff)
	}
}

func TestExecuteCommandCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &recorder{}
	err := ExecuteCommand(ctx, Parse("ok; ok"), r.run)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if len(r.ran) != 0 {
		t.Errorf("ran %v after cancellation", r.ran)
	}
}
