package logs

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/reusee/dscope"
)

func TestLogger(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(new(Module)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		logger Logger,
	) {
		logger.Info("registered", "function", "add")
	})
	if !underSystemdService() && !strings.Contains(buf.String(), "function=add") {
		t.Fatalf("got %q", buf.String())
	}
}

func TestLevel(t *testing.T) {
	defer SetLevel(slog.LevelInfo)
	buf := new(bytes.Buffer)
	dscope.New(new(Module)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		logger Logger,
	) {
		logger.Debug("hidden")
		SetLevel(slog.LevelDebug)
		logger.Debug("shown")
	})
	if underSystemdService() {
		return
	}
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("got %q", buf.String())
	}
}

func TestToJournalKey(t *testing.T) {
	if k := toJournalKey("binding.function"); k != "BINDING_FUNCTION" {
		t.Fatalf("got %s", k)
	}
}
