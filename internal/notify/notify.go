// Package notify delivers user-visible messages.
package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/nikolayk812/rocketcart/internal/port"
)

type logNotifier struct {
	log *slog.Logger
}

// NewLog writes notifications to the structured log at WARN level.
func NewLog(log *slog.Logger) port.Notifier {
	return &logNotifier{log: log}
}

func (n *logNotifier) Error(ctx context.Context, message string) {
	n.log.WarnContext(ctx, "user notification", slog.String("message", message))
}

type consoleNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsole prints notifications for a terminal user, one per line.
func NewConsole(out io.Writer) port.Notifier {
	return &consoleNotifier{out: out}
}

func (n *consoleNotifier) Error(_ context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	_, _ = fmt.Fprintf(n.out, "error: %s\n", message)
}

type multi []port.Notifier

func Multi(notifiers ...port.Notifier) port.Notifier {
	return multi(notifiers)
}

func (m multi) Error(ctx context.Context, message string) {
	for _, n := range m {
		n.Error(ctx, message)
	}
}
