// README: Route actions (copy to clipboard, open instructions) with failures surfaced as notifications.
package quote

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"go.uber.org/zap"

	"freightcalc/internal/locale"
)

type Navigator interface {
	Navigate(path string, params url.Values) error
}

type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
)

type Notification struct {
	Kind   NotificationKind `json:"kind"`
	Title  string           `json:"title"`
	Detail string           `json:"detail"`
}

type Notifier interface {
	Notify(n Notification)
}

// NotificationLog collects notifications so a response can carry them.
type NotificationLog struct {
	mu    sync.Mutex
	items []Notification
}

func (l *NotificationLog) Notify(n Notification) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, n)
}

func (l *NotificationLog) Items() []Notification {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Notification{}, l.items...)
}

// Dispatcher runs route actions. Its methods never fail past their own
// boundary: errors and panics from collaborators become error notifications.
type Dispatcher struct {
	logger *zap.Logger
}

func NewDispatcher(logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{logger: logger}
}

// CreateInstructions navigates to the instructions page for route.
func (d *Dispatcher) CreateInstructions(route BestPriceRoute, nav Navigator, notify Notifier, t locale.Translator) {
	data := map[string]any{"Mode": modeLabel(route, t)}
	err := guard(func() error {
		return nav.Navigate(InstructionsPath, InstructionsParams(route))
	})
	if err != nil {
		d.logger.Warn("create instructions failed", zap.String("route_id", route.ID), zap.Error(err))
		notify.Notify(Notification{
			Kind:   NotifyError,
			Title:  t.T("quote.instructions.error.title", data),
			Detail: t.T("quote.instructions.error.detail", data),
		})
		return
	}
	notify.Notify(Notification{
		Kind:   NotifySuccess,
		Title:  t.T("quote.instructions.created.title", data),
		Detail: t.T("quote.instructions.created.detail", data),
	})
}

// CopyRoute writes the copy text of route to the clipboard. It returns the
// text that was (or would have been) written.
func (d *Dispatcher) CopyRoute(ctx context.Context, route BestPriceRoute, index int, cb Clipboard, notify Notifier, t locale.Translator) string {
	text := FormatCopyText(route, index, t)
	data := map[string]any{"Option": index + 1}
	err := guard(func() error {
		return cb.WriteText(ctx, text)
	})
	if err != nil {
		d.logger.Warn("copy route failed", zap.String("route_id", route.ID), zap.Error(err))
		notify.Notify(Notification{
			Kind:   NotifyError,
			Title:  t.T("quote.copy.error.title", data),
			Detail: t.T("quote.copy.error.detail", data),
		})
		return text
	}
	notify.Notify(Notification{
		Kind:   NotifySuccess,
		Title:  t.T("quote.copy.success.title", data),
		Detail: t.T("quote.copy.success.detail", data),
	})
	return text
}

func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
