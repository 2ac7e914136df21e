package controller

import (
	"context"
	"log/slog"

	"github.com/simp-lee/forumclient/internal/domain"
	"github.com/simp-lee/forumclient/internal/transport"
)

// Action describes one mutation against an item of a bound list.
//
// Pessimistic actions (the default, used for admin operations) set Update,
// or Do with Remove for deletions: the backend call runs first and local
// state changes only on success. Optimistic actions (reactions) set Patch
// and Do: the local patch applies immediately and rolls back if the call
// fails, except for HTTP_ERROR_409 which means the backend already agreed.
type Action[T domain.Identifiable] struct {
	Name       string
	ID         domain.ID
	Optimistic bool
	Remove     bool

	// Update performs the call of a pessimistic in-place mutation and
	// returns the updated entity.
	Update func(ctx context.Context) transport.Result[T]

	// Do performs the call of a removal or an optimistic mutation.
	Do func(ctx context.Context) transport.Result[struct{}]

	// Patch is the local transformation of an optimistic mutation.
	Patch func(T) T

	// SuccessMessage and ErrorMessage override the defaults derived from
	// Name. The server's error detail always wins over ErrorMessage.
	SuccessMessage string
	ErrorMessage   string
}

// Mutator applies actions to the items of a bound ListController and
// reports outcomes through a Notifier.
type Mutator[T domain.Identifiable] struct {
	list   *ListController[T]
	notify Notifier
	logger *slog.Logger
}

// NewMutator creates a Mutator over list. A nil notify falls back to the
// slog-backed notifier.
func NewMutator[T domain.Identifiable](list *ListController[T], notify Notifier, logger *slog.Logger) *Mutator[T] {
	if list == nil {
		panic("controller.NewMutator: list must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if notify == nil {
		notify = NewSlogNotifier(logger)
	}
	return &Mutator[T]{list: list, notify: notify, logger: logger}
}

// Apply runs the action and reconciles the bound list. It reports whether
// the action ultimately succeeded; an optimistic 409 counts as success.
func (m *Mutator[T]) Apply(ctx context.Context, a Action[T]) bool {
	if a.Optimistic {
		return m.applyOptimistic(ctx, a)
	}
	if a.Remove {
		return m.applyRemove(ctx, a)
	}
	return m.applyUpdate(ctx, a)
}

func (m *Mutator[T]) applyUpdate(ctx context.Context, a Action[T]) bool {
	res := a.Update(ctx)
	if !res.Success {
		m.fail(a, res.Err)
		return false
	}
	updated := res.Data
	m.list.PatchItem(a.ID, func(T) T { return updated })
	m.notify.Success(a.successMessage())
	return true
}

func (m *Mutator[T]) applyRemove(ctx context.Context, a Action[T]) bool {
	res := a.Do(ctx)
	if !res.Success {
		m.fail(a, res.Err)
		return false
	}
	m.list.RemoveItem(a.ID)
	m.notify.Success(a.successMessage())
	return true
}

func (m *Mutator[T]) applyOptimistic(ctx context.Context, a Action[T]) bool {
	snapshot, found := m.list.Item(a.ID)
	if found {
		m.list.PatchItem(a.ID, a.Patch)
	}

	res := a.Do(ctx)
	if res.Success {
		return true
	}
	if domain.IsConflict(res.Err) {
		// The backend already holds this state; the patched view is
		// correct, so no rollback and no notification.
		m.logger.Debug("optimistic action already applied",
			slog.String("action", a.Name), slog.Int64("id", a.ID))
		return true
	}

	if found {
		m.list.PatchItem(a.ID, func(T) T { return snapshot })
	}
	m.fail(a, res.Err)
	return false
}

func (m *Mutator[T]) fail(a Action[T], err *domain.APIError) {
	msg := a.ErrorMessage
	if msg == "" {
		msg = a.Name + " failed"
	}
	if err != nil && err.Message != "" {
		msg = err.Message
	}
	m.logger.Warn("mutation failed",
		slog.String("action", a.Name), slog.Int64("id", a.ID), slog.Any("error", err))
	m.notify.Error(msg)
}

func (a Action[T]) successMessage() string {
	if a.SuccessMessage != "" {
		return a.SuccessMessage
	}
	return a.Name + " succeeded"
}
