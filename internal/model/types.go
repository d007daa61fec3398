package model

import (
	"context"

	"github.com/aic/aic/internal/model1"
)

// Listener represents a watcher listener.
type Listener[R any] interface {
	// DataChanged notifies the listener a refresh replaced the data.
	DataChanged([]R)

	// LoadFailed notifies the load failed. The previous data is kept.
	LoadFailed(error)
}

// TableModel defines the interface for a table model that fetches data.
type TableModel[R any] interface {
	// Table returns the table fed by the model.
	Table() *model1.Table[R]

	// Watch starts watching/refreshing data periodically.
	Watch(context.Context) error

	// Refresh fetches data from the source immediately.
	Refresh(context.Context) error

	// Stop stops watching.
	Stop()

	AddListener(Listener[R])
	RemoveListener(Listener[R])
}
