package out

import (
	"fmt"
	"io"

	sleepout "sleeptracker/internal/modules/sleep/port/out"
	"sleeptracker/internal/platform/config"
)

type ClosableNightStore interface {
	sleepout.NightStore
	io.Closer
}

// NewNightStoreByEngine opens the store named by engine, one of the
// config.Engine* values as normalized by config.Load.
func NewNightStoreByEngine(engine, dbPath string) (ClosableNightStore, error) {
	switch engine {
	case "", config.EngineSQLite:
		store, err := NewSQLiteNightStore(dbPath)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.EngineMemory:
		return NewMemoryNightStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store engine: %s", engine)
	}
}
