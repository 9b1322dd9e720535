package view

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/almacen/internal/dom"
)

func TestModuleLoaderRunsOnce(t *testing.T) {
	reg := dom.NewRegistry()
	var runs atomic.Int32
	release := make(chan struct{})
	loader := NewModuleLoader(reg, map[string]Module{
		"ventas": func(ctx context.Context, r *dom.Registry) error {
			runs.Add(1)
			<-release
			return r.Define("vista-ventas", func() *dom.Element { return dom.NewElement("section") })
		},
	})

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- loader.Load(context.Background(), "ventas")
		}()
	}
	close(release)
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	require.NoError(t, loader.Load(context.Background(), "ventas"))
	require.Equal(t, int32(1), runs.Load())
	require.True(t, loader.Loaded("ventas"))
	require.True(t, reg.Defined("vista-ventas"))
}

func TestModuleLoaderRetriesAfterFailure(t *testing.T) {
	calls := 0
	boom := errors.New("db unavailable")
	loader := NewModuleLoader(dom.NewRegistry(), map[string]Module{
		"inventario": func(context.Context, *dom.Registry) error {
			calls++
			if calls == 1 {
				return boom
			}
			return nil
		},
	})

	err := loader.Load(context.Background(), "inventario")
	require.ErrorIs(t, err, boom)
	require.False(t, loader.Loaded("inventario"))

	require.NoError(t, loader.Load(context.Background(), "inventario"))
	require.Equal(t, 2, calls)
}

func TestModuleLoaderUnknownModule(t *testing.T) {
	loader := NewModuleLoader(dom.NewRegistry(), nil)
	err := loader.Load(context.Background(), "missing")
	require.ErrorIs(t, err, ErrModuleNotFound)
}

func TestModuleLoaderIgnoresCallerCancellation(t *testing.T) {
	loader := NewModuleLoader(dom.NewRegistry(), map[string]Module{
		"ventas": func(ctx context.Context, _ *dom.Registry) error { return ctx.Err() },
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, loader.Load(ctx, "ventas"))
	require.True(t, loader.Loaded("ventas"))
}
