package studio

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/color-studio/api/colors"
)

func TestExtractionRun(t *testing.T) {
	e := NewExtraction()
	swatches, err := e.Run(context.Background(), []byte{255, 0, 0, 255, 255, 0, 0, 255})
	require.NoError(t, err)
	require.Len(t, swatches, 1)
	assert.Equal(t, 2, swatches[0].Count)

	_, err = e.Run(context.Background(), nil)
	assert.ErrorIs(t, err, colors.ErrEmptyInput)
}

func TestExtractionLastSubmittedWins(t *testing.T) {
	started := make(chan struct{})
	e := &Extraction{extract: func(ctx context.Context, pix []byte) ([]colors.Swatch, error) {
		if pix[0] == 1 {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return colors.Extract(ctx, pix)
	}}

	var wg sync.WaitGroup
	var staleErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, staleErr = e.Run(context.Background(), []byte{1, 0, 0, 255})
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("first extraction never started")
	}

	swatches, err := e.Run(context.Background(), []byte{0, 0, 255, 255})
	require.NoError(t, err)
	assert.Equal(t, colors.RGB(0, 0, 255), swatches[0].Color)

	wg.Wait()
	assert.ErrorIs(t, staleErr, ErrSuperseded)
}

func TestExtractionCallerCancel(t *testing.T) {
	e := NewExtraction()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Run(ctx, []byte{1, 2, 3, 4})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractionsDropIdleKeys(t *testing.T) {
	p := NewExtractions()
	for i := 0; i < 1000; i++ {
		_, err := p.Run(context.Background(), fmt.Sprintf("client-%d", i), []byte{255, 0, 0, 255})
		require.NoError(t, err)
	}
	assert.Equal(t, 0, p.Len())

	_, err := p.Run(context.Background(), "client-0", nil)
	assert.ErrorIs(t, err, colors.ErrEmptyInput)
	assert.Equal(t, 0, p.Len())
}

func TestExtractionsSupersedePerKey(t *testing.T) {
	started := make(chan struct{})
	p := NewExtractions()
	p.extract = func(ctx context.Context, pix []byte) ([]colors.Swatch, error) {
		if pix[0] == 1 {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return colors.Extract(ctx, pix)
	}

	var wg sync.WaitGroup
	var staleErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, staleErr = p.Run(context.Background(), "a", []byte{1, 0, 0, 255})
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("first extraction never started")
	}
	assert.Equal(t, 1, p.Len())

	other, err := p.Run(context.Background(), "b", []byte{0, 255, 0, 255})
	require.NoError(t, err)
	assert.Equal(t, colors.RGB(0, 255, 0), other[0].Color)
	assert.Equal(t, 1, p.Len(), "a different key does not cancel a")

	swatches, err := p.Run(context.Background(), "a", []byte{0, 0, 255, 255})
	require.NoError(t, err)
	assert.Equal(t, colors.RGB(0, 0, 255), swatches[0].Color)

	wg.Wait()
	assert.ErrorIs(t, staleErr, ErrSuperseded)
	assert.Equal(t, 0, p.Len())
}
