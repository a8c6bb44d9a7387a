package render

import (
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-view/internal/crop"
	viewimage "image-view/internal/image"
	"image-view/pkg/geometry"
)

func TestPolicy(t *testing.T) {
	tests := []struct {
		name     string
		policy   Policy
		resizing bool
		region   geometry.Size
		want     viewimage.Quality
	}{
		{"small source", Policy{}, false, geometry.NewSize(511, 511), viewimage.QualityFast},
		{"one axis at threshold", Policy{}, false, geometry.NewSize(512, 10), viewimage.QualityHigh},
		{"large source", Policy{}, false, geometry.NewSize(4000, 3000), viewimage.QualityHigh},
		{"resizing large source", Policy{}, true, geometry.NewSize(4000, 3000), viewimage.QualityFast},
		{"custom threshold", Policy{Threshold: 100}, false, geometry.NewSize(150, 50), viewimage.QualityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.For(tt.resizing, tt.region))
		})
	}
}

func solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	viewimage.Fill(img, c)
	return img
}

func TestCacheEnsure(t *testing.T) {
	img := solid(100, 50, color.White)
	src := Source{Image: img, Region: geometry.NewRect(0, 0, 100, 50)}
	key := Key{Generation: 1, Size: geometry.NewSize(200, 200)}
	bg := color.RGBA{1, 2, 3, 255}

	var c Cache
	frame := c.Ensure(key, src, viewimage.QualityFast, bg)
	require.NotNil(t, frame)
	assert.Equal(t, image.Rect(0, 0, 200, 200), frame.Bounds())
	// 100x50 fits as 200x100 at y=50.
	assert.Equal(t, bg, frame.RGBAAt(100, 10))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, frame.RGBAAt(100, 100))
	assert.Equal(t, 1, c.Builds())

	assert.Same(t, frame, c.Ensure(key, src, viewimage.QualityHigh, bg))
	assert.Equal(t, 1, c.Builds())

	resized := key
	resized.Size = geometry.NewSize(300, 200)
	assert.NotSame(t, frame, c.Ensure(resized, src, viewimage.QualityFast, bg))
	assert.Equal(t, 2, c.Builds())

	cropped := resized
	cropped.Crop = crop.Of(geometry.NewRect(0, 0, 50, 50))
	c.Ensure(cropped, Source{Image: img, Region: geometry.NewRect(0, 0, 50, 50)}, viewimage.QualityFast, bg)
	assert.Equal(t, 3, c.Builds())

	c.Invalidate()
	assert.False(t, c.Valid())
	c.Ensure(cropped, Source{Image: img, Region: geometry.NewRect(0, 0, 50, 50)}, viewimage.QualityFast, bg)
	assert.Equal(t, 4, c.Builds())
}

func TestCacheEnsureEmpty(t *testing.T) {
	var c Cache
	src := Source{Image: solid(10, 10, color.White), Region: geometry.NewRect(0, 0, 10, 10)}
	assert.Nil(t, c.Ensure(Key{Size: geometry.NewSize(0, 100)}, src, viewimage.QualityFast, color.Black))
	assert.Nil(t, c.Ensure(Key{Size: geometry.NewSize(100, 100)}, Source{}, viewimage.QualityFast, color.Black))
	assert.False(t, c.Valid())
}

// manualClock records scheduled callbacks and fires them on demand.
type manualClock struct {
	mu      sync.Mutex
	pending []*manualTimer
}

type manualTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{d: d, f: f}
	c.pending = append(c.pending, t)
	return t
}

// fireAll runs every scheduled callback, including stopped ones, to check
// that stale callbacks are ignored.
func (c *manualClock) fireAll() {
	c.mu.Lock()
	pending := c.pending
	c.pending = nil
	c.mu.Unlock()
	for _, t := range pending {
		t.f()
	}
}

func TestSettler(t *testing.T) {
	var clock manualClock
	settled := 0
	s := NewSettler(0, clock.AfterFunc, func() { settled++ })

	assert.False(t, s.Resizing())
	s.Poke()
	s.Poke()
	s.Poke()
	assert.True(t, s.Resizing())

	require.Len(t, clock.pending, 3)
	assert.Equal(t, DefaultSettleDelay, clock.pending[0].d)
	assert.True(t, clock.pending[0].stopped)
	assert.True(t, clock.pending[1].stopped)
	assert.False(t, clock.pending[2].stopped)

	clock.fireAll()
	assert.False(t, s.Resizing())
	assert.Equal(t, 1, settled, "only the latest callback settles")

	clock.fireAll()
	assert.Equal(t, 1, settled)
}

func TestSettlerStop(t *testing.T) {
	var clock manualClock
	settled := 0
	s := NewSettler(50*time.Millisecond, clock.AfterFunc, func() { settled++ })

	s.Poke()
	s.Stop()
	assert.False(t, s.Resizing())
	clock.fireAll()
	assert.Equal(t, 0, settled)

	s.Poke()
	assert.False(t, s.Resizing(), "stopped settler ignores resize events")
	assert.Empty(t, clock.pending, "no timer scheduled after Stop")
}

func TestSettlerRealClock(t *testing.T) {
	done := make(chan struct{})
	s := NewSettler(time.Millisecond, nil, func() { close(done) })
	s.Poke()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("settle callback did not run")
	}
	assert.False(t, s.Resizing())
}

func TestQualityAcrossSettle(t *testing.T) {
	var clock manualClock
	s := NewSettler(0, clock.AfterFunc, nil)
	var p Policy
	large := geometry.NewSize(2000, 1000)

	s.Poke()
	assert.Equal(t, viewimage.QualityFast, p.For(s.Resizing(), large))
	clock.fireAll()
	assert.Equal(t, viewimage.QualityHigh, p.For(s.Resizing(), large))
	assert.Equal(t, viewimage.QualityFast, p.For(s.Resizing(), geometry.NewSize(100, 100)))
}

func TestDarkenRegions(t *testing.T) {
	display := geometry.NewRect(0, 0, 100, 100)

	got := DarkenRegions(display, geometry.NewRect(20, 30, 40, 50))
	assert.Equal(t, []geometry.Rect{
		geometry.NewRect(0, 0, 100, 30),
		geometry.NewRect(0, 80, 100, 20),
		geometry.NewRect(0, 30, 20, 50),
		geometry.NewRect(60, 30, 40, 50),
	}, got)

	area := 0
	for _, r := range got {
		area += r.Width * r.Height
	}
	assert.Equal(t, 100*100-40*50, area)

	assert.Equal(t, []geometry.Rect{display}, DarkenRegions(display, geometry.Rect{}))
	assert.Empty(t, DarkenRegions(display, display))
	assert.Len(t, DarkenRegions(display, geometry.NewRect(0, 0, 50, 100)), 1)
}

func TestGridLines(t *testing.T) {
	lines := GridLines(geometry.NewRect(10, 20, 400, 200))
	require.Len(t, lines, 6)
	assert.Contains(t, lines, Line{From: geometry.Pt(210, 20), To: geometry.Pt(210, 220)})
	assert.Contains(t, lines, Line{From: geometry.Pt(10, 120), To: geometry.Pt(410, 120)})
	assert.Contains(t, lines, Line{From: geometry.Pt(110, 20), To: geometry.Pt(110, 220)})
	assert.Nil(t, GridLines(geometry.Rect{}))
}

func TestFillRectsBlends(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	viewimage.Fill(dst, color.White)
	FillRects(dst, []geometry.Rect{geometry.NewRect(0, 0, 2, 4)}, SelectionShade)

	shaded := dst.RGBAAt(0, 0)
	assert.Less(t, shaded.R, uint8(255))
	assert.Greater(t, shaded.R, uint8(0))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, dst.RGBAAt(3, 0))

	DrawLines(dst, []Line{{From: geometry.Pt(3, 0), To: geometry.Pt(3, 4)}}, color.Black)
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, dst.RGBAAt(3, 2))
}
