package components

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgress_RevealsOneSegmentPerTick(t *testing.T) {
	p := NewProgress([]string{"a", "b", "c"}, time.Second, false)
	assert.NotNil(t, p.Start(7))

	assert.NotNil(t, p.Update(ProgressTickMsg{Generation: 7}))
	assert.Equal(t, 1, p.Revealed())

	assert.NotNil(t, p.Update(ProgressTickMsg{Generation: 7}))
	assert.Equal(t, 2, p.Revealed())

	// the last segment does not re-arm
	assert.Nil(t, p.Update(ProgressTickMsg{Generation: 7}))
	assert.Equal(t, 3, p.Revealed())
	assert.InDelta(t, 1.0, p.Percent(), 0.001)

	assert.Nil(t, p.Update(ProgressTickMsg{Generation: 7}))
	assert.Equal(t, 3, p.Revealed())
}

func TestProgress_IgnoresOtherGenerations(t *testing.T) {
	p := NewProgress([]string{"a", "b"}, time.Second, false)
	p.Start(2)

	assert.Nil(t, p.Update(ProgressTickMsg{Generation: 1}))
	assert.Equal(t, 0, p.Revealed())
}

func TestProgress_StartResets(t *testing.T) {
	p := NewProgress([]string{"a", "b"}, time.Second, false)
	p.Start(1)
	p.Update(ProgressTickMsg{Generation: 1})

	p.Start(2)
	assert.Equal(t, 0, p.Revealed())
	assert.True(t, p.Running())
}

func TestProgress_StopDropsTicks(t *testing.T) {
	p := NewProgress([]string{"a", "b"}, time.Second, false)
	p.Start(1)
	p.Stop()

	assert.Nil(t, p.Update(ProgressTickMsg{Generation: 1}))
	assert.Equal(t, 0, p.Revealed())
}

func TestProgress_View(t *testing.T) {
	p := NewProgress([]string{"numerology", "kigaku"}, time.Second, false)
	p.Start(1)
	p.Update(ProgressTickMsg{Generation: 1})

	view := p.View("working")
	assert.Contains(t, view, "working")
	assert.Contains(t, view, "✓ numerology")
	assert.Contains(t, view, "· kigaku")
	assert.Less(t, strings.Index(view, "numerology"), strings.Index(view, "kigaku"))
}

func TestViewer_SetContentScrollsToTop(t *testing.T) {
	v := NewViewer(20, 2)
	v.SetContent(strings.Repeat("line\n", 10))
	v.Update(nil)

	assert.True(t, v.AtTop())
	assert.Contains(t, v.View(), "line")
}
