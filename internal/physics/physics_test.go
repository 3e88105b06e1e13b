package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlapLaserOnEnemy(t *testing.T) {
	laser := NewBox(0, 0, Size{W: 9, H: 54})
	enemy := NewBox(0, 0, Size{W: 103, H: 84}.Scaled(0.5, 0.5))

	r, ok := Overlap(laser, enemy)
	require.True(t, ok)
	assert.InDelta(t, -4.5, r.MinX, 1e-9)
	assert.InDelta(t, 4.5, r.MaxX, 1e-9)
	assert.InDelta(t, -21, r.MinY, 1e-9)
	assert.InDelta(t, 21, r.MaxY, 1e-9)
}

func TestOverlapEdges(t *testing.T) {
	a := NewBox(0, 0, Size{W: 10, H: 10})

	tests := []struct {
		name string
		b    Box
		want bool
	}{
		{"separated x", NewBox(20, 0, Size{W: 10, H: 10}), false},
		{"separated y", NewBox(0, -20, Size{W: 10, H: 10}), false},
		{"touching", NewBox(10, 0, Size{W: 10, H: 10}), false},
		{"barely overlapping", NewBox(9.9, 0, Size{W: 10, H: 10}), true},
		{"contained", NewBox(1, 1, Size{W: 2, H: 2}), true},
		{"zero size inside", NewBox(0, 0, Size{}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Collide(a, tt.b))
			assert.Equal(t, tt.want, Collide(tt.b, a), "overlap must be symmetric")
		})
	}
}

func TestOutsideBounds(t *testing.T) {
	assert.False(t, OutsideBounds(0, 0, 300, 450, 200))
	assert.False(t, OutsideBounds(500, 650, 300, 450, 200))
	assert.True(t, OutsideBounds(500.1, 0, 300, 450, 200))
	assert.True(t, OutsideBounds(0, -650.1, 300, 450, 200))
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5, Distance(0, 0, 3, 4), 1e-12)
}
