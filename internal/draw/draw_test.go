package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/galaga/internal/config"
	"github.com/tomz197/galaga/internal/entity"
	"github.com/tomz197/galaga/internal/sim"
)

func setCount(c *Canvas) int {
	n := 0
	for _, p := range c.pixels {
		if p {
			n++
		}
	}
	return n
}

func TestFillRect(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.FillRect(2, 2, 4, 6)
	assert.Equal(t, 8, setCount(c))
	assert.True(t, c.pixels[2*10+2])
	assert.True(t, c.pixels[5*10+3])
	assert.False(t, c.pixels[6*10+3])
}

func TestFillRectThinStillVisible(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)
	c.FillRect(50, 50, 50.5, 60)
	assert.Positive(t, setCount(c))
}

func TestRenderOnlyWritesChanges(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	var buf bytes.Buffer

	c.Set(Point{X: 1, Y: 0})
	require.NoError(t, c.Render(&buf))
	assert.Equal(t, 8, strings.Count(buf.String(), "\033["), "first render writes every cell")
	assert.Contains(t, buf.String(), string(BlockUpperHalf))

	buf.Reset()
	require.NoError(t, c.Render(&buf))
	assert.Empty(t, buf.String())

	buf.Reset()
	c.Clear()
	c.Set(Point{X: 1, Y: 1})
	require.NoError(t, c.Render(&buf))
	assert.Equal(t, "\033[1;2H"+string(BlockLowerHalf), buf.String())

	buf.Reset()
	c.ForceRedraw()
	require.NoError(t, c.Render(&buf))
	assert.Equal(t, 8, strings.Count(buf.String(), "\033["))
}

func TestRenderAppliesOffset(t *testing.T) {
	c := NewScaledCanvas(2, 1, 2, 2)
	c.SetOffset(3, 4)
	c.Set(Point{X: 0, Y: 0})
	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), "\033[5;4H"))
}

func TestChunkWriterFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 1)
	cw.WriteAt(1, 1, "hi")
	cw.WriteAbs(1, 1, "x")
	cw.WriteString(strings.Repeat("z", maxChunkSize*2))
	require.NoError(t, cw.Flush())

	s := out.String()
	assert.True(t, strings.HasPrefix(s, "\033[2;3Hhi\033[1;1Hx"))
	assert.Len(t, s, len("\033[2;3Hhi\033[1;1Hx")+maxChunkSize*2)

	out.Reset()
	require.NoError(t, cw.Flush())
	assert.Empty(t, out.String())
}

func TestSceneToCanvas(t *testing.T) {
	sc := NewScene(NewScaledCanvas(60, 45, 600, 900), sim.Bounds{Width: 600, Height: 900})
	assert.Equal(t, Point{X: 300, Y: 450}, sc.ToCanvas(0, 0))
	assert.Equal(t, Point{X: 0, Y: 0}, sc.ToCanvas(-300, 450))
	assert.Equal(t, Point{X: 600, Y: 900}, sc.ToCanvas(300, -450))
}

func TestSceneDrawsEachRole(t *testing.T) {
	bounds := sim.Bounds{Width: 600, Height: 900}
	for _, role := range []entity.Role{
		entity.RolePlayer,
		entity.RoleEnemy,
		entity.RoleLaserFromPlayer,
		entity.RoleLaserFromEnemy,
		entity.RoleExplosion,
	} {
		t.Run(role.String(), func(t *testing.T) {
			c := NewScaledCanvas(60, 45, bounds.Width, bounds.Height)
			NewScene(c, bounds).Draw([]sim.Sprite{{Role: role, W: 60, H: 60, Frame: 4}})
			assert.Positive(t, setCount(c))

			// Everything lands around the window center
			col, row := c.LogicalToCell(Point{X: 300, Y: 450})
			assert.Equal(t, 31, col)
			assert.Equal(t, 23, row)
		})
	}
}

func TestSceneSkipsRequests(t *testing.T) {
	bounds := sim.Bounds{Width: 600, Height: 900}
	c := NewScaledCanvas(60, 45, bounds.Width, bounds.Height)
	NewScene(c, bounds).Draw([]sim.Sprite{{Role: entity.RoleExplosionRequest, W: 60, H: 60}})
	assert.Zero(t, setCount(c))
}

func TestExplosionRadius(t *testing.T) {
	assert.Zero(t, ExplosionRadius(32, -1))
	assert.Zero(t, ExplosionRadius(32, config.ExplosionLen))

	peak := 0.0
	for f := 0; f < config.ExplosionLen; f++ {
		r := ExplosionRadius(32, f)
		assert.Positive(t, r)
		assert.LessOrEqual(t, r, 32.0)
		peak = max(peak, r)
	}
	assert.Greater(t, peak, ExplosionRadius(32, 0))
	assert.Greater(t, peak, ExplosionRadius(32, config.ExplosionLen-1))
}
