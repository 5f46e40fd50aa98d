package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type coord struct{ x, y int }

func (c coord) Coords() (int, int) { return c.x, c.y }

func TestDeltas(t *testing.T) {
	a, b := coord{1, 4}, coord{3, 2}
	assert.Equal(t, 2, Dx(a, b))
	assert.Equal(t, -2, Dy(a, b))
	assert.Equal(t, -2, Dx(b, a))
}

func TestMagnitude(t *testing.T) {
	tests := []struct {
		name     string
		a, b     coord
		distance int
		ok       bool
	}{
		{name: "same row", a: coord{0, 3}, b: coord{4, 3}, distance: 4, ok: true},
		{name: "same column", a: coord{2, 5}, b: coord{2, 1}, distance: 4, ok: true},
		{name: "same point", a: coord{2, 2}, b: coord{2, 2}, distance: 0, ok: true},
		{name: "diagonal", a: coord{0, 0}, b: coord{1, 1}, distance: 0, ok: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			distance, ok := Magnitude(test.a, test.b)
			assert.Equal(t, test.ok, ok)
			assert.Equal(t, test.distance, distance)
			assert.Equal(t, test.ok, Orthogonal(test.a, test.b))
		})
	}
}

func TestAdjacent(t *testing.T) {
	assert.True(t, Adjacent(coord{1, 1}, coord{1, 2}))
	assert.True(t, Adjacent(coord{1, 1}, coord{0, 1}))
	assert.False(t, Adjacent(coord{1, 1}, coord{2, 2}))
	assert.False(t, Adjacent(coord{1, 1}, coord{1, 3}))
	assert.False(t, Adjacent(coord{1, 1}, coord{1, 1}))
}
