package geometry

// Locatable всё, у чего есть координаты на доске.
type Locatable interface {
	Coords() (x, y int)
}

func Dx(a, b Locatable) int {
	ax, _ := a.Coords()
	bx, _ := b.Coords()
	return bx - ax
}

func Dy(a, b Locatable) int {
	_, ay := a.Coords()
	_, by := b.Coords()
	return by - ay
}

// Orthogonal: a и b на одной горизонтали или вертикали.
func Orthogonal(a, b Locatable) bool {
	return Dx(a, b) == 0 || Dy(a, b) == 0
}

// Magnitude расстояние между a и b вдоль общей линии.
// Для пар по диагонали ok == false.
func Magnitude(a, b Locatable) (distance int, ok bool) {
	if !Orthogonal(a, b) {
		return 0, false
	}
	return abs(Dx(a, b)) + abs(Dy(a, b)), true
}

// Adjacent: соседи по вертикали или горизонтали.
func Adjacent(a, b Locatable) bool {
	d, ok := Magnitude(a, b)
	return ok && d == 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
