package engine

import "gonum.org/v1/gonum/mat"

// transform maps world coordinates to device pixels. The y axis is flipped
// since devices have their origin at the top-left.
type transform struct {
	m *mat.Dense
}

func newTransform(st *State) transform {
	w, v, d := st.Window, st.Viewport, st.Device

	sx := span(v.dx()) / span(w.dx())
	sy := span(v.dy()) / span(w.dy())

	// world -> normalized device coordinates
	world := mat.NewDense(3, 3, []float64{
		sx, 0, v.XMin - w.XMin*sx,
		0, sy, v.YMin - w.YMin*sy,
		0, 0, 1,
	})

	// normalized device coordinates -> pixels
	device := mat.NewDense(3, 3, []float64{
		d.dx(), 0, d.XMin,
		0, -d.dy(), d.YMax,
		0, 0, 1,
	})

	var m mat.Dense
	m.Mul(device, world)

	return transform{m: &m}
}

// span guards against a zero-sized window.
func span(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

func (t transform) apply(x, y float64) (float64, float64) {
	var out mat.VecDense
	out.MulVec(t.m, mat.NewVecDense(3, []float64{x, y, 1}))
	return out.AtVec(0), out.AtVec(1)
}

// viewport returns the viewport in pixels as left, top, right, bottom.
func viewport(st *State) (l, t, r, b float64) {
	v, d := st.Viewport, st.Device

	l = d.XMin + v.XMin*d.dx()
	r = d.XMin + v.XMax*d.dx()
	t = d.YMax - v.YMax*d.dy()
	b = d.YMax - v.YMin*d.dy()
	return
}
