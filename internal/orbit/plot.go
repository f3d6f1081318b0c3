package orbit

import "github.com/guptarohit/asciigraph"

// PlotTheta renders the orbit's poloidal-angle time series as an ASCII
// graph, in the style of the ensemble driver's terminal plots.
func (e *Evolution) PlotTheta(caption string) string {
	return asciigraph.Plot(e.Theta, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption(caption))
}

// PlotEnergy renders the orbit's energy time series, useful for a quick
// visual check of the conservation testable property.
func (e *Evolution) PlotEnergy(caption string) string {
	return asciigraph.Plot(e.Energy, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption(caption))
}

// PlotPoincare renders the ψp coordinate of a sequence of section
// intersections, giving a crude terminal view of a Poincaré map's radial
// structure.
func PlotPoincare(points []Intersection, caption string) string {
	psip := make([]float64, len(points))
	for i, p := range points {
		psip[i] = p.State[1]
	}
	return asciigraph.Plot(psip, asciigraph.Height(15), asciigraph.Width(80), asciigraph.Caption(caption))
}
