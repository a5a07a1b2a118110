package pdfs

// Layout unit is the millimetre.
const (
	Mm = 1.0
	Cm = 10.0
	Pt = 25.4 / 72 // one typographic point in mm

	// Epsilon is the tolerance of the row width contract
	Epsilon = 0.01
)
