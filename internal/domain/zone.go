package domain

// Field coordinates are normalised to [0, 100] on both axes.
const (
	FieldMin = 0.0
	FieldMax = 100.0
)

// Zone is an axis-aligned rectangle on the pitch. Bounds are strict:
// a zone must have non-zero width and height.
type Zone struct {
	XMin float64 `json:"x_min" validate:"gte=0,lte=100"`
	XMax float64 `json:"x_max" validate:"gte=0,lte=100,gtfield=XMin"`
	YMin float64 `json:"y_min" validate:"gte=0,lte=100"`
	YMax float64 `json:"y_max" validate:"gte=0,lte=100,gtfield=YMin"`
}

// NewZone builds a zone, failing with a *SchemaViolation when a bound is
// outside the field or the bounds are not strictly ordered.
func NewZone(xMin, xMax, yMin, yMax float64) (Zone, error) {
	z := Zone{XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax}
	if err := z.Validate(); err != nil {
		return Zone{}, err
	}
	return z, nil
}

func (z Zone) Validate() error {
	return checkSchema("zone", z)
}

// InBounds reports whether every bound lies inside the field.
func (z Zone) InBounds() bool {
	return inField(z.XMin) && inField(z.XMax) && inField(z.YMin) && inField(z.YMax)
}

// Ordered reports whether the zone has strictly positive width and height.
func (z Zone) Ordered() bool {
	return z.XMin < z.XMax && z.YMin < z.YMax
}

func (z Zone) Center() (x, y float64) {
	return (z.XMin + z.XMax) / 2, (z.YMin + z.YMax) / 2
}

func inField(v float64) bool {
	return v >= FieldMin && v <= FieldMax
}
