package tour

import (
	"math"
	"strconv"
	"strings"

	"github.com/taigrr/vantage/pkg/math3d"
)

// Field order of a custom pose form.
const (
	FieldPosX = iota
	FieldPosY
	FieldPosZ
	FieldLookX
	FieldLookY
	FieldLookZ
	NumFields
)

// ParseCoord parses a coordinate typed by the user. Empty, malformed and
// non-finite input is treated as 0.
func ParseCoord(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// PoseFromFields builds a pose from the six custom pose fields.
func PoseFromFields(f [NumFields]string) math3d.Pose {
	return math3d.NewPose(
		math3d.V3(ParseCoord(f[FieldPosX]), ParseCoord(f[FieldPosY]), ParseCoord(f[FieldPosZ])),
		math3d.V3(ParseCoord(f[FieldLookX]), ParseCoord(f[FieldLookY]), ParseCoord(f[FieldLookZ])),
	)
}

// FieldsFromPose formats a pose into the six form fields at display
// precision.
func FieldsFromPose(p math3d.Pose) [NumFields]string {
	p = p.Round(DisplayPrecision)
	format := func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return [NumFields]string{
		format(p.Position.X), format(p.Position.Y), format(p.Position.Z),
		format(p.LookAt.X), format(p.LookAt.Y), format(p.LookAt.Z),
	}
}
