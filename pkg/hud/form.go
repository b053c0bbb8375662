package hud

import (
	"fmt"
	"strings"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/vantage/pkg/math3d"
	"github.com/taigrr/vantage/pkg/tour"
)

var fieldLabels = [tour.NumFields]string{
	"Position X", "Position Y", "Position Z",
	"Look At X", "Look At Y", "Look At Z",
}

// Result reports what a key press did to the form.
type Result int

const (
	Editing Result = iota
	Submitted
	Cancelled
)

// Form collects a custom camera pose as six free-text coordinates.
// Unparseable fields are taken as 0 on submit.
type Form struct {
	fields [tour.NumFields]string
	focus  int
	open   bool
	submit func(math3d.Pose) bool
}

// NewForm creates a closed form that hands submitted poses to submit,
// normally tour.Engine.RequestCustomPose.
func NewForm(submit func(math3d.Pose) bool) *Form {
	return &Form{submit: submit}
}

// Open shows the form prefilled with p at display precision.
func (f *Form) Open(p math3d.Pose) {
	f.fields = tour.FieldsFromPose(p)
	f.focus = 0
	f.open = true
}

// IsOpen reports whether the form captures keys.
func (f *Form) IsOpen() bool {
	return f.open
}

// Focus returns the index of the field being edited.
func (f *Form) Focus() int {
	return f.focus
}

// Field returns the text of field i.
func (f *Form) Field(i int) string {
	return f.fields[i]
}

// Pose parses the current field values.
func (f *Form) Pose() math3d.Pose {
	return tour.PoseFromFields(f.fields)
}

// HandleKey applies a key press. Enter submits and closes the form even
// when the engine drops the request because a transition is running.
func (f *Form) HandleKey(k uv.KeyPressEvent) Result {
	if !f.open {
		return Editing
	}

	switch {
	case k.MatchString("escape"):
		f.open = false
		return Cancelled
	case k.MatchString("enter"):
		f.open = false
		if f.submit != nil {
			f.submit(f.Pose())
		}
		return Submitted
	case k.MatchString("shift+tab", "up"):
		f.focus = (f.focus - 1 + tour.NumFields) % tour.NumFields
	case k.MatchString("tab", "down"):
		f.focus = (f.focus + 1) % tour.NumFields
	case k.MatchString("backspace"):
		s := []rune(f.fields[f.focus])
		if len(s) > 0 {
			f.fields[f.focus] = string(s[:len(s)-1])
		}
	case k.MatchString("ctrl+u"):
		f.fields[f.focus] = ""
	default:
		if k.Text != "" {
			f.fields[f.focus] += k.Text
		}
	}
	return Editing
}

// Draw paints the form as a centered box.
func (f *Form) Draw(scr uv.Screen, area uv.Rectangle) {
	if !f.open {
		return
	}

	const boxWidth = 32
	lines := make([]string, 0, tour.NumFields+3)
	lines = append(lines, bold+" Go to pose"+strings.Repeat(" ", boxWidth-11))
	for i, label := range fieldLabels {
		value := f.fields[i]
		if len(value) > 14 {
			value = value[len(value)-14:]
		}
		row := fmt.Sprintf(" %-11s %-14s ", label, value)
		if i == f.focus {
			row = fmt.Sprintf(" %-11s %s%-14s%s ", label, reverse, value+"_", reset+bgBlack+fgWhite)
		}
		lines = append(lines, row)
	}
	lines = append(lines, dim+" tab next  enter go  esc cancel")

	x := area.Min.X + max((area.Dx()-boxWidth)/2, 0)
	y := area.Min.Y + max((area.Dy()-len(lines))/2, 0)
	for i, l := range lines {
		if y+i >= area.Max.Y {
			break
		}
		// Pad so the box has a solid background
		blank := bgBlack + strings.Repeat(" ", boxWidth) + reset
		drawText(scr, x, y+i, area.Max.X, blank)
		drawText(scr, x, y+i, area.Max.X, bgBlack+fgWhite+l+reset)
	}
}
