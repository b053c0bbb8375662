package hud

import (
	"testing"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/vantage/pkg/math3d"
)

func key(code rune, mod uv.KeyMod) uv.KeyPressEvent {
	return uv.KeyPressEvent{Code: code, Mod: mod}
}

func typed(s string) []uv.KeyPressEvent {
	var keys []uv.KeyPressEvent
	for _, r := range s {
		keys = append(keys, uv.KeyPressEvent{Code: r, Text: string(r)})
	}
	return keys
}

func TestFormPrefillAndSubmit(t *testing.T) {
	var got []math3d.Pose
	f := NewForm(func(p math3d.Pose) bool {
		got = append(got, p)
		return true
	})

	f.Open(math3d.NewPose(math3d.V3(1.234, 2, 3), math3d.V3(0, 0, 0)))
	if !f.IsOpen() {
		t.Fatal("form should be open")
	}
	if f.Field(0) != "1.23" {
		t.Errorf("field 0 = %q, want rounded prefill", f.Field(0))
	}

	// Replace position Y with "-7.5"
	f.HandleKey(key(uv.KeyTab, 0))
	f.HandleKey(key(uv.KeyBackspace, 0))
	for _, k := range typed("-7.5") {
		f.HandleKey(k)
	}

	if r := f.HandleKey(key(uv.KeyEnter, 0)); r != Submitted {
		t.Fatalf("enter returned %v, want Submitted", r)
	}
	if f.IsOpen() {
		t.Error("form should close on submit")
	}
	want := math3d.NewPose(math3d.V3(1.23, -7.5, 3), math3d.Zero3())
	if len(got) != 1 || got[0] != want {
		t.Errorf("submitted %v, want [%v]", got, want)
	}
}

func TestFormInvalidInputBecomesZero(t *testing.T) {
	var got math3d.Pose
	f := NewForm(func(p math3d.Pose) bool {
		got = p
		return true
	})
	f.Open(math3d.NewPose(math3d.V3(5, 5, 5), math3d.V3(5, 5, 5)))

	// Clear X and type garbage
	f.HandleKey(key('u', uv.ModCtrl))
	for _, k := range typed("abc") {
		f.HandleKey(k)
	}
	f.HandleKey(key(uv.KeyEnter, 0))

	if got.Position.X != 0 || got.Position.Y != 5 {
		t.Errorf("submitted %v, want X=0 and the rest unchanged", got)
	}
}

func TestFormFocusWraps(t *testing.T) {
	f := NewForm(nil)
	f.Open(math3d.Pose{})

	f.HandleKey(key(uv.KeyTab, uv.ModShift))
	if f.Focus() != 5 {
		t.Errorf("shift+tab from first field = %d, want 5", f.Focus())
	}
	f.HandleKey(key(uv.KeyTab, 0))
	if f.Focus() != 0 {
		t.Errorf("tab from last field = %d, want 0", f.Focus())
	}
}

func TestFormCancel(t *testing.T) {
	called := false
	f := NewForm(func(math3d.Pose) bool {
		called = true
		return true
	})
	f.Open(math3d.Pose{})

	if r := f.HandleKey(key(uv.KeyEscape, 0)); r != Cancelled {
		t.Errorf("escape returned %v, want Cancelled", r)
	}
	if called || f.IsOpen() {
		t.Error("cancel should close without submitting")
	}
	if r := f.HandleKey(key(uv.KeyEnter, 0)); r != Editing || called {
		t.Error("closed form should ignore keys")
	}
}

func TestFormDraw(t *testing.T) {
	f := NewForm(nil)
	scr := uv.NewScreenBuffer(60, 20)

	f.Draw(scr, scr.Bounds())
	if line := scr.Line(5).String(); line != "" {
		t.Errorf("closed form drew %q", line)
	}

	f.Open(math3d.NewPose(math3d.V3(1, 2, 3), math3d.V3(4, 5, 6)))
	f.Draw(scr, scr.Bounds())

	found := false
	for y := range 20 {
		if containsAll(scr.Line(y).String(), "Position X", "1_") {
			found = true
		}
	}
	if !found {
		t.Error("form should show the focused field with its value")
	}
}
