package tui

import "testing"

func TestTileStylesShareBase(t *testing.T) {
	for name, style := range map[string]interface{ GetBold() bool }{
		"correct": correctTile,
		"present": presentTile,
		"absent":  absentTile,
		"cursor":  cursorTile,
	} {
		if !style.GetBold() {
			t.Fatalf("expected %s tile to inherit bold", name)
		}
	}
	if !cursorTile.GetUnderline() {
		t.Fatalf("expected cursor tile underlined")
	}
	if unsetTile.GetUnderline() || tileBase.GetUnderline() {
		t.Fatalf("expected derived styles not to modify their base")
	}
	if correctTile.GetBackground() == absentTile.GetBackground() {
		t.Fatalf("expected distinct tile backgrounds")
	}
}
