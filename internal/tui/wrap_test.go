package tui

import "testing"

func TestWrapStyledRunesBreaksAtSpace(t *testing.T) {
	runes := styleText("Fin del juego", messageStyle)
	got := wrapStyledRunes(runes, 8)
	want := messageStyle.Render("F") + messageStyle.Render("i") + messageStyle.Render("n") +
		messageStyle.Render(" ") + messageStyle.Render("d") + messageStyle.Render("e") + messageStyle.Render("l") +
		"\n" +
		renderStyledRunes(styleText("juego", messageStyle))
	if got != want {
		t.Fatalf("unexpected wrap:\n%q\nwant\n%q", got, want)
	}
}

func TestWrapStyledRunesSplitsLongWord(t *testing.T) {
	runes := styleText("jukumari", messageStyle)
	got := wrapStyledRunes(runes, 5)
	want := renderStyledRunes(styleText("jukum", messageStyle)) + "\n" + renderStyledRunes(styleText("ari", messageStyle))
	if got != want {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapStyledRunesZeroWidth(t *testing.T) {
	runes := styleText("uta", messageStyle)
	if wrapStyledRunes(runes, 0) != renderStyledRunes(runes) {
		t.Fatalf("expected unwrapped output for zero width")
	}
}

func TestStyledRuneWidths(t *testing.T) {
	if w := newStyledRune('ñ', letterStyle).width; w != 1 {
		t.Fatalf("expected width 1 for ñ, got %d", w)
	}
	if w := newStyledRune('🐧', letterStyle).width; w != 2 {
		t.Fatalf("expected width 2 for penguin, got %d", w)
	}
	if !newStyledRune(' ', letterStyle).isSpace {
		t.Fatalf("expected space flag")
	}
}

func TestRenderRowSkipsCoveredCell(t *testing.T) {
	wide := newStyledRune('🐧', collectorStyle)
	row := []styledRune{wide, blankRune, blankRune}
	if got := renderRow(row); got != wide.s+" " {
		t.Fatalf("unexpected row: %q", got)
	}
}
