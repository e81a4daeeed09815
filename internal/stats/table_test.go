package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Word", "Result", "Attempts"}
	rows := [][]string{
		{"UTA", "won", "2"},
		{"JUKUMARI", "lost", "5"},
	}
	rightAlign := map[int]bool{2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Word     Result Attempts" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "UTA      won           2" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "JUKUMARI lost          5" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Palabra", "N"}, [][]string{{"ÑANDÚ", "1"}}, nil)
	if lines[1] != "ÑANDÚ   1" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
}
