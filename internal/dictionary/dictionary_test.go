package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestParseSkipsIncompleteEntries(t *testing.T) {
	data := []byte(`[
		{"es": "perro", "ay": "anu"},
		{"es": "  ", "ay": "uta"},
		{"es": "gato"},
		{"es": " sol ", "ay": " inti "}
	]`)
	dict, err := Parse(data, "es", "ay")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if dict.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", dict.Len())
	}
	if dict.Skipped != 2 {
		t.Fatalf("expected 2 skipped entries, got %d", dict.Skipped)
	}
	if dict.Entries[1].Source != "sol" || dict.Entries[1].Target != "inti" {
		t.Fatalf("expected trimmed entry, got %+v", dict.Entries[1])
	}
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse([]byte(`[]`), "", "")
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
	if _, err := Parse([]byte(`{`), "", ""); err == nil || errors.Is(err, ErrEmpty) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestWordsAndTranslate(t *testing.T) {
	dict := Dictionary{
		SourceLang: "es",
		TargetLang: "ay",
		Entries: []Entry{
			{Source: "perro", Target: "anu"},
			{Source: "casa", Target: "uta"},
		},
	}
	ay := dict.Words("ay")
	if len(ay) != 2 || ay[0] != "anu" || ay[1] != "uta" {
		t.Fatalf("unexpected ay words: %v", ay)
	}
	es := dict.Words("ES")
	if len(es) != 2 || es[0] != "perro" {
		t.Fatalf("unexpected es words: %v", es)
	}
	if got, ok := dict.Translate("UTA"); !ok || got != "casa" {
		t.Fatalf("expected UTA to translate to casa, got %q %v", got, ok)
	}
	if got, ok := dict.Translate("perro"); !ok || got != "perro" {
		t.Fatalf("expected source word lookup, got %q %v", got, ok)
	}
	if _, ok := dict.Translate("nada"); ok {
		t.Fatalf("expected missing translation")
	}
}

func TestEmbeddedDictionaryIsValid(t *testing.T) {
	dict := Embedded()
	if dict.Len() == 0 {
		t.Fatalf("expected embedded entries")
	}
	if dict.Skipped != 0 {
		t.Fatalf("expected no skipped embedded entries, got %d", dict.Skipped)
	}
}

func TestLoaderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dictionary.json")
	if err := os.WriteFile(path, []byte(`[{"es":"agua","ay":"uma"}]`), 0o644); err != nil {
		t.Fatalf("write dictionary: %v", err)
	}
	dict, err := Loader{Source: path}.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if dict.Len() != 1 || dict.Entries[0].Target != "uma" {
		t.Fatalf("unexpected dictionary: %+v", dict)
	}
	if _, err := (Loader{Source: filepath.Join(t.TempDir(), "nope.json")}).Load(context.Background()); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoaderHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dictionary.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`[{"es":"fuego","ay":"nina"}]`))
	}))
	defer srv.Close()

	dict, err := Loader{Source: srv.URL + "/dictionary.json", Client: srv.Client()}.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if dict.Len() != 1 || dict.Entries[0].Source != "fuego" {
		t.Fatalf("unexpected dictionary: %+v", dict)
	}
	if _, err := (Loader{Source: srv.URL + "/missing", Client: srv.Client()}).Load(context.Background()); err == nil {
		t.Fatalf("expected error for 404")
	}
}

func TestLoaderEmbedded(t *testing.T) {
	dict, err := Loader{Source: SourceEmbedded}.Load(context.Background())
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	if dict.Len() != Embedded().Len() {
		t.Fatalf("expected embedded dictionary")
	}
}

func TestMarshalJSONRoundTrip(t *testing.T) {
	dict := Dictionary{SourceLang: "es", TargetLang: "ay", Entries: []Entry{{Source: "sol", Target: "inti"}}}
	data, err := json.Marshal(dict)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `[{"ay":"inti","es":"sol"}]` {
		t.Fatalf("unexpected json: %s", data)
	}
	back, err := Parse(data, "es", "ay")
	if err != nil || back.Entries[0] != dict.Entries[0] {
		t.Fatalf("unexpected parse back: %+v %v", back, err)
	}
}
