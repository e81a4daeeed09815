package dictionary

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// SourceEmbedded selects the dictionary compiled into the binary.
const SourceEmbedded = "embedded"

const maxRemoteBytes = 8 << 20

//go:embed default.json
var embeddedJSON []byte

// Loader reads a dictionary from a file, an http(s) URL or the embedded copy.
type Loader struct {
	Source     string
	SourceLang string
	TargetLang string
	Client     *http.Client
}

// Load fetches and parses the configured source.
func (l Loader) Load(ctx context.Context) (Dictionary, error) {
	data, err := l.read(ctx)
	if err != nil {
		return Dictionary{}, err
	}
	return Parse(data, l.SourceLang, l.TargetLang)
}

// Embedded returns the dictionary compiled into the binary.
func Embedded() Dictionary {
	dict, err := Parse(embeddedJSON, DefaultSourceLang, DefaultTargetLang)
	if err != nil {
		return Dictionary{SourceLang: DefaultSourceLang, TargetLang: DefaultTargetLang}
	}
	return dict
}

// EmbeddedJSON returns the raw embedded dictionary document.
func EmbeddedJSON() []byte {
	out := make([]byte, len(embeddedJSON))
	copy(out, embeddedJSON)
	return out
}

func (l Loader) read(ctx context.Context) ([]byte, error) {
	source := strings.TrimSpace(l.Source)
	switch {
	case source == "" || source == SourceEmbedded:
		return EmbeddedJSON(), nil
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		return l.fetch(ctx, source)
	default:
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("failed to read dictionary: %w", err)
		}
		return data, nil
	}
}

func (l Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dictionary: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			// Best-effort body close.
			_ = cerr
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch dictionary: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary body: %w", err)
	}
	return data, nil
}
