package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yildizm/EmbedScope/internal/logger"
)

const sampleCSV = `id,url,title,text,d1,d2,d3
1,https://en.wikipedia.org/wiki/Go,Go,"Go is a game.
It is old.",0.5,-1.25,3
2,https://en.wikipedia.org/wiki/Chess,Chess,Chess,1.5,0.25,2
3,https://en.wikipedia.org/wiki/Shogi,Shogi,Shogi,2.5,0,1
`

func TestLoad(t *testing.T) {
	data, err := Load(strings.NewReader(sampleCSV), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got, want := strings.Join(data.Dimensions, ","), "d1,d2,d3"; got != want {
		t.Errorf("dimensions = %s, want %s", got, want)
	}
	if data.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", data.Len())
	}

	first := data.Points[0]
	if first.Title != "Go" || first.URL != "https://en.wikipedia.org/wiki/Go" {
		t.Errorf("unexpected first point: %+v", first)
	}
	if first.Text != "Go is a game.\nIt is old." {
		t.Errorf("multi-line text not preserved: %q", first.Text)
	}
	if data.Value(0, 1) != -1.25 {
		t.Errorf("Value(0, 1) = %v, want -1.25", data.Value(0, 1))
	}

	if i, ok := data.IndexOf("3"); !ok || i != 2 {
		t.Errorf("IndexOf(3) = %d, %v", i, ok)
	}
	if i, ok := data.DimensionIndex("d2"); !ok || i != 1 {
		t.Errorf("DimensionIndex(d2) = %d, %v", i, ok)
	}
	if got := data.Column(0); len(got) != 3 || got[2] != 2.5 {
		t.Errorf("Column(0) = %v", got)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "empty", input: "", wantErr: "missing header"},
		{name: "no id column", input: "title,d1\nx,1\n", wantErr: "no id column"},
		{name: "no dimensions", input: "id,title\n1,x\n", wantErr: "no columns with prefix"},
		{name: "bad number", input: "id,d1\n1,abc\n", wantErr: "line 2 column d1"},
		{name: "non-finite", input: "id,d1\n1,NaN\n", wantErr: "non-finite"},
		{name: "ragged row", input: "id,d1\n1,2,3\n", wantErr: "failed to read record"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input), LoadOptions{})
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadNoDimensionsIsSentinel(t *testing.T) {
	_, err := Load(strings.NewReader("id,title\n1,x\n"), LoadOptions{})
	if !errors.Is(err, ErrNoDimensions) {
		t.Errorf("expected ErrNoDimensions, got %v", err)
	}
}

func TestLoadCustomPrefix(t *testing.T) {
	data, err := Load(strings.NewReader("id,dummy,emb_a,emb_b\n1,x,1,2\n"), LoadOptions{DimensionPrefix: "emb_"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(data.Dimensions) != 2 || data.Dimensions[0] != "emb_a" {
		t.Errorf("dimensions = %v", data.Dimensions)
	}
}

func TestLoadHeaderOnly(t *testing.T) {
	data, err := Load(strings.NewReader("id,url,title,text,d1,d2\n"), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if data.Len() != 0 {
		t.Errorf("Len() = %d, want 0", data.Len())
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(nil, nil); !errors.Is(err, ErrNoDimensions) {
		t.Errorf("New(nil) error = %v", err)
	}
	if _, err := New([]string{"d1", "d1"}, nil); err == nil {
		t.Error("expected duplicate dimension error")
	}
	if _, err := New([]string{"d1"}, []Point{{ID: "a", Dims: []float64{1, 2}}}); err == nil {
		t.Error("expected dimension length error")
	}

	data, err := New([]string{"d1"}, []Point{{ID: "a", Dims: []float64{1}}, {ID: "a", Dims: []float64{2}}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if i, _ := data.IndexOf("a"); i != 0 {
		t.Errorf("duplicate ids should resolve to first point, got %d", i)
	}
}

func TestNilDataset(t *testing.T) {
	var data *Dataset
	if data.Len() != 0 || data.NumDimensions() != 0 || data.ValidDimension(0) {
		t.Error("nil dataset should behave as empty")
	}
	if _, ok := data.IndexOf("x"); ok {
		t.Error("nil dataset should not find ids")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o600); err != nil {
		t.Fatal(err)
	}

	data, err := LoadFile(path, LoadOptions{})
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if data.Len() != 3 {
		t.Errorf("Len() = %d, want 3", data.Len())
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.csv"), LoadOptions{}); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.csv")
	if err := os.WriteFile(path, []byte("id,d1,d2\n1,0,0\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path, LoadOptions{}, logger.Discard())
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	loaded := make(chan *Dataset, 4)
	go func() {
		_ = w.Run(ctx, func(d *Dataset) { loaded <- d })
	}()

	if err := os.WriteFile(path, []byte("id,d1,d2\n1,0,0\n2,1,1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case d := <-loaded:
		if d.Len() != 2 {
			t.Errorf("reloaded Len() = %d, want 2", d.Len())
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for reload")
	}
}
