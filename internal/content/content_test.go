package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"
	"time"
)

// --- ExtractURLs ---

func TestExtractURLs_Multiple(t *testing.T) {
	got := ExtractURLs("see https://a.example/x and http://b.example/y?q=1 too")
	want := []string{"https://a.example/x", "http://b.example/y?q=1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractURLs = %v, want %v", got, want)
	}
}

func TestExtractURLs_None(t *testing.T) {
	got := ExtractURLs("no links here, ftp://nope.example either")
	if got == nil || len(got) != 0 {
		t.Errorf("ExtractURLs = %#v, want empty non-nil slice", got)
	}
}

func TestExtractURLs_KeepsDuplicatesAndTrailingPunctuation(t *testing.T) {
	got := ExtractURLs("https://a.example, https://a.example,")
	want := []string{"https://a.example,", "https://a.example,"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractURLs = %v, want %v", got, want)
	}
}

func TestExtractURLs_StopsAtNewline(t *testing.T) {
	got := ExtractURLs("https://a.example/page\nnext line")
	if len(got) != 1 || got[0] != "https://a.example/page" {
		t.Errorf("ExtractURLs = %v", got)
	}
}

// --- HTTPFetcher ---

func newPageServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello page"))
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	return httptest.NewServer(mux)
}

func TestFetchURLContent_Success(t *testing.T) {
	srv := newPageServer()
	defer srv.Close()

	got, ok := NewHTTPFetcher(time.Second).FetchURLContent(context.Background(), srv.URL+"/ok")
	if !ok {
		t.Fatal("FetchURLContent should succeed")
	}
	if got != "hello page" {
		t.Errorf("content = %q, want %q", got, "hello page")
	}
}

func TestFetchURLContent_NotFound(t *testing.T) {
	srv := newPageServer()
	defer srv.Close()

	got, ok := NewHTTPFetcher(time.Second).FetchURLContent(context.Background(), srv.URL+"/missing")
	if ok || got != "" {
		t.Errorf("FetchURLContent = (%q, %v), want (\"\", false)", got, ok)
	}
}

func TestFetchURLContent_InvalidURL(t *testing.T) {
	_, ok := NewHTTPFetcher(time.Second).FetchURLContent(context.Background(), "not a url")
	if ok {
		t.Error("FetchURLContent should reject an invalid URL")
	}
}

func TestDownloadBytes_Success(t *testing.T) {
	srv := newPageServer()
	defer srv.Close()

	got, err := NewHTTPFetcher(time.Second).DownloadBytes(context.Background(), srv.URL+"/ok")
	if err != nil {
		t.Fatalf("DownloadBytes error: %v", err)
	}
	if string(got) != "hello page" {
		t.Errorf("DownloadBytes = %q", got)
	}
}

// --- BuildURLContents ---

type mapFetcher map[string]string

func (m mapFetcher) FetchURLContent(ctx context.Context, url string) (string, bool) {
	c, ok := m[url]
	return c, ok
}

func TestBuildURLContents_SkipsFailures(t *testing.T) {
	f := mapFetcher{"https://a": "A", "https://empty": ""}
	got := BuildURLContents(context.Background(), f, []string{"https://a", "https://gone", "https://empty"})
	want := "\nContent from https://a:\nA"
	if got != want {
		t.Errorf("BuildURLContents = %q, want %q", got, want)
	}
}

func TestBuildURLContents_NoURLs(t *testing.T) {
	if got := BuildURLContents(context.Background(), mapFetcher{}, nil); got != "" {
		t.Errorf("BuildURLContents = %q, want empty", got)
	}
}

// --- files ---

func TestReadFileContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("alpha"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ReadFileContent(path)
	if err != nil {
		t.Fatalf("ReadFileContent error: %v", err)
	}
	if got != "alpha" {
		t.Errorf("ReadFileContent = %q, want alpha", got)
	}
}

func TestReadFileContent_Missing(t *testing.T) {
	if _, err := ReadFileContent(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("ReadFileContent should fail for a missing file")
	}
}

func TestReadFolderContents_FilesOnlyNonEmpty(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.txt"), []byte("alpha"), 0o644)
	os.WriteFile(filepath.Join(dir, "b.txt"), []byte("beta"), 0o644)
	os.WriteFile(filepath.Join(dir, "empty.txt"), nil, 0o644)
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	os.WriteFile(filepath.Join(dir, "sub", "c.txt"), []byte("gamma"), 0o644)

	got, err := ReadFolderContents(dir)
	if err != nil {
		t.Fatalf("ReadFolderContents error: %v", err)
	}
	sort.Strings(got)
	want := []string{"alpha", "beta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadFolderContents = %v, want %v", got, want)
	}
}

func TestReadFolderContents_MissingDir(t *testing.T) {
	if _, err := ReadFolderContents(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("ReadFolderContents should fail for a missing folder")
	}
}

func TestCombineFiles(t *testing.T) {
	got := CombineFiles([]File{{Name: "a.go", Content: "package a"}, {Name: "b.md", Content: "# B"}})
	want := "\nContent from a.go:\npackage a\nContent from b.md:\n# B"
	if got != want {
		t.Errorf("CombineFiles = %q, want %q", got, want)
	}
}

func TestCombineFiles_Empty(t *testing.T) {
	if got := CombineFiles(nil); got != "" {
		t.Errorf("CombineFiles(nil) = %q, want empty", got)
	}
}
