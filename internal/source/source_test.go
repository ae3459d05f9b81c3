package source

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

func mkfile(t *testing.T, root, rel, body string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLocalEntries(t *testing.T) {
	root := t.TempDir()
	mkfile(t, root, "b.py", "print(1)")
	mkfile(t, root, "a/z.txt", "z")
	mkfile(t, root, "a/deep/x.go", "package x")
	mkfile(t, root, ".git/config", "[core]")
	mkfile(t, root, "a.txt", "a")

	src, err := NewLocal(root, Options{Exclude: []string{".git"}})
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	entries, err := src.Entries(context.Background())
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}

	want := []Entry{
		{Path: "a", IsDir: true},
		{Path: "a.txt"},
		{Path: "b.py"},
		{Path: "a/deep", IsDir: true},
		{Path: "a/z.txt"},
		{Path: "a/deep/x.go"},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Fatalf("entries = %+v\nwant %+v", entries, want)
	}

	files := Files(entries)
	if len(files) != 4 {
		t.Fatalf("files = %v", files)
	}

	data, err := src.ReadFile(context.Background(), "a/deep/x.go")
	if err != nil || string(data) != "package x" {
		t.Fatalf("ReadFile = %q, %v", data, err)
	}
}

func TestLocalDeepNesting(t *testing.T) {
	root := t.TempDir()
	rel := strings.Repeat("d/", 60) + "leaf.txt"
	mkfile(t, root, rel, "x")

	src, err := NewLocal(root, Options{})
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	entries, err := src.Entries(context.Background())
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	files := Files(entries)
	if len(files) != 1 || files[0] != rel {
		t.Fatalf("files = %v", files)
	}
	outline := Outline(entries)
	if last := outline[len(outline)-1]; last.Depth != 60 || last.Name != "leaf.txt" {
		t.Fatalf("last outline item = %+v", last)
	}
}

func TestNewLocalErrors(t *testing.T) {
	root := t.TempDir()
	if _, err := NewLocal(filepath.Join(root, "missing"), Options{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	mkfile(t, root, "file.txt", "x")
	if _, err := NewLocal(filepath.Join(root, "file.txt"), Options{}); !errors.Is(err, ErrNotDirectory) {
		t.Fatalf("expected ErrNotDirectory, got %v", err)
	}
}

func TestLocalEntriesCancelled(t *testing.T) {
	src, err := NewLocal(t.TempDir(), Options{})
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := src.Entries(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestOutline(t *testing.T) {
	entries := []Entry{
		{Path: "src/main.py"},
		{Path: "README.md"},
		{Path: "src", IsDir: true},
		{Path: "src.bak"},
		{Path: "src/util", IsDir: true},
		{Path: "src/util/io.py"},
	}
	want := []OutlineItem{
		{Depth: 0, Name: "README.md"},
		{Depth: 0, Name: "src", IsDir: true},
		{Depth: 1, Name: "main.py"},
		{Depth: 1, Name: "util", IsDir: true},
		{Depth: 2, Name: "io.py"},
		{Depth: 0, Name: "src.bak"},
	}
	if got := Outline(entries); !reflect.DeepEqual(got, want) {
		t.Fatalf("Outline = %+v\nwant %+v", got, want)
	}
}

func TestParseS3URI(t *testing.T) {
	tests := []struct {
		uri, bucket, prefix string
		wantErr             bool
	}{
		{"s3://bucket", "bucket", "", false},
		{"s3://bucket/", "bucket", "", false},
		{"s3://bucket/src/app", "bucket", "src/app/", false},
		{"s3://bucket/src/app/", "bucket", "src/app/", false},
		{"s3:///nobucket", "", "", true},
		{"/local/path", "", "", true},
	}
	for _, tt := range tests {
		bucket, prefix, err := ParseS3URI(tt.uri)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseS3URI(%q) err = %v", tt.uri, err)
			continue
		}
		if bucket != tt.bucket || prefix != tt.prefix {
			t.Errorf("ParseS3URI(%q) = %q, %q", tt.uri, bucket, prefix)
		}
	}
}

type fakeS3 struct {
	pages   [][]string
	objects map[string]string
	calls   int
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	page := f.pages[f.calls]
	f.calls++

	out := &s3.ListObjectsV2Output{}
	for _, k := range page {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(aws.ToString(in.Prefix) + k)})
	}
	if f.calls < len(f.pages) {
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String("next")
	}
	return out, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestS3Source(t *testing.T) {
	api := &fakeS3{
		pages: [][]string{
			{"app.py", "lib/", "lib/db.py"},
			{"lib/sql/query.py", "node_modules/x.js"},
		},
		objects: map[string]string{"repo/lib/db.py": "import sqlite3"},
	}

	src, err := Open(context.Background(), "s3://bucket/repo", api, Options{Exclude: []string{"node_modules"}})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if src.Root() != "s3://bucket/repo" {
		t.Fatalf("root = %q", src.Root())
	}

	entries, err := src.Entries(context.Background())
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if api.calls != 2 {
		t.Fatalf("expected 2 list calls, got %d", api.calls)
	}

	want := []Entry{
		{Path: "app.py"},
		{Path: "lib", IsDir: true},
		{Path: "lib/db.py"},
		{Path: "lib/sql", IsDir: true},
		{Path: "lib/sql/query.py"},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Fatalf("entries = %+v\nwant %+v", entries, want)
	}

	data, err := src.ReadFile(context.Background(), "lib/db.py")
	if err != nil || string(data) != "import sqlite3" {
		t.Fatalf("ReadFile = %q, %v", data, err)
	}
	if _, err := src.ReadFile(context.Background(), "missing.py"); err == nil {
		t.Fatal("expected error for missing object")
	}
}

func TestOpenS3WithoutClient(t *testing.T) {
	if _, err := Open(context.Background(), "s3://bucket", nil, Options{}); err == nil {
		t.Fatal("expected error without S3 client")
	}
}
