package session

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestSelectFileDerivesFolder(t *testing.T) {
	var s Session
	file := filepath.Join("projects", "api", "app.py")
	s.SelectFile(file)

	if s.UploadedFile != file {
		t.Errorf("UploadedFile = %q", s.UploadedFile)
	}
	folder, err := s.Folder()
	if err != nil {
		t.Fatalf("Folder: %v", err)
	}
	if folder != filepath.Join("projects", "api") {
		t.Errorf("folder = %q", folder)
	}
}

func TestResetKeepsCode(t *testing.T) {
	s := Session{FolderPath: "/src", UploadedFile: "/src/a.py", CodeInput: "eval(x)"}
	s.Reset()

	if _, err := s.Folder(); !errors.Is(err, ErrNoFolder) {
		t.Fatalf("expected ErrNoFolder after reset, got %v", err)
	}
	if s.UploadedFile != "" {
		t.Errorf("UploadedFile not cleared: %q", s.UploadedFile)
	}
	if code, err := s.Code(); err != nil || code != "eval(x)" {
		t.Errorf("Code() = %q, %v", code, err)
	}
}

func TestSetFolderTrims(t *testing.T) {
	var s Session
	s.SetFolder("  /tmp/project \n")
	if s.FolderPath != "/tmp/project" {
		t.Fatalf("FolderPath = %q", s.FolderPath)
	}
	s.SetFolder("   ")
	if _, err := s.Folder(); !errors.Is(err, ErrNoFolder) {
		t.Fatalf("blank folder should be rejected, got %v", err)
	}
}

func TestCodeRequiresContent(t *testing.T) {
	var s Session
	s.SetCode(" \n\t")
	if _, err := s.Code(); !errors.Is(err, ErrNoCode) {
		t.Fatalf("expected ErrNoCode, got %v", err)
	}
}
