// Package session holds the values a user sets while working through the
// interactive menu. A Session is passed explicitly to every handler.
package session

import (
	"errors"
	"path/filepath"
	"strings"
)

var (
	ErrNoFolder = errors.New("please enter a folder path or select a file")
	ErrNoCode   = errors.New("please paste code to analyze")
)

type Session struct {
	FolderPath   string
	UploadedFile string
	CodeInput    string
}

// SelectFile records a chosen file and makes its directory the folder.
func (s *Session) SelectFile(path string) {
	s.UploadedFile = path
	s.FolderPath = filepath.Dir(path)
}

// SetFolder records a folder typed in by the user.
func (s *Session) SetFolder(path string) {
	s.FolderPath = strings.TrimSpace(path)
}

func (s *Session) SetCode(code string) {
	s.CodeInput = code
}

// Reset clears the folder and selected file. Pasted code is kept.
func (s *Session) Reset() {
	s.FolderPath = ""
	s.UploadedFile = ""
}

// Folder returns the folder to work on, or ErrNoFolder.
func (s *Session) Folder() (string, error) {
	if s.FolderPath == "" {
		return "", ErrNoFolder
	}
	return s.FolderPath, nil
}

// Code returns the pasted code, or ErrNoCode when nothing but whitespace
// was entered.
func (s *Session) Code() (string, error) {
	if strings.TrimSpace(s.CodeInput) == "" {
		return "", ErrNoCode
	}
	return s.CodeInput, nil
}
