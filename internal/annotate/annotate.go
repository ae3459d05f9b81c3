// Package annotate maps "<line>:<message>" descriptors from a model response
// onto the lines of a source file.
package annotate

import (
	"sort"
	"strconv"
	"strings"

	"github.com/K0NGR3SS/codesentry/internal/models"
)

// Marker is appended between a source line and its message.
const Marker = "  # Error: "

// SplitResponse breaks a free-text model response into candidate descriptors.
func SplitResponse(response string) []string {
	return strings.Split(response, "\n")
}

// ParseDescriptors returns line -> message for every descriptor of the form
// "<digits>:<message>". Malformed entries are dropped and later entries win.
func ParseDescriptors(descriptors []string) map[int]string {
	byLine := make(map[int]string)
	for _, d := range descriptors {
		prefix, message, found := strings.Cut(d, ":")
		if !found || !isDigits(prefix) {
			continue
		}
		line, err := strconv.Atoi(prefix)
		if err != nil {
			continue
		}
		byLine[line] = strings.TrimSpace(message)
	}
	return byLine
}

// Descriptors is ParseDescriptors ordered by line.
func Descriptors(descriptors []string) []models.Descriptor {
	byLine := ParseDescriptors(descriptors)
	out := make([]models.Descriptor, 0, len(byLine))
	for line, msg := range byLine {
		out = append(out, models.Descriptor{Line: line, Message: msg})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Line < out[j].Line })
	return out
}

// Annotate appends Marker and the message to each line of source that a
// descriptor points at. Lines are never reordered or removed.
func Annotate(source string, descriptors []string) string {
	byLine := ParseDescriptors(descriptors)
	if len(byLine) == 0 {
		return source
	}

	lines := strings.Split(source, "\n")
	for i := range lines {
		if msg, ok := byLine[i+1]; ok {
			lines[i] = lines[i] + Marker + msg
		}
	}
	return strings.Join(lines, "\n")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
