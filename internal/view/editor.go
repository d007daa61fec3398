// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of aic

package view

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"os/exec"

	"github.com/aic/aic/internal/dao"
	"github.com/aic/aic/internal/massaction"
	"github.com/derailed/tview"
	log "github.com/sirupsen/logrus"
)

var (
	// errEditAborted is returned when the editor exits with an error or
	// the document is saved unchanged after a failed attempt.
	errEditAborted = errors.New("edit aborted")
)

// EditSession is a hostname document opened in an external editor.
// Changes are always taken against Original; Current is what the editor
// shows next.
type EditSession struct {
	Original map[string]string
	Current  map[string]string
	TempFile string
	ErrorMsg string
}

// NewEditSession returns a session editing the hostnames of hh.
func NewEditSession(hh []*dao.Host) *EditSession {
	doc := dao.HostnameDocument(hh)
	return &EditSession{Original: doc, Current: maps.Clone(doc)}
}

// StartEdit writes the document to a temp file, suspends the TUI while the
// editor runs and returns the edited document.
func (e *EditSession) StartEdit(app *tview.Application) (map[string]string, error) {
	if e.TempFile == "" {
		f, err := os.CreateTemp("", "aic-hostnames-*.json")
		if err != nil {
			return nil, fmt.Errorf("failed to create temp file: %w", err)
		}
		e.TempFile = f.Name()
		f.Close()
	}
	raw, err := e.Document()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(e.TempFile, raw, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", e.TempFile, err)
	}

	exitCode, err := e.spawnEditor(app)
	if err != nil {
		return nil, fmt.Errorf("editor failed: %w", err)
	}
	if exitCode != 0 {
		return nil, errEditAborted
	}

	content, err := os.ReadFile(e.TempFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read edited file: %w", err)
	}

	return ParseDocument(content)
}

// Document renders the document, with the last error on top as comments.
func (e *EditSession) Document() ([]byte, error) {
	var buf bytes.Buffer
	if e.ErrorMsg != "" {
		buf.WriteString("// ERROR: " + e.ErrorMsg + "\n")
		buf.WriteString("// Fix the hostnames below and save, or save without changes to cancel.\n")
		buf.WriteString("// ---\n\n")
	}
	raw, err := json.MarshalIndent(e.Current, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal hostnames: %w", err)
	}
	buf.Write(raw)
	buf.WriteString("\n")

	return buf.Bytes(), nil
}

// ParseDocument decodes an edited hostname document.
func ParseDocument(content []byte) (map[string]string, error) {
	var doc map[string]string
	if err := json.Unmarshal(stripErrorComment(content), &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return doc, nil
}

func (e *EditSession) spawnEditor(app *tview.Application) (int, error) {
	editor := getEditor()

	var exitCode int
	suspended := app.Suspend(func() {
		cmd := exec.Command(editor, e.TempFile)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr

		if err := cmd.Run(); err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				exitCode = exitErr.ExitCode()
			} else {
				exitCode = 1
			}
		}
	})
	if !suspended {
		return 1, errors.New("failed to suspend application")
	}

	return exitCode, nil
}

// Cleanup removes the temporary file.
func (e *EditSession) Cleanup() {
	if e.TempFile != "" {
		os.Remove(e.TempFile)
		e.TempFile = ""
	}
}

// Plan turns an edited document into explicit renames of hh, checked
// against the hostnames in inUse.
func (e *EditSession) Plan(hh []*dao.Host, modified map[string]string, inUse map[string]struct{}) (massaction.Plan[*dao.Host], error) {
	rr, err := dao.HostnameChanges(e.Original, modified)
	if err != nil {
		return massaction.Plan[*dao.Host]{}, err
	}
	values := make(map[string]string, len(rr))
	for _, r := range rr {
		values[r.Path] = r.Hostname
	}
	plan := massaction.PlanValues(hh, values, canChangeHostname, (*dao.Host).Path, (*dao.Host).Hostname)
	for i := range plan.Candidates {
		plan.Candidates[i].ID = plan.Candidates[i].Obj.ID
	}
	if err := plan.Validate(inUse); err != nil {
		return plan, err
	}

	return plan, nil
}

// editHostnames opens the hostnames of hh in the editor until the edit
// yields a valid plan or is given up.
func (h *Hosts) editHostnames(hh []*dao.Host) (massaction.Plan[*dao.Host], error) {
	e := NewEditSession(hh)
	defer e.Cleanup()

	inUse := h.inUse(hh)
	for {
		modified, err := e.StartEdit(h.app.Application)
		if err != nil {
			return massaction.Plan[*dao.Host]{}, err
		}
		if e.ErrorMsg != "" && maps.Equal(modified, e.Current) {
			return massaction.Plan[*dao.Host]{}, errEditAborted
		}

		plan, err := e.Plan(hh, modified, inUse)
		if err == nil || errors.Is(err, dao.ErrNoChanges) {
			return plan, err
		}
		log.Warnf("bulk edit rejected: %v", err)
		e.ErrorMsg, e.Current = err.Error(), modified
	}
}

func getEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	if _, err := exec.LookPath("vim"); err == nil {
		return "vim"
	}
	return "nano"
}

// stripErrorComment removes the comment block from the top of content.
func stripErrorComment(content []byte) []byte {
	lines := bytes.Split(content, []byte("\n"))
	startIdx := 0
	for i, line := range lines {
		trimmed := bytes.TrimSpace(line)
		if len(trimmed) == 0 {
			continue
		}
		if bytes.HasPrefix(trimmed, []byte("//")) {
			startIdx = i + 1
			continue
		}
		break
	}

	if startIdx > 0 && startIdx < len(lines) {
		return bytes.Join(lines[startIdx:], []byte("\n"))
	}
	return content
}
