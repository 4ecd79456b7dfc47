// Package workspace locates the mandate documents and loads them from disk.
package workspace

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/moltaidev/usdc-mandate/pkg/report"
	verrors "github.com/moltaidev/usdc-mandate/pkg/schema/errors"
)

const (
	// EnvWorkspace names the environment variable consulted when no
	// workspace argument is given.
	EnvWorkspace = "OPENCLAW_WORKSPACE"

	// DefaultMandateFile is the mandate document name inside a workspace.
	DefaultMandateFile = ".usdc-mandate.json"

	// DefaultLedgerFile is the ledger document name inside a workspace.
	DefaultLedgerFile = ".usdc-mandate-ledger.json"
)

// Resolve picks the workspace directory: the first non-empty of arg, env
// and <home>/.openclaw/workspace.
func Resolve(arg, env, home string) string {
	if arg != "" {
		return arg
	}
	if env != "" {
		return env
	}
	return DefaultDir(home)
}

// DefaultDir returns the fallback workspace under home.
func DefaultDir(home string) string {
	return filepath.Join(home, ".openclaw", "workspace")
}

// ResolveFromEnvironment resolves arg against the process environment and
// the current user's home directory.
func ResolveFromEnvironment(arg string) (string, error) {
	env := os.Getenv(EnvWorkspace)
	if arg != "" || env != "" {
		return Resolve(arg, env, ""), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return Resolve(arg, env, home), nil
}

// Layout holds the document file names used inside a workspace.
type Layout struct {
	MandateFile string
	LedgerFile  string
}

// DefaultLayout returns the standard document names.
func DefaultLayout() Layout {
	return Layout{
		MandateFile: DefaultMandateFile,
		LedgerFile:  DefaultLedgerFile,
	}
}

// Paths returns the mandate and ledger paths inside dir.
func (l Layout) Paths(dir string) (mandate, ledger string) {
	mandateFile, ledgerFile := l.MandateFile, l.LedgerFile
	if mandateFile == "" {
		mandateFile = DefaultMandateFile
	}
	if ledgerFile == "" {
		ledgerFile = DefaultLedgerFile
	}
	return filepath.Join(dir, mandateFile), filepath.Join(dir, ledgerFile)
}

// Paths returns the mandate and ledger paths inside dir using the standard
// document names.
func Paths(dir string) (mandate, ledger string) {
	return DefaultLayout().Paths(dir)
}

// Exists reports whether path names an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Load reads and decodes a JSON document. On failure the returned
// Document carries a *errors.SourceError describing why.
func Load(kind report.Kind, path string) report.Document {
	doc := report.Document{Kind: kind, Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		reason := verrors.SourceUnreadable
		if errors.Is(err, fs.ErrNotExist) {
			reason = verrors.SourceMissing
		}
		doc.Err = verrors.NewSourceError(kind, path, reason, err)
		return doc
	}

	value, err := Decode(data)
	if err != nil {
		doc.Err = verrors.NewSourceError(kind, path, verrors.SourceUnparsable, err)
		return doc
	}

	doc.Value = value
	return doc
}

// Decode parses a complete JSON text into the generic model: map[string]any,
// []any, float64, string, bool and nil. Trailing data after the value is an
// error.
func Decode(data []byte) (any, error) {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, err
	}
	return value, nil
}
