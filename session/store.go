package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	FileName  = "state.sav"
	BackupExt = ".old"
)

// Prompter asks the user a yes/no question
type Prompter interface {
	Confirm(title, message string) (bool, error)
}

// Store reads and writes the session file in a data directory
type Store struct {
	dir string
	log *zap.Logger
}

func NewStore(dir string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{dir: dir, log: log}
}

// Path returns the session file location
func (s *Store) Path() string { return filepath.Join(s.dir, FileName) }

// Load returns the saved state, a missing file yields the zero state
// A corrupt file is offered for relocation to state.old, declining returns the ErrCorrupt error
func (s *Store) Load(p Prompter) (State, error) {
	path := s.Path()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("read session %s: %w", path, err)
	}

	st, err := Unmarshal(data)
	if err == nil {
		s.log.Debug("session loaded", zap.Uint32("stage", st.Stage), zap.Uint32("score", st.Score), zap.Uint32("kills", st.Kills))
		return st, nil
	}

	backup := strings.TrimSuffix(path, filepath.Ext(path)) + BackupExt
	loadErr := fmt.Errorf("could not decode game save, it might be corrupted: %w", err)
	s.log.Warn("session corrupt", zap.String("path", path), zap.Error(err))

	if p == nil {
		return State{}, loadErr
	}
	ok, perr := p.Confirm("Load error", fmt.Sprintf("%v\nShould we move the file to %s?", loadErr, backup))
	if perr != nil {
		return State{}, fmt.Errorf("confirm relocation: %w", perr)
	}
	if !ok {
		return State{}, loadErr
	}
	if err := os.Rename(path, backup); err != nil {
		return State{}, fmt.Errorf("move corrupt session: %w", err)
	}
	s.log.Info("corrupt session moved", zap.String("backup", backup))
	return State{}, nil
}

// Save writes the state atomically
func (s *Store) Save(st State) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	path := s.Path()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, st.Marshal(), 0644); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace session: %w", err)
	}
	s.log.Debug("session saved", zap.Uint32("stage", st.Stage), zap.Uint32("score", st.Score), zap.Uint32("kills", st.Kills))
	return nil
}

// ReaderPrompter asks on a line-oriented stream, used before the terminal UI starts
type ReaderPrompter struct {
	In  io.Reader
	Out io.Writer
}

func (p ReaderPrompter) Confirm(title, message string) (bool, error) {
	fmt.Fprintf(p.Out, "%s\n%s [y/N] ", title, message)
	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
