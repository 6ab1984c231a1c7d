package trial

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hastd/bikedfr/internal/appconfig"
)

// Sink writes successive JSON checkpoints of a DataRecord to the configured
// destination, performing the one-time backup-on-overwrite dance on its
// first write to a file.
type Sink struct {
	kind        appconfig.OutputKind
	path        string
	overwrite   bool
	backedUp    bool
	discard     bool
	firstWriteF func() error
}

// NewSink resolves an appconfig.OutputTo into a writable Sink.
func NewSink(out appconfig.OutputTo, overwrite bool) *Sink {
	s := &Sink{kind: out.Kind, path: out.Path, overwrite: overwrite}
	s.discard = out.Kind == appconfig.OutputVoid
	return s
}

// ensureBackup copies path to "<path>-backup-<uuid>" if it exists, is
// non-empty, and overwrite was not requested; the original is then
// truncated by the os.Create in Write. A no-op after the first successful
// call.
func (s *Sink) ensureBackup() error {
	if s.backedUp || s.kind != appconfig.OutputFile || s.overwrite {
		s.backedUp = true
		return nil
	}
	info, err := os.Stat(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.backedUp = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("trial: stat output file: %w", err)
	}
	if info.Size() == 0 {
		s.backedUp = true
		return nil
	}
	contents, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("trial: read output file for backup: %w", err)
	}
	backupPath := fmt.Sprintf("%s-backup-%s", s.path, uuid.New().String())
	if err := os.WriteFile(backupPath, contents, 0o644); err != nil {
		return fmt.Errorf("trial: write backup file: %w", err)
	}
	s.backedUp = true
	return nil
}

// Write serialises v as a JSON checkpoint and writes it to the configured
// sink, creating a backup first if this is the first write to an existing
// file. JSON-encode or write failures are dumped to stderr as a last
// resort rather than aborting the run.
func (s *Sink) Write(v any) {
	if s.discard {
		return
	}
	if err := s.ensureBackup(); err != nil {
		log.Error().Err(err).Msg("failed to back up existing output file")
	}

	data, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "json-encode-failed: %v: %+v\n", err, v)
		return
	}

	var w io.Writer = os.Stdout
	var closer io.Closer
	if s.kind == appconfig.OutputFile {
		f, err := os.Create(s.path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "output-not-writable: %v\n%s\n", err, data)
			return
		}
		w = f
		closer = f
	}
	if _, err := w.Write(data); err != nil {
		fmt.Fprintf(os.Stderr, "output-not-writable: %v\n%s\n", err, data)
	}
	if closer != nil {
		closer.Close()
	}
}
