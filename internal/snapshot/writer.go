package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/starford/eihwaz/internal/models"
)

// WriteMerged writes conversations to path as a JSON array in the given
// order. The full document is encoded in memory and then written
// atomically (tmp file, fsync, rename), so a failure at any point leaves
// no partial output behind. HTML escaping is disabled so payload text is
// not re-encoded.
func WriteMerged(path string, convs []*models.Conversation) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(convs); err != nil {
		return fmt.Errorf("snapshot: encode merged export: %w", err)
	}
	return writeAtomic(path, buf.Bytes())
}

// writeAtomic writes content via a temp file in the destination
// directory followed by a rename.
func writeAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".eihwaz-tmp-*")
	if err != nil {
		return fmt.Errorf("snapshot: create temp in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	// Clean up on any failure path.
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("snapshot: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("snapshot: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("snapshot: close temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("snapshot: rename to %s: %w", path, err)
	}
	success = true
	return nil
}
