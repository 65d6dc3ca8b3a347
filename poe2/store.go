package poe2

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LoadTrades reads the persisted trade log. A missing file is an empty
// log, not an error.
func LoadTrades(path string) ([]Trade, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read trades from %q: %w", path, err)
	}
	var trades []Trade
	if err := json.Unmarshal(content, &trades); err != nil {
		return nil, fmt.Errorf("cannot parse trades from %q: %w", path, err)
	}
	return trades, nil
}

// SaveTrades writes the trade log atomically, temp file then rename.
func SaveTrades(path string, trades []Trade) error {
	content, err := json.MarshalIndent(trades, "", "  ")
	if err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), ".trades-*.json")
	if err != nil {
		return err
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), path)
}
