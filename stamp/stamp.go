// Package stamp persists pixel grids as StampFile JSON documents. A stamp
// directory holds one .json file per stamp plus a .last_import marker
// recording how many stamps the latest import wrote. Files are immutable
// once written except through explicit Delete or overwrite.
package stamp

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xkjq/stampgrid/pixel"
)

// MarkerName is the run-completion marker written after each import. It is
// a crude signal for external pollers, kept for compatibility.
const MarkerName = ".last_import"

type Metadata struct {
	Name        string   `json:"name"`
	Source      string   `json:"source,omitempty"`
	Title       string   `json:"title,omitempty"`
	Author      string   `json:"author,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description,omitempty"`
}

// File is one on-disk stamp document.
type File struct {
	Metadata  Metadata   `json:"metadata"`
	Pixels    pixel.Grid `json:"pixels"`
	PNGBase64 string     `json:"png_base64,omitempty"`
}

// EmbedPNG renders the pixel grid and stores it as base64 PNG alongside the
// grid, for consumers that cannot rebuild the raster themselves.
func (f *File) EmbedPNG() error {
	img, err := pixel.ToImage(f.Pixels)
	if err != nil {
		return fmt.Errorf("render pixels: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	f.PNGBase64 = base64.StdEncoding.EncodeToString(buf.Bytes())
	return nil
}

// Write stores the stamp as dir/name.json, creating dir as needed, and
// returns the written path.
func Write(dir, name string, f *File) (string, error) {
	if err := f.Pixels.Validate(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create stamp dir: %w", err)
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal stamp: %w", err)
	}
	path := filepath.Join(dir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write stamp: %w", err)
	}
	return path, nil
}

// Read loads one stamp document.
func Read(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stamp: %w", err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse stamp %s: %w", filepath.Base(path), err)
	}
	if err := f.Pixels.Validate(); err != nil {
		return nil, fmt.Errorf("stamp %s: %w", filepath.Base(path), err)
	}
	return &f, nil
}

// List returns the stamp names (without extension) in dir, sorted. A
// missing directory is an empty store, not an error.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list stamps: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes one stamp by name.
func Delete(dir, name string) error {
	if err := os.Remove(filepath.Join(dir, name+".json")); err != nil {
		return fmt.Errorf("delete stamp %s: %w", name, err)
	}
	return nil
}

// WriteMarker records the number of stamps the last import wrote.
func WriteMarker(dir string, count int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create stamp dir: %w", err)
	}
	path := filepath.Join(dir, MarkerName)
	if err := os.WriteFile(path, []byte(strconv.Itoa(count)+"\n"), 0o644); err != nil {
		return fmt.Errorf("write marker: %w", err)
	}
	return nil
}

// ReadMarker reads the count recorded by the last import.
func ReadMarker(dir string) (int, error) {
	data, err := os.ReadFile(filepath.Join(dir, MarkerName))
	if err != nil {
		return 0, fmt.Errorf("read marker: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse marker: %w", err)
	}
	return n, nil
}
