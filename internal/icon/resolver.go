// Package icon maps weather condition codes to PNG assets and renders them
// onto the terminal surface.
package icon

import (
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"strings"
)

// DefaultFallback is shown for unknown conditions.
const DefaultFallback = "3200.png"

// Resolver looks up condition icons in an asset directory.
type Resolver struct {
	assets   fs.FS
	fallback string
}

// NewResolver returns a Resolver over assets. An empty fallback uses
// DefaultFallback.
func NewResolver(assets fs.FS, fallback string) *Resolver {
	fallback = strings.TrimSpace(fallback)
	if fallback == "" {
		fallback = DefaultFallback
	}
	return &Resolver{assets: assets, fallback: fallback}
}

// Fallback returns the asset name used when a code has no icon.
func (r *Resolver) Fallback() string {
	return r.fallback
}

// Resolve returns the asset name for code, or the fallback when the code is
// empty, not a plain file name, or has no asset. It never fails.
func (r *Resolver) Resolve(code string) string {
	code = strings.TrimSpace(code)
	if code == "" || strings.ContainsAny(code, `/\`) {
		return r.fallback
	}
	name := code + ".png"
	if !fs.ValidPath(name) || r.assets == nil {
		return r.fallback
	}
	info, err := fs.Stat(r.assets, name)
	if err != nil || info.IsDir() {
		return r.fallback
	}
	return name
}

// Load decodes the named asset. If it cannot be decoded the fallback is
// tried instead; the returned name is the asset actually loaded.
func (r *Resolver) Load(name string) (image.Image, string, error) {
	img, err := r.decode(name)
	if err == nil {
		return img, name, nil
	}
	if name == r.fallback {
		return nil, name, err
	}
	img, fbErr := r.decode(r.fallback)
	if fbErr != nil {
		return nil, r.fallback, fmt.Errorf("load %s: %w (fallback: %v)", name, err, fbErr)
	}
	return img, r.fallback, nil
}

func (r *Resolver) decode(name string) (image.Image, error) {
	if r.assets == nil {
		return nil, fmt.Errorf("open %s: no asset directory", name)
	}
	f, err := r.assets.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}
