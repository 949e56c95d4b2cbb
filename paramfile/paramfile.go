// Package paramfile loads and saves catfish.Params as TOML — the
// ambient configuration layer spec.md §1 calls out as external scaffolding
// ("the core ... consumes configuration at construction time"). Big
// integers are stored as hex strings since TOML has no native bignum type.
package paramfile

import (
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/bsdphk/PHC"
)

// file is the on-disk TOML shape. P and Q are omitted entirely when CRT
// acceleration is not configured.
type file struct {
	G         string `toml:"g"`
	N         string `toml:"n"`
	BlockBits int    `toml:"bits"`
	TCost     int    `toml:"tcost"`
	MCost     int    `toml:"mcost"`
	HSize     int    `toml:"hsize"`
	P         string `toml:"p,omitempty"`
	Q         string `toml:"q,omitempty"`
}

// Load reads catfish.Params from the TOML file at path.
func Load(path string) (catfish.Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return catfish.Params{}, fmt.Errorf("paramfile: %w", err)
	}
	defer f.Close()
	return LoadReader(f)
}

// LoadReader reads catfish.Params from TOML on r.
func LoadReader(r io.Reader) (catfish.Params, error) {
	var doc file
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return catfish.Params{}, fmt.Errorf("paramfile: decoding TOML: %w", err)
	}
	return fromFile(doc)
}

// Save writes p to path as TOML.
func Save(path string, p catfish.Params) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("paramfile: %w", err)
	}
	defer f.Close()
	return SaveWriter(f, p)
}

// SaveWriter writes p to w as TOML.
func SaveWriter(w io.Writer, p catfish.Params) error {
	doc := toFile(p)
	return toml.NewEncoder(w).Encode(doc)
}

func fromFile(doc file) (catfish.Params, error) {
	g, ok := new(big.Int).SetString(doc.G, 16)
	if !ok {
		return catfish.Params{}, fmt.Errorf("paramfile: invalid hex for g: %q", doc.G)
	}
	n, ok := new(big.Int).SetString(doc.N, 16)
	if !ok {
		return catfish.Params{}, fmt.Errorf("paramfile: invalid hex for n: %q", doc.N)
	}

	params := catfish.Params{
		G:         g,
		Modulus:   n,
		BlockBits: doc.BlockBits,
		TCost:     doc.TCost,
		MCost:     doc.MCost,
		HSize:     doc.HSize,
	}

	if doc.P != "" || doc.Q != "" {
		p, ok := new(big.Int).SetString(doc.P, 16)
		if !ok {
			return catfish.Params{}, fmt.Errorf("paramfile: invalid hex for p: %q", doc.P)
		}
		q, ok := new(big.Int).SetString(doc.Q, 16)
		if !ok {
			return catfish.Params{}, fmt.Errorf("paramfile: invalid hex for q: %q", doc.Q)
		}
		params.P, params.Q = p, q
	}

	return params, nil
}

func toFile(p catfish.Params) file {
	doc := file{
		G:         p.G.Text(16),
		N:         p.Modulus.Text(16),
		BlockBits: p.BlockBits,
		TCost:     p.TCost,
		MCost:     p.MCost,
		HSize:     p.HSize,
	}
	if p.P != nil && p.Q != nil {
		doc.P = p.P.Text(16)
		doc.Q = p.Q.Text(16)
	}
	return doc
}
