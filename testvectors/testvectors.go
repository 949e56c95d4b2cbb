// Package testvectors reads and writes the Catfish test-vector format from
// spec.md §6 — one record per password length, generated by (and verified
// against) a catfish.Engine. It is "surrounding scaffolding" in spec.md §1's
// sense: an external collaborator of the core, not a part of it.
//
// This is the Go counterpart of original_source/Catfish/ref-python/produce_test_vectors.py,
// reshaped into a library so both cmd/catfish and tests can call it directly.
package testvectors

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bsdphk/PHC"
)

// Record is one test-vector entry: the password length that produced it,
// the password and salt used, and the resulting tag.
type Record struct {
	Length   int
	Password []byte
	Salt     []byte
	Tag      []byte
}

// Write emits records in the spec.md §6 format:
//
//	length <int>
//	password <hex>
//	salt <hex>
//	tag <hex>
//	<blank line>
func Write(w io.Writer, records []Record) error {
	for _, r := range records {
		if _, err := fmt.Fprintf(w, "length %d\n", r.Length); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "password %s\n", hex.EncodeToString(r.Password)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "salt %s\n", hex.EncodeToString(r.Salt)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "tag %s\n\n", hex.EncodeToString(r.Tag)); err != nil {
			return err
		}
	}
	return nil
}

// Parse reads records in the spec.md §6 format, one per password length,
// separated by a blank line.
func Parse(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var records []Record
	var cur Record
	var fieldsSeen int

	flush := func() error {
		if fieldsSeen == 0 {
			return nil
		}
		if fieldsSeen != 4 {
			return fmt.Errorf("testvectors: incomplete record (%d of 4 fields)", fieldsSeen)
		}
		records = append(records, cur)
		cur = Record{}
		fieldsSeen = 0
		return nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}

		key, value, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("testvectors: malformed line %q", line)
		}

		switch key {
		case "length":
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("testvectors: bad length %q: %w", value, err)
			}
			cur.Length = n
		case "password":
			b, err := hex.DecodeString(value)
			if err != nil {
				return nil, fmt.Errorf("testvectors: bad password hex: %w", err)
			}
			cur.Password = b
		case "salt":
			b, err := hex.DecodeString(value)
			if err != nil {
				return nil, fmt.Errorf("testvectors: bad salt hex: %w", err)
			}
			cur.Salt = b
		case "tag":
			b, err := hex.DecodeString(value)
			if err != nil {
				return nil, fmt.Errorf("testvectors: bad tag hex: %w", err)
			}
			cur.Tag = b
		default:
			return nil, fmt.Errorf("testvectors: unknown field %q", key)
		}
		fieldsSeen++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return records, nil
}

// Generate produces one record per password length 0..maxLen, mirroring
// produce_test_vectors.py's range(128 + 1) loop: a fresh random salt per
// record and a random password of exactly the given length, both drawn from
// rnd.
func Generate(e *catfish.Engine, rnd io.Reader, maxLen int) ([]Record, error) {
	records := make([]Record, 0, maxLen+1)
	for length := 0; length <= maxLen; length++ {
		salt := make([]byte, 16)
		if _, err := io.ReadFull(rnd, salt); err != nil {
			return nil, fmt.Errorf("testvectors: reading salt: %w", err)
		}

		var password []byte
		if length > 0 {
			password = make([]byte, length)
			if _, err := io.ReadFull(rnd, password); err != nil {
				return nil, fmt.Errorf("testvectors: reading password: %w", err)
			}
		}

		tag, err := e.Digest(nil, salt, password)
		if err != nil {
			return nil, fmt.Errorf("testvectors: digest for length %d: %w", length, err)
		}

		records = append(records, Record{
			Length:   length,
			Password: password,
			Salt:     salt,
			Tag:      tag,
		})
	}
	return records, nil
}

// Verify recomputes each record's tag under e and returns one error per
// mismatch (nil entries are never included — the returned slice has exactly
// len(mismatches) elements, not len(records)).
func Verify(e *catfish.Engine, records []Record) []error {
	var errs []error
	for i, r := range records {
		got, err := e.Digest(nil, r.Salt, r.Password)
		if err != nil {
			errs = append(errs, fmt.Errorf("record %d (length %d): %w", i, r.Length, err))
			continue
		}
		if hex.EncodeToString(got) != hex.EncodeToString(r.Tag) {
			errs = append(errs, fmt.Errorf("record %d (length %d): tag mismatch: got %x, want %x",
				i, r.Length, got, r.Tag))
		}
	}
	return errs
}
