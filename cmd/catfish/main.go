// Command catfish is a command-line driver around the catfish package — the
// scaffolding spec.md §1 explicitly places outside the core: parameter
// loading, salt handling, and test-vector generation/verification.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/bsdphk/PHC"
	"github.com/bsdphk/PHC/paramfile"
	"github.com/bsdphk/PHC/testvectors"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	app := &cli.App{
		Name:  "catfish",
		Usage: "memory-hard password hashing, per the Catfish construction",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "path to a TOML parameter file",
				Required: true,
			},
		},
		Commands: []*cli.Command{
			digestCommand(logger),
			vectorsCommand(logger),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error("catfish: fatal", "error", err)
		os.Exit(1)
	}
}

func loadEngine(c *cli.Context) (*catfish.Engine, error) {
	params, err := paramfile.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	return catfish.New(params)
}

func digestCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "digest",
		Usage: "hash a single (salt, password) pair and print the hex tag",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "salt", Usage: "hex-encoded 16-byte salt; random if omitted"},
			&cli.StringFlag{Name: "password", Usage: "password in plaintext", Required: true},
		},
		Action: func(c *cli.Context) error {
			e, err := loadEngine(c)
			if err != nil {
				return err
			}

			salt, err := resolveSalt(c.String("salt"))
			if err != nil {
				return err
			}

			start := time.Now()
			tag, err := e.HexDigest(salt, []byte(c.String("password")))
			if err != nil {
				return err
			}
			logger.Info("digest computed",
				"salt", hex.EncodeToString(salt),
				"crt", e.HasCRT(),
				"elapsed", time.Since(start))

			fmt.Println(tag)
			return nil
		},
	}
}

func vectorsCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "vectors",
		Usage: "generate or verify spec §6 test-vector files",
		Subcommands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "write one record per password length 0..128",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Required: true},
					&cli.IntFlag{Name: "max-length", Value: 128},
				},
				Action: func(c *cli.Context) error {
					e, err := loadEngine(c)
					if err != nil {
						return err
					}

					records, err := testvectors.Generate(e, rand.Reader, c.Int("max-length"))
					if err != nil {
						return err
					}

					f, err := os.Create(c.String("out"))
					if err != nil {
						return err
					}
					defer f.Close()

					if err := testvectors.Write(f, records); err != nil {
						return err
					}
					logger.Info("test vectors written", "path", c.String("out"), "count", len(records))
					return nil
				},
			},
			{
				Name:  "verify",
				Usage: "recompute and check every record in a test-vector file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "in", Required: true},
				},
				Action: func(c *cli.Context) error {
					e, err := loadEngine(c)
					if err != nil {
						return err
					}

					f, err := os.Open(c.String("in"))
					if err != nil {
						return err
					}
					defer f.Close()

					records, err := testvectors.Parse(f)
					if err != nil {
						return err
					}

					mismatches := testvectors.Verify(e, records)
					logger.Info("verification complete",
						"path", c.String("in"),
						"records", len(records),
						"mismatches", len(mismatches))
					for _, mismatch := range mismatches {
						logger.Error("test vector mismatch", "error", mismatch)
					}
					if len(mismatches) > 0 {
						return fmt.Errorf("catfish: %d of %d vectors did not verify", len(mismatches), len(records))
					}
					return nil
				},
			},
		},
	}
}

func resolveSalt(hexSalt string) ([]byte, error) {
	if hexSalt == "" {
		salt := make([]byte, 16)
		if _, err := rand.Read(salt); err != nil {
			return nil, err
		}
		return salt, nil
	}
	salt, err := hex.DecodeString(hexSalt)
	if err != nil {
		return nil, fmt.Errorf("catfish: invalid --salt hex: %w", err)
	}
	if len(salt) != 16 {
		return nil, fmt.Errorf("catfish: --salt must decode to 16 bytes, got %d", len(salt))
	}
	return salt, nil
}
