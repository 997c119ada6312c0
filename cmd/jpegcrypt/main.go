// Command jpegcrypt encrypts or decrypts the quantized DCT coefficients of a
// directory of baseline JPEG files in place of their pixels, per spec.md §6.
package main

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/jrm-1535/jpegcrypt/internal/jpegcodec"
	"github.com/jrm-1535/jpegcrypt/internal/masterkey"
	"github.com/jrm-1535/jpegcrypt/internal/orchestrator"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	var (
		inDir      string
		encryptDir string
		decryptDir string
		keyPath    string
		generate   bool
		decrypt    bool
	)
	pflag.StringVar(&inDir, "in", "", "input directory of JPEG files")
	pflag.StringVar(&encryptDir, "encrypted-out", "", "output directory for encrypted JPEGs")
	pflag.StringVar(&decryptDir, "decrypted-out", "", "output directory for decrypted JPEGs")
	pflag.StringVar(&keyPath, "key", "", "master key file path")
	pflag.BoolVar(&generate, "generate-key", false, "generate a fresh master key at --key if it does not exist")
	pflag.BoolVar(&decrypt, "decrypt", false, "run the decrypt direction instead of encrypt")
	pflag.Parse()

	if err := run(log, inDir, encryptDir, decryptDir, keyPath, generate, decrypt); err != nil {
		log.Error().Err(err).Msg("jpegcrypt failed")
	}
	// spec.md §6: the process exits 0 regardless of per-file failures, which
	// are logged individually by walkAndProcess.
}

func run(log zerolog.Logger, inDir, encryptDir, decryptDir, keyPath string, generate, decrypt bool) error {
	if keyPath == "" {
		return errors.New("jpegcrypt: --key is required")
	}

	key, err := loadOrGenerateKey(keyPath, generate, log)
	if err != nil {
		return err
	}
	if err := key.Validate(); err != nil {
		return errors.Wrap(err, "jpegcrypt: invalid master key")
	}

	if inDir == "" {
		return errors.New("jpegcrypt: --in is required")
	}
	outDir := encryptDir
	dir := orchestrator.Encrypt
	if decrypt {
		outDir = decryptDir
		dir = orchestrator.Decrypt
	}
	if outDir == "" {
		return errors.New("jpegcrypt: output directory is required")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Wrap(err, "jpegcrypt: create output directory")
	}

	return walkAndProcess(inDir, outDir, key, dir, log)
}

func loadOrGenerateKey(keyPath string, generate bool, log zerolog.Logger) (*masterkey.Key, error) {
	if _, err := os.Stat(keyPath); err == nil {
		return masterkey.Load(keyPath)
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "jpegcrypt: stat key file")
	}
	if !generate {
		return nil, errors.Errorf("jpegcrypt: key file %q does not exist (use --generate-key)", keyPath)
	}

	key, err := masterkey.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "jpegcrypt: generate key")
	}
	if err := key.Save(keyPath); err != nil {
		return nil, errors.Wrap(err, "jpegcrypt: save generated key")
	}
	log.Info().Str("path", keyPath).Msg("generated fresh master key")
	return key, nil
}

// walkAndProcess mirrors spec.md §6: every regular file under inDir is
// attempted independently, failures are logged and skipped, and the
// directory tree under outDir mirrors inDir's relative layout.
func walkAndProcess(inDir, outDir string, key *masterkey.Key, dir orchestrator.Direction, log zerolog.Logger) error {
	return filepath.WalkDir(inDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("walk error")
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(inDir, path)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("compute relative path")
			return nil
		}
		outPath := filepath.Join(outDir, rel)

		if err := processFile(path, outPath, key, dir); err != nil {
			log.Error().Err(err).Str("path", path).Msg("process file failed")
			return nil
		}
		log.Info().Str("path", path).Str("out", outPath).Msg("processed")
		return nil
	})
}

func processFile(inPath, outPath string, key *masterkey.Key, dir orchestrator.Direction) error {
	img, err := jpegcodec.Load(inPath)
	if err != nil {
		return errors.Wrap(err, "load")
	}

	log := zerolog.Nop()
	if err := orchestrator.Process(img, key, dir, log); err != nil {
		return errors.Wrap(err, "process")
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return errors.Wrap(err, "create output directory")
	}
	if err := img.Save(outPath); err != nil {
		return errors.Wrap(err, "save")
	}
	return nil
}

