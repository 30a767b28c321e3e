package encryption

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/codahale/xtea"
	"github.com/codahale/xtea/internal/config"
)

// Processor handles the encryption and decryption of files.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// fs is the filesystem all reads and writes go through
	fs afero.Fs

	// cipher is the keyed block cipher
	cipher *xtea.Cipher

	// results channels processing outcomes to the printer goroutine
	results chan Result
}

// NewProcessor creates a new Processor with the given configuration, reading and writing files through fs.
func NewProcessor(cfg *config.Config, fs afero.Fs) (*Processor, error) {
	key, err := hex.DecodeString(cfg.Key)
	if err != nil {
		return nil, fmt.Errorf("decoding key: %w", err)
	}

	if len(key) != xtea.KeySize {
		return nil, ErrKeySize
	}

	return &Processor{
		cfg:     cfg,
		fs:      fs,
		cipher:  xtea.NewFromBytes([xtea.KeySize]byte(key)).WithRounds(cfg.Rounds),
		results: make(chan Result, len(cfg.Files)),
	}, nil
}

// ProcessFiles concurrently processes all files specified in the configuration.
// It encrypts or decrypts files based on the configuration settings.
// Returns the number of successfully processed files and the number of errors.
func (p *Processor) ProcessFiles() (processed, errored int, err error) {
	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for result := range p.results {
			if result.Error != nil {
				errored++

				fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", result.Input, result.Error)

				continue
			}

			processed++

			if !p.cfg.Quiet {
				fmt.Printf("Processed %q -> %q\n", result.Input, result.Output)
			}

			if p.cfg.Delete {
				if err := p.fs.Remove(result.Input); err != nil {
					fmt.Fprintf(os.Stderr, "Error deleting %q: %v\n", result.Input, err)
				} else if !p.cfg.Quiet {
					fmt.Printf("Deleted %q\n", result.Input)
				}
			}
		}
	}()

	for _, file := range p.cfg.Files {
		group.Go(func() error {
			outPath := p.outputPath(file)

			if err := p.processFile(file, outPath); err != nil {
				p.results <- Result{Input: file, Error: err}

				return err
			}

			p.results <- Result{Input: file, Output: outPath}

			return nil
		})
	}

	err = group.Wait()

	close(p.results)

	<-done // Wait for printer to finish

	if err != nil {
		return processed, errored, fmt.Errorf("processing files: %w", err)
	}

	return processed, errored, nil
}

// encrypt pads data to the cipher's block size and enciphers it.
func (p *Processor) encrypt(data []byte) ([]byte, error) {
	plaintext := pkcs7Pad(data, xtea.BlockSize)

	ciphertext := make([]byte, len(plaintext))
	if err := p.cipher.Encipher(ciphertext, plaintext); err != nil {
		return nil, fmt.Errorf("enciphering: %w", err)
	}

	return ciphertext, nil
}

// decrypt deciphers data and strips the padding.
func (p *Processor) decrypt(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	if len(data)%xtea.BlockSize != 0 {
		return nil, ErrInvalidBlockSize
	}

	plaintext := make([]byte, len(data))
	if err := p.cipher.Decipher(plaintext, data); err != nil {
		return nil, fmt.Errorf("deciphering: %w", err)
	}

	return pkcs7Unpad(plaintext)
}

// processFile handles the encryption or decryption of a single file.
// It writes to a temporary file and performs an atomic rename on completion.
func (p *Processor) processFile(filename, outPath string) error {
	data, err := afero.ReadFile(p.fs, filename)
	if err != nil {
		return fmt.Errorf("reading input file: %w", err)
	}

	var out []byte
	if p.cfg.Decrypt {
		out, err = p.decrypt(data)
	} else {
		out, err = p.encrypt(data)
	}

	if err != nil {
		return err
	}

	tmp, err := afero.TempFile(p.fs, filepath.Dir(outPath), filepath.Base(outPath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}

	tmpName := tmp.Name()

	if _, err := tmp.Write(out); err != nil {
		_ = tmp.Close()
		_ = p.fs.Remove(tmpName)

		return fmt.Errorf("writing output: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = p.fs.Remove(tmpName)

		return fmt.Errorf("closing temporary file: %w", err)
	}

	if err := p.fs.Rename(tmpName, outPath); err != nil {
		_ = p.fs.Remove(tmpName)

		return fmt.Errorf("renaming output file: %w", err)
	}

	return nil
}

// outputPath generates the output file path based on the input filename and the configured suffix.
func (p *Processor) outputPath(filename string) string {
	if p.cfg.Decrypt {
		return strings.TrimSuffix(filename, p.cfg.Suffix)
	}

	return filename + p.cfg.Suffix
}
