package encryption_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	"github.com/spf13/afero"

	"github.com/codahale/xtea"
	"github.com/codahale/xtea/internal/config"
	"github.com/codahale/xtea/internal/encryption"
)

const testKey = "000102030405060708090a0b0c0d0e0f"

func newTestConfig(files ...string) *config.Config {
	return &config.Config{
		Key:      testKey,
		Rounds:   xtea.DefaultRounds,
		Parallel: 2,
		Suffix:   ".xtea",
		Quiet:    true,
		Files:    files,
	}
}

func writeFile(t *testing.T, fs afero.Fs, name string, data []byte) {
	t.Helper()

	if err := afero.WriteFile(fs, name, data, 0o600); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, fs afero.Fs, name string) []byte {
	t.Helper()

	data, err := afero.ReadFile(fs, name)
	if err != nil {
		t.Fatal(err)
	}

	return data
}

func processFiles(t *testing.T, cfg *config.Config, fs afero.Fs) (processed, errored int, err error) {
	t.Helper()

	proc, err := encryption.NewProcessor(cfg, fs)
	if err != nil {
		t.Fatal(err)
	}

	return proc.ProcessFiles()
}

func TestProcessor_Encrypt(t *testing.T) {
	for _, test := range []struct {
		name      string
		plaintext []byte
		wantHex   string
	}{
		{"partial block", []byte("hello, world\n"), "d95ba2cfb4541004331a6b8298e73536"},
		{"empty file", nil, "d1f7bbe0cb529bb5"},
		{"aligned", []byte("12345678"), "d09b635f05de93aed1f7bbe0cb529bb5"},
	} {
		t.Run(test.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeFile(t, fs, "notes.txt", test.plaintext)

			processed, errored, err := processFiles(t, newTestConfig("notes.txt"), fs)
			if err != nil {
				t.Fatal(err)
			}

			if got, want := processed, 1; got != want {
				t.Errorf("processed = %d, want = %d", got, want)
			}

			if got, want := errored, 0; got != want {
				t.Errorf("errored = %d, want = %d", got, want)
			}

			want, err := hex.DecodeString(test.wantHex)
			if err != nil {
				t.Fatal(err)
			}

			if got := readFile(t, fs, "notes.txt.xtea"); !bytes.Equal(got, want) {
				t.Errorf("ciphertext = %x, want = %x", got, want)
			}

			// The original file is left in place.
			if got, want := readFile(t, fs, "notes.txt"), test.plaintext; !bytes.Equal(got, want) {
				t.Errorf("plaintext = %x, want = %x", got, want)
			}
		})
	}
}

func TestProcessor_RoundTrip(t *testing.T) {
	plaintext := []byte("the five boxing wizards jump quickly")

	fs := afero.NewMemMapFs()
	writeFile(t, fs, "notes.txt", plaintext)

	if _, _, err := processFiles(t, newTestConfig("notes.txt"), fs); err != nil {
		t.Fatal(err)
	}

	cfg := newTestConfig("notes.txt.xtea")
	cfg.Decrypt = true

	if _, _, err := processFiles(t, cfg, fs); err != nil {
		t.Fatal(err)
	}

	if got, want := readFile(t, fs, "notes.txt"), plaintext; !bytes.Equal(got, want) {
		t.Errorf("decrypted = %q, want = %q", got, want)
	}
}

func TestProcessor_RoundTripWithRounds(t *testing.T) {
	plaintext := []byte("sphinx of black quartz, judge my vow")

	fs := afero.NewMemMapFs()
	writeFile(t, fs, "notes.txt", plaintext)

	cfg := newTestConfig("notes.txt")
	cfg.Rounds = 16

	if _, _, err := processFiles(t, cfg, fs); err != nil {
		t.Fatal(err)
	}

	// A processor with the default round count cannot decrypt it.
	badCfg := newTestConfig("notes.txt.xtea")
	badCfg.Decrypt = true

	if _, errored, _ := processFiles(t, badCfg, fs); errored != 1 {
		t.Errorf("errored = %d, want = 1", errored)
	}

	goodCfg := newTestConfig("notes.txt.xtea")
	goodCfg.Decrypt = true
	goodCfg.Rounds = 16

	if _, _, err := processFiles(t, goodCfg, fs); err != nil {
		t.Fatal(err)
	}

	if got, want := readFile(t, fs, "notes.txt"), plaintext; !bytes.Equal(got, want) {
		t.Errorf("decrypted = %q, want = %q", got, want)
	}
}

func TestProcessor_Delete(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "notes.txt", []byte("ephemeral"))

	cfg := newTestConfig("notes.txt")
	cfg.Delete = true

	if _, _, err := processFiles(t, cfg, fs); err != nil {
		t.Fatal(err)
	}

	if exists, err := afero.Exists(fs, "notes.txt"); err != nil || exists {
		t.Errorf("exists = %v, %v, want = false, nil", exists, err)
	}

	if exists, err := afero.Exists(fs, "notes.txt.xtea"); err != nil || !exists {
		t.Errorf("exists = %v, %v, want = true, nil", exists, err)
	}
}

func TestProcessor_DecryptInvalid(t *testing.T) {
	var key [xtea.KeySize]byte

	keyBytes, err := hex.DecodeString(testKey)
	if err != nil {
		t.Fatal(err)
	}
	copy(key[:], keyBytes)

	// A ciphertext whose final plaintext byte is zero, which is never valid padding.
	badPadding := make([]byte, xtea.BlockSize)
	if err := xtea.NewFromBytes(key).Encipher(badPadding, []byte("AAAAAAA\x00")); err != nil {
		t.Fatal(err)
	}

	for _, test := range []struct {
		name       string
		ciphertext []byte
	}{
		{"empty file", nil},
		{"misaligned", []byte("short")},
		{"invalid padding", badPadding},
	} {
		t.Run(test.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeFile(t, fs, "bad.txt.xtea", test.ciphertext)

			cfg := newTestConfig("bad.txt.xtea")
			cfg.Decrypt = true

			processed, errored, err := processFiles(t, cfg, fs)
			if err == nil {
				t.Error("ProcessFiles did not return an error")
			}

			if got, want := processed, 0; got != want {
				t.Errorf("processed = %d, want = %d", got, want)
			}

			if got, want := errored, 1; got != want {
				t.Errorf("errored = %d, want = %d", got, want)
			}

			// No output file is left behind.
			if exists, err := afero.Exists(fs, "bad.txt"); err != nil || exists {
				t.Errorf("exists = %v, %v, want = false, nil", exists, err)
			}
		})
	}
}

func TestProcessor_MissingInput(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "a.txt", []byte("present"))

	processed, errored, err := processFiles(t, newTestConfig("a.txt", "missing.txt"), fs)
	if err == nil {
		t.Error("ProcessFiles did not return an error")
	}

	// The present file is still processed.
	if got, want := processed, 1; got != want {
		t.Errorf("processed = %d, want = %d", got, want)
	}

	if got, want := errored, 1; got != want {
		t.Errorf("errored = %d, want = %d", got, want)
	}
}

func TestProcessor_Parallel(t *testing.T) {
	fs := afero.NewMemMapFs()

	var files []string
	for i := range 8 {
		name := fmt.Sprintf("file-%d.txt", i)
		writeFile(t, fs, name, []byte(name))
		files = append(files, name)
	}

	cfg := newTestConfig(files...)
	cfg.Parallel = 4

	processed, errored, err := processFiles(t, cfg, fs)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := processed, len(files); got != want {
		t.Errorf("processed = %d, want = %d", got, want)
	}

	if got, want := errored, 0; got != want {
		t.Errorf("errored = %d, want = %d", got, want)
	}

	for _, name := range files {
		if exists, err := afero.Exists(fs, name+".xtea"); err != nil || !exists {
			t.Errorf("exists(%q) = %v, %v, want = true, nil", name+".xtea", exists, err)
		}
	}
}

func TestNewProcessor_InvalidKey(t *testing.T) {
	t.Run("not hex", func(t *testing.T) {
		cfg := newTestConfig("notes.txt")
		cfg.Key = "not hex at all"

		if _, err := encryption.NewProcessor(cfg, afero.NewMemMapFs()); err == nil {
			t.Error("NewProcessor did not return an error")
		}
	})

	t.Run("wrong size", func(t *testing.T) {
		cfg := newTestConfig("notes.txt")
		cfg.Key = "aabbccdd"

		_, err := encryption.NewProcessor(cfg, afero.NewMemMapFs())
		if got, want := err, encryption.ErrKeySize; !errors.Is(got, want) {
			t.Errorf("err = %v, want = %v", got, want)
		}
	})
}
