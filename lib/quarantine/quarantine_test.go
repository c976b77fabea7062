// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package quarantine

import (
	"bytes"
	"crypto/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/clipgate/lib/clock"
	"github.com/bureau-foundation/clipgate/lib/journal"
	"github.com/bureau-foundation/clipgate/lib/sealed"
)

func newVault(t *testing.T, compression Compression) (*Vault, *sealed.Keypair) {
	t.Helper()
	keypair, err := sealed.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	t.Cleanup(func() { keypair.Close() })

	fake := clock.Fake(time.Date(2026, 3, 4, 5, 6, 7, 8, time.UTC))
	vault, err := New(filepath.Join(t.TempDir(), "quarantine"), []string{keypair.PublicKey}, compression, fake)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return vault, keypair
}

func TestParseCompression(t *testing.T) {
	tests := []struct {
		name    string
		want    Compression
		wantErr bool
	}{
		{"", CompressionZstd, false},
		{"zstd", CompressionZstd, false},
		{"lz4", CompressionLZ4, false},
		{"none", CompressionNone, false},
		{"gzip", 0, true},
	}
	for _, test := range tests {
		got, err := ParseCompression(test.name)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseCompression(%q) error = %v, wantErr %v", test.name, err, test.wantErr)
			continue
		}
		if got != test.want {
			t.Errorf("ParseCompression(%q) = %s, want %s", test.name, got, test.want)
		}
	}
}

func TestSealUnseal_RoundTrip(t *testing.T) {
	compressible := bytes.Repeat([]byte("\x1b[31mred\x1b[0m "), 512)
	random := make([]byte, 4096)
	if _, err := rand.Read(random); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		compression Compression
		raw         []byte
		want        Compression
	}{
		{"zstd compressible", CompressionZstd, compressible, CompressionZstd},
		{"lz4 compressible", CompressionLZ4, compressible, CompressionLZ4},
		{"none", CompressionNone, compressible, CompressionNone},
		{"zstd incompressible falls back", CompressionZstd, random, CompressionNone},
		{"lz4 incompressible falls back", CompressionLZ4, random, CompressionNone},
		{"single byte", CompressionZstd, []byte{0x07}, CompressionNone},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			vault, keypair := newVault(t, test.compression)
			label := []byte("\x1b]0;evil\x07")

			path, err := vault.Seal(test.raw, label)
			if err != nil {
				t.Fatalf("Seal: %v", err)
			}

			entry, err := Unseal(path, keypair.PrivateKey, int64(len(test.raw)))
			if err != nil {
				t.Fatalf("Unseal: %v", err)
			}
			defer entry.Zero()

			if !bytes.Equal(entry.Raw, test.raw) {
				t.Errorf("raw mismatch: got %d bytes, want %d", len(entry.Raw), len(test.raw))
			}
			if !bytes.Equal(entry.Label, label) {
				t.Errorf("label = %q, want %q", entry.Label, label)
			}
			if entry.Compression != test.want {
				t.Errorf("compression = %s, want %s", entry.Compression, test.want)
			}
		})
	}
}

func TestSeal_FileNameAndMode(t *testing.T) {
	vault, _ := newVault(t, CompressionZstd)
	raw := []byte("\x00\x01\x02")

	path, err := vault.Seal(raw, nil)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	digest := journal.RawDigest(raw)
	wantName := "20260304T050607.000000008Z-" + digest.String()[:16] + ".age"
	if filepath.Base(path) != wantName {
		t.Errorf("file name = %q, want %q", filepath.Base(path), wantName)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if mode := info.Mode().Perm(); mode != 0o600 {
		t.Errorf("file mode = %o, want 600", mode)
	}
	dirInfo, err := os.Stat(vault.Directory())
	if err != nil {
		t.Fatal(err)
	}
	if mode := dirInfo.Mode().Perm(); mode != 0o700 {
		t.Errorf("directory mode = %o, want 700", mode)
	}

	entries, err := os.ReadDir(vault.Directory())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want 1 (no temporary leftovers)", len(entries))
	}
}

func TestSeal_CiphertextDoesNotContainPlaintext(t *testing.T) {
	vault, _ := newVault(t, CompressionNone)
	raw := []byte("very recognisable hostile payload")

	path, err := vault.Seal(raw, []byte("label-marker"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(content, raw) || bytes.Contains(content, []byte("label-marker")) {
		t.Error("sealed file contains plaintext")
	}
}

func TestUnseal_Limit(t *testing.T) {
	vault, keypair := newVault(t, CompressionZstd)
	raw := bytes.Repeat([]byte{0x1b}, 1000)

	path, err := vault.Seal(raw, nil)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if _, err := Unseal(path, keypair.PrivateKey, 999); err == nil {
		t.Fatal("Unseal should reject a buffer over the limit")
	}
}

func TestUnseal_WrongIdentity(t *testing.T) {
	vault, _ := newVault(t, CompressionZstd)
	other, err := sealed.GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}
	defer other.Close()

	path, err := vault.Seal([]byte("x"), nil)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if _, err := Unseal(path, other.PrivateKey, 1024); err == nil {
		t.Fatal("Unseal should fail with the wrong identity")
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New("", []string{"age1x"}, CompressionZstd, nil); err == nil {
		t.Error("New should require a directory")
	}
	_, err := New(t.TempDir(), nil, CompressionZstd, nil)
	if err == nil || !strings.Contains(err.Error(), "recipient") {
		t.Errorf("New with no recipients: err = %v", err)
	}
}

func TestDecode_BadHeader(t *testing.T) {
	if _, err := decode([]byte("nope"), 10); err == nil {
		t.Error("decode should reject short input")
	}
	if _, err := decode([]byte("XXXX\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00"), 10); err == nil {
		t.Error("decode should reject bad magic")
	}
}
