package store

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"
)

// namespace for document identities
var documentSpace = uuid.MustParse("8f0c3b52-4a77-5d1e-9b39-2c6f1e0d7a41")

// Identify derives stable document identity from its content.
func Identify(r io.Reader) (uuid.UUID, error) {
	h := blake3.New()
	if _, err := io.Copy(h, r); err != nil {
		return uuid.Nil, fmt.Errorf("unable to hash document: %w", err)
	}
	return uuid.NewSHA1(documentSpace, h.Sum(nil)), nil
}

// IdentifyFile derives identity of the document file.
func IdentifyFile(path string) (uuid.UUID, error) {
	f, err := os.Open(path)
	if err != nil {
		return uuid.Nil, fmt.Errorf("unable to open document: %w", err)
	}
	defer f.Close()
	return Identify(f)
}
