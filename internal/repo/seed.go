// Package repo – seed data.
//
// The store is populated exactly once at startup from a JSON payload shaped
// as a mapping from id to question object:
//
//	{"1": {"id": "1", "title": "T", "content": "C", "tags": null}}
//
// An embedded default payload is used unless SEED_PATH points elsewhere.
package repo

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tbourn/go-qa-backend/internal/domain"
)

//go:embed seed/questions.json
var defaultSeed []byte

// DefaultSeed decodes the embedded seed payload.
func DefaultSeed() (map[domain.QuestionID]domain.Question, error) {
	return decodeSeed(defaultSeed)
}

// LoadSeedJSON decodes a seed payload from r.
func LoadSeedJSON(r io.Reader) (map[domain.QuestionID]domain.Question, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return decodeSeed(b)
}

// LoadSeedFile decodes the seed payload stored at path.
func LoadSeedFile(path string) (map[domain.QuestionID]domain.Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadSeedJSON(f)
}

// decodeSeed rejects entries whose key disagrees with the record id, since
// the key is what Update and Delete look records up by.
func decodeSeed(b []byte) (map[domain.QuestionID]domain.Question, error) {
	var m map[domain.QuestionID]domain.Question
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	for id, q := range m {
		if q.ID != id {
			return nil, fmt.Errorf("decode seed: key %q holds question with id %q", id.String(), q.ID.String())
		}
	}
	if m == nil {
		m = map[domain.QuestionID]domain.Question{}
	}
	return m, nil
}
