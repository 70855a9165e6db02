package store

import (
	"encoding/json"
	"fmt"

	"github.com/aaronzipp/who-is-the-wolf/internal/models"
)

// Encode serializes a session into the blob both backends store
func Encode(s *models.Session) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding session %s: %w", s.ID, err)
	}
	return data, nil
}

// Decode restores a session written by Encode
func Decode(data []byte) (*models.Session, error) {
	var s models.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return &s, nil
}
