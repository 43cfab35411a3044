package models

import (
	"github.com/go-playground/validator/v10"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

var validate = validator.New()

// newPublicID returns the URL-safe identifier exposed by the API.
func newPublicID(current string) (string, error) {
	if current != "" {
		return current, nil
	}
	return gonanoid.New()
}
