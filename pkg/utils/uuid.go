package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID creates a short dataset identifier.
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 8)
}
