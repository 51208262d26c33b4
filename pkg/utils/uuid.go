package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID gera um identificador curto para execuções do pipeline
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 6)
}

// GenerateRunID gera um identificador de execução com prefixo legível
func GenerateRunID() (string, error) {
	id, err := gonanoid.Generate(characters, 10)
	if err != nil {
		return "", err
	}

	return "run_" + id, nil
}
