package service

import "errors"

var (
	// ErrNenhumRegistro means the upload decoded fine but every row was
	// filtered out; the client sent a file with nothing usable in it.
	ErrNenhumRegistro = errors.New("nenhum registro válido encontrado")

	// ErrFormatoInvalido means the declared tipo_arquivo has no parser.
	ErrFormatoInvalido = errors.New("tipo de arquivo não suportado")
)
