package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// DecodeError means the input bytes could not be interpreted as the declared
// tabular format. The caller surfaces it as a client error; it is distinct
// from a successfully decoded file that yields zero candidates.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("erro ao ler CSV: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// linha is one decoded data row: header-keyed fields plus the original file
// line number for skip reporting.
type linha struct {
	numero int
	campos map[string]string
}

// decodeTabela decodes CSV bytes into header-keyed rows.
//
// pular drops that many leading lines before the header row (Inter checking
// statements open with a junk preamble). Ragged rows are tolerated: missing
// trailing fields read as "", extra fields are ignored.
func decodeTabela(data []byte, sep rune, pular int) ([]linha, error) {
	if !utf8.Valid(data) {
		return nil, &DecodeError{Err: errors.New("conteúdo não é texto UTF-8")}
	}

	texto := strings.ReplaceAll(string(data), "\r\n", "\n")
	linhas := strings.Split(texto, "\n")
	if pular >= len(linhas) {
		return nil, nil
	}
	texto = strings.Join(linhas[pular:], "\n")

	r := csv.NewReader(strings.NewReader(texto))
	r.Comma = sep
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	registros, err := r.ReadAll()
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	if len(registros) == 0 {
		return nil, nil
	}

	cabecalho := registros[0]
	for i := range cabecalho {
		cabecalho[i] = strings.TrimSpace(cabecalho[i])
	}

	saida := make([]linha, 0, len(registros)-1)
	for i, reg := range registros[1:] {
		campos := make(map[string]string, len(cabecalho))
		for j, nome := range cabecalho {
			if j < len(reg) {
				campos[nome] = reg[j]
			} else {
				campos[nome] = ""
			}
		}
		saida = append(saida, linha{numero: pular + i + 2, campos: campos})
	}
	return saida, nil
}

// detectarSeparador picks the field delimiter by counting candidates on the
// first non-empty line, the way pandas' sep=None sniffing behaves on these
// exports. Defaults to comma.
func detectarSeparador(data []byte) rune {
	texto := string(data)
	for _, l := range strings.Split(texto, "\n") {
		if strings.TrimSpace(l) == "" {
			continue
		}
		melhor := ','
		maior := strings.Count(l, ",")
		if n := strings.Count(l, ";"); n > maior {
			melhor, maior = ';', n
		}
		if n := strings.Count(l, "\t"); n > maior {
			melhor = '\t'
		}
		return melhor
	}
	return ','
}
