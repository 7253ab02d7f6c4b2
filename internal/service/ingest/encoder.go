package ingest

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// ErrNotUTF8 возвращается, если текстовый файл нельзя прочитать как UTF-8.
var ErrNotUTF8 = errors.New("file is not valid UTF-8 text")

// ReadText возвращает содержимое файла как есть.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w", path, ErrNotUTF8)
	}
	return string(data), nil
}

// PageSource даёт постраничный доступ к тексту документа.
type PageSource interface {
	NumPage() int
	PageText(i int) (string, error) // i начинается с 1
}

// ExtractPDF извлекает текст всех страниц PDF по порядку.
func ExtractPDF(path string) (string, error) {
	f, rdr, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	text, err := JoinPages(pdfPages{rdr})
	if err != nil {
		return "", fmt.Errorf("read pdf %s: %w", path, err)
	}
	return text, nil
}

// JoinPages склеивает текст страниц, после каждой страницы ставится '\n'.
// Страница без текста даёт пустую строку, но разделитель остаётся.
func JoinPages(src PageSource) (string, error) {
	var b strings.Builder
	for i := 1; i <= src.NumPage(); i++ {
		txt, err := src.PageText(i)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		b.WriteString(txt)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

type pdfPages struct{ r *pdf.Reader }

func (p pdfPages) NumPage() int { return p.r.NumPage() }

func (p pdfPages) PageText(i int) (string, error) {
	pg := p.r.Page(i)
	if pg.V.IsNull() {
		return "", nil
	}
	return pg.GetPlainText(nil)
}

// EncodeImage читает байты изображения и кодирует их в стандартный base64 без изменений.
func EncodeImage(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
