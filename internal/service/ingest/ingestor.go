package ingest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// extractor извлекает содержимое файла уже проверенного типа.
type extractor struct {
	kind    Kind
	extract func(path string) (string, error)
}

// Таблица поддерживаемых расширений. Остальные расширения не поддерживаются.
var extractors = map[string]extractor{
	".txt":  {kind: KindText, extract: ReadText},
	".pdf":  {kind: KindText, extract: ExtractPDF},
	".jpg":  {kind: KindImage, extract: EncodeImage},
	".jpeg": {kind: KindImage, extract: EncodeImage},
	".png":  {kind: KindImage, extract: EncodeImage},
}

// Ingestor превращает пути к файлам в FileRecord.
// Предупреждения о пропущенных файлах пишутся в out (консоль пользователя).
type Ingestor struct {
	out    io.Writer
	logger *zap.SugaredLogger
}

func New(out io.Writer, logger *zap.SugaredLogger) *Ingestor {
	return &Ingestor{out: out, logger: logger}
}

// Ingest обрабатывает пути по порядку и возвращает записи только для успешных файлов.
// Отсутствующие файлы и неподдерживаемые расширения пропускаются с предупреждением.
// Ошибки извлечения (битый текст, нечитаемый PDF) возвращаются как есть и прерывают пакет.
func (ig *Ingestor) Ingest(paths []string) ([]FileRecord, error) {
	records := make([]FileRecord, 0, len(paths))
	for _, p := range paths {
		if !isRegularFile(p) {
			fmt.Fprintf(ig.out, "\nWARN: File %s does not exist!\n\n", p)
			ig.logger.Debugw("Файл пропущен: не найден", "path", p)
			continue
		}

		ext := strings.ToLower(filepath.Ext(p))
		ex, ok := extractors[ext]
		if !ok {
			fmt.Fprintf(ig.out, "\nWARN: Unsupported file type %s\n\n", ext)
			ig.logger.Debugw("Файл пропущен: неподдерживаемый тип", "path", p, "ext", ext)
			continue
		}

		content, err := ex.extract(p)
		if err != nil {
			return nil, err
		}

		rec := FileRecord{Path: p, Kind: ex.kind, Content: content}
		if ex.kind == KindImage {
			rec.ImageFormat = strings.TrimPrefix(ext, ".")
		}
		ig.logger.Debugw("Файл обработан", "path", p, "kind", rec.Kind.String(), "bytes", len(content))
		records = append(records, rec)
	}
	return records, nil
}

func isRegularFile(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular()
}
