package conversation

import (
	"fmt"

	"ChatBot/internal/service/ingest"
)

// Compose собирает содержимое одного пользовательского сообщения:
// сначала блоки файлов в порядке разбора, текст запроса идёт последним.
func Compose(query string, files []ingest.FileRecord) []Block {
	blocks := make([]Block, 0, len(files)+1)
	for _, f := range files {
		switch f.Kind {
		case ingest.KindText:
			blocks = append(blocks, TextBlock{
				Text: fmt.Sprintf("Uploaded document content:\n%s\n\n%s", f.Path, f.Content),
			})
		case ingest.KindImage:
			blocks = append(blocks, ImageBlock{MimeFormat: f.ImageFormat, Data: f.Content})
		}
	}
	return append(blocks, TextBlock{Text: "User query: " + query})
}
