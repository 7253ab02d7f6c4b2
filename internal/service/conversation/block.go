package conversation

import "fmt"

// Block является элементом содержимого пользовательского сообщения.
// Реализации только TextBlock и ImageBlock; при сериализации их перебирают через type switch.
type Block interface {
	isBlock()
}

// TextBlock хранит простой текст.
type TextBlock struct {
	Text string
}

// ImageBlock хранит изображение в base64. MimeFormat: подтип image/*, например png или jpg.
type ImageBlock struct {
	MimeFormat string
	Data       string
}

func (TextBlock) isBlock()  {}
func (ImageBlock) isBlock() {}

// DataURL возвращает ссылку вида data:image/{format};base64,{data}.
func (b ImageBlock) DataURL() string {
	return fmt.Sprintf("data:image/%s;base64,%s", b.MimeFormat, b.Data)
}

// MediaType возвращает канонический MIME-тип: jpg приводится к image/jpeg.
// Нужен провайдерам, которые не принимают image/jpg.
func (b ImageBlock) MediaType() string {
	if b.MimeFormat == "jpg" {
		return "image/jpeg"
	}
	return "image/" + b.MimeFormat
}
