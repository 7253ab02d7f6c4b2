package ingest

// Kind описывает вид нормализованного файла.
type Kind int

const (
	KindText Kind = iota + 1
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// FileRecord хранит результат разбора одного пути.
// ImageFormat заполнен только для KindImage.
type FileRecord struct {
	Path        string
	Kind        Kind
	Content     string // текст (UTF-8) для KindText, base64 для KindImage
	ImageFormat string // jpg|jpeg|png без точки
}
