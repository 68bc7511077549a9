package contact

import "github.com/NikhilKanaujia/portfolio/internal/relay"

// Field names a form input. The values double as the HTML input names.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// Fields holds what the visitor has typed so far.
type Fields struct {
	Name    string
	Email   string
	Message string
}

// set assigns value to f and reports whether f is a known field.
func (fs *Fields) set(f Field, value string) bool {
	switch f {
	case FieldName:
		fs.Name = value
	case FieldEmail:
		fs.Email = value
	case FieldMessage:
		fs.Message = value
	default:
		return false
	}
	return true
}

func (fs Fields) submission() relay.Submission {
	return relay.Submission{Name: fs.Name, Email: fs.Email, Message: fs.Message}
}
