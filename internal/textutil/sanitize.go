package textutil

import "strings"

// Song names arrive from the server or from user input and can carry any
// character. Separators and drive markers turn into dashes so the shape of
// the name survives; characters that are invalid on common filesystems are
// dropped outright.
var unsafeChars = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName makes a song name safe to use as a filename inside the
// nongs directory. The result may be empty when the input holds nothing
// usable; callers substitute a generated name in that case.
func SanitizeFileName(name string) string {
	return strings.TrimSpace(unsafeChars.Replace(strings.TrimSpace(name)))
}
