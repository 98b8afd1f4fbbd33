package filestore

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

// Store persists uploaded files and returns a URL clients can fetch them from
type Store interface {
	// Save writes the file under folder and returns its public URL
	Save(ctx context.Context, folder, filename string, r io.Reader) (string, error)
}

// objectName prefixes the original filename with a timestamp so repeated
// uploads of the same file never collide.
func objectName(folder, filename string) string {
	base := path.Base(filename)
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("%s/%d-%s", folder, time.Now().UnixNano(), base)
}
