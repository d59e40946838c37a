package usecase

import (
	"io"

	"github.com/3-lines-studio/storefront/internal/adapters/fs"
	"github.com/3-lines-studio/storefront/internal/catalog"
	"github.com/3-lines-studio/storefront/internal/core"
)

type Catalog = catalog.Service

type PageRenderer interface {
	Render(props core.PageProps) ([]byte, error)
	RenderNotFound() ([]byte, error)
}

type CLIOutput interface {
	Writer() io.Writer
	Green(text string) string
	Yellow(text string) string
	Red(text string) string
	Gray(text string) string
	PrintHeader(msg string)
	PrintStep(msg string, args ...any)
	PrintSuccess(msg string, args ...any)
	PrintWarning(msg string, args ...any)
	PrintError(msg string, args ...any)
	PrintFile(path string)
	PrintDone(msg string)
}

type FileSystem = fs.FileSystem
