package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/logger"
)

const (
	FileName = "expenses.csv"
	MimeType = "text/csv"

	header = "Description,Amount,Category"
)

// File is an export ready to be handed to a delivery channel.
type File struct {
	Name     string
	MimeType string
	Data     []byte
}

// CSV writes one row per expense in list order. Fields are written as is,
// a comma inside a description shifts the columns of its row.
func CSV(exps []expense.Record) File {
	rows := make([]string, 0, len(exps)+1)
	rows = append(rows, header)
	for _, exp := range exps {
		rows = append(rows, exp.Description+","+exp.Amount.String()+","+exp.Category)
	}
	return File{
		Name:     FileName,
		MimeType: MimeType,
		Data:     []byte(strings.Join(rows, "\n")),
	}
}

// DirDeliverer saves exports into a local directory.
type DirDeliverer struct {
	dir string
}

func NewDirDeliverer(dir string) *DirDeliverer {
	return &DirDeliverer{dir: dir}
}

// Deliver writes f and returns the path it was written to.
func (d *DirDeliverer) Deliver(_ context.Context, f File) (string, error) {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create export dir")
	}
	path := filepath.Join(d.dir, f.Name)
	if err := os.WriteFile(path, f.Data, 0o644); err != nil {
		return "", errors.Wrap(err, "write export")
	}
	logger.Info("export saved", zap.String("path", path), zap.Int("bytes", len(f.Data)))
	return path, nil
}
