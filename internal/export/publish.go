package export

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/spboyer/comborank/internal/models"
	"github.com/spboyer/comborank/internal/reporting"
)

// Publish renders outcome in each format and uploads it as
// <prefix>/<runID>.<ext>. It returns the names of the uploaded blobs. The
// first failure stops publishing; blobs already uploaded are kept.
func Publish(ctx context.Context, uploader Uploader, outcome *models.RankOutcome, formats []reporting.Format, prefix string) ([]string, error) {
	if len(formats) == 0 {
		formats = []reporting.Format{reporting.FormatText}
	}

	names := make([]string, 0, len(formats))
	for _, f := range formats {
		if err := ctx.Err(); err != nil {
			return names, err
		}

		data, err := reporting.RenderBytes(outcome, f)
		if err != nil {
			return names, err
		}

		name := BlobName(prefix, outcome.RunID, f)
		if err := uploader.Upload(ctx, name, data); err != nil {
			return names, fmt.Errorf("publishing %s: %w", f, err)
		}
		names = append(names, name)
	}
	return names, nil
}

// BlobName builds the blob path for one rendered outcome.
func BlobName(prefix, runID string, f reporting.Format) string {
	file := runID + "." + f.Extension()
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return file
	}
	return path.Join(prefix, file)
}
