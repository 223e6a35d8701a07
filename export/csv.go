package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"comment-insights-service/model"
)

// Spreadsheet applications need the BOM to detect UTF-8 in CSV files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Write serializes the table as UTF-8 (with BOM) CSV: header row first,
// one row per record, in table order.
func Write(w io.Writer, table model.CommentTable) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(table.Columns()); err != nil {
		return err
	}
	for _, row := range table.Rows() {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Filename builds the download name for an exported table, e.g.
// youtube_comments_OMV9F9zB4KU_20250131_154005.csv.
func Filename(videoID string, now time.Time) string {
	if videoID == "" {
		videoID = "batch"
	}
	return fmt.Sprintf("youtube_comments_%s_%s.csv", videoID, now.Format("20060102_150405"))
}
