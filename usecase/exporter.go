package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/yolofarm/farm-whisperer/common"
)

// Exporter dumps the stored history of a feed to the export bucket.
type Exporter struct {
	logger   *log.Logger
	uploader Uploader
	feedData *FeedData
}

// ExportArgs identifies one export run.
type ExportArgs struct {
	Feed    string
	TraceID string
}

func NewExporter(logger *log.Logger, feedData *FeedData, uploader Uploader) Exporter {
	return Exporter{
		logger:   logger,
		uploader: uploader,
		feedData: feedData,
	}
}

// Export fetches the full stored history of a feed and uploads it as a JSON
// file named <feed>_<start time>.
func (e Exporter) Export(args ExportArgs) {
	e.logger.Println("launching export process")
	backgroundCtx := common.TimeItContext(context.Background())
	startExportTime := strings.ReplaceAll(time.Now().UTC().Round(time.Second).String(), " ", "_")

	records, err := e.feedData.GetFeedData(backgroundCtx, args.TraceID, args.Feed, 0)
	if err != nil {
		e.logger.Printf("get feed data failed: %v \n", err)
		return
	}
	payload, err := json.Marshal(records)
	if err != nil {
		e.logger.Printf("marshal feed data failed: %v \n", err)
		return
	}

	filename := strings.Join([]string{args.Feed, startExportTime}, "_")
	if err := e.uploader.Upload(backgroundCtx, filename, bytes.NewBuffer(payload)); err != nil {
		e.logger.Printf("S3 upload failed: %v \n", err)
		return
	}
	e.logger.Println("upload to S3 done with success, terminating go routine")
}
