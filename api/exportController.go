package api

import (
	"context"
	"net/http"

	"github.com/yolofarm/farm-whisperer/common"
	"github.com/yolofarm/farm-whisperer/usecase"
)

var errorUnknownFeed = common.DetailedError{Status: http.StatusNotFound, Code: "unknown_feed", Message: "no such feed"}

// exportFeed launches an asynchronous export of a feed's stored history to
// the export bucket. The operation always returns 200 once started.
func (a *API) exportFeed(ctx context.Context, res *common.HttpResponseWriter) error {
	feed := res.VARS["feed"]
	if !common.Contains(a.feeds, feed) {
		logError := errorUnknownFeed
		return res.WriteError(&logError)
	}

	go a.exporter.Export(usecase.ExportArgs{Feed: feed, TraceID: res.TraceID})
	return writeJSON(res, scheduleMessage{Message: "Export started"})
}
