package api

import (
	"context"
	"strconv"
	"strings"

	"github.com/yolofarm/farm-whisperer/common"
)

// parseLimit interprets the limit query parameter. Empty or "all" means the
// full history, otherwise a positive record count.
func parseLimit(raw string) (int64, bool) {
	if raw == "" || strings.EqualFold(raw, "all") {
		return 0, true
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// getFeedDataHandler returns the handler serving the stored readings of one
// feed, newest first.
func (a *API) getFeedDataHandler(feed string) HandlerLoggerFunc {
	return func(ctx context.Context, res *common.HttpResponseWriter) error {
		limit, ok := parseLimit(res.URL.Query().Get("limit"))
		if !ok {
			logError := errorInvalidLimit
			return res.WriteError(&logError)
		}

		records, err := a.feedData.GetFeedData(ctx, res.TraceID, feed, limit)
		if err != nil {
			logError := errorRunningQuery.SetInternalMessage(err)
			return res.WriteError(&logError)
		}
		return writeJSON(res, records)
	}
}
