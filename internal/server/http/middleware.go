package http

import (
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/Meesho/BharatMLStack/irisserve/pkg/metric"
	"github.com/Meesho/BharatMLStack/irisserve/pkg/set"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var (
	// request headers worth echoing into the access log
	reqHeadersToLog = set.NewThreadSafeSet("x-request-id", "content-type", "user-agent")
)

// RequestMiddleware logs every request and records the request counter
// and latency histogram exactly once per completed request, success or
// failure.
func RequestMiddleware(metrics *metric.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		responseTime := time.Since(startTime)
		statusCode := c.Writer.Status()
		metrics.RecordRequest(endpointLabel(c), statusLabel(statusCode), responseTime.Seconds())

		logVariables := []string{
			c.Request.Method,
			c.Request.URL.Path,
			strconv.Itoa(statusCode),
			responseTime.String(),
			formatHeaders(filterHeaders(c.Request.Header)),
		}
		if statusCode >= http.StatusInternalServerError {
			log.Error().Msg(strings.Join(logVariables, " | "))
		} else {
			// client errors are the caller's problem, not an operational failure
			log.Info().Msg(strings.Join(logVariables, " | "))
		}
	}
}

func recoveryHandler(c *gin.Context, err any) {
	log.Error().
		Str("path", c.Request.URL.Path).
		Msgf("Recovered from panic: %v, stack: %s", err, string(debug.Stack()))
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// endpointLabel keeps metric cardinality bounded by labelling on the
// matched route, not the raw path.
func endpointLabel(c *gin.Context) string {
	route := c.FullPath()
	switch route {
	case "":
		return "unmatched"
	case "/":
		return "root"
	default:
		return strings.TrimPrefix(route, "/")
	}
}

func statusLabel(statusCode int) string {
	if statusCode < http.StatusBadRequest {
		return "success"
	}
	return "error"
}

func filterHeaders(headers http.Header) map[string][]string {
	filteredHeaders := make(map[string][]string)
	for k, v := range headers {
		if reqHeadersToLog.Contains(strings.ToLower(k)) {
			filteredHeaders[k] = v
		}
	}
	return filteredHeaders
}

func formatHeaders(headers map[string][]string) string {
	if len(headers) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(headers))
	for k, v := range headers {
		parts = append(parts, k+"="+strings.Join(v, ","))
	}
	return strings.Join(parts, " ")
}
