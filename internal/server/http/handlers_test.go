package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Meesho/BharatMLStack/irisserve/internal/config"
	"github.com/Meesho/BharatMLStack/irisserve/internal/handler/predict"
	"github.com/Meesho/BharatMLStack/irisserve/internal/health"
	"github.com/Meesho/BharatMLStack/irisserve/internal/model"
	"github.com/Meesho/BharatMLStack/irisserve/pkg/metric"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const artifactPath = "../../../testdata/model.json"

func newTestServer(t *testing.T, loaded bool) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var engine *predict.Handler
	tracker := health.NewTracker()
	if loaded {
		handle, err := model.Load(artifactPath)
		require.NoError(t, err)
		engine = predict.NewHandler(handle)
		tracker.MarkModelReady()
	} else {
		engine = predict.NewHandler(nil)
	}

	return newServer(config.Configs{AppEnv: "test"}, engine, tracker, metric.NewRecorder())
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, true)

	w := doRequest(s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestReady_BeforeAndAfterLoad(t *testing.T) {
	s := newTestServer(t, false)

	w := doRequest(s, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"not_ready"}`, w.Body.String())

	handle, err := model.Load(artifactPath)
	require.NoError(t, err)
	s.engine = predict.NewHandler(handle)
	s.tracker.MarkModelReady()

	w = doRequest(s, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
	assert.Equal(t, "1.0.0", body["model_version"])
}

func TestPredict_Success(t *testing.T) {
	s := newTestServer(t, true)

	w := doRequest(s, http.MethodPost, "/predict", `{"features":[5.1,3.5,1.4,0.2],"request_id":"req-9"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp predict.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Prediction)
	assert.GreaterOrEqual(t, resp.Confidence, 0.9)
	assert.Equal(t, "1.0.0", resp.ModelVersion)
	assert.Equal(t, "req-9", resp.RequestID)
}

func TestPredict_SynthesizedRequestID(t *testing.T) {
	s := newTestServer(t, true)

	w := doRequest(s, http.MethodPost, "/predict", `{"features":[5.1,3.5,1.4,0.2]}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp predict.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RequestID)
}

func TestPredict_WrongArity(t *testing.T) {
	s := newTestServer(t, true)

	w := doRequest(s, http.MethodPost, "/predict", `{"features":[5.1,3.5]}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "WrongArity", body["error_kind"])
	assert.NotEmpty(t, body["detail"])
}

func TestPredict_InvalidValue(t *testing.T) {
	s := newTestServer(t, true)

	w := doRequest(s, http.MethodPost, "/predict", `{"features":[5.1,"oops",1.4,0.2]}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "InvalidValue", body["error_kind"])
}

func TestPredict_MalformedPayload(t *testing.T) {
	s := newTestServer(t, true)

	w := doRequest(s, http.MethodPost, "/predict", `{"features":`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "MalformedPayload", body["error_kind"])
}

func TestPredict_NotReady(t *testing.T) {
	s := newTestServer(t, false)

	w := doRequest(s, http.MethodPost, "/predict", `{"features":[5.1,3.5,1.4,0.2]}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRoot_ListsEndpoints(t *testing.T) {
	s := newTestServer(t, true)

	w := doRequest(s, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/predict")
	assert.Contains(t, w.Body.String(), "/metrics")
}

func TestMetrics_Exposition(t *testing.T) {
	s := newTestServer(t, true)

	doRequest(s, http.MethodPost, "/predict", `{"features":[5.1,3.5,1.4,0.2]}`)
	doRequest(s, http.MethodPost, "/predict", `{"features":[1]}`)
	w := doRequest(s, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `inference_requests_total{endpoint="predict",status="success"} 1`)
	assert.Contains(t, body, `inference_requests_total{endpoint="predict",status="error"} 1`)
	assert.Contains(t, body, "inference_request_duration_seconds_bucket")
	assert.Contains(t, body, "prediction_value_distribution_bucket")
}

func TestPredict_ConcurrentRequestsCountedExactly(t *testing.T) {
	s := newTestServer(t, true)
	ts := httptest.NewServer(s.router)
	defer ts.Close()

	const calls = 100
	var wg sync.WaitGroup
	errs := make(chan error, calls)
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			payload := fmt.Sprintf(`{"features":[5.1,3.5,1.4,0.2],"request_id":"req-%d"}`, i)
			resp, err := http.Post(ts.URL+"/predict", "application/json", strings.NewReader(payload))
			if err != nil {
				errs <- err
				return
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				errs <- fmt.Errorf("unexpected status %d", resp.StatusCode)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	w := doRequest(s, http.MethodGet, "/metrics", "")
	assert.Contains(t, w.Body.String(),
		fmt.Sprintf(`inference_requests_total{endpoint="predict",status="success"} %d`, calls))
}
