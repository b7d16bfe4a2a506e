package webservice

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"gotest.tools/v3/assert"

	"github.com/voltkraft/lvc_core/internal/pkg/catalog/cable"
	"github.com/voltkraft/lvc_core/internal/pkg/catalog/protection"
	"github.com/voltkraft/lvc_core/internal/pkg/coordination"
	"github.com/voltkraft/lvc_core/internal/pkg/derating"
	"github.com/voltkraft/lvc_core/internal/pkg/standards"
	"github.com/voltkraft/lvc_core/internal/pkg/tripcurve"
)

func newService(t *testing.T) *Service {
	t.Helper()
	pid, err := uuid.NewUUID()
	assert.NilError(t, err)

	cables := cable.New()
	prot := protection.New()
	return &Service{
		pid:        pid,
		config:     config{Port: "8080"},
		cables:     cables,
		protection: prot,
		standards:  standards.New(),
		derating:   derating.New(cables),
		trip:       tripcurve.New(prot),
		coord:      coordination.New(prot),
	}
}

func do(t *testing.T, s *Service, method, url string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		assert.NilError(t, json.NewEncoder(&buf).Encode(body))
	}
	w := httptest.NewRecorder()
	r := httptest.NewRequest(method, url, &buf)
	s.makeRouter().ServeHTTP(w, r)
	return w
}

func TestBaseGet(t *testing.T) {
	s := newService(t)
	w := do(t, s, "GET", "http://example.com/", nil)
	assert.Equal(t, w.Code, http.StatusOK)
	assert.Equal(t, w.Header().Get("Content-Type"), "application/json; charset=UTF-8")
}

func TestCableGet(t *testing.T) {
	s := newService(t)

	w := do(t, s, "GET", "http://example.com/cables/NYY", nil)
	assert.Equal(t, w.Code, http.StatusOK)

	rec := CableRecord{}
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, rec.Code, "NYY")

	w = do(t, s, "GET", "http://example.com/cables/XLPE", nil)
	assert.Equal(t, w.Code, http.StatusNotFound)
}

func TestAmpacityGet(t *testing.T) {
	s := newService(t)

	w := do(t, s, "GET", "http://example.com/cables/NYY/ampacity?gauge=16&method=method_3", nil)
	assert.Equal(t, w.Code, http.StatusOK)

	out := struct {
		Ampacity float64 `json:"ampacity"`
	}{}
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, out.Ampacity, 61.0)

	w = do(t, s, "GET", "http://example.com/cables/NYY/ampacity?gauge=7&method=method_3", nil)
	assert.Equal(t, w.Code, http.StatusNotFound)

	w = do(t, s, "GET", "http://example.com/cables/NYY/ampacity?gauge=many", nil)
	assert.Equal(t, w.Code, http.StatusBadRequest)
}

func TestDeviceGet(t *testing.T) {
	s := newService(t)

	w := do(t, s, "GET", "http://example.com/devices/RCBO-C-16-30", nil)
	assert.Equal(t, w.Code, http.StatusOK)

	rec := DeviceRecord{}
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, rec.Family, "RCBO")
	assert.Equal(t, rec.Rating, 16.0)
	assert.Equal(t, rec.Sensitivity, 30.0)

	w = do(t, s, "GET", "http://example.com/devices/MCB-C-17", nil)
	assert.Equal(t, w.Code, http.StatusNotFound)
}

func TestDeratedAmpacityPost(t *testing.T) {
	s := newService(t)

	w := do(t, s, "POST", "http://example.com/analysis/derated-ampacity", DeratedAmpacityRequest{
		Cable: "NYY", Gauge: 16, Method: "method_3", Ambient: 40, Group: 2,
	})
	assert.Equal(t, w.Code, http.StatusOK)

	resp := DeratedAmpacityResponse{}
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, resp.Error, "")
	assert.Equal(t, *resp.BaseAmpacity, 61.0)
	assert.Equal(t, *resp.DeratedAmpacity, 61.0*0.87*0.80)
}

func TestDeratedAmpacityEngineError(t *testing.T) {
	s := newService(t)

	// untabulated combination is a 200 with the error field set
	w := do(t, s, "POST", "http://example.com/analysis/derated-ampacity", DeratedAmpacityRequest{
		Cable: "H07V-K", Gauge: 16, Method: "method_3", Ambient: 30, Group: 1,
	})
	assert.Equal(t, w.Code, http.StatusOK)

	resp := DeratedAmpacityResponse{}
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Assert(t, resp.Error != "")
	assert.Assert(t, resp.DeratedAmpacity == nil)
}

func TestMalformedBody(t *testing.T) {
	s := newService(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "http://example.com/analysis/derated-ampacity",
		bytes.NewBufferString("{not json"))
	s.makeRouter().ServeHTTP(w, r)
	assert.Equal(t, w.Code, http.StatusBadRequest)
}

func TestMinimumGaugePost(t *testing.T) {
	s := newService(t)

	w := do(t, s, "POST", "http://example.com/analysis/minimum-gauge", MinimumGaugeRequest{
		Cable: "NYM", DesignCurrent: 40, Method: "method_1", Ambient: 30, Group: 1,
	})
	assert.Equal(t, w.Code, http.StatusOK)

	resp := MinimumGaugeResponse{}
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Assert(t, resp.Gauge != nil)
	assert.Equal(t, *resp.Gauge, 10.0)

	// no standard gauge carries 1000 A
	w = do(t, s, "POST", "http://example.com/analysis/minimum-gauge", MinimumGaugeRequest{
		Cable: "NYM", DesignCurrent: 1000, Method: "method_1", Ambient: 30, Group: 1,
	})
	resp = MinimumGaugeResponse{}
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Assert(t, resp.Gauge == nil)
}

func TestTripTimePost(t *testing.T) {
	s := newService(t)

	w := do(t, s, "POST", "http://example.com/analysis/trip-time", TripTimeRequest{
		Device: "MCB-C-16", FaultCurrent: 400, RatedCurrent: 16,
	})
	assert.Equal(t, w.Code, http.StatusOK)

	resp := TripTimeResponse{}
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, resp.Region, tripcurve.RegionInstantaneous)
	assert.Equal(t, *resp.Time, 0.01)
}

func TestSelectivityPost(t *testing.T) {
	s := newService(t)

	w := do(t, s, "POST", "http://example.com/analysis/selectivity", SelectivityRequest{
		Upstream: "MCB-C-63", Downstream: "MCB-C-16",
	})
	assert.Equal(t, w.Code, http.StatusOK)

	resp := SelectivityResponse{}
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Assert(t, resp.IsSelective)
	assert.Equal(t, *resp.Ratio, 63.0/16.0)

	w = do(t, s, "POST", "http://example.com/analysis/selectivity", SelectivityRequest{
		Upstream: "MCB-B-63", Downstream: "MCB-D-16",
	})
	resp = SelectivityResponse{}
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Assert(t, !resp.IsSelective)
	assert.Assert(t, resp.Reason != "")
}

func TestDisconnectTimeGet(t *testing.T) {
	s := newService(t)

	w := do(t, s, "GET", "http://example.com/standards/disconnect-time?voltage=400", nil)
	assert.Equal(t, w.Code, http.StatusOK)

	out := struct {
		MaxDisconnectTime float64 `json:"maxDisconnectTime"`
	}{}
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, out.MaxDisconnectTime, 0.2)

	w = do(t, s, "GET", "http://example.com/standards/disconnect-time?voltage=lots", nil)
	assert.Equal(t, w.Code, http.StatusBadRequest)
}

func TestVoltagesGet(t *testing.T) {
	s := newService(t)

	w := do(t, s, "GET", "http://example.com/standards/voltages?phase=single", nil)
	assert.Equal(t, w.Code, http.StatusOK)

	out := struct {
		Voltages []float64 `json:"voltages"`
	}{}
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, len(out.Voltages), 1)
	assert.Equal(t, out.Voltages[0], 230.0)
}

func TestNewReadsConfig(t *testing.T) {
	dir, err := ioutil.TempDir("", "webservice")
	assert.NilError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "webservice.json")
	assert.NilError(t, ioutil.WriteFile(path, []byte(`{"Port": "9999"}`), 0644))

	cables := cable.New()
	prot := protection.New()
	s, err := New(path, cables, prot, standards.New(), derating.New(cables),
		tripcurve.New(prot), coordination.New(prot), nil)
	assert.NilError(t, err)
	assert.Equal(t, s.config.Port, "9999")

	_, err = New(filepath.Join(dir, "missing.json"), cables, prot, standards.New(),
		derating.New(cables), tripcurve.New(prot), coordination.New(prot), nil)
	assert.Assert(t, err != nil)
}
