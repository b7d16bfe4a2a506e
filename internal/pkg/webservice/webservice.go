// Package webservice exposes the compliance engine as an HTTP query
// API. Every analysis endpoint is a pure function of the compiled-in
// catalogs plus the request parameters; computed results are also
// published on the message fabric for recording.
//
// Engine-level failures (unknown codes, untabulated combinations) are
// part of the result contract: they return 200 with the error field
// set. Only malformed requests are transport errors.
package webservice

import (
	"encoding/json"
	"io/ioutil"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/voltkraft/lvc_core/internal/pkg/catalog/cable"
	"github.com/voltkraft/lvc_core/internal/pkg/catalog/protection"
	"github.com/voltkraft/lvc_core/internal/pkg/coordination"
	"github.com/voltkraft/lvc_core/internal/pkg/derating"
	"github.com/voltkraft/lvc_core/internal/pkg/msg"
	"github.com/voltkraft/lvc_core/internal/pkg/standards"
	"github.com/voltkraft/lvc_core/internal/pkg/tripcurve"
)

// Service routes engine queries.
type Service struct {
	pid        uuid.UUID
	config     config
	cables     *cable.Catalog
	protection *protection.Catalog
	standards  *standards.Reference
	derating   *derating.Engine
	trip       *tripcurve.Analyzer
	coord      *coordination.Analyzer
	pubsub     *msg.PubSub
}

type config struct {
	Port string `json:"Port"`
}

// AnalysisReport is the payload published for every computed analysis.
type AnalysisReport struct {
	ID     uuid.UUID   `json:"id"`
	Kind   string      `json:"kind"`
	Result interface{} `json:"result"`
}

// New builds the service from a JSON config file and the engine set.
func New(configPath string, cables *cable.Catalog, prot *protection.Catalog,
	std *standards.Reference, der *derating.Engine, trip *tripcurve.Analyzer,
	coord *coordination.Analyzer, pubsub *msg.PubSub) (Service, error) {

	jsonConfig, err := ioutil.ReadFile(configPath)
	if err != nil {
		return Service{}, err
	}
	cfg := config{}
	if err := json.Unmarshal(jsonConfig, &cfg); err != nil {
		return Service{}, err
	}

	pid, err := uuid.NewUUID()
	if err != nil {
		return Service{}, err
	}

	return Service{
		pid:        pid,
		config:     cfg,
		cables:     cables,
		protection: prot,
		standards:  std,
		derating:   der,
		trip:       trip,
		coord:      coord,
		pubsub:     pubsub,
	}, nil
}

// PID returns the service PID.
func (s *Service) PID() uuid.UUID {
	return s.pid
}

func (s *Service) makeRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.baseHandler).Methods("GET")

	r.HandleFunc("/cables", s.cablesHandler).Methods("GET")
	r.HandleFunc("/cables/{code}", s.cableHandler).Methods("GET")
	r.HandleFunc("/cables/{code}/ampacity", s.ampacityHandler).Methods("GET")
	r.HandleFunc("/devices/{code}", s.deviceHandler).Methods("GET")

	r.HandleFunc("/analysis/derated-ampacity", s.deratedAmpacityHandler).Methods("POST")
	r.HandleFunc("/analysis/minimum-gauge", s.minimumGaugeHandler).Methods("POST")
	r.HandleFunc("/analysis/voltage-drop", s.voltageDropHandler).Methods("POST")
	r.HandleFunc("/analysis/fault-current", s.faultCurrentHandler).Methods("POST")
	r.HandleFunc("/analysis/trip-time", s.tripTimeHandler).Methods("POST")
	r.HandleFunc("/analysis/let-through", s.letThroughHandler).Methods("POST")
	r.HandleFunc("/analysis/selectivity", s.selectivityHandler).Methods("POST")

	r.HandleFunc("/standards/voltages", s.voltagesHandler).Methods("GET")
	r.HandleFunc("/standards/frequencies", s.frequenciesHandler).Methods("GET")
	r.HandleFunc("/standards/disconnect-time", s.disconnectTimeHandler).Methods("GET")
	r.HandleFunc("/standards/protection-sizes", s.protectionSizesHandler).Methods("GET")
	r.HandleFunc("/standards/severities", s.severitiesHandler).Methods("GET")
	r.HandleFunc("/standards/categories", s.categoriesHandler).Methods("GET")
	return r
}

// Serve blocks on the HTTP listener.
func (s *Service) Serve() error {
	r := s.makeRouter()
	log.Println("[Webservice] Listening on port", s.config.Port)
	return http.ListenAndServe(":"+s.config.Port, r)
}

// publish hands a computed analysis to the fabric for recording.
func (s *Service) publish(kind string, result interface{}) {
	if s.pubsub == nil {
		return
	}
	id, err := uuid.NewUUID()
	if err != nil {
		return
	}
	s.pubsub.Publish(msg.Report, AnalysisReport{ID: id, Kind: kind, Result: result})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	body, err := json.Marshal(payload)
	if err != nil {
		log.Println("[Webservice] malformed JSON:", err)
		return
	}
	if _, err := w.Write(body); err != nil {
		log.Println("[Webservice]", err)
	}
}

func readJSON(w http.ResponseWriter, r *http.Request, into interface{}) bool {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "unreadable body"})
		return false
	}
	if err := json.Unmarshal(body, into); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed JSON: " + err.Error()})
		return false
	}
	return true
}

type errorBody struct {
	Error string `json:"error"`
}
