package webservice

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

func optFloat(v float64) *float64 {
	return &v
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func (s *Service) baseHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Service string `json:"service"`
	}{Service: "lvc_core"})
}

// CableRecord is the wire form of a cable catalog entry.
type CableRecord struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Standard     string `json:"standard"`
	RatedVoltage string `json:"ratedVoltage"`
}

func (s *Service) cablesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Cables []string `json:"cables"`
	}{Cables: s.cables.Cables()})
}

func (s *Service) cableHandler(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	cab, ok := s.cables.Cable(code)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "unknown cable code"})
		return
	}
	writeJSON(w, http.StatusOK, CableRecord{
		Code:         cab.Code,
		Name:         cab.Name,
		Standard:     cab.Standard,
		RatedVoltage: cab.RatedVoltage,
	})
}

func (s *Service) ampacityHandler(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	gauge, err := strconv.ParseFloat(r.URL.Query().Get("gauge"), 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad gauge parameter"})
		return
	}
	method := r.URL.Query().Get("method")

	a, ok := s.cables.BaseAmpacity(code, gauge, method)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "combination not tabulated"})
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Ampacity float64 `json:"ampacity"`
	}{Ampacity: a})
}

// DeviceRecord is the wire form of a parsed protective device.
type DeviceRecord struct {
	Code           string  `json:"code"`
	Family         string  `json:"family"`
	Characteristic string  `json:"characteristic,omitempty"`
	RCDType        string  `json:"rcdType,omitempty"`
	Rating         float64 `json:"rating,omitempty"`
	Sensitivity    float64 `json:"sensitivity,omitempty"`
}

func (s *Service) deviceHandler(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	dev, ok := s.protection.Device(code)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "unknown device code"})
		return
	}
	writeJSON(w, http.StatusOK, DeviceRecord{
		Code:           dev.Code,
		Family:         string(dev.Family),
		Characteristic: dev.Characteristic,
		RCDType:        dev.RCDType,
		Rating:         dev.Rating,
		Sensitivity:    dev.Sensitivity,
	})
}

// DeratedAmpacityRequest selects the conditions for a derated ampacity
// analysis.
type DeratedAmpacityRequest struct {
	Cable   string  `json:"cable"`
	Gauge   float64 `json:"gauge"`
	Method  string  `json:"method"`
	Ambient float64 `json:"ambient"`
	Group   int     `json:"group"`
}

// DeratedAmpacityResponse mirrors derating.AmpacityResult on the wire.
type DeratedAmpacityResponse struct {
	BaseAmpacity        *float64 `json:"baseAmpacity,omitempty"`
	TemperatureDerating *float64 `json:"temperatureDerating,omitempty"`
	GroupingDerating    *float64 `json:"groupingDerating,omitempty"`
	DeratedAmpacity     *float64 `json:"deratedAmpacity,omitempty"`
	Error               string   `json:"error,omitempty"`
}

func (s *Service) deratedAmpacityHandler(w http.ResponseWriter, r *http.Request) {
	req := DeratedAmpacityRequest{}
	if !readJSON(w, r, &req) {
		return
	}
	res := s.derating.DeratedAmpacity(req.Cable, req.Gauge, req.Method, req.Ambient, req.Group)
	resp := DeratedAmpacityResponse{Error: errString(res.Err)}
	if res.Err == nil {
		resp.BaseAmpacity = optFloat(res.BaseAmpacity)
		resp.TemperatureDerating = optFloat(res.TemperatureDerating)
		resp.GroupingDerating = optFloat(res.GroupingDerating)
		resp.DeratedAmpacity = optFloat(res.DeratedAmpacity)
	}
	s.publish("derated_ampacity", resp)
	writeJSON(w, http.StatusOK, resp)
}

// MinimumGaugeRequest sizes a cable for a design current.
type MinimumGaugeRequest struct {
	Cable         string  `json:"cable"`
	DesignCurrent float64 `json:"designCurrent"`
	Method        string  `json:"method"`
	Ambient       float64 `json:"ambient"`
	Group         int     `json:"group"`
}

// MinimumGaugeResponse carries the smallest qualifying gauge, or null
// when no standard gauge qualifies.
type MinimumGaugeResponse struct {
	Gauge *float64 `json:"gauge"`
}

func (s *Service) minimumGaugeHandler(w http.ResponseWriter, r *http.Request) {
	req := MinimumGaugeRequest{}
	if !readJSON(w, r, &req) {
		return
	}
	resp := MinimumGaugeResponse{}
	if g, ok := s.derating.FindMinimumGauge(req.Cable, req.DesignCurrent, req.Method, req.Ambient, req.Group); ok {
		resp.Gauge = optFloat(g)
	}
	s.publish("minimum_gauge", resp)
	writeJSON(w, http.StatusOK, resp)
}

// VoltageDropRequest describes a cable run under load.
type VoltageDropRequest struct {
	Cable       string  `json:"cable"`
	Gauge       float64 `json:"gauge"`
	Length      float64 `json:"length"`
	Current     float64 `json:"current"`
	Phases      int     `json:"phases"`
	Voltage     float64 `json:"voltage"`
	PowerFactor float64 `json:"powerFactor"`
}

// VoltageDropResponse mirrors derating.VoltageDropResult on the wire.
type VoltageDropResponse struct {
	Drop        *float64 `json:"drop,omitempty"`
	DropPercent *float64 `json:"dropPercent,omitempty"`
	Error       string   `json:"error,omitempty"`
}

func (s *Service) voltageDropHandler(w http.ResponseWriter, r *http.Request) {
	req := VoltageDropRequest{}
	if !readJSON(w, r, &req) {
		return
	}
	res := s.derating.VoltageDrop(req.Cable, req.Gauge, req.Length, req.Current, req.Phases, req.Voltage, req.PowerFactor)
	resp := VoltageDropResponse{Error: errString(res.Err)}
	if res.Err == nil {
		resp.Drop = optFloat(res.Drop)
		resp.DropPercent = optFloat(res.DropPercent)
	}
	s.publish("voltage_drop", resp)
	writeJSON(w, http.StatusOK, resp)
}

// FaultCurrentRequest asks for the minimum trip current in a region.
type FaultCurrentRequest struct {
	Device string `json:"device"`
	Region string `json:"region"`
}

// FaultCurrentResponse mirrors tripcurve.FaultCurrentResult.
type FaultCurrentResponse struct {
	Current *float64 `json:"current,omitempty"`
	Region  string   `json:"region,omitempty"`
	Error   string   `json:"error,omitempty"`
}

func (s *Service) faultCurrentHandler(w http.ResponseWriter, r *http.Request) {
	req := FaultCurrentRequest{}
	if !readJSON(w, r, &req) {
		return
	}
	res := s.trip.MinimumFaultCurrent(req.Device, req.Region)
	resp := FaultCurrentResponse{Region: res.Region, Error: errString(res.Err)}
	if res.Err == nil {
		resp.Current = optFloat(res.Current)
	}
	s.publish("fault_current", resp)
	writeJSON(w, http.StatusOK, resp)
}

// TripTimeRequest classifies a fault current on a device's curve.
type TripTimeRequest struct {
	Device       string  `json:"device"`
	FaultCurrent float64 `json:"faultCurrent"`
	RatedCurrent float64 `json:"ratedCurrent"`
}

// TripTimeResponse mirrors tripcurve.TripTimeResult.
type TripTimeResponse struct {
	Region string   `json:"region,omitempty"`
	Time   *float64 `json:"time,omitempty"`
	Error  string   `json:"error,omitempty"`
}

func (s *Service) tripTimeHandler(w http.ResponseWriter, r *http.Request) {
	req := TripTimeRequest{}
	if !readJSON(w, r, &req) {
		return
	}
	res := s.trip.TripTime(req.Device, req.FaultCurrent, req.RatedCurrent)
	resp := TripTimeResponse{Region: res.Region, Error: errString(res.Err)}
	if res.Err == nil && res.Time > 0 {
		resp.Time = optFloat(res.Time)
	}
	s.publish("trip_time", resp)
	writeJSON(w, http.StatusOK, resp)
}

// LetThroughRequest asks for the energy passed during a fault.
type LetThroughRequest struct {
	Device       string  `json:"device"`
	FaultCurrent float64 `json:"faultCurrent"`
	Duration     float64 `json:"duration"`
}

// LetThroughResponse mirrors tripcurve.LetThroughResult.
type LetThroughResponse struct {
	EnergyMin *float64 `json:"energyMin,omitempty"`
	EnergyMax *float64 `json:"energyMax,omitempty"`
	Energy    *float64 `json:"energy,omitempty"`
	Source    string   `json:"source,omitempty"`
	Error     string   `json:"error,omitempty"`
}

func (s *Service) letThroughHandler(w http.ResponseWriter, r *http.Request) {
	req := LetThroughRequest{}
	if !readJSON(w, r, &req) {
		return
	}
	res := s.trip.LetThroughEnergy(req.Device, req.FaultCurrent, req.Duration)
	resp := LetThroughResponse{Source: res.Source, Error: errString(res.Err)}
	if res.Err == nil {
		switch res.Source {
		case "table":
			resp.EnergyMin = optFloat(res.EnergyMin)
			resp.EnergyMax = optFloat(res.EnergyMax)
		case "calculated":
			resp.Energy = optFloat(res.Energy)
		}
	}
	s.publish("let_through", resp)
	writeJSON(w, http.StatusOK, resp)
}

// SelectivityRequest names an upstream/downstream device pair.
type SelectivityRequest struct {
	Upstream   string `json:"upstream"`
	Downstream string `json:"downstream"`
}

// SelectivityResponse mirrors coordination.SelectivityResult.
type SelectivityResponse struct {
	IsSelective bool     `json:"isSelective"`
	Ratio       *float64 `json:"ratio,omitempty"`
	Reason      string   `json:"reason,omitempty"`
	Error       string   `json:"error,omitempty"`
}

func (s *Service) selectivityHandler(w http.ResponseWriter, r *http.Request) {
	req := SelectivityRequest{}
	if !readJSON(w, r, &req) {
		return
	}
	res := s.coord.IsSelective(req.Upstream, req.Downstream)
	resp := SelectivityResponse{
		IsSelective: res.Selective,
		Reason:      res.Reason,
		Error:       errString(res.Err),
	}
	if res.Err == nil {
		resp.Ratio = optFloat(res.Ratio)
	}
	s.publish("selectivity", resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Service) voltagesHandler(w http.ResponseWriter, r *http.Request) {
	phase := r.URL.Query().Get("phase")
	writeJSON(w, http.StatusOK, struct {
		Voltages []float64 `json:"voltages"`
	}{Voltages: s.standards.ValidIndustrialVoltages(phase)})
}

func (s *Service) frequenciesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Frequencies []float64 `json:"frequencies"`
	}{Frequencies: s.standards.ValidFrequencies()})
}

func (s *Service) disconnectTimeHandler(w http.ResponseWriter, r *http.Request) {
	voltage, err := strconv.ParseFloat(r.URL.Query().Get("voltage"), 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad voltage parameter"})
		return
	}
	distribution, _ := strconv.ParseBool(r.URL.Query().Get("distribution"))
	writeJSON(w, http.StatusOK, struct {
		MaxDisconnectTime float64 `json:"maxDisconnectTime"`
	}{MaxDisconnectTime: s.standards.MaxDisconnectTime(voltage, distribution)})
}

func (s *Service) protectionSizesHandler(w http.ResponseWriter, r *http.Request) {
	family := r.URL.Query().Get("family")
	writeJSON(w, http.StatusOK, struct {
		Family string `json:"family"`
		Sizes  []int  `json:"sizes"`
	}{Family: family, Sizes: s.standards.StandardProtectionSizes(family)})
}

func (s *Service) severitiesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Severities []interface{} `json:"severities"`
	}{Severities: severityPayload(s)})
}

func severityPayload(s *Service) []interface{} {
	levels := s.standards.SeverityLevels()
	out := make([]interface{}, 0, len(levels))
	for _, lv := range levels {
		out = append(out, struct {
			Code   string `json:"code"`
			Name   string `json:"name"`
			Weight int    `json:"weight"`
			Color  string `json:"color"`
		}{lv.Code, lv.Name, lv.Weight, lv.Color})
	}
	return out
}

func (s *Service) categoriesHandler(w http.ResponseWriter, r *http.Request) {
	cats := s.standards.Categories()
	out := make([]interface{}, 0, len(cats))
	for _, c := range cats {
		out = append(out, struct {
			Code string `json:"code"`
			Name string `json:"name"`
		}{c.Code, c.Name})
	}
	writeJSON(w, http.StatusOK, struct {
		Categories []interface{} `json:"categories"`
	}{Categories: out})
}
