// Package mongodb records analysis reports and instrument measurements
// from the message fabric into MongoDB collections. The recorder is a
// passive subscriber; the engine stays pure and never waits on it.
package mongodb

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/voltkraft/lvc_core/internal/pkg/msg"
)

// Handler drains the fabric into MongoDB.
type Handler struct {
	mux    *sync.Mutex
	inbox  <-chan msg.Msg
	pid    uuid.UUID
	config config
	stop   chan bool
}

type config struct {
	URI      string `json:"URI"`
	Database string `json:"Database"`
	Port     string `json:"Port"`
}

func redirectMsg(chIn <-chan msg.Msg, chOut chan<- msg.Msg) {
	for m := range chIn {
		chOut <- m
	}
}

// New reads the JSON config and subscribes to the report and
// measurement topics of the given publisher.
func New(configPath string, system msg.Publisher) (Handler, error) {
	jsonConfig, err := ioutil.ReadFile(configPath)
	if err != nil {
		return Handler{}, err
	}
	cfg := config{}
	if err := json.Unmarshal(jsonConfig, &cfg); err != nil {
		return Handler{}, err
	}

	pid, err := uuid.NewUUID()
	if err != nil {
		return Handler{}, err
	}

	inbox := make(chan msg.Msg, 50)

	chReport, err := system.Subscribe(pid, msg.Report)
	if err != nil {
		return Handler{}, err
	}
	go redirectMsg(chReport, inbox)

	chMeasurement, err := system.Subscribe(pid, msg.Measurement)
	if err != nil {
		return Handler{}, err
	}
	go redirectMsg(chMeasurement, inbox)

	return Handler{
		mux:    &sync.Mutex{},
		inbox:  inbox,
		pid:    pid,
		config: cfg,
		// buffered: Process returns before its select loop when the
		// MongoDB setup fails, and StopProcess must not block then
		stop: make(chan bool, 1),
	}, nil
}

// PID returns the handler PID.
func (h Handler) PID() uuid.UUID {
	return h.pid
}

func msgToBSON(m msg.Msg) bson.M {
	return bson.M{
		"sender":     m.PID().String(),
		"data":       m.Payload(),
		"recordedAt": time.Now().UTC(),
	}
}

// StopProcess terminates the Process loop.
func (h *Handler) StopProcess() {
	h.stop <- true
}

// Process connects to MongoDB and drains the inbox until stopped.
// Reports land in analysisReports, measurements in loopMeasurements.
func (h Handler) Process() {
	client, err := mongo.NewClient(options.Client().ApplyURI(h.config.URI + ":" + h.config.Port))
	if err != nil {
		log.Println("[Recorder]", err)
		return
	}

	ctx := context.TODO()
	if err := client.Connect(ctx); err != nil {
		log.Println("[Recorder]", err)
		return
	}
	defer client.Disconnect(ctx)

	reports := client.Database(h.config.Database).Collection("analysisReports")
	measurements := client.Database(h.config.Database).Collection("loopMeasurements")

loop:
	for {
		select {
		case m := <-h.inbox:
			switch m.Topic() {
			case msg.Report:
				if _, err := reports.InsertOne(ctx, msgToBSON(m)); err != nil {
					log.Println("[Recorder]", err)
				}
			case msg.Measurement:
				if _, err := measurements.InsertOne(ctx, msgToBSON(m)); err != nil {
					log.Println("[Recorder]", err)
				}
			}
		case <-h.stop:
			break loop
		}
	}
	log.Println("[Recorder] Process Shutdown")
}
