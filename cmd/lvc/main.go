package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/voltkraft/lvc_core/internal/pkg/catalog/cable"
	"github.com/voltkraft/lvc_core/internal/pkg/catalog/protection"
	"github.com/voltkraft/lvc_core/internal/pkg/coordination"
	"github.com/voltkraft/lvc_core/internal/pkg/derating"
	"github.com/voltkraft/lvc_core/internal/pkg/instrument"
	"github.com/voltkraft/lvc_core/internal/pkg/msg"
	"github.com/voltkraft/lvc_core/internal/pkg/recorder/mongodb"
	"github.com/voltkraft/lvc_core/internal/pkg/standards"
	"github.com/voltkraft/lvc_core/internal/pkg/tripcurve"
	"github.com/voltkraft/lvc_core/internal/pkg/webservice"
)

func main() {
	log.Println("[Main] Starting LVC_Core v0.1.0")
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	log.Println("[Main] Building Catalogs")
	cables := cable.New()
	prot := protection.New()
	std := standards.New()

	log.Println("[Main] Building Engines")
	der := derating.New(cables)
	trip := tripcurve.New(prot)
	coord := coordination.New(prot)

	log.Println("[Main] Building Message Fabric")
	pid, err := uuid.NewUUID()
	if err != nil {
		panic(err)
	}
	pubsub := msg.NewPublisher(pid)

	log.Println("[Main] Connecting MongoDB Recorder")
	recorder, err := mongodb.New("./config/database/mongodb_config.json", pubsub)
	if err != nil {
		panic(err)
	}
	go recorder.Process()

	log.Println("[Main] Connecting Instrument Gateway")
	gateway, err := instrument.New("./config/instrument/gateway.json", prot, std, pubsub)
	if err != nil {
		log.Println("[Main] Instrument gateway disabled:", err)
	} else {
		go gateway.Process()
		defer gateway.StopProcess()
	}

	log.Println("[Main] Starting Webservice")
	service, err := webservice.New("./config/webservice/webservice.json", cables, prot, std, der, trip, coord, pubsub)
	if err != nil {
		panic(err)
	}
	go func() {
		if err := service.Serve(); err != nil {
			log.Println("[Main] Webservice stopped:", err)
			sigs <- syscall.SIGTERM
		}
	}()

	<-sigs
	log.Println("[Main] Stopping system")
	recorder.StopProcess()
	pubsub.Stop()
}
