// ABOUTME: Entry point for the remote tone control server
// ABOUTME: Exposes a simulated driver over WebSocket with mDNS discovery
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/oro-haptics/chime-go/internal/output"
	"github.com/oro-haptics/chime-go/internal/remote"
	"github.com/oro-haptics/chime-go/internal/version"
	"github.com/oro-haptics/chime-go/pkg/i2s"
	"github.com/oro-haptics/chime-go/pkg/i2s/sim"
)

var (
	port       = flag.Int("port", 8931, "WebSocket control port")
	name       = flag.String("name", "", "Service name (default: hostname-chime)")
	enableMDNS = flag.Bool("mdns", true, "Advertise the control endpoint via mDNS")
	silent     = flag.Bool("silent", false, "Skip speaker output")
	rate       = flag.Int("rate", i2s.DefaultSampleRate, "Sample rate in Hz")
)

func main() {
	flag.Parse()

	serviceName := *name
	if serviceName == "" {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		serviceName = fmt.Sprintf("%s-chime", hostname)
	}

	log.Printf("%s %s remote control", version.Product, version.Version)

	var sink sim.Sink
	if !*silent {
		speaker, err := output.NewSpeaker(*rate)
		if err != nil {
			log.Fatalf("failed to open speaker: %v", err)
		}
		defer speaker.Close()
		sink = speaker
	}

	drv := i2s.New(sim.New(sim.Config{Sink: sink}), i2s.Config{
		Pins:       i2s.PinConfig{SCK: 3, LRCK: 28, SDOut: 2},
		Amp:        &sim.Line{},
		SampleRate: *rate,
	})

	if !drv.Initialize() {
		log.Fatal("driver initialization failed")
	}

	server := remote.New(remote.Config{
		Port:       *port,
		Name:       serviceName,
		EnableMDNS: *enableMDNS,
	}, drv)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Printf("signal received, stopping")
		server.Stop()
	}()

	if err := server.Start(); err != nil {
		log.Fatalf("server failed: %v", err)
	}

	drv.Suspend()
}
