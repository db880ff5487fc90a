package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/vilterp/hilbert/pkg/server"
)

var port = flag.Int("port", 9000, "port to listen on")
var host = flag.String("host", "0.0.0.0", "host to listen on")
var dataFile = flag.String("data-file", "hilbert.data", "proof archive")

func main() {
	// get cmdline flags
	flag.Parse()

	fmt.Println("hilbert proof server")

	srv, err := server.NewServer(*dataFile, *host, *port)
	if err != nil {
		log.Fatalln("failed to start:", err)
	}

	// graceful shutdown on Ctrl-C
	ctrlCChan := make(chan os.Signal, 1)
	signal.Notify(ctrlCChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlCChan
		if err := srv.Close(); err != nil {
			log.Println("error closing:", err)
		}
		os.Exit(0)
	}()

	if err := srv.ListenAndServe(); err != nil {
		log.Fatal("error listening:", err)
	}
}
