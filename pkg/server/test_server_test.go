package server

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/phayes/freeport"
)

type testServerRef struct {
	server *Server
	client *Client
	port   int
	dir    string
}

func (tsr *testServerRef) Close() {
	tsr.client.Close()
	tsr.server.Close()
	os.RemoveAll(tsr.dir)
}

func newTestServer(t *testing.T) *testServerRef {
	dir, err := ioutil.TempDir("", "hilbert-server")
	if err != nil {
		t.Fatal(err)
	}

	port := freeport.GetPort()
	server, err := NewServer(filepath.Join(dir, "test.data"), "localhost", port)
	if err != nil {
		t.Fatal(err)
	}
	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	url := fmt.Sprintf("ws://localhost:%d/ws", port)
	var client *Client
	for attempt := 0; attempt < 50; attempt++ {
		client, err = NewClient(url)
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatal(err)
	}

	return &testServerRef{
		server: server,
		client: client,
		port:   port,
		dir:    dir,
	}
}
