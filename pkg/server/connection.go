package server

import (
	"context"
	"strings"

	"github.com/gorilla/websocket"
	clog "github.com/vilterp/hilbert/pkg/log"
)

type connectionID int

type connection struct {
	clientConn *websocket.Conn
	id         connectionID
	service    *Service
	responses  chan *Response
	done       chan struct{}
	context    context.Context
}

func newConnection(wsConn *websocket.Conn, svc *Service, ID int) *connection {
	ctx := context.WithValue(svc.ctx, clog.ConnIDKey, ID)
	conn := &connection{
		clientConn: wsConn,
		id:         connectionID(ID),
		service:    svc,
		responses:  make(chan *Response),
		done:       make(chan struct{}),
		context:    ctx,
	}
	go conn.writeResponsesToSocket()
	return conn
}

func (conn *connection) Ctx() context.Context {
	return conn.context
}

func (conn *connection) writeResponsesToSocket() {
	defer close(conn.done)
	for resp := range conn.responses {
		if err := conn.clientConn.WriteJSON(resp); err != nil {
			clog.Println(conn, "error writing to socket:", err)
			return
		}
	}
}

func (conn *connection) handleRequests() {
	clog.Println(conn, "initiated from", conn.clientConn.RemoteAddr())
	defer func() {
		close(conn.responses)
		<-conn.done
		conn.clientConn.Close()
		conn.service.removeConn(conn)
	}()
	for {
		req := &Request{}
		if err := conn.clientConn.ReadJSON(req); err != nil {
			clog.Println(conn, "terminated:", err)
			return
		}
		reqCtx := context.WithValue(conn.context, clog.RequestIDKey, req.ID)
		clog.Printf(clog.WithContext(reqCtx), "%s %q (%d listing lines)", req.Op, req.Formula, strings.Count(req.Listing, "\n"))

		resp := conn.service.handle(req)
		if resp.Error != "" {
			clog.Println(clog.WithContext(reqCtx), "error:", resp.Error)
		}
		select {
		case conn.responses <- resp:
		case <-conn.done:
			return
		}
	}
}
