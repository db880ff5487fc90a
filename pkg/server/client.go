package server

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

// Client talks to a Server over its websocket endpoint, one request at a
// time.
type Client struct {
	WebSocketConn *websocket.Conn
	URL           string

	mu     sync.Mutex
	nextID int
}

func NewClient(url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		WebSocketConn: conn,
		URL:           url,
	}, nil
}

func (c *Client) Close() error {
	return c.WebSocketConn.Close()
}

func (c *Client) roundTrip(req *Request) (*Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	req.ID = c.nextID
	c.nextID++
	if err := c.WebSocketConn.WriteJSON(req); err != nil {
		return nil, errors.Wrap(err, "sending request")
	}
	resp := &Response{}
	if err := c.WebSocketConn.ReadJSON(resp); err != nil {
		return nil, errors.Wrap(err, "reading response")
	}
	if resp.ID != req.ID {
		return nil, errors.Errorf("response for request %d; expected %d", resp.ID, req.ID)
	}
	return resp, nil
}

// Prove asks the server for a proof of formulaText. lemmas maps targets to
// witnesses for the prover's fallback.
func (c *Client) Prove(formulaText string, lemmas map[string]string) (*Response, error) {
	resp, err := c.roundTrip(&Request{Op: "prove", Formula: formulaText, Lemmas: lemmas})
	if err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return resp, errors.New(resp.Error)
	}
	return resp, nil
}

// Verify asks the server to check a listing. A rejected listing is not an
// error; see Response.Valid and Response.Error.
func (c *Client) Verify(listing string) (*Response, error) {
	return c.roundTrip(&Request{Op: "verify", Listing: listing})
}
