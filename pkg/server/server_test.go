package server

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProveAndVerify(t *testing.T) {
	tsr := newTestServer(t)
	defer tsr.Close()

	resp, err := tsr.client.Prove("(p>p)", nil)
	require.NoError(t, err)
	require.True(t, resp.Valid)
	require.False(t, resp.Cached)
	require.Equal(t, 5, strings.Count(resp.Listing, "\n"))

	again, err := tsr.client.Prove(" ( p > p ) ", nil)
	require.NoError(t, err)
	require.True(t, again.Cached)
	require.Equal(t, resp.ProofID, again.ProofID)
	require.Equal(t, resp.Listing, again.Listing)

	verdict, err := tsr.client.Verify(resp.Listing)
	require.NoError(t, err)
	require.True(t, verdict.Valid)

	tampered := strings.Replace(resp.Listing, "((p>((p>p)>p))>((p>(p>p))>(p>p)))", "(p>q)", 1)
	verdict, err = tsr.client.Verify(tampered)
	require.NoError(t, err)
	require.False(t, verdict.Valid)
	require.Contains(t, verdict.Error, "line 1")
}

func TestProveWithLemmas(t *testing.T) {
	tsr := newTestServer(t)
	defer tsr.Close()

	_, err := tsr.client.Prove("((p>q)>((q>r)>(p>r)))", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "underivable")

	resp, err := tsr.client.Prove("((p>q)>((q>r)>(p>r)))", map[string]string{"r": "q"})
	require.NoError(t, err)
	require.True(t, resp.Valid)

	// the lemma was kept, so a related theorem needs no hint
	resp, err = tsr.client.Prove("((p>(q>r))>(q>(p>r)))", nil)
	require.NoError(t, err)
	require.True(t, resp.Valid)
}

func TestFailedHintIsNotStored(t *testing.T) {
	tsr := newTestServer(t)
	defer tsr.Close()

	_, err := tsr.client.Prove("((p>q)>((q>r)>(p>r)))", map[string]string{"r": "q"})
	require.NoError(t, err)

	// s is no way to r, and the failed request must not replace q
	_, err = tsr.client.Prove("r", map[string]string{"r": "s"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "underivable")

	lemmas, err := tsr.server.service.archive.Lemmas()
	require.NoError(t, err)
	require.Equal(t, "q", lemmas["r"].String())

	resp, err := tsr.client.Prove("((p>(q>r))>(q>(p>r)))", nil)
	require.NoError(t, err)
	require.True(t, resp.Valid)
}

func TestBadRequests(t *testing.T) {
	tsr := newTestServer(t)
	defer tsr.Close()

	_, err := tsr.client.Prove("(p>", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "malformed formula")

	verdict, err := tsr.client.Verify("1 (p>(q>p))")
	require.NoError(t, err)
	require.False(t, verdict.Valid)

	resp, err := tsr.client.roundTrip(&Request{Op: "explode"})
	require.NoError(t, err)
	require.Equal(t, "unknown op: explode", resp.Error)
}

func TestMetrics(t *testing.T) {
	tsr := newTestServer(t)
	defer tsr.Close()

	_, err := tsr.client.Prove("(q>q)", nil)
	require.NoError(t, err)

	httpResp, err := http.Get(fmt.Sprintf("http://localhost:%d/metrics", tsr.port))
	require.NoError(t, err)
	defer httpResp.Body.Close()
	body, err := ioutil.ReadAll(httpResp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "proofs_generated 1")
	require.Contains(t, string(body), "open_connections 1")
}
