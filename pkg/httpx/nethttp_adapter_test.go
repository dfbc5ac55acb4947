package httpx

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"oneshot/pkg/server"
	"oneshot/pkg/wire"
)

func oneshotRequest(method, rawurl string, body wire.Body) *server.Request {
	u, _ := url.Parse(rawurl)
	return &server.Request{
		Method:   method,
		URL:      u,
		Header:   wire.NewHeader(),
		Body:     body,
		RemoteIP: "192.0.2.1",
	}
}

func TestAdaptRoutesThroughMux(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/kv/{key}", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("X-Key", mux.Vars(req)["key"])
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("found"))
	}).Methods("GET")

	h := Adapt(r)
	resp, err := h(oneshotRequest("GET", "http://a:1/kv/alpha", wire.AbsentBody()))
	if err != nil {
		t.Fatalf("adapted handler failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Key") != "alpha" {
		t.Fatalf("route variable lost, X-Key = %q", resp.Header.Get("X-Key"))
	}
	if string(resp.Body.Bytes()) != "found" {
		t.Fatalf("body = %q", resp.Body.Bytes())
	}
}

func TestAdaptPassesHeadersAndBody(t *testing.T) {
	var gotCT string
	var gotBody []byte
	h := Adapt(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotCT = req.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(req.Body)
		w.WriteHeader(http.StatusCreated)
	}))

	req := oneshotRequest("POST", "http://a:1/items", wire.BufferedBody([]byte(`{"n":1}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := h(req)
	if err != nil {
		t.Fatalf("adapted handler failed: %v", err)
	}
	if gotCT != "application/json" {
		t.Fatalf("Content-Type = %q", gotCT)
	}
	if string(gotBody) != `{"n":1}` {
		t.Fatalf("body = %q", gotBody)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestAdaptStreamedBody(t *testing.T) {
	var got []byte
	h := Adapt(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		got, _ = io.ReadAll(req.Body)
	}))
	req := oneshotRequest("POST", "http://a:1/up", wire.StreamBody(strings.NewReader("live bytes")))
	if _, err := h(req); err != nil {
		t.Fatalf("adapted handler failed: %v", err)
	}
	if string(got) != "live bytes" {
		t.Fatalf("streamed body = %q", got)
	}
}

func TestAdaptDefaultsTo200(t *testing.T) {
	h := Adapt(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	resp, err := h(oneshotRequest("GET", "http://a:1/", wire.AbsentBody()))
	if err != nil {
		t.Fatalf("adapted handler failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}
