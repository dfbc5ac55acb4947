// Package app is the demo application served by oneshotd: a small
// pebble-backed key/value API plus health and metrics endpoints. It
// plays the "external application handler" role for the codec and
// doubles as a realistic exercise of the net/http adapter.
package app

import (
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"oneshot/pkg/httpx"
	"oneshot/pkg/server"
	"oneshot/pkg/store"
)

const keyPrefix = "kv:"

// Handler builds the demo application handler.
func Handler() server.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/kv", listKeys).Methods(http.MethodGet)
	r.HandleFunc("/kv/{key}", getKey).Methods(http.MethodGet)
	r.HandleFunc("/kv/{key}", putKey).Methods(http.MethodPut, http.MethodPost)
	r.HandleFunc("/kv/{key}", deleteKey).Methods(http.MethodDelete)
	r.HandleFunc("/echo", echo).Methods(http.MethodPost)
	return httpx.Adapt(r)
}

func health(w http.ResponseWriter, _ *http.Request) {
	jsonWrite(w, http.StatusOK, map[string]any{"status": "ok", "store": store.Ready()})
}

func getKey(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	v, err := store.Get(keyPrefix + key)
	if err == store.ErrNotFound {
		jsonError(w, http.StatusNotFound, "no such key")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(v)
}

func putKey(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	body, err := io.ReadAll(r.Body)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "unreadable body")
		return
	}
	if err := store.Set(keyPrefix+key, body); err != nil {
		jsonError(w, http.StatusInternalServerError, err.Error())
		return
	}
	jsonWrite(w, http.StatusOK, map[string]any{"key": key, "bytes": len(body)})
}

func deleteKey(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if err := store.Delete(keyPrefix + key); err != nil {
		jsonError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func listKeys(w http.ResponseWriter, _ *http.Request) {
	keys, err := store.Keys(keyPrefix)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, strings.TrimPrefix(k, keyPrefix))
	}
	jsonWrite(w, http.StatusOK, map[string]any{"keys": out})
}

func echo(w http.ResponseWriter, r *http.Request) {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	_, _ = io.Copy(w, r.Body)
}
