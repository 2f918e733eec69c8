// Copyright 2024 The Templet Authors.
// SPDX-License-Identifier: Apache-2.0

package playground

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
)

type ServerOpts struct {
	ListenAddr string
}

// Server renders posted templates; it backs the 'templet playground'
// command and the lambda entrypoint.
type Server struct {
	opts ServerOpts
}

func NewServer(opts ServerOpts) *Server {
	return &Server{opts}
}

type renderRequest struct {
	Template string                 `json:"template"`
	Values   map[string]interface{} `json:"values"`
}

type renderResponse struct {
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	// no need for caching as it's a POST
	mux.HandleFunc("/render", s.corsHandler(s.renderHandler))
	mux.HandleFunc("/health", s.healthHandler)
	return mux
}

func (s *Server) Run() error {
	server := &http.Server{
		Addr:    s.opts.ListenAddr,
		Handler: s.Mux(),
	}
	fmt.Printf("Listening on http://%s\n", server.Addr)
	return server.ListenAndServe()
}

func (s *Server) renderHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		s.logError(w, err)
		return
	}

	var req renderRequest

	err = json.Unmarshal(data, &req)
	if err != nil {
		s.logError(w, fmt.Errorf("Deserializing request: %s", err))
		return
	}

	out, err := renderTemplate(req)
	if err != nil {
		s.writeResponse(w, http.StatusUnprocessableEntity, renderResponse{Error: err.Error()})
		return
	}

	s.writeResponse(w, http.StatusOK, renderResponse{Output: out})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.write(w, []byte("ok"))
}

func (s *Server) corsHandler(wrappedFunc func(http.ResponseWriter, *http.Request)) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		wrappedFunc(w, r)
	}
}

func (s *Server) writeResponse(w http.ResponseWriter, status int, resp renderResponse) {
	respBytes, err := json.Marshal(resp)
	if err != nil {
		s.logError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	s.write(w, respBytes)
}

func (s *Server) write(w http.ResponseWriter, data []byte) {
	_, err := w.Write(data)
	if err != nil {
		log.Printf("Error writing response: %s", err)
	}
}

func (s *Server) logError(w http.ResponseWriter, err error) {
	log.Printf("Error: %s", err)
	w.WriteHeader(http.StatusBadRequest)
	_, _ = w.Write([]byte(err.Error()))
}
