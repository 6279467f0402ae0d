package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/net/context"
)

type httpControlService struct {
	srv     *http.Server
	handler *apiHandler
}

func newRouter(handler *apiHandler) *mux.Router {
	r := mux.NewRouter()

	// auth middleware
	r.Use(handler.BasicAuth)
	// api server
	r.HandleFunc("/api/status", handler.apiStatus).Methods("GET")
	r.HandleFunc("/api/board", handler.apiBoard).Methods("GET")
	r.HandleFunc("/api/key/{code}", handler.apiKey).Methods("POST")
	r.HandleFunc("/api/button/{name}", handler.apiButton).Methods("POST")
	r.HandleFunc("/api/clock/{action}", handler.apiClock).Methods("POST")
	return r
}

func (h *httpControlService) launch(handler *apiHandler, addr string) {
	h.handler = handler
	h.srv = &http.Server{Addr: addr, Handler: newRouter(handler)}

	// add to the wg
	wg.Add(1)

	// launch the server
	go func() {
		defer wg.Done()
		log.Println("starting control service http server on " + addr)
		err := h.srv.ListenAndServe()
		log.Print(err)
		log.Print("Exiting control service")
	}()
}

func (h *httpControlService) stop() {
	if h.srv != nil {
		h.srv.Shutdown(context.Background())
	}
}
