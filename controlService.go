package main

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"dscheirer.com/pblbuttons/buttons"
)

type controlResponse struct {
	Response string       `json:"response"`
	Error    string       `json:"error,omitempty"`
	Status   *inputStatus `json:"status,omitempty"`
}

type boardResponse struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	MCU         string   `json:"mcu"`
	FlashKB     int      `json:"flashKB"`
	RAMKB       int      `json:"ramKB"`
	OscHz       int      `json:"oscHz"`
	Osc2Hz      int      `json:"osc2Hz"`
	Kernel      string   `json:"kernel"`
	Variant     string   `json:"buttonVariant"`
	Storage     string   `json:"storage"`
	Display     string   `json:"display"`
	UARTs       []string `json:"uarts"`
}

// apiHandler - the thing that handles control API requests
type apiHandler struct {
	rt     runtimeConfig
	secret string
	user   string
	realm  string
}

// newHandler - create a new API handler
func newHandler(rt runtimeConfig) apiHandler {
	secret := rt.settings.GetString(sControlPass)
	if secret == "" {
		secret = rt.wall.Now().String()
		rt.logger.Printf("control API secret: %s", secret)
	}
	return apiHandler{
		rt:     rt,
		secret: secret,
		user:   rt.settings.GetString(sControlUser),
		realm:  "pblbuttons",
	}
}

func (m *apiHandler) getSecret() string {
	return m.secret
}

// BasicAuth - provide a middleware to authenticate users
func (m *apiHandler) BasicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(user), []byte(m.user)) != 1 || subtle.ConstantTimeCompare([]byte(pass), []byte(m.secret)) != 1 {
			w.Header().Set("WWW-Authenticate", `Basic realm="`+m.realm+`"`)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Unauthorised.\n"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *apiHandler) getStatus() controlResponse {
	st, ok := queryStatus(m.rt.comms)
	if !ok {
		return controlResponse{Response: "BAD", Error: "shutting down"}
	}
	return controlResponse{Response: "OK", Status: &st}
}

// injectKeys queues raw keycodes as if the keyboard sent them
func (m *apiHandler) injectKeys(codes []int) controlResponse {
	for _, c := range codes {
		select {
		case m.rt.comms.keys <- c:
		case <-m.rt.comms.quit:
			return controlResponse{Response: "BAD", Error: "shutting down"}
		}
	}
	return controlResponse{Response: "OK"}
}

func (m *apiHandler) setClockPaused(paused bool) controlResponse {
	if m.rt.vclock == nil {
		return controlResponse{Response: "BAD", Error: "not running on a virtual clock"}
	}
	m.rt.vclock.setPaused(paused)
	return controlResponse{Response: "OK"}
}

func writeAnswer(w http.ResponseWriter, cr controlResponse) {
	w.Header().Set("Content-Type", "application/json")
	if cr.Response != "OK" {
		w.WriteHeader(http.StatusBadRequest)
	}
	output, _ := json.Marshal(cr)
	w.Write(output)
}

func (m *apiHandler) apiStatus(w http.ResponseWriter, r *http.Request) {
	writeAnswer(w, m.getStatus())
}

func (m *apiHandler) apiBoard(w http.ResponseWriter, r *http.Request) {
	mc := m.rt.machine
	cfg := mc.Config
	br := boardResponse{
		Name:        cfg.Name,
		Description: cfg.Description,
		MCU:         cfg.MCU,
		FlashKB:     cfg.FlashKB,
		RAMKB:       cfg.RAMKB,
		OscHz:       cfg.OscHz,
		Osc2Hz:      cfg.Osc2Hz,
		Kernel:      mc.Kernel,
		Variant:     cfg.Buttons.String(),
		Storage:     cfg.Storage.Part,
		Display:     cfg.Display.Part,
		UARTs:       cfg.UARTs[:],
	}
	w.Header().Set("Content-Type", "application/json")
	output, _ := json.Marshal(br)
	w.Write(output)
}

func (m *apiHandler) apiKey(w http.ResponseWriter, r *http.Request) {
	code, err := strconv.ParseInt(mux.Vars(r)["code"], 0, 64)
	if err != nil || code < 0 || code > 0xFF {
		writeAnswer(w, controlResponse{Response: "BAD", Error: "keycode must be 0-255"})
		return
	}
	writeAnswer(w, m.injectKeys([]int{int(code)}))
}

func (m *apiHandler) apiButton(w http.ResponseWriter, r *http.Request) {
	b, ok := buttons.ParseButton(mux.Vars(r)["name"])
	if !ok || !b.Valid() {
		writeAnswer(w, controlResponse{Response: "BAD", Error: "unknown button"})
		return
	}
	// press and release, like a remote display would
	codes := append(buttons.Keycodes(b, true), buttons.Keycodes(b, false)...)
	writeAnswer(w, m.injectKeys(codes))
}

func (m *apiHandler) apiClock(w http.ResponseWriter, r *http.Request) {
	switch mux.Vars(r)["action"] {
	case "pause":
		writeAnswer(w, m.setClockPaused(true))
	case "resume":
		writeAnswer(w, m.setClockPaused(false))
	default:
		writeAnswer(w, controlResponse{Response: "BAD", Error: "unknown clock action"})
	}
}

func startControlService(rt runtimeConfig) {
	rt.logger = &ThreadLogger{name: "Control"}
	wg.Add(1)
	go runControlService(rt)
}

func runControlService(rt runtimeConfig) {
	defer wg.Done()

	handler := newHandler(rt)
	rt.control.launch(&handler, rt.settings.GetString(sControlAddr))
	rt.logger.Println("control service running")

	<-rt.comms.quit
	rt.logger.Println("quit from control service")
	// stop the server
	rt.control.stop()
}
