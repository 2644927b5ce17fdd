package api

import (
	"encoding/base64"
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tubedl/tubedl/job"
	"github.com/tubedl/tubedl/processor"
	"github.com/tubedl/tubedl/progress"
	"github.com/tubedl/tubedl/storage"
)

// historyDefaultLimit is how many records GET /history returns when no
// explicit limit is requested.
const historyDefaultLimit = 20

// API is the HTTP surface of the service: job submission, progress polling,
// download history and the static index page.
type API struct {
	Server    *http.Server
	Processor *processor.Processor
	State     *progress.State

	// Storage is optional. Without it GET /history serves an empty list.
	Storage *storage.Storage

	log   *log.Logger
	idgen *rng
}

// New initializes the API for the given processor and state, listening on
// host:port. heartbeatPath, when non-empty, registers a liveness endpoint.
func New(p *processor.Processor, state *progress.State, s *storage.Storage,
	host string, port int, heartbeatPath string, logger *log.Logger) *API {

	as := &API{
		Processor: p,
		State:     state,
		Storage:   s,
		log:       logger,
		idgen: newRNG(8, rand.NewSource(time.Now().UnixNano()),
			base64.RawURLEncoding),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/download", as.handleDownload)
	mux.HandleFunc("/progress", as.handleProgress)
	mux.HandleFunc("/history", as.handleHistory)

	if heartbeatPath != "" {
		mux.HandleFunc(heartbeatPath, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	}

	fs, err := staticFs()
	if err != nil {
		logger.Println("Error initializing static assets:", err)
	} else {
		mux.Handle("/", http.FileServer(fs))
	}

	as.Server = &http.Server{Handler: mux, Addr: host + ":" + strconv.Itoa(port)}
	return as
}

// handleDownload accepts a new download job and hands it to the processor.
// The response is an immediate acknowledgement carrying the job id, not the
// download result; progress flows through /progress.
func (as *API) handleDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	j := new(job.Job)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		defer r.Body.Close()
		if err := json.NewDecoder(r.Body).Decode(j); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		if err := j.ParseForm(r.FormValue); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	j.ID = as.idgen.rand()
	j.CreatedAt = time.Now()

	if err := as.Processor.Submit(r.Context(), j); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"id": j.ID})
}

// handleProgress serves the latest progress snapshot. It never blocks on the
// background download.
func (as *API) handleProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(as.State.Read()); err != nil {
		as.log.Println("Error encoding progress snapshot:", err)
	}
}

// handleHistory serves the most recent terminated jobs, newest first.
func (as *API) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	n := historyDefaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		n = parsed
	}

	records := []job.Record{}
	if as.Storage != nil {
		var err error
		records, err = as.Storage.LatestRecords(n)
		if err != nil {
			http.Error(w, "Error fetching history: "+err.Error(),
				http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(records); err != nil {
		as.log.Println("Error encoding history:", err)
	}
}
