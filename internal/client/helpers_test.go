package client

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	internalhttp "github.com/fivetwenty-io/minds/internal/http"
)

// recordedRequest is one call seen by a fakeAPI.
type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]interface{}
}

// cannedResponse is what a fakeAPI answers for a route.
type cannedResponse struct {
	Status int
	Body   interface{}
}

// fakeAPI is an httptest server that answers from a route table and records
// every request in order. Routes are keyed by "METHOD path"; a route with
// several responses serves them in turn and then repeats the last one.
type fakeAPI struct {
	t      *testing.T
	server *httptest.Server

	mu       sync.Mutex
	routes   map[string][]cannedResponse
	requests []recordedRequest
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()

	api := &fakeAPI{
		t:      t,
		routes: map[string][]cannedResponse{},
	}

	api.server = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.server.Close)

	return api
}

func (a *fakeAPI) on(method, path string, responses ...cannedResponse) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.routes[method+" "+path] = responses
}

func (a *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	recorded := recordedRequest{Method: r.Method, Path: r.URL.EscapedPath()}

	raw, _ := io.ReadAll(r.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &recorded.Body)
	}

	a.mu.Lock()
	a.requests = append(a.requests, recorded)

	key := r.Method + " " + recorded.Path
	responses := a.routes[key]

	var resp cannedResponse

	switch len(responses) {
	case 0:
		resp = cannedResponse{Status: http.StatusNotFound, Body: map[string]string{"message": "no route for " + key}}
	case 1:
		resp = responses[0]
	default:
		resp = responses[0]
		a.routes[key] = responses[1:]
	}
	a.mu.Unlock()

	if resp.Status == 0 {
		resp.Status = http.StatusOK
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)

	if resp.Body != nil {
		_ = json.NewEncoder(w).Encode(resp.Body)
	}
}

// calls returns the recorded requests as "METHOD path" strings.
func (a *fakeAPI) calls() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]string, 0, len(a.requests))
	for _, req := range a.requests {
		out = append(out, req.Method+" "+req.Path)
	}

	return out
}

func (a *fakeAPI) request(i int) recordedRequest {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.requests[i]
}

func (a *fakeAPI) client() *Client {
	return newWithHTTPClient(internalhttp.NewClient(a.server.URL, nil), "")
}
