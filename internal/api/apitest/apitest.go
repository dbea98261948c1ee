// Package apitest provides an in-memory api.Doer for service client tests.
package apitest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"storefront-client/internal/api"
)

type Call struct {
	Method    string
	Path      string
	Body      []byte
	Multipart bool
	Form      *api.MultipartForm
}

// JSON decodes the recorded request body into dst.
func (c Call) JSON(dst any) error {
	return json.Unmarshal(c.Body, dst)
}

type reply struct {
	status int
	body   string
	err    error
}

// Doer answers requests from canned replies keyed by "METHOD path" and
// records every call. Unrouted requests get a 404.
type Doer struct {
	mu     sync.Mutex
	routes map[string][]reply
	calls  []Call
}

func New() *Doer {
	return &Doer{routes: make(map[string][]reply)}
}

// Reply queues a response for method+path. Replies for the same route are
// used in order; the last one repeats.
func (d *Doer) Reply(method, path string, status int, body string) *Doer {
	return d.add(method, path, reply{status: status, body: body})
}

// Fail queues a transport failure for method+path.
func (d *Doer) Fail(method, path string, err error) *Doer {
	return d.add(method, path, reply{err: err})
}

func (d *Doer) add(method, path string, r reply) *Doer {
	d.mu.Lock()
	defer d.mu.Unlock()
	key := method + " " + path
	d.routes[key] = append(d.routes[key], r)
	return d
}

func (d *Doer) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Call(nil), d.calls...)
}

// Last returns the most recent call, or a zero Call.
func (d *Doer) Last() Call {
	calls := d.Calls()
	if len(calls) == 0 {
		return Call{}
	}
	return calls[len(calls)-1]
}

func (d *Doer) Do(ctx context.Context, method, path string, body any) (*api.Response, error) {
	var raw []byte
	if body != nil {
		var err error
		if raw, err = json.Marshal(body); err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
	}
	return d.serve(Call{Method: method, Path: path, Body: raw})
}

func (d *Doer) DoMultipart(ctx context.Context, method, path string, form *api.MultipartForm) (*api.Response, error) {
	return d.serve(Call{Method: method, Path: path, Multipart: true, Form: form})
}

func (d *Doer) serve(c Call) (*api.Response, error) {
	d.mu.Lock()
	d.calls = append(d.calls, c)
	key := c.Method + " " + c.Path
	queue := d.routes[key]
	var r reply
	switch len(queue) {
	case 0:
		r = reply{status: http.StatusNotFound, body: `{"detail":"Not found."}`}
	case 1:
		r = queue[0]
	default:
		r = queue[0]
		d.routes[key] = queue[1:]
	}
	d.mu.Unlock()

	if r.err != nil {
		return nil, &api.Error{Kind: api.KindNetworkFailure, Err: r.err}
	}
	if r.status < 200 || r.status >= 300 {
		return nil, api.NewResponseError(r.status, []byte(r.body))
	}
	return &api.Response{StatusCode: r.status, Header: make(http.Header), Body: []byte(r.body)}, nil
}
