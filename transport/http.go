package transport

import (
	"bytes"
	"io"
	"net/http"
	"sync"

	"github.com/pkg/errors"
)

var bpool = sync.Pool{New: func() any {
	return bytes.NewBuffer(make([]byte, 0, 4096))
}}

type HTTP struct {
	client *http.Client
}

// NewHTTP returns a Transport over the given client.
// Pass nil to use http.DefaultClient.
func NewHTTP(client *http.Client) HTTP {
	if client == nil {
		client = http.DefaultClient
	}
	return HTTP{
		client: client,
	}
}

func (t HTTP) Open(url string) (Handle, error) {
	request, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WithMessagef(err, "build request for %s", url)
	}

	handle := &httpHandle{}
	go handle.do(t.client, request)
	return handle, nil
}

// httpHandle fields are mutated from the request goroutine and from the
// polling side (Release on timeout), the lock covers both.
type httpHandle struct {
	lock     sync.Mutex
	body     []byte
	err      error
	finished bool
	released bool
}

// do runs in its own goroutine.
func (h *httpHandle) do(client *http.Client, request *http.Request) {
	body, err := fetch(client, request)

	h.lock.Lock()
	defer h.lock.Unlock()
	h.finished = true
	h.err = err
	if !h.released {
		h.body = body
	}
}

func fetch(client *http.Client, request *http.Request) ([]byte, error) {
	response, err := client.Do(request)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode >= http.StatusBadRequest {
		return nil, errors.Errorf("server returned %s", response.Status)
	}

	buff := bpool.Get().(*bytes.Buffer)
	buff.Reset()
	defer bpool.Put(buff)

	_, err = io.Copy(buff, response.Body)
	if err != nil {
		return nil, errors.WithMessage(err, "read response body")
	}
	return append([]byte(nil), buff.Bytes()...), nil
}

func (h *httpHandle) Finished() bool {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.finished
}

func (h *httpHandle) Err() error {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.err
}

func (h *httpHandle) Body() []byte {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.body
}

func (h *httpHandle) Release() {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.released = true
	h.body = nil
}
