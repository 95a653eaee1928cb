package transport

// Handle is one in-flight request. Err and Body are meaningful
// only after Finished reports true.
type Handle interface {
	Finished() bool
	Err() error
	Body() []byte
	Release()
}

// Transport fires a GET for the given url at Open time and returns
// a handle to poll for the outcome.
type Transport interface {
	Open(url string) (Handle, error)
}
