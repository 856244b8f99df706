// Package responsewriter records the status and size of a response for the
// logging and metrics middlewares.
package responsewriter

import "net/http"

// ResponseWriter is an http.ResponseWriter that remembers what it sent.
type ResponseWriter struct {
	http.ResponseWriter
	status  int
	written int
	sent    bool
}

// Wrap returns w wrapped for recording. An existing wrapper is reused so
// stacked middlewares observe the same counters.
func Wrap(w http.ResponseWriter) *ResponseWriter {
	if rw, ok := w.(*ResponseWriter); ok {
		return rw
	}
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader forwards the first status only; later calls are dropped.
func (w *ResponseWriter) WriteHeader(status int) {
	if w.sent {
		return
	}
	w.status = status
	w.sent = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.sent {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.written += n
	return n, err
}

// Flush forwards to the underlying writer when it supports flushing.
func (w *ResponseWriter) Flush() {
	if !w.sent {
		w.WriteHeader(http.StatusOK)
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// StatusCode is the status sent, or 200 if nothing was sent yet.
func (w *ResponseWriter) StatusCode() int { return w.status }

// BytesWritten is the body size written so far.
func (w *ResponseWriter) BytesWritten() int { return w.written }

// HeaderSent reports whether the status line has gone out.
func (w *ResponseWriter) HeaderSent() bool { return w.sent }

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
