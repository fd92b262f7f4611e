package routes

import "net/http"

// ResponseWriter records the status and body size written by a handler
type ResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	size        int
}

func wrapResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

// Status func
func (rw *ResponseWriter) Status() int {
	return rw.status
}

// Size func
func (rw *ResponseWriter) Size() int {
	return rw.size
}

// WroteHeader func
func (rw *ResponseWriter) WroteHeader() bool {
	return rw.wroteHeader
}

// WriteHeader func
func (rw *ResponseWriter) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}

	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
	rw.wroteHeader = true
}

// Write func
func (rw *ResponseWriter) Write(message []byte) (int, error) {
	rw.wroteHeader = true
	n, err := rw.ResponseWriter.Write(message)
	rw.size += n

	return n, err
}
